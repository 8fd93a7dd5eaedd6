package report

import (
	"strings"

	"sustainabot/src/model"
)

const sarifSchema = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"

func (g *Generator) generateSARIF(records []model.FunctionRecord) (string, error) {
	sarif := map[string]any{
		"$schema": sarifSchema,
		"version": "2.1.0",
		"runs": []map[string]any{
			{
				"tool": map[string]any{
					"driver": map[string]any{
						"name":    g.tool,
						"version": g.version,
						"rules":   buildSARIFRules(records),
					},
				},
				"results": buildSARIFResults(records),
			},
		},
	}

	return generateJSON(sarif)
}

func sarifRuleID(p model.Pattern) string {
	return "sustain/" + strings.ToLower(strings.ReplaceAll(p.Name, " ", "-"))
}

func buildSARIFRules(records []model.FunctionRecord) []map[string]any {
	seen := make(map[string]bool)
	rules := []map[string]any{}

	for _, r := range records {
		for _, p := range r.Patterns {
			id := sarifRuleID(p)
			if seen[id] {
				continue
			}
			seen[id] = true

			rules = append(rules, map[string]any{
				"id":   id,
				"name": p.Name,
				"shortDescription": map[string]any{
					"text": p.Description,
				},
				"defaultConfiguration": map[string]any{
					"level": sarifLevel(p.Severity),
				},
			})
		}
	}

	return rules
}

func buildSARIFResults(records []model.FunctionRecord) []map[string]any {
	results := []map[string]any{}

	for _, r := range records {
		name := r.Location.DisplayName(model.AnonymousName)
		for _, p := range r.Patterns {
			result := map[string]any{
				"ruleId":  sarifRuleID(p),
				"level":   sarifLevel(p.Severity),
				"message": map[string]any{"text": p.Name + " in " + name + ": " + p.EstimatedImpact},
				"locations": []map[string]any{
					{
						"physicalLocation": map[string]any{
							"artifactLocation": map[string]any{
								"uri": r.Location.File,
							},
							"region": map[string]any{
								"startLine":   r.Location.Line,
								"startColumn": r.Location.Column,
							},
						},
					},
				},
				"properties": map[string]any{
					"energyJoules": r.Resources.Energy.Joules(),
					"carbonGrams":  r.Resources.Carbon.GramsCO2e(),
					"ecoScore":     float64(r.Health.EcoScore),
				},
			}

			if len(r.Recommendations) > 0 {
				fixes := make([]map[string]any, 0, len(r.Recommendations))
				for _, rec := range r.Recommendations {
					fixes = append(fixes, map[string]any{
						"description": map[string]any{"text": rec},
					})
				}
				result["fixes"] = fixes
			}

			results = append(results, result)
		}
	}

	return results
}

func sarifLevel(s model.PatternSeverity) string {
	switch s {
	case model.PatternHigh:
		return "error"
	case model.PatternMedium:
		return "warning"
	default:
		return "note"
	}
}
