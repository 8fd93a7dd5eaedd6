package threshold

import (
	"fmt"
	"strings"

	"sustainabot/src/config"
	"sustainabot/src/model"
)

// Fleet finding identifiers
const (
	FindingHighEnergy          = "SUSTAIN-HIGH-ENERGY"
	FindingHighCarbon          = "SUSTAIN-HIGH-CARBON"
	FindingHighImpactFunctions = "SUSTAIN-HIGH-IMPACT-FUNCTIONS"
	FindingEfficiencyRating    = "SUSTAIN-EFFICIENCY-RATING"
	findingPatternPrefix       = "SUSTAIN-PATTERN-"
)

type highImpact struct {
	name   string
	energy model.Energy
}

// PatternFindingID builds the identifier of a pattern finding.
// Identical pattern and function names yield identical identifiers.
func PatternFindingID(patternName, functionName string) string {
	return findingPatternPrefix + strings.ReplaceAll(strings.ToUpper(patternName), " ", "-") + "-" + functionName
}

// EvaluateFleet turns fleet-facing results into an ordered list of findings:
// one per detected pattern in encounter order, then the total energy and
// carbon breaches, the high-impact function list, and always the
// efficiency rating. Findings are not deduplicated.
func EvaluateFleet(results []model.AnalysisResult, thresholds config.ThresholdsConfig) []model.Finding {
	var (
		findings      []model.Finding
		totalEnergy   model.Energy
		totalCarbon   model.Carbon
		highImpactFns []highImpact
	)

	for _, result := range results {
		totalEnergy = totalEnergy.Add(result.Energy)
		totalCarbon = totalCarbon.Add(result.Carbon)

		if result.Energy.Joules() > thresholds.EnergyPerFunctionJoules {
			highImpactFns = append(highImpactFns, highImpact{result.FunctionName, result.Energy})
		}

		for _, pattern := range result.Patterns {
			findings = append(findings, model.NewFinding(
				PatternFindingID(pattern.Name, result.FunctionName),
				MapSeverity(pattern.Severity),
				fmt.Sprintf("%s in %s: %s. Estimated impact: %s",
					pattern.Name, result.FunctionName, pattern.Description, pattern.EstimatedImpact),
			))
		}
	}

	if kj := totalEnergy.Kilojoules(); kj > thresholds.TotalEnergyThresholdKJ {
		findings = append(findings, model.NewFinding(
			FindingHighEnergy,
			model.FindingWarning,
			fmt.Sprintf("High total energy consumption: %.2f kJ (threshold: %.2f kJ)",
				kj, thresholds.TotalEnergyThresholdKJ),
		))
	}

	if g := totalCarbon.GramsCO2e(); g > thresholds.TotalCarbonThresholdGrams {
		findings = append(findings, model.NewFinding(
			FindingHighCarbon,
			model.FindingWarning,
			fmt.Sprintf("High carbon footprint: %.2fg CO₂ (threshold: %.2fg)",
				g, thresholds.TotalCarbonThresholdGrams),
		))
	}

	if len(highImpactFns) > 0 {
		entries := make([]string, len(highImpactFns))
		for i, fn := range highImpactFns {
			entries[i] = fmt.Sprintf("%s (%.2fJ)", fn.name, fn.energy.Joules())
		}

		findings = append(findings, model.NewFinding(
			FindingHighImpactFunctions,
			model.FindingInfo,
			fmt.Sprintf("%d function(s) exceed per-function energy threshold: %s",
				len(highImpactFns), strings.Join(entries, ", ")),
		))
	}

	findings = append(findings, model.NewFinding(
		FindingEfficiencyRating,
		model.FindingInfo,
		fmt.Sprintf("Ecological efficiency rating: %s", EfficiencyRating(results, thresholds)),
	))

	return findings
}
