package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"

	"sustainabot/src/config"
	"sustainabot/src/model"
	"sustainabot/src/util"
)

// ErrUnsupportedFormat is wrapped by Generate for unknown formats
var ErrUnsupportedFormat = errors.New("unsupported format")

// Generator renders function records in various formats
type Generator struct {
	cfg     config.OutputConfig
	tool    string
	version string
}

// NewGenerator creates a new report generator
func NewGenerator(cfg config.OutputConfig, agent config.AgentConfig) *Generator {
	return &Generator{cfg: cfg, tool: agent.Name, version: agent.Version}
}

// Generate renders records in the specified format
func (g *Generator) Generate(records []model.FunctionRecord, format string) (string, error) {
	util.Debug("Generating report in %s format (%d functions)", format, len(records))
	switch format {
	case "text", "":
		return g.generateText(records), nil
	case "json":
		return generateJSON(records)
	case "markdown", "md":
		return g.generateMarkdown(records), nil
	case "sarif":
		return g.generateSARIF(records)
	default:
		util.Warn("Unsupported report format requested: %s", format)
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

func generateJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (g *Generator) generateText(records []model.FunctionRecord) string {
	var sb strings.Builder

	for _, r := range records {
		h := r.Health
		res := r.Resources

		fmt.Fprintf(&sb, "\nFunction: %s\n", r.Location.DisplayName(model.AnonymousName))
		fmt.Fprintf(&sb, "   Location: %s:%d:%d\n", r.Location.File, r.Location.Line, r.Location.Column)

		sb.WriteString("\n   Resources:\n")
		fmt.Fprintf(&sb, "     Energy:   %.2f J\n", res.Energy.Joules())
		fmt.Fprintf(&sb, "     Time:     %.2f ms\n", res.Duration.Milliseconds())
		fmt.Fprintf(&sb, "     Carbon:   %.4f gCO2e\n", res.Carbon.GramsCO2e())
		fmt.Fprintf(&sb, "     Memory:   %d bytes\n", res.Memory.Bytes())

		sb.WriteString("\n   Health Index:\n")
		fmt.Fprintf(&sb, "     Eco:      %.1f/100\n", float64(h.EcoScore))
		fmt.Fprintf(&sb, "     Econ:     %.1f/100\n", float64(h.EconScore))
		fmt.Fprintf(&sb, "     Quality:  %.1f/100\n", h.QualityScore)
		fmt.Fprintf(&sb, "     Overall:  %.1f/100\n", h.Overall)

		if g.cfg.IncludePatterns && len(r.Patterns) > 0 {
			sb.WriteString("\n   Patterns:\n")
			for _, p := range r.Patterns {
				fmt.Fprintf(&sb, "     [%s] %s: %s\n", p.Severity, p.Name, p.EstimatedImpact)
			}
		}

		if g.cfg.IncludeRecommendations && len(r.Recommendations) > 0 {
			sb.WriteString("\n   Recommendations:\n")
			for _, rec := range r.Recommendations {
				fmt.Fprintf(&sb, "     • %s\n", rec)
			}
		}
	}

	sb.WriteString("\nAnalysis complete\n")
	return sb.String()
}

func (g *Generator) generateMarkdown(records []model.FunctionRecord) string {
	var sb strings.Builder

	sb.WriteString("# Sustainability Report\n\n")
	fmt.Fprintf(&sb, "**Functions:** %s\n\n", humanize.Comma(int64(len(records))))

	if len(records) == 0 {
		sb.WriteString("No functions found.\n")
		return sb.String()
	}

	t := table.NewWriter()
	t.AppendHeader(table.Row{"Function", "Location", "Energy (J)", "Time (ms)", "Carbon (gCO2e)", "Memory", "Eco", "Overall"})
	for _, r := range records {
		t.AppendRow(table.Row{
			r.Location.DisplayName(model.AnonymousName),
			fmt.Sprintf("%s:%d", r.Location.File, r.Location.Line),
			fmt.Sprintf("%.2f", r.Resources.Energy.Joules()),
			fmt.Sprintf("%.2f", r.Resources.Duration.Milliseconds()),
			fmt.Sprintf("%.4f", r.Resources.Carbon.GramsCO2e()),
			humanize.IBytes(r.Resources.Memory.Bytes()),
			fmt.Sprintf("%.1f", float64(r.Health.EcoScore)),
			fmt.Sprintf("%.1f", r.Health.Overall),
		})
	}
	sb.WriteString(t.RenderMarkdown())
	sb.WriteString("\n")

	if g.cfg.IncludePatterns {
		var wrote bool
		for _, r := range records {
			for _, p := range r.Patterns {
				if !wrote {
					sb.WriteString("\n## Patterns\n\n")
					wrote = true
				}
				fmt.Fprintf(&sb, "- %s `%s`: %s (%s)\n",
					severityTag(p.Severity), r.Location.DisplayName(model.AnonymousName), p.Name, p.EstimatedImpact)
			}
		}
	}

	if g.cfg.IncludeRecommendations {
		var wrote bool
		for _, r := range records {
			if len(r.Recommendations) == 0 {
				continue
			}
			if !wrote {
				sb.WriteString("\n## Recommendations\n\n")
				wrote = true
			}
			fmt.Fprintf(&sb, "### `%s`\n\n", r.Location.DisplayName(model.AnonymousName))
			for _, rec := range r.Recommendations {
				fmt.Fprintf(&sb, "- %s\n", rec)
			}
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func severityTag(s model.PatternSeverity) string {
	return "[" + strings.ToUpper(s.String()) + "]"
}
