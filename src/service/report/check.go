package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"sustainabot/src/model"
	"sustainabot/src/util"
)

// formatThreshold prints a threshold without trailing zeros ("50", "42.5")
func formatThreshold(t float64) string {
	return strconv.FormatFloat(t, 'f', -1, 64)
}

func (g *Generator) paint(attr color.Attribute) *color.Color {
	c := color.New(attr)
	if !g.cfg.Color {
		c.DisableColor()
	}
	return c
}

// GenerateCheck renders a directory check report
func (g *Generator) GenerateCheck(report model.CheckReport, format string) (string, error) {
	switch format {
	case "text", "":
		var sb strings.Builder
		g.WriteCheckText(&sb, report)
		return sb.String(), nil
	case "json":
		return generateJSON(report)
	case "markdown", "md":
		return g.checkMarkdown(report), nil
	default:
		util.Warn("Unsupported check format requested: %s", format)
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// WriteCheckText writes the human-readable check report.
// The averages block is omitted entirely when no function was found.
func (g *Generator) WriteCheckText(w io.Writer, report model.CheckReport) {
	threshold := formatThreshold(report.EcoThreshold)
	warn := g.paint(color.FgYellow)

	fmt.Fprintf(w, "Checking directory: %s (eco threshold: %s)\n\n", report.Root, threshold)

	for _, v := range report.Violations {
		warn.Fprintf(w, "  BELOW THRESHOLD: %s :: %s (eco: %.1f, threshold: %s)\n",
			v.FilePath, v.FunctionName, float64(v.EcoScore), threshold)
	}

	s := report.Summary
	fmt.Fprintln(w, "\n--- Summary ---")
	fmt.Fprintf(w, "Files analyzed:        %d\n", s.TotalFiles)
	fmt.Fprintf(w, "Functions found:       %d\n", s.TotalFunctions)
	fmt.Fprintf(w, "Below threshold:       %d\n", s.BelowThreshold)

	if s.HasData() {
		avgEco, _ := s.AvgEco.Value()
		avgOverall, _ := s.AvgOverall.Value()
		fmt.Fprintf(w, "Avg eco score:         %.1f/100\n", avgEco)
		fmt.Fprintf(w, "Avg overall health:    %.1f/100\n", avgOverall)
		fmt.Fprintf(w, "Total est. energy:     %.2f J\n", s.TotalEnergy.Joules())
		fmt.Fprintf(w, "Total est. carbon:     %.4f gCO2e\n", s.TotalCarbon.GramsCO2e())
	}

	if report.Passed {
		g.paint(color.FgGreen).Fprintf(w, "\nResult: PASS (all functions meet eco threshold %s)\n", threshold)
	} else {
		g.paint(color.FgRed).Fprintf(w, "\nResult: FAIL (%d functions below eco threshold %s)\n", s.BelowThreshold, threshold)
	}
}

func (g *Generator) checkMarkdown(report model.CheckReport) string {
	var sb strings.Builder
	s := report.Summary

	sb.WriteString("# Eco Threshold Check\n\n")
	fmt.Fprintf(&sb, "**Root:** `%s`  \n**Eco threshold:** %s  \n", report.Root, formatThreshold(report.EcoThreshold))
	if report.Passed {
		sb.WriteString("**Result:** PASS\n\n")
	} else {
		sb.WriteString("**Result:** FAIL\n\n")
	}

	summary := table.NewWriter()
	summary.AppendHeader(table.Row{"Metric", "Value"})
	summary.AppendRow(table.Row{"Files analyzed", s.TotalFiles})
	summary.AppendRow(table.Row{"Functions found", s.TotalFunctions})
	summary.AppendRow(table.Row{"Below threshold", s.BelowThreshold})
	if s.HasData() {
		avgEco, _ := s.AvgEco.Value()
		avgOverall, _ := s.AvgOverall.Value()
		summary.AppendRow(table.Row{"Avg eco score", fmt.Sprintf("%.1f/100", avgEco)})
		summary.AppendRow(table.Row{"Avg overall health", fmt.Sprintf("%.1f/100", avgOverall)})
		summary.AppendRow(table.Row{"Total est. energy", fmt.Sprintf("%.2f J", s.TotalEnergy.Joules())})
		summary.AppendRow(table.Row{"Total est. carbon", fmt.Sprintf("%.4f gCO2e", s.TotalCarbon.GramsCO2e())})
	}
	sb.WriteString(summary.RenderMarkdown())
	sb.WriteString("\n")

	if len(report.Violations) > 0 {
		sb.WriteString("\n## Below threshold\n\n")
		violations := table.NewWriter()
		violations.AppendHeader(table.Row{"File", "Function", "Eco"})
		for _, v := range report.Violations {
			violations.AppendRow(table.Row{v.FilePath, v.FunctionName, fmt.Sprintf("%.1f", float64(v.EcoScore))})
		}
		sb.WriteString(violations.RenderMarkdown())
		sb.WriteString("\n")
	}

	return sb.String()
}
