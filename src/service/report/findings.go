package report

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"sustainabot/src/model"
	"sustainabot/src/util"
)

// GenerateFindings renders published fleet findings
func (g *Generator) GenerateFindings(findings []model.Finding, format string) (string, error) {
	switch format {
	case "text", "":
		var sb strings.Builder
		for _, f := range findings {
			attr := color.FgCyan
			if f.Severity == model.FindingWarning {
				attr = color.FgYellow
			}
			g.paint(attr).Fprintf(&sb, "[%s] %s: %s\n", f.Severity, f.ID, f.Message)
		}
		return sb.String(), nil
	case "json":
		return generateJSON(findings)
	default:
		util.Warn("Unsupported findings format requested: %s", format)
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}
