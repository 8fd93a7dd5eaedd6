package report

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sustainabot/src/config"
	"sustainabot/src/model"
	"sustainabot/src/service/threshold"
)

func newTestGenerator() *Generator {
	cfg := config.DefaultConfig()
	cfg.Output.Color = false
	return NewGenerator(cfg.Output, cfg.Agent)
}

func strPtr(s string) *string { return &s }

func sampleRecords() []model.FunctionRecord {
	return []model.FunctionRecord{
		{
			Location: model.Location{Name: strPtr("compute"), File: "src/calc.go", Line: 12, Column: 1},
			Resources: model.ResourceUsage{
				Energy:   37.5,
				Duration: 1.234,
				Carbon:   0.0049,
				Memory:   2048,
			},
			Health: model.HealthScores{EcoScore: 40, EconScore: 55, QualityScore: 85, Overall: 58},
			Patterns: []model.Pattern{{
				Name:            "Nested Loop",
				Description:     "Loop nested inside another loop",
				Severity:        model.PatternHigh,
				EstimatedImpact: "~10x work",
			}},
			Recommendations: []string{"Replace the inner loop with a map lookup"},
		},
		{
			Location:  model.Location{File: "src/calc.go", Line: 30, Column: 9},
			Resources: model.ResourceUsage{Energy: 0.5},
			Health:    model.HealthScores{EcoScore: 99.5, Overall: 90},
		},
	}
}

func TestGenerateText(t *testing.T) {
	out, err := newTestGenerator().Generate(sampleRecords(), "text")
	require.NoError(t, err)

	for _, want := range []string{
		"Function: compute\n",
		"   Location: src/calc.go:12:1\n",
		"     Energy:   37.50 J\n",
		"     Time:     1.23 ms\n",
		"     Carbon:   0.0049 gCO2e\n",
		"     Memory:   2048 bytes\n",
		"     Eco:      40.0/100\n",
		"     Econ:     55.0/100\n",
		"     Overall:  58.0/100\n",
		"     [High] Nested Loop: ~10x work\n",
		"     • Replace the inner loop with a map lookup\n",
		"Function: <anonymous>\n",
	} {
		assert.Contains(t, out, want)
	}
	assert.True(t, strings.HasSuffix(out, "\nAnalysis complete\n"))
}

func TestGenerateJSON(t *testing.T) {
	out, err := newTestGenerator().Generate(sampleRecords(), "json")
	require.NoError(t, err)

	var decoded []model.FunctionRecord
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "compute", *decoded[0].Location.Name)
	assert.Nil(t, decoded[1].Location.Name)
	assert.Equal(t, model.PatternHigh, decoded[0].Patterns[0].Severity)
}

func TestGenerateMarkdown(t *testing.T) {
	out, err := newTestGenerator().Generate(sampleRecords(), "markdown")
	require.NoError(t, err)

	assert.Contains(t, out, "# Sustainability Report")
	assert.Contains(t, out, "| compute |")
	assert.Contains(t, out, "2.0 KiB")
	assert.Contains(t, out, "- [HIGH] `compute`: Nested Loop (~10x work)")
	assert.Contains(t, out, "### `compute`")

	empty, err := newTestGenerator().Generate(nil, "md")
	require.NoError(t, err)
	assert.Contains(t, empty, "No functions found.")
}

func TestGenerateSARIF(t *testing.T) {
	out, err := newTestGenerator().Generate(sampleRecords(), "sarif")
	require.NoError(t, err)

	var doc struct {
		Version string `json:"version"`
		Runs    []struct {
			Tool struct {
				Driver struct {
					Name  string `json:"name"`
					Rules []struct {
						ID string `json:"id"`
					} `json:"rules"`
				} `json:"driver"`
			} `json:"tool"`
			Results []struct {
				RuleID string `json:"ruleId"`
				Level  string `json:"level"`
			} `json:"results"`
		} `json:"runs"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))

	assert.Equal(t, "2.1.0", doc.Version)
	require.Len(t, doc.Runs, 1)
	assert.Equal(t, "sustainabot", doc.Runs[0].Tool.Driver.Name)
	require.Len(t, doc.Runs[0].Tool.Driver.Rules, 1)
	assert.Equal(t, "sustain/nested-loop", doc.Runs[0].Tool.Driver.Rules[0].ID)
	require.Len(t, doc.Runs[0].Results, 1)
	assert.Equal(t, "error", doc.Runs[0].Results[0].Level)
}

func TestGenerateUnsupported(t *testing.T) {
	_, err := newTestGenerator().Generate(sampleRecords(), "html")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestCheckTextEmpty(t *testing.T) {
	report := threshold.Check(nil, 0, 50)
	report.Root = "src"

	out, err := newTestGenerator().GenerateCheck(report, "text")
	require.NoError(t, err)

	assert.Equal(t, "Checking directory: src (eco threshold: 50)\n\n"+
		"\n--- Summary ---\n"+
		"Files analyzed:        0\n"+
		"Functions found:       0\n"+
		"Below threshold:       0\n"+
		"\nResult: PASS (all functions meet eco threshold 50)\n", out)
}

func TestCheckTextFail(t *testing.T) {
	records := []model.FunctionRecord{
		{Location: model.Location{Name: strPtr("a"), File: "x.go"}, Health: model.HealthScores{EcoScore: 40, Overall: 50}, Resources: model.ResourceUsage{Energy: 1.5, Carbon: 0.0001}},
		{Location: model.Location{File: "x.go"}, Health: model.HealthScores{EcoScore: 60, Overall: 70}, Resources: model.ResourceUsage{Energy: 2}},
		{Location: model.Location{Name: strPtr("c"), File: "y.go"}, Health: model.HealthScores{EcoScore: 80, Overall: 90}, Resources: model.ResourceUsage{Energy: 3}},
	}
	report := threshold.Check(records, 2, 50)
	report.Root = "."

	out, err := newTestGenerator().GenerateCheck(report, "text")
	require.NoError(t, err)

	assert.Contains(t, out, "  BELOW THRESHOLD: x.go :: a (eco: 40.0, threshold: 50)\n")
	assert.Contains(t, out, "Files analyzed:        2\n")
	assert.Contains(t, out, "Functions found:       3\n")
	assert.Contains(t, out, "Below threshold:       1\n")
	assert.Contains(t, out, "Avg eco score:         60.0/100\n")
	assert.Contains(t, out, "Avg overall health:    70.0/100\n")
	assert.Contains(t, out, "Total est. energy:     6.50 J\n")
	assert.Contains(t, out, "Total est. carbon:     0.0001 gCO2e\n")
	assert.True(t, strings.HasSuffix(out, "\nResult: FAIL (1 functions below eco threshold 50)\n"))
}

func TestCheckAnonymousViolation(t *testing.T) {
	records := []model.FunctionRecord{{Location: model.Location{File: "z.go"}, Health: model.HealthScores{EcoScore: 10}}}
	report := threshold.Check(records, 1, 42.5)

	out, err := newTestGenerator().GenerateCheck(report, "text")
	require.NoError(t, err)
	assert.Contains(t, out, "BELOW THRESHOLD: z.go :: <anon> (eco: 10.0, threshold: 42.5)")
}

func TestCheckJSONAndMarkdown(t *testing.T) {
	report := threshold.Check(nil, 0, 50)

	out, err := newTestGenerator().GenerateCheck(report, "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"avg_eco": null`)
	assert.Contains(t, out, `"passed": true`)

	md, err := newTestGenerator().GenerateCheck(report, "markdown")
	require.NoError(t, err)
	assert.Contains(t, md, "**Result:** PASS")
	assert.NotContains(t, md, "Avg eco score")
}

func TestGenerateFindings(t *testing.T) {
	findings := []model.Finding{
		model.NewFinding("SUSTAIN-HIGH-ENERGY", model.FindingWarning, "High total energy consumption: 12.00 kJ (threshold: 10.00 kJ)"),
		model.NewFinding("SUSTAIN-EFFICIENCY-RATING", model.FindingInfo, "Ecological efficiency rating: F (Very Poor)"),
	}

	out, err := newTestGenerator().GenerateFindings(findings, "text")
	require.NoError(t, err)
	assert.Equal(t, "[warning] SUSTAIN-HIGH-ENERGY: High total energy consumption: 12.00 kJ (threshold: 10.00 kJ)\n"+
		"[info] SUSTAIN-EFFICIENCY-RATING: Ecological efficiency rating: F (Very Poor)\n", out)

	js, err := newTestGenerator().GenerateFindings(findings, "json")
	require.NoError(t, err)
	assert.Contains(t, js, `"bot": "sustainabot"`)
}
