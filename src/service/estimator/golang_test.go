package estimator

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sustainabot/src/config"
	"sustainabot/src/model"
)

const sampleSource = `package sample

import "fmt"

func compute(items []int) int {
	total := 0
	for _, a := range items {
		for _, b := range items {
			total += a * b
		}
	}
	return total
}

func label(n int) string {
	s := ""
	for i := 0; i < n; i++ {
		s += fmt.Sprintf("%d,", i)
	}
	return s
}

type Tree struct{ left, right *Tree }

func (t *Tree) Walk(n int) {
	if n > 0 {
		t.Walk(n - 1)
	}
}

func fib(n int) int {
	if n < 2 {
		return n
	}
	return fib(n-1) + fib(n-2)
}

func trivial() int { return 1 }

var handler = func() {}
`

func newTestEstimator() *GoEstimator {
	return NewGoEstimator(config.DefaultConfig().Estimator)
}

func patternNames(r model.FunctionRecord) []string {
	var names []string
	for _, p := range r.Patterns {
		names = append(names, p.Name)
	}
	return names
}

func byName(t *testing.T, records []model.FunctionRecord) map[string]model.FunctionRecord {
	t.Helper()
	out := make(map[string]model.FunctionRecord)
	for _, r := range records {
		out[r.Location.DisplayName(model.AnonymousName)] = r
	}
	return out
}

func TestAnalyzeSourceFunctions(t *testing.T) {
	records, err := newTestEstimator().AnalyzeSource("sample.go", []byte(sampleSource))
	require.NoError(t, err)

	var names []string
	for _, r := range records {
		names = append(names, r.Location.DisplayName(model.AnonymousName))
		assert.Equal(t, "sample.go", r.Location.File)
	}
	assert.Equal(t, []string{"compute", "label", "Tree.Walk", "fib", "trivial", model.AnonymousName}, names)

	fns := byName(t, records)
	assert.Equal(t, 5, fns["compute"].Location.Line)
	assert.Equal(t, 1, fns["compute"].Location.Column)
	assert.Nil(t, fns[model.AnonymousName].Location.Name)
}

func TestAnalyzeSourcePatterns(t *testing.T) {
	records, err := newTestEstimator().AnalyzeSource("sample.go", []byte(sampleSource))
	require.NoError(t, err)
	fns := byName(t, records)

	tests := []struct {
		fn   string
		want []string
	}{
		{"compute", []string{"Nested Loop"}},
		{"label", []string{"Allocation In Loop", "String Concatenation In Loop"}},
		{"Tree.Walk", []string{"Recursion"}},
		{"fib", []string{"Recursion"}},
		{"trivial", nil},
	}

	for _, tt := range tests {
		t.Run(tt.fn, func(t *testing.T) {
			assert.Equal(t, tt.want, patternNames(fns[tt.fn]))
		})
	}

	nested := fns["compute"].Patterns[0]
	assert.Equal(t, model.PatternHigh, nested.Severity)
	assert.NotEmpty(t, nested.Description)
	assert.NotEmpty(t, nested.EstimatedImpact)
	assert.Contains(t, fns["compute"].Recommendations, patternAdvice["Nested Loop"])
}

func TestAnalyzeSourceCosts(t *testing.T) {
	records, err := newTestEstimator().AnalyzeSource("sample.go", []byte(sampleSource))
	require.NoError(t, err)
	fns := byName(t, records)

	compute, trivial := fns["compute"], fns["trivial"]
	assert.Greater(t, compute.Resources.Energy.Joules(), trivial.Resources.Energy.Joules())
	assert.Greater(t, compute.Resources.Duration.Milliseconds(), trivial.Resources.Duration.Milliseconds())
	assert.Greater(t, float64(trivial.Health.EcoScore), float64(compute.Health.EcoScore))
	assert.Greater(t, fns["label"].Resources.Memory.Bytes(), uint64(0))

	for _, r := range records {
		for _, score := range []float64{float64(r.Health.EcoScore), float64(r.Health.EconScore), r.Health.QualityScore, r.Health.Overall} {
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 100.0)
		}
		assert.GreaterOrEqual(t, r.Resources.Carbon.GramsCO2e(), 0.0)
	}
}

func TestNegativeCoefficientsKeepScoresInRange(t *testing.T) {
	cfg := config.DefaultConfig().Estimator
	cfg.JoulesPerOp = -1
	cfg.JoulesPerCall = -1
	cfg.JoulesPerAlloc = -1
	cfg.MillisPerOp = -1
	cfg.GridIntensityGPerKWh = -400

	records, err := NewGoEstimator(cfg).AnalyzeSource("sample.go", []byte(sampleSource))
	require.NoError(t, err)
	require.NotEmpty(t, records)

	for _, r := range records {
		assert.GreaterOrEqual(t, r.Resources.Energy.Joules(), 0.0)
		assert.GreaterOrEqual(t, r.Resources.Duration.Milliseconds(), 0.0)
		assert.GreaterOrEqual(t, r.Resources.Carbon.GramsCO2e(), 0.0)
		for _, score := range []float64{float64(r.Health.EcoScore), float64(r.Health.EconScore), r.Health.Overall} {
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 100.0)
		}
	}
}

func TestDeepNesting(t *testing.T) {
	src := `package deep

func deep(a, b, c, d, e bool) int {
	if a {
		if b {
			if c {
				if d {
					if e {
						return 1
					}
				}
			}
		}
	}
	return 0
}

func chain(n int) int {
	if n == 1 {
		return 1
	} else if n == 2 {
		return 2
	} else if n == 3 {
		return 3
	} else if n == 4 {
		return 4
	} else if n == 5 {
		return 5
	}
	return 0
}
`
	records, err := newTestEstimator().AnalyzeSource("deep.go", []byte(src))
	require.NoError(t, err)
	fns := byName(t, records)

	assert.Equal(t, []string{"Deep Nesting"}, patternNames(fns["deep"]))
	assert.Empty(t, patternNames(fns["chain"]), "else-if chains do not deepen nesting")
}

func TestDisabledDetectors(t *testing.T) {
	cfg := config.DefaultConfig().Estimator
	cfg.Patterns = config.PatternsConfig{MaxNestingDepth: 4}

	records, err := NewGoEstimator(cfg).AnalyzeSource("sample.go", []byte(sampleSource))
	require.NoError(t, err)
	for _, r := range records {
		assert.Empty(t, r.Patterns)
	}
}

func TestAnalyzeSourceParseError(t *testing.T) {
	_, err := newTestEstimator().AnalyzeSource("broken.go", []byte("package x\nfunc (\n"))
	assert.ErrorContains(t, err, "parsing broken.go")
}

func TestAnalyzeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.go")
	require.NoError(t, os.WriteFile(path, []byte(sampleSource), 0644))

	records, err := newTestEstimator().Analyze(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, records, 6)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = newTestEstimator().Analyze(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = newTestEstimator().Analyze(context.Background(), filepath.Join(t.TempDir(), "missing.go"))
	assert.Error(t, err)
}

func TestRegistry(t *testing.T) {
	dir := t.TempDir()
	goFile := filepath.Join(dir, "a.go")
	pyFile := filepath.Join(dir, "a.py")
	require.NoError(t, os.WriteFile(goFile, []byte(sampleSource), 0644))
	require.NoError(t, os.WriteFile(pyFile, []byte("def f():\n    pass\n"), 0644))

	registry := NewRegistry()
	registry.Register("Go", newTestEstimator())
	assert.Equal(t, []string{"Go"}, registry.Languages())

	records, err := registry.Analyze(context.Background(), goFile)
	require.NoError(t, err)
	assert.NotEmpty(t, records)

	_, err = registry.Analyze(context.Background(), pyFile)
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
}

func TestNewDetectors(t *testing.T) {
	detectors := NewDetectors(config.DefaultConfig().Estimator)
	require.Len(t, detectors, 5)

	severities := map[string]model.PatternSeverity{}
	for _, d := range detectors {
		assert.True(t, d.IsEnabled())
		severities[d.Name()] = d.Severity()
	}
	assert.Equal(t, model.PatternHigh, severities["Nested Loop"])
	assert.Equal(t, model.PatternMedium, severities["Allocation In Loop"])
	assert.Equal(t, model.PatternInfo, severities["Recursion"])
}
