package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sustainabot/src/config"
)

const sampleSource = `package sample

func sum(items []int) int {
	total := 0
	for _, v := range items {
		total += v
	}
	return total
}
`

// run executes the CLI in an isolated working directory
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.EnvConfigPath, "")

	var stdout, stderr bytes.Buffer
	h := New()
	h.SetOutput(&stdout, &stderr)
	h.SetArgs(args)
	err := h.Execute()
	return stdout.String(), stderr.String(), err
}

func writeSource(t *testing.T) (dir, file string) {
	t.Helper()
	dir = t.TempDir()
	file = filepath.Join(dir, "sample.go")
	require.NoError(t, os.WriteFile(file, []byte(sampleSource), 0644))
	return dir, file
}

func TestCheckPass(t *testing.T) {
	dir, _ := writeSource(t)

	out, _, err := run(t, "check", dir, "--eco-threshold", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Files analyzed:        1")
	assert.Contains(t, out, "Functions found:       1")
	assert.Contains(t, out, "Result: PASS (all functions meet eco threshold 0)")
}

func TestCheckFail(t *testing.T) {
	dir, _ := writeSource(t)

	out, _, err := run(t, "check", dir, "--eco-threshold", "100")
	assert.ErrorIs(t, err, ErrCheckFailed)
	assert.Contains(t, out, "BELOW THRESHOLD: ")
	assert.Contains(t, out, ":: sum (eco: ")
	assert.Contains(t, out, "Result: FAIL (1 functions below eco threshold 100)")
}

func TestCheckUnsupportedFormatFallsBackToText(t *testing.T) {
	dir, _ := writeSource(t)
	outDir := t.TempDir()

	out, errOut, err := run(t, "check", dir, "--eco-threshold", "0", "--format", "xml", "--output", outDir)
	require.NoError(t, err)
	assert.Contains(t, errOut, "Unsupported format: xml (showing text)")
	assert.Contains(t, out, "Result: PASS (all functions meet eco threshold 0)")

	matches, err := filepath.Glob(filepath.Join(outDir, "*.txt"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestCheckUnsupportedFormatStillFails(t *testing.T) {
	dir, _ := writeSource(t)

	out, _, err := run(t, "check", dir, "--eco-threshold", "100", "--format", "xml")
	assert.ErrorIs(t, err, ErrCheckFailed)
	assert.Contains(t, out, "Result: FAIL")
}

func TestCheckRejectsThresholdOutOfRange(t *testing.T) {
	dir, _ := writeSource(t)

	for _, threshold := range []string{"150", "-1"} {
		out, _, err := run(t, "check", dir, "--eco-threshold", threshold)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrCheckFailed)
		assert.ErrorContains(t, err, "--eco-threshold must be within 0-100")
		assert.Empty(t, out)
	}
}

func TestCheckEmptyDirectory(t *testing.T) {
	out, _, err := run(t, "check", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "Files analyzed:        0")
	assert.NotContains(t, out, "Avg eco score")
	assert.Contains(t, out, "Result: PASS (all functions meet eco threshold 50)")
}

func TestCheckMissingDirectory(t *testing.T) {
	_, _, err := run(t, "check", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCheckFailed)
}

func TestAnalyzeText(t *testing.T) {
	_, file := writeSource(t)

	out, _, err := run(t, "analyze", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Function: sum")
	assert.Contains(t, out, "Analysis complete")
}

func TestAnalyzeUnsupportedFormatFallsBackToJSON(t *testing.T) {
	_, file := writeSource(t)

	out, errOut, err := run(t, "analyze", file, "--format", "html")
	require.NoError(t, err)
	assert.Contains(t, errOut, "Unsupported format: html")

	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	assert.Len(t, records, 1)
}

func TestAnalyzeWritesReport(t *testing.T) {
	_, file := writeSource(t)
	outDir := t.TempDir()

	out, _, err := run(t, "analyze", file, "--format", "sarif", "--output", outDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Report written to ")

	matches, err := filepath.Glob(filepath.Join(outDir, "*.sarif"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestPublish(t *testing.T) {
	dir, _ := writeSource(t)

	out, errOut, err := run(t, "publish", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "[info] SUSTAIN-EFFICIENCY-RATING: Ecological efficiency rating: A (Excellent)")
	assert.Contains(t, errOut, "efficiency rating A (Excellent)")
}

func TestPublishUnknownSink(t *testing.T) {
	dir, _ := writeSource(t)

	_, _, err := run(t, "publish", dir, "--sink", "kafka")
	assert.ErrorContains(t, err, "unknown fleet sink")
}

func TestVersionAndPatterns(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "sustainabot 0.2.0\n", out)

	out, _, err = run(t, "patterns")
	require.NoError(t, err)
	for _, name := range []string{"Nested Loop", "Allocation In Loop", "String Concatenation In Loop", "Deep Nesting", "Recursion"} {
		assert.Contains(t, out, name)
	}
}

func TestSelfAnalyzeOutsideRepository(t *testing.T) {
	out, _, err := run(t, "self-analyze")
	require.NoError(t, err)
	assert.Contains(t, out, "Run from sustainabot repository root.")
}

func TestInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("thresholds:\n  eco_threshold: -5\n"), 0644))

	_, _, err := run(t, "version", "--config", path)
	assert.ErrorContains(t, err, "loading configuration")
}
