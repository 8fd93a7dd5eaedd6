package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sustainabot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 50.0, cfg.Thresholds.EcoThreshold)
	assert.Equal(t, 10.0, cfg.Thresholds.TotalEnergyThresholdKJ)
	assert.Equal(t, 2.0, cfg.Thresholds.TotalCarbonThresholdGrams)
	assert.Equal(t, 100.0, cfg.Thresholds.EnergyPerFunctionJoules)
	assert.ElementsMatch(t, []string{"target", "node_modules", ".git", "dist", "build", ".cache"}, cfg.Scan.ExcludeDirs)
	assert.Equal(t, "memory", cfg.Fleet.Sink)
	require.NoError(t, cfg.Validate())
}

func TestLoadWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvConfigPath, "")

	loader := NewLoader()
	cfg, err := loader.Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Empty(t, loader.Path())
}

func TestLoadFromEnvPath(t *testing.T) {
	path := writeConfig(t, "thresholds:\n  eco_threshold: 70\n")
	t.Setenv(EnvConfigPath, path)

	loader := NewLoader()
	cfg, err := loader.Load("")
	require.NoError(t, err)
	assert.Equal(t, 70.0, cfg.Thresholds.EcoThreshold)
	assert.Equal(t, path, loader.Path())
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := NewLoader().Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
thresholds:
  eco_threshold: 65
scan:
  extensions: [".go", ".rs"]
  max_file_size: "256 KiB"
fleet:
  sink: http
  timeout: 3s
`)

	cfg, err := NewLoader().Load(path)
	require.NoError(t, err)

	assert.Equal(t, 65.0, cfg.Thresholds.EcoThreshold)
	assert.Equal(t, 10.0, cfg.Thresholds.TotalEnergyThresholdKJ, "unset keys keep defaults")
	assert.Equal(t, []string{".go", ".rs"}, cfg.Scan.Extensions)
	assert.Equal(t, "http", cfg.Fleet.Sink)
	assert.Equal(t, 3*time.Second, cfg.Fleet.Timeout)

	size, err := cfg.Scan.MaxFileSizeBytes()
	require.NoError(t, err)
	assert.Equal(t, uint64(256*1024), size)
}

func TestLoadExpandsEnvVars(t *testing.T) {
	t.Setenv("SUSTAINABOT_TEST_URL", "http://fleet:9000")

	path := writeConfig(t, `
fleet:
  sink: http
  url: ${SUSTAINABOT_TEST_URL}
  file: ${SUSTAINABOT_TEST_UNSET:-/tmp/findings.jsonl}
`)

	cfg, err := NewLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://fleet:9000", cfg.Fleet.URL)
	assert.Equal(t, "/tmp/findings.jsonl", cfg.Fleet.File)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := NewLoader().Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorContains(t, err, "reading config file")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := NewLoader().Load(writeConfig(t, "thresholds: [1, 2"))
		assert.ErrorContains(t, err, "parsing config file")
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := NewLoader().Load(writeConfig(t, "thresholds:\n  eco_treshold: 40\n"))
		assert.ErrorContains(t, err, "eco_treshold")
	})

	t.Run("invalid values", func(t *testing.T) {
		_, err := NewLoader().Load(writeConfig(t, "thresholds:\n  eco_threshold: 150\n"))
		assert.ErrorContains(t, err, "eco_threshold")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"negative carbon", func(c *Config) { c.Thresholds.TotalCarbonThresholdGrams = -1 }, "must not be negative"},
		{"no parallelism", func(c *Config) { c.Scan.MaxParallelFiles = 0 }, "max_parallel_files"},
		{"bad size", func(c *Config) { c.Scan.MaxFileSize = "lots" }, "max_file_size"},
		{"unknown sink", func(c *Config) { c.Fleet.Sink = "kafka" }, "fleet.sink"},
		{"unknown format", func(c *Config) { c.Output.Format = "html" }, "output.format"},
		{"eco threshold above range", func(c *Config) { c.Thresholds.EcoThreshold = 150 }, "eco_threshold"},
		{"negative joules per op", func(c *Config) { c.Estimator.JoulesPerOp = -1e-6 }, "coefficients must not be negative"},
		{"negative joules per call", func(c *Config) { c.Estimator.JoulesPerCall = -1 }, "coefficients must not be negative"},
		{"negative joules per alloc", func(c *Config) { c.Estimator.JoulesPerAlloc = -1 }, "coefficients must not be negative"},
		{"negative millis per op", func(c *Config) { c.Estimator.MillisPerOp = -1 }, "coefficients must not be negative"},
		{"negative grid intensity", func(c *Config) { c.Estimator.GridIntensityGPerKWh = -400 }, "coefficients must not be negative"},
		{"zero eco reference", func(c *Config) { c.Estimator.EcoReferenceJoules = 0 }, "reference values must be positive"},
		{"negative econ reference", func(c *Config) { c.Estimator.EconReferenceMillis = -5 }, "reference values must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestMaxFileSizeBytesEmpty(t *testing.T) {
	size, err := ScanConfig{}.MaxFileSizeBytes()
	require.NoError(t, err)
	assert.Zero(t, size)
}
