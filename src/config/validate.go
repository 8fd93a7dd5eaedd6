package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

var knownSinks = map[string]bool{
	"memory":   true,
	"file":     true,
	"http":     true,
	"postgres": true,
}

var knownFormats = map[string]bool{
	"text":     true,
	"json":     true,
	"sarif":    true,
	"markdown": true,
	"md":       true,
}

// Validate checks the configuration for values no run could use
func (c *Config) Validate() error {
	var errs []error

	if c.Thresholds.EcoThreshold < 0 || c.Thresholds.EcoThreshold > 100 {
		errs = append(errs, fmt.Errorf("thresholds.eco_threshold must be within 0-100, got %v", c.Thresholds.EcoThreshold))
	}
	if c.Thresholds.TotalEnergyThresholdKJ < 0 || c.Thresholds.TotalCarbonThresholdGrams < 0 || c.Thresholds.EnergyPerFunctionJoules < 0 {
		errs = append(errs, errors.New("thresholds must not be negative"))
	}
	if c.Scan.MaxParallelFiles <= 0 {
		errs = append(errs, fmt.Errorf("scan.max_parallel_files must be positive, got %d", c.Scan.MaxParallelFiles))
	}
	if _, err := c.Scan.MaxFileSizeBytes(); err != nil {
		errs = append(errs, err)
	}
	est := c.Estimator
	if est.JoulesPerOp < 0 || est.JoulesPerCall < 0 || est.JoulesPerAlloc < 0 ||
		est.MillisPerOp < 0 || est.GridIntensityGPerKWh < 0 {
		errs = append(errs, errors.New("estimator coefficients must not be negative"))
	}
	if est.EcoReferenceJoules <= 0 || est.EconReferenceMillis <= 0 {
		errs = append(errs, errors.New("estimator reference values must be positive"))
	}
	if !knownSinks[c.Fleet.Sink] {
		errs = append(errs, fmt.Errorf("fleet.sink %q is not one of memory, file, http, postgres", c.Fleet.Sink))
	}
	if c.Output.Format != "" && !knownFormats[c.Output.Format] {
		errs = append(errs, fmt.Errorf("output.format %q is not supported", c.Output.Format))
	}

	return errors.Join(errs...)
}

// MaxFileSizeBytes parses the human-readable file size limit.
// An empty value means no limit and yields zero.
func (s ScanConfig) MaxFileSizeBytes() (uint64, error) {
	trimmed := strings.TrimSpace(s.MaxFileSize)
	if trimmed == "" {
		return 0, nil
	}

	size, err := humanize.ParseBytes(trimmed)
	if err != nil {
		return 0, fmt.Errorf("scan.max_file_size %q: %w", s.MaxFileSize, err)
	}

	return size, nil
}
