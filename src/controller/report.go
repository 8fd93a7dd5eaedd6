package controller

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sustainabot/src/config"
	"sustainabot/src/model"
	"sustainabot/src/service/report"
	"sustainabot/src/util"
)

// ReportController handles report generation
type ReportController struct {
	cfg       *config.Config
	generator *report.Generator
}

// NewReportController creates a new report controller
func NewReportController(cfg *config.Config) *ReportController {
	return &ReportController{
		cfg:       cfg,
		generator: report.NewGenerator(cfg.Output, cfg.Agent),
	}
}

// Generator returns the underlying report generator
func (c *ReportController) Generator() *report.Generator {
	return c.generator
}

// RenderRecords renders records, falling back to JSON for unknown formats
// so an already finished analysis is never lost
func (c *ReportController) RenderRecords(records []model.FunctionRecord, format string) (string, error) {
	out, err := c.generator.Generate(records, format)
	if err == nil {
		return out, nil
	}

	fallback, jerr := c.generator.Generate(records, "json")
	if jerr != nil {
		return "", jerr
	}
	return fallback, err
}

// RenderCheck renders a check report, falling back to text for formats
// checks do not support. The original error is returned with the fallback.
func (c *ReportController) RenderCheck(checkReport *model.CheckReport, format string) (string, error) {
	out, err := c.generator.GenerateCheck(*checkReport, format)
	if err == nil {
		return out, nil
	}

	fallback, terr := c.generator.GenerateCheck(*checkReport, "text")
	if terr != nil {
		return "", terr
	}
	return fallback, err
}

// WriteRecords renders records and writes them under the output directory
func (c *ReportController) WriteRecords(records []model.FunctionRecord, name, format string) (string, error) {
	output, err := c.generator.Generate(records, format)
	if err != nil {
		return "", err
	}
	return c.write(name+"-sustainability", format, output)
}

// WriteCheck renders a check report and writes it under the output directory
func (c *ReportController) WriteCheck(checkReport *model.CheckReport, name, format string) (string, error) {
	output, err := c.generator.GenerateCheck(*checkReport, format)
	if err != nil {
		return "", err
	}
	return c.write(name+"-eco-check", format, output)
}

func (c *ReportController) write(stem, format, output string) (string, error) {
	outputPath := c.getOutputPath(stem, format)

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		util.Error("Failed to create output directory: %v", err)
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	if err := os.WriteFile(outputPath, []byte(output), 0644); err != nil {
		util.Error("Failed to write report to %s: %v", outputPath, err)
		return "", fmt.Errorf("writing report: %w", err)
	}

	util.Info("Report written: %s", outputPath)
	return outputPath, nil
}

func (c *ReportController) getOutputPath(stem, format string) string {
	ext := format
	switch format {
	case "markdown":
		ext = "md"
	case "text", "":
		ext = "txt"
	}

	return filepath.Join(c.cfg.Output.OutputDir, sanitizeName(stem)+"."+ext)
}

func sanitizeName(name string) string {
	name = strings.Trim(filepath.ToSlash(name), "/.")
	if name == "" {
		return "report"
	}
	return strings.NewReplacer("/", "-", " ", "-").Replace(name)
}
