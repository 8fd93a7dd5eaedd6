package controller

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"sustainabot/src/config"
	"sustainabot/src/model"
	"sustainabot/src/service/aggregate"
	"sustainabot/src/service/estimator"
	"sustainabot/src/service/fleet"
	"sustainabot/src/service/scanner"
	"sustainabot/src/service/telemetry"
	"sustainabot/src/service/threshold"
	"sustainabot/src/util"
)

// AnalysisController orchestrates scans, checks and fleet publication
type AnalysisController struct {
	cfg       *config.Config
	estimator estimator.Estimator
	metrics   *telemetry.Metrics
}

// NewAnalysisController creates a controller using the default estimators
func NewAnalysisController(cfg *config.Config, metrics *telemetry.Metrics) *AnalysisController {
	registry := estimator.NewRegistry()
	registry.Register("Go", estimator.NewGoEstimator(cfg.Estimator))
	util.Debug("Estimators registered for: %v", registry.Languages())

	return NewAnalysisControllerWith(cfg, registry, metrics)
}

// NewAnalysisControllerWith creates a controller around a given estimator
func NewAnalysisControllerWith(cfg *config.Config, est estimator.Estimator, metrics *telemetry.Metrics) *AnalysisController {
	if metrics == nil {
		metrics = telemetry.New()
	}
	return &AnalysisController{cfg: cfg, estimator: est, metrics: metrics}
}

// Metrics returns the run metrics
func (c *AnalysisController) Metrics() *telemetry.Metrics {
	return c.metrics
}

// AnalyzeFile measures the functions of a single file
func (c *AnalysisController) AnalyzeFile(ctx context.Context, path string) ([]model.FunctionRecord, error) {
	util.Info("Analyzing file: %s", path)
	records, err := c.estimator.Analyze(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("analyzing %s: %w", path, err)
	}
	util.Debug("Measured %d functions in %s", len(records), path)
	return records, nil
}

func (c *AnalysisController) scan(ctx context.Context, root string) (*scanner.Result, error) {
	s, err := scanner.New(c.cfg.Scan, c.estimator)
	if err != nil {
		return nil, fmt.Errorf("configuring scanner: %w", err)
	}
	return s.Scan(ctx, root)
}

// CheckRequest represents a directory threshold check
type CheckRequest struct {
	Root         string
	EcoThreshold float64
}

// Check scans a directory and evaluates every function against the eco
// score floor
func (c *AnalysisController) Check(ctx context.Context, req CheckRequest) (*model.CheckReport, error) {
	startTime := time.Now()
	util.Info("Checking directory: %s", req.Root)

	res, err := c.scan(ctx, req.Root)
	if err != nil {
		return nil, err
	}

	report := threshold.Check(res.Records, res.FilesAnalyzed, req.EcoThreshold)
	report.RunID = uuid.NewString()
	report.Root = req.Root
	report.GeneratedAt = time.Now().UTC()

	c.metrics.ObserveScan(res.FilesAnalyzed, res.FilesFailed, report.Summary)
	c.metrics.ObserveCheck(report)

	util.Info("Check complete: %d of %d functions below threshold %v, passed=%v (took %v)",
		len(report.Violations), report.Summary.TotalFunctions, req.EcoThreshold, report.Passed, time.Since(startTime))
	return &report, nil
}

// PublishRequest represents a scan whose findings go to the shared context
type PublishRequest struct {
	Root       string
	Thresholds config.ThresholdsConfig
	Sink       fleet.Sink // optional; built from config when nil
}

// PublishResult carries what was appended to the shared context
type PublishResult struct {
	RunID    string
	Findings []model.Finding
	Rating   threshold.Rating
}

// Publish scans a directory and appends the fleet findings to the sink
func (c *AnalysisController) Publish(ctx context.Context, req PublishRequest) (*PublishResult, error) {
	util.Info("Publishing findings for: %s", req.Root)

	res, err := c.scan(ctx, req.Root)
	if err != nil {
		return nil, err
	}

	sink := req.Sink
	if sink == nil {
		var closeSink func() error
		sink, closeSink, err = fleet.NewSink(ctx, c.cfg.Fleet)
		if err != nil {
			return nil, fmt.Errorf("opening shared context: %w", err)
		}
		defer func() {
			if cerr := closeSink(); cerr != nil {
				util.Warn("Closing shared context: %v", cerr)
			}
		}()
	}

	c.metrics.ObserveScan(res.FilesAnalyzed, res.FilesFailed, aggregate.Summarize(res.Records, res.FilesAnalyzed))

	results := model.FleetViews(res.Records)
	runID := uuid.NewString()

	publisher := fleet.NewPublisher(sink, c.metrics)
	findings, err := publisher.Publish(ctx, runID, results, req.Thresholds)
	out := &PublishResult{
		RunID:    runID,
		Findings: findings,
		Rating:   threshold.EfficiencyRating(results, req.Thresholds),
	}
	if err != nil {
		return out, fmt.Errorf("publishing findings: %w", err)
	}

	return out, nil
}
