// Package fleet publishes findings to the shared cross-tool context.
package fleet

import (
	"context"
	"fmt"

	"sustainabot/src/config"
	"sustainabot/src/model"
	"sustainabot/src/service/threshold"
	"sustainabot/src/util"
)

// Sink is the shared context's append operation
type Sink interface {
	AddFinding(ctx context.Context, f model.Finding) error
}

// Batcher is implemented by sinks that group one publication run
type Batcher interface {
	BeginBatch(runID string)
}

// Observer is notified for every finding that reached the sink
type Observer interface {
	FindingPublished(f model.Finding)
}

// Publisher evaluates results and appends the findings to a sink
type Publisher struct {
	sink     Sink
	observer Observer
}

// NewPublisher creates a publisher writing to sink.
// observer may be nil.
func NewPublisher(sink Sink, observer Observer) *Publisher {
	return &Publisher{sink: sink, observer: observer}
}

// Publish evaluates results against thresholds and appends every finding
// in order. Appends are not rolled back: when the sink fails, findings
// written before the failure stay and the remaining ones are dropped.
// It returns the findings that were appended.
func (p *Publisher) Publish(ctx context.Context, runID string, results []model.AnalysisResult, thresholds config.ThresholdsConfig) ([]model.Finding, error) {
	findings := threshold.EvaluateFleet(results, thresholds)
	util.Debug("Publishing %d findings for %d results (run %s)", len(findings), len(results), runID)

	if b, ok := p.sink.(Batcher); ok {
		b.BeginBatch(runID)
	}

	for i, f := range findings {
		if err := p.sink.AddFinding(ctx, f); err != nil {
			util.Error("Publishing finding %s failed after %d of %d: %v", f.ID, i, len(findings), err)
			return findings[:i], fmt.Errorf("adding finding %s: %w", f.ID, err)
		}
		if p.observer != nil {
			p.observer.FindingPublished(f)
		}
	}

	util.Info("Published %d findings", len(findings))
	return findings, nil
}
