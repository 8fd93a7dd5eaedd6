// Package telemetry records run counters for a scan and its publication and
// exports them as a Prometheus textfile or to a Pushgateway.
package telemetry

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"sustainabot/src/config"
	"sustainabot/src/model"
	"sustainabot/src/util"
)

const namespace = "sustainabot"

// Metrics holds the counters of one run on a private registry
type Metrics struct {
	registry *prometheus.Registry

	FilesAnalyzed     prometheus.Counter
	FilesFailed       prometheus.Counter
	Functions         prometheus.Counter
	BelowThreshold    prometheus.Counter
	TotalEnergyJoules prometheus.Gauge
	TotalCarbonGrams  prometheus.Gauge
	Findings          *prometheus.CounterVec
	CheckPassed       prometheus.Gauge
}

// New creates and registers the run metrics
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		FilesAnalyzed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "files_analyzed_total",
			Help: "Files that yielded at least one measured function.",
		}),
		FilesFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "files_failed_total",
			Help: "Files skipped because estimation failed.",
		}),
		Functions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "functions_total",
			Help: "Measured functions.",
		}),
		BelowThreshold: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "functions_below_threshold_total",
			Help: "Functions with an eco score below the threshold.",
		}),
		TotalEnergyJoules: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "estimated_energy_joules",
			Help: "Sum of estimated energy over measured functions.",
		}),
		TotalCarbonGrams: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "estimated_carbon_grams",
			Help: "Sum of estimated carbon over measured functions.",
		}),
		Findings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "findings_published_total",
			Help: "Findings appended to the shared context.",
		}, []string{"severity"}),
		CheckPassed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "check_passed",
			Help: "1 when the last directory check passed, 0 otherwise.",
		}),
	}

	m.registry.MustRegister(
		m.FilesAnalyzed, m.FilesFailed, m.Functions, m.BelowThreshold,
		m.TotalEnergyJoules, m.TotalCarbonGrams, m.Findings, m.CheckPassed,
	)
	return m
}

// Registry exposes the registry for gathering
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveScan records file and function counts of a scan
func (m *Metrics) ObserveScan(filesAnalyzed, filesFailed int, summary model.Summary) {
	m.FilesAnalyzed.Add(float64(filesAnalyzed))
	m.FilesFailed.Add(float64(filesFailed))
	m.Functions.Add(float64(summary.TotalFunctions))
	m.TotalEnergyJoules.Set(summary.TotalEnergy.Joules())
	m.TotalCarbonGrams.Set(summary.TotalCarbon.GramsCO2e())
}

// ObserveCheck records the verdict of a directory check
func (m *Metrics) ObserveCheck(report model.CheckReport) {
	m.BelowThreshold.Add(float64(len(report.Violations)))
	if report.Passed {
		m.CheckPassed.Set(1)
	} else {
		m.CheckPassed.Set(0)
	}
}

// FindingPublished counts a finding that reached the shared context
func (m *Metrics) FindingPublished(f model.Finding) {
	m.Findings.WithLabelValues(string(f.Severity)).Inc()
}

// Export writes the metrics wherever cfg asks for them
func (m *Metrics) Export(cfg config.MetricsConfig) error {
	if !cfg.Enabled {
		return nil
	}

	if cfg.TextfilePath != "" {
		if err := prometheus.WriteToTextfile(cfg.TextfilePath, m.registry); err != nil {
			return fmt.Errorf("writing metrics textfile: %w", err)
		}
		util.Debug("Metrics written to %s", cfg.TextfilePath)
	}

	if cfg.PushgatewayURL != "" {
		if err := push.New(cfg.PushgatewayURL, cfg.JobName).Gatherer(m.registry).Push(); err != nil {
			return fmt.Errorf("pushing metrics: %w", err)
		}
		util.Debug("Metrics pushed to %s", cfg.PushgatewayURL)
	}

	return nil
}
