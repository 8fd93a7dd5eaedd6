package estimator

import (
	"fmt"
	"math"

	"sustainabot/src/config"
	"sustainabot/src/model"
)

// Detector recognises one resource-hungry code pattern
type Detector interface {
	// Name returns the pattern name used in findings
	Name() string

	// Severity returns the impact grade of the pattern
	Severity() model.PatternSeverity

	// Description explains the pattern
	Description() string

	// IsEnabled returns whether the detector is enabled
	IsEnabled() bool

	// Detect returns the pattern if the function exhibits it
	Detect(stats *FuncStats) (model.Pattern, bool)
}

// baseDetector carries the shared detector metadata
type baseDetector struct {
	name        string
	severity    model.PatternSeverity
	description string
	enabled     bool
}

func (b baseDetector) Name() string                    { return b.name }
func (b baseDetector) Severity() model.PatternSeverity { return b.severity }
func (b baseDetector) Description() string             { return b.description }
func (b baseDetector) IsEnabled() bool                 { return b.enabled }

func (b baseDetector) pattern(impact string) model.Pattern {
	return model.Pattern{
		Name:            b.name,
		Description:     b.description,
		Severity:        b.severity,
		EstimatedImpact: impact,
	}
}

type nestedLoopDetector struct {
	baseDetector
	iters int
}

func (d nestedLoopDetector) Detect(s *FuncStats) (model.Pattern, bool) {
	if s.MaxLoopDepth < 2 {
		return model.Pattern{}, false
	}
	factor := math.Pow(float64(d.iters), float64(s.MaxLoopDepth-1))
	return d.pattern(fmt.Sprintf("~%.0fx work per outer iteration (%d levels)", factor, s.MaxLoopDepth)), true
}

type allocationInLoopDetector struct {
	baseDetector
	bytesPerAlloc uint64
	iters         int
}

func (d allocationInLoopDetector) Detect(s *FuncStats) (model.Pattern, bool) {
	if s.AllocsInLoop == 0 {
		return model.Pattern{}, false
	}
	perPass := uint64(s.AllocsInLoop) * d.bytesPerAlloc * uint64(d.iters)
	return d.pattern(fmt.Sprintf("%d allocation site(s), ~%d bytes per pass", s.AllocsInLoop, perPass)), true
}

type concatInLoopDetector struct {
	baseDetector
}

func (d concatInLoopDetector) Detect(s *FuncStats) (model.Pattern, bool) {
	if s.ConcatInLoop == 0 {
		return model.Pattern{}, false
	}
	return d.pattern(fmt.Sprintf("%d concatenation(s) copying the accumulated string", s.ConcatInLoop)), true
}

type deepNestingDetector struct {
	baseDetector
	maxDepth int
}

func (d deepNestingDetector) Detect(s *FuncStats) (model.Pattern, bool) {
	if s.MaxNesting <= d.maxDepth {
		return model.Pattern{}, false
	}
	return d.pattern(fmt.Sprintf("nesting depth %d exceeds %d", s.MaxNesting, d.maxDepth)), true
}

type recursionDetector struct {
	baseDetector
}

func (d recursionDetector) Detect(s *FuncStats) (model.Pattern, bool) {
	if !s.Recursive {
		return model.Pattern{}, false
	}
	return d.pattern("stack growth proportional to recursion depth"), true
}

// NewDetectors builds every pattern detector from config
func NewDetectors(cfg config.EstimatorConfig) []Detector {
	p := cfg.Patterns
	return []Detector{
		nestedLoopDetector{
			baseDetector: baseDetector{"Nested Loop", model.PatternHigh,
				"Loop nested inside another loop multiplies work per element", p.NestedLoop},
			iters: cfg.AssumedLoopIters,
		},
		allocationInLoopDetector{
			baseDetector: baseDetector{"Allocation In Loop", model.PatternMedium,
				"Heap allocation repeated on every iteration", p.AllocationInLoop},
			bytesPerAlloc: cfg.BytesPerAlloc,
			iters:         cfg.AssumedLoopIters,
		},
		concatInLoopDetector{
			baseDetector: baseDetector{"String Concatenation In Loop", model.PatternLow,
				"Repeated string concatenation reallocates the result", p.ConcatInLoop},
		},
		deepNestingDetector{
			baseDetector: baseDetector{"Deep Nesting", model.PatternLow,
				"Deeply nested control flow obscures the hot path", p.DeepNesting},
			maxDepth: p.MaxNestingDepth,
		},
		recursionDetector{
			baseDetector: baseDetector{"Recursion", model.PatternInfo,
				"Direct recursion without visible depth bound", p.Recursion},
		},
	}
}

// detectPatterns runs every enabled detector in registration order
func detectPatterns(detectors []Detector, stats *FuncStats) []model.Pattern {
	var patterns []model.Pattern
	for _, d := range detectors {
		if !d.IsEnabled() {
			continue
		}
		if p, ok := d.Detect(stats); ok {
			patterns = append(patterns, p)
		}
	}
	return patterns
}
