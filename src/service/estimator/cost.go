package estimator

import (
	"fmt"

	"sustainabot/src/config"
	"sustainabot/src/model"
)

const joulesPerKWh = 3.6e6

// qualityPenalty is subtracted from the quality score per detected pattern
var qualityPenalty = [...]float64{
	model.PatternHigh:   15,
	model.PatternMedium: 10,
	model.PatternLow:    5,
	model.PatternInfo:   0,
}

var _ [model.PatternSeverityCount]float64 = qualityPenalty

// estimateResources converts operation counts into resource figures
func estimateResources(s *FuncStats, cfg config.EstimatorConfig) model.ResourceUsage {
	joules := s.WeightedOps*cfg.JoulesPerOp +
		s.WeightedCalls*cfg.JoulesPerCall +
		s.WeightedAllocs*cfg.JoulesPerAlloc

	millis := (s.WeightedOps + s.WeightedCalls + s.WeightedAllocs) * cfg.MillisPerOp

	joules, millis = max(0, joules), max(0, millis)
	return model.ResourceUsage{
		Energy:   model.Energy(joules),
		Duration: model.Duration(millis),
		Carbon:   model.Carbon(max(0, joules/joulesPerKWh*cfg.GridIntensityGPerKWh)),
		Memory:   model.Memory(uint64(s.WeightedAllocs) * cfg.BytesPerAlloc),
	}
}

// inverseScore maps a non-negative cost onto (0,100]; cost == ref scores 50
func inverseScore(cost, ref float64) float64 {
	if ref <= 0 {
		return 100
	}
	if cost <= 0 {
		return 100
	}
	return 100 * ref / (ref + cost)
}

func clampScore(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}

// scoreHealth derives the health bundle of one function
func scoreHealth(s *FuncStats, usage model.ResourceUsage, patterns []model.Pattern, cfg config.EstimatorConfig) model.HealthScores {
	eco := clampScore(inverseScore(usage.Energy.Joules(), cfg.EcoReferenceJoules))
	econ := clampScore(inverseScore(usage.Duration.Milliseconds(), cfg.EconReferenceMillis))

	quality := 100.0
	if s.MaxNesting > 2 {
		quality -= 8 * float64(s.MaxNesting-2)
	}
	if s.Lines > 40 {
		quality -= float64(s.Lines-40) / 5
	}
	for _, p := range patterns {
		if p.Severity >= 0 && p.Severity < model.PatternSeverityCount {
			quality -= qualityPenalty[p.Severity]
		}
	}
	quality = clampScore(quality)

	w := cfg.Weights
	overall := eco
	if total := w.Eco + w.Econ + w.Quality; total > 0 {
		overall = (eco*w.Eco + econ*w.Econ + quality*w.Quality) / total
	}

	return model.HealthScores{
		EcoScore:     model.EcoScore(eco),
		EconScore:    model.EconScore(econ),
		QualityScore: quality,
		Overall:      overall,
	}
}

var patternAdvice = map[string]string{
	"Nested Loop":                  "Replace the inner loop with a map lookup or precomputed index",
	"Allocation In Loop":           "Hoist allocations out of the loop or preallocate with a capacity",
	"String Concatenation In Loop": "Build the string with strings.Builder",
	"Deep Nesting":                 "Flatten control flow with early returns",
	"Recursion":                    "Bound the recursion depth or convert it to iteration",
}

// recommend lists advice for the detected patterns and weak scores
func recommend(patterns []model.Pattern, health model.HealthScores, usage model.ResourceUsage) []string {
	recs := make([]string, 0, len(patterns)+1)
	for _, p := range patterns {
		if advice, ok := patternAdvice[p.Name]; ok {
			recs = append(recs, advice)
		}
	}
	if health.EcoScore < 50 {
		recs = append(recs, fmt.Sprintf("Estimated %.2f J per call; reduce repeated work on the hot path", usage.Energy.Joules()))
	}
	return recs
}
