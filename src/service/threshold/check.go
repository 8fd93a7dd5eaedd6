// Package threshold evaluates measured functions against ecological
// thresholds, producing directory verdicts, fleet findings and an
// efficiency rating.
package threshold

import (
	"sustainabot/src/model"
	"sustainabot/src/service/aggregate"
)

// AnonymousMarker names anonymous functions in below-threshold lines
const AnonymousMarker = "<anon>"

// Check evaluates a directory scan against the eco score floor.
// Violations keep discovery order. The run passes when no function is
// strictly below the threshold, which includes the empty scan.
func Check(records []model.FunctionRecord, filesAnalyzed int, ecoThreshold float64) model.CheckReport {
	violations := make([]model.Violation, 0)
	for _, r := range records {
		if !aggregate.IsBelow(r, ecoThreshold) {
			continue
		}
		violations = append(violations, model.Violation{
			FilePath:     r.Location.File,
			FunctionName: r.Location.DisplayName(AnonymousMarker),
			EcoScore:     r.Health.EcoScore,
		})
	}

	summary := aggregate.Summarize(records, filesAnalyzed)
	summary.BelowThreshold = len(violations)

	return model.CheckReport{
		EcoThreshold: ecoThreshold,
		Violations:   violations,
		Summary:      summary,
		Passed:       len(violations) == 0,
	}
}
