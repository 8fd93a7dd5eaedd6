package threshold

import "sustainabot/src/model"

// findingSeverity maps pattern severities onto the fleet taxonomy.
// The mapping is lossy and must not be inverted.
var findingSeverity = [...]model.FindingSeverity{
	model.PatternHigh:   model.FindingWarning,
	model.PatternMedium: model.FindingWarning,
	model.PatternLow:    model.FindingInfo,
	model.PatternInfo:   model.FindingInfo,
}

// Adding a pattern severity without a mapping breaks this assignment.
var _ [model.PatternSeverityCount]model.FindingSeverity = findingSeverity

// MapSeverity converts a pattern severity to a fleet finding severity
func MapSeverity(s model.PatternSeverity) model.FindingSeverity {
	if s < 0 || s >= model.PatternSeverityCount {
		return model.FindingInfo
	}
	return findingSeverity[s]
}
