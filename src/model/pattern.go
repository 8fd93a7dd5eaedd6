package model

import "fmt"

// PatternSeverity grades the ecological impact of a detected code pattern
type PatternSeverity int

const (
	PatternHigh PatternSeverity = iota
	PatternMedium
	PatternLow
	PatternInfo

	// PatternSeverityCount is the number of defined severities
	PatternSeverityCount
)

var patternSeverityNames = [PatternSeverityCount]string{
	PatternHigh:   "High",
	PatternMedium: "Medium",
	PatternLow:    "Low",
	PatternInfo:   "Info",
}

// String returns the severity name
func (s PatternSeverity) String() string {
	if s < 0 || s >= PatternSeverityCount {
		return fmt.Sprintf("PatternSeverity(%d)", int(s))
	}
	return patternSeverityNames[s]
}

// MarshalText encodes the severity by name
func (s PatternSeverity) MarshalText() ([]byte, error) {
	if s < 0 || s >= PatternSeverityCount {
		return nil, fmt.Errorf("invalid pattern severity %d", int(s))
	}
	return []byte(patternSeverityNames[s]), nil
}

// UnmarshalText decodes a severity name
func (s *PatternSeverity) UnmarshalText(text []byte) error {
	sev, err := ParsePatternSeverity(string(text))
	if err != nil {
		return err
	}
	*s = sev
	return nil
}

// ParsePatternSeverity resolves a severity from its name
func ParsePatternSeverity(name string) (PatternSeverity, error) {
	for i, n := range patternSeverityNames {
		if n == name {
			return PatternSeverity(i), nil
		}
	}
	return 0, fmt.Errorf("unknown pattern severity: %q", name)
}

// Pattern is a detected code pattern with ecological impact
type Pattern struct {
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Severity        PatternSeverity `json:"severity"`
	EstimatedImpact string          `json:"estimated_impact"`
}
