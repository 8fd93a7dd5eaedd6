package model

// AnonymousName is displayed for functions without a name
const AnonymousName = "<anonymous>"

// Location identifies a function within a source file
type Location struct {
	Name   *string `json:"name"`
	File   string  `json:"file"`
	Line   int     `json:"line"`
	Column int     `json:"column"`
}

// DisplayName returns the function name or the given marker when anonymous
func (l Location) DisplayName(anon string) string {
	if l.Name == nil {
		return anon
	}
	return *l.Name
}

// FunctionRecord is the estimator's measurement of a single function.
// Records are built once by the estimator and never mutated afterwards.
type FunctionRecord struct {
	Location        Location      `json:"location"`
	Resources       ResourceUsage `json:"resources"`
	Health          HealthScores  `json:"health"`
	Recommendations []string      `json:"recommendations"`
	Patterns        []Pattern     `json:"patterns,omitempty"`
}

// AnalysisResult is the fleet-facing view of one measured function
type AnalysisResult struct {
	FunctionName string    `json:"function_name"`
	FilePath     string    `json:"file_path"`
	Energy       Energy    `json:"energy"`
	Carbon       Carbon    `json:"carbon"`
	Duration     Duration  `json:"duration"`
	Patterns     []Pattern `json:"patterns"`
}

// FleetView projects the record onto the fleet-facing result
func (r FunctionRecord) FleetView() AnalysisResult {
	return AnalysisResult{
		FunctionName: r.Location.DisplayName(AnonymousName),
		FilePath:     r.Location.File,
		Energy:       r.Resources.Energy,
		Carbon:       r.Resources.Carbon,
		Duration:     r.Resources.Duration,
		Patterns:     r.Patterns,
	}
}

// FleetViews projects every record, preserving order
func FleetViews(records []FunctionRecord) []AnalysisResult {
	results := make([]AnalysisResult, len(records))
	for i, r := range records {
		results[i] = r.FleetView()
	}
	return results
}
