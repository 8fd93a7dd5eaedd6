package model

import (
	"encoding/json"
	"time"
)

// Average is an arithmetic mean that may be undefined for empty input
type Average struct {
	value float64
	valid bool
}

// NewAverage wraps a computed mean
func NewAverage(v float64) Average {
	return Average{value: v, valid: true}
}

// Value returns the mean and whether it is defined
func (a Average) Value() (float64, bool) {
	return a.value, a.valid
}

// Valid reports whether the mean is defined
func (a Average) Valid() bool {
	return a.valid
}

// MarshalJSON renders an undefined mean as null
func (a Average) MarshalJSON() ([]byte, error) {
	if !a.valid {
		return []byte("null"), nil
	}
	return json.Marshal(a.value)
}

// Summary aggregates a set of function records
type Summary struct {
	TotalFiles     int     `json:"total_files"`
	TotalFunctions int     `json:"total_functions"`
	BelowThreshold int     `json:"below_threshold"`
	AvgEco         Average `json:"avg_eco"`
	AvgOverall     Average `json:"avg_overall"`
	TotalEnergy    Energy  `json:"total_energy"`
	TotalCarbon    Carbon  `json:"total_carbon"`
}

// HasData reports whether any function contributed to the summary
func (s Summary) HasData() bool {
	return s.TotalFunctions > 0
}

// Violation is a function whose eco score falls below the threshold
type Violation struct {
	FilePath     string   `json:"file_path"`
	FunctionName string   `json:"function_name"`
	EcoScore     EcoScore `json:"eco_score"`
}

// CheckReport is the outcome of a directory threshold check
type CheckReport struct {
	RunID        string      `json:"run_id"`
	Root         string      `json:"root"`
	GeneratedAt  time.Time   `json:"generated_at"`
	EcoThreshold float64     `json:"eco_threshold"`
	Violations   []Violation `json:"violations"`
	Summary      Summary     `json:"summary"`
	Passed       bool        `json:"passed"`
}
