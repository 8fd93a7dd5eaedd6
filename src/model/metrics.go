package model

// Energy is an estimated energy cost in joules
type Energy float64

// Joules returns the raw value in joules
func (e Energy) Joules() float64 { return float64(e) }

// Kilojoules returns the value converted to kilojoules
func (e Energy) Kilojoules() float64 { return float64(e) / 1000.0 }

// Add returns the sum of two energy values
func (e Energy) Add(o Energy) Energy { return e + o }

// Duration is an estimated execution time in milliseconds
type Duration float64

// Milliseconds returns the raw value in milliseconds
func (d Duration) Milliseconds() float64 { return float64(d) }

// Add returns the sum of two durations
func (d Duration) Add(o Duration) Duration { return d + o }

// Carbon is an estimated emission in grams of CO2-equivalent
type Carbon float64

// GramsCO2e returns the raw value in grams CO2e
func (c Carbon) GramsCO2e() float64 { return float64(c) }

// Add returns the sum of two carbon values
func (c Carbon) Add(o Carbon) Carbon { return c + o }

// Memory is an estimated allocation volume in bytes
type Memory uint64

// Bytes returns the raw value in bytes
func (m Memory) Bytes() uint64 { return uint64(m) }

// Add returns the sum of two memory values
func (m Memory) Add(o Memory) Memory { return m + o }

// EcoScore is the 0-100 ecological sub-score; lower is worse
type EcoScore float64

// EconScore is the 0-100 economic sub-score; lower is worse
type EconScore float64

// ResourceUsage bundles the four resource estimates of one function
type ResourceUsage struct {
	Energy   Energy   `json:"energy"`
	Duration Duration `json:"duration"`
	Carbon   Carbon   `json:"carbon"`
	Memory   Memory   `json:"memory"`
}

// HealthScores bundles the health sub-scores of one function.
// Overall is produced upstream and already combines the other three.
type HealthScores struct {
	EcoScore     EcoScore  `json:"eco_score"`
	EconScore    EconScore `json:"econ_score"`
	QualityScore float64   `json:"quality_score"`
	Overall      float64   `json:"overall"`
}
