package threshold

import (
	"sustainabot/src/config"
	"sustainabot/src/model"
)

// Rating is an A-F efficiency grade, or RatingNotApplicable
type Rating string

const (
	RatingA             Rating = "A (Excellent)"
	RatingB             Rating = "B (Good)"
	RatingC             Rating = "C (Average)"
	RatingD             Rating = "D (Below Average)"
	RatingE             Rating = "E (Poor)"
	RatingF             Rating = "F (Very Poor)"
	RatingNotApplicable Rating = "N/A"
)

// Letter returns the grade letter, or "N/A"
func (r Rating) Letter() string {
	if r == RatingNotApplicable {
		return string(r)
	}
	return string(r[:1])
}

// ratingBands are half-open upper bounds in joules, in ascending order
var ratingBands = []struct {
	below  float64
	rating Rating
}{
	{10, RatingA},
	{50, RatingB},
	{100, RatingC},
	{200, RatingD},
	{500, RatingE},
}

// EfficiencyRating grades results by their mean per-function energy.
// The band boundaries are fixed; thresholds is accepted for signature
// stability and not consulted.
func EfficiencyRating(results []model.AnalysisResult, _ config.ThresholdsConfig) Rating {
	if len(results) == 0 {
		return RatingNotApplicable
	}

	var sum float64
	for _, r := range results {
		sum += r.Energy.Joules()
	}

	return RateMeanEnergy(sum / float64(len(results)))
}

// RateMeanEnergy classifies a mean per-function energy in joules
func RateMeanEnergy(avgJoules float64) Rating {
	for _, band := range ratingBands {
		if avgJoules < band.below {
			return band.rating
		}
	}
	return RatingF
}
