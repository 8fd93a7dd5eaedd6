// Package aggregate folds function records into directory-level summaries.
package aggregate

import "sustainabot/src/model"

// Summarize folds records into a summary.
// filesAnalyzed is supplied by the caller since a file that fails estimation
// yields no records and must not be counted. The below-threshold count is
// left at zero; see SummarizeWithThreshold.
func Summarize(records []model.FunctionRecord, filesAnalyzed int) model.Summary {
	summary := model.Summary{
		TotalFiles:     filesAnalyzed,
		TotalFunctions: len(records),
		TotalEnergy:    TotalEnergy(records),
		TotalCarbon:    TotalCarbon(records),
	}

	if len(records) == 0 {
		return summary
	}

	var ecoSum, overallSum float64
	for _, r := range records {
		ecoSum += float64(r.Health.EcoScore)
		overallSum += r.Health.Overall
	}

	n := float64(len(records))
	summary.AvgEco = model.NewAverage(ecoSum / n)
	summary.AvgOverall = model.NewAverage(overallSum / n)

	return summary
}

// SummarizeWithThreshold is Summarize plus the below-threshold count
func SummarizeWithThreshold(records []model.FunctionRecord, filesAnalyzed int, ecoThreshold float64) model.Summary {
	summary := Summarize(records, filesAnalyzed)
	summary.BelowThreshold = BelowThreshold(records, ecoThreshold)
	return summary
}

// BelowThreshold counts records whose eco score is strictly below threshold.
// A score exactly at the threshold passes.
func BelowThreshold(records []model.FunctionRecord, threshold float64) int {
	count := 0
	for _, r := range records {
		if IsBelow(r, threshold) {
			count++
		}
	}
	return count
}

// IsBelow reports whether a single record fails the eco threshold
func IsBelow(r model.FunctionRecord, threshold float64) bool {
	return float64(r.Health.EcoScore) < threshold
}

// TotalEnergy sums the energy of all records
func TotalEnergy(records []model.FunctionRecord) model.Energy {
	var total model.Energy
	for _, r := range records {
		total = total.Add(r.Resources.Energy)
	}
	return total
}

// TotalCarbon sums the carbon of all records
func TotalCarbon(records []model.FunctionRecord) model.Carbon {
	var total model.Carbon
	for _, r := range records {
		total = total.Add(r.Resources.Carbon)
	}
	return total
}
