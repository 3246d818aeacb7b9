// Package stats provides summary helpers over demand discrepancy
// series.
package stats

import (
	"math"
	"sort"
)

// DetectOutliers returns the indices of values falling outside the
// Tukey fences built from the given percentile range. Percentiles are
// clamped to [0, 1] and the fence factor to be non-negative.
func DetectOutliers(y []float64, lowerPerc, upperPerc, tukeyFactor float64) []int {
	lowerPerc = math.Max(lowerPerc, 0.0)
	upperPerc = math.Min(upperPerc, 1.0)
	tukeyFactor = math.Max(tukeyFactor, 0.0)

	lower, upper := fences(y, lowerPerc, upperPerc, tukeyFactor)

	var outlierIdx []int
	for i := 0; i < len(y); i++ {
		if y[i] >= upper || y[i] <= lower {
			outlierIdx = append(outlierIdx, i)
		}
	}
	return outlierIdx
}

func fences(y []float64, lowerPerc, upperPerc, tukeyFactor float64) (float64, float64) {
	sorted := make([]float64, len(y))
	copy(sorted, y)
	sort.Float64s(sorted)

	lowerIdx := int(math.Floor(float64(len(sorted)) * lowerPerc))
	upperIdx := int(math.Ceil(float64(len(sorted)) * upperPerc))
	if upperIdx >= len(sorted) {
		upperIdx = len(sorted) - 1
	}

	lower := sorted[lowerIdx]
	upper := sorted[upperIdx]
	innerRange := upper - lower
	return lower - innerRange*tukeyFactor, upper + innerRange*tukeyFactor
}
