// Package milestones decides which reading milestones a reader has newly
// crossed. It is pure computation: callers feed it the current read ratio
// and the milestones they've already reported, and persist or emit whatever
// comes back.
package milestones

import "sort"

// DefaultThresholds are the quarter marks evaluated for every section.
var DefaultThresholds = []float64{0.25, 0.5, 0.75, 1.0}

// Evaluate returns the thresholds that ratio has reached but that haven't
// been reported yet, in ascending order, along with the updated reported
// set (reported plus the new crossings, also ascending). Ratios outside
// [0, 1] are clamped, so an overshooting client can't report a milestone
// past completion. Feeding the updated set back in yields no crossings,
// which keeps milestone events once-per-threshold.
func Evaluate(ratio float64, thresholds []float64, reported []float64) (crossed, updated []float64) {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}

	seen := make(map[float64]bool, len(reported))
	for _, r := range reported {
		seen[r] = true
	}

	crossed = []float64{}
	for _, threshold := range thresholds {
		if threshold <= ratio && !seen[threshold] {
			crossed = append(crossed, threshold)
		}
	}
	sort.Float64s(crossed)

	updated = make([]float64, 0, len(reported)+len(crossed))
	updated = append(updated, reported...)
	updated = append(updated, crossed...)
	sort.Float64s(updated)

	return crossed, updated
}

// Ratio computes the read ratio for a position within a section. Pages are
// 1-based, so being on page n of total means n/total read.
func Ratio(pageNumber, totalPages int) float64 {
	if totalPages <= 0 {
		return 0
	}
	if pageNumber < 0 {
		pageNumber = 0
	}
	if pageNumber > totalPages {
		pageNumber = totalPages
	}
	return float64(pageNumber) / float64(totalPages)
}
