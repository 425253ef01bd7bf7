package ranking

import (
	"fmt"
	"math"
	"sort"
)

// validateMatrix flags quality issues against the configured thresholds:
// respondents reusing the same rank value, respondents with gaps in
// their used ranks, and overall completeness. All findings are warnings.
func validateMatrix(m *Matrix, positions int, th QualityThresholds) []string {
	var answered, tied, gapped int
	var cellsAnswered, cellsTotal int

	for _, row := range m.Ranks {
		var used []float64
		for _, r := range row {
			if !math.IsNaN(r) {
				used = append(used, r)
			}
		}
		if len(used) == 0 {
			continue
		}
		answered++
		cellsAnswered += len(used)
		cellsTotal += min(len(row), positions)

		sort.Float64s(used)
		hasTie, hasGap := false, false
		for i := 1; i < len(used); i++ {
			switch used[i] - used[i-1] {
			case 0:
				hasTie = true
			case 1:
			default:
				hasGap = true
			}
		}
		if hasTie {
			tied++
		}
		if hasGap {
			gapped++
		}
	}

	if answered == 0 {
		return nil
	}

	var warnings []string
	if rate := float64(tied) / float64(answered); rate > th.MaxTieRate {
		warnings = append(warnings, fmt.Sprintf(
			"tie rate %.1f%% exceeds threshold %.1f%%: %d of %d respondents reuse a rank value",
			rate*100, th.MaxTieRate*100, tied, answered))
	}
	if rate := float64(gapped) / float64(answered); rate > th.MaxGapRate {
		warnings = append(warnings, fmt.Sprintf(
			"rank gap rate %.1f%% exceeds threshold %.1f%%: %d of %d respondents skip rank values",
			rate*100, th.MaxGapRate*100, gapped, answered))
	}
	if cellsTotal > 0 {
		if completeness := float64(cellsAnswered) / float64(cellsTotal); completeness < th.MinCompleteness {
			warnings = append(warnings, fmt.Sprintf(
				"completeness %.1f%% is below threshold %.1f%%",
				completeness*100, th.MinCompleteness*100))
		}
	}
	return warnings
}
