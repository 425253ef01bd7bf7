// Package sigtest runs pairwise significance tests across banner
// columns and annotates each column with the letters of columns it is
// significantly higher than. Tests select by statistic kind: two-sample
// z-tests on weighted proportions, Welch t-tests on weighted means, and
// the lower-frequency chi-square and net-difference variants. Standard
// errors use Kish effective sample sizes, not raw counts.
package sigtest

import "math"

// StatKind is the closed set of statistic row types.
type StatKind int

const (
	// StatOther rows are never tested and never significant.
	StatOther StatKind = iota
	// StatProportion rows are percentages or top-box shares.
	StatProportion
	// StatMean rows are means or index scores.
	StatMean
	// StatChiSquare rows run a category-independence check per pair.
	StatChiSquare
	// StatNetDifference rows test top-minus-bottom box differences.
	StatNetDifference
)

func (k StatKind) String() string {
	switch k {
	case StatProportion:
		return "proportion"
	case StatMean:
		return "mean"
	case StatChiSquare:
		return "chi_square"
	case StatNetDifference:
		return "net_difference"
	default:
		return "other"
	}
}

// ColumnData carries whatever one column's statistic needs. Proportion
// rows use Count/Base/EffectiveN; mean rows use Values/Weights (and
// EffectiveN when precomputed); net-difference rows add TopCount and
// BottomCount; chi-square rows add per-category weighted counts.
type ColumnData struct {
	Count      float64
	Base       float64
	EffectiveN float64

	Values  []float64 // NaN encodes missing
	Weights []float64

	TopCount    float64
	BottomCount float64

	CategoryCounts []float64
}

// Options are the test settings for one row.
type Options struct {
	Alpha float64
	// Bonferroni divides Alpha by the number of pairwise comparisons.
	Bonferroni bool
	// MinBase excludes columns whose effective base falls below it.
	MinBase float64
}

// pairOutcome is one pairwise test result.
type pairOutcome struct {
	p          float64
	estimateA  float64
	estimateB  float64
	conclusive bool
	warning    string
}

func inconclusive() pairOutcome {
	return pairOutcome{p: math.NaN()}
}
