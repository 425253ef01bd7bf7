package sigtest

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// chiSquareTest checks category independence between two columns on a
// 2xC contingency table of weighted category counts, rescaled to each
// side's effective sample size so the statistic respects the design
// effect. Directionality still comes from the focal share (Count/Base).
func chiSquareTest(a, b ColumnData) pairOutcome {
	if len(a.CategoryCounts) < 2 || len(a.CategoryCounts) != len(b.CategoryCounts) {
		return inconclusive()
	}
	if a.Base <= 0 || b.Base <= 0 || a.EffectiveN <= 0 || b.EffectiveN <= 0 {
		return inconclusive()
	}

	rowA := rescaleCounts(a.CategoryCounts, a.EffectiveN)
	rowB := rescaleCounts(b.CategoryCounts, b.EffectiveN)
	if rowA == nil || rowB == nil {
		return inconclusive()
	}

	totalA, totalB := a.EffectiveN, b.EffectiveN
	grand := totalA + totalB

	var chi2 float64
	df := -1 // categories contribute df-1 after dropping empty ones
	for c := range rowA {
		colTotal := rowA[c] + rowB[c]
		if colTotal == 0 {
			continue
		}
		df++
		eA := totalA * colTotal / grand
		eB := totalB * colTotal / grand
		chi2 += (rowA[c] - eA) * (rowA[c] - eA) / eA
		chi2 += (rowB[c] - eB) * (rowB[c] - eB) / eB
	}
	if df < 1 {
		return inconclusive()
	}

	dist := distuv.ChiSquared{K: float64(df)}
	return pairOutcome{
		p:          dist.Survival(chi2),
		estimateA:  a.Count / a.Base,
		estimateB:  b.Count / b.Base,
		conclusive: true,
	}
}

// rescaleCounts scales weighted category counts so they sum to the
// column's effective sample size. Nil means nothing to scale.
func rescaleCounts(counts []float64, eff float64) []float64 {
	var total float64
	for _, c := range counts {
		if c < 0 {
			return nil
		}
		total += c
	}
	if total == 0 {
		return nil
	}
	out := make([]float64, len(counts))
	for i, c := range counts {
		out[i] = c * eff / total
	}
	return out
}

// netDifferenceTest compares top-minus-bottom box shares between two
// columns with a z-test. The variance of the net difference on one side
// follows the multinomial result var(pT - pB) = pT + pB - (pT - pB)^2,
// divided by the effective sample size.
func netDifferenceTest(a, b ColumnData) pairOutcome {
	if a.TopCount+a.BottomCount > a.Base || b.TopCount+b.BottomCount > b.Base {
		out := inconclusive()
		out.warning = "top and bottom box counts exceed base; pair skipped"
		return out
	}
	if a.Base <= 0 || b.Base <= 0 || a.EffectiveN <= 0 || b.EffectiveN <= 0 {
		return inconclusive()
	}

	netA, varA := netShare(a)
	netB, varB := netShare(b)
	se := math.Sqrt(varA/a.EffectiveN + varB/b.EffectiveN)
	if se == 0 {
		return inconclusive()
	}

	z := (netA - netB) / se
	return pairOutcome{
		p:          2 * stdNormal.Survival(math.Abs(z)),
		estimateA:  netA,
		estimateB:  netB,
		conclusive: true,
	}
}

func netShare(c ColumnData) (net, variance float64) {
	pT := c.TopCount / c.Base
	pB := c.BottomCount / c.Base
	net = pT - pB
	variance = pT + pB - net*net
	return net, variance
}
