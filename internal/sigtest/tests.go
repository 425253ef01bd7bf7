package sigtest

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"crosstab/internal/weighting"
)

var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// proportionTest is a two-sample z-test on weighted proportions. The
// pooled proportion comes from weighted counts; the standard error uses
// each side's effective sample size. Degenerate bases are inconclusive
// rather than errors; a count above its base is a data anomaly, flagged
// and skipped.
func proportionTest(a, b ColumnData) pairOutcome {
	if a.Count > a.Base || b.Count > b.Base {
		out := inconclusive()
		out.warning = fmt.Sprintf(
			"observed count exceeds base (%.4g/%.4g vs %.4g/%.4g); pair skipped",
			a.Count, a.Base, b.Count, b.Base)
		return out
	}
	if a.Base <= 0 || b.Base <= 0 || a.EffectiveN <= 0 || b.EffectiveN <= 0 {
		return inconclusive()
	}

	p1 := a.Count / a.Base
	p2 := b.Count / b.Base
	pooled := (a.Count + b.Count) / (a.Base + b.Base)
	if pooled <= 0 || pooled >= 1 {
		return inconclusive()
	}
	se := math.Sqrt(pooled * (1 - pooled) * (1/a.EffectiveN + 1/b.EffectiveN))
	if se == 0 {
		return inconclusive()
	}

	z := (p1 - p2) / se
	return pairOutcome{
		p:          2 * stdNormal.Survival(math.Abs(z)),
		estimateA:  p1,
		estimateB:  p2,
		conclusive: true,
	}
}

// meanTest is a two-sample Welch t-test on weighted means, with
// degrees of freedom from each side's effective sample size.
func meanTest(a, b ColumnData) pairOutcome {
	n1 := effectiveFor(a)
	n2 := effectiveFor(b)
	if n1 <= 1 || n2 <= 1 {
		return inconclusive()
	}

	m1 := weighting.Mean(a.Values, a.Weights)
	m2 := weighting.Mean(b.Values, b.Weights)
	v1 := weighting.Variance(a.Values, a.Weights)
	v2 := weighting.Variance(b.Values, b.Weights)
	if math.IsNaN(m1) || math.IsNaN(m2) || math.IsNaN(v1) || math.IsNaN(v2) {
		return inconclusive()
	}

	se2 := v1/n1 + v2/n2
	if se2 <= 0 {
		return inconclusive()
	}
	t := (m1 - m2) / math.Sqrt(se2)

	// Welch-Satterthwaite approximation on effective sample sizes.
	denom := (v1/n1)*(v1/n1)/(n1-1) + (v2/n2)*(v2/n2)/(n2-1)
	if denom <= 0 {
		return inconclusive()
	}
	df := se2 * se2 / denom

	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return pairOutcome{
		p:          2 * dist.Survival(math.Abs(t)),
		estimateA:  m1,
		estimateB:  m2,
		conclusive: true,
	}
}

// effectiveFor returns the column's effective sample size, computing it
// from the weight vector when the caller did not precompute one.
func effectiveFor(c ColumnData) float64 {
	if c.EffectiveN > 0 {
		return c.EffectiveN
	}
	if len(c.Weights) == 0 {
		return 0
	}
	sub := make([]float64, 0, len(c.Weights))
	for i, w := range c.Weights {
		if i < len(c.Values) && math.IsNaN(c.Values[i]) {
			continue
		}
		sub = append(sub, w)
	}
	return weighting.EffectiveN(sub)
}
