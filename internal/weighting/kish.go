package weighting

import "math"

// EffectiveN returns the Kish (1965) effective sample size over the
// included (positive-weight) subset: (Σw)² / Σw². An empty or all-zero
// vector yields 0. Weights are scaled by their maximum before squaring;
// the ratio is scale-invariant and the rescale keeps the sum-of-squares
// term finite for weights spanning many orders of magnitude.
func EffectiveN(w []float64) float64 {
	var max float64
	for _, v := range w {
		if v > max {
			max = v
		}
	}
	if max == 0 {
		return 0
	}

	var sum, sumSq float64
	for _, v := range w {
		if v <= 0 {
			continue
		}
		s := v / max
		sum += s
		sumSq += s * s
	}
	if sumSq == 0 {
		return 0
	}
	return sum * sum / sumSq
}

// Mean returns the weighted mean Σw·x / Σw restricted to non-missing x
// (NaN encodes missing) and positive weights. Returns NaN when nothing
// is included.
func Mean(x, w []float64) float64 {
	var sumWX, sumW float64
	for i, v := range x {
		if math.IsNaN(v) || w[i] <= 0 {
			continue
		}
		sumWX += w[i] * v
		sumW += w[i]
	}
	if sumW == 0 {
		return math.NaN()
	}
	return sumWX / sumW
}

// Variance returns the weighted population variance Σw(x-x̄)² / Σw over
// non-missing x and positive weights. Returns NaN when nothing is
// included.
func Variance(x, w []float64) float64 {
	mean := Mean(x, w)
	if math.IsNaN(mean) {
		return math.NaN()
	}
	var sumWD, sumW float64
	for i, v := range x {
		if math.IsNaN(v) || w[i] <= 0 {
			continue
		}
		d := v - mean
		sumWD += w[i] * d * d
		sumW += w[i]
	}
	return sumWD / sumW
}
