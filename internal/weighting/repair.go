package weighting

import (
	"fmt"
	"math"

	"crosstab/internal/refusal"
	"crosstab/internal/survey"
)

// Policy selects the weight source for a run.
type Policy struct {
	// Weighted false means every respondent gets weight 1 and the
	// effective sample size equals the raw respondent count.
	Weighted bool
	// Column names the weight variable in the dataset.
	Column string
}

// Diagnostics describes what Repair did to the raw vector. Repairs are
// soft warnings; callers surface them without stopping.
type Diagnostics struct {
	NAIndices  []int
	InfIndices []int
	Warnings   []string

	Included     int // respondents with weight > 0 after repair
	Sum          float64
	Min          float64
	Max          float64
	Mean         float64
	EffectiveN   float64
	DesignEffect float64 // Included / EffectiveN, 1 for uniform weights
}

// Repair cleans a raw weight vector into an analysis-ready one. NaN
// encodes a missing weight. Missing and infinite values are coerced to
// zero with a warning; zero is kept (the respondent stays in the frame
// but is excluded from sums); a negative weight is fatal, since design
// weights cannot be negative.
func Repair(raw []float64) ([]float64, *Diagnostics, error) {
	w := make([]float64, len(raw))
	diag := &Diagnostics{}
	for i, v := range raw {
		switch {
		case v < 0:
			return nil, nil, refusal.Configuration(
				refusal.CodeWeightNegative,
				"Negative weight",
				fmt.Sprintf("respondent %d carries weight %g; design weights cannot be negative", i, v),
			).WithRationale(
				"a negative weight would subtract a respondent from every base and flip test directions",
			).WithFix(
				"inspect the weighting step that produced the weight column",
				"re-export the weight variable and rerun",
			)
		case math.IsNaN(v):
			diag.NAIndices = append(diag.NAIndices, i)
			w[i] = 0
		case math.IsInf(v, 0):
			diag.InfIndices = append(diag.InfIndices, i)
			w[i] = 0
		default:
			w[i] = v
		}
	}
	if n := len(diag.NAIndices); n > 0 {
		diag.Warnings = append(diag.Warnings,
			fmt.Sprintf("%d missing weight(s) repaired to 0 (respondents excluded)", n))
	}
	if n := len(diag.InfIndices); n > 0 {
		diag.Warnings = append(diag.Warnings,
			fmt.Sprintf("%d infinite weight(s) repaired to 0 (respondents excluded)", n))
	}
	diag.summarize(w)
	return w, diag, nil
}

// Resolve produces the run's weight vector per policy. Unweighted runs
// get a unit vector; weighted runs read and repair the named column.
// A missing column, or a text cell that does not parse as a number, is
// fatal.
func (p Policy) Resolve(ds *survey.Dataset) ([]float64, *Diagnostics, error) {
	if !p.Weighted {
		w := make([]float64, ds.Rows())
		for i := range w {
			w[i] = 1
		}
		diag := &Diagnostics{}
		diag.summarize(w)
		return w, diag, nil
	}

	cells, ok := ds.Column(p.Column)
	if !ok {
		return nil, nil, refusal.Configuration(
			refusal.CodeWeightInvalid,
			"Weight column not found",
			fmt.Sprintf("weight column %q does not exist in the dataset", p.Column),
		).WithRationale(
			"weighted bases and effective sample sizes cannot be computed without the weight variable",
		).WithFix(
			"check the configured weight column name",
			"or disable weighting to analyze unweighted",
		)
	}

	raw := make([]float64, len(cells))
	for i, c := range cells {
		if c.IsMissing() {
			raw[i] = math.NaN()
			continue
		}
		f, ok := c.Float()
		if !ok {
			return nil, nil, refusal.Configuration(
				refusal.CodeWeightInvalid,
				"Weight column is not numeric",
				fmt.Sprintf("weight column %q holds a non-numeric value at respondent %d", p.Column, i),
			).WithRationale(
				"every weight must be a number; text in the weight column usually means the wrong variable was selected",
			).WithFix(
				"point the weight setting at a numeric column",
			)
		}
		raw[i] = f
	}
	return Repair(raw)
}

func (d *Diagnostics) summarize(w []float64) {
	d.Min, d.Max = math.Inf(1), math.Inf(-1)
	for _, v := range w {
		if v > 0 {
			d.Included++
			d.Sum += v
			d.Min = math.Min(d.Min, v)
			d.Max = math.Max(d.Max, v)
		}
	}
	if d.Included == 0 {
		d.Min, d.Max = 0, 0
		return
	}
	d.Mean = d.Sum / float64(d.Included)
	d.EffectiveN = EffectiveN(w)
	if d.EffectiveN > 0 {
		d.DesignEffect = float64(d.Included) / d.EffectiveN
	}
}
