package weighting

import (
	"fmt"

	"crosstab/internal/ranking"
	"crosstab/internal/refusal"
	"crosstab/internal/survey"
)

// Base is one question's respondent base. The weighted base keeps full
// precision; downstream percentage math must not see a rounded value.
type Base struct {
	Unweighted int
	Weighted   float64
	Effective  float64
}

// IsZero reports an empty base, which callers treat as "no data" rather
// than a failure.
func (b Base) IsZero() bool {
	return b.Unweighted == 0 && b.Weighted == 0
}

// CalculateBase computes a question's base over the given (possibly
// row-filtered) dataset and its aligned weight vector. Inclusion rules
// dispatch on the question type; a respondent with weight zero is
// excluded regardless of their response.
func CalculateBase(ds *survey.Dataset, q survey.Question, opts []survey.Option, w []float64) (Base, error) {
	if ds == nil {
		return Base{}, refusal.Internal(refusal.CodeBaseContract,
			"Base calculation called without data",
			"the data subset passed to the base calculator is nil")
	}
	if q.Code == "" {
		return Base{}, refusal.Internal(refusal.CodeBaseContract,
			"Base calculation called without question metadata",
			"the question metadata row passed to the base calculator is empty")
	}
	if len(w) != ds.Rows() {
		return Base{}, refusal.Internal(refusal.CodeBaseContract,
			"Weight vector misaligned",
			fmt.Sprintf("weight vector has %d entries, data subset has %d rows", len(w), ds.Rows()))
	}

	var included func(row int) bool
	switch q.Type {
	case survey.TypeMultiMention:
		cols := mentionColumns(ds, q)
		if len(cols) == 0 {
			// Invalid declared count or no expected columns: zero base,
			// not an error.
			return Base{}, nil
		}
		included = func(row int) bool {
			for _, cells := range cols {
				if cells[row].Answered() {
					return true
				}
			}
			return false
		}
	case survey.TypeRanking:
		names := ranking.DataColumns(ds, q, opts)
		if len(names) == 0 {
			return Base{}, nil
		}
		var cols [][]survey.Value
		for _, name := range names {
			cells, _ := ds.Column(name)
			cols = append(cols, cells)
		}
		included = func(row int) bool {
			for _, cells := range cols {
				if !cells[row].IsMissing() {
					return true
				}
			}
			return false
		}
	case survey.TypeSingle, survey.TypeNPS, survey.TypeRating, survey.TypeLikert,
		survey.TypeNumeric, survey.TypeUnknown:
		cells, ok := ds.Column(q.Code)
		if !ok {
			return Base{}, nil
		}
		scale := q.Type.IsScale()
		included = func(row int) bool {
			return singleIncluded(cells[row], scale)
		}
	}

	return accumulate(ds.Rows(), included, w), nil
}

// singleIncluded applies the single-column rule: non-missing includes,
// except that numeric zero on a non-scale question means "no response".
// On scale questions (NPS, rating, Likert) zero is a legitimate value
// and only a missing cell excludes.
func singleIncluded(v survey.Value, scale bool) bool {
	if v.IsMissing() {
		return false
	}
	if scale {
		return true
	}
	if f, ok := v.Float(); ok && f == 0 {
		return false
	}
	return v.Answered()
}

func mentionColumns(ds *survey.Dataset, q survey.Question) [][]survey.Value {
	if q.MentionColumns <= 0 {
		return nil
	}
	var cols [][]survey.Value
	for k := 1; k <= q.MentionColumns; k++ {
		if cells, ok := ds.Column(fmt.Sprintf("%s_%d", q.Code, k)); ok {
			cols = append(cols, cells)
		}
	}
	return cols
}

func accumulate(rows int, included func(int) bool, w []float64) Base {
	var b Base
	sub := make([]float64, 0, rows)
	for row := 0; row < rows; row++ {
		if w[row] <= 0 || !included(row) {
			continue
		}
		b.Unweighted++
		b.Weighted += w[row]
		sub = append(sub, w[row])
	}
	b.Effective = EffectiveN(sub)
	return b
}
