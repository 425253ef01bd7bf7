// Package ranking normalizes heterogeneous raw rank-input layouts into
// one canonical respondent-by-item rank matrix. Both supported layouts
// and either rank direction converge on the same internal convention:
// one rank value per item, 1 = best.
package ranking

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"crosstab/internal/refusal"
	"crosstab/internal/survey"
)

// Matrix is the canonical rank matrix: respondents by items, entries in
// [1, positions] or NaN for missing. Item order matches the option
// display order from the survey metadata.
type Matrix struct {
	Items []string
	Ranks [][]float64
}

// NumItems returns the item (column) count.
func (m *Matrix) NumItems() int {
	return len(m.Items)
}

// NumRespondents returns the respondent (row) count.
func (m *Matrix) NumRespondents() int {
	return len(m.Ranks)
}

// Result is the extraction outcome: the matrix, the layout that was
// read, the normalized direction (always best-to-worst), and any
// quality warnings from post-extraction validation.
type Result struct {
	Matrix    *Matrix
	Format    survey.RankFormat
	Direction survey.RankDirection
	Warnings  []string
}

// QualityThresholds configures the post-extraction validator. Breaches
// produce warnings on the result, never errors.
type QualityThresholds struct {
	// MaxTieRate is the tolerated fraction of respondents with at least
	// one duplicated rank value.
	MaxTieRate float64
	// MaxGapRate is the tolerated fraction of respondents whose used
	// rank values are non-contiguous.
	MaxGapRate float64
	// MinCompleteness is the required fraction of answered cells among
	// respondents who ranked anything.
	MinCompleteness float64
}

// Extract reads one ranking question's raw data into a Matrix. The
// options slice is the question's visible option list in display order.
func Extract(ds *survey.Dataset, q survey.Question, opts []survey.Option, th QualityThresholds) (*Result, error) {
	if q.RankFormat == survey.FormatUnknown {
		return nil, refusal.Configuration(
			refusal.CodeRankingFormat,
			"Ranking format missing or invalid",
			fmt.Sprintf("question %q declares no usable ranking format; expected \"position\" or \"item\"", q.Code),
		).WithRationale(
			"the two layouts store ranks in opposite shapes, so extraction cannot guess which one the data uses",
		).WithFix(
			"set the ranking format field on the question metadata row to \"position\" or \"item\"",
		)
	}
	if q.NumPositions <= 0 {
		return nil, refusal.Configuration(
			refusal.CodeRankingPositions,
			"Ranking position count invalid",
			fmt.Sprintf("question %q declares %d rank positions; the count must be a positive integer", q.Code, q.NumPositions),
		).WithRationale(
			"the position count bounds every rank value and drives direction normalization",
		).WithFix(
			"set the number-of-positions field to how many items a respondent ranks",
		)
	}
	if len(opts) == 0 {
		return nil, refusal.Configuration(
			refusal.CodeRankingNoOptions,
			"Ranking question has no options",
			fmt.Sprintf("question %q has no options defined, so there are no items to build rank columns for", q.Code),
		).WithRationale(
			"every matrix column corresponds to one ranked item from the option catalog",
		).WithFix(
			"define the ranked items as options of the question",
		)
	}

	m := &Matrix{Items: make([]string, len(opts))}
	for i, o := range opts {
		m.Items[i] = o.Code
	}
	m.Ranks = make([][]float64, ds.Rows())
	for r := range m.Ranks {
		row := make([]float64, len(opts))
		for c := range row {
			row[c] = math.NaN()
		}
		m.Ranks[r] = row
	}

	var warnings []string
	var err error
	switch q.RankFormat {
	case survey.FormatPosition:
		warnings, err = fillPositionFormat(ds, q, opts, m)
	case survey.FormatItem:
		warnings, err = fillItemFormat(ds, q, opts, m)
	}
	if err != nil {
		return nil, err
	}

	if q.RankDirection == survey.WorstToBest {
		normalizeDirection(m, q.NumPositions)
	}

	res := &Result{
		Matrix:    m,
		Format:    q.RankFormat,
		Direction: survey.BestToWorst,
		Warnings:  warnings,
	}
	res.Warnings = append(res.Warnings, validateMatrix(m, q.NumPositions, th)...)
	return res, nil
}

// fillPositionFormat reads one data column per item holding that item's
// assigned rank. Column discovery tries the bare option code first, then
// "{QuestionCode}_{OptionCode}".
func fillPositionFormat(ds *survey.Dataset, q survey.Question, opts []survey.Option, m *Matrix) ([]string, error) {
	var warnings []string
	found := 0
	for idx, opt := range opts {
		name := opt.Code
		cells, ok := ds.Column(name)
		if !ok {
			name = fmt.Sprintf("%s_%s", q.Code, opt.Code)
			cells, ok = ds.Column(name)
		}
		if !ok {
			continue
		}
		found++
		outOfRange := 0
		for row, cell := range cells {
			if cell.IsMissing() {
				continue
			}
			r, numeric := cell.Float()
			if !numeric || r < 1 || r > float64(q.NumPositions) {
				outOfRange++
				continue
			}
			m.Ranks[row][idx] = r
		}
		if outOfRange > 0 {
			warnings = append(warnings, fmt.Sprintf(
				"column %q: %d rank value(s) outside [1,%d] treated as missing",
				name, outOfRange, q.NumPositions))
		}
	}
	if found == 0 {
		return nil, noColumnsRefusal(q, "no per-item rank column matched either the bare option code or the {QuestionCode}_{OptionCode} pattern")
	}
	return warnings, nil
}

// fillItemFormat reads one data column per rank position, named
// "{QuestionCode}_Rank{n}", holding the item chosen for that position.
// The rank position comes from the column name, not iteration order.
func fillItemFormat(ds *survey.Dataset, q survey.Question, opts []survey.Option, m *Matrix) ([]string, error) {
	itemIdx := make(map[string]int, 2*len(opts))
	for i, o := range opts {
		itemIdx[strings.TrimSpace(o.Code)] = i
		itemIdx[strings.TrimSpace(o.Display)] = i
	}

	prefix := q.Code + "_Rank"
	var warnings []string
	unmatched := 0
	found := 0
	for _, name := range ds.Columns() {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		pos, err := strconv.Atoi(name[len(prefix):])
		if err != nil || pos < 1 {
			return nil, refusal.Configuration(
				refusal.CodeRankingBadSuffix,
				"Ranking column has an unparsable position suffix",
				fmt.Sprintf("column %q should end in a positive rank position after %q", name, prefix),
			).WithRationale(
				"the rank position is read from the column name itself; a bad suffix would misplace every response in that column",
			).WithFix(
				fmt.Sprintf("rename the column to the %s{n} pattern with n between 1 and %d", prefix, q.NumPositions),
			)
		}
		found++
		if pos > q.NumPositions {
			warnings = append(warnings, fmt.Sprintf(
				"column %q names position %d beyond the declared %d positions; column skipped",
				name, pos, q.NumPositions))
			continue
		}
		cells, _ := ds.Column(name)
		for row, cell := range cells {
			text, ok := cell.Text()
			if !ok {
				continue
			}
			text = strings.TrimSpace(text)
			if text == "" {
				continue
			}
			idx, ok := itemIdx[text]
			if !ok {
				unmatched++
				continue
			}
			m.Ranks[row][idx] = float64(pos)
		}
	}
	if found == 0 {
		return nil, noColumnsRefusal(q, fmt.Sprintf("no data column matches the %s{n} pattern", prefix))
	}
	if unmatched > 0 {
		warnings = append(warnings, fmt.Sprintf(
			"%d response value(s) did not match any option code or display text and were left missing", unmatched))
	}
	return warnings, nil
}

func noColumnsRefusal(q survey.Question, detail string) *refusal.Refusal {
	return refusal.Configuration(
		refusal.CodeRankingNoColumns,
		"Ranking data columns not found",
		fmt.Sprintf("question %q: %s", q.Code, detail),
	).WithRationale(
		"without raw rank columns there is nothing to extract",
	).WithFix(
		"check that the data export includes the ranking variables",
		"check the declared ranking format against the actual column layout",
	)
}

// normalizeDirection remaps worst-to-best input onto the internal
// 1 = best convention: r -> (positions + 1) - r.
func normalizeDirection(m *Matrix, positions int) {
	for _, row := range m.Ranks {
		for c, r := range row {
			if !math.IsNaN(r) {
				row[c] = float64(positions+1) - r
			}
		}
	}
}

// DataColumns lists the rank-related columns present in the dataset for
// a ranking question, across both layouts. Base calculation uses this;
// a respondent is in the ranking base if any of these is non-missing.
func DataColumns(ds *survey.Dataset, q survey.Question, opts []survey.Option) []string {
	var names []string
	prefix := q.Code + "_Rank"
	for _, name := range ds.Columns() {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	for _, opt := range opts {
		if ds.HasColumn(opt.Code) {
			names = append(names, opt.Code)
			continue
		}
		if prefixed := fmt.Sprintf("%s_%s", q.Code, opt.Code); ds.HasColumn(prefixed) {
			names = append(names, prefixed)
		}
	}
	return names
}
