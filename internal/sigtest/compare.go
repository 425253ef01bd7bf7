package sigtest

import (
	"fmt"
	"log/slog"
	"sort"

	"crosstab/internal/refusal"
)

// Compare runs all pairwise tests within one comparison group. The data
// and letter maps must carry exactly the same column-name key set; a
// mismatch means upstream column bookkeeping is broken and is refused
// as an internal error.
//
// The returned map assigns each column the concatenated letters of
// columns it is significantly higher than, in banner order. A nil map
// (with nil error) means fewer than two testable columns were available
// and no testing happened at all.
func Compare(data map[string]ColumnData, kind StatKind, letters map[string]string, opts Options, logger *slog.Logger) (map[string]string, []string, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := checkKeySets(data, letters); err != nil {
		return nil, nil, err
	}
	if len(data) < 2 {
		return nil, nil, nil
	}

	cols := orderedColumns(letters)

	var testable []string
	for _, name := range cols {
		eff := data[name].EffectiveN
		if kind == StatMean {
			eff = effectiveFor(data[name])
		}
		if eff >= opts.MinBase && eff > 0 {
			testable = append(testable, name)
		}
	}
	if len(testable) < 2 {
		return nil, nil, nil
	}

	result := make(map[string]string, len(cols))
	for _, name := range cols {
		result[name] = ""
	}
	if kind == StatOther {
		return result, nil, nil
	}

	nPairs := len(testable) * (len(testable) - 1) / 2
	alpha := opts.Alpha
	if opts.Bonferroni {
		alpha /= float64(nPairs)
	}

	var warnings []string
	for i := 0; i < len(testable); i++ {
		for j := i + 1; j < len(testable); j++ {
			nameI, nameJ := testable[i], testable[j]
			out := runPair(kind, data[nameI], data[nameJ])
			if out.warning != "" {
				warnings = append(warnings, fmt.Sprintf("%s vs %s: %s", nameI, nameJ, out.warning))
				logger.Warn("pairwise test skipped",
					"column_a", nameI,
					"column_b", nameJ,
					"reason", out.warning,
				)
				continue
			}
			if !out.conclusive || out.p >= alpha {
				continue
			}
			// Significance alone never credits a letter; the higher
			// point estimate takes it, and ties take nothing.
			switch {
			case out.estimateA > out.estimateB:
				result[nameI] += letters[nameJ]
			case out.estimateB > out.estimateA:
				result[nameJ] += letters[nameI]
			}
		}
	}
	return result, warnings, nil
}

func runPair(kind StatKind, a, b ColumnData) pairOutcome {
	switch kind {
	case StatProportion:
		return proportionTest(a, b)
	case StatMean:
		return meanTest(a, b)
	case StatChiSquare:
		return chiSquareTest(a, b)
	case StatNetDifference:
		return netDifferenceTest(a, b)
	default:
		return inconclusive()
	}
}

func checkKeySets(data map[string]ColumnData, letters map[string]string) error {
	mismatch := func() error {
		return refusal.Internal(
			refusal.CodeKeySetMismatch,
			"Test data and banner columns disagree",
			fmt.Sprintf("test data carries %d column(s), the banner letter map %d, and the key sets differ",
				len(data), len(letters)),
		)
	}
	if len(data) != len(letters) {
		return mismatch()
	}
	for name := range data {
		if _, ok := letters[name]; !ok {
			return mismatch()
		}
	}
	return nil
}

// orderedColumns sorts column names into banner order, which the
// letters encode: shorter letters first, then lexicographic.
func orderedColumns(letters map[string]string) []string {
	cols := make([]string, 0, len(letters))
	for name := range letters {
		cols = append(cols, name)
	}
	sort.Slice(cols, func(i, j int) bool {
		a, b := letters[cols[i]], letters[cols[j]]
		if len(a) != len(b) {
			return len(a) < len(b)
		}
		return a < b
	})
	return cols
}
