package sigtest

import (
	"fmt"
	"log/slog"

	"crosstab/internal/banner"
	"crosstab/internal/refusal"
)

// AssembleRow runs pairwise testing for one statistic row across a
// banner that may carry several independent banner questions. Columns
// from different banner questions are never compared; each question's
// column subset is tested on its own and the letter maps merge into one
// row keyed by internal column key.
//
// The Total column is never tested and always reads "-". When no group
// ends up with two testable columns the row is a null result: a nil map,
// not an empty one.
func AssembleRow(st *banner.Structure, kind StatKind, data map[string]ColumnData, opts Options, logger *slog.Logger) (map[string]string, []string, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := checkRowKeySet(st, data); err != nil {
		return nil, nil, err
	}

	merged := make(map[string]string, len(st.InternalKeys))
	var warnings []string
	tested := false

	for _, group := range st.Groups() {
		subData := make(map[string]ColumnData, len(group))
		subLetters := make(map[string]string, len(group))
		for _, key := range group {
			subData[key] = data[key]
			letter, ok := st.LetterFor(key)
			if !ok {
				return nil, nil, refusal.Internal(
					refusal.CodeKeySetMismatch,
					"Banner group references unknown column",
					fmt.Sprintf("internal key %q is grouped but carries no letter", key),
				)
			}
			subLetters[key] = letter
		}

		res, warns, err := Compare(subData, kind, subLetters, opts, logger)
		if err != nil {
			return nil, nil, err
		}
		warnings = append(warnings, warns...)
		if res == nil {
			// Group not testable; its columns stay blank if another
			// group produces a row.
			for _, key := range group {
				merged[key] = ""
			}
			continue
		}
		tested = true
		for key, letters := range res {
			merged[key] = letters
		}
	}

	if !tested {
		return nil, warnings, nil
	}
	if st.HasTotal() {
		merged[banner.TotalKey] = banner.TotalLetter
	}
	return merged, warnings, nil
}

// checkRowKeySet demands that the test data key set exactly matches the
// banner's internal keys. A mismatch implies broken upstream bookkeeping
// and is refused as an internal error.
func checkRowKeySet(st *banner.Structure, data map[string]ColumnData) error {
	mismatch := func(detail string) error {
		return refusal.Internal(
			refusal.CodeKeySetMismatch,
			"Test data and banner structure disagree",
			detail,
		)
	}
	if len(data) != len(st.InternalKeys) {
		return mismatch(fmt.Sprintf(
			"test data carries %d column(s) but the banner has %d", len(data), len(st.InternalKeys)))
	}
	for _, key := range st.InternalKeys {
		if _, ok := data[key]; !ok {
			return mismatch(fmt.Sprintf("banner column %q is missing from the test data", key))
		}
	}
	return nil
}
