package banner

import "crosstab/internal/survey"

// TotalKey is the internal key of the Total column.
const TotalKey = "TOTAL::Total"

// HeaderSpan describes one merged-header range for rendering, using
// 1-based inclusive column indices.
type HeaderSpan struct {
	Start int
	End   int
	Label string
}

// Info records the metadata behind one banner question's columns.
type Info struct {
	Question    survey.Question
	Options     []survey.Option
	BoxCategory bool
	// CategoryGroups maps a category value to the option codes it
	// collapses. A respondent counts toward the category if they
	// selected ANY option in the set; the downstream table builder
	// applies that OR semantic, this package only emits the grouping.
	CategoryGroups map[string][]string
	// CategoryOrder lists categories in first-seen option order.
	CategoryOrder []string
}

// Structure is the finished banner: the ordered comparison columns with
// their stable internal keys and significance letters. Immutable once
// built for a run.
type Structure struct {
	// Columns holds display labels; the first is always "Total".
	Columns []string
	// InternalKeys are unique lookup keys, 1:1 with Columns, formatted
	// "{QuestionCode}::{OptionOrCategory}".
	InternalKeys []string
	// Letters are 1:1 with Columns; Total's letter is "-".
	Letters []string
	// ColumnToBanner maps an internal key to its banner question code.
	ColumnToBanner map[string]string
	// KeyToDisplay maps an internal key to its display label.
	KeyToDisplay map[string]string
	// BannerInfo maps a banner question code to its metadata.
	BannerInfo map[string]Info
	// Headers lists merged-header spans in column order.
	Headers []HeaderSpan

	// groups lists each banner question's internal keys in column
	// order. Columns from different banner questions are never compared
	// against each other.
	groups [][]string
}

// LetterFor returns the significance letter of an internal key.
func (s *Structure) LetterFor(key string) (string, bool) {
	for i, k := range s.InternalKeys {
		if k == key {
			return s.Letters[i], true
		}
	}
	return "", false
}

// Groups returns each banner question's internal keys as an independent
// comparison group, in banner order. The Total column is in no group.
func (s *Structure) Groups() [][]string {
	out := make([][]string, len(s.groups))
	for i, g := range s.groups {
		cp := make([]string, len(g))
		copy(cp, g)
		out[i] = cp
	}
	return out
}

// HasTotal reports whether the structure carries the Total column.
// Always true for structures produced by Build.
func (s *Structure) HasTotal() bool {
	return len(s.InternalKeys) > 0 && s.InternalKeys[0] == TotalKey
}
