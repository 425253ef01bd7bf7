package survey

import (
	"strconv"
	"strings"
)

type valueKind int

const (
	kindMissing valueKind = iota
	kindNumeric
	kindText
)

// Value is a single dataset cell. A cell is missing (no response recorded),
// numeric, or text; the distinction matters because inclusion rules treat
// numeric zero and empty text differently per question type.
type Value struct {
	kind valueKind
	num  float64
	str  string
}

// NA returns a missing cell.
func NA() Value {
	return Value{kind: kindMissing}
}

// Num returns a numeric cell.
func Num(f float64) Value {
	return Value{kind: kindNumeric, num: f}
}

// Str returns a text cell.
func Str(s string) Value {
	return Value{kind: kindText, str: s}
}

// IsMissing reports whether the cell holds no response.
func (v Value) IsMissing() bool {
	return v.kind == kindMissing
}

// Float returns the numeric content of the cell. Text cells are parsed
// after trimming, so rank positions stored as strings still resolve.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case kindNumeric:
		return v.num, true
	case kindText:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Text returns the text content of the cell. Numeric cells format
// with minimal digits so item-name matching works on either encoding.
func (v Value) Text() (string, bool) {
	switch v.kind {
	case kindText:
		return v.str, true
	case kindNumeric:
		return strconv.FormatFloat(v.num, 'f', -1, 64), true
	default:
		return "", false
	}
}

// Answered reports whether the cell counts as a response for a
// multi-mention indicator: non-missing and either numeric non-zero or
// non-empty text after trimming.
func (v Value) Answered() bool {
	switch v.kind {
	case kindNumeric:
		return v.num != 0
	case kindText:
		return strings.TrimSpace(v.str) != ""
	default:
		return false
	}
}
