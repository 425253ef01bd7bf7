package survey

import "strings"

// QuestionType is the closed set of supported variable types. Dispatch
// on question type is exhaustive; adding a type is a compile-time
// visible change, not a silently-falling-through default.
type QuestionType int

const (
	TypeUnknown QuestionType = iota
	TypeSingle
	TypeMultiMention
	TypeRanking
	TypeNPS
	TypeRating
	TypeLikert
	TypeNumeric
)

// ParseQuestionType maps a metadata type string onto the enum.
// Unrecognized strings map to TypeUnknown.
func ParseQuestionType(s string) QuestionType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single", "single_response", "categorical":
		return TypeSingle
	case "multi", "multi_mention", "multimention":
		return TypeMultiMention
	case "ranking", "rank":
		return TypeRanking
	case "nps":
		return TypeNPS
	case "rating":
		return TypeRating
	case "likert":
		return TypeLikert
	case "numeric", "number", "open_numeric":
		return TypeNumeric
	default:
		return TypeUnknown
	}
}

// String returns the canonical lowercase name of the type.
func (t QuestionType) String() string {
	switch t {
	case TypeSingle:
		return "single"
	case TypeMultiMention:
		return "multi_mention"
	case TypeRanking:
		return "ranking"
	case TypeNPS:
		return "nps"
	case TypeRating:
		return "rating"
	case TypeLikert:
		return "likert"
	case TypeNumeric:
		return "numeric"
	default:
		return "unknown"
	}
}

// IsScale reports whether zero is a legitimate scale value for this
// type. On scale questions only a missing cell excludes a respondent
// from the base; elsewhere numeric zero means "no response".
func (t QuestionType) IsScale() bool {
	switch t {
	case TypeNPS, TypeRating, TypeLikert:
		return true
	default:
		return false
	}
}

// RankDirection declares which end of the scale rank value 1 denotes.
type RankDirection int

const (
	DirectionUnknown RankDirection = iota
	// BestToWorst means rank 1 is the most preferred item. This is the
	// internal convention; extraction normalizes to it.
	BestToWorst
	// WorstToBest means rank 1 is the least preferred item.
	WorstToBest
)

// ParseRankDirection maps a metadata direction string onto the enum.
func ParseRankDirection(s string) RankDirection {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "best_to_worst", "best-to-worst", "ascending":
		return BestToWorst
	case "worst_to_best", "worst-to-best", "descending":
		return WorstToBest
	default:
		return DirectionUnknown
	}
}

// RankFormat declares how ranking responses are laid out in the data.
type RankFormat int

const (
	FormatUnknown RankFormat = iota
	// FormatPosition has one data column per ranked item holding that
	// item's assigned rank.
	FormatPosition
	// FormatItem has one data column per rank position holding the item
	// chosen for that position.
	FormatItem
)

// ParseRankFormat maps a metadata format string onto the enum.
func ParseRankFormat(s string) RankFormat {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "position":
		return FormatPosition
	case "item":
		return FormatItem
	default:
		return FormatUnknown
	}
}

func (f RankFormat) String() string {
	switch f {
	case FormatPosition:
		return "position"
	case FormatItem:
		return "item"
	default:
		return "unknown"
	}
}

// Question is one row of the question metadata catalog.
type Question struct {
	Code string
	Text string
	Type QuestionType

	// Display order within the questionnaire. HasOrder false sorts last.
	Order    float64
	HasOrder bool

	// Multi-mention: declared number of indicator columns.
	MentionColumns int

	// Ranking metadata.
	RankDirection RankDirection
	NumPositions  int
	RankFormat    RankFormat
}

// Option is one row of the option metadata catalog.
type Option struct {
	QuestionCode string
	Code         string
	Display      string
	// Category is the box/category group this option collapses into;
	// empty means ungrouped.
	Category string
	Hidden   bool
	Order    float64
	HasOrder bool
}

// BannerSelection flags one question as a banner break.
type BannerSelection struct {
	QuestionCode string
	// Label overrides the question text in the merged header when set.
	Label       string
	BoxCategory bool
	Order       float64
	HasOrder    bool
}
