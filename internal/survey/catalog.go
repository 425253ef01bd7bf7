package survey

import "sort"

// Catalog holds the question and option metadata for one study.
type Catalog struct {
	questions map[string]Question
	options   map[string][]Option
	qOrder    []string
}

// NewCatalog builds a catalog from metadata rows. Later duplicates of a
// question code replace earlier ones; option order is preserved as given.
func NewCatalog(questions []Question, options []Option) *Catalog {
	c := &Catalog{
		questions: make(map[string]Question, len(questions)),
		options:   make(map[string][]Option),
	}
	for _, q := range questions {
		if _, seen := c.questions[q.Code]; !seen {
			c.qOrder = append(c.qOrder, q.Code)
		}
		c.questions[q.Code] = q
	}
	for _, o := range options {
		c.options[o.QuestionCode] = append(c.options[o.QuestionCode], o)
	}
	return c
}

// Question looks up a question by code.
func (c *Catalog) Question(code string) (Question, bool) {
	q, ok := c.questions[code]
	return q, ok
}

// QuestionCodes returns all question codes in catalog order.
func (c *Catalog) QuestionCodes() []string {
	out := make([]string, len(c.qOrder))
	copy(out, c.qOrder)
	return out
}

// Options returns all options of a question in catalog order.
func (c *Catalog) Options(code string) []Option {
	return c.options[code]
}

// VisibleOptions returns the non-hidden options of a question sorted by
// display order. The sort is stable; options without an order sort last.
func (c *Catalog) VisibleOptions(code string) []Option {
	var out []Option
	for _, o := range c.options[code] {
		if !o.Hidden {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch {
		case a.HasOrder && b.HasOrder:
			return a.Order < b.Order
		case a.HasOrder:
			return true
		default:
			return false
		}
	})
	return out
}

// SortSelections orders banner selections by display order, stable, with
// unordered selections last.
func SortSelections(sels []BannerSelection) []BannerSelection {
	out := make([]BannerSelection, len(sels))
	copy(out, sels)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch {
		case a.HasOrder && b.HasOrder:
			return a.Order < b.Order
		case a.HasOrder:
			return true
		default:
			return false
		}
	})
	return out
}
