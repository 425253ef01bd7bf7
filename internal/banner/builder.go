// Package banner turns banner question selections into the ordered set
// of comparison columns a crosstab is broken out by, assigning stable
// internal keys and the letters later used for significance annotation.
package banner

import (
	"fmt"

	"crosstab/internal/refusal"
	"crosstab/internal/survey"
)

// Build constructs the banner structure for a run. With no selections it
// returns the Total-only structure. Selections are processed in display
// order; each contributes one column per visible option, or one column
// per box category when the selection is flagged as box/category.
func Build(selections []survey.BannerSelection, catalog *survey.Catalog) (*Structure, error) {
	s := &Structure{
		Columns:        []string{"Total"},
		InternalKeys:   []string{TotalKey},
		Letters:        []string{TotalLetter},
		ColumnToBanner: map[string]string{TotalKey: "TOTAL"},
		KeyToDisplay:   map[string]string{TotalKey: "Total"},
		BannerInfo:     make(map[string]Info),
		Headers:        []HeaderSpan{{Start: 1, End: 1, Label: "Total"}},
	}
	if len(selections) == 0 {
		return s, nil
	}

	letterIdx := 0 // counts lettered (non-Total) columns across all groups
	for _, sel := range survey.SortSelections(selections) {
		q, ok := catalog.Question(sel.QuestionCode)
		if !ok {
			return nil, refusal.Configuration(
				refusal.CodeBannerQuestionMissing,
				"Banner question not found",
				fmt.Sprintf("banner question %q does not exist in the question catalog", sel.QuestionCode),
			).WithRationale(
				"every banner column must trace back to a cataloged question so its data column and options can be resolved",
			).WithFix(
				"check the question code on the banner selection for typos",
				"confirm the question is present in the survey structure sheet",
			)
		}

		options := catalog.VisibleOptions(q.Code)
		start := len(s.Columns) + 1 // 1-based column index of this group's first column

		var group []string
		var err error
		if sel.BoxCategory {
			group, err = appendBoxCategoryColumns(s, q, options, &letterIdx)
		} else {
			group, err = appendStandardColumns(s, q, options, &letterIdx)
		}
		if err != nil {
			return nil, err
		}

		s.groups = append(s.groups, group)
		s.Headers = append(s.Headers, HeaderSpan{
			Start: start,
			End:   len(s.Columns),
			Label: headerLabel(sel, q),
		})
	}
	return s, nil
}

func appendStandardColumns(s *Structure, q survey.Question, options []survey.Option, letterIdx *int) ([]string, error) {
	if len(options) == 0 {
		return nil, refusal.Configuration(
			refusal.CodeBannerNoOptions,
			"Banner question has no visible options",
			fmt.Sprintf("question %q contributes no columns because all of its options are hidden or missing", q.Code),
		).WithRationale(
			"a banner question with zero columns would silently vanish from every table",
		).WithFix(
			"unhide at least one option for the question",
			"or remove the question from the banner selection",
		)
	}

	group := make([]string, 0, len(options))
	for _, opt := range options {
		key := fmt.Sprintf("%s::%s", q.Code, opt.Display)
		*letterIdx++
		s.Columns = append(s.Columns, opt.Display)
		s.InternalKeys = append(s.InternalKeys, key)
		s.Letters = append(s.Letters, Letter(*letterIdx))
		s.ColumnToBanner[key] = q.Code
		s.KeyToDisplay[key] = opt.Display
		group = append(group, key)
	}
	s.BannerInfo[q.Code] = Info{Question: q, Options: options}
	return group, nil
}

func appendBoxCategoryColumns(s *Structure, q survey.Question, options []survey.Option, letterIdx *int) ([]string, error) {
	groups := make(map[string][]string)
	var order []string
	for _, opt := range options {
		if opt.Category == "" {
			continue
		}
		if _, seen := groups[opt.Category]; !seen {
			order = append(order, opt.Category)
		}
		groups[opt.Category] = append(groups[opt.Category], opt.Code)
	}
	if len(order) == 0 {
		return nil, refusal.Configuration(
			refusal.CodeBannerNoCategories,
			"Box/category banner has no categories",
			fmt.Sprintf("question %q is flagged as a box/category banner but none of its options carry a category value", q.Code),
		).WithRationale(
			"box/category columns are built from the category field; without it there is nothing to group",
		).WithFix(
			"fill the category column for the options that should be grouped",
			"or clear the box/category flag to get one column per option",
		)
	}

	group := make([]string, 0, len(order))
	for _, cat := range order {
		key := fmt.Sprintf("%s::BOXCAT::%s", q.Code, cat)
		*letterIdx++
		s.Columns = append(s.Columns, cat)
		s.InternalKeys = append(s.InternalKeys, key)
		s.Letters = append(s.Letters, Letter(*letterIdx))
		s.ColumnToBanner[key] = q.Code
		s.KeyToDisplay[key] = cat
		group = append(group, key)
	}
	s.BannerInfo[q.Code] = Info{
		Question:       q,
		Options:        options,
		BoxCategory:    true,
		CategoryGroups: groups,
		CategoryOrder:  order,
	}
	return group, nil
}

// headerLabel picks the merged-header text: explicit banner label, then
// question text, then question code.
func headerLabel(sel survey.BannerSelection, q survey.Question) string {
	if sel.Label != "" {
		return sel.Label
	}
	if q.Text != "" {
		return q.Text
	}
	return q.Code
}
