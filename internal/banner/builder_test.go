package banner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crosstab/internal/refusal"
	"crosstab/internal/survey"
)

func demographicsCatalog() *survey.Catalog {
	return survey.NewCatalog(
		[]survey.Question{
			{Code: "GENDER", Text: "Gender", Type: survey.TypeSingle},
			{Code: "AGE", Text: "Age group", Type: survey.TypeSingle},
			{Code: "REGION", Type: survey.TypeSingle},
		},
		[]survey.Option{
			{QuestionCode: "GENDER", Code: "1", Display: "Male", Order: 1, HasOrder: true},
			{QuestionCode: "GENDER", Code: "2", Display: "Female", Order: 2, HasOrder: true},
			{QuestionCode: "AGE", Code: "A", Display: "18-34", Category: "Younger", Order: 1, HasOrder: true},
			{QuestionCode: "AGE", Code: "B", Display: "35-54", Category: "Younger", Order: 2, HasOrder: true},
			{QuestionCode: "AGE", Code: "C", Display: "55+", Category: "Older", Order: 3, HasOrder: true},
			{QuestionCode: "REGION", Code: "N", Display: "North", Order: 2, HasOrder: true},
			{QuestionCode: "REGION", Code: "S", Display: "South", Order: 1, HasOrder: true},
		},
	)
}

func TestBuild_TotalOnly(t *testing.T) {
	st, err := Build(nil, demographicsCatalog())
	require.NoError(t, err)

	assert.Equal(t, []string{"Total"}, st.Columns)
	assert.Equal(t, []string{TotalKey}, st.InternalKeys)
	assert.Equal(t, []string{"-"}, st.Letters)
	assert.Empty(t, st.Groups())
	assert.True(t, st.HasTotal())
}

func TestBuild_StandardBanner(t *testing.T) {
	st, err := Build([]survey.BannerSelection{
		{QuestionCode: "GENDER", Order: 1, HasOrder: true},
	}, demographicsCatalog())
	require.NoError(t, err)

	assert.Equal(t, []string{"Total", "Male", "Female"}, st.Columns)
	assert.Equal(t, []string{TotalKey, "GENDER::Male", "GENDER::Female"}, st.InternalKeys)
	assert.Equal(t, []string{"-", "A", "B"}, st.Letters)
	assert.Equal(t, "GENDER", st.ColumnToBanner["GENDER::Male"])
	assert.Equal(t, "Male", st.KeyToDisplay["GENDER::Male"])

	require.Len(t, st.Headers, 2)
	assert.Equal(t, HeaderSpan{Start: 1, End: 1, Label: "Total"}, st.Headers[0])
	assert.Equal(t, HeaderSpan{Start: 2, End: 3, Label: "Gender"}, st.Headers[1])
}

func TestBuild_BoxCategoryGrouping(t *testing.T) {
	st, err := Build([]survey.BannerSelection{
		{QuestionCode: "AGE", BoxCategory: true},
	}, demographicsCatalog())
	require.NoError(t, err)

	// Options {A:Younger, B:Younger, C:Older} collapse to two columns.
	assert.Equal(t, []string{"Total", "Younger", "Older"}, st.Columns)
	assert.Equal(t, []string{TotalKey, "AGE::BOXCAT::Younger", "AGE::BOXCAT::Older"}, st.InternalKeys)

	info := st.BannerInfo["AGE"]
	require.True(t, info.BoxCategory)
	assert.Equal(t, []string{"Younger", "Older"}, info.CategoryOrder)
	assert.ElementsMatch(t, []string{"A", "B"}, info.CategoryGroups["Younger"])
	assert.Equal(t, []string{"C"}, info.CategoryGroups["Older"])
}

func TestBuild_MultipleBanners(t *testing.T) {
	st, err := Build([]survey.BannerSelection{
		{QuestionCode: "AGE", BoxCategory: true, Order: 2, HasOrder: true},
		{QuestionCode: "GENDER", Label: "By gender", Order: 1, HasOrder: true},
		{QuestionCode: "REGION"}, // no order sorts last
	}, demographicsCatalog())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Total", "Male", "Female", "Younger", "Older", "South", "North",
	}, st.Columns)
	// Letters continue across groups; Total stays "-".
	assert.Equal(t, []string{"-", "A", "B", "C", "D", "E", "F"}, st.Letters)

	groups := st.Groups()
	require.Len(t, groups, 3)
	assert.Equal(t, []string{"GENDER::Male", "GENDER::Female"}, groups[0])
	assert.Equal(t, []string{"AGE::BOXCAT::Younger", "AGE::BOXCAT::Older"}, groups[1])
	assert.Equal(t, []string{"REGION::South", "REGION::North"}, groups[2])

	// Explicit label beats question text; question code fills in when
	// the text is empty.
	assert.Equal(t, "By gender", st.Headers[1].Label)
	assert.Equal(t, "Age group", st.Headers[2].Label)
	assert.Equal(t, "REGION", st.Headers[3].Label)
}

func TestBuild_KeysUnique(t *testing.T) {
	st, err := Build([]survey.BannerSelection{
		{QuestionCode: "GENDER"},
		{QuestionCode: "AGE"},
		{QuestionCode: "REGION"},
	}, demographicsCatalog())
	require.NoError(t, err)

	seen := make(map[string]struct{})
	for _, key := range st.InternalKeys {
		_, dup := seen[key]
		require.False(t, dup, "duplicate internal key %q", key)
		seen[key] = struct{}{}
	}
	assert.Len(t, st.InternalKeys, len(st.Columns))
	assert.Len(t, st.Letters, len(st.Columns))
}

func TestBuild_Refusals(t *testing.T) {
	catalog := survey.NewCatalog(
		[]survey.Question{
			{Code: "EMPTY", Type: survey.TypeSingle},
			{Code: "NOCAT", Type: survey.TypeSingle},
		},
		[]survey.Option{
			{QuestionCode: "EMPTY", Code: "1", Display: "Hidden", Hidden: true},
			{QuestionCode: "NOCAT", Code: "1", Display: "One"},
			{QuestionCode: "NOCAT", Code: "2", Display: "Two"},
		},
	)

	tests := []struct {
		name      string
		selection survey.BannerSelection
		code      string
	}{
		{
			name:      "unknown question",
			selection: survey.BannerSelection{QuestionCode: "MISSING"},
			code:      refusal.CodeBannerQuestionMissing,
		},
		{
			name:      "no visible options",
			selection: survey.BannerSelection{QuestionCode: "EMPTY"},
			code:      refusal.CodeBannerNoOptions,
		},
		{
			name:      "box category without categories",
			selection: survey.BannerSelection{QuestionCode: "NOCAT", BoxCategory: true},
			code:      refusal.CodeBannerNoCategories,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build([]survey.BannerSelection{tt.selection}, catalog)
			require.Error(t, err)

			r, ok := refusal.As(err)
			require.True(t, ok)
			assert.Equal(t, tt.code, r.Code)
			assert.Equal(t, refusal.ClassConfiguration, r.Class)
			assert.NotEmpty(t, r.FixSteps)
		})
	}
}
