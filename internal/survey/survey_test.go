package survey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		v := NA()
		assert.True(t, v.IsMissing())
		assert.False(t, v.Answered())
		_, ok := v.Float()
		assert.False(t, ok)
	})

	t.Run("numeric", func(t *testing.T) {
		v := Num(3.5)
		f, ok := v.Float()
		require.True(t, ok)
		assert.InDelta(t, 3.5, f, 1e-12)
		assert.True(t, v.Answered())
		assert.False(t, Num(0).Answered(), "numeric zero is not a mention")
	})

	t.Run("text parses as number after trim", func(t *testing.T) {
		f, ok := Str(" 2 ").Float()
		require.True(t, ok)
		assert.InDelta(t, 2, f, 1e-12)

		_, ok = Str("two").Float()
		assert.False(t, ok)
	})

	t.Run("blank text is not a mention", func(t *testing.T) {
		assert.False(t, Str("   ").Answered())
		assert.True(t, Str("brand x").Answered())
	})
}

func TestQuestionType(t *testing.T) {
	tests := []struct {
		raw      string
		expected QuestionType
		scale    bool
	}{
		{"single", TypeSingle, false},
		{"Multi_Mention", TypeMultiMention, false},
		{"ranking", TypeRanking, false},
		{"NPS", TypeNPS, true},
		{"rating", TypeRating, true},
		{"likert", TypeLikert, true},
		{"numeric", TypeNumeric, false},
		{"mystery", TypeUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := ParseQuestionType(tt.raw)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.scale, got.IsScale())
		})
	}
}

func TestDataset(t *testing.T) {
	ds := NewDataset(3)
	require.NoError(t, ds.AddColumn("Q1", []Value{Num(1), Num(2), Num(3)}))
	require.NoError(t, ds.AddColumn("Q2", []Value{Str("a"), NA(), Str("c")}))

	assert.Equal(t, 3, ds.Rows())
	assert.Equal(t, []string{"Q1", "Q2"}, ds.Columns())
	assert.True(t, ds.HasColumn("Q2"))
	assert.False(t, ds.HasColumn("Q3"))

	t.Run("length mismatch rejected", func(t *testing.T) {
		assert.Error(t, ds.AddColumn("Q3", []Value{Num(1)}))
	})

	t.Run("select filters rows in order", func(t *testing.T) {
		sub, err := ds.Select([]int{2, 0})
		require.NoError(t, err)
		assert.Equal(t, 2, sub.Rows())

		cells, ok := sub.Column("Q1")
		require.True(t, ok)
		f, _ := cells[0].Float()
		assert.InDelta(t, 3, f, 1e-12)
	})

	t.Run("select rejects out-of-range rows", func(t *testing.T) {
		_, err := ds.Select([]int{5})
		assert.Error(t, err)
	})
}

func TestCatalog_VisibleOptions(t *testing.T) {
	c := NewCatalog(
		[]Question{{Code: "Q1", Type: TypeSingle}},
		[]Option{
			{QuestionCode: "Q1", Code: "C", Display: "Third", Order: 3, HasOrder: true},
			{QuestionCode: "Q1", Code: "X", Display: "Hidden", Hidden: true, Order: 1, HasOrder: true},
			{QuestionCode: "Q1", Code: "A", Display: "First", Order: 1, HasOrder: true},
			{QuestionCode: "Q1", Code: "Z", Display: "Unordered"},
		},
	)

	opts := c.VisibleOptions("Q1")
	require.Len(t, opts, 3)
	assert.Equal(t, "First", opts[0].Display)
	assert.Equal(t, "Third", opts[1].Display)
	assert.Equal(t, "Unordered", opts[2].Display, "options without an order sort last")
}

func TestSortSelections(t *testing.T) {
	sorted := SortSelections([]BannerSelection{
		{QuestionCode: "LAST"},
		{QuestionCode: "SECOND", Order: 2, HasOrder: true},
		{QuestionCode: "FIRST", Order: 1, HasOrder: true},
	})

	assert.Equal(t, "FIRST", sorted[0].QuestionCode)
	assert.Equal(t, "SECOND", sorted[1].QuestionCode)
	assert.Equal(t, "LAST", sorted[2].QuestionCode)
}
