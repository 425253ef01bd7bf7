package banner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLetter(t *testing.T) {
	tests := []struct {
		n        int
		expected string
	}{
		{1, "A"},
		{2, "B"},
		{26, "Z"},
		{27, "AA"},
		{28, "AB"},
		{52, "AZ"},
		{53, "BA"},
		{702, "ZZ"},
		{703, "AAA"},
		{16384, "XFD"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, Letter(tt.n))
		})
	}
}

func TestLetter_InvalidIndex(t *testing.T) {
	assert.Equal(t, "", Letter(0))
	assert.Equal(t, "", Letter(-5))
}

// TestLetters_CanonicalSequence regenerates the sequence independently
// and checks the full spreadsheet column range.
func TestLetters_CanonicalSequence(t *testing.T) {
	const n = 16384
	letters := Letters(n)
	require.Len(t, letters, n)

	// Independent incrementing counter in base 26.
	digits := []int{0} // 0 = 'A'
	for i := 0; i < n; i++ {
		want := make([]byte, len(digits))
		for j, d := range digits {
			want[j] = byte('A' + d)
		}
		require.Equal(t, string(want), letters[i], "index %d", i+1)

		// Increment with carry.
		j := len(digits) - 1
		for j >= 0 {
			digits[j]++
			if digits[j] < 26 {
				break
			}
			digits[j] = 0
			j--
		}
		if j < 0 {
			digits = append([]int{0}, digits...)
		}
	}
}

func TestLetters_Unique(t *testing.T) {
	letters := Letters(2000)
	seen := make(map[string]struct{}, len(letters))
	for _, l := range letters {
		_, dup := seen[l]
		require.False(t, dup, "duplicate letter %q", l)
		seen[l] = struct{}{}
	}
}
