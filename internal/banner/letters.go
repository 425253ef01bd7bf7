package banner

// TotalLetter is the sentinel letter for the Total column, which never
// participates in pairwise comparisons.
const TotalLetter = "-"

// Letter converts a 1-based column index to its spreadsheet-style label
// using proper base-26 with 1-based digits: 1->"A", 26->"Z", 27->"AA",
// 702->"ZZ", 703->"AAA". Supports arbitrary width, well past the 16384
// column ("XFD") spreadsheet limit.
func Letter(n int) string {
	if n < 1 {
		return ""
	}
	var buf [8]byte
	i := len(buf)
	for n > 0 {
		n--
		i--
		buf[i] = byte('A' + n%26)
		n /= 26
	}
	return string(buf[i:])
}

// Letters returns the first n column labels in order.
func Letters(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = Letter(i + 1)
	}
	return out
}
