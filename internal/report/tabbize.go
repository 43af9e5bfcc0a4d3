package report

import "strings"

// Tabbize writes the characters of s in reverse order, each followed by a tab.
func Tabbize(s string) string {
	runes := []rune(s)
	var sb strings.Builder
	sb.Grow(len(s) + len(runes))
	for i := len(runes) - 1; i >= 0; i-- {
		sb.WriteRune(runes[i])
		sb.WriteByte('\t')
	}
	return sb.String()
}
