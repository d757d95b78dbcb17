// Package text holds small rune-aware string helpers shared by the summarizers.
package text

import "unicode/utf8"

// CountRunes counts Unicode characters rather than bytes.
//
//	CountRunes("hello")  // 5
//	CountRunes("café")   // 4
func CountRunes(text string) int {
	return utf8.RuneCountInString(text)
}

// TruncateRunes returns at most limit runes of text, never splitting a
// multi-byte character. A non-positive limit yields "".
func TruncateRunes(text string, limit int) string {
	if limit <= 0 {
		return ""
	}
	n := 0
	for i := range text {
		if n == limit {
			return text[:i]
		}
		n++
	}
	return text
}
