package domain

import "unicode/utf8"

// TruncateOnRune cuts s to at most max bytes without splitting a
// multi-byte rune. max <= 0 means no limit.
func TruncateOnRune(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
