package utils

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Capitalize upper-cases the first letter and lower-cases the rest ("sidi bou" -> "Sidi bou")
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// ContainsFold reports whether substr is within s, ignoring case
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// FormatNumber renders a float without trailing zeros (40 -> "40", 40.5 -> "40.5")
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Truncate cuts s to at most n runes, appending "..." when shortened
func Truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "..."
}
