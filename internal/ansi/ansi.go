// Package ansi measures strings that carry terminal color escape sequences.
package ansi

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var csiRe = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// Strip removes every CSI escape sequence (ESC '[' params final-letter) from s.
func Strip(s string) string {
	if !strings.Contains(s, "\x1b") {
		return s
	}
	return csiRe.ReplaceAllString(s, "")
}

// VisibleWidth returns the number of Unicode scalar values in s once escape
// sequences are removed.
func VisibleWidth(s string) int {
	return utf8.RuneCountInString(Strip(s))
}

// PadRight appends spaces to s until its visible width reaches width.
// Strings already at or past width are returned unchanged.
func PadRight(s string, width int) string {
	n := width - VisibleWidth(s)
	if n <= 0 {
		return s
	}
	return s + strings.Repeat(" ", n)
}
