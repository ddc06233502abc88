/*
* Utility functions for formatting output.
 */
package format

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Print string with max length, truncating with ellipsis.
func Abbrev(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}

	runes := []rune(s)
	return string(runes[:max-1]) + "…"
}

// Formats an integer with thousands separators, e.g. 12,345.
func Number(n int) string {
	s := strconv.Itoa(n)
	if n < 0 {
		return "-" + Number(-n)
	}

	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}

	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}

	return b.String()
}

// Two decimal places, which is what we show for averages everywhere.
func Float(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}
