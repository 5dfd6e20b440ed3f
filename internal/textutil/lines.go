// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textutil holds line and match helpers shared by the passes.
package textutil

import "strings"

// SplitLines splits s at every line boundary Python's str.splitlines
// recognises: \n, \r\n, \r, \v, \f, \x1c, \x1d, \x1e, U+0085, U+2028 and
// U+2029. A trailing boundary does not produce a final empty line, so
// "a\nb\n" yields ["a", "b"].
func SplitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); {
		n := boundary(s, i)
		if n == 0 {
			i++
			continue
		}
		lines = append(lines, s[start:i])
		i += n
		start = i
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

// boundary returns the byte length of the line boundary at s[i], or 0.
func boundary(s string, i int) int {
	switch s[i] {
	case '\n', '\v', '\f', '\x1c', '\x1d', '\x1e':
		return 1
	case '\r':
		if i+1 < len(s) && s[i+1] == '\n' {
			return 2
		}
		return 1
	case 0xc2: // U+0085
		if i+1 < len(s) && s[i+1] == 0x85 {
			return 2
		}
	case 0xe2: // U+2028, U+2029
		if i+2 < len(s) && s[i+1] == 0x80 && (s[i+2] == 0xa8 || s[i+2] == 0xa9) {
			return 3
		}
	}
	return 0
}

// JoinLines joins lines with \n and appends a final \n when trailing is true.
func JoinLines(lines []string, trailing bool) string {
	s := strings.Join(lines, "\n")
	if trailing {
		s += "\n"
	}
	return s
}
