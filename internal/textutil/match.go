// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textutil

import (
	"strings"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

// RuneIndex maps regexp2 rune offsets back to byte offsets in the string
// they were computed on. regexp2 matches over []rune(s), where each invalid
// UTF-8 byte becomes one U+FFFD rune, so slicing the original string through
// the index returns the exact input bytes.
type RuneIndex []int

// NewRuneIndex returns the byte offset of every rune in s, plus len(s).
func NewRuneIndex(s string) RuneIndex {
	ix := make(RuneIndex, 0, len(s)+1)
	for i := 0; i < len(s); {
		ix = append(ix, i)
		_, n := utf8.DecodeRuneInString(s[i:])
		i += n
	}
	return append(ix, len(s))
}

// Text returns the original bytes of s covered by c.
func (ix RuneIndex) Text(s string, c regexp2.Capture) string {
	return s[ix[c.Index]:ix[c.Index+c.Length]]
}

// ReplaceFunc replaces every non-overlapping match of re in s with the
// result of repl and returns the number of matches. Bytes outside the
// matches are copied from s unchanged.
func ReplaceFunc(re *regexp2.Regexp, s string, repl func(ix RuneIndex, m *regexp2.Match) string) (string, int, error) {
	m, err := re.FindStringMatch(s)
	if err != nil {
		return "", 0, err
	}
	if m == nil {
		return s, 0, nil
	}

	ix := NewRuneIndex(s)
	var b strings.Builder
	last, n := 0, 0
	for m != nil {
		b.WriteString(s[last:ix[m.Index]])
		b.WriteString(repl(ix, m))
		last = ix[m.Index+m.Length]
		n++
		if m, err = re.FindNextMatch(m); err != nil {
			return "", 0, err
		}
	}
	b.WriteString(s[last:])
	return b.String(), n, nil
}

// Matches returns the original bytes of every non-overlapping match of re in s.
func Matches(re *regexp2.Regexp, s string) ([]string, error) {
	var out []string
	_, _, err := ReplaceFunc(re, s, func(ix RuneIndex, m *regexp2.Match) string {
		out = append(out, ix.Text(s, m.Capture))
		return ""
	})
	return out, err
}
