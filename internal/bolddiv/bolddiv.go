// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bolddiv wraps centered 24px <div> headers in Markdown bold markers.
//
// A header is a <div ...> opening tag whose attribute text carries both a
// text-align: center and a font-size: 24px declaration, in either order,
// through the nearest following </div>. Matching is case-insensitive, crosses
// line breaks, and is not nesting-aware: a nested <div> closes the span
// early. Wrapping is not idempotent; the tag still matches after it has been
// wrapped, so a second pass adds another pair of markers.
package bolddiv

import (
	"fmt"

	"github.com/dlclark/regexp2"

	"github.com/pdiddy/lessonfix/internal/textutil"
)

// Marker is placed before and after every matched span.
const Marker = "**"

// pattern keeps both lookaheads inside the opening tag by refusing to cross
// '>' before the tag ends.
const pattern = `<div(?=[^>]*?text-align[^>]*?center)(?=[^>]*?font-size[^>]*?24px)[^>]*>.*?</div>`

var centeredDiv = regexp2.MustCompile(pattern, regexp2.IgnoreCase|regexp2.Singleline)

// Wrap returns text with every qualifying span surrounded by Marker, and the
// number of spans wrapped. Spans are found left to right and never overlap.
// Bytes outside the spans, including invalid UTF-8, are kept as they are.
func Wrap(text string) (string, int, error) {
	out, n, err := textutil.ReplaceFunc(centeredDiv, text, func(ix textutil.RuneIndex, m *regexp2.Match) string {
		return Marker + ix.Text(text, m.Capture) + Marker
	})
	if err != nil {
		return "", 0, fmt.Errorf("wrapping centered divs: %w", err)
	}
	return out, n, nil
}

// Spans returns the qualifying spans in document order without modifying text.
func Spans(text string) ([]string, error) {
	spans, err := textutil.Matches(centeredDiv, text)
	if err != nil {
		return nil, fmt.Errorf("matching centered divs: %w", err)
	}
	return spans, nil
}
