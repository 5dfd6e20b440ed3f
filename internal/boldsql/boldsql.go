// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package boldsql converts SQL that was written as bold Markdown lines into
// fenced sql code blocks.
//
// A bold SQL line is a whole line of the form **...** (optionally inside a
// blockquote) whose text looks like SQL. Lines inside existing code fences
// and bold div headers are never touched.
package boldsql

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/pdiddy/lessonfix/internal/textutil"
)

const fence = "```"

var (
	boldLine  = regexp2.MustCompile(`^\s*(>\s*)?\*\*(.*?)\*\*\s*$`, regexp2.None)
	fenceLine = regexp2.MustCompile(`^\s*`+fence, regexp2.None)

	sqlKeyword = regexp2.MustCompile(
		`\b(SELECT|INSERT|UPDATE|DELETE|CREATE|WITH|FROM|WHERE|GROUP\s+BY|ORDER\s+BY|JOIN|HAVING|UNION|VALUES)\b`,
		regexp2.IgnoreCase)

	sqlPunct = regexp2.MustCompile(`[,();=*<>]`, regexp2.None)
)

// Normalize replaces each run of consecutive bold SQL lines with a fenced
// sql block. When nothing is replaced the input is returned unchanged;
// otherwise lines are rejoined with \n and a final \n is always added.
func Normalize(text string) (string, int, error) {
	lines := textutil.SplitLines(text)
	out := make([]string, 0, len(lines))
	inFence := false
	blocks := 0

	for i := 0; i < len(lines); {
		line := lines[i]

		isFence, err := fenceLine.MatchString(line)
		if err != nil {
			return "", 0, fmt.Errorf("matching fence: %w", err)
		}
		if isFence {
			inFence = !inFence
			out = append(out, line)
			i++
			continue
		}

		if !inFence {
			inner, ok, err := boldSQL(line)
			if err != nil {
				return "", 0, err
			}
			if ok {
				sql := []string{inner}
				j := i + 1
				for ; j < len(lines); j++ {
					next, ok, err := boldSQL(lines[j])
					if err != nil {
						return "", 0, err
					}
					if !ok {
						break
					}
					sql = append(sql, next)
				}
				out = append(out, fence+"sql")
				out = append(out, sql...)
				out = append(out, fence)
				blocks++
				i = j
				continue
			}
		}

		out = append(out, line)
		i++
	}

	if blocks == 0 {
		return text, 0, nil
	}
	return textutil.JoinLines(out, true), blocks, nil
}

// boldSQL reports whether line is a bold SQL line and returns the text
// between the bold markers.
func boldSQL(line string) (string, bool, error) {
	m, err := boldLine.FindStringMatch(line)
	if err != nil {
		return "", false, fmt.Errorf("matching bold line: %w", err)
	}
	if m == nil {
		return "", false, nil
	}
	inner := textutil.NewRuneIndex(line).Text(line, m.GroupByNumber(2).Capture)

	lower := strings.ToLower(inner)
	if strings.Contains(lower, "<div") || strings.Contains(lower, "</div>") {
		return "", false, nil
	}

	if ok, err := sqlKeyword.MatchString(inner); err != nil || ok {
		return inner, ok, err
	}
	ok, err := sqlPunct.MatchString(inner)
	if err != nil || !ok {
		return "", false, err
	}
	return inner, true, nil
}
