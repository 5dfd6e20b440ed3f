// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fixdivs repairs two markup problems in lesson files: centered div
// headers that were wrapped in sql code fences, and SQL written as a
// blockquote instead of a fenced block.
package fixdivs

import (
	"fmt"

	"github.com/dlclark/regexp2"

	"github.com/pdiddy/lessonfix/internal/textutil"
)

const fence = "```"

var (
	divInFence = regexp2.MustCompile(
		fence+`sql\s*(<div[^>]*?text-align:[^>]*?>.*?</div>)\s*`+fence,
		regexp2.IgnoreCase|regexp2.Singleline)

	quotedLine = regexp2.MustCompile(`^\s*>\s*(.*\S.*)?$`, regexp2.None)

	sqlKeyword = regexp2.MustCompile(
		`\b(SELECT|INSERT|UPDATE|DELETE|CREATE|WITH|FROM|WHERE|GROUP\s+BY|ORDER\s+BY|JOIN|HAVING|UNION|VALUES|CAST|SUM|AVG|COUNT|MIN|MAX)\b`,
		regexp2.IgnoreCase)

	sqlPunct = regexp2.MustCompile(`[,();=*<>\\]`, regexp2.None)
)

// Normalize unfences centered divs, then converts blockquoted SQL. The edit
// count is the sum of both steps.
func Normalize(text string) (string, int, error) {
	out, unfenced, err := Unfence(text)
	if err != nil {
		return "", 0, err
	}
	out, blocks, err := ConvertBlockquotes(out)
	if err != nil {
		return "", 0, err
	}
	return out, unfenced + blocks, nil
}

// Unfence replaces ```sql <div ...text-align:...>...</div> ``` with the bare div.
func Unfence(text string) (string, int, error) {
	out, n, err := textutil.ReplaceFunc(divInFence, text, func(ix textutil.RuneIndex, m *regexp2.Match) string {
		return ix.Text(text, m.GroupByNumber(1).Capture)
	})
	if err != nil {
		return "", 0, fmt.Errorf("unfencing divs: %w", err)
	}
	return out, n, nil
}

// ConvertBlockquotes replaces each run of blockquoted SQL lines with a
// fenced sql block. Blank quoted lines may appear inside a run; leading and
// trailing blanks are dropped from the block. A run made only of blank
// quoted lines is left as is. Lines are rejoined with \n and the input's
// trailing newline is kept.
func ConvertBlockquotes(text string) (string, int, error) {
	lines := textutil.SplitLines(text)
	out := make([]string, 0, len(lines))
	blocks := 0

	for i := 0; i < len(lines); {
		_, ok, err := quotedSQL(lines[i])
		if err != nil {
			return "", 0, err
		}
		if !ok {
			out = append(out, lines[i])
			i++
			continue
		}

		var sql []string
		nonEmpty := false
		j := i
		for ; j < len(lines); j++ {
			inner, ok, err := quotedSQL(lines[j])
			if err != nil {
				return "", 0, err
			}
			if !ok {
				break
			}
			sql = append(sql, inner)
			if inner != "" {
				nonEmpty = true
			}
		}

		if !nonEmpty {
			out = append(out, lines[i:j]...)
			i = j
			continue
		}

		for len(sql) > 0 && sql[0] == "" {
			sql = sql[1:]
		}
		for len(sql) > 0 && sql[len(sql)-1] == "" {
			sql = sql[:len(sql)-1]
		}
		out = append(out, fence+"sql")
		out = append(out, sql...)
		out = append(out, fence)
		blocks++
		i = j
	}

	return textutil.JoinLines(out, len(text) > 0 && text[len(text)-1] == '\n'), blocks, nil
}

// quotedSQL reports whether line is a blockquote line that belongs in an SQL
// block, and returns its text after the '>' marker. A blank quoted line
// qualifies with empty inner text.
func quotedSQL(line string) (string, bool, error) {
	m, err := quotedLine.FindStringMatch(line)
	if err != nil {
		return "", false, fmt.Errorf("matching blockquote: %w", err)
	}
	if m == nil {
		return "", false, nil
	}
	inner := textutil.NewRuneIndex(line).Text(line, m.GroupByNumber(1).Capture)
	if inner == "" {
		return "", true, nil
	}
	ok, err := looksLikeSQL(inner)
	if err != nil || !ok {
		return "", false, err
	}
	return inner, true, nil
}

func looksLikeSQL(s string) (bool, error) {
	if ok, err := sqlKeyword.MatchString(s); err != nil || ok {
		return ok, err
	}
	return sqlPunct.MatchString(s)
}
