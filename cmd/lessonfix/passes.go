// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/lessonfix/internal/bolddiv"
	"github.com/pdiddy/lessonfix/internal/lessons"
)

var boldDivsCmd = &cobra.Command{
	Use:   "bold-divs",
	Short: "Wrap centered 24px div headers in bold markers",
	Long: `Bold-divs wraps every <div> whose opening tag carries both
text-align: center and font-size: 24px, through the nearest </div>, in **
markers. Every lesson is copied to <name>.md.bak and rewritten, even when
nothing matched.

The match is not nesting-aware and the rewrite is not idempotent: running it
twice wraps the same header twice.

Use --dry-run to list the headers that would be wrapped without writing.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		if dryRun {
			return listSpans(cmd)
		}
		return runPass(cmd, lessons.BoldDivs)
	},
}

// listSpans prints each lesson with the spans bold-divs would wrap.
func listSpans(cmd *cobra.Command) error {
	cfg := loadConfig()
	dir, err := lessons.Resolve(cfg.Lessons.Dir)
	if err != nil {
		return err
	}
	files, err := lessons.List(dir)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	total := 0
	for _, path := range files {
		content, err := readLesson(path)
		if err != nil {
			return err
		}
		spans, err := bolddiv.Spans(content)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		fmt.Fprintf(w, "%s: %d span(s)\n", path, len(spans))
		for _, s := range spans {
			fmt.Fprintf(w, "  %s\n", s)
		}
		total += len(spans)
	}
	fmt.Fprintf(w, "\n%d span(s) in %d file(s)\n", total, len(files))
	return nil
}

func readLesson(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

var fixDivsCmd = &cobra.Command{
	Use:   "fix-divs",
	Short: "Unfence centered divs and fence blockquoted SQL",
	Long: `Fix-divs removes ` + "```sql" + ` fences that wrap centered <div> headers and
converts runs of blockquoted SQL lines into fenced sql blocks. Only changed
lessons are copied to <name>.md.fixbak and rewritten.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPass(cmd, lessons.FixDivs)
	},
}

var normalizeSQLCmd = &cobra.Command{
	Use:   "normalize-sql",
	Short: "Convert bold SQL lines into fenced sql blocks",
	Long: `Normalize-sql replaces runs of lines written entirely in bold that look
like SQL with a fenced sql block. Lines inside existing fences and bold div
headers are left alone, so run it after bold-divs. Only changed lessons are
copied to <name>.md.bak and rewritten.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPass(cmd, lessons.NormalizeSQL)
	},
}

func init() {
	boldDivsCmd.Flags().Bool("dry-run", false, "list matching headers without writing")

	rootCmd.AddCommand(boldDivsCmd)
	rootCmd.AddCommand(fixDivsCmd)
	rootCmd.AddCommand(normalizeSQLCmd)
}
