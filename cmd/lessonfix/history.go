// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/lessonfix/internal/journal"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect the run journal (list, show, export)",
	Long: `History reads the SQLite run journal written when --journal is set.
Each run records the pass, the lessons directory, and for every lesson the
backup path, edit count, and status.`,
}

// --- list subcommand ---

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent runs, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := openJournal()
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.Runs(cmd.Context(), limit)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-5s  %-14s  %-20s  %-5s  %-7s  %s\n",
		"ID", "Command", "Started", "Files", "Changed", "Status")
	fmt.Fprintln(w, strings.Repeat("-", 70))
	for _, r := range runs {
		fmt.Fprintf(w, "%-5d  %-14s  %-20s  %-5d  %-7d  %s\n",
			r.ID, r.Command, r.StartedAt.Format("2006-01-02 15:04:05"),
			len(r.Files), r.Changed(), r.Status)
	}
	fmt.Fprintf(w, "\n%d runs\n", len(runs))
	return nil
}

// --- show subcommand ---

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show the per-lesson results of one run",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid run id %q: %w", args[0], err)
	}

	store, err := openJournal()
	if err != nil {
		return err
	}
	defer store.Close()

	run, err := store.Run(cmd.Context(), id)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Run %d: %s (%s)\n", run.ID, run.Command, run.Status)
	fmt.Fprintf(w, "Dir: %s\n", run.Dir)
	fmt.Fprintf(w, "Started: %s\n\n", run.StartedAt.Format("2006-01-02 15:04:05"))
	for _, f := range run.Files {
		fmt.Fprintf(w, "%-9s  %3d  %s", f.Status, f.Edits, f.Path)
		if f.BackupPath != "" {
			fmt.Fprintf(w, "  (backup %s)", f.BackupPath)
		}
		if f.Error != "" {
			fmt.Fprintf(w, "  error: %s", f.Error)
		}
		fmt.Fprintln(w)
	}
	return nil
}

// --- export subcommand ---

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the run journal to YAML or JSON",
	Long: `Export writes every recorded run with its per-lesson results to
history.yaml or history.json next to the journal database, or to --out.`,
	Args: cobra.NoArgs,
	RunE: runHistoryExport,
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")

	store, err := openJournal()
	if err != nil {
		return err
	}
	defer store.Close()

	switch format {
	case "yaml", "":
		if out == "" {
			out = store.DefaultExportPath("yaml")
		}
		err = store.ExportYAML(cmd.Context(), out)
	case "json":
		if out == "" {
			out = store.DefaultExportPath("json")
		}
		err = store.ExportJSON(cmd.Context(), out)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Exported to", out)
	return nil
}

// --- shared helpers ---

func openJournal() (*journal.Store, error) {
	cfg := loadConfig().Journal
	if !cfg.Enabled() {
		return nil, fmt.Errorf("no journal configured: pass --journal or set LESSONFIX_JOURNAL")
	}
	return journal.Open(cfg)
}

func init() {
	historyListCmd.Flags().Int("limit", 0, "maximum runs to list (0 = default)")
	historyListCmd.Flags().Bool("json", false, "output runs as JSON")

	historyExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	historyExportCmd.Flags().String("out", "", "output file (default: history.<format> next to the journal)")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyExportCmd)

	rootCmd.AddCommand(historyCmd)
}
