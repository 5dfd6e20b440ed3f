// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the lessonfix CLI.
//
// Running lessonfix with no subcommand wraps centered 24px div headers in
// bold markers for every lesson in <repo>/course/lessons, where <repo> is
// the parent of the directory holding the binary.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/lessonfix/internal/journal"
	"github.com/pdiddy/lessonfix/internal/lessons"
	"github.com/pdiddy/lessonfix/internal/logging"
	"github.com/pdiddy/lessonfix/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the lessonfix CLI.
var rootCmd = &cobra.Command{
	Use:   "lessonfix",
	Short: "Rewrite Markdown lesson files in place",
	Long: `lessonfix rewrites the Markdown lessons in course/lessons in place.

Without a subcommand it runs bold-divs: every <div> whose style carries both
text-align: center and font-size: 24px is wrapped in ** markers, through the
nearest closing </div>. Each lesson is copied to <name>.md.bak first.

fix-divs and normalize-sql clean up SQL formatting in the same lessons.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPass(cmd, lessons.BoldDivs)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./lessonfix.yaml or ~/.config/lessonfix/lessonfix.yaml)")
	rootCmd.PersistentFlags().String("lessons-dir", "", "lessons directory (default: <binary dir>/../course/lessons)")
	rootCmd.PersistentFlags().String("journal", "", "record runs in this SQLite database (disabled when empty)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug logging on stderr")

	bindFlags()
}

// bindFlags ties the persistent flags to their config keys so a set flag
// wins over env and config file values.
func bindFlags() {
	_ = viper.BindPFlag("lessons_dir", rootCmd.PersistentFlags().Lookup("lessons-dir"))
	_ = viper.BindPFlag("journal", rootCmd.PersistentFlags().Lookup("journal"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("lessonfix")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "lessonfix"))
		}
	}

	viper.SetEnvPrefix("LESSONFIX")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig reads the effective settings: flag, then env, then config file.
func loadConfig() types.Config {
	return types.Config{
		Lessons: types.LessonsConfig{
			Dir:     viper.GetString("lessons_dir"),
			Verbose: viper.GetBool("verbose"),
		},
		Journal: types.JournalConfig{
			Path:       viper.GetString("journal"),
			MaxResults: viper.GetInt("history_limit"),
		},
	}
}

// runPass runs a rewrite pass over the configured lessons directory and,
// when a journal is configured, records the outcome whether or not the pass
// succeeded.
func runPass(cmd *cobra.Command, pass lessons.Pass) error {
	cfg := loadConfig()

	log, err := logging.New(cfg.Lessons.Verbose)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer log.Sync()

	run, runErr := lessons.Run(pass, cfg.Lessons.Dir, cmd.OutOrStdout(), log)

	if cfg.Journal.Enabled() {
		if err := recordRun(cmd.Context(), cfg.Journal, run); err != nil {
			log.Warn("journal write failed", "journal", cfg.Journal.Path, "error", err)
		}
	}
	return runErr
}

func recordRun(ctx context.Context, cfg types.JournalConfig, run types.Run) error {
	if ctx == nil {
		ctx = context.Background()
	}
	store, err := journal.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.Record(ctx, run)
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
