// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Backup suffixes written next to a lesson file before it is rewritten.
const (
	// BackupSuffix is used by bold-divs and normalize-sql.
	BackupSuffix = ".bak"

	// FixBackupSuffix is used by fix-divs so its snapshot does not clobber
	// the bold-divs backup of the same file.
	FixBackupSuffix = ".fixbak"
)

// BackupPolicy controls when a pass writes the backup and the rewritten file.
type BackupPolicy string

const (
	// BackupAlways snapshots and rewrites every file, changed or not.
	BackupAlways BackupPolicy = "always"

	// BackupOnChange touches a file only when the pass changed its content.
	BackupOnChange BackupPolicy = "on-change"
)

// LessonsConfig holds settings shared by every rewrite pass.
type LessonsConfig struct {
	// Dir is the lessons directory. Empty means derive it from the
	// executable location (<exe>/../../course/lessons).
	Dir string `json:"lessons_dir" yaml:"lessons_dir" mapstructure:"lessons_dir"`

	// Verbose enables debug logging on stderr.
	Verbose bool `json:"verbose" yaml:"verbose" mapstructure:"verbose"`
}

// JournalConfig holds settings for the optional run journal.
type JournalConfig struct {
	// Path is the SQLite database file. Empty disables the journal.
	Path string `json:"journal" yaml:"journal" mapstructure:"journal"`

	// MaxResults is the default number of runs listed by history (default 20).
	MaxResults int `json:"history_limit" yaml:"history_limit" mapstructure:"history_limit"`
}

// Enabled reports whether a journal path is configured.
func (c JournalConfig) Enabled() bool {
	return c.Path != ""
}

// Config groups all lessonfix settings.
type Config struct {
	Lessons LessonsConfig `json:"lessons" yaml:"lessons"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
}
