// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// RewriteStatus indicates what a pass did to a single lesson file.
type RewriteStatus string

const (
	// RewriteChanged means the file content differs after the pass.
	RewriteChanged RewriteStatus = "changed"

	// RewriteUnchanged means the file was processed but the content is the same.
	// Under BackupAlways the file and its backup are still written.
	RewriteUnchanged RewriteStatus = "unchanged"

	// RewriteFailed means reading, backing up, transforming or writing failed.
	RewriteFailed RewriteStatus = "failed"
)

// FileResult records the outcome of one pass over one lesson file.
type FileResult struct {
	// Path is the lesson file path.
	Path string `json:"path" yaml:"path"`

	// BackupPath is the snapshot written before the rewrite, empty if none.
	BackupPath string `json:"backup_path,omitempty" yaml:"backup_path,omitempty"`

	// Edits counts the replacements the pass made (wrapped spans,
	// unfenced divs, or converted SQL blocks).
	Edits int `json:"edits" yaml:"edits"`

	// Status is the outcome for this file.
	Status RewriteStatus `json:"status" yaml:"status"`

	// Error holds the failure message when Status is RewriteFailed.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// RunStatus is the overall outcome of a pass over a lessons directory.
type RunStatus string

const (
	RunOK     RunStatus = "ok"
	RunFailed RunStatus = "failed"
)

// Run describes one invocation of a pass.
type Run struct {
	// ID is assigned by the journal.
	ID int64 `json:"id" yaml:"id"`

	// Command is the pass name (bold-divs, fix-divs, normalize-sql).
	Command string `json:"command" yaml:"command"`

	// Dir is the lessons directory the pass ran over.
	Dir string `json:"dir" yaml:"dir"`

	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`

	Status RunStatus `json:"status" yaml:"status"`

	// Files lists per-file results in processing order.
	Files []FileResult `json:"files,omitempty" yaml:"files,omitempty"`
}

// Changed returns the number of files whose content changed.
func (r Run) Changed() int {
	n := 0
	for _, f := range r.Files {
		if f.Status == RewriteChanged {
			n++
		}
	}
	return n
}
