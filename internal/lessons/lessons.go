// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lessons enumerates Markdown lesson files and rewrites them in place
// through a text pass, snapshotting each file to a sibling backup first.
//
// Processing is strictly sequential and fails fast: the first read, backup,
// transform or write error stops the run and the remaining files are left
// untouched. Writes are not atomic.
package lessons

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/lessonfix/internal/logging"
	"github.com/pdiddy/lessonfix/pkg/types"
)

// ErrMissingDir is returned when the lessons directory does not exist.
var ErrMissingDir = errors.New("lessons directory not found")

// lessonsSubdir is the lessons location relative to the repository root.
var lessonsSubdir = filepath.Join("course", "lessons")

const lessonGlob = "*.md"

// Transform rewrites the content of one lesson file and reports how many
// edits it made.
type Transform func(content string) (string, int, error)

// Pass describes one rewrite over a lessons directory.
type Pass struct {
	// Name identifies the pass in progress output and the journal.
	Name string

	// Transform is applied to each file's full content.
	Transform Transform

	// Policy decides whether unchanged files are still backed up and written.
	Policy types.BackupPolicy

	// BackupSuffix is appended to the lesson path to form the backup path.
	BackupSuffix string

	// Verb, when set, is printed for every changed file ("  -> fixed a.md").
	Verb string
}

// DefaultDir returns the lessons directory for an executable installed at
// <root>/<dir>/<exe>: <root>/course/lessons.
func DefaultDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locating executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return DirFor(exe), nil
}

// DirFor returns the lessons directory relative to the given executable path.
func DirFor(exe string) string {
	root := filepath.Dir(filepath.Dir(exe))
	return filepath.Join(root, lessonsSubdir)
}

// Resolve returns dir, or DefaultDir when dir is empty, after checking that
// it exists and is a directory. A missing directory yields ErrMissingDir.
func Resolve(dir string) (string, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return "", err
		}
		dir = d
	}
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrMissingDir, dir)
		}
		return "", fmt.Errorf("checking lessons directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", ErrMissingDir, dir)
	}
	return dir, nil
}

// List returns the *.md files directly inside dir, sorted by name.
// Subdirectories and dotfiles are skipped.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading lessons directory %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if ok, _ := filepath.Match(lessonGlob, name); !ok {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	return files, nil
}

// Rewrite applies the pass to a single file.
//
// Under BackupAlways the sequence is read, backup, transform, write, and the
// file is written even when the content is unchanged. Under BackupOnChange
// the backup and write happen only when the transform changed the content.
func Rewrite(pass Pass, path string) (types.FileResult, error) {
	res := types.FileResult{Path: path, Status: types.RewriteFailed}

	info, err := os.Stat(path)
	if err != nil {
		return fail(res, fmt.Errorf("stat %s: %w", path, err))
	}
	perm := info.Mode().Perm()

	data, err := os.ReadFile(path)
	if err != nil {
		return fail(res, fmt.Errorf("reading %s: %w", path, err))
	}
	orig := string(data)
	backup := path + pass.BackupSuffix

	if pass.Policy == types.BackupAlways {
		if err := os.WriteFile(backup, data, perm); err != nil {
			return fail(res, fmt.Errorf("writing backup %s: %w", backup, err))
		}
		res.BackupPath = backup
	}

	out, edits, err := pass.Transform(orig)
	if err != nil {
		return fail(res, fmt.Errorf("transforming %s: %w", path, err))
	}
	res.Edits = edits
	changed := out != orig

	if pass.Policy != types.BackupAlways {
		if !changed {
			res.Status = types.RewriteUnchanged
			return res, nil
		}
		if err := os.WriteFile(backup, data, perm); err != nil {
			return fail(res, fmt.Errorf("writing backup %s: %w", backup, err))
		}
		res.BackupPath = backup
	}

	if err := os.WriteFile(path, []byte(out), perm); err != nil {
		return fail(res, fmt.Errorf("writing %s: %w", path, err))
	}

	res.Status = types.RewriteUnchanged
	if changed {
		res.Status = types.RewriteChanged
	}
	return res, nil
}

func fail(res types.FileResult, err error) (types.FileResult, error) {
	res.Status = types.RewriteFailed
	res.Error = err.Error()
	return res, err
}

// Run applies the pass to every lesson file in dir, printing one progress
// line per file to w. It stops at the first error and returns the partial
// run with Status RunFailed alongside the error.
func Run(pass Pass, dir string, w io.Writer, log *logging.Logger) (types.Run, error) {
	if log == nil {
		log = logging.Nop()
	}
	log = log.With("pass", pass.Name)

	run := types.Run{
		Command:   pass.Name,
		Dir:       dir,
		StartedAt: time.Now().UTC(),
		Status:    types.RunFailed,
	}
	finish := func(err error) (types.Run, error) {
		run.FinishedAt = time.Now().UTC()
		if err == nil {
			run.Status = types.RunOK
		}
		return run, err
	}

	dir, err := Resolve(dir)
	if err != nil {
		return finish(err)
	}
	run.Dir = dir

	files, err := List(dir)
	if err != nil {
		return finish(err)
	}
	log.Debug("listed lessons", "dir", dir, "files", len(files))

	for _, path := range files {
		fmt.Fprintf(w, "Processing: %s\n", path)
		res, err := Rewrite(pass, path)
		run.Files = append(run.Files, res)
		if err != nil {
			log.Error("rewrite failed", "path", path, "error", err)
			return finish(err)
		}
		log.Debug("rewrote lesson", "path", path, "status", res.Status, "edits", res.Edits)
		if pass.Verb != "" && res.Status == types.RewriteChanged {
			fmt.Fprintf(w, "  -> %s %s\n", pass.Verb, filepath.Base(path))
		}
	}

	if pass.Policy == types.BackupOnChange && run.Changed() == 0 {
		fmt.Fprintln(w, "No changes made.")
	} else {
		fmt.Fprintln(w, "Done.")
	}
	return finish(nil)
}
