// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lessons

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/lessonfix/pkg/types"
)

const (
	centered  = `<div style="font-size:24px;text-align:center;">Hello</div>`
	wrapped   = `**<div style="font-size:24px;text-align:center;">Hello</div>**`
	plainText = "# Lesson\n\n<div style=\"text-align:left\">Intro</div>\n"
)

// setupLessons writes the given files into a fresh lessons directory.
func setupLessons(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "course", "lessons")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for name, content := range files {
		writeFile(t, dir, name, content)
	}
	return dir
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestDirFor(t *testing.T) {
	exe := filepath.Join("/repo", "bin", "lessonfix")
	assert.Equal(t, filepath.Join("/repo", "course", "lessons"), DirFor(exe))
}

func TestResolve(t *testing.T) {
	dir := setupLessons(t, nil)

	got, err := Resolve(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	_, err = Resolve(filepath.Join(dir, "missing"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingDir))

	file := filepath.Join(dir, "a.md")
	writeFile(t, dir, "a.md", "x")
	_, err = Resolve(file)
	assert.True(t, errors.Is(err, ErrMissingDir))
}

func TestList(t *testing.T) {
	dir := setupLessons(t, map[string]string{
		"02-joins.md":  "b",
		"01-select.md": "a",
		"notes.txt":    "skip",
		"old.md.bak":   "skip",
		".hidden.md":   "skip",
	})
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested.md"), 0o755))
	writeFile(t, filepath.Join(dir, "nested.md"), "deep.md", "skip")

	files, err := List(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "01-select.md"),
		filepath.Join(dir, "02-joins.md"),
	}, files)
}

func TestRewriteBoldDivs(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		want       string
		wantStatus types.RewriteStatus
		wantEdits  int
	}{
		{
			name:       "wraps centered div",
			content:    "Intro\n" + centered + "\n",
			want:       "Intro\n" + wrapped + "\n",
			wantStatus: types.RewriteChanged,
			wantEdits:  1,
		},
		{
			name:       "no qualifying div still backed up and written",
			content:    plainText,
			want:       plainText,
			wantStatus: types.RewriteUnchanged,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := setupLessons(t, map[string]string{"lesson.md": tt.content})
			path := filepath.Join(dir, "lesson.md")

			res, err := Rewrite(BoldDivs, path)
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, res.Status)
			assert.Equal(t, tt.wantEdits, res.Edits)
			assert.Equal(t, path+".bak", res.BackupPath)
			assert.Equal(t, tt.want, readFile(t, path))
			assert.Equal(t, tt.content, readFile(t, path+".bak"))
		})
	}
}

func TestRewriteOverwritesBackup(t *testing.T) {
	dir := setupLessons(t, map[string]string{
		"lesson.md":     centered,
		"lesson.md.bak": "stale backup",
	})
	path := filepath.Join(dir, "lesson.md")

	_, err := Rewrite(BoldDivs, path)
	require.NoError(t, err)
	assert.Equal(t, centered, readFile(t, path+".bak"))

	// The second run snapshots the once-wrapped content and wraps again.
	_, err = Rewrite(BoldDivs, path)
	require.NoError(t, err)
	assert.Equal(t, wrapped, readFile(t, path+".bak"))
	assert.Equal(t, "**"+wrapped+"**", readFile(t, path))
}

func TestRewriteOnChangeSkipsUnchanged(t *testing.T) {
	dir := setupLessons(t, map[string]string{"lesson.md": plainText})
	path := filepath.Join(dir, "lesson.md")

	res, err := Rewrite(FixDivs, path)
	require.NoError(t, err)
	assert.Equal(t, types.RewriteUnchanged, res.Status)
	assert.Empty(t, res.BackupPath)

	_, err = os.Stat(path + ".fixbak")
	assert.True(t, os.IsNotExist(err), "unchanged file should not get a backup")
}

func TestRewriteOnChangeWritesBackup(t *testing.T) {
	content := "> SELECT 1;\n"
	dir := setupLessons(t, map[string]string{"lesson.md": content})
	path := filepath.Join(dir, "lesson.md")

	res, err := Rewrite(FixDivs, path)
	require.NoError(t, err)
	assert.Equal(t, types.RewriteChanged, res.Status)
	assert.Equal(t, path+".fixbak", res.BackupPath)
	assert.Equal(t, content, readFile(t, path+".fixbak"))
	assert.Equal(t, "```sql\nSELECT 1;\n```\n", readFile(t, path))
}

func TestRewriteBackupFailure(t *testing.T) {
	dir := setupLessons(t, map[string]string{"lesson.md": centered})
	path := filepath.Join(dir, "lesson.md")
	// A directory where the backup should go makes the backup write fail.
	require.NoError(t, os.Mkdir(path+".bak", 0o755))

	res, err := Rewrite(BoldDivs, path)
	require.Error(t, err)
	assert.Equal(t, types.RewriteFailed, res.Status)
	assert.Contains(t, res.Error, "writing backup")
	assert.Equal(t, centered, readFile(t, path), "original must be untouched")
}

func TestRunBoldDivs(t *testing.T) {
	dir := setupLessons(t, map[string]string{
		"01.md": centered + "\n",
		"02.md": plainText,
		"03.md": "<div style=\"TEXT-ALIGN: Center; font-size: 24PX\">A</div>\n<div style=\"text-align:center;font-size:24px\">B</div>\n",
	})

	var out bytes.Buffer
	run, err := Run(BoldDivs, dir, &out, nil)
	require.NoError(t, err)

	assert.Equal(t, types.RunOK, run.Status)
	assert.Equal(t, PassBoldDivs, run.Command)
	require.Len(t, run.Files, 3)
	assert.Equal(t, 2, run.Changed())
	assert.Equal(t, 2, run.Files[2].Edits)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, []string{
		"Processing: " + filepath.Join(dir, "01.md"),
		"Processing: " + filepath.Join(dir, "02.md"),
		"Processing: " + filepath.Join(dir, "03.md"),
		"Done.",
	}, lines)

	for _, name := range []string{"01.md", "02.md", "03.md"} {
		_, err := os.Stat(filepath.Join(dir, name+".bak"))
		assert.NoError(t, err, "backup for %s", name)
	}
	assert.Equal(t, wrapped+"\n", readFile(t, filepath.Join(dir, "01.md")))
	assert.Equal(t, plainText, readFile(t, filepath.Join(dir, "02.md")))
}

func TestRunMissingDir(t *testing.T) {
	var out bytes.Buffer
	run, err := Run(BoldDivs, filepath.Join(t.TempDir(), "nope"), &out, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingDir))
	assert.Equal(t, types.RunFailed, run.Status)
	assert.Empty(t, run.Files)
	assert.Empty(t, out.String())
}

func TestRunStopsAtFirstFailure(t *testing.T) {
	dir := setupLessons(t, map[string]string{
		"a.md": "first",
		"b.md": "second",
		"c.md": "third",
	})

	pass := Pass{
		Name: "failing",
		Transform: func(content string) (string, int, error) {
			if content == "second" {
				return "", 0, errors.New("boom")
			}
			return strings.ToUpper(content), 1, nil
		},
		Policy:       types.BackupAlways,
		BackupSuffix: types.BackupSuffix,
	}

	var out bytes.Buffer
	run, err := Run(pass, dir, &out, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, types.RunFailed, run.Status)
	require.Len(t, run.Files, 2)
	assert.Equal(t, types.RewriteChanged, run.Files[0].Status)
	assert.Equal(t, types.RewriteFailed, run.Files[1].Status)

	assert.Equal(t, "FIRST", readFile(t, filepath.Join(dir, "a.md")))
	assert.Equal(t, "second", readFile(t, filepath.Join(dir, "b.md")))
	assert.Equal(t, "third", readFile(t, filepath.Join(dir, "c.md")))
	_, err = os.Stat(filepath.Join(dir, "c.md.bak"))
	assert.True(t, os.IsNotExist(err), "files after the failure are not touched")
	assert.NotContains(t, out.String(), "Done.")
}

func TestRunOnChangeOutput(t *testing.T) {
	dir := setupLessons(t, map[string]string{
		"a.md": "**SELECT 1;**\n",
		"b.md": "plain\n",
	})

	var out bytes.Buffer
	run, err := Run(NormalizeSQL, dir, &out, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, run.Changed())
	assert.Contains(t, out.String(), "  -> normalized a.md\n")
	assert.NotContains(t, out.String(), "normalized b.md")

	out.Reset()
	_, err = Run(FixDivs, dir, &out, nil)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out.String(), "No changes made.\n"))
}
