// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package journal

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pdiddy/lessonfix/pkg/types"
)

// Runs returns up to limit runs, newest first, each with its file results.
// A limit of zero uses the store default.
func (s *Store) Runs(ctx context.Context, limit int) ([]types.Run, error) {
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, command, dir, started_at, finished_at, status
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []types.Run
	for rows.Next() {
		var (
			r                 types.Run
			started, finished sql.NullString
			status            string
		)
		if err := rows.Scan(&r.ID, &r.Command, &r.Dir, &started, &finished, &status); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.StartedAt = parseTime(started.String)
		r.FinishedAt = parseTime(finished.String)
		r.Status = types.RunStatus(status)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}

	for i := range runs {
		files, err := s.files(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Files = files
	}
	return runs, nil
}

// Run returns a single run by ID. It returns an error wrapping sql.ErrNoRows
// when the ID is unknown.
func (s *Store) Run(ctx context.Context, id int64) (types.Run, error) {
	var (
		r                 types.Run
		started, finished sql.NullString
		status            string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, command, dir, started_at, finished_at, status FROM runs WHERE id = ?`, id,
	).Scan(&r.ID, &r.Command, &r.Dir, &started, &finished, &status)
	if err != nil {
		return types.Run{}, fmt.Errorf("loading run %d: %w", id, err)
	}
	r.StartedAt = parseTime(started.String)
	r.FinishedAt = parseTime(finished.String)
	r.Status = types.RunStatus(status)

	r.Files, err = s.files(ctx, id)
	if err != nil {
		return types.Run{}, err
	}
	return r, nil
}

func (s *Store) files(ctx context.Context, runID int64) ([]types.FileResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT path, backup_path, edits, status, error
		 FROM files WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying files for run %d: %w", runID, err)
	}
	defer rows.Close()

	var files []types.FileResult
	for rows.Next() {
		var (
			f              types.FileResult
			backup, errMsg sql.NullString
			status         string
		)
		if err := rows.Scan(&f.Path, &backup, &f.Edits, &status, &errMsg); err != nil {
			return nil, fmt.Errorf("scanning file: %w", err)
		}
		f.BackupPath = backup.String
		f.Error = errMsg.String
		f.Status = types.RewriteStatus(status)
		files = append(files, f)
	}
	return files, rows.Err()
}
