package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run is one recorded generation.
type Run struct {
	ID         uuid.UUID
	Base       string
	Source     string // input file, scaffold name or "stdin"
	StartedAt  time.Time
	FinishedAt time.Time
	Files      int
	Dirs       int
	Skipped    int
	Cancelled  bool
	Err        string
}

// RecordRun stores r, assigning an ID when it has none. The stored run is
// returned.
func (s *Store) RecordRun(ctx context.Context, r Run) (Run, error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.FinishedAt.IsZero() {
		r.FinishedAt = time.Now()
	}
	if r.StartedAt.IsZero() {
		r.StartedAt = r.FinishedAt
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, base, source, started_at, finished_at, files, dirs, skipped, cancelled, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.ID.String(), r.Base, r.Source, r.StartedAt.UnixMilli(), r.FinishedAt.UnixMilli(),
		r.Files, r.Dirs, r.Skipped, r.Cancelled, r.Err)
	if err != nil {
		return r, fmt.Errorf("insert run: %w", err)
	}
	return r, nil
}

// Runs returns up to limit runs, newest first. limit <= 0 returns all.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, base, source, started_at, finished_at, files, dirs, skipped, cancelled, error
		FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Run
	for rows.Next() {
		var (
			r                 Run
			id                string
			started, finished int64
		)
		if err := rows.Scan(&id, &r.Base, &r.Source, &started, &finished,
			&r.Files, &r.Dirs, &r.Skipped, &r.Cancelled, &r.Err); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("parse run id %q: %w", id, err)
		}
		r.StartedAt = time.UnixMilli(started)
		r.FinishedAt = time.UnixMilli(finished)
		out = append(out, r)
	}
	return out, rows.Err()
}
