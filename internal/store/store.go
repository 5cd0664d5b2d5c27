// Package store persists user templates and the history of generation runs
// in a SQLite database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/agentic-research/treegen/internal/templates"
)

// ErrNotFound is returned when a template key or run does not exist.
var ErrNotFound = errors.New("not found")

const cacheSize = 512

const schema = `
CREATE TABLE IF NOT EXISTS templates (
	key        TEXT PRIMARY KEY,
	body       TEXT NOT NULL,
	updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	base        TEXT NOT NULL,
	source      TEXT NOT NULL DEFAULT '',
	started_at  INTEGER NOT NULL,
	finished_at INTEGER NOT NULL,
	files       INTEGER NOT NULL DEFAULT 0,
	dirs        INTEGER NOT NULL DEFAULT 0,
	skipped     INTEGER NOT NULL DEFAULT 0,
	cancelled   INTEGER NOT NULL DEFAULT 0,
	error       TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
`

// cached is an LRU entry. Misses are cached too so repeated lookups for
// extensions nobody registered stay off the database. The whole cache is
// dropped when another connection commits (see refresh).
type cached struct {
	body string
	ok   bool
}

// Store is a SQLite-backed template catalog and run log. It implements
// templates.Source.
type Store struct {
	db    *sql.DB
	cache *lru.Cache[string, cached]
	log   *zap.Logger

	mu      sync.Mutex
	version int64 // PRAGMA data_version at the last refresh
}

var _ templates.Source = (*Store)(nil)

// Open opens or creates the database at path. Use ":memory:" for a
// throwaway store.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// A single connection keeps ":memory:" databases coherent and serializes
	// writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("configure sqlite: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	cache, err := lru.New[string, cached](cacheSize)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	s := &Store{db: db, cache: cache, log: logger}
	if err := s.refresh(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// refresh purges the cache when another connection, usually another
// treegen process, has committed since the last call. data_version is
// per connection; the pool holds exactly one.
func (s *Store) refresh(ctx context.Context) error {
	var v int64
	if err := s.db.QueryRowContext(ctx, `PRAGMA data_version`).Scan(&v); err != nil {
		return fmt.Errorf("read data version: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if v != s.version {
		s.cache.Purge()
		s.version = v
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Template returns the body stored under key.
func (s *Store) Template(ctx context.Context, key string) (string, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM templates WHERE key = ?`, key).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("template %q: %w", key, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("query template %q: %w", key, err)
	}
	return body, nil
}

// Lookup implements templates.Source. Database failures are logged and
// treated as a miss.
func (s *Store) Lookup(key string) (string, bool) {
	if err := s.refresh(context.Background()); err != nil {
		s.log.Warn("template cache refresh failed", zap.Error(err))
		s.cache.Purge()
	}
	if c, ok := s.cache.Get(key); ok {
		return c.body, c.ok
	}
	body, err := s.Template(context.Background(), key)
	switch {
	case errors.Is(err, ErrNotFound):
		s.cache.Add(key, cached{})
		return "", false
	case err != nil:
		s.log.Warn("template lookup failed", zap.String("key", key), zap.Error(err))
		return "", false
	}
	s.cache.Add(key, cached{body: body, ok: true})
	return body, true
}

// PutTemplates stores every entry in one transaction. Keys are validated
// first; nothing is written if any key is invalid.
func (s *Store) PutTemplates(ctx context.Context, entries map[string]string) error {
	for k := range entries {
		if err := templates.ValidateKey(k); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO templates (key, body, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now().UnixMilli()
	for k, v := range entries {
		if _, err := stmt.ExecContext(ctx, k, v, now); err != nil {
			return fmt.Errorf("insert template %q: %w", k, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit templates: %w", err)
	}
	s.cache.Purge()
	return nil
}

// DeleteTemplate removes key.
func (s *Store) DeleteTemplate(ctx context.Context, key string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM templates WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("delete template %q: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete template %q: %w", key, err)
	}
	s.cache.Remove(key)
	if n == 0 {
		return fmt.Errorf("template %q: %w", key, ErrNotFound)
	}
	return nil
}

// Templates returns every stored template.
func (s *Store) Templates(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, body FROM templates ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("query templates: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		out[k] = v
	}
	return out, rows.Err()
}
