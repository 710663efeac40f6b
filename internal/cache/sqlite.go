package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps every entry as one row of a single database file.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	return &SQLiteStore{db: db, now: time.Now}, nil
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS pages (
  bucket TEXT NOT NULL,
  name TEXT NOT NULL,
  content TEXT NOT NULL,
  stored_at TEXT NOT NULL,
  PRIMARY KEY (bucket, name)
);
`
	_, err := s.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Read(ctx context.Context, bucket, name string) (string, error) {
	if err := validateKey(bucket, name); err != nil {
		return "", err
	}
	var content string
	err := s.db.QueryRowContext(ctx, `SELECT content FROM pages WHERE bucket = ? AND name = ?`, bucket, name).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrMiss
	}
	if err != nil {
		return "", fmt.Errorf("query page %s/%s: %w", bucket, name, err)
	}
	return content, nil
}

func (s *SQLiteStore) Write(ctx context.Context, bucket, name, content string) error {
	if err := validateKey(bucket, name); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO pages (bucket, name, content, stored_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(bucket, name) DO UPDATE SET
  content=excluded.content,
  stored_at=excluded.stored_at
`, bucket, name, content, s.now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save page %s/%s: %w", bucket, name, err)
	}
	return nil
}

// Count returns the number of stored entries.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pages`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count pages: %w", err)
	}
	return n, nil
}
