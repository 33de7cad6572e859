// Package store persists summary history in a local SQLite database so past
// runs can be listed without re-fetching or re-summarizing.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;

CREATE TABLE IF NOT EXISTS summaries (
    summary_id INTEGER PRIMARY KEY AUTOINCREMENT,
    url TEXT NOT NULL,
    domain TEXT,
    title TEXT,
    mode TEXT NOT NULL,
    method TEXT NOT NULL,
    summary TEXT NOT NULL,
    word_count INTEGER DEFAULT 0,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_summaries_url ON summaries(url);
CREATE INDEX IF NOT EXISTS idx_summaries_created ON summaries(created_at);
`

// Entry is one persisted summarization run.
type Entry struct {
	ID        int64
	URL       string
	Domain    string
	Title     string
	Mode      string
	Method    string
	Summary   string
	WordCount int
	CreatedAt time.Time
}

// Store wraps the summaries database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and ensures the schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Save records one finished run.
func (s *Store) Save(ctx context.Context, e Entry) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
        INSERT INTO summaries (url, domain, title, mode, method, summary, word_count)
        VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.URL, e.Domain, e.Title, e.Mode, e.Method, e.Summary, e.WordCount)
	if err != nil {
		return 0, fmt.Errorf("save summary: %w", err)
	}
	return res.LastInsertId()
}

// Recent returns the n most recent entries, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT summary_id, url, domain, title, mode, method, summary, word_count, created_at
        FROM summaries ORDER BY created_at DESC, summary_id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.URL, &e.Domain, &e.Title, &e.Mode, &e.Method, &e.Summary, &e.WordCount, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}
