package store

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSaveAndRecent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, e := range []Entry{
		{URL: "https://example.com/a", Domain: "example.com", Title: "First", Mode: "brief", Method: "local", Summary: "Summary of the first page.", WordCount: 400},
		{URL: "https://example.com/b", Domain: "example.com", Title: "Second", Mode: "bullets", Method: "gemini-api", Summary: "• Point one.\n• Point two.", WordCount: 900},
		{URL: "https://other.org/c", Domain: "other.org", Title: "Third", Mode: "detailed", Method: "local-fallback", Summary: "A longer summary of the third page.", WordCount: 1200},
	} {
		if _, err := s.Save(ctx, e); err != nil {
			t.Fatalf("Save(%s): %v", e.URL, err)
		}
	}

	entries, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	// Newest first.
	if entries[0].Title != "Third" || entries[2].Title != "First" {
		t.Errorf("unexpected order: %q, %q, %q", entries[0].Title, entries[1].Title, entries[2].Title)
	}
	got := entries[0]
	if got.URL != "https://other.org/c" || got.Domain != "other.org" || got.Mode != "detailed" ||
		got.Method != "local-fallback" || got.WordCount != 1200 {
		t.Errorf("round-trip mismatch: %+v", got)
	}
	if got.ID == 0 {
		t.Error("ID not assigned")
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt not recorded")
	}
}

func TestRecent_Limit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if _, err := s.Save(ctx, Entry{URL: "https://example.com", Mode: "brief", Method: "local", Summary: "s"}); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}
	entries, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("got %d entries, want 2", len(entries))
	}
}

func TestRecent_Empty(t *testing.T) {
	s := openTestStore(t)
	entries, err := s.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("got %d entries from empty store", len(entries))
	}
}

func TestOpen_CreatesSchemaIdempotently(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	first, err := Open(path)
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	if _, err := first.Save(context.Background(), Entry{URL: "u", Mode: "brief", Method: "local", Summary: "s"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second, err := Open(path)
	if err != nil {
		t.Fatalf("second Open: %v", err)
	}
	defer second.Close()
	entries, err := second.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("got %d entries after reopen, want 1", len(entries))
	}
}
