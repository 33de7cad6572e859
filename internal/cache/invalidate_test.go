package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestClearDir(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "cache")
	c := &HTTPCache{Dir: dir}
	if err := c.Save(context.Background(), "https://example.com/a", "text/html", "", "", []byte("body")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := ClearDir(dir); err != nil {
		t.Fatalf("clear: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("dir should be recreated: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("dir not empty after clear: %d entries", len(entries))
	}
	if err := ClearDir("  "); err == nil {
		t.Fatal("expected error for blank dir")
	}
}

func TestPurgeHTTPCacheByAge(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	c := &HTTPCache{Dir: dir}
	ctx := context.Background()
	if err := c.Save(ctx, "https://example.com/old", "text/html", "", "", []byte("old")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := c.Save(ctx, "https://example.com/new", "text/html", "", "", []byte("new")); err != nil {
		t.Fatalf("save: %v", err)
	}
	// Backdate the first entry's SavedAt by rewriting its meta.
	oldMeta := &HTTPEntry{
		URL:         "https://example.com/old",
		ContentType: "text/html",
		SavedAt:     time.Now().UTC().Add(-72 * time.Hour),
	}
	writeMeta(t, c.metaPath(c.key(oldMeta.URL)), oldMeta)

	removed, err := PurgeHTTPCacheByAge(dir, 24*time.Hour)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if _, err := c.LoadBody(ctx, "https://example.com/old"); err == nil {
		t.Fatal("expired entry should be gone")
	}
	if _, err := c.LoadBody(ctx, "https://example.com/new"); err != nil {
		t.Fatalf("fresh entry should survive: %v", err)
	}
}

func TestPurgeHTTPCacheByAge_ZeroMaxAgeIsNoop(t *testing.T) {
	t.Parallel()
	removed, err := PurgeHTTPCacheByAge(t.TempDir(), 0)
	if err != nil || removed != 0 {
		t.Fatalf("want noop, got removed=%d err=%v", removed, err)
	}
}

func TestPurgeLLMCacheByAge(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	c := &LLMCache{Dir: dir}
	ctx := context.Background()
	oldKey := KeyFrom("m", "old")
	newKey := KeyFrom("m", "new")
	if err := c.Save(ctx, oldKey, []byte(`{}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := c.Save(ctx, newKey, []byte(`{}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	stale := time.Now().Add(-72 * time.Hour)
	if err := os.Chtimes(filepath.Join(dir, oldKey+".json"), stale, stale); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	removed, err := PurgeLLMCacheByAge(dir, 24*time.Hour)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if _, ok, _ := c.Get(ctx, oldKey); ok {
		t.Fatal("stale entry should be gone")
	}
	if _, ok, _ := c.Get(ctx, newKey); !ok {
		t.Fatal("fresh entry should survive")
	}
}

func TestPurgeLLMCacheByAge_SkipsHTTPFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	h := &HTTPCache{Dir: dir}
	if err := h.Save(context.Background(), "https://example.com/x", "text/html", "", "", []byte("body")); err != nil {
		t.Fatalf("save: %v", err)
	}
	key := h.key("https://example.com/x")
	stale := time.Now().Add(-72 * time.Hour)
	for _, p := range []string{h.metaPath(key), h.bodyPath(key)} {
		if err := os.Chtimes(p, stale, stale); err != nil {
			t.Fatalf("chtimes: %v", err)
		}
	}
	removed, err := PurgeLLMCacheByAge(dir, 24*time.Hour)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if removed != 0 {
		t.Fatalf("HTTP cache files must not be purged as summaries, removed=%d", removed)
	}
}

func writeMeta(t *testing.T, path string, e *HTTPEntry) {
	t.Helper()
	b, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal meta: %v", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		t.Fatalf("write meta: %v", err)
	}
}
