package cache

import (
	"context"
	"testing"
	"time"
)

func TestHTTPCache_SaveAndLoad(t *testing.T) {
	t.Parallel()
	c := &HTTPCache{Dir: t.TempDir()}
	ctx := context.Background()
	url := "https://example.com/articles/reservoir"
	body := []byte("<html><body><p>The reservoir fell to a record low.</p></body></html>")

	if err := c.Save(ctx, url, "text/html; charset=utf-8", `"abc123"`, "Mon, 02 Jan 2006 15:04:05 GMT", body); err != nil {
		t.Fatalf("save: %v", err)
	}
	meta, err := c.LoadMeta(ctx, url)
	if err != nil {
		t.Fatalf("load meta: %v", err)
	}
	if meta.URL != url || meta.ContentType != "text/html; charset=utf-8" {
		t.Fatalf("meta mismatch: %+v", meta)
	}
	if meta.ETag != `"abc123"` || meta.LastModified != "Mon, 02 Jan 2006 15:04:05 GMT" {
		t.Fatalf("validator fields not preserved: %+v", meta)
	}
	if meta.SavedAt.IsZero() || time.Since(meta.SavedAt) > time.Minute {
		t.Fatalf("SavedAt not set sanely: %v", meta.SavedAt)
	}
	got, err := c.LoadBody(ctx, url)
	if err != nil {
		t.Fatalf("load body: %v", err)
	}
	if string(got) != string(body) {
		t.Fatalf("body mismatch: %q", got)
	}
}

func TestHTTPCache_MissIsError(t *testing.T) {
	t.Parallel()
	c := &HTTPCache{Dir: t.TempDir()}
	ctx := context.Background()
	if _, err := c.LoadMeta(ctx, "https://example.com/missing"); err == nil {
		t.Fatal("expected error for missing meta")
	}
	if _, err := c.LoadBody(ctx, "https://example.com/missing"); err == nil {
		t.Fatal("expected error for missing body")
	}
}

func TestHTTPCache_KeysIsolateURLs(t *testing.T) {
	t.Parallel()
	c := &HTTPCache{Dir: t.TempDir()}
	ctx := context.Background()
	if err := c.Save(ctx, "https://a.example/1", "text/html", "", "", []byte("one")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := c.Save(ctx, "https://a.example/2", "text/html", "", "", []byte("two")); err != nil {
		t.Fatalf("save: %v", err)
	}
	b1, err := c.LoadBody(ctx, "https://a.example/1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(b1) != "one" {
		t.Fatalf("entries collided: %q", b1)
	}
}
