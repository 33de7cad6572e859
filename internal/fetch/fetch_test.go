package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/outlinehq/pagesum/internal/cache"
)

func TestGet_Success(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body>hello</body></html>"))
	}))
	defer srv.Close()

	c := &Client{UserAgent: "pagesum-test/1.0", MaxAttempts: 1}
	body, ct, err := c.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !strings.Contains(string(body), "hello") {
		t.Errorf("body = %q", body)
	}
	if !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q", ct)
	}
	if gotUA != "pagesum-test/1.0" {
		t.Errorf("User-Agent = %q", gotUA)
	}
}

func TestGet_RetriesServerError(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	c := &Client{MaxAttempts: 3}
	body, _, err := c.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
	if !strings.Contains(string(body), "ok") {
		t.Errorf("body = %q", body)
	}
}

func TestGet_ExhaustsAttempts(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := &Client{MaxAttempts: 2}
	if _, _, err := c.Get(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error")
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestGet_ClientErrorNotRetried(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := &Client{MaxAttempts: 3}
	if _, _, err := c.Get(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("calls = %d, 4xx must not be retried", calls)
	}
}

func TestGet_RejectsNonHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"not":"html"}`))
	}))
	defer srv.Close()

	c := &Client{MaxAttempts: 1}
	_, _, err := c.Get(context.Background(), srv.URL)
	if !errors.Is(err, ErrNotHTML) {
		t.Fatalf("err = %v, want ErrNotHTML", err)
	}
}

func TestGet_RejectsNonHTTPScheme(t *testing.T) {
	c := &Client{MaxAttempts: 1}
	if _, _, err := c.Get(context.Background(), "ftp://example.com/file"); err == nil {
		t.Fatal("expected scheme error")
	}
}

func TestGet_ConditionalGetServesCachedBody(t *testing.T) {
	const page = "<html><body>cached page body</body></html>"
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.Header.Get("If-None-Match") == `"v1"` {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		w.Header().Set("ETag", `"v1"`)
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	c := &Client{MaxAttempts: 1, Cache: &cache.HTTPCache{Dir: t.TempDir()}}

	first, _, err := c.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("first Get: %v", err)
	}
	second, _, err := c.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("second Get: %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
	if string(first) != page || string(second) != page {
		t.Errorf("cached body mismatch: %q vs %q", first, second)
	}
}

func TestGet_BypassCacheSkipsConditionalHeaders(t *testing.T) {
	var sawConditional bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("If-None-Match") != "" || r.Header.Get("If-Modified-Since") != "" {
			sawConditional = true
		}
		w.Header().Set("Content-Type", "text/html")
		w.Header().Set("ETag", `"v1"`)
		_, _ = w.Write([]byte("<html>fresh</html>"))
	}))
	defer srv.Close()

	c := &Client{MaxAttempts: 1, Cache: &cache.HTTPCache{Dir: t.TempDir()}, BypassCache: true}
	if _, _, err := c.Get(context.Background(), srv.URL); err != nil {
		t.Fatalf("first Get: %v", err)
	}
	if _, _, err := c.Get(context.Background(), srv.URL); err != nil {
		t.Fatalf("second Get: %v", err)
	}
	if sawConditional {
		t.Error("bypass mode sent conditional headers")
	}
}

func TestGet_RedirectCap(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, srv.URL+r.URL.Path+"x", http.StatusFound)
	}))
	defer srv.Close()

	c := &Client{MaxAttempts: 1, RedirectMaxHops: 3}
	_, _, err := c.Get(context.Background(), srv.URL)
	if err == nil || !strings.Contains(err.Error(), "too many redirects") {
		t.Fatalf("err = %v, want redirect cap", err)
	}
}
