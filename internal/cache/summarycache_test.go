package cache

import (
	"context"
	"testing"
)

func TestSummaryCache_RoundTrip(t *testing.T) {
	c := &SummaryCache{Inner: &LLMCache{Dir: t.TempDir()}}
	ctx := context.Background()

	if _, ok := c.Get(ctx, "model-a", "brief", "page content"); ok {
		t.Fatal("unexpected hit on empty cache")
	}
	if err := c.Save(ctx, "model-a", "brief", "page content", "The summary."); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, ok := c.Get(ctx, "model-a", "brief", "page content")
	if !ok || got != "The summary." {
		t.Fatalf("Get = %q, %v", got, ok)
	}
}

func TestSummaryCache_KeyIsolation(t *testing.T) {
	c := &SummaryCache{Inner: &LLMCache{Dir: t.TempDir()}}
	ctx := context.Background()

	if err := c.Save(ctx, "model-a", "brief", "page content", "Brief one."); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, ok := c.Get(ctx, "model-a", "detailed", "page content"); ok {
		t.Error("mode change should miss")
	}
	if _, ok := c.Get(ctx, "model-b", "brief", "page content"); ok {
		t.Error("model change should miss")
	}
	if _, ok := c.Get(ctx, "model-a", "brief", "different content"); ok {
		t.Error("content change should miss")
	}
}

func TestSummaryCache_NilSafe(t *testing.T) {
	var c *SummaryCache
	if _, ok := c.Get(context.Background(), "m", "brief", "content"); ok {
		t.Error("nil cache reported a hit")
	}
	if err := c.Save(context.Background(), "m", "brief", "content", "s"); err != nil {
		t.Errorf("nil cache Save returned %v", err)
	}
	empty := &SummaryCache{}
	if _, ok := empty.Get(context.Background(), "m", "brief", "content"); ok {
		t.Error("cache without inner store reported a hit")
	}
}
