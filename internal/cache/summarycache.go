package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"
)

// SummaryCache stores finished summaries keyed by model, mode and a digest of
// the source content, so repeat runs over the same page skip the remote call.
// It reuses the LLMCache on-disk layout.
type SummaryCache struct {
	Inner *LLMCache
}

// cachedSummary is the JSON envelope persisted per entry.
type cachedSummary struct {
	Summary   string    `json:"summary"`
	Model     string    `json:"model"`
	Mode      string    `json:"mode"`
	CreatedAt time.Time `json:"created_at"`
}

// SummaryKey derives the cache key for one (model, mode, content) triple.
func SummaryKey(model, mode, content string) string {
	h := sha256.Sum256([]byte(content))
	return KeyFrom(model, mode+"\n\n"+hex.EncodeToString(h[:]))
}

// Get returns a cached summary if present.
func (c *SummaryCache) Get(ctx context.Context, model, mode, content string) (string, bool) {
	if c == nil || c.Inner == nil {
		return "", false
	}
	raw, ok, err := c.Inner.Get(ctx, SummaryKey(model, mode, content))
	if err != nil || !ok {
		return "", false
	}
	var entry cachedSummary
	if err := json.Unmarshal(raw, &entry); err != nil {
		return "", false
	}
	if strings.TrimSpace(entry.Summary) == "" {
		return "", false
	}
	return entry.Summary, true
}

// Save persists a summary. Errors are returned but callers may ignore them;
// a failed cache write never fails the run.
func (c *SummaryCache) Save(ctx context.Context, model, mode, content, summary string) error {
	if c == nil || c.Inner == nil {
		return nil
	}
	raw, err := json.Marshal(cachedSummary{
		Summary:   summary,
		Model:     model,
		Mode:      mode,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	return c.Inner.Save(ctx, SummaryKey(model, mode, content), raw)
}
