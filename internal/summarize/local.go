package summarize

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/outlinehq/pagesum/internal/analyze"
	"github.com/outlinehq/pagesum/internal/assemble"
	"github.com/outlinehq/pagesum/internal/segment"
	"github.com/outlinehq/pagesum/internal/validate"
)

// Local is the deterministic extractive summarizer. It never performs I/O
// and always terminates with a summary or a sentinel error, which makes it
// the safe fallback when the remote engine is unavailable.
type Local struct {
	// Method overrides the reported method string. Empty means MethodLocal;
	// the app sets MethodLocalFallback when Local runs as the fallback.
	Method string
}

const (
	minContentChars = 100

	// Inputs beyond these word counts are trimmed before segmentation.
	// Very long pages keep the head plus the tail because conclusions often
	// restate the key points.
	hardTruncateWords = 25000
	headWords         = 15000
	tailWords         = 5000
	softTruncateWords = 20000

	repairScoreBar = 6.0
)

func (l *Local) Summarize(ctx context.Context, req Request) (Result, error) {
	start := time.Now()

	content := strings.TrimSpace(req.Content)
	if len(content) < minContentChars {
		return Result{}, ErrInsufficientContent
	}
	content = truncateWords(content)

	wordCount := req.WordCount
	if wordCount == 0 {
		wordCount = len(strings.Fields(content))
	}

	sentences, err := segment.Segment(content)
	if err != nil {
		return Result{}, fmt.Errorf("segment content: %w", err)
	}
	ranked := analyze.Rank(sentences, req.Title)

	summary, err := assemble.Assemble(ranked, req.Mode, wordCount)
	if err != nil {
		return Result{}, err
	}

	report := validate.Check(summary, content, req.Mode)
	if !report.IsValid {
		log.Debug().Str("stage", "summarize").Float64("score", report.Score).Strs("issues", report.Issues).Msg("summary failed validation, repairing")
		summary = l.repair(ranked, content, req.Mode, wordCount, summary)
	}

	method := l.Method
	if method == "" {
		method = MethodLocal
	}
	return Result{
		Summary: summary,
		Metadata: Metadata{
			Mode:           req.Mode,
			Title:          req.Title,
			WordCount:      wordCount,
			ProcessingTime: time.Since(start),
			Method:         method,
		},
	}, nil
}

// repair retries assembly with only high-scoring sentences and re-validates
// once. If no sentence clears the bar, or the retry also fails validation,
// it falls back to a minimal summary built from the top sentences so the
// pipeline always terminates with usable output.
func (l *Local) repair(ranked []segment.Sentence, content string, mode assemble.Mode, wordCount int, previous string) string {
	var strong []segment.Sentence
	for _, s := range ranked {
		if s.Score > repairScoreBar {
			strong = append(strong, s)
		}
	}
	if len(strong) > 0 {
		if retry, err := assemble.Assemble(strong, mode, wordCount); err == nil {
			if validate.Check(retry, content, mode).IsValid {
				return retry
			}
		}
	}
	if fb := safeFallback(ranked, mode); fb != "" {
		return fb
	}
	return previous
}

// safeFallback returns the top sentence for brief mode and the top two for
// the other modes, formatted per the mode.
func safeFallback(ranked []segment.Sentence, mode assemble.Mode) string {
	n := 2
	if mode == assemble.ModeBrief {
		n = 1
	}
	if len(ranked) < n {
		n = len(ranked)
	}
	if n == 0 {
		return ""
	}
	picked := ranked[:n]
	if mode == assemble.ModeBullets {
		lines := make([]string, 0, n)
		for _, s := range picked {
			lines = append(lines, "• "+s.Text)
		}
		return strings.Join(lines, "\n")
	}
	parts := make([]string, 0, n)
	for _, s := range picked {
		parts = append(parts, s.Text)
	}
	return strings.Join(parts, " ")
}

// truncateWords bounds very long inputs before segmentation.
func truncateWords(content string) string {
	words := strings.Fields(content)
	switch {
	case len(words) > hardTruncateWords:
		head := strings.Join(words[:headWords], " ")
		tail := strings.Join(words[len(words)-tailWords:], " ")
		return head + " " + tail
	case len(words) > softTruncateWords:
		return strings.Join(words[:softTruncateWords], " ")
	default:
		return content
	}
}
