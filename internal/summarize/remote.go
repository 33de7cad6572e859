package summarize

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/outlinehq/pagesum/internal/assemble"
	"github.com/outlinehq/pagesum/internal/cache"
	"github.com/outlinehq/pagesum/internal/llm"
)

// Remote summarizes via an OpenAI-compatible chat completion endpoint. The
// default deployment points it at Gemini's compatibility API, hence the
// reported method name.
type Remote struct {
	Client llm.Client
	Model  string
	Cache  *cache.SummaryCache
	// Bypass skips cache reads so a fresh summary is always requested.
	// Responses are still saved for later runs.
	Bypass bool
}

// Remote request failures the app layer distinguishes when deciding whether
// to fall back to the local engine.
var (
	ErrQuotaExceeded     = errors.New("remote quota exceeded")
	ErrInvalidAPIKey     = errors.New("invalid or missing API key")
	ErrMalformedResponse = errors.New("malformed remote response")
)

// Content beyond this many characters is trimmed before prompting to stay
// inside typical context windows.
const (
	remoteContentCap  = 30000
	remoteContentKeep = 25000
)

// sleepFunc is a test hook for the single retry backoff; milliseconds.
var sleepFunc = func(ms int) { time.Sleep(time.Duration(ms) * time.Millisecond) }

func (r *Remote) Summarize(ctx context.Context, req Request) (Result, error) {
	start := time.Now()
	if r.Client == nil || strings.TrimSpace(r.Model) == "" {
		return Result{}, errors.New("remote summarizer not configured")
	}
	content := strings.TrimSpace(req.Content)
	if len(content) < minContentChars {
		return Result{}, ErrInsufficientContent
	}
	if len(content) > remoteContentCap {
		cut := remoteContentKeep
		for cut > 0 && !utf8.RuneStart(content[cut]) {
			cut--
		}
		content = content[:cut] + "..."
	}

	wordCount := req.WordCount
	if wordCount == 0 {
		wordCount = len(strings.Fields(content))
	}
	meta := Metadata{
		Mode:      req.Mode,
		Title:     req.Title,
		WordCount: wordCount,
		Method:    MethodGeminiAPI,
	}

	if !r.Bypass {
		if cached, ok := r.Cache.Get(ctx, r.Model, string(req.Mode), content); ok {
			meta.ProcessingTime = time.Since(start)
			return Result{Summary: cached, Metadata: meta}, nil
		}
	}

	chatReq := openai.ChatCompletionRequest{
		Model: r.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt(req.Mode, req.Title, content)},
		},
		Temperature: 0.3,
		N:           1,
	}
	resp, err := r.Client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		if classified := classifyAPIError(err); classified != nil {
			return Result{}, classified
		}
		// One short backoff attempt for transient failures.
		sleepFunc(100)
		resp, err = r.Client.CreateChatCompletion(ctx, chatReq)
		if err != nil {
			if classified := classifyAPIError(err); classified != nil {
				return Result{}, classified
			}
			return Result{}, fmt.Errorf("remote summarization (after retry): %w", err)
		}
	}

	if len(resp.Choices) == 0 {
		return Result{}, ErrMalformedResponse
	}
	summary := strings.TrimSpace(resp.Choices[0].Message.Content)
	if summary == "" {
		return Result{}, ErrMalformedResponse
	}
	if req.Mode == assemble.ModeBullets {
		summary = normalizeBullets(summary)
	}

	if err := r.Cache.Save(ctx, r.Model, string(req.Mode), content, summary); err != nil {
		log.Debug().Str("stage", "summarize").Err(err).Msg("summary cache write failed")
	}

	meta.ProcessingTime = time.Since(start)
	return Result{Summary: summary, Metadata: meta}, nil
}

// classifyAPIError maps provider HTTP errors onto the package sentinels.
// Quota and auth failures are permanent for this run, so they are returned
// without a retry.
func classifyAPIError(err error) error {
	var apiErr *openai.APIError
	if !errors.As(err, &apiErr) {
		return nil
	}
	switch apiErr.HTTPStatusCode {
	case 429:
		return fmt.Errorf("%w: %v", ErrQuotaExceeded, apiErr.Message)
	case 401, 403:
		return fmt.Errorf("%w: %v", ErrInvalidAPIKey, apiErr.Message)
	default:
		return nil
	}
}

const systemPrompt = "You are a summarization assistant. Summarize the " +
	"provided web page content faithfully. Use only information present in " +
	"the content and write in the same language as the content."

func userPrompt(mode assemble.Mode, title, content string) string {
	var b strings.Builder
	switch mode {
	case assemble.ModeBrief:
		b.WriteString("Provide a brief summary of the following content in 2-3 sentences.")
	case assemble.ModeDetailed:
		b.WriteString("Provide a detailed summary of the following content in 1-2 paragraphs, covering the main points and key supporting details.")
	case assemble.ModeBullets:
		b.WriteString("Summarize the following content as 3-5 key bullet points. Put each point on its own line starting with the • character.")
	default:
		b.WriteString("Summarize the following content.")
	}
	if strings.TrimSpace(title) != "" {
		b.WriteString("\n\nTitle: ")
		b.WriteString(title)
	}
	b.WriteString("\n\nContent:\n")
	b.WriteString(content)
	return b.String()
}

// normalizeBullets rewrites whatever list markers the model chose into the
// "• " form the rest of the pipeline expects.
func normalizeBullets(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = strings.TrimSpace(strings.TrimLeft(line, "•-*–"))
		if line == "" {
			continue
		}
		out = append(out, "• "+line)
	}
	return strings.Join(out, "\n")
}
