// Package app wires the pipeline together: obtain HTML, extract the main
// content, summarize remotely or locally, persist history, write output.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/outlinehq/pagesum/internal/assemble"
	"github.com/outlinehq/pagesum/internal/cache"
	"github.com/outlinehq/pagesum/internal/extract"
	"github.com/outlinehq/pagesum/internal/fetch"
	"github.com/outlinehq/pagesum/internal/llm"
	"github.com/outlinehq/pagesum/internal/store"
	"github.com/outlinehq/pagesum/internal/summarize"
)

type App struct {
	cfg     Config
	fetcher *fetch.Client
	history *store.Store
	remote  summarize.Summarizer
	out     io.Writer
}

func New(ctx context.Context, cfg Config) (*App, error) {
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	a := &App{cfg: cfg, out: os.Stdout}

	var httpCache *cache.HTTPCache
	if cfg.CacheDir != "" {
		if cfg.CacheClear {
			_ = cache.ClearDir(cfg.CacheDir)
		}
		if cfg.CacheMaxAge > 0 {
			_, _ = cache.PurgeHTTPCacheByAge(cfg.CacheDir, cfg.CacheMaxAge)
			_, _ = cache.PurgeLLMCacheByAge(filepath.Join(cfg.CacheDir, "summaries"), cfg.CacheMaxAge)
		}
		httpCache = &cache.HTTPCache{Dir: cfg.CacheDir}
	}
	a.fetcher = &fetch.Client{
		UserAgent:         cfg.UserAgent,
		MaxAttempts:       3,
		PerRequestTimeout: cfg.FetchTimeout,
		Cache:             httpCache,
		BypassCache:       cfg.BypassCache,
	}

	if cfg.LLMAPIKey != "" {
		transportCfg := openai.DefaultConfig(cfg.LLMAPIKey)
		transportCfg.BaseURL = cfg.LLMBaseURL
		transportCfg.HTTPClient = newHTTPClient()
		client := openai.NewClientWithConfig(transportCfg)
		var summaryCache *cache.SummaryCache
		if cfg.CacheDir != "" {
			summaryCache = &cache.SummaryCache{Inner: &cache.LLMCache{Dir: filepath.Join(cfg.CacheDir, "summaries")}}
		}
		a.remote = &summarize.Remote{
			Client: &llm.OpenAIProvider{Inner: client},
			Model:  cfg.LLMModel,
			Cache:  summaryCache,
			Bypass: cfg.BypassCache,
		}
	}

	if !cfg.NoHistory {
		h, err := store.Open(cfg.HistoryPath)
		if err != nil {
			return nil, err
		}
		a.history = h
	}
	return a, nil
}

func (a *App) Close() error {
	if a.history != nil {
		return a.history.Close()
	}
	return nil
}

func (a *App) Run(ctx context.Context) error {
	if a.cfg.HistoryLimit > 0 {
		return a.listHistory(ctx, a.cfg.HistoryLimit)
	}

	mode, err := assemble.ParseMode(a.cfg.Mode)
	if err != nil {
		return err
	}

	html, pageURL, err := a.loadInput(ctx)
	if err != nil {
		return err
	}

	page, err := extract.Extract(html, pageURL)
	if err != nil {
		return fmt.Errorf("extract %s: %w", sourceName(pageURL, a.cfg.InputPath), err)
	}
	log.Info().Str("title", page.Title).Int("words", page.WordCount).Str("language", page.Metadata.Language).Msg("content extracted")

	result, err := a.summarize(ctx, page, mode)
	if err != nil {
		return err
	}
	log.Info().Str("method", result.Metadata.Method).Dur("took", result.Metadata.ProcessingTime).Msg("summary produced")

	if a.history != nil {
		_, err := a.history.Save(ctx, store.Entry{
			URL:       page.URL,
			Domain:    page.Domain,
			Title:     page.Title,
			Mode:      string(mode),
			Method:    result.Metadata.Method,
			Summary:   result.Summary,
			WordCount: page.WordCount,
		})
		if err != nil {
			log.Warn().Err(err).Msg("history save failed")
		}
	}

	markdown := renderMarkdown(page, result)
	if err := a.writeOutput(markdown); err != nil {
		return err
	}
	if a.cfg.PDFPath != "" {
		if err := writeSimplePDF(markdown, a.cfg.PDFPath); err != nil {
			return fmt.Errorf("write pdf: %w", err)
		}
	}
	return nil
}

// summarize picks the producer per the configured method. Any remote failure
// degrades to the local engine; remote errors never abort the run.
func (a *App) summarize(ctx context.Context, page *extract.Page, mode assemble.Mode) (summarize.Result, error) {
	req := summarize.Request{
		Content:   page.Content,
		Title:     page.Title,
		Mode:      mode,
		WordCount: page.WordCount,
	}

	switch a.cfg.Method {
	case summarize.MethodLocal:
		local := &summarize.Local{}
		return local.Summarize(ctx, req)
	case "t5":
		if _, err := (summarize.T5{}).Summarize(ctx, req); err != nil {
			log.Warn().Err(err).Msg("t5 unavailable, using local summarizer")
		}
		local := &summarize.Local{Method: summarize.MethodLocalFallback}
		return local.Summarize(ctx, req)
	case summarize.MethodGeminiAPI, MethodAuto:
		// fall through to the remote-first path below
	default:
		return summarize.Result{}, fmt.Errorf("unknown summarization method %q", a.cfg.Method)
	}

	if a.remote == nil {
		if a.cfg.Method == summarize.MethodGeminiAPI {
			log.Warn().Msg("no API key configured, using local summarizer")
		}
		local := &summarize.Local{}
		return local.Summarize(ctx, req)
	}

	remoteCtx, cancel := context.WithTimeout(ctx, a.cfg.LLMTimeout)
	defer cancel()
	result, err := a.remote.Summarize(remoteCtx, req)
	if err == nil {
		return result, nil
	}
	if errors.Is(err, summarize.ErrInsufficientContent) {
		return summarize.Result{}, err
	}
	log.Warn().Err(err).Msg("remote summarization failed, falling back to local")
	local := &summarize.Local{Method: summarize.MethodLocalFallback}
	return local.Summarize(ctx, req)
}

func (a *App) loadInput(ctx context.Context) ([]byte, string, error) {
	if a.cfg.URL != "" {
		body, _, err := a.fetcher.Get(ctx, a.cfg.URL)
		if err != nil {
			return nil, "", fmt.Errorf("fetch %s: %w", a.cfg.URL, err)
		}
		return body, a.cfg.URL, nil
	}
	b, err := os.ReadFile(a.cfg.InputPath)
	if err != nil {
		return nil, "", fmt.Errorf("read input: %w", err)
	}
	return b, "", nil
}

func (a *App) writeOutput(markdown string) error {
	path := strings.TrimSpace(a.cfg.OutputPath)
	if path == "" || path == "-" {
		_, err := fmt.Fprintln(a.out, markdown)
		return err
	}
	return os.WriteFile(path, []byte(markdown+"\n"), 0o644)
}

func (a *App) listHistory(ctx context.Context, n int) error {
	if a.history == nil {
		return errors.New("history is disabled")
	}
	entries, err := a.history.Recent(ctx, n)
	if err != nil {
		return err
	}
	for _, e := range entries {
		src := e.URL
		if src == "" {
			src = "(local file)"
		}
		fmt.Fprintf(a.out, "%s  [%s/%s]  %s\n    %s\n", e.CreatedAt.Format("2006-01-02 15:04"), e.Mode, e.Method, src, firstLine(e.Summary))
	}
	return nil
}

// renderMarkdown formats the summary as a small Markdown document.
func renderMarkdown(page *extract.Page, result summarize.Result) string {
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(page.Title)
	b.WriteString("\n\n")
	b.WriteString(result.Summary)
	b.WriteString("\n\n---\n")
	fmt.Fprintf(&b, "_%s summary of %d words via %s_",
		result.Metadata.Mode, result.Metadata.WordCount, result.Metadata.Method)
	if page.URL != "" {
		fmt.Fprintf(&b, "\n_source: %s_", page.URL)
	}
	return b.String()
}

func sourceName(pageURL, inputPath string) string {
	if pageURL != "" {
		return pageURL
	}
	return inputPath
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > 120 {
		s = s[:120] + "..."
	}
	return s
}
