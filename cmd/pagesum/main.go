package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/outlinehq/pagesum/internal/app"
	"github.com/outlinehq/pagesum/internal/extract"
	"github.com/outlinehq/pagesum/internal/segment"
	"github.com/outlinehq/pagesum/internal/summarize"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Optional .env next to the working directory; flags read env fallbacks
	// below, so this must happen first.
	_ = app.LoadEnvFiles(".env")

	var (
		configPath   string
		pageURL      string
		inputPath    string
		outputPath   string
		pdfPath      string
		mode         string
		method       string
		llmBaseURL   string
		llmModel     string
		llmKey       string
		llmTimeout   time.Duration
		fetchTimeout time.Duration
		userAgent    string
		cacheDir     string
		cacheMaxAge  time.Duration
		cacheClear   bool
		noCache      bool
		historyPath  string
		noHistory    bool
		historyLimit int
		verbose      bool
	)

	flag.StringVar(&configPath, "config", "", "Path to YAML or JSON config file")
	flag.StringVar(&pageURL, "url", "", "URL of the page to summarize")
	flag.StringVar(&inputPath, "input", "", "Path to a local HTML file to summarize")
	flag.StringVar(&outputPath, "output", "", "Path to write the summary (default stdout)")
	flag.StringVar(&pdfPath, "pdf", "", "Optional path to also write the summary as PDF")
	flag.StringVar(&mode, "mode", "", "Summary mode: brief, detailed or bullets (default brief)")
	flag.StringVar(&method, "method", "", "Summarization method: auto, gemini-api, local or t5 (default auto)")
	flag.StringVar(&llmBaseURL, "llm.base", os.Getenv("LLM_BASE_URL"), "OpenAI-compatible base URL")
	flag.StringVar(&llmModel, "llm.model", os.Getenv("LLM_MODEL"), "Model name")
	flag.StringVar(&llmKey, "llm.key", os.Getenv("LLM_API_KEY"), "API key for the remote summarizer")
	flag.DurationVar(&llmTimeout, "llm.timeout", 0, "Remote summarization timeout (default 10s)")
	flag.DurationVar(&fetchTimeout, "fetch.timeout", 0, "Page fetch timeout (default 20s)")
	flag.StringVar(&userAgent, "fetch.ua", "", "Custom User-Agent for page fetches")
	flag.StringVar(&cacheDir, "cache.dir", "", "Cache directory path (default "+app.DefaultCacheDir+")")
	flag.DurationVar(&cacheMaxAge, "cache.maxAge", 0, "Max age for cache entries before purge (e.g. 24h); 0 disables")
	flag.BoolVar(&cacheClear, "cache.clear", false, "Clear cache directory before run")
	flag.BoolVar(&noCache, "cache.bypass", false, "Bypass cached pages and summaries")
	flag.StringVar(&historyPath, "history.path", "", "Path to the summary history database")
	flag.BoolVar(&noHistory, "history.disable", false, "Do not record summaries in history")
	flag.IntVar(&historyLimit, "history", 0, "List the n most recent summaries and exit")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	cfg := app.Config{
		URL:          pageURL,
		InputPath:    inputPath,
		OutputPath:   outputPath,
		PDFPath:      pdfPath,
		Mode:         mode,
		Method:       method,
		LLMBaseURL:   llmBaseURL,
		LLMModel:     llmModel,
		LLMAPIKey:    llmKey,
		LLMTimeout:   llmTimeout,
		FetchTimeout: fetchTimeout,
		UserAgent:    userAgent,
		CacheDir:     cacheDir,
		CacheMaxAge:  cacheMaxAge,
		CacheClear:   cacheClear,
		BypassCache:  noCache,
		HistoryPath:  historyPath,
		NoHistory:    noHistory,
		HistoryLimit: historyLimit,
		Verbose:      verbose,
	}
	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Error().Err(err).Msg("config file")
			os.Exit(1)
		}
		app.ApplyFileConfig(&cfg, fc)
	}

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("run failed")
		// Exit code policy: 2 for unusable input (the page yielded nothing to
		// summarize), 1 for everything else.
		if isUnusableInput(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func isUnusableInput(err error) bool {
	return errors.Is(err, extract.ErrInsufficientContent) ||
		errors.Is(err, summarize.ErrInsufficientContent) ||
		errors.Is(err, segment.ErrTooFewSentences)
}

func run(cfg app.Config) error {
	ctx := context.Background()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	defer a.Close()

	return a.Run(ctx)
}
