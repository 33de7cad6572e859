package app

import (
	"errors"
	"strings"
	"time"
)

// Config holds runtime configuration for the application.
type Config struct {
	// Input: exactly one of URL or InputPath.
	URL       string
	InputPath string

	// Output
	OutputPath string
	PDFPath    string

	// Summarization
	Mode   string
	Method string

	// LLM
	LLMBaseURL string
	LLMModel   string
	LLMAPIKey  string
	LLMTimeout time.Duration

	// Fetching
	UserAgent    string
	FetchTimeout time.Duration
	CacheDir     string
	CacheMaxAge  time.Duration
	CacheClear   bool
	BypassCache  bool

	// History
	HistoryPath  string
	NoHistory    bool
	HistoryLimit int

	Verbose bool
}

// Method selection values. MethodAuto prefers the remote engine when an API
// key is configured and falls back to local.
const (
	MethodAuto = "auto"
)

// Defaults applied by Normalize when fields are unset.
const (
	DefaultLLMBaseURL   = "https://generativelanguage.googleapis.com/v1beta/openai/"
	DefaultLLMModel     = "gemini-2.0-flash"
	DefaultLLMTimeout   = 10 * time.Second
	DefaultFetchTimeout = 20 * time.Second
	DefaultUserAgent    = "pagesum/1.0 (+https://github.com/outlinehq/pagesum)"
	DefaultCacheDir     = ".pagesum-cache"
	DefaultHistory      = "pagesum-history.db"
)

// Normalize fills defaults and validates the input selection.
func (c *Config) Normalize() error {
	if c.Mode == "" {
		c.Mode = "brief"
	}
	if c.Method == "" {
		c.Method = MethodAuto
	}
	if c.LLMBaseURL == "" {
		c.LLMBaseURL = DefaultLLMBaseURL
	}
	if c.LLMModel == "" {
		c.LLMModel = DefaultLLMModel
	}
	if c.LLMTimeout <= 0 {
		c.LLMTimeout = DefaultLLMTimeout
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = DefaultFetchTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.CacheDir == "" {
		c.CacheDir = DefaultCacheDir
	}
	if c.HistoryPath == "" {
		c.HistoryPath = DefaultHistory
	}
	if c.HistoryLimit > 0 {
		// History listing needs no input document.
		return nil
	}
	hasURL := strings.TrimSpace(c.URL) != ""
	hasFile := strings.TrimSpace(c.InputPath) != ""
	if hasURL == hasFile {
		return errors.New("exactly one of -url or -input is required")
	}
	return nil
}
