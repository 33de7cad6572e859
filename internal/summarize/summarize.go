// Package summarize produces a summary of extracted page content. Two
// implementations exist: Remote calls an OpenAI-compatible chat endpoint and
// Local runs a deterministic extractive pipeline. The app layer tries Remote
// first when configured and falls back to Local on failure.
package summarize

import (
	"context"
	"errors"
	"time"

	"github.com/outlinehq/pagesum/internal/assemble"
)

// Method identifies which engine produced a summary.
const (
	MethodLocal         = "local"
	MethodLocalFallback = "local-fallback"
	MethodGeminiAPI     = "gemini-api"
)

// Request bundles the inputs for one summarization run.
type Request struct {
	Content string
	Title   string
	Mode    assemble.Mode
	// WordCount is the word count of the original content. Zero means the
	// summarizer counts it itself.
	WordCount int
}

// Metadata describes how a summary was produced.
type Metadata struct {
	Mode           assemble.Mode
	Title          string
	WordCount      int
	ProcessingTime time.Duration
	Method         string
}

// Result is a finished summary plus its provenance.
type Result struct {
	Summary  string
	Metadata Metadata
}

// Summarizer turns page content into a summary.
type Summarizer interface {
	Summarize(ctx context.Context, req Request) (Result, error)
}

// ErrInsufficientContent indicates the input is too short to summarize.
var ErrInsufficientContent = errors.New("insufficient content to summarize")

// ErrNotImplemented marks an engine that is declared but not available.
var ErrNotImplemented = errors.New("summarization method not implemented")
