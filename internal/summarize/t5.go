package summarize

import "context"

// T5 is a placeholder for an on-device abstractive model. Selecting it is
// accepted at the configuration layer but summarization reports
// ErrNotImplemented so callers fall through to another engine.
type T5 struct{}

func (T5) Summarize(context.Context, Request) (Result, error) {
	return Result{}, ErrNotImplemented
}
