package llm

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Completer sends a single instruction/input exchange to a chat-completion
// backend and returns the normalized reply text.
type Completer interface {
	Complete(ctx context.Context, input, instruction string) (string, error)
}

// ErrNoCredential reports a missing API credential. It is a configuration
// problem and is never retried.
var ErrNoCredential = errors.New("llm: API key not configured")

// TransientError is the terminal failure of a completion call after the retry
// budget is exhausted. Status and Body carry the last HTTP response when the
// failure came from a non-success status; Err carries the last transport or
// context error otherwise.
type TransientError struct {
	Attempts int
	Status   int
	Body     string
	Err      error
}

func (e *TransientError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("llm: request failed after %d attempts: status %d: %s", e.Attempts, e.Status, e.Body)
	}
	return fmt.Sprintf("llm: request failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// RetryPolicy governs attempt count, backoff, and per-attempt timeout for a
// Completer. The client performs one initial attempt plus up to Retries
// additional attempts.
type RetryPolicy struct {
	Retries   int
	BaseDelay time.Duration
	Timeout   time.Duration
}

// DefaultRetryPolicy mirrors the upstream defaults: 15s per attempt, two
// retries, 500ms backoff base.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Retries:   2,
		BaseDelay: 500 * time.Millisecond,
		Timeout:   15 * time.Second,
	}
}

// Backoff returns the delay to sleep after the given 0-indexed failed attempt,
// exponential in the attempt number.
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	return p.BaseDelay * (1 << attempt)
}
