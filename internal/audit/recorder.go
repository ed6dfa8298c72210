// Package audit durably records every evaluation before the caller sees its
// decision. The record is the compliance evidence: if it cannot be written,
// the contact must not proceed.
package audit

import (
	"context"
	"log/slog"
	"time"

	dErrors "contactgate/pkg/domain-errors"
)

// Recorder writes audit records with bounded retries. Retries cover the
// write itself only; on exhaustion the caller fails closed, never fails open.
type Recorder struct {
	store       Store
	timeout     time.Duration
	maxAttempts int
	baseBackoff time.Duration
	logger      *slog.Logger
}

// Option configures the Recorder.
type Option func(*Recorder)

// WithLogger sets a logger for write failure reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Recorder) { r.logger = logger }
}

// WithTimeout bounds the whole record operation including retries.
func WithTimeout(d time.Duration) Option {
	return func(r *Recorder) { r.timeout = d }
}

// WithRetry overrides the attempt count and initial backoff.
func WithRetry(attempts int, base time.Duration) Option {
	return func(r *Recorder) {
		r.maxAttempts = attempts
		r.baseBackoff = base
	}
}

// NewRecorder constructs a Recorder over a store.
func NewRecorder(store Store, opts ...Option) *Recorder {
	r := &Recorder{
		store:       store,
		timeout:     500 * time.Millisecond,
		maxAttempts: 3,
		baseBackoff: 50 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record persists one audit record. The write runs on a context detached
// from the caller's cancellation: a decision once started must be recorded
// even if the caller abandons the request. Only the response is cancellable.
//
// Returns CodeAuditWriteFailed when every attempt fails; the gate translates
// that into a fail-closed decision.
func (r *Recorder) Record(ctx context.Context, rec Record) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
	defer cancel()

	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	backoff := r.baseBackoff
	var lastErr error
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		lastErr = r.store.Append(ctx, rec)
		if lastErr == nil {
			return nil
		}
		if r.logger != nil {
			r.logger.WarnContext(ctx, "audit write failed",
				"decision_id", rec.DecisionID,
				"attempt", attempt,
				"error", lastErr,
			)
		}
		if attempt == r.maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return dErrors.Wrap(ctx.Err(), dErrors.CodeAuditWriteFailed, "audit write deadline exceeded")
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return dErrors.Wrap(lastErr, dErrors.CodeAuditWriteFailed, "audit record could not be written")
}
