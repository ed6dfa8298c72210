// Package gate orchestrates one evaluation end to end: resolve facts, run the
// engine, durably audit, then derive obligations. Every path ends in a
// structured, fail-closed decision; an ungated contact attempt is the worst
// possible outcome.
package gate

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"contactgate/internal/audit"
	"contactgate/internal/engine"
	"contactgate/internal/facts"
	"contactgate/internal/gate/metrics"
	"contactgate/internal/obligation"
	"contactgate/pkg/domain"
	dErrors "contactgate/pkg/domain-errors"
)

// Resolver assembles the frozen fact snapshot for one attempt.
type Resolver interface {
	Resolve(ctx context.Context, accountID domain.AccountID, ch domain.Channel, now time.Time) (facts.Facts, error)
}

// Recorder durably persists audit records.
type Recorder interface {
	Record(ctx context.Context, rec audit.Record) error
}

// Service wires the gate's components. Stateless per evaluation: attempts
// for different accounts proceed fully in parallel.
type Service struct {
	resolver  Resolver
	engine    *engine.Engine
	recorder  Recorder
	scheduler *obligation.Scheduler
	sink      obligation.Sink
	history   facts.ContactHistory
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// NewService constructs the gate service.
func NewService(
	resolver Resolver,
	eng *engine.Engine,
	recorder Recorder,
	scheduler *obligation.Scheduler,
	sink obligation.Sink,
	history facts.ContactHistory,
	opts ...Option,
) *Service {
	s := &Service{
		resolver:  resolver,
		engine:    eng,
		recorder:  recorder,
		scheduler: scheduler,
		sink:      sink,
		history:   history,
		tracer:    otel.Tracer("contactgate/gate"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Evaluate runs the full gate for one attempt and always returns a decision.
//
// Invariants held here:
//   - exactly one decision and one audit record per attempt
//   - the caller never sees allowed=true unless the audit write succeeded
//   - fact resolution failure and audit failure both fail closed
//   - obligation enqueue failures are logged and counted, never flip a verdict
func (s *Service) Evaluate(ctx context.Context, attempt engine.ContactAttempt) engine.Decision {
	ctx, span := s.tracer.Start(ctx, "gate.Evaluate", trace.WithAttributes(
		attribute.String("account_id", attempt.AccountID.String()),
		attribute.String("channel", attempt.Channel.String()),
	))
	defer span.End()
	start := time.Now()

	f, resolveErr := s.resolver.Resolve(ctx, attempt.AccountID, attempt.Channel, attempt.RequestedAt)
	s.metrics.ObserveResolveLatency(time.Since(start))

	var d engine.Decision
	if resolveErr != nil {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "fact resolution failed, failing closed",
				"account_id", attempt.AccountID,
				"channel", attempt.Channel,
				"error", resolveErr,
			)
		}
		msg := "required facts could not be resolved"
		if dErrors.HasCode(resolveErr, dErrors.CodeTimeout) {
			msg = "fact resolution exceeded its deadline"
		}
		d = engine.FailClosed(attempt, engine.BlockedByFactsUnresolvable, msg)
		// Audit the attempt with the little we know; the record must exist
		// even when resolution failed.
		f = facts.Facts{
			AccountID:        attempt.AccountID,
			RequestedChannel: attempt.Channel,
			Unresolved:       []string{facts.FactHistory, facts.FactTimezone},
			ResolvedAt:       attempt.RequestedAt,
		}
	} else {
		d = s.engine.Evaluate(attempt, f)
	}

	rec := audit.Record{
		DecisionID:  d.ID,
		AccountID:   attempt.AccountID,
		Channel:     attempt.Channel,
		ActorID:     attempt.ActorID,
		RequestedAt: attempt.RequestedAt,
		Allowed:     d.Allowed,
		BlockedBy:   d.BlockedBy,
		Facts:       f,
		Outcomes:    d.Outcomes,
	}
	if err := s.recorder.Record(ctx, rec); err != nil {
		s.metrics.IncAuditFailure()
		if s.logger != nil {
			s.logger.ErrorContext(ctx, "audit write failed, failing closed",
				"decision_id", d.ID,
				"account_id", attempt.AccountID,
				"error", err,
			)
		}
		d = engine.FailClosed(attempt, engine.BlockedByAuditUnavailable, "audit record could not be written")
		s.metrics.ObserveEvaluation(attempt.Channel.String(), false, d.BlockedBy, time.Since(start))
		return d
	}

	if d.Allowed {
		// Count the attempt so the next evaluation for this account sees it.
		// The race between concurrent evaluations of one account is bounded
		// by the regulatory window, not a correctness violation.
		if err := s.history.RecordAttempt(ctx, attempt.AccountID, attempt.Channel, attempt.RequestedAt); err != nil && s.logger != nil {
			s.logger.WarnContext(ctx, "attempt history write failed",
				"account_id", attempt.AccountID,
				"error", err,
			)
		}
	}

	s.emitObligations(ctx, d, f, attempt.RequestedAt)

	s.metrics.ObserveEvaluation(attempt.Channel.String(), d.Allowed, d.BlockedBy, time.Since(start))
	if s.logger != nil {
		s.logger.InfoContext(ctx, "contact attempt evaluated",
			"decision_id", d.ID,
			"account_id", attempt.AccountID,
			"channel", attempt.Channel,
			"actor_id", attempt.ActorID,
			"allowed", d.Allowed,
			"blocked_by", d.BlockedBy,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
	return d
}

func (s *Service) emitObligations(ctx context.Context, d engine.Decision, f facts.Facts, now time.Time) {
	// Obligation delivery outlives caller cancellation, like the audit write.
	ctx = context.WithoutCancel(ctx)
	for _, ob := range s.scheduler.Derive(d, f, now) {
		if err := s.sink.Enqueue(ctx, ob); err != nil {
			s.metrics.IncEnqueueFailure()
			if s.logger != nil {
				s.logger.ErrorContext(ctx, "obligation enqueue failed",
					"obligation_id", ob.ID,
					"kind", ob.Kind,
					"account_id", ob.AccountID,
					"error", err,
				)
			}
			continue
		}
		s.metrics.IncObligation(string(ob.Kind))
	}
}
