package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the compliance gate.
type Metrics struct {
	// Evaluations by channel and verdict
	Evaluations *prometheus.CounterVec

	// Blocking rule hits by rule id (includes synthetic fail-closed reasons)
	Blocked *prometheus.CounterVec

	// Overall evaluation latency including fact resolution and audit write
	EvaluateLatency prometheus.Histogram

	// Fact resolution latency
	ResolveLatency prometheus.Histogram

	// Audit writes that exhausted retries and forced a fail-closed decision
	AuditFailures prometheus.Counter

	// Obligations emitted by kind, and enqueue failures
	Obligations     *prometheus.CounterVec
	EnqueueFailures prometheus.Counter
}

// New creates a new Metrics instance with all gate metrics registered.
func New() *Metrics {
	return &Metrics{
		Evaluations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "contactgate_evaluations_total",
			Help: "Total contact evaluations by channel and verdict",
		}, []string{"channel", "allowed"}),

		Blocked: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "contactgate_blocked_total",
			Help: "Total blocked evaluations by primary blocking rule",
		}, []string{"rule"}),

		EvaluateLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "contactgate_evaluate_duration_seconds",
			Help:    "Duration of full gate evaluation including audit write",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),

		ResolveLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "contactgate_fact_resolve_duration_seconds",
			Help:    "Duration of fact resolution",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
		}),

		AuditFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "contactgate_audit_write_failures_total",
			Help: "Audit writes that exhausted retries and failed the evaluation closed",
		}),

		Obligations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "contactgate_obligations_emitted_total",
			Help: "Obligations derived from decisions by kind",
		}, []string{"kind"}),

		EnqueueFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "contactgate_obligation_enqueue_failures_total",
			Help: "Obligations that could not be handed to the scheduler queue",
		}),
	}
}

// ObserveEvaluation records one finished evaluation.
func (m *Metrics) ObserveEvaluation(channel string, allowed bool, blockedBy string, d time.Duration) {
	if m == nil {
		return
	}
	verdict := "false"
	if allowed {
		verdict = "true"
	}
	m.Evaluations.WithLabelValues(channel, verdict).Inc()
	if !allowed && blockedBy != "" {
		m.Blocked.WithLabelValues(blockedBy).Inc()
	}
	m.EvaluateLatency.Observe(d.Seconds())
}

// ObserveResolveLatency records the duration of one fact resolution.
func (m *Metrics) ObserveResolveLatency(d time.Duration) {
	if m != nil {
		m.ResolveLatency.Observe(d.Seconds())
	}
}

// IncAuditFailure records an audit write that forced fail-closed.
func (m *Metrics) IncAuditFailure() {
	if m != nil {
		m.AuditFailures.Inc()
	}
}

// IncObligation records one emitted obligation.
func (m *Metrics) IncObligation(kind string) {
	if m != nil {
		m.Obligations.WithLabelValues(kind).Inc()
	}
}

// IncEnqueueFailure records a failed hand-off to the scheduler queue.
func (m *Metrics) IncEnqueueFailure() {
	if m != nil {
		m.EnqueueFailures.Inc()
	}
}
