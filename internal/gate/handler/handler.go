package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"contactgate/internal/audit"
	"contactgate/internal/engine"
	"contactgate/pkg/domain"
	dErrors "contactgate/pkg/domain-errors"
	"contactgate/pkg/platform/httputil"
	"contactgate/pkg/requestcontext"
)

// Service defines the gate operations the handler needs.
type Service interface {
	Evaluate(ctx context.Context, attempt engine.ContactAttempt) engine.Decision
}

// AuditQuery is the read-only reporting surface over audit records.
type AuditQuery interface {
	ListByAccount(ctx context.Context, accountID domain.AccountID, from, to time.Time) ([]audit.Record, error)
}

// Handler wires compliance endpoints to the gate service.
type Handler struct {
	service Service
	query   AuditQuery
	logger  *slog.Logger
}

// New constructs a gate handler with its dependencies.
func New(service Service, query AuditQuery, logger *slog.Logger) *Handler {
	return &Handler{service: service, query: query, logger: logger}
}

// Register mounts compliance endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/v1/compliance/evaluate", h.HandleEvaluate)
	r.Get("/v1/compliance/decisions", h.HandleListDecisions)
}

// HandleEvaluate handles POST /v1/compliance/evaluate. It always answers
// with a structured decision; per-call failures inside the gate resolve to
// fail-closed decisions, never a 5xx.
func (h *Handler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	actorID := requestcontext.ActorID(ctx)
	if actorID == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[EvaluateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	requestedAt := requestcontext.Now(ctx)
	if req.RequestedAt != nil {
		requestedAt = *req.RequestedAt
	}

	decision := h.service.Evaluate(ctx, engine.ContactAttempt{
		AccountID:   req.ParsedAccountID(),
		Channel:     req.ParsedChannel(),
		RequestedAt: requestedAt,
		ActorID:     actorID,
	})

	httputil.WriteJSON(w, http.StatusOK, FromDecision(decision))
}

// HandleListDecisions handles GET /v1/compliance/decisions, the reporting
// surface for compliance review.
func (h *Handler) HandleListDecisions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if requestcontext.ActorID(ctx) == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	accountID, err := domain.ParseAccountID(r.URL.Query().Get("account_id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	from, err := parseTimeParam(r.URL.Query().Get("from"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	to, err := parseTimeParam(r.URL.Query().Get("to"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	recs, err := h.query.ListByAccount(ctx, accountID, from, to)
	if err != nil {
		h.logger.ErrorContext(ctx, "decision listing failed",
			"account_id", accountID,
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "decision listing failed"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromRecords(recs))
}

func parseTimeParam(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, dErrors.New(dErrors.CodeValidation, "time bounds must be RFC 3339")
	}
	return t, nil
}
