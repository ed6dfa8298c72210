package handler

import (
	"time"

	"contactgate/internal/audit"
	"contactgate/internal/engine"
)

// EvaluateResponse is the HTTP response for POST /v1/compliance/evaluate.
type EvaluateResponse struct {
	Allowed    bool             `json:"allowed"`
	DecisionID string           `json:"decision_id"`
	BlockedBy  string           `json:"blocked_by,omitempty"`
	Reasons    []ReasonResponse `json:"reasons"`
}

// ReasonResponse is one rule outcome. The dialer surfaces the blocking
// citation and message verbatim so an agent understands why.
type ReasonResponse struct {
	RuleID   string `json:"rule_id"`
	Citation string `json:"citation"`
	Severity string `json:"severity"`
	Passed   bool   `json:"passed"`
	Message  string `json:"message,omitempty"`
}

// FromDecision converts a Decision to an HTTP response.
func FromDecision(d engine.Decision) *EvaluateResponse {
	resp := &EvaluateResponse{
		Allowed:    d.Allowed,
		DecisionID: d.ID.String(),
		BlockedBy:  d.BlockedBy,
		Reasons:    make([]ReasonResponse, 0, len(d.Outcomes)),
	}
	for _, o := range d.Outcomes {
		resp.Reasons = append(resp.Reasons, ReasonResponse{
			RuleID:   o.RuleID,
			Citation: o.Citation,
			Severity: string(o.Severity),
			Passed:   o.Passed,
			Message:  o.Reason,
		})
	}
	return resp
}

// DecisionListResponse is the body for GET /v1/compliance/decisions.
type DecisionListResponse struct {
	Decisions []DecisionSummary `json:"decisions"`
}

// DecisionSummary is one audited decision in the reporting surface.
type DecisionSummary struct {
	DecisionID  string    `json:"decision_id"`
	AccountID   string    `json:"account_id"`
	Channel     string    `json:"channel"`
	ActorID     string    `json:"actor_id,omitempty"`
	RequestedAt time.Time `json:"requested_at"`
	Allowed     bool      `json:"allowed"`
	BlockedBy   string    `json:"blocked_by,omitempty"`
}

// FromRecords converts audit records to the list response.
func FromRecords(recs []audit.Record) *DecisionListResponse {
	out := &DecisionListResponse{Decisions: make([]DecisionSummary, 0, len(recs))}
	for _, rec := range recs {
		out.Decisions = append(out.Decisions, DecisionSummary{
			DecisionID:  rec.DecisionID.String(),
			AccountID:   rec.AccountID.String(),
			Channel:     rec.Channel.String(),
			ActorID:     rec.ActorID,
			RequestedAt: rec.RequestedAt,
			Allowed:     rec.Allowed,
			BlockedBy:   rec.BlockedBy,
		})
	}
	return out
}
