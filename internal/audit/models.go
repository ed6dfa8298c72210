package audit

import (
	"context"
	"time"

	"contactgate/internal/engine"
	"contactgate/internal/facts"
	"contactgate/pkg/domain"
)

// Record is the permanent, append-only evidence of one evaluation: the
// decision, the facts it was computed from, and the attempt metadata. The
// gate never updates or deletes records; retention policy lives elsewhere.
type Record struct {
	DecisionID  domain.DecisionID    `json:"decision_id"`
	AccountID   domain.AccountID     `json:"account_id"`
	Channel     domain.Channel       `json:"channel"`
	ActorID     string               `json:"actor_id"`
	RequestedAt time.Time            `json:"requested_at"`
	Allowed     bool                 `json:"allowed"`
	BlockedBy   string               `json:"blocked_by,omitempty"`
	Facts       facts.Facts          `json:"facts"`
	Outcomes    []engine.RuleOutcome `json:"outcomes"`
	CreatedAt   time.Time            `json:"created_at"`
}

// Store persists audit records keyed by decision id. Append must be
// idempotent on the key so a retried write never duplicates evidence.
type Store interface {
	Append(ctx context.Context, rec Record) error
	ListByAccount(ctx context.Context, accountID domain.AccountID, from, to time.Time) ([]Record, error)
}
