package engine

import (
	"time"

	"contactgate/internal/catalog"
	"contactgate/pkg/domain"
)

// ContactAttempt is one prospective outbound communication. Ephemeral: it is
// never persisted apart from its Decision's audit record.
type ContactAttempt struct {
	AccountID   domain.AccountID
	Channel     domain.Channel
	RequestedAt time.Time
	ActorID     string // agent id or automated campaign id
}

// RuleOutcome records one rule's verdict, pass or fail, block or warn.
type RuleOutcome struct {
	RuleID   string           `json:"rule_id"`
	Citation string           `json:"citation"`
	Severity catalog.Severity `json:"severity"`
	Passed   bool             `json:"passed"`
	Reason   string           `json:"reason,omitempty"`
}

// Decision is the immutable evaluation result. Allowed is true iff every
// applicable block-severity rule passed; BlockedBy names the first failing
// block rule in catalog order, or the synthetic reason for a fail-closed
// outcome.
type Decision struct {
	ID          domain.DecisionID `json:"decision_id"`
	Allowed     bool              `json:"allowed"`
	BlockedBy   string            `json:"blocked_by,omitempty"`
	Outcomes    []RuleOutcome     `json:"outcomes"`
	EvaluatedAt time.Time         `json:"evaluated_at"`
}

// Synthetic blocking reasons used when the gate fails closed before or after
// rule evaluation. They share the BlockedBy namespace with rule IDs so the
// caller always gets one field to display.
const (
	BlockedByFactsUnresolvable = "facts_unresolvable"
	BlockedByAuditUnavailable  = "audit_unavailable"
)
