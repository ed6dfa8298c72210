package obligation

import (
	"context"
	"time"

	"contactgate/pkg/domain"
)

// Kind names a follow-on action type. The external scheduler dispatches on it.
type Kind string

const (
	// KindValidationNotice: a validation notice must go out within five days
	// of the first communication on an account.
	KindValidationNotice Kind = "validation_notice"

	// KindSMSConsentReconfirm: SMS consent lapses unless re-affirmed.
	KindSMSConsentReconfirm Kind = "sms_consent_reconfirm"

	// KindPlaceLegalHold: a pending dispute pauses future evaluations by
	// becoming a legal-hold fact, not by special-casing the engine.
	KindPlaceLegalHold Kind = "place_legal_hold"
)

// Obligation is a derived, time-bound follow-up action. The gate computes
// what and when; an external scheduler owns execution.
type Obligation struct {
	ID         domain.ObligationID `json:"obligation_id"`
	Kind       Kind                `json:"kind"`
	AccountID  domain.AccountID    `json:"account_id"`
	DecisionID domain.DecisionID   `json:"decision_id"`
	Channel    domain.Channel      `json:"channel,omitempty"`
	DueAt      time.Time           `json:"due_at"`
	CreatedAt  time.Time           `json:"created_at"`
}

// Sink hands obligations to the external scheduler queue.
type Sink interface {
	Enqueue(ctx context.Context, ob Obligation) error
}
