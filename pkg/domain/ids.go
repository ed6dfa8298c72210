package domain

import (
	"github.com/google/uuid"

	dErrors "contactgate/pkg/domain-errors"
)

// Typed UUID wrappers. The compiler keeps account, decision, and obligation
// identifiers from being swapped; Parse constructors enforce validity at trust
// boundaries. Direct casting bypasses validation.
type (
	AccountID    uuid.UUID
	DecisionID   uuid.UUID
	ObligationID uuid.UUID
)

func parseUUID(s, what string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, what+" cannot be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, what+" must be a valid UUID")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, what+" cannot be the nil UUID")
	}
	return u, nil
}

// ParseAccountID constructs an AccountID from external input.
func ParseAccountID(s string) (AccountID, error) {
	u, err := parseUUID(s, "account_id")
	return AccountID(u), err
}

// ParseDecisionID constructs a DecisionID from external input.
func ParseDecisionID(s string) (DecisionID, error) {
	u, err := parseUUID(s, "decision_id")
	return DecisionID(u), err
}

// NewDecisionID mints a fresh decision identifier.
func NewDecisionID() DecisionID { return DecisionID(uuid.New()) }

// NewObligationID mints a fresh obligation identifier.
func NewObligationID() ObligationID { return ObligationID(uuid.New()) }

func (id AccountID) String() string    { return uuid.UUID(id).String() }
func (id DecisionID) String() string   { return uuid.UUID(id).String() }
func (id ObligationID) String() string { return uuid.UUID(id).String() }

// The defined types do not inherit uuid.UUID's marshaling, and without it
// encoding/json renders them as raw byte arrays. Delegating keeps the wire
// form the canonical UUID string on every surface that serializes an id.

func (id AccountID) MarshalText() ([]byte, error)    { return uuid.UUID(id).MarshalText() }
func (id DecisionID) MarshalText() ([]byte, error)   { return uuid.UUID(id).MarshalText() }
func (id ObligationID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *AccountID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

func (id *DecisionID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

func (id *ObligationID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

func (id AccountID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id DecisionID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
