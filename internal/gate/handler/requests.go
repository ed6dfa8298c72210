package handler

import (
	"strings"
	"time"

	"contactgate/pkg/domain"
	dErrors "contactgate/pkg/domain-errors"
)

// EvaluateRequest is the HTTP request body for POST /v1/compliance/evaluate.
type EvaluateRequest struct {
	AccountID   string     `json:"account_id"`
	Channel     string     `json:"channel"`
	RequestedAt *time.Time `json:"requested_at,omitempty"`

	// Parsed values (populated by Validate)
	parsedAccountID domain.AccountID
	parsedChannel   domain.Channel
}

// Validate validates and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *EvaluateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	r.AccountID = strings.TrimSpace(r.AccountID)
	if r.AccountID == "" {
		return dErrors.New(dErrors.CodeValidation, "account_id is required")
	}
	accountID, err := domain.ParseAccountID(r.AccountID)
	if err != nil {
		return err
	}
	r.parsedAccountID = accountID

	r.Channel = strings.TrimSpace(r.Channel)
	if r.Channel == "" {
		return dErrors.New(dErrors.CodeValidation, "channel is required")
	}
	channel, err := domain.ParseChannel(r.Channel)
	if err != nil {
		return err
	}
	r.parsedChannel = channel

	return nil
}

// ParsedAccountID returns the validated account id.
func (r *EvaluateRequest) ParsedAccountID() domain.AccountID { return r.parsedAccountID }

// ParsedChannel returns the validated channel.
func (r *EvaluateRequest) ParsedChannel() domain.Channel { return r.parsedChannel }
