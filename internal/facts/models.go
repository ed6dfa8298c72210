package facts

import (
	"time"

	"contactgate/pkg/domain"
)

// ConsentStatus is the lifecycle state of a consumer's consent for one channel.
type ConsentStatus string

const (
	ConsentNone    ConsentStatus = "none"
	ConsentGranted ConsentStatus = "granted"
	ConsentRevoked ConsentStatus = "revoked"
	ConsentExpired ConsentStatus = "expired"
)

// ConsentRecord is the most recent consent event for a channel.
type ConsentRecord struct {
	Status    ConsentStatus `json:"status"`
	Basis     string        `json:"basis,omitempty"` // e.g. "written", "oral", "prior_business"
	GrantedAt time.Time     `json:"granted_at,omitempty"`
	UpdatedAt time.Time     `json:"updated_at,omitempty"`
}

// AccountSnapshot is the point-in-time view the account subsystem exposes to
// the gate. The gate never writes to the account store.
type AccountSnapshot struct {
	AccountID            domain.AccountID
	Jurisdiction         string // two-letter state code
	PhoneNumber          string
	Consent              map[domain.Channel]ConsentRecord
	CeaseAndDesist       bool
	LegalHold            bool
	AttorneyRepresented  bool
	DisputePending       bool
	ValidationNoticeSent bool
	ChargeOffDate        time.Time
	SOLExpiresAt         time.Time // zero when not precomputed; derived from charge-off
}

// HistoryCounts are trailing-window contact history aggregates.
type HistoryCounts struct {
	Attempts7d      int `json:"attempts_7d"`
	Conversations7d int `json:"conversations_7d"`
	Attempts60d     int `json:"attempts_60d"`
}

// Fact keys that can be marked unresolved. A rule that depends on an
// unresolved fact fails closed instead of guessing.
const (
	FactHistory  = "contact_history"
	FactTimezone = "timezone"
)

// Facts is the frozen snapshot every rule evaluates against. It is assembled
// once per evaluation; no rule performs its own I/O or observes facts that
// change mid-evaluation.
type Facts struct {
	AccountID        domain.AccountID                 `json:"account_id"`
	RequestedChannel domain.Channel                   `json:"requested_channel"`
	Jurisdiction     string                           `json:"jurisdiction"`
	Timezone         string                           `json:"timezone,omitempty"`
	Consent          map[domain.Channel]ConsentRecord `json:"consent"`

	CeaseAndDesist       bool `json:"cease_and_desist"`
	LegalHold            bool `json:"legal_hold"`
	AttorneyRepresented  bool `json:"attorney_represented"`
	DisputePending       bool `json:"dispute_pending"`
	ValidationNoticeSent bool `json:"validation_notice_sent"`

	// DNCListed is fail-closed: a registry lookup failure resolves to true.
	DNCListed bool `json:"dnc_listed"`

	TwoPartyConsentState bool      `json:"two_party_consent_state"`
	SOLExpiresAt         time.Time `json:"sol_expires_at,omitempty"`

	History HistoryCounts `json:"history"`

	// Unresolved lists fact keys that could not be determined. Rules needing
	// one of these fail closed.
	Unresolved []string `json:"unresolved,omitempty"`

	ResolvedAt time.Time `json:"resolved_at"`
}

// ConsentFor returns the consent record for a channel, defaulting to
// ConsentNone when the account has no event for it.
func (f Facts) ConsentFor(ch domain.Channel) ConsentRecord {
	if rec, ok := f.Consent[ch]; ok {
		return rec
	}
	return ConsentRecord{Status: ConsentNone}
}

// IsUnresolved reports whether the named fact could not be determined.
func (f Facts) IsUnresolved(key string) bool {
	for _, k := range f.Unresolved {
		if k == key {
			return true
		}
	}
	return false
}
