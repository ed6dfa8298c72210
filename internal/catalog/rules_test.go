package catalog

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contactgate/internal/facts"
	"contactgate/pkg/domain"
)

// evaluatedAt is noon eastern, squarely inside the default contact window.
var evaluatedAt = time.Date(2026, 6, 15, 16, 0, 0, 0, time.UTC)

// permissiveFacts builds a snapshot that passes every rule so each test can
// flip exactly one thing.
func permissiveFacts(ch domain.Channel) facts.Facts {
	granted := facts.ConsentRecord{
		Status:    facts.ConsentGranted,
		Basis:     "written",
		GrantedAt: evaluatedAt.AddDate(0, -6, 0),
	}
	return facts.Facts{
		AccountID:        domain.AccountID(uuid.New()),
		RequestedChannel: ch,
		Jurisdiction:     "NY",
		Timezone:         "America/New_York",
		Consent: map[domain.Channel]facts.ConsentRecord{
			domain.ChannelVoice: granted,
			domain.ChannelSMS:   granted,
			domain.ChannelEmail: granted,
		},
		SOLExpiresAt: evaluatedAt.AddDate(3, 0, 0),
		ResolvedAt:   evaluatedAt,
	}
}

func ruleByID(t *testing.T, id string) Rule {
	t.Helper()
	c, err := New(testPolicy())
	require.NoError(t, err)
	for _, r := range c.Rules() {
		if r.ID == id {
			return r
		}
	}
	t.Fatalf("rule %s not in catalog", id)
	return Rule{}
}

func TestRules_PermissiveFactsPassEverything(t *testing.T) {
	c, err := New(testPolicy())
	require.NoError(t, err)

	for _, ch := range domain.AllChannels {
		f := permissiveFacts(ch)
		for _, r := range c.Rules() {
			if !r.AppliesTo(ch) {
				continue
			}
			passed, reason := r.Evaluate(f)
			assert.True(t, passed, "rule %s on %s: %s", r.ID, ch, reason)
		}
	}
}

func TestRuleCeaseAndDesist(t *testing.T) {
	r := ruleByID(t, RuleCeaseAndDesist)

	f := permissiveFacts(domain.ChannelVoice)
	f.CeaseAndDesist = true

	passed, reason := r.Evaluate(f)
	assert.False(t, passed)
	assert.Contains(t, reason, "cease")
}

func TestRuleLegalHold(t *testing.T) {
	r := ruleByID(t, RuleLegalHold)

	f := permissiveFacts(domain.ChannelEmail)
	f.LegalHold = true

	passed, _ := r.Evaluate(f)
	assert.False(t, passed)
}

func TestRuleAttorneyRepresented(t *testing.T) {
	r := ruleByID(t, RuleAttorneyRepresented)

	f := permissiveFacts(domain.ChannelVoice)
	f.AttorneyRepresented = true

	passed, reason := r.Evaluate(f)
	assert.False(t, passed)
	assert.Contains(t, reason, "attorney")
}

func TestRuleConsentRevoked(t *testing.T) {
	r := ruleByID(t, RuleConsentRevoked)

	f := permissiveFacts(domain.ChannelSMS)
	f.Consent[domain.ChannelSMS] = facts.ConsentRecord{Status: facts.ConsentRevoked}

	passed, reason := r.Evaluate(f)
	assert.False(t, passed)
	assert.Contains(t, reason, "sms")

	// Revocation is scoped to the channel it was revoked on.
	voice := permissiveFacts(domain.ChannelVoice)
	voice.Consent[domain.ChannelSMS] = facts.ConsentRecord{Status: facts.ConsentRevoked}

	passed, _ = r.Evaluate(voice)
	assert.True(t, passed)
}

func TestRuleConsentExpired(t *testing.T) {
	r := ruleByID(t, RuleConsentExpired)

	f := permissiveFacts(domain.ChannelVoice)
	f.Consent[domain.ChannelVoice] = facts.ConsentRecord{Status: facts.ConsentExpired}

	passed, reason := r.Evaluate(f)
	assert.False(t, passed)
	assert.Contains(t, reason, "expired")
}

func TestRuleConsentMissingIsNotRevoked(t *testing.T) {
	// An account with no consent event for the channel passes both consent
	// rules; absence of consent is not revocation.
	f := permissiveFacts(domain.ChannelVoice)
	delete(f.Consent, domain.ChannelVoice)

	for _, id := range []string{RuleConsentRevoked, RuleConsentExpired} {
		passed, _ := ruleByID(t, id).Evaluate(f)
		assert.True(t, passed, id)
	}
}

func TestRuleDoNotCall(t *testing.T) {
	r := ruleByID(t, RuleDoNotCall)

	f := permissiveFacts(domain.ChannelVoice)
	f.DNCListed = true

	passed, _ := r.Evaluate(f)
	assert.False(t, passed)

	// Email is not a called number; the rule does not apply.
	assert.False(t, r.AppliesTo(domain.ChannelEmail))
	assert.True(t, r.AppliesTo(domain.ChannelSMS))
}

func TestRuleCallingHours(t *testing.T) {
	r := ruleByID(t, RuleCallingHours)

	tests := []struct {
		name     string
		utc      time.Time
		timezone string
		want     bool
	}{
		{"noon eastern", time.Date(2026, 6, 15, 16, 0, 0, 0, time.UTC), "America/New_York", true},
		{"7:59 eastern", time.Date(2026, 6, 15, 11, 59, 0, 0, time.UTC), "America/New_York", false},
		{"8:00 eastern boundary", time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC), "America/New_York", true},
		{"20:59 eastern", time.Date(2026, 6, 16, 0, 59, 0, 0, time.UTC), "America/New_York", true},
		{"21:00 eastern boundary", time.Date(2026, 6, 16, 1, 0, 0, 0, time.UTC), "America/New_York", false},
		{"same instant fine in pacific", time.Date(2026, 6, 16, 1, 0, 0, 0, time.UTC), "America/Los_Angeles", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := permissiveFacts(domain.ChannelVoice)
			f.Timezone = tt.timezone
			f.ResolvedAt = tt.utc

			passed, reason := r.Evaluate(f)
			assert.Equal(t, tt.want, passed, reason)
		})
	}
}

func TestRuleCallingHours_UnresolvedTimezoneFailsClosed(t *testing.T) {
	r := ruleByID(t, RuleCallingHours)

	f := permissiveFacts(domain.ChannelVoice)
	f.Timezone = ""
	f.Unresolved = []string{facts.FactTimezone}

	passed, reason := r.Evaluate(f)
	assert.False(t, passed)
	assert.Contains(t, reason, "could not be determined")

	assert.False(t, r.AppliesTo(domain.ChannelEmail))
}

func TestRuleFrequencyCap(t *testing.T) {
	r := ruleByID(t, RuleFrequencyCap)

	f := permissiveFacts(domain.ChannelVoice)
	f.History.Attempts7d = 6
	passed, _ := r.Evaluate(f)
	assert.True(t, passed, "under the cap")

	f.History.Attempts7d = 7
	passed, reason := r.Evaluate(f)
	assert.False(t, passed, "at the cap")
	assert.Contains(t, reason, "7 attempts")

	assert.False(t, r.AppliesTo(domain.ChannelSMS))
	assert.False(t, r.AppliesTo(domain.ChannelEmail))
}

func TestRuleFrequencyCap_UnresolvedHistoryFailsClosed(t *testing.T) {
	r := ruleByID(t, RuleFrequencyCap)

	f := permissiveFacts(domain.ChannelVoice)
	f.Unresolved = []string{facts.FactHistory}

	passed, _ := r.Evaluate(f)
	assert.False(t, passed)
}

func TestRuleConversationCooldown(t *testing.T) {
	r := ruleByID(t, RuleConversationCooldown)

	f := permissiveFacts(domain.ChannelVoice)
	f.History.Conversations7d = 1

	passed, reason := r.Evaluate(f)
	assert.False(t, passed)
	assert.Contains(t, reason, "conversation")

	f.History.Conversations7d = 0
	passed, _ = r.Evaluate(f)
	assert.True(t, passed)
}

func TestRuleTwoPartyConsent_WarnsOnly(t *testing.T) {
	r := ruleByID(t, RuleTwoPartyConsent)
	assert.Equal(t, SeverityWarn, r.Severity)

	f := permissiveFacts(domain.ChannelVoice)
	f.Jurisdiction = "CA"
	f.TwoPartyConsentState = true

	passed, reason := r.Evaluate(f)
	assert.False(t, passed)
	assert.Contains(t, reason, "recording disclosure")
}

func TestRuleSOLExpired_WarnsOnly(t *testing.T) {
	r := ruleByID(t, RuleSOLExpired)
	assert.Equal(t, SeverityWarn, r.Severity)

	f := permissiveFacts(domain.ChannelVoice)
	f.SOLExpiresAt = evaluatedAt.AddDate(-1, 0, 0)

	passed, reason := r.Evaluate(f)
	assert.False(t, passed)
	assert.Contains(t, reason, "time-barred")

	// Unknown expiry stays quiet rather than warning on every account.
	f.SOLExpiresAt = time.Time{}
	passed, _ = r.Evaluate(f)
	assert.True(t, passed)
}
