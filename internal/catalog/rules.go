package catalog

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"contactgate/internal/facts"
	"contactgate/internal/platform/config"
	"contactgate/pkg/domain"
	dErrors "contactgate/pkg/domain-errors"
)

// Rule identifiers. External callers see these in decision reasons and audit
// records, so they are part of the API surface.
const (
	RuleCeaseAndDesist       = "cease_and_desist"
	RuleLegalHold            = "legal_hold"
	RuleAttorneyRepresented  = "attorney_represented"
	RuleConsentRevoked       = "consent_revoked"
	RuleConsentExpired       = "consent_expired"
	RuleDoNotCall            = "do_not_call"
	RuleCallingHours         = "calling_hours"
	RuleFrequencyCap         = "frequency_cap"
	RuleConversationCooldown = "conversation_cooldown"
	RuleTwoPartyConsent      = "two_party_consent"
	RuleSOLExpired           = "sol_expired"
)

// defaultRules declares the regulatory checks in tie-break order. The cease
// and desist rule is first on purpose: when several block rules fail at once,
// its reason is the one surfaced to the agent.
func defaultRules(policy config.Policy) ([]Rule, error) {
	windowStart, err := parseClock(policy.CallWindowStart)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeCatalogConfig, "invalid call window start")
	}
	windowEnd, err := parseClock(policy.CallWindowEnd)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeCatalogConfig, "invalid call window end")
	}
	if windowStart >= windowEnd {
		return nil, dErrors.New(dErrors.CodeCatalogConfig, "call window start must precede end")
	}
	if policy.AttemptCap <= 0 {
		return nil, dErrors.New(dErrors.CodeCatalogConfig, "attempt cap must be positive")
	}

	return []Rule{
		{
			ID:       RuleCeaseAndDesist,
			Citation: "15 U.S.C. § 1692c(c)",
			Channels: domain.AllChannels,
			Severity: SeverityBlock,
			Evaluate: func(f facts.Facts) (bool, string) {
				if f.CeaseAndDesist {
					return false, "consumer has demanded that communication cease"
				}
				return true, ""
			},
		},
		{
			ID:       RuleLegalHold,
			Citation: "internal legal hold policy",
			Channels: domain.AllChannels,
			Severity: SeverityBlock,
			Evaluate: func(f facts.Facts) (bool, string) {
				if f.LegalHold {
					return false, "account is under an active legal hold"
				}
				return true, ""
			},
		},
		{
			ID:       RuleAttorneyRepresented,
			Citation: "15 U.S.C. § 1692c(a)(2)",
			Channels: domain.AllChannels,
			Severity: SeverityBlock,
			Evaluate: func(f facts.Facts) (bool, string) {
				if f.AttorneyRepresented {
					return false, "consumer is represented by an attorney with respect to the debt"
				}
				return true, ""
			},
		},
		{
			ID:       RuleConsentRevoked,
			Citation: "47 U.S.C. § 227(b)(1)",
			Channels: domain.AllChannels,
			Severity: SeverityBlock,
			Evaluate: func(f facts.Facts) (bool, string) {
				if f.ConsentFor(f.RequestedChannel).Status == facts.ConsentRevoked {
					return false, "consumer revoked consent for the " + f.RequestedChannel.String() + " channel"
				}
				return true, ""
			},
		},
		{
			ID:       RuleConsentExpired,
			Citation: "47 U.S.C. § 227(b)(1)",
			Channels: domain.AllChannels,
			Severity: SeverityBlock,
			Evaluate: func(f facts.Facts) (bool, string) {
				if f.ConsentFor(f.RequestedChannel).Status == facts.ConsentExpired {
					return false, "consent for the " + f.RequestedChannel.String() + " channel has expired and was not re-affirmed"
				}
				return true, ""
			},
		},
		{
			ID:       RuleDoNotCall,
			Citation: "47 C.F.R. § 64.1200(c)(2)",
			Channels: []domain.Channel{domain.ChannelVoice, domain.ChannelSMS},
			Severity: SeverityBlock,
			Evaluate: func(f facts.Facts) (bool, string) {
				if f.DNCListed {
					return false, "number is on a do-not-call or do-not-contact list"
				}
				return true, ""
			},
		},
		{
			ID:       RuleCallingHours,
			Citation: "15 U.S.C. § 1692c(a)(1)",
			Channels: []domain.Channel{domain.ChannelVoice, domain.ChannelSMS},
			Severity: SeverityBlock,
			Evaluate: func(f facts.Facts) (bool, string) {
				if f.IsUnresolved(facts.FactTimezone) {
					return false, "consumer local time could not be determined"
				}
				loc, err := time.LoadLocation(f.Timezone)
				if err != nil {
					return false, "consumer local time could not be determined"
				}
				local := f.ResolvedAt.In(loc)
				minutes := local.Hour()*60 + local.Minute()
				if minutes < windowStart || minutes >= windowEnd {
					return false, fmt.Sprintf("local time %s is outside the %s-%s contact window",
						local.Format("15:04"), policy.CallWindowStart, policy.CallWindowEnd)
				}
				return true, ""
			},
		},
		{
			ID:       RuleFrequencyCap,
			Citation: "12 C.F.R. § 1006.14(b)(2)(i)(A)",
			Channels: []domain.Channel{domain.ChannelVoice},
			Severity: SeverityBlock,
			Evaluate: func(f facts.Facts) (bool, string) {
				if f.IsUnresolved(facts.FactHistory) {
					return false, "recent attempt history could not be determined"
				}
				if f.History.Attempts7d >= policy.AttemptCap {
					return false, fmt.Sprintf("%d attempts in the trailing 7 days meets the cap of %d",
						f.History.Attempts7d, policy.AttemptCap)
				}
				return true, ""
			},
		},
		{
			ID:       RuleConversationCooldown,
			Citation: "12 C.F.R. § 1006.14(b)(2)(i)(B)",
			Channels: []domain.Channel{domain.ChannelVoice},
			Severity: SeverityBlock,
			Evaluate: func(f facts.Facts) (bool, string) {
				if f.IsUnresolved(facts.FactHistory) {
					return false, "recent conversation history could not be determined"
				}
				if f.History.Conversations7d > 0 {
					return false, "a connected conversation occurred within the trailing 7 days"
				}
				return true, ""
			},
		},
		{
			ID:       RuleTwoPartyConsent,
			Citation: "state wiretap statutes (e.g. Cal. Penal Code § 632)",
			Channels: []domain.Channel{domain.ChannelVoice},
			Severity: SeverityWarn,
			Evaluate: func(f facts.Facts) (bool, string) {
				if f.TwoPartyConsentState {
					return false, "jurisdiction requires all-party consent to record; give the recording disclosure at call start"
				}
				return true, ""
			},
		},
		{
			ID:       RuleSOLExpired,
			Citation: "state statutes of limitations on written contracts",
			Channels: domain.AllChannels,
			Severity: SeverityWarn,
			Evaluate: func(f facts.Facts) (bool, string) {
				if !f.SOLExpiresAt.IsZero() && !f.ResolvedAt.Before(f.SOLExpiresAt) {
					return false, "statute of limitations has expired; time-barred debt disclosure required"
				}
				return true, ""
			},
		},
	}, nil
}

// parseClock converts "HH:MM" to minutes since midnight.
func parseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("clock value %q must be HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("clock value %q has invalid hour", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock value %q has invalid minute", s)
	}
	return h*60 + m, nil
}
