// Package obligation derives follow-on obligations from decisions. Derivation
// is a pure function; emission to the external scheduler happens in the sink.
package obligation

import (
	"time"

	"contactgate/internal/engine"
	"contactgate/internal/facts"
	"contactgate/internal/platform/config"
	"contactgate/pkg/domain"
)

// Scheduler maps decision shapes to obligations using policy durations.
type Scheduler struct {
	policy config.Policy
}

// NewScheduler constructs a Scheduler.
func NewScheduler(policy config.Policy) *Scheduler {
	return &Scheduler{policy: policy}
}

// Derive computes the obligations triggered by one decision. Pure: no I/O,
// no clock reads beyond the supplied now.
func (s *Scheduler) Derive(d engine.Decision, f facts.Facts, now time.Time) []Obligation {
	var out []Obligation

	// First permitted contact to an account that has never received a
	// validation notice starts the notice clock.
	if d.Allowed && !f.ValidationNoticeSent && f.History.Attempts60d == 0 {
		out = append(out, Obligation{
			ID:         domain.NewObligationID(),
			Kind:       KindValidationNotice,
			AccountID:  f.AccountID,
			DecisionID: d.ID,
			DueAt:      now.Add(s.policy.ValidationNoticeDue),
			CreatedAt:  now,
		})
	}

	// A permitted SMS contact riding on granted consent schedules the
	// re-confirmation before that consent goes stale.
	if d.Allowed && f.RequestedChannel == domain.ChannelSMS {
		if rec := f.ConsentFor(domain.ChannelSMS); rec.Status == facts.ConsentGranted {
			due := now.Add(s.policy.SMSConsentReconfirmIn)
			if !rec.GrantedAt.IsZero() {
				if fromGrant := rec.GrantedAt.Add(s.policy.SMSConsentReconfirmIn); fromGrant.After(now) {
					due = fromGrant
				}
			}
			out = append(out, Obligation{
				ID:         domain.NewObligationID(),
				Kind:       KindSMSConsentReconfirm,
				AccountID:  f.AccountID,
				DecisionID: d.ID,
				Channel:    domain.ChannelSMS,
				DueAt:      due,
				CreatedAt:  now,
			})
		}
	}

	// A pending dispute pauses the account. The hold is applied by the
	// account subsystem and shows up as a legal-hold fact next evaluation.
	if f.DisputePending && !f.LegalHold {
		out = append(out, Obligation{
			ID:         domain.NewObligationID(),
			Kind:       KindPlaceLegalHold,
			AccountID:  f.AccountID,
			DecisionID: d.ID,
			DueAt:      now,
			CreatedAt:  now,
		})
	}

	return out
}
