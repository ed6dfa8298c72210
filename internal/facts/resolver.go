package facts

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"contactgate/internal/jurisdiction"
	"contactgate/pkg/domain"
	dErrors "contactgate/pkg/domain-errors"
	"contactgate/pkg/platform/sentinel"
)

// Resolver assembles the frozen Facts snapshot for one account/channel pair.
// It is the only component that touches the account store, the history
// counters, and the DNC registry; rules never do their own I/O.
type Resolver struct {
	accounts AccountStore
	history  ContactHistory
	dnc      DNCRegistry
	timeout  time.Duration
	logger   *slog.Logger
}

// Option configures the Resolver.
type Option func(*Resolver)

// WithLogger sets a logger for degraded-lookup reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) { r.logger = logger }
}

// WithTimeout bounds the whole resolution. Default 300ms.
func WithTimeout(d time.Duration) Option {
	return func(r *Resolver) { r.timeout = d }
}

// NewResolver constructs a Resolver over its three fact sources.
func NewResolver(accounts AccountStore, history ContactHistory, dnc DNCRegistry, opts ...Option) *Resolver {
	r := &Resolver{
		accounts: accounts,
		history:  history,
		dnc:      dnc,
		timeout:  300 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve loads the minimal fact set for one evaluation.
//
// Fail-closed contract:
//   - missing account or unknown jurisdiction → CodeFactUnresolvable error
//   - deadline exceeded → CodeTimeout error
//   - DNC lookup failure, or no phone number on file for a telephony
//     channel → DNCListed=true fact, no error
//   - history lookup failure → FactHistory marked unresolved, no error; the
//     frequency rules fail closed on it
func (r *Resolver) Resolve(ctx context.Context, accountID domain.AccountID, ch domain.Channel, now time.Time) (Facts, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	snap, err := r.accounts.GetAccountSnapshot(ctx, accountID)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return Facts{}, dErrors.Wrap(err, dErrors.CodeTimeout, "account snapshot timed out")
		}
		if errors.Is(err, sentinel.ErrNotFound) {
			return Facts{}, dErrors.Wrap(err, dErrors.CodeFactUnresolvable, "account not found")
		}
		return Facts{}, dErrors.Wrap(err, dErrors.CodeFactUnresolvable, "account snapshot unavailable")
	}
	if !jurisdiction.IsKnown(snap.Jurisdiction) {
		return Facts{}, dErrors.New(dErrors.CodeFactUnresolvable, "jurisdiction unknown for account")
	}

	f := Facts{
		AccountID:            accountID,
		RequestedChannel:     ch,
		Jurisdiction:         snap.Jurisdiction,
		Timezone:             jurisdiction.Timezone(snap.Jurisdiction),
		Consent:              snap.Consent,
		CeaseAndDesist:       snap.CeaseAndDesist,
		LegalHold:            snap.LegalHold,
		AttorneyRepresented:  snap.AttorneyRepresented,
		DisputePending:       snap.DisputePending,
		ValidationNoticeSent: snap.ValidationNoticeSent,
		TwoPartyConsentState: jurisdiction.RequiresTwoPartyConsent(snap.Jurisdiction),
		SOLExpiresAt:         snap.SOLExpiresAt,
		ResolvedAt:           now,
	}
	if f.Consent == nil {
		f.Consent = map[domain.Channel]ConsentRecord{}
	}
	if f.SOLExpiresAt.IsZero() {
		f.SOLExpiresAt = jurisdiction.SOLExpiry(snap.Jurisdiction, snap.ChargeOffDate)
	}
	if f.Timezone == "" {
		f.Unresolved = append(f.Unresolved, FactTimezone)
	}

	// History and DNC lookups are independent once the snapshot is in hand.
	g, gctx := errgroup.WithContext(ctx)

	var counts HistoryCounts
	var historyFailed bool
	g.Go(func() error {
		c, err := r.history.Counts(gctx, accountID, now)
		if err != nil {
			historyFailed = true
			if r.logger != nil {
				r.logger.WarnContext(gctx, "contact history unavailable, failing closed",
					"account_id", accountID,
					"error", err,
				)
			}
			return nil
		}
		counts = c
		return nil
	})

	var dncListed bool
	g.Go(func() error {
		if ch == domain.ChannelEmail {
			return nil
		}
		if snap.PhoneNumber == "" {
			// A telephony attempt with no number on file cannot be screened
			// against the registry. Treat as listed.
			dncListed = true
			if r.logger != nil {
				r.logger.WarnContext(gctx, "no phone number on file, treating as listed",
					"account_id", accountID,
				)
			}
			return nil
		}
		listed, err := r.dnc.IsListed(gctx, snap.PhoneNumber)
		if err != nil {
			// Lookup failure counts as listed.
			dncListed = true
			if r.logger != nil {
				r.logger.WarnContext(gctx, "dnc lookup failed, treating as listed",
					"account_id", accountID,
					"error", err,
				)
			}
			return nil
		}
		dncListed = listed
		return nil
	})

	if err := g.Wait(); err != nil {
		return Facts{}, dErrors.Wrap(err, dErrors.CodeFactUnresolvable, "fact gathering failed")
	}
	if err := ctx.Err(); err != nil {
		return Facts{}, dErrors.Wrap(err, dErrors.CodeTimeout, "fact resolution timed out")
	}

	f.History = counts
	f.DNCListed = dncListed
	if historyFailed {
		f.Unresolved = append(f.Unresolved, FactHistory)
	}
	return f, nil
}
