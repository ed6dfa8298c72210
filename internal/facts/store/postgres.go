package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"contactgate/internal/facts"
	"contactgate/pkg/domain"
	"contactgate/pkg/platform/sentinel"
)

// PostgresAccountStore reads account snapshots from the account subsystem's
// replica. The gate never writes to these tables.
type PostgresAccountStore struct {
	pool *pgxpool.Pool
}

func NewPostgresAccountStore(pool *pgxpool.Pool) *PostgresAccountStore {
	return &PostgresAccountStore{pool: pool}
}

const accountQuery = `
	SELECT jurisdiction, phone_number, cease_and_desist, legal_hold,
	       attorney_represented, dispute_pending, validation_notice_sent,
	       charge_off_date, sol_expires_at
	FROM accounts
	WHERE id = $1
`

const consentQuery = `
	SELECT DISTINCT ON (channel) channel, status, basis, granted_at, updated_at
	FROM consent_events
	WHERE account_id = $1
	ORDER BY channel, updated_at DESC
`

func (s *PostgresAccountStore) GetAccountSnapshot(ctx context.Context, id domain.AccountID) (*facts.AccountSnapshot, error) {
	snap := facts.AccountSnapshot{
		AccountID: id,
		Consent:   make(map[domain.Channel]facts.ConsentRecord),
	}

	var chargeOff, solExpires *time.Time
	err := s.pool.QueryRow(ctx, accountQuery, id.String()).Scan(
		&snap.Jurisdiction,
		&snap.PhoneNumber,
		&snap.CeaseAndDesist,
		&snap.LegalHold,
		&snap.AttorneyRepresented,
		&snap.DisputePending,
		&snap.ValidationNoticeSent,
		&chargeOff,
		&solExpires,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("query account: %w", err)
	}
	if chargeOff != nil {
		snap.ChargeOffDate = *chargeOff
	}
	if solExpires != nil {
		snap.SOLExpiresAt = *solExpires
	}

	rows, err := s.pool.Query(ctx, consentQuery, id.String())
	if err != nil {
		return nil, fmt.Errorf("query consent events: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var ch string
		var rec facts.ConsentRecord
		var grantedAt *time.Time
		if err := rows.Scan(&ch, &rec.Status, &rec.Basis, &grantedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan consent event: %w", err)
		}
		if grantedAt != nil {
			rec.GrantedAt = *grantedAt
		}
		channel, chErr := domain.ParseChannel(ch)
		if chErr != nil {
			continue
		}
		snap.Consent[channel] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate consent events: %w", err)
	}

	return &snap, nil
}
