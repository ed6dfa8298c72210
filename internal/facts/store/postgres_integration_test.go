//go:build integration

package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"contactgate/internal/facts"
	"contactgate/pkg/domain"
	"contactgate/pkg/platform/sentinel"
	"contactgate/pkg/testutil/containers"
)

// The account and consent tables belong to the account subsystem; the test
// recreates the slice of its schema the snapshot reads touch.
const accountSchema = `
CREATE TABLE IF NOT EXISTS accounts (
	id                     UUID PRIMARY KEY,
	jurisdiction           TEXT NOT NULL,
	phone_number           TEXT NOT NULL DEFAULT '',
	cease_and_desist       BOOLEAN NOT NULL DEFAULT FALSE,
	legal_hold             BOOLEAN NOT NULL DEFAULT FALSE,
	attorney_represented   BOOLEAN NOT NULL DEFAULT FALSE,
	dispute_pending        BOOLEAN NOT NULL DEFAULT FALSE,
	validation_notice_sent BOOLEAN NOT NULL DEFAULT FALSE,
	charge_off_date        TIMESTAMPTZ,
	sol_expires_at         TIMESTAMPTZ
);
CREATE TABLE IF NOT EXISTS consent_events (
	id         BIGSERIAL PRIMARY KEY,
	account_id UUID NOT NULL,
	channel    TEXT NOT NULL,
	status     TEXT NOT NULL,
	basis      TEXT NOT NULL DEFAULT '',
	granted_at TIMESTAMPTZ,
	updated_at TIMESTAMPTZ NOT NULL
);
`

type PostgresAccountStoreSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	pool  *pgxpool.Pool
	store *PostgresAccountStore
}

func (s *PostgresAccountStoreSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())
	_, err := s.pg.DB.Exec(accountSchema)
	s.Require().NoError(err)

	s.pool, err = pgxpool.New(context.Background(), s.pg.URL)
	s.Require().NoError(err)
	s.T().Cleanup(s.pool.Close)

	s.store = NewPostgresAccountStore(s.pool)
}

func (s *PostgresAccountStoreSuite) SetupTest() {
	s.Require().NoError(s.pg.TruncateTables(context.Background(), "accounts", "consent_events"))
}

func (s *PostgresAccountStoreSuite) seedAccount(id domain.AccountID, chargeOff time.Time) {
	_, err := s.pg.DB.Exec(`
		INSERT INTO accounts (id, jurisdiction, phone_number, cease_and_desist, dispute_pending, charge_off_date)
		VALUES ($1, 'NY', '+12125550134', FALSE, TRUE, $2)`,
		id.String(), chargeOff)
	s.Require().NoError(err)
}

func (s *PostgresAccountStoreSuite) seedConsent(id domain.AccountID, channel, status string, updatedAt time.Time) {
	_, err := s.pg.DB.Exec(`
		INSERT INTO consent_events (account_id, channel, status, basis, granted_at, updated_at)
		VALUES ($1, $2, $3, 'written', $4, $4)`,
		id.String(), channel, status, updatedAt)
	s.Require().NoError(err)
}

func (s *PostgresAccountStoreSuite) TestGetAccountSnapshot() {
	ctx := context.Background()
	id := domain.AccountID(uuid.New())
	chargeOff := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	s.seedAccount(id, chargeOff)
	s.seedConsent(id, "voice", "granted", time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC))

	snap, err := s.store.GetAccountSnapshot(ctx, id)
	s.Require().NoError(err)

	s.Equal(id, snap.AccountID)
	s.Equal("NY", snap.Jurisdiction)
	s.Equal("+12125550134", snap.PhoneNumber)
	s.True(snap.DisputePending)
	s.False(snap.CeaseAndDesist)
	s.True(chargeOff.Equal(snap.ChargeOffDate))
	s.True(snap.SOLExpiresAt.IsZero())
	s.Equal(facts.ConsentGranted, snap.Consent[domain.ChannelVoice].Status)
	s.Equal("written", snap.Consent[domain.ChannelVoice].Basis)
}

func (s *PostgresAccountStoreSuite) TestLatestConsentEventWinsPerChannel() {
	ctx := context.Background()
	id := domain.AccountID(uuid.New())
	s.seedAccount(id, time.Time{})

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.seedConsent(id, "sms", "granted", base)
	s.seedConsent(id, "sms", "revoked", base.AddDate(0, 3, 0))
	s.seedConsent(id, "voice", "granted", base)

	snap, err := s.store.GetAccountSnapshot(ctx, id)
	s.Require().NoError(err)

	s.Equal(facts.ConsentRevoked, snap.Consent[domain.ChannelSMS].Status)
	s.Equal(facts.ConsentGranted, snap.Consent[domain.ChannelVoice].Status)
}

func (s *PostgresAccountStoreSuite) TestUnknownChannelRowsAreSkipped() {
	ctx := context.Background()
	id := domain.AccountID(uuid.New())
	s.seedAccount(id, time.Time{})
	s.seedConsent(id, "fax", "granted", time.Now().UTC())

	snap, err := s.store.GetAccountSnapshot(ctx, id)
	s.Require().NoError(err)
	s.Empty(snap.Consent)
}

func (s *PostgresAccountStoreSuite) TestAccountNotFound() {
	_, err := s.store.GetAccountSnapshot(context.Background(), domain.AccountID(uuid.New()))
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func TestPostgresAccountStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresAccountStoreSuite))
}
