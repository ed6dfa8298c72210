package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"contactgate/internal/audit"
	"contactgate/internal/engine"
	"contactgate/internal/facts"
	"contactgate/pkg/domain"
)

// Store persists audit records in PostgreSQL. The facts snapshot and rule
// outcomes are stored as JSONB so the schema survives catalog evolution;
// the queryable columns (account, channel, time, verdict) are first-class.
type Store struct {
	db *sql.DB
}

// New creates a PostgreSQL audit store.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Schema is the DDL for the audit table. Migrations own applying it;
// integration tests execute it directly.
const Schema = `
CREATE TABLE IF NOT EXISTS audit_records (
	decision_id  UUID PRIMARY KEY,
	account_id   UUID NOT NULL,
	channel      TEXT NOT NULL,
	actor_id     TEXT NOT NULL DEFAULT '',
	requested_at TIMESTAMPTZ NOT NULL,
	allowed      BOOLEAN NOT NULL,
	blocked_by   TEXT NOT NULL DEFAULT '',
	facts        JSONB NOT NULL,
	outcomes     JSONB NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS audit_records_account_time
	ON audit_records (account_id, requested_at);
`

// Append inserts one record. ON CONFLICT DO NOTHING keeps retried writes
// idempotent on the decision id.
func (s *Store) Append(ctx context.Context, rec audit.Record) error {
	factsJSON, err := json.Marshal(rec.Facts)
	if err != nil {
		return fmt.Errorf("marshal facts snapshot: %w", err)
	}
	outcomesJSON, err := json.Marshal(rec.Outcomes)
	if err != nil {
		return fmt.Errorf("marshal rule outcomes: %w", err)
	}

	query := `
		INSERT INTO audit_records (
			decision_id, account_id, channel, actor_id, requested_at,
			allowed, blocked_by, facts, outcomes, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (decision_id) DO NOTHING
	`
	_, err = s.db.ExecContext(ctx, query,
		rec.DecisionID.String(),
		rec.AccountID.String(),
		rec.Channel.String(),
		rec.ActorID,
		rec.RequestedAt,
		rec.Allowed,
		rec.BlockedBy,
		factsJSON,
		outcomesJSON,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit record: %w", err)
	}
	return nil
}

// ListByAccount returns records for one account within [from, to], oldest
// first. Zero bounds are open-ended.
func (s *Store) ListByAccount(ctx context.Context, accountID domain.AccountID, from, to time.Time) ([]audit.Record, error) {
	if from.IsZero() {
		from = time.Unix(0, 0)
	}
	if to.IsZero() {
		to = time.Now()
	}

	query := `
		SELECT decision_id, account_id, channel, actor_id, requested_at,
		       allowed, blocked_by, facts, outcomes, created_at
		FROM audit_records
		WHERE account_id = $1 AND requested_at BETWEEN $2 AND $3
		ORDER BY requested_at ASC
	`
	rows, err := s.db.QueryContext(ctx, query, accountID.String(), from, to)
	if err != nil {
		return nil, fmt.Errorf("query audit records: %w", err)
	}
	defer rows.Close()

	var out []audit.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit records: %w", err)
	}
	return out, nil
}

func scanRecord(rows *sql.Rows) (audit.Record, error) {
	var rec audit.Record
	var decisionID, accountID, channel string
	var factsJSON, outcomesJSON []byte
	if err := rows.Scan(
		&decisionID, &accountID, &channel, &rec.ActorID, &rec.RequestedAt,
		&rec.Allowed, &rec.BlockedBy, &factsJSON, &outcomesJSON, &rec.CreatedAt,
	); err != nil {
		return audit.Record{}, fmt.Errorf("scan audit record: %w", err)
	}

	did, err := domain.ParseDecisionID(decisionID)
	if err != nil {
		return audit.Record{}, fmt.Errorf("parse stored decision id: %w", err)
	}
	aid, err := domain.ParseAccountID(accountID)
	if err != nil {
		return audit.Record{}, fmt.Errorf("parse stored account id: %w", err)
	}
	rec.DecisionID = did
	rec.AccountID = aid
	rec.Channel = domain.Channel(channel)

	var snapshot facts.Facts
	if err := json.Unmarshal(factsJSON, &snapshot); err != nil {
		return audit.Record{}, fmt.Errorf("unmarshal facts snapshot: %w", err)
	}
	rec.Facts = snapshot

	var outcomes []engine.RuleOutcome
	if err := json.Unmarshal(outcomesJSON, &outcomes); err != nil {
		return audit.Record{}, fmt.Errorf("unmarshal rule outcomes: %w", err)
	}
	rec.Outcomes = outcomes
	return rec, nil
}
