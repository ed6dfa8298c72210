package facts

import (
	"context"
	"time"

	"contactgate/pkg/domain"
)

//go:generate mockgen -source=ports.go -destination=mocks/ports_mock.go -package=mocks

// AccountStore is the read-only snapshot interface owned by the account and
// consent subsystem.
type AccountStore interface {
	GetAccountSnapshot(ctx context.Context, id domain.AccountID) (*AccountSnapshot, error)
}

// ContactHistory exposes trailing-window counts of outbound attempts and
// connected conversations, and accepts attempt recordings so the next
// evaluation for the same account observes this one.
type ContactHistory interface {
	Counts(ctx context.Context, id domain.AccountID, now time.Time) (HistoryCounts, error)
	RecordAttempt(ctx context.Context, id domain.AccountID, ch domain.Channel, at time.Time) error
}

// DNCRegistry is the external do-not-call lookup. Callers must treat a lookup
// error as listed.
type DNCRegistry interface {
	IsListed(ctx context.Context, phoneNumber string) (bool, error)
}
