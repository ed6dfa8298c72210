package store

import (
	"context"
	"sync"

	"contactgate/internal/facts"
	"contactgate/pkg/domain"
	"contactgate/pkg/platform/sentinel"
)

// InMemoryAccountStore serves account snapshots from a map. Used in tests and
// local development; production reads the account subsystem's Postgres
// replica via PostgresAccountStore.
type InMemoryAccountStore struct {
	mu       sync.RWMutex
	accounts map[domain.AccountID]facts.AccountSnapshot
}

func NewInMemoryAccountStore() *InMemoryAccountStore {
	return &InMemoryAccountStore{accounts: make(map[domain.AccountID]facts.AccountSnapshot)}
}

// Put seeds or replaces a snapshot.
func (s *InMemoryAccountStore) Put(snap facts.AccountSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[snap.AccountID] = snap
}

func (s *InMemoryAccountStore) GetAccountSnapshot(_ context.Context, id domain.AccountID) (*facts.AccountSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.accounts[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	// Copy the consent map so callers cannot mutate the stored snapshot.
	out := snap
	out.Consent = make(map[domain.Channel]facts.ConsentRecord, len(snap.Consent))
	for ch, rec := range snap.Consent {
		out.Consent[ch] = rec
	}
	return &out, nil
}
