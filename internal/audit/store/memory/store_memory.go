package memory

import (
	"context"
	"sync"
	"time"

	"contactgate/internal/audit"
	"contactgate/pkg/domain"
	"contactgate/pkg/platform/sentinel"
)

// Store keeps audit records in memory. Append-only; used in tests and local
// development.
type Store struct {
	mu      sync.RWMutex
	byID    map[domain.DecisionID]audit.Record
	ordered []audit.Record
}

func New() *Store {
	return &Store{byID: make(map[domain.DecisionID]audit.Record)}
}

func (s *Store) Append(_ context.Context, rec audit.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byID[rec.DecisionID]; exists {
		// Idempotent on decision id: a retried write is not a new record.
		return nil
	}
	s.byID[rec.DecisionID] = rec
	s.ordered = append(s.ordered, rec)
	return nil
}

func (s *Store) ListByAccount(_ context.Context, accountID domain.AccountID, from, to time.Time) ([]audit.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []audit.Record
	for _, rec := range s.ordered {
		if rec.AccountID != accountID {
			continue
		}
		if !from.IsZero() && rec.RequestedAt.Before(from) {
			continue
		}
		if !to.IsZero() && rec.RequestedAt.After(to) {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// Get returns one record by decision id.
func (s *Store) Get(_ context.Context, id domain.DecisionID) (audit.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.byID[id]
	if !ok {
		return audit.Record{}, sentinel.ErrNotFound
	}
	return rec, nil
}

// Len reports how many records have been appended. Test helper.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ordered)
}
