// Package history tracks outbound contact events in trailing windows. The
// frequency-cap and conversation-cooldown rules read these counts; the gate
// records each permitted attempt so the next evaluation for the same account
// observes it.
package history

import (
	"context"
	"sync"
	"time"

	"contactgate/internal/facts"
	"contactgate/pkg/domain"
)

const (
	shortWindow = 7 * 24 * time.Hour
	longWindow  = 60 * 24 * time.Hour
)

type event struct {
	at        time.Time
	channel   domain.Channel
	connected bool
}

// InMemoryStore keeps per-account event timestamps in a sliding window.
// Single-process only; production uses RedisStore.
type InMemoryStore struct {
	mu     sync.RWMutex
	events map[domain.AccountID][]event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{events: make(map[domain.AccountID][]event)}
}

func (s *InMemoryStore) RecordAttempt(_ context.Context, id domain.AccountID, ch domain.Channel, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[id] = append(s.events[id], event{at: at, channel: ch})
	return nil
}

// RecordConversation notes a connected outbound call. The dialer reports
// these after call completion.
func (s *InMemoryStore) RecordConversation(_ context.Context, id domain.AccountID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[id] = append(s.events[id], event{at: at, channel: domain.ChannelVoice, connected: true})
	return nil
}

func (s *InMemoryStore) Counts(_ context.Context, id domain.AccountID, now time.Time) (facts.HistoryCounts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	evs := s.prune(id, now)
	var counts facts.HistoryCounts
	shortCutoff := now.Add(-shortWindow)
	for _, e := range evs {
		if e.connected {
			if e.at.After(shortCutoff) {
				counts.Conversations7d++
			}
			continue
		}
		counts.Attempts60d++
		if e.at.After(shortCutoff) {
			counts.Attempts7d++
		}
	}
	return counts, nil
}

// prune drops events older than the long window. Must be called holding mu.
func (s *InMemoryStore) prune(id domain.AccountID, now time.Time) []event {
	cutoff := now.Add(-longWindow)
	evs := s.events[id]
	i := 0
	for ; i < len(evs); i++ {
		if evs[i].at.After(cutoff) {
			break
		}
	}
	evs = evs[i:]
	s.events[id] = evs
	return evs
}
