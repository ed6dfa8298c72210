package sink

import (
	"context"
	"sync"

	"contactgate/internal/obligation"
)

// Memory collects obligations in a slice. Used in tests and local
// development.
type Memory struct {
	mu    sync.Mutex
	items []obligation.Obligation
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Enqueue(_ context.Context, ob obligation.Obligation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, ob)
	return nil
}

// Drain returns and clears everything enqueued so far.
func (m *Memory) Drain() []obligation.Obligation {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.items
	m.items = nil
	return out
}
