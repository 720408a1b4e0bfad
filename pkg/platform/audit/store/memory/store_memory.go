package memory

import (
	"context"
	"slices"
	"sync"

	"supstonad/pkg/domain"
	audit "supstonad/pkg/platform/audit"
)

// InMemoryStore keeps the audit trail per sak for local runs and tests.
type InMemoryStore struct {
	mu     sync.RWMutex
	events map[domain.SakID][]audit.Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{events: make(map[domain.SakID][]audit.Event)}
}

func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	event.Category = audit.AuditEvent(event.Action).Category()
	s.events[event.SakID] = append(s.events[event.SakID], event)
	return nil
}

// ListBySak returns the sak's events oldest first. Events with equal
// timestamps keep their append order.
func (s *InMemoryStore) ListBySak(_ context.Context, sakID domain.SakID) ([]audit.Event, error) {
	s.mu.RLock()
	out := slices.Clone(s.events[sakID])
	s.mu.RUnlock()
	slices.SortStableFunc(out, func(a, b audit.Event) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	if out == nil {
		out = []audit.Event{}
	}
	return out, nil
}
