package store

import (
	"context"
	"slices"
	"sync"

	"supstonad/internal/revurdering"
	"supstonad/pkg/domain"
	"supstonad/pkg/platform/sentinel"
)

// InMemoryStore keeps snapshots so callers never share state with the store.
type InMemoryStore struct {
	mu            sync.RWMutex
	revurderinger map[domain.RevurderingID]revurdering.Snapshot
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{revurderinger: make(map[domain.RevurderingID]revurdering.Snapshot)}
}

func (s *InMemoryStore) Lagre(_ context.Context, r revurdering.Revurdering) error {
	snapshot := revurdering.TilSnapshot(r)
	f := r.Behandling()

	s.mu.Lock()
	defer s.mu.Unlock()
	if revurdering.ErApen(r) {
		for id, existing := range s.revurderinger {
			if id != f.ID && existing.Felles.SakID == f.SakID && erApen(existing) {
				return sentinel.ErrConflict
			}
		}
	}
	s.revurderinger[f.ID] = snapshot
	return nil
}

func (s *InMemoryStore) Hent(_ context.Context, id domain.RevurderingID) (revurdering.Revurdering, error) {
	s.mu.RLock()
	snapshot, ok := s.revurderinger[id]
	s.mu.RUnlock()
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return revurdering.FraSnapshot(snapshot)
}

func (s *InMemoryStore) HentForSak(_ context.Context, sakID domain.SakID) ([]revurdering.Revurdering, error) {
	s.mu.RLock()
	var snapshots []revurdering.Snapshot
	for _, snapshot := range s.revurderinger {
		if snapshot.Felles.SakID == sakID {
			snapshots = append(snapshots, snapshot)
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(snapshots, func(a, b revurdering.Snapshot) int {
		return a.Felles.Opprettet.Compare(b.Felles.Opprettet)
	})
	out := make([]revurdering.Revurdering, 0, len(snapshots))
	for _, snapshot := range snapshots {
		r, err := revurdering.FraSnapshot(snapshot)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *InMemoryStore) HentApen(_ context.Context, sakID domain.SakID) (revurdering.Revurdering, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, snapshot := range s.revurderinger {
		if snapshot.Felles.SakID == sakID && erApen(snapshot) {
			return revurdering.FraSnapshot(snapshot)
		}
	}
	return nil, nil
}

func erApen(s revurdering.Snapshot) bool {
	switch s.Tilstand {
	case revurdering.TilstandIverksattInnvilget, revurdering.TilstandIverksattOpphort, revurdering.TilstandAvsluttet:
		return false
	}
	return true
}
