package store

import (
	"context"
	"sync"

	"supstonad/internal/avkorting"
	"supstonad/internal/simulering"
	"supstonad/pkg/domain"
	"supstonad/pkg/platform/sentinel"
)

// InMemoryStore keeps varsler in a map. Each write is atomic.
type InMemoryStore struct {
	mu      sync.RWMutex
	varsler map[domain.AvkortingsvarselID]avkorting.Avkortingsvarsel
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{varsler: make(map[domain.AvkortingsvarselID]avkorting.Avkortingsvarsel)}
}

func (s *InMemoryStore) Lagre(_ context.Context, v avkorting.Avkortingsvarsel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.konflikt(v, nil) {
		return sentinel.ErrConflict
	}
	s.varsler[v.ID] = clone(v)
	return nil
}

// Erstatt checks both writes before applying either.
func (s *InMemoryStore) Erstatt(_ context.Context, annulleres, opprettes *avkorting.Avkortingsvarsel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if annulleres != nil && s.konflikt(*annulleres, nil) {
		return sentinel.ErrConflict
	}
	if opprettes != nil && s.konflikt(*opprettes, annulleres) {
		return sentinel.ErrConflict
	}
	if annulleres != nil {
		s.varsler[annulleres.ID] = clone(*annulleres)
	}
	if opprettes != nil {
		s.varsler[opprettes.ID] = clone(*opprettes)
	}
	return nil
}

// konflikt reports whether v would be a second outstanding varsel on its
// sak. erstattet, when set, is read in its new state.
func (s *InMemoryStore) konflikt(v avkorting.Avkortingsvarsel, erstattet *avkorting.Avkortingsvarsel) bool {
	if !v.ErUtestaende() {
		return false
	}
	for id, existing := range s.varsler {
		if erstattet != nil && id == erstattet.ID {
			existing = *erstattet
		}
		if id != v.ID && existing.SakID == v.SakID && existing.ErUtestaende() {
			return true
		}
	}
	return false
}

func (s *InMemoryStore) Hent(_ context.Context, id domain.AvkortingsvarselID) (*avkorting.Avkortingsvarsel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.varsler[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	v = clone(v)
	return &v, nil
}

func (s *InMemoryStore) HentUtestaende(_ context.Context, sakID domain.SakID) (*avkorting.Avkortingsvarsel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, v := range s.varsler {
		if v.SakID == sakID && v.ErUtestaende() {
			v = clone(v)
			return &v, nil
		}
	}
	return nil, nil
}

func clone(v avkorting.Avkortingsvarsel) avkorting.Avkortingsvarsel {
	v.Feilutbetaling = append(simulering.ManedBelopListe(nil), v.Feilutbetaling...)
	return v
}
