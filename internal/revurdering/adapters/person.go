package adapters

import (
	"context"
	"fmt"
	"sync"

	"supstonad/pkg/domain"
	"supstonad/pkg/platform/sentinel"
)

// LokalPerson resolves aktør-IDs from a registered table.
type LokalPerson struct {
	mu      sync.RWMutex
	aktorer map[domain.Fnr]domain.AktorID
}

func NewLokalPerson() *LokalPerson {
	return &LokalPerson{aktorer: make(map[domain.Fnr]domain.AktorID)}
}

func (p *LokalPerson) Registrer(fnr domain.Fnr, aktorID domain.AktorID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.aktorer[fnr] = aktorID
}

func (p *LokalPerson) HentAktorID(_ context.Context, fnr domain.Fnr) (domain.AktorID, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	id, ok := p.aktorer[fnr]
	if !ok {
		return "", fmt.Errorf("aktør for fnr: %w", sentinel.ErrNotFound)
	}
	return id, nil
}
