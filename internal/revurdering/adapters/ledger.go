package adapters

import (
	"maps"
	"sync"

	"supstonad/internal/revurdering/ports"
	"supstonad/pkg/domain"
)

// Ledger is the in-process record of what has been paid per sak and month.
// LokalSimulator reads it and LokalUtbetaler writes it.
type Ledger struct {
	mu           sync.RWMutex
	utbetalt     map[domain.SakID]map[domain.Maned]int
	kvitteringer map[domain.RevurderingID]ports.UtbetalingKvittering
}

func NewLedger() *Ledger {
	return &Ledger{
		utbetalt:     make(map[domain.SakID]map[domain.Maned]int),
		kvitteringer: make(map[domain.RevurderingID]ports.UtbetalingKvittering),
	}
}

func (l *Ledger) Utbetalt(sakID domain.SakID, m domain.Maned) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.utbetalt[sakID][m]
}

// Registrer overwrites the paid amount for each given month.
func (l *Ledger) Registrer(sakID domain.SakID, belop map[domain.Maned]int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.registrer(sakID, belop)
}

func (l *Ledger) registrer(sakID domain.SakID, belop map[domain.Maned]int) {
	sak, ok := l.utbetalt[sakID]
	if !ok {
		sak = make(map[domain.Maned]int, len(belop))
		l.utbetalt[sakID] = sak
	}
	maps.Copy(sak, belop)
}
