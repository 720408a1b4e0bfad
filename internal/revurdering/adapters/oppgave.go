package adapters

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"supstonad/internal/revurdering/ports"
	"supstonad/pkg/domain"
	"supstonad/pkg/platform/sentinel"
)

type oppgave struct {
	ports.OppgaveRequest
	Type string
	Apen bool
}

// LokalOppgave keeps work items in memory.
type LokalOppgave struct {
	mu       sync.Mutex
	oppgaver map[domain.OppgaveID]*oppgave
}

func NewLokalOppgave() *LokalOppgave {
	return &LokalOppgave{oppgaver: make(map[domain.OppgaveID]*oppgave)}
}

func (o *LokalOppgave) OpprettAttestering(_ context.Context, req ports.OppgaveRequest) (domain.OppgaveID, error) {
	return o.opprett("ATTESTERING", req), nil
}

func (o *LokalOppgave) OpprettSaksbehandling(_ context.Context, req ports.OppgaveRequest) (domain.OppgaveID, error) {
	return o.opprett("SAKSBEHANDLING", req), nil
}

func (o *LokalOppgave) Lukk(_ context.Context, id domain.OppgaveID) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	opg, ok := o.oppgaver[id]
	if !ok {
		return fmt.Errorf("oppgave %s: %w", id, sentinel.ErrNotFound)
	}
	opg.Apen = false
	return nil
}

// Apne returns the number of open work items.
func (o *LokalOppgave) Apne() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	n := 0
	for _, opg := range o.oppgaver {
		if opg.Apen {
			n++
		}
	}
	return n
}

func (o *LokalOppgave) opprett(typ string, req ports.OppgaveRequest) domain.OppgaveID {
	id := domain.OppgaveID(uuid.NewString())
	o.mu.Lock()
	o.oppgaver[id] = &oppgave{OppgaveRequest: req, Type: typ, Apen: true}
	o.mu.Unlock()
	return id
}
