package adapters

import (
	"context"
	"time"

	"supstonad/internal/beregning"
	"supstonad/internal/revurdering/ports"
	"supstonad/internal/simulering"
	"supstonad/pkg/domain"
	dErrors "supstonad/pkg/domain-errors"
)

// LokalSimulator compares a beregning with the ledger. Months that have
// already been paid produce a feilutbetaling when the new amount is lower
// and an etterbetaling when it is higher.
type LokalSimulator struct {
	ledger *Ledger
	now    func() time.Time
}

func NewLokalSimulator(ledger *Ledger, now func() time.Time) *LokalSimulator {
	if now == nil {
		now = time.Now
	}
	return &LokalSimulator{ledger: ledger, now: now}
}

func (s *LokalSimulator) SimulerUtbetaling(_ context.Context, req ports.SimuleringRequest) (*simulering.Simulering, error) {
	return s.simuler(req, domain.Maned{})
}

func (s *LokalSimulator) SimulerOpphor(_ context.Context, req ports.SimuleringRequest) (*simulering.Simulering, error) {
	if req.Opphorsdato.IsZero() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "opphørsdato mangler")
	}
	return s.simuler(req, req.Opphorsdato)
}

func (s *LokalSimulator) simuler(req ports.SimuleringRequest, opphorFra domain.Maned) (*simulering.Simulering, error) {
	if req.Beregning == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "beregning mangler")
	}
	now := s.now()
	denneManed := domain.ManedFra(now)

	res := &simulering.Simulering{Gjelder: req.Fnr, Opprettet: now, Periode: req.Periode}
	for _, m := range req.Periode.Maneder() {
		sm := simulering.SimulertManed{
			Maned:             m,
			TidligereUtbetalt: s.ledger.Utbetalt(req.SakID, m),
			NyUtbetaling:      nyUtbetaling(req.Beregning, m, opphorFra),
		}
		if !m.After(denneManed) {
			diff := sm.NyUtbetaling - sm.TidligereUtbetalt
			switch {
			case diff < 0:
				sm.Feilutbetaling = -diff
			case diff > 0:
				sm.Etterbetaling = diff
			}
		}
		res.Maneder = append(res.Maneder, sm)
	}
	return res, nil
}

// nyUtbetaling is zero from opphorFra and for months with a terminating
// merknad.
func nyUtbetaling(b *beregning.Beregning, m, opphorFra domain.Maned) int {
	if !opphorFra.IsZero() && !m.Before(opphorFra) {
		return 0
	}
	mb, ok := b.Maned(m)
	if !ok || len(mb.Merknader) > 0 {
		return 0
	}
	return mb.Belop
}
