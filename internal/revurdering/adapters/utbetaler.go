package adapters

import (
	"context"
	"time"

	"supstonad/internal/revurdering/ports"
	"supstonad/pkg/domain"
	dErrors "supstonad/pkg/domain-errors"
)

// LokalUtbetaler writes the new amounts to the ledger. A revurdering is paid
// at most once; repeated calls return the first kvittering.
type LokalUtbetaler struct {
	ledger *Ledger
	now    func() time.Time
}

func NewLokalUtbetaler(ledger *Ledger, now func() time.Time) *LokalUtbetaler {
	if now == nil {
		now = time.Now
	}
	return &LokalUtbetaler{ledger: ledger, now: now}
}

func (u *LokalUtbetaler) Iverksett(_ context.Context, req ports.UtbetalingRequest) (*ports.UtbetalingKvittering, error) {
	if req.Beregning == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "beregning mangler")
	}

	u.ledger.mu.Lock()
	defer u.ledger.mu.Unlock()
	if k, ok := u.ledger.kvitteringer[req.RevurderingID]; ok {
		return &k, nil
	}

	belop := make(map[domain.Maned]int, len(req.Beregning.Maneder))
	for _, m := range req.Beregning.Periode.Maneder() {
		belop[m] = nyUtbetaling(req.Beregning, m, req.Opphorsdato)
	}
	u.ledger.registrer(req.SakID, belop)

	k := ports.UtbetalingKvittering{UtbetalingID: domain.NewUtbetalingID(), Sendt: u.now()}
	u.ledger.kvitteringer[req.RevurderingID] = k
	return &k, nil
}
