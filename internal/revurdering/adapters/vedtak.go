package adapters

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"supstonad/internal/beregning"
	"supstonad/internal/revurdering"
	"supstonad/pkg/domain"
	"supstonad/pkg/platform/sentinel"
)

type gjeldende struct {
	periode domain.Periode
	data    revurdering.Vedtaksdata
}

// LokalVedtak holds one gjeldende vedtak per sak.
type LokalVedtak struct {
	mu     sync.RWMutex
	vedtak map[domain.SakID]gjeldende
}

func NewLokalVedtak() *LokalVedtak {
	return &LokalVedtak{vedtak: make(map[domain.SakID]gjeldende)}
}

func (v *LokalVedtak) Registrer(sakID domain.SakID, periode domain.Periode, data revurdering.Vedtaksdata) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.vedtak[sakID] = gjeldende{periode: periode, data: data}
}

func (v *LokalVedtak) HentGjeldendeVedtaksdata(_ context.Context, sakID domain.SakID, periode domain.Periode) (revurdering.Vedtaksdata, error) {
	v.mu.RLock()
	g, ok := v.vedtak[sakID]
	v.mu.RUnlock()
	if !ok {
		return revurdering.Vedtaksdata{}, fmt.Errorf("vedtak for sak %s: %w", sakID, sentinel.ErrNotFound)
	}
	if !g.periode.InneholderPeriode(periode) {
		return revurdering.Vedtaksdata{}, fmt.Errorf("ingen gjeldende vedtak for %s: %w", periode, sentinel.ErrNotFound)
	}

	data := g.data
	data.Maneder = slices.DeleteFunc(slices.Clone(g.data.Maneder), func(m beregning.Manedsberegning) bool {
		return !periode.Inneholder(m.Maned)
	})
	return data, nil
}
