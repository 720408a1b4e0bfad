// Package adapters implements the revurdering ports. The lokal adapters run
// in-process against shared in-memory state and back local runs and tests;
// production deployments replace them with clients for the real systems.
package adapters

import (
	"context"
	"fmt"
	"math"
	"time"

	"supstonad/internal/beregning"
	"supstonad/internal/grunnlag"
	"supstonad/internal/revurdering/ports"
	dErrors "supstonad/pkg/domain-errors"
)

// Yearly rates for supplerende stønad.
const (
	HoySatsPerAr      = 251350
	OrdinaerSatsPerAr = 231260
)

// LokalBeregner computes sats minus fradrag per month and marks months
// whose amount is zero or below two percent of the høy sats.
type LokalBeregner struct {
	now func() time.Time
}

func NewLokalBeregner(now func() time.Time) *LokalBeregner {
	if now == nil {
		now = time.Now
	}
	return &LokalBeregner{now: now}
}

func (b *LokalBeregner) Beregn(_ context.Context, req ports.BeregnRequest) (*beregning.Beregning, error) {
	g := req.Grunnlag
	minstebelop := ToProsentAvHoySats()

	maneder := make([]beregning.Manedsberegning, 0, g.Periode.AntallManeder())
	for _, m := range g.Periode.Maneder() {
		bo, ok := g.Grunnlag.BosituasjonFor(m)
		if !ok {
			return nil, dErrors.New(dErrors.CodeInvariantViolation, fmt.Sprintf("mangler bosituasjon for %s", m))
		}
		sats := Manedssats(bo.Sats())
		fradrag := g.Grunnlag.FradragFor(m)
		mb := beregning.Manedsberegning{
			Maned:   m,
			Sats:    sats,
			Fradrag: fradrag,
			Belop:   max(sats-fradrag, 0),
		}
		switch {
		case mb.Belop == 0:
			mb.Merknader = []beregning.Merknad{beregning.BelopErNull}
		case mb.Belop < minstebelop:
			mb.Merknader = []beregning.Merknad{beregning.BelopMellomNullOgToProsentAvHoySats}
		}
		maneder = append(maneder, mb)
	}

	res := beregning.Ny(g.Periode, maneder, b.now())
	res.Begrunnelse = req.Begrunnelse
	return res, nil
}

// Manedssats is the yearly rate divided over twelve months, rounded.
func Manedssats(s grunnlag.Sats) int {
	if s == grunnlag.SatsHoy {
		return rundAv(HoySatsPerAr / 12.0)
	}
	return rundAv(OrdinaerSatsPerAr / 12.0)
}

// ToProsentAvHoySats is the smallest monthly amount that is paid out.
func ToProsentAvHoySats() int {
	return rundAv(HoySatsPerAr * 0.02 / 12.0)
}

func rundAv(f float64) int {
	return int(math.Round(f))
}
