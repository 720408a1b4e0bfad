// Package beregning holds the calculated monthly benefit schedule. The
// arithmetic producing it lives behind the Beregner port.
package beregning

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"supstonad/pkg/domain"
)

// Merknad flags a month whose amount alone terminates the benefit.
type Merknad string

const (
	BelopErNull                         Merknad = "BelopErNull"
	BelopMellomNullOgToProsentAvHoySats Merknad = "BelopMellomNullOgToProsentAvHoySats"
)

type Manedsberegning struct {
	Maned     domain.Maned `json:"maned"`
	Sats      int          `json:"sats"`
	Fradrag   int          `json:"fradrag"`
	Belop     int          `json:"belop"`
	Merknader []Merknad    `json:"merknader,omitempty"`
}

func (m Manedsberegning) HarMerknad(merknad Merknad) bool {
	return slices.Contains(m.Merknader, merknad)
}

type Beregning struct {
	ID          uuid.UUID         `json:"id"`
	Opprettet   time.Time         `json:"opprettet"`
	Periode     domain.Periode    `json:"periode"`
	Maneder     []Manedsberegning `json:"maneder"`
	Begrunnelse string            `json:"begrunnelse,omitempty"`
}

// Ny sorts months and assigns a fresh identity.
func Ny(periode domain.Periode, maneder []Manedsberegning, now time.Time) *Beregning {
	sorted := slices.Clone(maneder)
	slices.SortFunc(sorted, func(a, b Manedsberegning) int { return a.Maned.Compare(b.Maned) })
	return &Beregning{ID: uuid.New(), Opprettet: now, Periode: periode, Maneder: sorted}
}

func (b *Beregning) Maned(m domain.Maned) (Manedsberegning, bool) {
	for _, mb := range b.Maneder {
		if mb.Maned == m {
			return mb, true
		}
	}
	return Manedsberegning{}, false
}

func (b *Beregning) SumYtelse() int {
	sum := 0
	for _, m := range b.Maneder {
		sum += m.Belop
	}
	return sum
}

// ForsteManed returns the earliest month in the schedule.
func (b *Beregning) ForsteManed() (domain.Maned, bool) {
	if b == nil || len(b.Maneder) == 0 {
		return domain.Maned{}, false
	}
	first := b.Maneder[0].Maned
	for _, m := range b.Maneder[1:] {
		if m.Maned.Before(first) {
			first = m.Maned
		}
	}
	return first, true
}

// ForsteMerknad returns the first month (in calendar order) carrying one of
// the terminating remarks.
func (b *Beregning) ForsteMerknad() (Manedsberegning, Merknad, bool) {
	for _, m := range b.Maneder {
		for _, merknad := range []Merknad{BelopErNull, BelopMellomNullOgToProsentAvHoySats} {
			if m.HarMerknad(merknad) {
				return m, merknad, true
			}
		}
	}
	return Manedsberegning{}, "", false
}

// AlleHarMerknad reports whether every month carries merknad.
func (b *Beregning) AlleHarMerknad(merknad Merknad) bool {
	if len(b.Maneder) == 0 {
		return false
	}
	for _, m := range b.Maneder {
		if !m.HarMerknad(merknad) {
			return false
		}
	}
	return true
}

// LikUtenomMetadata compares amounts and remarks, ignoring id and timestamp.
func (b *Beregning) LikUtenomMetadata(other *Beregning) bool {
	if b == nil || other == nil {
		return b == other
	}
	if b.Periode != other.Periode || len(b.Maneder) != len(other.Maneder) {
		return false
	}
	for i := range b.Maneder {
		x, y := b.Maneder[i], other.Maneder[i]
		if x.Maned != y.Maned || x.Sats != y.Sats || x.Fradrag != y.Fradrag || x.Belop != y.Belop {
			return false
		}
		if !slices.Equal(x.Merknader, y.Merknader) {
			return false
		}
	}
	return true
}
