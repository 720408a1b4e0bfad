// Package grunnlag holds the income deductions and housing situation a
// beregning is computed from.
package grunnlag

import (
	"slices"

	"supstonad/pkg/domain"
	dErrors "supstonad/pkg/domain-errors"
)

type Fradragstype string

const (
	Arbeidsinntekt   Fradragstype = "Arbeidsinntekt"
	Uforetrygd       Fradragstype = "Uforetrygd"
	Kapitalinntekt   Fradragstype = "Kapitalinntekt"
	ForventetInntekt Fradragstype = "ForventetInntekt"
	Alderspensjon    Fradragstype = "Alderspensjon"
	Sosialstonad     Fradragstype = "Sosialstonad"
	Annet            Fradragstype = "Annet"
)

var fradragstyper = []Fradragstype{Arbeidsinntekt, Uforetrygd, Kapitalinntekt, ForventetInntekt, Alderspensjon, Sosialstonad, Annet}

type Tilhorer string

const (
	Bruker Tilhorer = "BRUKER"
	EPS    Tilhorer = "EPS"
)

// Fradrag is a monthly deduction applied to every month in Periode.
type Fradrag struct {
	Type        Fradragstype   `json:"type"`
	Manedsbelop int            `json:"manedsbelop"`
	Periode     domain.Periode `json:"periode"`
	Tilhorer    Tilhorer       `json:"tilhorer"`
	Beskrivelse string         `json:"beskrivelse,omitempty"`
	Utenlandsk  bool           `json:"utenlandsk,omitempty"`
}

func NyttFradrag(t Fradragstype, manedsbelop int, periode domain.Periode, tilhorer Tilhorer) (Fradrag, error) {
	if !slices.Contains(fradragstyper, t) {
		return Fradrag{}, dErrors.New(dErrors.CodeInvalidInput, "unknown fradragstype: "+string(t))
	}
	if manedsbelop < 0 {
		return Fradrag{}, dErrors.New(dErrors.CodeValidation, "fradrag must not be negative")
	}
	if tilhorer != Bruker && tilhorer != EPS {
		return Fradrag{}, dErrors.New(dErrors.CodeInvalidInput, "fradrag must belong to BRUKER or EPS")
	}
	return Fradrag{Type: t, Manedsbelop: manedsbelop, Periode: periode, Tilhorer: tilhorer}, nil
}

type Bosituasjonstype string

const (
	Enslig           Bosituasjonstype = "ENSLIG"
	DelerBolig       Bosituasjonstype = "DELER_BOLIG"
	EpsOver67        Bosituasjonstype = "EPS_OVER_67"
	EpsUnder67       Bosituasjonstype = "EPS_UNDER_67"
	EpsUforFlyktning Bosituasjonstype = "EPS_UFOR_FLYKTNING"
)

// Sats is the benefit rate a housing situation qualifies for.
type Sats string

const (
	SatsHoy      Sats = "HOY"
	SatsOrdinaer Sats = "ORDINAER"
)

type Bosituasjon struct {
	Type    Bosituasjonstype `json:"type"`
	Periode domain.Periode   `json:"periode"`
}

func NyBosituasjon(t Bosituasjonstype, periode domain.Periode) (Bosituasjon, error) {
	switch t {
	case Enslig, DelerBolig, EpsOver67, EpsUnder67, EpsUforFlyktning:
		return Bosituasjon{Type: t, Periode: periode}, nil
	}
	return Bosituasjon{}, dErrors.New(dErrors.CodeInvalidInput, "unknown bosituasjon: "+string(t))
}

func (b Bosituasjon) Sats() Sats {
	if b.Type == Enslig {
		return SatsHoy
	}
	return SatsOrdinaer
}

// HarEPS reports whether the household includes a spouse or partner.
func (b Bosituasjon) HarEPS() bool {
	return b.Type == EpsOver67 || b.Type == EpsUnder67 || b.Type == EpsUforFlyktning
}

// Grunnlagsdata is immutable; the Med* methods return copies.
type Grunnlagsdata struct {
	Fradrag     []Fradrag     `json:"fradrag"`
	Bosituasjon []Bosituasjon `json:"bosituasjon"`
}

func (g Grunnlagsdata) MedFradrag(fradrag []Fradrag) Grunnlagsdata {
	return Grunnlagsdata{Fradrag: slices.Clone(fradrag), Bosituasjon: slices.Clone(g.Bosituasjon)}
}

func (g Grunnlagsdata) MedBosituasjon(bosituasjon []Bosituasjon) Grunnlagsdata {
	return Grunnlagsdata{Fradrag: slices.Clone(g.Fradrag), Bosituasjon: slices.Clone(bosituasjon)}
}

// ValiderFor checks that bosituasjon covers every month of periode and that
// fradrag lie within it. Fradrag belonging to EPS require a bosituasjon with EPS.
func (g Grunnlagsdata) ValiderFor(periode domain.Periode) error {
	for _, m := range periode.Maneder() {
		if _, ok := g.BosituasjonFor(m); !ok {
			return dErrors.New(dErrors.CodeValidation, "bosituasjon mangler for "+m.String())
		}
	}
	for _, f := range g.Fradrag {
		if !periode.InneholderPeriode(f.Periode) {
			return dErrors.New(dErrors.CodeValidation, "fradrag utenfor revurderingsperioden")
		}
		if f.Tilhorer != EPS {
			continue
		}
		for _, m := range f.Periode.Maneder() {
			if b, ok := g.BosituasjonFor(m); !ok || !b.HarEPS() {
				return dErrors.New(dErrors.CodeValidation, "fradrag for EPS krever bosituasjon med EPS")
			}
		}
	}
	return nil
}

func (g Grunnlagsdata) BosituasjonFor(m domain.Maned) (Bosituasjon, bool) {
	for _, b := range g.Bosituasjon {
		if b.Periode.Inneholder(m) {
			return b, true
		}
	}
	return Bosituasjon{}, false
}

// FradragFor sums the deductions that apply to month m.
func (g Grunnlagsdata) FradragFor(m domain.Maned) int {
	sum := 0
	for _, f := range g.Fradrag {
		if f.Periode.Inneholder(m) {
			sum += f.Manedsbelop
		}
	}
	return sum
}
