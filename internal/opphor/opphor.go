// Package opphor decides whether a revurdering terminates the benefit.
//
// Vurder is pure domain logic: it receives the condition evaluations and the
// computed schedule and returns the termination grounds and effective month.
package opphor

import (
	"slices"

	json "github.com/goccy/go-json"

	"supstonad/internal/beregning"
	"supstonad/internal/vilkar"
	"supstonad/pkg/domain"
	dErrors "supstonad/pkg/domain-errors"
	"supstonad/pkg/platform/dedupe"
)

// Grunn is a termination ground.
type Grunn string

const (
	Uforhet             Grunn = "UFORHET"
	Flyktning           Grunn = "FLYKTNING"
	Formue              Grunn = "FORMUE"
	Utenlandsopphold    Grunn = "UTENLANDSOPPHOLD"
	Institusjonsopphold Grunn = "INSTITUSJONSOPPHOLD"
	ForHoyInntekt       Grunn = "FOR_HOY_INNTEKT"
	SuUnderMinstegrense Grunn = "SU_UNDER_MINSTEGRENSE"
)

var vilkarGrunn = map[vilkar.Type]Grunn{
	vilkar.Uforhet:             Uforhet,
	vilkar.Flyktning:           Flyktning,
	vilkar.Formue:              Formue,
	vilkar.Utenlandsopphold:    Utenlandsopphold,
	vilkar.Institusjonsopphold: Institusjonsopphold,
}

var merknadGrunn = map[beregning.Merknad]Grunn{
	beregning.BelopErNull:                         ForHoyInntekt,
	beregning.BelopMellomNullOgToProsentAvHoySats: SuUnderMinstegrense,
}

// ErBeregningsgrunn reports whether g stems from the computed amounts rather
// than from a failed condition.
func (g Grunn) ErBeregningsgrunn() bool {
	return g == ForHoyInntekt || g == SuUnderMinstegrense
}

// Resultat is either "no termination" (the zero value) or a non-empty ordered
// list of grounds with an effective month.
type Resultat struct {
	grunner     []Grunn
	opphorsdato domain.Maned
}

// Innvilget is the "no termination" result.
func Innvilget() Resultat { return Resultat{} }

// Opphor builds a termination result. Grounds are deduplicated in order.
func Opphor(grunner []Grunn, opphorsdato domain.Maned) (Resultat, error) {
	grunner = dedupe.Ordered(slices.Clone(grunner))
	if len(grunner) == 0 {
		return Resultat{}, dErrors.New(dErrors.CodeInvariantViolation, "opphor requires at least one grunn")
	}
	if opphorsdato.IsZero() {
		return Resultat{}, dErrors.New(dErrors.CodeInvariantViolation, "opphor requires an opphorsdato")
	}
	return Resultat{grunner: grunner, opphorsdato: opphorsdato}, nil
}

func (r Resultat) ErOpphor() bool { return len(r.grunner) > 0 }

func (r Resultat) Grunner() []Grunn { return slices.Clone(r.grunner) }

func (r Resultat) HarGrunn(g Grunn) bool { return slices.Contains(r.grunner, g) }

// Opphorsdato is the first terminated month. ok is false for Innvilget.
func (r Resultat) Opphorsdato() (domain.Maned, bool) {
	return r.opphorsdato, r.ErOpphor()
}

// Vurder combines the condition-based and amount-based termination grounds.
//
// Condition grounds come first, in condition type order, each effective from
// its first avslag month. The amount-based ground is taken from the first
// month whose beregning carries a terminating remark. The effective month of
// the result is the earliest of all candidates.
func Vurder(vv vilkar.Vilkarsvurderinger, b *beregning.Beregning) (Resultat, error) {
	if !vv.ErFerdigVurdert() {
		return Resultat{}, dErrors.New(dErrors.CodeInvariantViolation, "opphor vurdert with uavklarte vilkar")
	}

	var (
		grunner  []Grunn
		earliest domain.Maned
	)
	consider := func(g Grunn, fra domain.Maned) {
		grunner = append(grunner, g)
		if earliest.IsZero() || fra.Before(earliest) {
			earliest = fra
		}
	}

	for _, v := range vv.Avslag() {
		fra, ok := v.ForsteAvslag()
		if !ok {
			continue
		}
		consider(vilkarGrunn[v.Type], fra)
	}
	if b != nil {
		if mb, merknad, ok := b.ForsteMerknad(); ok {
			consider(merknadGrunn[merknad], mb.Maned)
		}
	}

	if len(grunner) == 0 {
		return Innvilget(), nil
	}
	return Opphor(grunner, earliest)
}

type resultatJSON struct {
	Grunner     []Grunn       `json:"grunner,omitempty"`
	Opphorsdato *domain.Maned `json:"opphorsdato,omitempty"`
}

func (r Resultat) MarshalJSON() ([]byte, error) {
	if !r.ErOpphor() {
		return json.Marshal(resultatJSON{})
	}
	dato := r.opphorsdato
	return json.Marshal(resultatJSON{Grunner: r.grunner, Opphorsdato: &dato})
}

func (r *Resultat) UnmarshalJSON(b []byte) error {
	var raw resultatJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if len(raw.Grunner) == 0 || raw.Opphorsdato == nil {
		*r = Innvilget()
		return nil
	}
	res, err := Opphor(raw.Grunner, *raw.Opphorsdato)
	if err != nil {
		return err
	}
	*r = res
	return nil
}
