// Package vilkar models eligibility conditions and their per-period evaluations.
package vilkar

import (
	"slices"
	"sort"

	json "github.com/goccy/go-json"

	"supstonad/pkg/domain"
	dErrors "supstonad/pkg/domain-errors"
)

type Type string

const (
	Uforhet             Type = "UFORHET"
	Flyktning           Type = "FLYKTNING"
	Formue              Type = "FORMUE"
	Utenlandsopphold    Type = "UTENLANDSOPPHOLD"
	Institusjonsopphold Type = "INSTITUSJONSOPPHOLD"
)

// AlleTyper lists the condition types in evaluation order.
var AlleTyper = []Type{Uforhet, Flyktning, Formue, Utenlandsopphold, Institusjonsopphold}

func ParseType(s string) (Type, error) {
	t := Type(s)
	if !slices.Contains(AlleTyper, t) {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown vilkar type: "+s)
	}
	return t, nil
}

type Resultat string

const (
	Innvilget Resultat = "INNVILGET"
	Avslag    Resultat = "AVSLAG"
	Uavklart  Resultat = "UAVKLART"
)

func ParseResultat(s string) (Resultat, error) {
	switch r := Resultat(s); r {
	case Innvilget, Avslag, Uavklart:
		return r, nil
	}
	return "", dErrors.New(dErrors.CodeInvalidInput, "unknown vilkar resultat: "+s)
}

// Vurderingsperiode is one evaluation covering a contiguous periode.
type Vurderingsperiode struct {
	Periode     domain.Periode `json:"periode"`
	Resultat    Resultat       `json:"resultat"`
	Begrunnelse string         `json:"begrunnelse,omitempty"`
}

// Vilkar holds the evaluations of one condition type, sorted by fraOgMed and
// contiguous.
type Vilkar struct {
	Type               Type                `json:"type"`
	Vurderingsperioder []Vurderingsperiode `json:"vurderingsperioder"`
}

// Ny validates and normalizes a condition evaluation.
func Ny(t Type, perioder []Vurderingsperiode) (Vilkar, error) {
	if len(perioder) == 0 {
		return Vilkar{}, dErrors.New(dErrors.CodeValidation, "vilkar requires at least one vurderingsperiode")
	}
	sorted := slices.Clone(perioder)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Periode.FraOgMed.Before(sorted[j].Periode.FraOgMed)
	})
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Periode.Overlapper(sorted[i].Periode) {
			return Vilkar{}, dErrors.New(dErrors.CodeValidation, "vurderingsperioder must not overlap")
		}
		if sorted[i-1].Periode.TilOgMed.PlussManeder(1) != sorted[i].Periode.FraOgMed {
			return Vilkar{}, dErrors.New(dErrors.CodeValidation, "vurderingsperioder must not have gaps")
		}
	}
	return Vilkar{Type: t, Vurderingsperioder: sorted}, nil
}

// Uvurdert is a placeholder evaluation for a condition not yet assessed.
func Uvurdert(t Type, periode domain.Periode) Vilkar {
	return Vilkar{Type: t, Vurderingsperioder: []Vurderingsperiode{{Periode: periode, Resultat: Uavklart}}}
}

// Resultat is Uavklart if any periode is uavklart, Avslag if any periode is
// avslag, and Innvilget otherwise.
func (v Vilkar) Resultat() Resultat {
	if len(v.Vurderingsperioder) == 0 {
		return Uavklart
	}
	res := Innvilget
	for _, p := range v.Vurderingsperioder {
		switch p.Resultat {
		case Uavklart:
			return Uavklart
		case Avslag:
			res = Avslag
		}
	}
	return res
}

// ForsteAvslag returns the earliest month evaluated as avslag.
func (v Vilkar) ForsteAvslag() (domain.Maned, bool) {
	for _, p := range v.Vurderingsperioder {
		if p.Resultat == Avslag {
			return p.Periode.FraOgMed, true
		}
	}
	return domain.Maned{}, false
}

// Dekker reports whether the evaluations cover every month of periode and
// nothing outside it.
func (v Vilkar) Dekker(periode domain.Periode) bool {
	if len(v.Vurderingsperioder) == 0 {
		return false
	}
	neste := periode.FraOgMed
	for _, p := range v.Vurderingsperioder {
		if p.Periode.FraOgMed != neste {
			return false
		}
		neste = p.Periode.TilOgMed.PlussManeder(1)
	}
	return neste == periode.TilOgMed.PlussManeder(1)
}

func (v Vilkar) clone() Vilkar {
	return Vilkar{Type: v.Type, Vurderingsperioder: slices.Clone(v.Vurderingsperioder)}
}

// Vilkarsvurderinger is the full set of condition evaluations for a behandling.
// Values are immutable; Oppdater returns a copy.
type Vilkarsvurderinger struct {
	vilkar map[Type]Vilkar
}

func NyeVilkarsvurderinger(vilkar ...Vilkar) Vilkarsvurderinger {
	m := make(map[Type]Vilkar, len(vilkar))
	for _, v := range vilkar {
		m[v.Type] = v.clone()
	}
	return Vilkarsvurderinger{vilkar: m}
}

// Uavklarte returns a set where every condition type is uavklart for periode.
func Uavklarte(periode domain.Periode) Vilkarsvurderinger {
	all := make([]Vilkar, 0, len(AlleTyper))
	for _, t := range AlleTyper {
		all = append(all, Uvurdert(t, periode))
	}
	return NyeVilkarsvurderinger(all...)
}

func (vv Vilkarsvurderinger) Oppdater(v Vilkar) Vilkarsvurderinger {
	m := make(map[Type]Vilkar, len(vv.vilkar)+1)
	for t, existing := range vv.vilkar {
		m[t] = existing
	}
	m[v.Type] = v.clone()
	return Vilkarsvurderinger{vilkar: m}
}

func (vv Vilkarsvurderinger) Hent(t Type) (Vilkar, bool) {
	v, ok := vv.vilkar[t]
	if !ok {
		return Vilkar{}, false
	}
	return v.clone(), true
}

// Alle returns the conditions in AlleTyper order.
func (vv Vilkarsvurderinger) Alle() []Vilkar {
	out := make([]Vilkar, 0, len(vv.vilkar))
	for _, t := range AlleTyper {
		if v, ok := vv.vilkar[t]; ok {
			out = append(out, v.clone())
		}
	}
	return out
}

// Resultat aggregates all conditions. A missing condition counts as uavklart.
func (vv Vilkarsvurderinger) Resultat() Resultat {
	res := Innvilget
	for _, t := range AlleTyper {
		v, ok := vv.vilkar[t]
		if !ok {
			return Uavklart
		}
		switch v.Resultat() {
		case Uavklart:
			return Uavklart
		case Avslag:
			res = Avslag
		}
	}
	return res
}

// ErFerdigVurdert reports whether no condition is uavklart.
func (vv Vilkarsvurderinger) ErFerdigVurdert() bool {
	return vv.Resultat() != Uavklart
}

// Avslag returns the conditions resulting in avslag, in AlleTyper order.
func (vv Vilkarsvurderinger) Avslag() []Vilkar {
	var out []Vilkar
	for _, v := range vv.Alle() {
		if v.Resultat() == Avslag {
			out = append(out, v)
		}
	}
	return out
}

func (vv Vilkarsvurderinger) MarshalJSON() ([]byte, error) {
	return json.Marshal(vv.Alle())
}

func (vv *Vilkarsvurderinger) UnmarshalJSON(b []byte) error {
	var all []Vilkar
	if err := json.Unmarshal(b, &all); err != nil {
		return err
	}
	*vv = NyeVilkarsvurderinger(all...)
	return nil
}
