// Package utfall flags revurdering outcomes the downstream payment and letter
// pipeline cannot process automatically yet.
//
// Each rule is a pure predicate over the prior schedule, the new schedule and
// the opphør result. Rules are additive: Vurder reports every flag that fires
// so the saksbehandler sees all reasons at once.
package utfall

import (
	"supstonad/internal/beregning"
	"supstonad/internal/opphor"
	"supstonad/pkg/domain"
)

// Utfall is an unsupported-outcome flag.
type Utfall string

const (
	OpphorAvFlereVilkar                Utfall = "OPPHOR_AV_FLERE_VILKAR"
	OpphorErIkkeFraForsteManed         Utfall = "OPPHOR_ER_IKKE_FRA_FORSTE_MANED"
	DelvisOpphor                       Utfall = "DELVIS_OPPHOR"
	OpphorOgAndreEndringerIKombinasjon Utfall = "OPPHOR_OG_ANDRE_ENDRINGER_I_KOMBINASJON"
)

// Input is everything a rule may look at.
type Input struct {
	Gjeldende []beregning.Manedsberegning
	Ny        *beregning.Beregning
	Opphor    opphor.Resultat
	Periode   domain.Periode
}

// Regel contributes Utfall when Gjelder holds. Rules only run for an opphør.
type Regel struct {
	Utfall  Utfall
	Gjelder func(Input) bool
}

// Regler is evaluated in order; the order is the order flags are reported in.
var Regler = []Regel{
	{Utfall: OpphorAvFlereVilkar, Gjelder: flereGrunner},
	{Utfall: OpphorErIkkeFraForsteManed, Gjelder: ikkeFraForsteManed},
	{Utfall: DelvisOpphor, Gjelder: delvisOpphor},
	{Utfall: OpphorOgAndreEndringerIKombinasjon, Gjelder: andreEndringer},
}

// Vurder returns the flags that fire for in. An empty result means the
// outcome is supported. Innvilget is always supported.
func Vurder(in Input) []Utfall {
	if !in.Opphor.ErOpphor() {
		return nil
	}
	var flagg []Utfall
	for _, r := range Regler {
		if r.Gjelder(in) {
			flagg = append(flagg, r.Utfall)
		}
	}
	return flagg
}

func flereGrunner(in Input) bool {
	return len(in.Opphor.Grunner()) > 1
}

// ikkeFraForsteManed compares the opphørsdato with the earliest month of the
// new schedule. An empty schedule falls back to the revurderingsperiode.
func ikkeFraForsteManed(in Input) bool {
	dato, ok := in.Opphor.Opphorsdato()
	if !ok {
		return false
	}
	forste, ok := in.Ny.ForsteManed()
	if !ok {
		forste = in.Periode.FraOgMed
	}
	return dato != forste
}

// merknadFor maps the amount-driven grounds to the remark that terminates a month.
var merknadFor = map[opphor.Grunn]beregning.Merknad{
	opphor.SuUnderMinstegrense: beregning.BelopMellomNullOgToProsentAvHoySats,
	opphor.ForHoyInntekt:       beregning.BelopErNull,
}

func delvisOpphor(in Input) bool {
	grunner := in.Opphor.Grunner()
	if len(grunner) != 1 {
		return false
	}
	merknad, ok := merknadFor[grunner[0]]
	if !ok {
		return false
	}
	return in.Ny == nil || !in.Ny.AlleHarMerknad(merknad)
}

// andreEndringer fires when a month not terminated by the opphør has an amount
// different from the prior schedule. A month missing from the prior schedule
// counts as changed.
func andreEndringer(in Input) bool {
	if in.Ny == nil {
		return false
	}
	gjeldende := make(map[domain.Maned]int, len(in.Gjeldende))
	for _, m := range in.Gjeldende {
		gjeldende[m.Maned] = m.Belop
	}
	for _, m := range in.Ny.Maneder {
		if opphort(in.Opphor, m) {
			continue
		}
		tidligere, ok := gjeldende[m.Maned]
		if !ok || tidligere != m.Belop {
			return true
		}
	}
	return false
}

func opphort(res opphor.Resultat, m beregning.Manedsberegning) bool {
	harVilkarsgrunn := false
	for _, g := range res.Grunner() {
		if merknad, ok := merknadFor[g]; ok {
			if m.HarMerknad(merknad) {
				return true
			}
			continue
		}
		harVilkarsgrunn = true
	}
	if !harVilkarsgrunn {
		return false
	}
	dato, _ := res.Opphorsdato()
	return !m.Maned.Before(dato)
}
