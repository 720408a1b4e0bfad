package revurdering

import (
	"supstonad/internal/avkorting"
	"supstonad/internal/beregning"
	"supstonad/internal/grunnlag"
	"supstonad/internal/opphor"
	"supstonad/internal/simulering"
	"supstonad/internal/tilbakekreving"
	"supstonad/internal/vilkar"
	"supstonad/pkg/domain"
)

// Tilstand names a concrete lifecycle state.
type Tilstand string

const (
	TilstandOpprettet               Tilstand = "OPPRETTET"
	TilstandBeregnetInnvilget       Tilstand = "BEREGNET_INNVILGET"
	TilstandBeregnetOpphort         Tilstand = "BEREGNET_OPPHORT"
	TilstandSimulertInnvilget       Tilstand = "SIMULERT_INNVILGET"
	TilstandSimulertOpphort         Tilstand = "SIMULERT_OPPHORT"
	TilstandTilAttesteringInnvilget Tilstand = "TIL_ATTESTERING_INNVILGET"
	TilstandTilAttesteringOpphort   Tilstand = "TIL_ATTESTERING_OPPHORT"
	TilstandUnderkjentInnvilget     Tilstand = "UNDERKJENT_INNVILGET"
	TilstandUnderkjentOpphort       Tilstand = "UNDERKJENT_OPPHORT"
	TilstandIverksattInnvilget      Tilstand = "IVERKSATT_INNVILGET"
	TilstandIverksattOpphort        Tilstand = "IVERKSATT_OPPHORT"
	TilstandAvsluttet               Tilstand = "AVSLUTTET"
)

// Targets of the transitions whose outcome depends on the opphør result.
var (
	TilBeregnet       = []Tilstand{TilstandBeregnetInnvilget, TilstandBeregnetOpphort}
	TilSimulert       = []Tilstand{TilstandSimulertInnvilget, TilstandSimulertOpphort}
	TilTilAttestering = []Tilstand{TilstandTilAttesteringInnvilget, TilstandTilAttesteringOpphort}
	TilUnderkjent     = []Tilstand{TilstandUnderkjentInnvilget, TilstandUnderkjentOpphort}
	TilIverksatt      = []Tilstand{TilstandIverksattInnvilget, TilstandIverksattOpphort}
)

// Revurdering is implemented by every lifecycle state.
type Revurdering interface {
	Behandling() Felles
	Tilstand() Tilstand
	sealed()
}

// KanOppdateres is implemented by Opprettet, Beregnet, Simulert and
// Underkjent. Every update produces a fresh Opprettet.
type KanOppdateres interface {
	Revurdering
	tilbakestill() (Felles, avkorting.Uhandtert)
	medFritekst(fritekst string) Revurdering
}

// KanBeregnes is implemented by Opprettet and Underkjent.
type KanBeregnes interface {
	KanOppdateres
	kanBeregnes()
}

// Beregnet is BeregnetInnvilget or BeregnetOpphort.
type Beregnet interface {
	KanOppdateres
	Beregningsresultat() Beregningsdata
	beregnet()
}

// Simulert is SimulertInnvilget or SimulertOpphort.
type Simulert interface {
	KanSendesTilAttestering
	simulert()
}

// KanLageBrevutkast is implemented by every state holding a simulering that
// is not yet iverksatt.
type KanLageBrevutkast interface {
	Revurdering
	Simuleringsresultat() Simuleringsdata
}

// KanSendesTilAttestering is implemented by Simulert and Underkjent.
type KanSendesTilAttestering interface {
	KanOppdateres
	KanLageBrevutkast
	medTilbakekreving(t tilbakekreving.UnderBehandling, saksbehandler domain.NavIdent) KanSendesTilAttestering
}

// Beregningsdata is what beregning decided.
type Beregningsdata struct {
	Beregning *beregning.Beregning     `json:"beregning"`
	Opphor    opphor.Resultat          `json:"opphor"`
	Avkorting avkorting.DelvisHandtert `json:"-"`
}

// Simuleringsdata is what beregning and simulering decided together.
type Simuleringsdata struct {
	Beregning      *beregning.Beregning           `json:"beregning"`
	Opphor         opphor.Resultat                `json:"opphor"`
	Simulering     *simulering.Simulering         `json:"simulering"`
	Avkorting      avkorting.Handtert             `json:"-"`
	Tilbakekreving tilbakekreving.UnderBehandling `json:"-"`
}

// Vedtaksdata is the gjeldende vedtak's content for a periode.
type Vedtaksdata struct {
	VedtakID   domain.VedtakID
	Saksnummer domain.Saksnummer
	Fnr        domain.Fnr
	Vilkar     vilkar.Vilkarsvurderinger
	Grunnlag   grunnlag.Grunnlagsdata
	Maneder    []beregning.Manedsberegning
}

// ErApen reports whether r still blocks a new revurdering on the sak.
func ErApen(r Revurdering) bool {
	switch r.(type) {
	case Iverksatt, Avsluttet:
		return false
	}
	return true
}

func erOpphort(res opphor.Resultat, innvilget, opphort Tilstand) Tilstand {
	if res.ErOpphor() {
		return opphort
	}
	return innvilget
}
