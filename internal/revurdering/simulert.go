package revurdering

import (
	"time"

	"github.com/google/uuid"

	"supstonad/internal/avkorting"
	"supstonad/internal/simulering"
	"supstonad/internal/tilbakekreving"
	"supstonad/pkg/domain"
	dErrors "supstonad/pkg/domain-errors"
)

type SimulertInnvilget struct {
	Felles
	Simuleringsdata
}

type SimulertOpphort struct {
	Felles
	Simuleringsdata
}

func (s SimulertInnvilget) Behandling() Felles                   { return s.Felles }
func (SimulertInnvilget) Tilstand() Tilstand                     { return TilstandSimulertInnvilget }
func (SimulertInnvilget) sealed()                                {}
func (SimulertInnvilget) simulert()                              {}
func (s SimulertInnvilget) Simuleringsresultat() Simuleringsdata { return s.Simuleringsdata }

func (s SimulertOpphort) Behandling() Felles                   { return s.Felles }
func (SimulertOpphort) Tilstand() Tilstand                     { return TilstandSimulertOpphort }
func (SimulertOpphort) sealed()                                {}
func (SimulertOpphort) simulert()                              {}
func (s SimulertOpphort) Simuleringsresultat() Simuleringsdata { return s.Simuleringsdata }

func (s SimulertInnvilget) tilbakestill() (Felles, avkorting.Uhandtert) {
	return s.Felles.clone(), s.Avkorting.Uhandtert()
}

func (s SimulertOpphort) tilbakestill() (Felles, avkorting.Uhandtert) {
	return s.Felles.clone(), s.Avkorting.Uhandtert()
}

func (s SimulertInnvilget) medFritekst(fritekst string) Revurdering {
	s.Felles = s.Felles.clone()
	s.Fritekst = fritekst
	return s
}

func (s SimulertOpphort) medFritekst(fritekst string) Revurdering {
	s.Felles = s.Felles.clone()
	s.Fritekst = fritekst
	return s
}

func (s SimulertInnvilget) medTilbakekreving(t tilbakekreving.UnderBehandling, saksbehandler domain.NavIdent) KanSendesTilAttestering {
	s.Felles = s.Felles.clone()
	s.Saksbehandler = saksbehandler
	s.Tilbakekreving = t
	return s
}

func (s SimulertOpphort) medTilbakekreving(t tilbakekreving.UnderBehandling, saksbehandler domain.NavIdent) KanSendesTilAttestering {
	s.Felles = s.Felles.clone()
	s.Saksbehandler = saksbehandler
	s.Tilbakekreving = t
	return s
}

// Simuleringsvalg tunes how a simulering is reconciled.
type Simuleringsvalg struct {
	// SkalUtsetteTilbakekreving leaves a feilutbetaling to a later
	// tilbakekrevingsbehandling outside this revurdering.
	SkalUtsetteTilbakekreving bool
}

// Simuler reconciles the simulering with the outstanding avkortingsvarsel and
// the tilbakekrevingsbehandling.
func Simuler(r Beregnet, sim *simulering.Simulering, valg Simuleringsvalg, saksbehandler domain.NavIdent, now time.Time) (Simulert, error) {
	if sim == nil {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "simulering is required")
	}
	f, data := r.Behandling().clone(), r.Beregningsresultat()

	nytt, err := avkorting.NyttVarsel(data.Opphor, sim, f.SakID, f.ID, now)
	if err != nil {
		return nil, err
	}
	handtert := data.Avkorting.Handter(nytt)
	_, dekket := handtert.NyttVarsel()
	tk := tilbakekreving.Vurder(sim, valg.SkalUtsetteTilbakekreving, dekket, now)
	if err := avstem(handtert, tk); err != nil {
		return nil, err
	}

	f.Saksbehandler = saksbehandler
	s := Simuleringsdata{
		Beregning:      data.Beregning,
		Opphor:         data.Opphor,
		Simulering:     sim,
		Avkorting:      handtert,
		Tilbakekreving: tk,
	}
	if data.Opphor.ErOpphor() {
		return SimulertOpphort{Felles: f, Simuleringsdata: s}, nil
	}
	return SimulertInnvilget{Felles: f, Simuleringsdata: s}, nil
}

// avstem checks that a feilutbetaling is remedied by at most one mechanism:
// a new avkortingsvarsel recovers it through future payments, so it must not
// also be recovered by tilbakekreving.
func avstem(a avkorting.Handtert, t tilbakekreving.UnderBehandling) error {
	if _, nytt := a.NyttVarsel(); nytt && tilbakekreving.KreverTilbakekreving(t) {
		return dErrors.New(dErrors.CodeInvariantViolation,
			"nytt avkortingsvarsel kan ikke kombineres med tilbakekreving "+string(t.Variant()))
	}
	return nil
}

// OppdaterTilbakekreving records the saksbehandler's recovery decision.
func OppdaterTilbakekreving(r KanSendesTilAttestering, a tilbakekreving.Avgjorelse, saksbehandler domain.NavIdent, now time.Time) (KanSendesTilAttestering, error) {
	data := r.Simuleringsresultat()
	avgjorbar, ok := data.Tilbakekreving.(tilbakekreving.KanAvgjores)
	if !ok {
		return nil, dErrors.NewReason(dErrors.CodeInvalidState, ReasonIngenTilbakekrevingAAvgjore,
			"revurderingen har ingen tilbakekrevingsbehandling å avgjøre")
	}
	avgjort, err := avgjorbar.Avgjor(a, saksbehandler, now)
	if err != nil {
		return nil, err
	}
	if err := avstem(data.Avkorting, avgjort); err != nil {
		return nil, err
	}
	return r.medTilbakekreving(avgjort, saksbehandler), nil
}

func behandlingID(f Felles) uuid.UUID { return uuid.UUID(f.ID) }
