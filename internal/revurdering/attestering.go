package revurdering

import (
	"strings"
	"time"

	"supstonad/internal/avkorting"
	"supstonad/internal/revurdering/utfall"
	"supstonad/internal/tilbakekreving"
	"supstonad/pkg/domain"
	dErrors "supstonad/pkg/domain-errors"
)

// TilAttestering awaits a second person's approval.
type TilAttestering struct {
	Felles
	Simuleringsdata
	Sendt time.Time `json:"sendt"`
}

func (t TilAttestering) Behandling() Felles                   { return t.Felles }
func (TilAttestering) sealed()                                {}
func (t TilAttestering) Simuleringsresultat() Simuleringsdata { return t.Simuleringsdata }

func (t TilAttestering) Tilstand() Tilstand {
	return erOpphort(t.Opphor, TilstandTilAttesteringInnvilget, TilstandTilAttesteringOpphort)
}

// Underkjent was sent back by the attestant. It offers every update and can
// be beregnet or sent to attestering again.
type Underkjent struct {
	Felles
	Simuleringsdata
}

func (u Underkjent) Behandling() Felles                   { return u.Felles }
func (Underkjent) sealed()                                {}
func (Underkjent) kanBeregnes()                           {}
func (u Underkjent) Simuleringsresultat() Simuleringsdata { return u.Simuleringsdata }

func (u Underkjent) Tilstand() Tilstand {
	return erOpphort(u.Opphor, TilstandUnderkjentInnvilget, TilstandUnderkjentOpphort)
}

func (u Underkjent) tilbakestill() (Felles, avkorting.Uhandtert) {
	return u.Felles.clone(), u.Avkorting.Uhandtert()
}

func (u Underkjent) medFritekst(fritekst string) Revurdering {
	u.Felles = u.Felles.clone()
	u.Fritekst = fritekst
	return u
}

func (u Underkjent) medTilbakekreving(t tilbakekreving.UnderBehandling, saksbehandler domain.NavIdent) KanSendesTilAttestering {
	u.Felles = u.Felles.clone()
	u.Saksbehandler = saksbehandler
	u.Tilbakekreving = t
	return u
}

// VurderUtfall runs every outcome rule on the simulert result.
func VurderUtfall(r KanLageBrevutkast) []utfall.Utfall {
	f, data := r.Behandling(), r.Simuleringsresultat()
	return utfall.Vurder(utfall.Input{
		Gjeldende: f.Gjeldende,
		Ny:        data.Beregning,
		Opphor:    data.Opphor,
		Periode:   f.Periode,
	})
}

// KontrollerForAttestering fails with every unsupported outcome at once, or
// when the tilbakekrevingsbehandling is not avgjort.
func KontrollerForAttestering(r KanSendesTilAttestering) error {
	if flagg := VurderUtfall(r); len(flagg) > 0 {
		return &UtfallStottesIkkeError{Utfall: flagg}
	}
	if !tilbakekreving.ErAvgjort(r.Simuleringsresultat().Tilbakekreving) {
		return dErrors.NewReason(dErrors.CodeValidation, ReasonTilbakekrevingIkkeAvgjort,
			"tilbakekrevingsbehandlingen må avgjøres før attestering")
	}
	return nil
}

// SendTilAttestering hands the revurdering to an attestant through oppgave.
func SendTilAttestering(r KanSendesTilAttestering, oppgave domain.OppgaveID, saksbehandler domain.NavIdent, now time.Time) (TilAttestering, error) {
	if err := KontrollerForAttestering(r); err != nil {
		return TilAttestering{}, err
	}
	f := r.Behandling().clone()
	f.Oppgave = oppgave
	f.Saksbehandler = saksbehandler
	return TilAttestering{Felles: f, Simuleringsdata: r.Simuleringsresultat(), Sendt: now}, nil
}

// KontrollerAttestant enforces that the attestant is not the saksbehandler.
func (t TilAttestering) KontrollerAttestant(attestant domain.NavIdent) error {
	if attestant.IsZero() {
		return dErrors.New(dErrors.CodeInvalidInput, "attestant is required")
	}
	if attestant == t.Saksbehandler {
		return dErrors.NewReason(dErrors.CodeForbidden, ReasonSammePerson,
			"attestant og saksbehandler kan ikke være samme person")
	}
	return nil
}

// Underkjenning is the attestant's rejection.
type Underkjenning struct {
	Attestant domain.NavIdent
	Grunn     UnderkjennGrunn
	Kommentar string
}

// Underkjenn sends the revurdering back to the saksbehandler through a new
// oppgave.
func (t TilAttestering) Underkjenn(u Underkjenning, oppgave domain.OppgaveID, now time.Time) (Underkjent, error) {
	if err := t.KontrollerAttestant(u.Attestant); err != nil {
		return Underkjent{}, err
	}
	if strings.TrimSpace(u.Kommentar) == "" {
		return Underkjent{}, dErrors.NewReason(dErrors.CodeValidation, ReasonBegrunnelseMangler, "kommentar er påkrevd")
	}
	f := t.Felles.clone()
	f.Oppgave = oppgave
	f.Attesteringer = append(f.Attesteringer, Attestering{
		Attestant: u.Attestant,
		Tidspunkt: now,
		Grunn:     u.Grunn,
		Kommentar: strings.TrimSpace(u.Kommentar),
	})
	return Underkjent{Felles: f, Simuleringsdata: t.Simuleringsdata}, nil
}
