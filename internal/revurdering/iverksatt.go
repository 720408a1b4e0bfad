package revurdering

import (
	"time"

	"supstonad/internal/avkorting"
	"supstonad/internal/beregning"
	"supstonad/internal/opphor"
	"supstonad/internal/simulering"
	"supstonad/internal/tilbakekreving"
	"supstonad/pkg/domain"
	dErrors "supstonad/pkg/domain-errors"
)

// Iverksatt is terminal. The vedtak has been attested and the utbetaling
// issued.
type Iverksatt struct {
	Felles
	Beregning      *beregning.Beregning
	Opphor         opphor.Resultat
	Simulering     *simulering.Simulering
	Avkorting      avkorting.Iverksatt
	Tilbakekreving tilbakekreving.Ferdigbehandlet
	Utbetaling     domain.UtbetalingID
	Vedtaksbrev    domain.DokumentID
	Tidspunkt      time.Time
}

func (i Iverksatt) Behandling() Felles { return i.Felles }
func (Iverksatt) sealed()              {}

func (i Iverksatt) Tilstand() Tilstand {
	return erOpphort(i.Opphor, TilstandIverksattInnvilget, TilstandIverksattOpphort)
}

// UtbetalFunc issues the utbetaling for an iverksatt revurdering.
type UtbetalFunc func(Iverksatt) (domain.UtbetalingID, error)

// Iverksett commits the avkorting stage, finalizes the tilbakekreving and
// issues the utbetaling. A failing utbetaling leaves t unchanged.
func (t TilAttestering) Iverksett(attestant domain.NavIdent, now time.Time, utbetal UtbetalFunc) (Iverksatt, error) {
	if err := t.KontrollerAttestant(attestant); err != nil {
		return Iverksatt{}, err
	}
	avk, err := t.Avkorting.Iverksett(behandlingID(t.Felles), now)
	if err != nil {
		return Iverksatt{}, err
	}
	ferdig, ok := t.Tilbakekreving.(tilbakekreving.KanFerdigbehandles)
	if !ok {
		return Iverksatt{}, dErrors.New(dErrors.CodeInvariantViolation,
			"tilbakekrevingsbehandling "+string(t.Tilbakekreving.Variant())+" kan ikke ferdigbehandles")
	}

	f := t.Felles.clone()
	f.Attesteringer = append(f.Attesteringer, Attestering{
		Attestant: attestant,
		Tidspunkt: now,
		Iverksatt: true,
	})
	iverksatt := Iverksatt{
		Felles:         f,
		Beregning:      t.Beregning,
		Opphor:         t.Opphor,
		Simulering:     t.Simulering,
		Avkorting:      avk,
		Tilbakekreving: ferdig.Ferdigbehandle(),
		Tidspunkt:      now,
	}
	utbetaling, err := utbetal(iverksatt)
	if err != nil {
		return Iverksatt{}, err
	}
	iverksatt.Utbetaling = utbetaling
	return iverksatt, nil
}

// Attestant returns who iverksatte the revurdering.
func (i Iverksatt) Attestant() domain.NavIdent {
	a, _ := i.SisteAttestering()
	return a.Attestant
}
