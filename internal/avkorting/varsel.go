// Package avkorting reconciles claw-back warnings (avkortingsvarsler) with
// the outcome of a revurdering.
//
// An Avkortingsvarsel records an overpayment caused by foreign residence that
// is recovered by reducing future benefit. Its lifecycle is
//
//	Opprettet -> SkalAvkortes -> Avkortet
//	Opprettet | SkalAvkortes -> Annullert
//
// A varsel in SkalAvkortes is "utestående" for its sak.
package avkorting

import (
	"time"

	"github.com/google/uuid"

	"supstonad/internal/simulering"
	"supstonad/pkg/domain"
	dErrors "supstonad/pkg/domain-errors"
)

type Tilstand string

const (
	TilstandIngen        Tilstand = "INGEN"
	TilstandOpprettet    Tilstand = "OPPRETTET"
	TilstandSkalAvkortes Tilstand = "SKAL_AVKORTES"
	TilstandAvkortet     Tilstand = "AVKORTET"
	TilstandAnnullert    Tilstand = "ANNULLERT"
)

var transitions = map[Tilstand][]Tilstand{
	TilstandOpprettet:    {TilstandSkalAvkortes, TilstandAnnullert},
	TilstandSkalAvkortes: {TilstandAvkortet, TilstandAnnullert},
}

func (t Tilstand) CanTransitionTo(next Tilstand) bool {
	for _, allowed := range transitions[t] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Avkortingsvarsel is a value; transitions return a new value.
type Avkortingsvarsel struct {
	ID             domain.AvkortingsvarselID  `json:"id"`
	SakID          domain.SakID               `json:"sakId"`
	RevurderingID  domain.RevurderingID       `json:"revurderingId"`
	Opprettet      time.Time                  `json:"opprettet"`
	Endret         time.Time                  `json:"endret"`
	Tilstand       Tilstand                   `json:"tilstand"`
	Feilutbetaling simulering.ManedBelopListe `json:"feilutbetaling"`

	// BehandletAv is the behandling that annulled or consumed the varsel.
	BehandletAv uuid.UUID `json:"behandletAv"`
}

// TilstandFor maps a missing varsel to TilstandIngen.
func TilstandFor(v *Avkortingsvarsel) Tilstand {
	if v == nil {
		return TilstandIngen
	}
	return v.Tilstand
}

// Nytt creates a varsel in Opprettet for the overpaid months.
func Nytt(sakID domain.SakID, revurderingID domain.RevurderingID, feilutbetaling simulering.ManedBelopListe, now time.Time) (Avkortingsvarsel, error) {
	if len(feilutbetaling) == 0 || feilutbetaling.Sum() <= 0 {
		return Avkortingsvarsel{}, dErrors.New(dErrors.CodeInvariantViolation, "avkortingsvarsel requires a positive feilutbetaling")
	}
	return Avkortingsvarsel{
		ID:             domain.NewAvkortingsvarselID(),
		SakID:          sakID,
		RevurderingID:  revurderingID,
		Opprettet:      now,
		Endret:         now,
		Tilstand:       TilstandOpprettet,
		Feilutbetaling: append(simulering.ManedBelopListe(nil), feilutbetaling...),
	}, nil
}

// Periode spans the overpaid months.
func (v Avkortingsvarsel) Periode() domain.Periode {
	p, _ := v.Feilutbetaling.Periode()
	return p
}

func (v Avkortingsvarsel) Belop() int { return v.Feilutbetaling.Sum() }

func (v Avkortingsvarsel) ErUtestaende() bool { return v.Tilstand == TilstandSkalAvkortes }

func (v Avkortingsvarsel) CanTransitionTo(next Tilstand) error {
	if !v.Tilstand.CanTransitionTo(next) {
		return dErrors.New(dErrors.CodeInvariantViolation,
			"avkortingsvarsel cannot go from "+string(v.Tilstand)+" to "+string(next))
	}
	return nil
}

func (v Avkortingsvarsel) apply(next Tilstand, behandling uuid.UUID, now time.Time) (Avkortingsvarsel, error) {
	if err := v.CanTransitionTo(next); err != nil {
		return Avkortingsvarsel{}, err
	}
	v.Feilutbetaling = append(simulering.ManedBelopListe(nil), v.Feilutbetaling...)
	v.Tilstand = next
	v.Endret = now
	if behandling != uuid.Nil {
		v.BehandletAv = behandling
	}
	return v, nil
}

// SkalAvkortes marks the varsel as outstanding once the revurdering is iverksatt.
func (v Avkortingsvarsel) SkalAvkortes(now time.Time) (Avkortingsvarsel, error) {
	return v.apply(TilstandSkalAvkortes, uuid.Nil, now)
}

// Avkortet marks the varsel as consumed by a later behandling.
func (v Avkortingsvarsel) Avkortet(behandling uuid.UUID, now time.Time) (Avkortingsvarsel, error) {
	return v.apply(TilstandAvkortet, behandling, now)
}

// Annuller cancels the varsel on behalf of behandling.
func (v Avkortingsvarsel) Annuller(behandling uuid.UUID, now time.Time) (Avkortingsvarsel, error) {
	return v.apply(TilstandAnnullert, behandling, now)
}
