// Package tilbakekreving decides whether a feilutbetaling found by simulering
// needs a recovery decision before the revurdering can be attested.
//
//	IkkeBehov
//	IkkeAvgjort -> Tilbakekrev | IkkeTilbakekrev
//
// Every variant except IkkeAvgjort can be finalized into a Ferdigbehandlet
// when the revurdering is iverksatt.
package tilbakekreving

import (
	"time"

	"github.com/google/uuid"

	"supstonad/internal/simulering"
	"supstonad/pkg/domain"
	dErrors "supstonad/pkg/domain-errors"
)

type Variant string

const (
	VariantIkkeBehov       Variant = "IKKE_BEHOV"
	VariantIkkeAvgjort     Variant = "IKKE_AVGJORT"
	VariantTilbakekrev     Variant = "TILBAKEKREV"
	VariantIkkeTilbakekrev Variant = "IKKE_TILBAKEKREV"
)

// Avgjorelse is the saksbehandler's recovery decision.
type Avgjorelse string

const (
	AvgjorelseTilbakekrev     Avgjorelse = "TILBAKEKREV"
	AvgjorelseIkkeTilbakekrev Avgjorelse = "IKKE_TILBAKEKREV"
)

func ParseAvgjorelse(s string) (Avgjorelse, error) {
	switch a := Avgjorelse(s); a {
	case AvgjorelseTilbakekrev, AvgjorelseIkkeTilbakekrev:
		return a, nil
	}
	return "", dErrors.New(dErrors.CodeInvalidInput, "unknown avgjorelse: "+s)
}

// UnderBehandling is the recovery state of a simulert revurdering.
type UnderBehandling interface {
	underBehandling()
	Variant() Variant
}

// KanAvgjores is implemented by the variants a saksbehandler may decide or
// re-decide.
type KanAvgjores interface {
	UnderBehandling
	Avgjor(a Avgjorelse, saksbehandler domain.NavIdent, now time.Time) (UnderBehandling, error)
}

// KanFerdigbehandles is implemented by every variant that needs no further
// decision.
type KanFerdigbehandles interface {
	UnderBehandling
	Ferdigbehandle() Ferdigbehandlet
}

type IkkeBehov struct{}

// IkkeAvgjort awaits the saksbehandler's decision on the overpaid months.
type IkkeAvgjort struct {
	ID             uuid.UUID                  `json:"id"`
	Opprettet      time.Time                  `json:"opprettet"`
	Feilutbetaling simulering.ManedBelopListe `json:"feilutbetaling"`
}

type Tilbakekrev struct {
	IkkeAvgjort
	Saksbehandler domain.NavIdent `json:"saksbehandler"`
	Avgjort       time.Time       `json:"avgjort"`
}

type IkkeTilbakekrev struct {
	IkkeAvgjort
	Saksbehandler domain.NavIdent `json:"saksbehandler"`
	Avgjort       time.Time       `json:"avgjort"`
}

func (IkkeBehov) underBehandling()       {}
func (IkkeAvgjort) underBehandling()     {}
func (Tilbakekrev) underBehandling()     {}
func (IkkeTilbakekrev) underBehandling() {}

func (IkkeBehov) Variant() Variant       { return VariantIkkeBehov }
func (IkkeAvgjort) Variant() Variant     { return VariantIkkeAvgjort }
func (Tilbakekrev) Variant() Variant     { return VariantTilbakekrev }
func (IkkeTilbakekrev) Variant() Variant { return VariantIkkeTilbakekrev }

// Vurder opens a recovery decision when the simulering finds a feilutbetaling
// that is neither deferred nor already covered by a new avkortingsvarsel.
func Vurder(sim *simulering.Simulering, skalUtsette, dekketAvAvkorting bool, now time.Time) UnderBehandling {
	if !sim.HarFeilutbetalinger() || skalUtsette || dekketAvAvkorting {
		return IkkeBehov{}
	}
	return IkkeAvgjort{
		ID:             uuid.New(),
		Opprettet:      now,
		Feilutbetaling: sim.FeilutbetalteBelop(),
	}
}

// ErAvgjort is false only for IkkeAvgjort, which blocks attestering.
func ErAvgjort(u UnderBehandling) bool {
	_, apen := u.(IkkeAvgjort)
	return !apen
}

// KreverTilbakekreving reports whether u will recover money from the bruker.
func KreverTilbakekreving(u UnderBehandling) bool {
	switch u.(type) {
	case IkkeAvgjort, Tilbakekrev:
		return true
	}
	return false
}

func (i IkkeAvgjort) Avgjor(a Avgjorelse, saksbehandler domain.NavIdent, now time.Time) (UnderBehandling, error) {
	if saksbehandler.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "saksbehandler is required")
	}
	i.Feilutbetaling = append(simulering.ManedBelopListe(nil), i.Feilutbetaling...)
	switch a {
	case AvgjorelseTilbakekrev:
		return Tilbakekrev{IkkeAvgjort: i, Saksbehandler: saksbehandler, Avgjort: now}, nil
	case AvgjorelseIkkeTilbakekrev:
		return IkkeTilbakekrev{IkkeAvgjort: i, Saksbehandler: saksbehandler, Avgjort: now}, nil
	}
	return nil, dErrors.New(dErrors.CodeInvalidInput, "unknown avgjorelse: "+string(a))
}

func (t Tilbakekrev) Avgjor(a Avgjorelse, saksbehandler domain.NavIdent, now time.Time) (UnderBehandling, error) {
	return t.IkkeAvgjort.Avgjor(a, saksbehandler, now)
}

func (t IkkeTilbakekrev) Avgjor(a Avgjorelse, saksbehandler domain.NavIdent, now time.Time) (UnderBehandling, error) {
	return t.IkkeAvgjort.Avgjor(a, saksbehandler, now)
}

// Ferdigbehandlet is the recovery outcome committed with the vedtak.
type Ferdigbehandlet struct {
	Avgjorelse     Avgjorelse                 `json:"avgjorelse,omitempty"`
	BehandlingID   uuid.UUID                  `json:"behandlingId"`
	Feilutbetaling simulering.ManedBelopListe `json:"feilutbetaling,omitempty"`
	Saksbehandler  domain.NavIdent            `json:"saksbehandler,omitempty"`
	Avgjort        time.Time                  `json:"avgjort"`
}

// SkalTilbakekreve reports whether a kravgrunnlag is expected from the
// payment system.
func (f Ferdigbehandlet) SkalTilbakekreve() bool { return f.Avgjorelse == AvgjorelseTilbakekrev }

func (IkkeBehov) Ferdigbehandle() Ferdigbehandlet { return Ferdigbehandlet{} }

func (t Tilbakekrev) Ferdigbehandle() Ferdigbehandlet {
	return ferdig(AvgjorelseTilbakekrev, t.IkkeAvgjort, t.Saksbehandler, t.Avgjort)
}

func (t IkkeTilbakekrev) Ferdigbehandle() Ferdigbehandlet {
	return ferdig(AvgjorelseIkkeTilbakekrev, t.IkkeAvgjort, t.Saksbehandler, t.Avgjort)
}

func ferdig(a Avgjorelse, i IkkeAvgjort, saksbehandler domain.NavIdent, avgjort time.Time) Ferdigbehandlet {
	return Ferdigbehandlet{
		Avgjorelse:     a,
		BehandlingID:   i.ID,
		Feilutbetaling: append(simulering.ManedBelopListe(nil), i.Feilutbetaling...),
		Saksbehandler:  saksbehandler,
		Avgjort:        avgjort,
	}
}
