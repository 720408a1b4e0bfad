package revurdering

import (
	"time"

	"supstonad/internal/avkorting"
	"supstonad/internal/grunnlag"
	"supstonad/internal/vilkar"
	"supstonad/pkg/domain"
	dErrors "supstonad/pkg/domain-errors"
)

// Opprettet is a revurdering whose inputs may still change. Any earlier
// beregning or simulering has been discarded.
type Opprettet struct {
	Felles
	Avkorting avkorting.Uhandtert
}

func (o Opprettet) Behandling() Felles { return o.Felles }
func (Opprettet) Tilstand() Tilstand   { return TilstandOpprettet }
func (Opprettet) sealed()              {}
func (Opprettet) kanBeregnes()         {}

func (o Opprettet) tilbakestill() (Felles, avkorting.Uhandtert) {
	return o.Felles.clone(), o.Avkorting
}

func (o Opprettet) medFritekst(fritekst string) Revurdering {
	o.Felles = o.Felles.clone()
	o.Fritekst = fritekst
	return o
}

// NyRevurdering is the input to Opprett.
type NyRevurdering struct {
	ID            domain.RevurderingID
	SakID         domain.SakID
	Periode       domain.Periode
	Arsak         Revurderingsarsak
	Informasjon   []Tema
	Saksbehandler domain.NavIdent
	Vedtak        Vedtaksdata
	Utestaende    *avkorting.Avkortingsvarsel
	Oppgave       domain.OppgaveID
}

// Opprett starts a revurdering of the gjeldende vedtak for a periode. The
// sak's outstanding avkortingsvarsel is classified against the periode.
func Opprett(n NyRevurdering, now time.Time) (Opprettet, error) {
	if n.Vedtak.VedtakID.IsNil() {
		return Opprettet{}, dErrors.New(dErrors.CodeInvariantViolation, "revurdering requires a gjeldende vedtak")
	}
	if n.Saksbehandler.IsZero() {
		return Opprettet{}, dErrors.New(dErrors.CodeInvalidInput, "saksbehandler is required")
	}
	info, err := NyInformasjonsrevurdert(n.Informasjon)
	if err != nil {
		return Opprettet{}, err
	}
	uhandtert, err := avkorting.Vurder(n.Utestaende, n.Periode)
	if err != nil {
		return Opprettet{}, err
	}
	id := n.ID
	if id.IsNil() {
		id = domain.NewRevurderingID()
	}
	f := Felles{
		ID:                    id,
		SakID:                 n.SakID,
		Saksnummer:            n.Vedtak.Saksnummer,
		Fnr:                   n.Vedtak.Fnr,
		Opprettet:             now,
		Periode:               n.Periode,
		TilRevurdering:        n.Vedtak.VedtakID,
		Saksbehandler:         n.Saksbehandler,
		Arsak:                 n.Arsak,
		Informasjonsrevurdert: info,
		Vilkar:                n.Vedtak.Vilkar,
		Grunnlag:              n.Vedtak.Grunnlag,
		Gjeldende:             n.Vedtak.Maneder,
		Oppgave:               n.Oppgave,
	}
	return Opprettet{Felles: f.clone(), Avkorting: uhandtert}, nil
}

// Oppdatering replaces the periode, årsak and topic selection. The caller
// supplies the vedtaksdata and outstanding varsel for the new periode.
type Oppdatering struct {
	Periode     domain.Periode
	Arsak       Revurderingsarsak
	Informasjon []Tema
	Vedtak      Vedtaksdata
	Utestaende  *avkorting.Avkortingsvarsel
}

func Oppdater(r KanOppdateres, o Oppdatering, saksbehandler domain.NavIdent) (Opprettet, error) {
	f, _ := r.tilbakestill()
	ny, err := Opprett(NyRevurdering{
		ID:            f.ID,
		SakID:         f.SakID,
		Periode:       o.Periode,
		Arsak:         o.Arsak,
		Informasjon:   o.Informasjon,
		Saksbehandler: saksbehandler,
		Vedtak:        o.Vedtak,
		Utestaende:    o.Utestaende,
		Oppgave:       f.Oppgave,
	}, f.Opprettet)
	if err != nil {
		return Opprettet{}, err
	}
	ny.Fritekst = f.Fritekst
	ny.Attesteringer = f.Attesteringer
	return ny, nil
}

// OppdaterVilkar replaces one vilkår and marks its topic as vurdert.
func OppdaterVilkar(r KanOppdateres, v vilkar.Vilkar, saksbehandler domain.NavIdent) (Opprettet, error) {
	f, avk := r.tilbakestill()
	if !v.Dekker(f.Periode) {
		return Opprettet{}, dErrors.NewReason(dErrors.CodeValidation, ReasonVilkarDekkerIkkePerioden,
			"vurderingsperiodene må dekke hele "+f.Periode.String())
	}
	f.Vilkar = f.Vilkar.Oppdater(v)
	f.Informasjonsrevurdert = f.Informasjonsrevurdert.Marker(temaForVilkar[v.Type])
	f.Saksbehandler = saksbehandler
	return Opprettet{Felles: f, Avkorting: avk}, nil
}

func OppdaterFradrag(r KanOppdateres, fradrag []grunnlag.Fradrag, saksbehandler domain.NavIdent) (Opprettet, error) {
	f, avk := r.tilbakestill()
	g := f.Grunnlag.MedFradrag(fradrag)
	if err := g.ValiderFor(f.Periode); err != nil {
		return Opprettet{}, err
	}
	f.Grunnlag = g
	f.Informasjonsrevurdert = f.Informasjonsrevurdert.Marker(TemaInntekt)
	f.Saksbehandler = saksbehandler
	return Opprettet{Felles: f, Avkorting: avk}, nil
}

func OppdaterBosituasjon(r KanOppdateres, bosituasjon []grunnlag.Bosituasjon, saksbehandler domain.NavIdent) (Opprettet, error) {
	f, avk := r.tilbakestill()
	g := f.Grunnlag.MedBosituasjon(bosituasjon)
	if err := g.ValiderFor(f.Periode); err != nil {
		return Opprettet{}, err
	}
	f.Grunnlag = g
	f.Informasjonsrevurdert = f.Informasjonsrevurdert.Marker(TemaBosituasjon)
	f.Saksbehandler = saksbehandler
	return Opprettet{Felles: f, Avkorting: avk}, nil
}

// OppdaterFritekst changes the letter text without leaving the current state.
func OppdaterFritekst(r KanOppdateres, fritekst string) Revurdering {
	return r.medFritekst(fritekst)
}

// Tilbakestill discards any beregning and simulering.
func Tilbakestill(r KanOppdateres) Opprettet {
	f, avk := r.tilbakestill()
	return Opprettet{Felles: f, Avkorting: avk}
}
