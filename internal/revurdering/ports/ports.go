// Package ports declares the collaborators the revurdering service calls out
// to. Adapters live in internal/revurdering/adapters.
package ports

import (
	"context"
	"time"

	"supstonad/internal/beregning"
	"supstonad/internal/revurdering"
	"supstonad/internal/simulering"
	"supstonad/pkg/domain"
)

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks

// Beregner computes the monthly schedule for a revurderingsperiode.
type Beregner interface {
	Beregn(ctx context.Context, req BeregnRequest) (*beregning.Beregning, error)
}

type BeregnRequest struct {
	RevurderingID domain.RevurderingID
	Grunnlag      revurdering.Beregningsgrunnlag
	Begrunnelse   string
}

// Simulator asks the payment system what a vedtak would pay out.
type Simulator interface {
	SimulerUtbetaling(ctx context.Context, req SimuleringRequest) (*simulering.Simulering, error)
	SimulerOpphor(ctx context.Context, req SimuleringRequest) (*simulering.Simulering, error)
}

type SimuleringRequest struct {
	SakID         domain.SakID
	Saksnummer    domain.Saksnummer
	Fnr           domain.Fnr
	Periode       domain.Periode
	Beregning     *beregning.Beregning
	Opphorsdato   domain.Maned
	Saksbehandler domain.NavIdent
}

// Utbetaler generates the utbetalingslinjer for an iverksatt vedtak and
// transmits them.
type Utbetaler interface {
	Iverksett(ctx context.Context, req UtbetalingRequest) (*UtbetalingKvittering, error)
}

type UtbetalingRequest struct {
	SakID         domain.SakID
	Saksnummer    domain.Saksnummer
	Fnr           domain.Fnr
	RevurderingID domain.RevurderingID
	Beregning     *beregning.Beregning
	Simulering    *simulering.Simulering
	Opphorsdato   domain.Maned
	Saksbehandler domain.NavIdent
	Attestant     domain.NavIdent
}

type UtbetalingKvittering struct {
	UtbetalingID domain.UtbetalingID
	Sendt        time.Time
}

type Brevtype string

const (
	BrevVedtakInnvilget Brevtype = "VEDTAK_INNVILGET"
	BrevVedtakOpphor    Brevtype = "VEDTAK_OPPHOR"
	BrevAvsluttet       Brevtype = "AVSLUTTET"
)

// Brev renders letters. Utkast requests are rendered but not journalført.
type Brev interface {
	LagDokument(ctx context.Context, cmd BrevCommand) (*Dokument, error)
}

type BrevCommand struct {
	Type           Brevtype
	SakID          domain.SakID
	Saksnummer     domain.Saksnummer
	Fnr            domain.Fnr
	RevurderingID  domain.RevurderingID
	Periode        domain.Periode
	Saksbehandler  domain.NavIdent
	Attestant      domain.NavIdent
	Fritekst       string
	Beregning      *beregning.Beregning
	Opphorsgrunner []string
	Utkast         bool
}

type Dokument struct {
	ID        domain.DokumentID
	Tittel    string
	PDF       []byte
	Opprettet time.Time
}

// Oppgave manages work items in the case workers' task system.
type Oppgave interface {
	OpprettAttestering(ctx context.Context, req OppgaveRequest) (domain.OppgaveID, error)
	OpprettSaksbehandling(ctx context.Context, req OppgaveRequest) (domain.OppgaveID, error)
	Lukk(ctx context.Context, id domain.OppgaveID) error
}

type OppgaveRequest struct {
	Saksnummer    domain.Saksnummer
	AktorID       domain.AktorID
	RevurderingID domain.RevurderingID
	Tilordnet     domain.NavIdent
}

type Person interface {
	HentAktorID(ctx context.Context, fnr domain.Fnr) (domain.AktorID, error)
}

// Vedtak reads the sak's gjeldende vedtak.
type Vedtak interface {
	HentGjeldendeVedtaksdata(ctx context.Context, sakID domain.SakID, periode domain.Periode) (revurdering.Vedtaksdata, error)
}

// Statistikk receives one event for every persisted transition.
type Statistikk interface {
	Publiser(ctx context.Context, h StatistikkHendelse) error
}

type StatistikkHendelse struct {
	RevurderingID  domain.RevurderingID
	SakID          domain.SakID
	Saksnummer     domain.Saksnummer
	Fnr            domain.Fnr
	Hendelse       string
	Tilstand       revurdering.Tilstand
	Periode        domain.Periode
	Arsak          revurdering.Arsak
	Saksbehandler  domain.NavIdent
	Attestant      domain.NavIdent
	Opphorsgrunner []string
	Tidspunkt      time.Time
}
