package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"supstonad/internal/avkorting"
	"supstonad/internal/grunnlag"
	"supstonad/internal/revurdering"
	"supstonad/internal/revurdering/ports"
	"supstonad/internal/vilkar"
	"supstonad/pkg/domain"
	dErrors "supstonad/pkg/domain-errors"
	"supstonad/pkg/requestcontext"
)

type OpprettCommand struct {
	SakID       domain.SakID
	Periode     domain.Periode
	Arsak       revurdering.Revurderingsarsak
	Informasjon []revurdering.Tema
}

type OppdaterCommand struct {
	ID          domain.RevurderingID
	Periode     domain.Periode
	Arsak       revurdering.Revurderingsarsak
	Informasjon []revurdering.Tema
}

// Opprett starts a revurdering of the sak's gjeldende vedtak. A sak has at
// most one open revurdering.
func (s *Service) Opprett(ctx context.Context, cmd OpprettCommand) (revurdering.Revurdering, error) {
	ctx, span := s.tracer.Start(ctx, "revurdering."+opOpprett.navn,
		trace.WithAttributes(attribute.String("sak_id", cmd.SakID.String())))
	defer span.End()

	sb, err := saksbehandler(ctx)
	if err != nil {
		s.avslutt(ctx, span, opOpprett, err)
		return nil, err
	}
	r, err := s.utfor(ctx, opOpprett, cmd.SakID, func(ctx context.Context) (revurdering.Revurdering, error) {
		apen, err := s.revurderinger.HentApen(ctx, cmd.SakID)
		if err != nil {
			return nil, fraLager(err, "failed to load open revurdering")
		}
		if apen != nil {
			return nil, dErrors.NewReason(dErrors.CodeConflict, revurdering.ReasonApenRevurderingFinnes,
				"saken har allerede en åpen revurdering")
		}
		vedtak, utestaende, err := s.hentVedtaksgrunnlag(ctx, cmd.SakID, cmd.Periode)
		if err != nil {
			return nil, err
		}
		opprettet, err := revurdering.Opprett(revurdering.NyRevurdering{
			SakID:         cmd.SakID,
			Periode:       cmd.Periode,
			Arsak:         cmd.Arsak,
			Informasjon:   cmd.Informasjon,
			Saksbehandler: sb,
			Vedtak:        vedtak,
			Utestaende:    utestaende,
		}, requestcontext.Now(ctx))
		if err != nil {
			return nil, err
		}
		opprettet.Oppgave, err = s.opprettOppgave(ctx, s.ports.Oppgave.OpprettSaksbehandling, opprettet.Felles, sb)
		if err != nil {
			return nil, err
		}
		return opprettet, nil
	})
	s.avslutt(ctx, span, opOpprett, err)
	if err != nil {
		return nil, err
	}
	s.publiserStatistikk(ctx, opOpprett, r)
	return r, nil
}

// Oppdater replaces periode, årsak and topic selection. Any beregning is
// discarded.
func (s *Service) Oppdater(ctx context.Context, cmd OppdaterCommand) (revurdering.Revurdering, error) {
	return s.endre(ctx, opOppdater, cmd.ID, func(ctx context.Context, r revurdering.Revurdering) (revurdering.Revurdering, error) {
		k, ok := r.(revurdering.KanOppdateres)
		if !ok {
			return nil, revurdering.UgyldigTilstand(r, revurdering.TilstandOpprettet)
		}
		sb, err := saksbehandler(ctx)
		if err != nil {
			return nil, err
		}
		vedtak, utestaende, err := s.hentVedtaksgrunnlag(ctx, r.Behandling().SakID, cmd.Periode)
		if err != nil {
			return nil, err
		}
		return revurdering.Oppdater(k, revurdering.Oppdatering{
			Periode:     cmd.Periode,
			Arsak:       cmd.Arsak,
			Informasjon: cmd.Informasjon,
			Vedtak:      vedtak,
			Utestaende:  utestaende,
		}, sb)
	})
}

func (s *Service) OppdaterVilkar(ctx context.Context, id domain.RevurderingID, v vilkar.Vilkar) (revurdering.Revurdering, error) {
	return s.endre(ctx, opOppdaterVilkar, id, oppdatering(func(k revurdering.KanOppdateres, sb domain.NavIdent) (revurdering.Revurdering, error) {
		return revurdering.OppdaterVilkar(k, v, sb)
	}))
}

func (s *Service) OppdaterFradrag(ctx context.Context, id domain.RevurderingID, fradrag []grunnlag.Fradrag) (revurdering.Revurdering, error) {
	return s.endre(ctx, opOppdaterFradrag, id, oppdatering(func(k revurdering.KanOppdateres, sb domain.NavIdent) (revurdering.Revurdering, error) {
		return revurdering.OppdaterFradrag(k, fradrag, sb)
	}))
}

func (s *Service) OppdaterBosituasjon(ctx context.Context, id domain.RevurderingID, bosituasjon []grunnlag.Bosituasjon) (revurdering.Revurdering, error) {
	return s.endre(ctx, opOppdaterBosituasjon, id, oppdatering(func(k revurdering.KanOppdateres, sb domain.NavIdent) (revurdering.Revurdering, error) {
		return revurdering.OppdaterBosituasjon(k, bosituasjon, sb)
	}))
}

// OppdaterFritekst changes the letter text and keeps the current state.
func (s *Service) OppdaterFritekst(ctx context.Context, id domain.RevurderingID, fritekst string) (revurdering.Revurdering, error) {
	return s.endre(ctx, opOppdaterFritekst, id, oppdatering(func(k revurdering.KanOppdateres, _ domain.NavIdent) (revurdering.Revurdering, error) {
		return revurdering.OppdaterFritekst(k, fritekst), nil
	}))
}

// oppdatering adapts an update of an updatable state to an endring.
func oppdatering(fn func(k revurdering.KanOppdateres, sb domain.NavIdent) (revurdering.Revurdering, error)) endring {
	return func(ctx context.Context, r revurdering.Revurdering) (revurdering.Revurdering, error) {
		k, ok := r.(revurdering.KanOppdateres)
		if !ok {
			return nil, revurdering.UgyldigTilstand(r, revurdering.TilstandOpprettet)
		}
		sb, err := saksbehandler(ctx)
		if err != nil {
			return nil, err
		}
		return fn(k, sb)
	}
}

// hentVedtaksgrunnlag loads the gjeldende vedtak and the outstanding
// avkortingsvarsel in parallel.
func (s *Service) hentVedtaksgrunnlag(ctx context.Context, sakID domain.SakID, periode domain.Periode) (revurdering.Vedtaksdata, *avkorting.Avkortingsvarsel, error) {
	var (
		vedtak     revurdering.Vedtaksdata
		utestaende *avkorting.Avkortingsvarsel
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer s.observe("vedtak", time.Now())
		v, err := s.ports.Vedtak.HentGjeldendeVedtaksdata(gctx, sakID, periode)
		if err != nil {
			return ekstern(err, ReasonFantIkkeGjeldendeVedtak, "fant ikke gjeldende vedtak for perioden")
		}
		vedtak = v
		return nil
	})
	g.Go(func() error {
		v, err := s.avkorting.HentUtestaende(gctx, sakID)
		if err != nil {
			return fraLager(err, "failed to load avkortingsvarsel")
		}
		utestaende = v
		return nil
	})
	if err := g.Wait(); err != nil {
		return revurdering.Vedtaksdata{}, nil, err
	}
	return vedtak, utestaende, nil
}

func (s *Service) aktorID(ctx context.Context, fnr domain.Fnr) (domain.AktorID, error) {
	defer s.observe("person", time.Now())
	id, err := s.ports.Person.HentAktorID(ctx, fnr)
	if err != nil {
		return "", ekstern(err, ReasonFantIkkeAktorID, "fant ikke aktør-id")
	}
	return id, nil
}

type opprettOppgaveFunc func(ctx context.Context, req ports.OppgaveRequest) (domain.OppgaveID, error)

func (s *Service) opprettOppgave(ctx context.Context, opprett opprettOppgaveFunc, f revurdering.Felles, tilordnet domain.NavIdent) (domain.OppgaveID, error) {
	aktor, err := s.aktorID(ctx, f.Fnr)
	if err != nil {
		return "", err
	}
	defer s.observe("oppgave", time.Now())
	id, err := opprett(ctx, ports.OppgaveRequest{
		Saksnummer:    f.Saksnummer,
		AktorID:       aktor,
		RevurderingID: f.ID,
		Tilordnet:     tilordnet,
	})
	if err != nil {
		return "", ekstern(err, ReasonKunneIkkeOppretteOppgave, "kunne ikke opprette oppgave")
	}
	return id, nil
}

// lukkOppgave closes a superseded oppgave after commit. The transition does
// not depend on it, so a failure is only logged.
func (s *Service) lukkOppgave(ctx context.Context, id domain.OppgaveID) {
	if id == "" {
		return
	}
	defer s.observe("oppgave", time.Now())
	if err := s.ports.Oppgave.Lukk(ctx, id); err != nil {
		s.logger.WarnContext(ctx, "failed to close oppgave", "oppgave_id", string(id), "error", err)
	}
}
