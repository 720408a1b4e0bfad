package service

import (
	"context"
	"time"

	"supstonad/internal/revurdering"
	"supstonad/internal/revurdering/ports"
	"supstonad/pkg/domain"
	dErrors "supstonad/pkg/domain-errors"
	"supstonad/pkg/platform/audit"
	"supstonad/pkg/requestcontext"
)

type UnderkjennCommand struct {
	ID        domain.RevurderingID
	Grunn     revurdering.UnderkjennGrunn
	Kommentar string
}

// SendTilAttestering hands a simulert or underkjent revurdering to an
// attestant. Every unsupported outcome is reported at once.
func (s *Service) SendTilAttestering(ctx context.Context, id domain.RevurderingID) (revurdering.Revurdering, error) {
	return s.endre(ctx, opSendTilAttestering, id, func(ctx context.Context, r revurdering.Revurdering) (revurdering.Revurdering, error) {
		k, ok := r.(revurdering.KanSendesTilAttestering)
		if !ok {
			return nil, revurdering.UgyldigTilstand(r, revurdering.TilTilAttestering...)
		}
		sb, err := saksbehandler(ctx)
		if err != nil {
			return nil, err
		}
		ta, err := revurdering.SendTilAttestering(k, "", sb, requestcontext.Now(ctx))
		if err != nil {
			return nil, err
		}
		ta.Oppgave, err = s.opprettOppgave(ctx, s.ports.Oppgave.OpprettAttestering, ta.Felles, "")
		if err != nil {
			return nil, err
		}
		return ta, nil
	})
}

// Underkjenn sends the revurdering back to the saksbehandler. The attestant
// may not be the saksbehandler.
func (s *Service) Underkjenn(ctx context.Context, cmd UnderkjennCommand) (revurdering.Revurdering, error) {
	return s.endre(ctx, opUnderkjenn, cmd.ID, func(ctx context.Context, r revurdering.Revurdering) (revurdering.Revurdering, error) {
		ta, ok := r.(revurdering.TilAttestering)
		if !ok {
			return nil, revurdering.UgyldigTilstand(r, revurdering.TilUnderkjent...)
		}
		attestant, err := saksbehandler(ctx)
		if err != nil {
			return nil, err
		}
		u, err := ta.Underkjenn(revurdering.Underkjenning{
			Attestant: attestant,
			Grunn:     cmd.Grunn,
			Kommentar: cmd.Kommentar,
		}, "", requestcontext.Now(ctx))
		if err != nil {
			return nil, err
		}
		u.Oppgave, err = s.opprettOppgave(ctx, s.ports.Oppgave.OpprettSaksbehandling, u.Felles, u.Saksbehandler)
		if err != nil {
			return nil, err
		}
		return u, nil
	}, "reason", string(cmd.Grunn))
}

// Iverksett attests the revurdering, issues the utbetaling, journalfører the
// vedtaksbrev and commits the avkorting decision. The Utbetaler is
// idempotent per revurdering, so a retry after a failed commit does not pay
// twice. The attestering oppgave is closed once the commit succeeded.
func (s *Service) Iverksett(ctx context.Context, id domain.RevurderingID) (revurdering.Revurdering, error) {
	return s.endre(ctx, opIverksett, id, func(ctx context.Context, r revurdering.Revurdering) (revurdering.Revurdering, error) {
		ta, ok := r.(revurdering.TilAttestering)
		if !ok {
			return nil, revurdering.UgyldigTilstand(r, revurdering.TilIverksatt...)
		}
		attestant, err := saksbehandler(ctx)
		if err != nil {
			return nil, err
		}
		iverksatt, err := ta.Iverksett(attestant, requestcontext.Now(ctx), func(i revurdering.Iverksatt) (domain.UtbetalingID, error) {
			return s.utbetal(ctx, i, attestant)
		})
		if err != nil {
			return nil, err
		}
		if err := s.lagVedtaksbrev(ctx, &iverksatt, attestant); err != nil {
			return nil, err
		}
		if err := s.lagreAvkorting(ctx, iverksatt); err != nil {
			return nil, err
		}
		return iverksatt, nil
	})
}

func (s *Service) utbetal(ctx context.Context, i revurdering.Iverksatt, attestant domain.NavIdent) (domain.UtbetalingID, error) {
	req := ports.UtbetalingRequest{
		SakID:         i.SakID,
		Saksnummer:    i.Saksnummer,
		Fnr:           i.Fnr,
		RevurderingID: i.ID,
		Beregning:     i.Beregning,
		Simulering:    i.Simulering,
		Saksbehandler: i.Saksbehandler,
		Attestant:     attestant,
	}
	if dato, ok := i.Opphor.Opphorsdato(); ok {
		req.Opphorsdato = dato
	}
	defer s.observe("utbetaler", time.Now())
	kvittering, err := s.ports.Utbetaler.Iverksett(ctx, req)
	if err != nil {
		return domain.UtbetalingID{}, ekstern(err, ReasonKunneIkkeUtbetale, "kunne ikke iverksette utbetaling")
	}
	return kvittering.UtbetalingID, nil
}

func (s *Service) lagVedtaksbrev(ctx context.Context, i *revurdering.Iverksatt, attestant domain.NavIdent) error {
	cmd := vedtaksbrev(i.Felles, i.Beregning, i.Opphor)
	cmd.Attestant = attestant
	dok, err := s.lagDokument(ctx, cmd)
	if err != nil {
		return err
	}
	i.Vedtaksbrev = dok.ID
	return nil
}

// lagreAvkorting applies the varsel writes of an iverksatt revurdering in one
// store call, so the annulment never lands without the new varsel.
func (s *Service) lagreAvkorting(ctx context.Context, i revurdering.Iverksatt) error {
	effekter := i.Avkorting.Effekter()
	if effekter.Annulleres == nil && effekter.Opprettes == nil {
		return nil
	}
	if err := s.avkorting.Erstatt(ctx, effekter.Annulleres, effekter.Opprettes); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store avkortingsvarsel")
	}
	if v := effekter.Annulleres; v != nil {
		if err := s.logAudit(ctx, audit.EventAvkortingsvarselAnnullert, i, "avkortingsvarsel_id", v.ID.String()); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record audit event")
		}
	}
	if v := effekter.Opprettes; v != nil {
		if err := s.logAudit(ctx, audit.EventAvkortingsvarselOpprettet, i,
			"avkortingsvarsel_id", v.ID.String(),
			"belop", v.Belop(),
		); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record audit event")
		}
	}
	return nil
}
