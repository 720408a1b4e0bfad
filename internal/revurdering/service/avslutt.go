package service

import (
	"context"
	"time"

	"supstonad/internal/revurdering"
	"supstonad/internal/revurdering/ports"
	"supstonad/pkg/domain"
	"supstonad/pkg/requestcontext"
)

type AvsluttCommand struct {
	ID          domain.RevurderingID
	Begrunnelse string
	Brevvalg    revurdering.Brevvalg
}

// Avslutt closes an open revurdering without a vedtak. The bruker is only
// told when the brevvalg asks for an informasjonsbrev.
func (s *Service) Avslutt(ctx context.Context, cmd AvsluttCommand) (revurdering.Revurdering, error) {
	r, err := s.endre(ctx, opAvslutt, cmd.ID, func(ctx context.Context, r revurdering.Revurdering) (revurdering.Revurdering, error) {
		av, err := saksbehandler(ctx)
		if err != nil {
			return nil, err
		}
		a, err := revurdering.Avslutt(r, cmd.Begrunnelse, cmd.Brevvalg, av, requestcontext.Now(ctx))
		if err != nil {
			return nil, err
		}
		if a.Brevvalg.SkalSendeBrev() {
			f := a.Behandling()
			if _, err := s.lagDokument(ctx, ports.BrevCommand{
				Type:          ports.BrevAvsluttet,
				SakID:         f.SakID,
				Saksnummer:    f.Saksnummer,
				Fnr:           f.Fnr,
				RevurderingID: f.ID,
				Periode:       f.Periode,
				Saksbehandler: av,
				Fritekst:      a.Brevvalg.Fritekst,
			}); err != nil {
				return nil, err
			}
		}
		if err := s.lukkOppgaveStrengt(ctx, a.Behandling().Oppgave); err != nil {
			return nil, err
		}
		return a, nil
	}, "reason", cmd.Begrunnelse)
	if err != nil {
		return nil, err
	}
	s.metrics.IncrementAvsluttet()
	return r, nil
}

// lukkOppgaveStrengt closes the revurdering's last oppgave. Nothing else
// will close it once the revurdering is avsluttet.
func (s *Service) lukkOppgaveStrengt(ctx context.Context, id domain.OppgaveID) error {
	if id == "" {
		return nil
	}
	defer s.observe("oppgave", time.Now())
	if err := s.ports.Oppgave.Lukk(ctx, id); err != nil {
		return ekstern(err, ReasonKunneIkkeLukkeOppgave, "kunne ikke lukke oppgave")
	}
	return nil
}
