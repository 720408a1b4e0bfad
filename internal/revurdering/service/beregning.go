package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"supstonad/internal/beregning"
	"supstonad/internal/opphor"
	"supstonad/internal/revurdering"
	"supstonad/internal/revurdering/ports"
	"supstonad/internal/revurdering/utfall"
	"supstonad/internal/simulering"
	"supstonad/internal/tilbakekreving"
	"supstonad/pkg/domain"
	dErrors "supstonad/pkg/domain-errors"
	"supstonad/pkg/platform/audit"
	"supstonad/pkg/requestcontext"
)

// BeregnOgSimulerResultat is the simulert revurdering together with the
// outcomes that will stop it at attestering.
type BeregnOgSimulerResultat struct {
	Revurdering revurdering.Revurdering
	Utfall      []utfall.Utfall
}

// BeregnOgSimuler computes a new beregning, simulates it and reconciles the
// result with avkorting and tilbakekreving. A beregnet or simulert
// revurdering is reset first.
func (s *Service) BeregnOgSimuler(ctx context.Context, id domain.RevurderingID, begrunnelse string) (*BeregnOgSimulerResultat, error) {
	r, err := s.endre(ctx, opBeregnOgSimuler, id, func(ctx context.Context, r revurdering.Revurdering) (revurdering.Revurdering, error) {
		k, ok := r.(revurdering.KanBeregnes)
		if !ok {
			o, ok := r.(revurdering.KanOppdateres)
			if !ok {
				return nil, revurdering.UgyldigTilstand(r, revurdering.TilBeregnet...)
			}
			k = revurdering.Tilbakestill(o)
		}
		sb, err := saksbehandler(ctx)
		if err != nil {
			return nil, err
		}
		grunnlag, err := revurdering.GrunnlagForBeregning(k)
		if err != nil {
			return nil, err
		}
		f := k.Behandling()

		start := time.Now()
		b, err := s.ports.Beregner.Beregn(ctx, ports.BeregnRequest{
			RevurderingID: f.ID,
			Grunnlag:      grunnlag,
			Begrunnelse:   begrunnelse,
		})
		s.observe("beregner", start)
		if err != nil {
			return nil, ekstern(err, ReasonKunneIkkeBeregne, "kunne ikke beregne")
		}
		beregnet, err := revurdering.Beregn(k, b, sb)
		if err != nil {
			return nil, err
		}
		sim, err := s.simuler(ctx, f, beregnet.Beregningsresultat(), sb)
		if err != nil {
			return nil, err
		}
		return revurdering.Simuler(beregnet, sim, s.valg, sb, requestcontext.Now(ctx))
	})
	if err != nil {
		return nil, err
	}
	res := &BeregnOgSimulerResultat{Revurdering: r}
	if b, ok := r.(revurdering.KanLageBrevutkast); ok {
		res.Utfall = revurdering.VurderUtfall(b)
	}
	return res, nil
}

// simuler simulates an opphør from its opphørsdato and everything else as
// an ordinary utbetaling.
func (s *Service) simuler(ctx context.Context, f revurdering.Felles, data revurdering.Beregningsdata, sb domain.NavIdent) (*simulering.Simulering, error) {
	req := ports.SimuleringRequest{
		SakID:         f.SakID,
		Saksnummer:    f.Saksnummer,
		Fnr:           f.Fnr,
		Periode:       f.Periode,
		Beregning:     data.Beregning,
		Saksbehandler: sb,
	}
	defer s.observe("simulator", time.Now())
	var (
		sim *simulering.Simulering
		err error
	)
	if dato, ok := data.Opphor.Opphorsdato(); ok {
		req.Opphorsdato = dato
		sim, err = s.ports.Simulator.SimulerOpphor(ctx, req)
	} else {
		sim, err = s.ports.Simulator.SimulerUtbetaling(ctx, req)
	}
	if err != nil {
		return nil, ekstern(err, ReasonKunneIkkeSimulere, "kunne ikke simulere")
	}
	return sim, nil
}

// OppdaterTilbakekreving records whether a feilutbetaling is recovered.
func (s *Service) OppdaterTilbakekreving(ctx context.Context, id domain.RevurderingID, avgjorelse tilbakekreving.Avgjorelse) (revurdering.Revurdering, error) {
	return s.endre(ctx, opOppdaterTilbakekreving, id, func(ctx context.Context, r revurdering.Revurdering) (revurdering.Revurdering, error) {
		k, ok := r.(revurdering.KanSendesTilAttestering)
		if !ok {
			return nil, revurdering.UgyldigTilstand(r, revurdering.TilSimulert...)
		}
		sb, err := saksbehandler(ctx)
		if err != nil {
			return nil, err
		}
		return revurdering.OppdaterTilbakekreving(k, avgjorelse, sb, requestcontext.Now(ctx))
	})
}

// Brevutkast renders the vedtaksbrev the revurdering would send, without
// storing it.
func (s *Service) Brevutkast(ctx context.Context, id domain.RevurderingID) (*ports.Dokument, error) {
	ctx, span := s.tracer.Start(ctx, "revurdering.brevutkast",
		trace.WithAttributes(attribute.String("revurdering_id", id.String())))
	defer span.End()

	r, err := s.hent(ctx, id)
	if err != nil {
		return nil, err
	}
	b, ok := r.(revurdering.KanLageBrevutkast)
	if !ok {
		return nil, dErrors.NewReason(dErrors.CodeInvalidState, revurdering.ReasonUgyldigTilstand,
			"kan ikke lage brevutkast for en revurdering i tilstand "+string(r.Tilstand()))
	}
	if _, err := saksbehandler(ctx); err != nil {
		return nil, err
	}
	cmd := vedtaksbrev(b.Behandling(), b.Simuleringsresultat().Beregning, b.Simuleringsresultat().Opphor)
	cmd.Utkast = true
	dok, err := s.lagDokument(ctx, cmd)
	if err != nil {
		return nil, err
	}
	if err := s.logAudit(ctx, audit.EventBrevutkastLaget, r); err != nil {
		s.logger.WarnContext(ctx, "failed to record brevutkast", "error", err)
	}
	return dok, nil
}

func vedtaksbrev(f revurdering.Felles, b *beregning.Beregning, res opphor.Resultat) ports.BrevCommand {
	typ := ports.BrevVedtakInnvilget
	if res.ErOpphor() {
		typ = ports.BrevVedtakOpphor
	}
	return ports.BrevCommand{
		Type:           typ,
		SakID:          f.SakID,
		Saksnummer:     f.Saksnummer,
		Fnr:            f.Fnr,
		RevurderingID:  f.ID,
		Periode:        f.Periode,
		Saksbehandler:  f.Saksbehandler,
		Fritekst:       f.Fritekst,
		Beregning:      b,
		Opphorsgrunner: opphorsgrunner(res.Grunner()),
	}
}

func (s *Service) lagDokument(ctx context.Context, cmd ports.BrevCommand) (*ports.Dokument, error) {
	defer s.observe("brev", time.Now())
	dok, err := s.ports.Brev.LagDokument(ctx, cmd)
	if err != nil {
		return nil, ekstern(err, ReasonKunneIkkeLageDokument, "kunne ikke lage dokument")
	}
	return dok, nil
}

func opphorsgrunner(grunner []opphor.Grunn) []string {
	if len(grunner) == 0 {
		return nil
	}
	out := make([]string, len(grunner))
	for i, g := range grunner {
		out[i] = string(g)
	}
	return out
}
