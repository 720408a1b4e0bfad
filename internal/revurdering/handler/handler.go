package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"supstonad/internal/grunnlag"
	"supstonad/internal/revurdering"
	"supstonad/internal/revurdering/ports"
	"supstonad/internal/revurdering/service"
	"supstonad/internal/tilbakekreving"
	"supstonad/internal/vilkar"
	"supstonad/pkg/domain"
	dErrors "supstonad/pkg/domain-errors"
	"supstonad/pkg/platform/audit"
	"supstonad/pkg/platform/httputil"
	authmw "supstonad/pkg/platform/middleware/auth"
	"supstonad/pkg/requestcontext"
)

// Service defines the revurdering operations exposed over HTTP.
type Service interface {
	Opprett(ctx context.Context, cmd service.OpprettCommand) (revurdering.Revurdering, error)
	Oppdater(ctx context.Context, cmd service.OppdaterCommand) (revurdering.Revurdering, error)
	Hent(ctx context.Context, id domain.RevurderingID) (revurdering.Revurdering, error)
	HentForSak(ctx context.Context, sakID domain.SakID) ([]revurdering.Revurdering, error)
	Hendelser(ctx context.Context, sakID domain.SakID) ([]audit.Event, error)
	OppdaterVilkar(ctx context.Context, id domain.RevurderingID, v vilkar.Vilkar) (revurdering.Revurdering, error)
	OppdaterFradrag(ctx context.Context, id domain.RevurderingID, fradrag []grunnlag.Fradrag) (revurdering.Revurdering, error)
	OppdaterBosituasjon(ctx context.Context, id domain.RevurderingID, bosituasjon []grunnlag.Bosituasjon) (revurdering.Revurdering, error)
	OppdaterFritekst(ctx context.Context, id domain.RevurderingID, fritekst string) (revurdering.Revurdering, error)
	BeregnOgSimuler(ctx context.Context, id domain.RevurderingID, begrunnelse string) (*service.BeregnOgSimulerResultat, error)
	OppdaterTilbakekreving(ctx context.Context, id domain.RevurderingID, avgjorelse tilbakekreving.Avgjorelse) (revurdering.Revurdering, error)
	SendTilAttestering(ctx context.Context, id domain.RevurderingID) (revurdering.Revurdering, error)
	Underkjenn(ctx context.Context, cmd service.UnderkjennCommand) (revurdering.Revurdering, error)
	Iverksett(ctx context.Context, id domain.RevurderingID) (revurdering.Revurdering, error)
	Avslutt(ctx context.Context, cmd service.AvsluttCommand) (revurdering.Revurdering, error)
	Brevutkast(ctx context.Context, id domain.RevurderingID) (*ports.Dokument, error)
}

// Handler wires revurdering endpoints to the revurdering service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a revurdering handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts the revurdering endpoints. Callers must have run the auth
// middleware; Register adds the rolle checks.
func (h *Handler) Register(r chi.Router) {
	lese := authmw.RequireRolle(h.logger, authmw.RolleSaksbehandler, authmw.RolleAttestant, authmw.RolleVeileder)
	saksbehandler := authmw.RequireRolle(h.logger, authmw.RolleSaksbehandler)
	attestant := authmw.RequireRolle(h.logger, authmw.RolleAttestant)

	r.With(lese).Get("/saker/{sakID}/revurderinger", h.HandleHentForSak)
	r.With(lese).Get("/saker/{sakID}/hendelser", h.HandleHendelser)
	r.With(lese).Get("/revurderinger/{id}", h.HandleHent)

	r.Group(func(r chi.Router) {
		r.Use(saksbehandler)
		r.Post("/saker/{sakID}/revurderinger", h.HandleOpprett)
		r.Put("/revurderinger/{id}", h.HandleOppdater)
		r.Put("/revurderinger/{id}/vilkar/{type}", h.HandleOppdaterVilkar)
		r.Put("/revurderinger/{id}/fradrag", h.HandleOppdaterFradrag)
		r.Put("/revurderinger/{id}/bosituasjon", h.HandleOppdaterBosituasjon)
		r.Put("/revurderinger/{id}/fritekst", h.HandleOppdaterFritekst)
		r.Post("/revurderinger/{id}/beregnOgSimuler", h.HandleBeregnOgSimuler)
		r.Put("/revurderinger/{id}/tilbakekreving", h.HandleOppdaterTilbakekreving)
		r.Post("/revurderinger/{id}/tilAttestering", h.HandleSendTilAttestering)
		r.Post("/revurderinger/{id}/avslutt", h.HandleAvslutt)
		r.Get("/revurderinger/{id}/brevutkast", h.HandleBrevutkast)
	})

	r.Group(func(r chi.Router) {
		r.Use(attestant)
		r.Post("/revurderinger/{id}/underkjenn", h.HandleUnderkjenn)
		r.Post("/revurderinger/{id}/iverksett", h.HandleIverksett)
	})
}

// HandleOpprett handles POST /saker/{sakID}/revurderinger.
func (h *Handler) HandleOpprett(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	sakID, err := domain.ParseSakID(chi.URLParam(r, "sakID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[OpprettRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	res, err := h.service.Opprett(ctx, service.OpprettCommand{
		SakID:       sakID,
		Periode:     req.periode,
		Arsak:       req.arsak,
		Informasjon: req.informasjon,
	})
	if err != nil {
		h.fail(ctx, "opprett revurdering failed", err, "sak_id", sakID.String())
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "revurdering opprettet",
		"request_id", requestID,
		"sak_id", sakID.String(),
		"revurdering_id", res.Behandling().ID.String(),
	)
	httputil.WriteJSON(w, http.StatusCreated, FromRevurdering(res))
}

// HandleHentForSak handles GET /saker/{sakID}/revurderinger.
func (h *Handler) HandleHentForSak(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sakID, err := domain.ParseSakID(chi.URLParam(r, "sakID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	res, err := h.service.HentForSak(ctx, sakID)
	if err != nil {
		h.fail(ctx, "hent revurderinger failed", err, "sak_id", sakID.String())
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromRevurderinger(res))
}

// HandleHendelser handles GET /saker/{sakID}/hendelser.
func (h *Handler) HandleHendelser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sakID, err := domain.ParseSakID(chi.URLParam(r, "sakID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	events, err := h.service.Hendelser(ctx, sakID)
	if err != nil {
		h.fail(ctx, "hent hendelser failed", err, "sak_id", sakID.String())
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromHendelser(events))
}

// HandleHent handles GET /revurderinger/{id}.
func (h *Handler) HandleHent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := revurderingID(w, r)
	if !ok {
		return
	}
	res, err := h.service.Hent(ctx, id)
	if err != nil {
		h.fail(ctx, "hent revurdering failed", err, "revurdering_id", id.String())
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromRevurdering(res))
}

// HandleOppdater handles PUT /revurderinger/{id}.
func (h *Handler) HandleOppdater(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	id, ok := revurderingID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[OppdaterRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	h.respond(w, r, "oppdater revurdering", id, func(ctx context.Context) (revurdering.Revurdering, error) {
		return h.service.Oppdater(ctx, service.OppdaterCommand{
			ID:          id,
			Periode:     req.periode,
			Arsak:       req.arsak,
			Informasjon: req.informasjon,
		})
	})
}

// HandleOppdaterVilkar handles PUT /revurderinger/{id}/vilkar/{type}.
func (h *Handler) HandleOppdaterVilkar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	id, ok := revurderingID(w, r)
	if !ok {
		return
	}
	typ, err := vilkar.ParseType(chi.URLParam(r, "type"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[VilkarRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	v, err := req.Vilkar(typ)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.respond(w, r, "oppdater vilkar", id, func(ctx context.Context) (revurdering.Revurdering, error) {
		return h.service.OppdaterVilkar(ctx, id, v)
	})
}

// HandleOppdaterFradrag handles PUT /revurderinger/{id}/fradrag.
func (h *Handler) HandleOppdaterFradrag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	id, ok := revurderingID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[FradragslisteRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	h.respond(w, r, "oppdater fradrag", id, func(ctx context.Context) (revurdering.Revurdering, error) {
		return h.service.OppdaterFradrag(ctx, id, req.fradrag)
	})
}

// HandleOppdaterBosituasjon handles PUT /revurderinger/{id}/bosituasjon.
func (h *Handler) HandleOppdaterBosituasjon(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	id, ok := revurderingID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[BosituasjonslisteRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	h.respond(w, r, "oppdater bosituasjon", id, func(ctx context.Context) (revurdering.Revurdering, error) {
		return h.service.OppdaterBosituasjon(ctx, id, req.bosituasjon)
	})
}

// HandleOppdaterFritekst handles PUT /revurderinger/{id}/fritekst.
func (h *Handler) HandleOppdaterFritekst(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	id, ok := revurderingID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[FritekstRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	h.respond(w, r, "oppdater fritekst", id, func(ctx context.Context) (revurdering.Revurdering, error) {
		return h.service.OppdaterFritekst(ctx, id, req.Fritekst)
	})
}

// HandleBeregnOgSimuler handles POST /revurderinger/{id}/beregnOgSimuler.
func (h *Handler) HandleBeregnOgSimuler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	id, ok := revurderingID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[BeregnOgSimulerRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	res, err := h.service.BeregnOgSimuler(ctx, id, req.Begrunnelse)
	if err != nil {
		h.fail(ctx, "beregn og simuler failed", err, "revurdering_id", id.String())
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "revurdering beregnet og simulert",
		"request_id", requestID,
		"revurdering_id", id.String(),
		"tilstand", res.Revurdering.Tilstand(),
		"utfall", len(res.Utfall),
	)
	httputil.WriteJSON(w, http.StatusOK, FromBeregnOgSimuler(res))
}

// HandleOppdaterTilbakekreving handles PUT /revurderinger/{id}/tilbakekreving.
func (h *Handler) HandleOppdaterTilbakekreving(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	id, ok := revurderingID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[TilbakekrevingRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	h.respond(w, r, "oppdater tilbakekreving", id, func(ctx context.Context) (revurdering.Revurdering, error) {
		return h.service.OppdaterTilbakekreving(ctx, id, req.avgjorelse)
	})
}

// HandleSendTilAttestering handles POST /revurderinger/{id}/tilAttestering.
func (h *Handler) HandleSendTilAttestering(w http.ResponseWriter, r *http.Request) {
	id, ok := revurderingID(w, r)
	if !ok {
		return
	}
	h.respond(w, r, "send til attestering", id, func(ctx context.Context) (revurdering.Revurdering, error) {
		return h.service.SendTilAttestering(ctx, id)
	})
}

// HandleUnderkjenn handles POST /revurderinger/{id}/underkjenn.
func (h *Handler) HandleUnderkjenn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	id, ok := revurderingID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[UnderkjennRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	h.respond(w, r, "underkjenn", id, func(ctx context.Context) (revurdering.Revurdering, error) {
		return h.service.Underkjenn(ctx, service.UnderkjennCommand{
			ID:        id,
			Grunn:     req.grunn,
			Kommentar: req.Kommentar,
		})
	})
}

// HandleIverksett handles POST /revurderinger/{id}/iverksett.
func (h *Handler) HandleIverksett(w http.ResponseWriter, r *http.Request) {
	id, ok := revurderingID(w, r)
	if !ok {
		return
	}
	h.respond(w, r, "iverksett", id, func(ctx context.Context) (revurdering.Revurdering, error) {
		return h.service.Iverksett(ctx, id)
	})
}

// HandleAvslutt handles POST /revurderinger/{id}/avslutt.
func (h *Handler) HandleAvslutt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	id, ok := revurderingID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[AvsluttRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	h.respond(w, r, "avslutt", id, func(ctx context.Context) (revurdering.Revurdering, error) {
		return h.service.Avslutt(ctx, service.AvsluttCommand{
			ID:          id,
			Begrunnelse: req.Begrunnelse,
			Brevvalg:    req.brevvalg,
		})
	})
}

// HandleBrevutkast handles GET /revurderinger/{id}/brevutkast and streams
// the draft PDF.
func (h *Handler) HandleBrevutkast(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := revurderingID(w, r)
	if !ok {
		return
	}
	dok, err := h.service.Brevutkast(ctx, id)
	if err != nil {
		h.fail(ctx, "brevutkast failed", err, "revurdering_id", id.String())
		httputil.WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Length", strconv.Itoa(len(dok.PDF)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(dok.PDF); err != nil {
		h.logger.WarnContext(ctx, "failed to write brevutkast",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
}

// respond runs a state change and writes the resulting revurdering.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, op string, id domain.RevurderingID, fn func(ctx context.Context) (revurdering.Revurdering, error)) {
	ctx := r.Context()
	res, err := fn(ctx)
	if err != nil {
		h.fail(ctx, op+" failed", err, "revurdering_id", id.String())
		httputil.WriteError(w, err)
		return
	}
	h.logger.InfoContext(ctx, op,
		"request_id", requestcontext.RequestID(ctx),
		"revurdering_id", id.String(),
		"tilstand", res.Tilstand(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromRevurdering(res))
}

// fail logs client errors at warn and everything else at error.
func (h *Handler) fail(ctx context.Context, msg string, err error, attrs ...any) {
	attrs = append(attrs,
		"request_id", requestcontext.RequestID(ctx),
		"nav_ident", requestcontext.NavIdent(ctx).String(),
		"error", err,
	)
	if dErrors.ToHTTPStatus(dErrors.GetCode(err)) < http.StatusInternalServerError {
		h.logger.WarnContext(ctx, msg, attrs...)
		return
	}
	h.logger.ErrorContext(ctx, msg, attrs...)
}

func revurderingID(w http.ResponseWriter, r *http.Request) (domain.RevurderingID, bool) {
	id, err := domain.ParseRevurderingID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return domain.RevurderingID{}, false
	}
	return id, true
}
