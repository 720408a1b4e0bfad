// Package service orchestrates revurderinger: it loads the current state,
// applies a domain transition, calls the collaborators behind the ports and
// stores the result, one sak at a time.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"supstonad/internal/avkorting"
	"supstonad/internal/platform/lock"
	"supstonad/internal/revurdering"
	"supstonad/internal/revurdering/metrics"
	"supstonad/internal/revurdering/ports"
	"supstonad/pkg/attrs"
	"supstonad/pkg/domain"
	dErrors "supstonad/pkg/domain-errors"
	"supstonad/pkg/platform/audit"
	"supstonad/pkg/platform/privacy"
	"supstonad/pkg/platform/sentinel"
	"supstonad/pkg/platform/tx"
	"supstonad/pkg/requestcontext"
)

// Reasons for collaborator failures. They are part of the API.
const (
	ReasonKunneIkkeBeregne         = "kunne_ikke_beregne"
	ReasonKunneIkkeSimulere        = "kunne_ikke_simulere"
	ReasonKunneIkkeUtbetale        = "kunne_ikke_utbetale"
	ReasonKunneIkkeLageDokument    = "kunne_ikke_lage_dokument"
	ReasonKunneIkkeOppretteOppgave = "kunne_ikke_opprette_oppgave"
	ReasonKunneIkkeLukkeOppgave    = "kunne_ikke_lukke_oppgave"
	ReasonFantIkkeAktorID          = "fant_ikke_aktor_id"
	ReasonFantIkkeGjeldendeVedtak  = "fant_ikke_gjeldende_vedtak"
	ReasonSakenErLast              = "saken_er_last"
)

type RevurderingStore interface {
	Lagre(ctx context.Context, r revurdering.Revurdering) error
	Hent(ctx context.Context, id domain.RevurderingID) (revurdering.Revurdering, error)
	HentForSak(ctx context.Context, sakID domain.SakID) ([]revurdering.Revurdering, error)
	HentApen(ctx context.Context, sakID domain.SakID) (revurdering.Revurdering, error)
}

type AvkortingStore interface {
	Erstatt(ctx context.Context, annulleres, opprettes *avkorting.Avkortingsvarsel) error
	HentUtestaende(ctx context.Context, sakID domain.SakID) (*avkorting.Avkortingsvarsel, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.ComplianceEvent) error
	List(ctx context.Context, sakID domain.SakID) ([]audit.Event, error)
}

// Ports bundles the external collaborators. Statistikk is optional.
type Ports struct {
	Beregner   ports.Beregner
	Simulator  ports.Simulator
	Utbetaler  ports.Utbetaler
	Brev       ports.Brev
	Oppgave    ports.Oppgave
	Person     ports.Person
	Vedtak     ports.Vedtak
	Statistikk ports.Statistikk
}

// Service orchestrates the revurdering lifecycle.
type Service struct {
	revurderinger  RevurderingStore
	avkorting      AvkortingStore
	ports          Ports
	locker         lock.Locker
	tx             tx.Runner
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
	tracer         trace.Tracer
	hasher         *privacy.Hasher
	valg           revurdering.Simuleringsvalg
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

// WithLocker replaces the in-process per-sak lock, typically with a
// lock.RedisLocker shared by every instance.
func WithLocker(l lock.Locker) Option {
	return func(s *Service) {
		s.locker = l
	}
}

func WithTxRunner(r tx.Runner) Option {
	return func(s *Service) {
		s.tx = r
	}
}

// WithHasher enables fnr digests on audit events.
func WithHasher(h *privacy.Hasher) Option {
	return func(s *Service) {
		s.hasher = h
	}
}

func WithSimuleringsvalg(valg revurdering.Simuleringsvalg) Option {
	return func(s *Service) {
		s.valg = valg
	}
}

func New(revurderinger RevurderingStore, avkortinger AvkortingStore, p Ports, opts ...Option) (*Service, error) {
	if revurderinger == nil {
		return nil, errors.New("revurdering store is required")
	}
	if avkortinger == nil {
		return nil, errors.New("avkorting store is required")
	}
	if p.Beregner == nil || p.Simulator == nil || p.Utbetaler == nil || p.Brev == nil ||
		p.Oppgave == nil || p.Person == nil || p.Vedtak == nil {
		return nil, errors.New("every port except statistikk is required")
	}
	s := &Service{
		revurderinger: revurderinger,
		avkorting:     avkortinger,
		ports:         p,
		locker:        lock.NewMemoryLocker(0),
		tx:            tx.NoopRunner{},
		logger:        slog.Default(),
		tracer:        otel.Tracer("supstonad/revurdering"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// operasjon names a state-changing operation for metrics, spans and audit.
type operasjon struct {
	navn     string
	hendelse audit.AuditEvent
}

var (
	opOpprett                = operasjon{"opprett", audit.EventRevurderingOpprettet}
	opOppdater               = operasjon{"oppdater", audit.EventRevurderingOppdatert}
	opOppdaterVilkar         = operasjon{"oppdater_vilkar", audit.EventRevurderingOppdatert}
	opOppdaterFradrag        = operasjon{"oppdater_fradrag", audit.EventRevurderingOppdatert}
	opOppdaterBosituasjon    = operasjon{"oppdater_bosituasjon", audit.EventRevurderingOppdatert}
	opOppdaterFritekst       = operasjon{"oppdater_fritekst", audit.EventRevurderingOppdatert}
	opBeregnOgSimuler        = operasjon{"beregn_og_simuler", audit.EventBeregnetOgSimulert}
	opOppdaterTilbakekreving = operasjon{"oppdater_tilbakekreving", audit.EventTilbakekrevingAvgjort}
	opSendTilAttestering     = operasjon{"send_til_attestering", audit.EventSendtTilAttestering}
	opUnderkjenn             = operasjon{"underkjenn", audit.EventUnderkjent}
	opIverksett              = operasjon{"iverksett", audit.EventIverksatt}
	opAvslutt                = operasjon{"avslutt", audit.EventAvsluttet}
)

// endring produces the next state from the current one. It runs under the
// sak's lock and inside the transaction the result is stored in.
type endring func(ctx context.Context, r revurdering.Revurdering) (revurdering.Revurdering, error)

// endre applies fn to a stored revurdering.
func (s *Service) endre(ctx context.Context, op operasjon, id domain.RevurderingID, fn endring, attributes ...any) (revurdering.Revurdering, error) {
	ctx, span := s.tracer.Start(ctx, "revurdering."+op.navn,
		trace.WithAttributes(attribute.String("revurdering_id", id.String())))
	defer span.End()

	forrige, err := s.hent(ctx, id)
	if err != nil {
		s.avslutt(ctx, span, op, err)
		return nil, err
	}
	sakID := forrige.Behandling().SakID
	span.SetAttributes(attribute.String("sak_id", sakID.String()))

	var utgatt domain.OppgaveID
	neste, err := s.utfor(ctx, op, sakID, func(ctx context.Context) (revurdering.Revurdering, error) {
		r, err := s.hent(ctx, id)
		if err != nil {
			return nil, err
		}
		neste, err := fn(ctx, r)
		if err != nil {
			return nil, err
		}
		utgatt = utgattOppgave(r, neste)
		return neste, nil
	}, attributes...)
	if dErrors.GetReason(err) == revurdering.ReasonSammePerson {
		s.auditAvvist(ctx, forrige)
	}
	s.avslutt(ctx, span, op, err)
	if err != nil {
		return nil, err
	}
	s.lukkOppgave(ctx, utgatt)
	s.publiserStatistikk(ctx, op, neste)
	return neste, nil
}

// utgattOppgave is the oppgave neste no longer needs: the previous one when
// a new oppgave replaced it, or the last one once the revurdering is
// iverksatt. It is closed after commit.
func utgattOppgave(forrige, neste revurdering.Revurdering) domain.OppgaveID {
	gammel := forrige.Behandling().Oppgave
	if _, ok := neste.(revurdering.Iverksatt); ok {
		return gammel
	}
	if neste.Behandling().Oppgave != gammel {
		return gammel
	}
	return ""
}

// utfor serializes fn per sak, stores what it returns and records the audit
// event in the same transaction.
func (s *Service) utfor(ctx context.Context, op operasjon, sakID domain.SakID, fn func(ctx context.Context) (revurdering.Revurdering, error), attributes ...any) (revurdering.Revurdering, error) {
	release, err := s.locker.Lock(ctx, "revurdering:sak:"+sakID.String())
	if err != nil {
		if errors.Is(err, sentinel.ErrLockHeld) {
			return nil, dErrors.NewReason(dErrors.CodeConflict, ReasonSakenErLast, "saken behandles av en annen forespørsel")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to lock sak")
	}
	defer release()

	var neste revurdering.Revurdering
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		r, err := fn(ctx)
		if err != nil {
			return err
		}
		if err := s.revurderinger.Lagre(ctx, r); err != nil {
			return fraLager(err, "failed to save revurdering")
		}
		if err := s.logAudit(ctx, op.hendelse, r, attributes...); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record audit event")
		}
		neste = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return neste, nil
}

func (s *Service) avslutt(ctx context.Context, span trace.Span, op operasjon, err error) {
	if err == nil {
		s.metrics.IncrementTransition(op.navn, "ok")
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	s.metrics.IncrementTransition(op.navn, string(dErrors.GetCode(err)))

	var ustottet *revurdering.UtfallStottesIkkeError
	if errors.As(err, &ustottet) {
		s.metrics.IncrementUtfallStottesIkke(ustottet.Utfall)
	}
	if dErrors.GetCode(err) == dErrors.CodeInternal || dErrors.GetCode(err) == dErrors.CodeInvariantViolation {
		s.logger.ErrorContext(ctx, "revurdering operation failed",
			"operation", op.navn,
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
}

func (s *Service) hent(ctx context.Context, id domain.RevurderingID) (revurdering.Revurdering, error) {
	r, err := s.revurderinger.Hent(ctx, id)
	if err != nil {
		return nil, fraLager(err, "failed to load revurdering")
	}
	return r, nil
}

// Hent returns a revurdering in whatever state it is in.
func (s *Service) Hent(ctx context.Context, id domain.RevurderingID) (revurdering.Revurdering, error) {
	return s.hent(ctx, id)
}

// HentForSak returns every revurdering on the sak, oldest first.
func (s *Service) HentForSak(ctx context.Context, sakID domain.SakID) ([]revurdering.Revurdering, error) {
	rs, err := s.revurderinger.HentForSak(ctx, sakID)
	if err != nil {
		return nil, fraLager(err, "failed to list revurderinger")
	}
	return rs, nil
}

// Hendelser returns the sak's audit trail.
func (s *Service) Hendelser(ctx context.Context, sakID domain.SakID) ([]audit.Event, error) {
	if s.auditPublisher == nil {
		return nil, nil
	}
	events, err := s.auditPublisher.List(ctx, sakID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list audit events")
	}
	return events, nil
}

// saksbehandler is the authenticated caller.
func saksbehandler(ctx context.Context) (domain.NavIdent, error) {
	ident := requestcontext.NavIdent(ctx)
	if ident.IsZero() {
		return "", dErrors.New(dErrors.CodeUnauthorized, "nav-ident mangler")
	}
	return ident, nil
}

func fraLager(err error, msg string) error {
	var de *dErrors.Error
	if errors.As(err, &de) {
		return err
	}
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "revurdering not found")
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.NewReason(dErrors.CodeConflict, revurdering.ReasonApenRevurderingFinnes,
			"saken har allerede en åpen revurdering")
	case errors.Is(err, sentinel.ErrUnavailable):
		return dErrors.Wrap(err, dErrors.CodeUnavailable, msg)
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}

// ekstern wraps a collaborator failure with a step-specific reason.
func ekstern(err error, reason, msg string) error {
	code := dErrors.CodeInternal
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		code = dErrors.CodeNotFound
	case errors.Is(err, sentinel.ErrUnavailable), errors.Is(err, context.DeadlineExceeded):
		code = dErrors.CodeUnavailable
	}
	return &dErrors.Error{Code: code, Reason: reason, Message: msg, Err: err}
}

func (s *Service) observe(port string, start time.Time) {
	s.metrics.ObserveEkstern(port, time.Since(start))
}

// logAudit writes the audit line and emits the event. Emission joins the
// transaction in ctx, so a failure aborts the change it describes.
func (s *Service) logAudit(ctx context.Context, event audit.AuditEvent, r revurdering.Revurdering, attributes ...any) error {
	f := r.Behandling()
	requestID := requestcontext.RequestID(ctx)
	if requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	args := append(attributes,
		"event", string(event),
		"log_type", "audit",
		"sak_id", f.SakID.String(),
		"revurdering_id", f.ID.String(),
		"tilstand", string(r.Tilstand()),
	)
	s.logger.InfoContext(ctx, string(event), args...)
	if s.auditPublisher == nil {
		return nil
	}
	var subject string
	if s.hasher != nil {
		subject = s.hasher.Fnr(f.Fnr)
	}
	return s.auditPublisher.Emit(ctx, audit.ComplianceEvent{
		Timestamp:     requestcontext.Now(ctx),
		SakID:         f.SakID,
		RevurderingID: f.ID,
		Action:        event,
		Decision:      string(r.Tilstand()),
		Reason:        attrs.String(attributes, "reason"),
		SubjectIDHash: subject,
		RequestID:     requestID,
		ActorID:       string(requestcontext.NavIdent(ctx)),
	})
}

// auditAvvist records a rejected four-eyes check. The transaction it
// happened in was rolled back, so the event is emitted on its own.
func (s *Service) auditAvvist(ctx context.Context, r revurdering.Revurdering) {
	if err := s.logAudit(ctx, audit.EventAttesteringAvvist, r, "reason", revurdering.ReasonSammePerson); err != nil {
		s.logger.WarnContext(ctx, "failed to record rejected attestering", "error", err)
	}
}

// publiserStatistikk runs after commit. A failure is logged and does not
// undo the transition.
func (s *Service) publiserStatistikk(ctx context.Context, op operasjon, r revurdering.Revurdering) {
	if s.ports.Statistikk == nil {
		return
	}
	f := r.Behandling()
	h := ports.StatistikkHendelse{
		RevurderingID: f.ID,
		SakID:         f.SakID,
		Saksnummer:    f.Saksnummer,
		Fnr:           f.Fnr,
		Hendelse:      string(op.hendelse),
		Tilstand:      r.Tilstand(),
		Periode:       f.Periode,
		Arsak:         f.Arsak.Arsak,
		Saksbehandler: f.Saksbehandler,
		Tidspunkt:     requestcontext.Now(ctx),
	}
	if a, ok := f.SisteAttestering(); ok {
		h.Attestant = a.Attestant
	}
	if b, ok := r.(revurdering.KanLageBrevutkast); ok {
		h.Opphorsgrunner = opphorsgrunner(b.Simuleringsresultat().Opphor.Grunner())
	}
	if i, ok := r.(revurdering.Iverksatt); ok {
		h.Opphorsgrunner = opphorsgrunner(i.Opphor.Grunner())
	}
	defer s.observe("statistikk", time.Now())
	if err := s.ports.Statistikk.Publiser(ctx, h); err != nil {
		s.logger.WarnContext(ctx, "failed to publish statistikk",
			"revurdering_id", f.ID.String(),
			"hendelse", h.Hendelse,
			"error", err,
		)
	}
}
