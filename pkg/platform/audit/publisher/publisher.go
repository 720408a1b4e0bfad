// Package publisher emits audit events with synchronous, fail-closed
// semantics. Events are written to the audit store (the outbox in
// production) and the caller blocks until the write succeeds. If the write
// fails, an error is returned and the calling operation MUST fail.
package publisher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"supstonad/pkg/domain"
	audit "supstonad/pkg/platform/audit"
)

// Publisher emits audit events with fail-closed semantics.
type Publisher struct {
	store   audit.Store
	logger  *slog.Logger
	metrics *Metrics
	now     func() time.Time
}

// Option configures the Publisher.
type Option func(*Publisher)

// WithLogger sets a logger for error reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *Metrics) Option {
	return func(p *Publisher) {
		p.metrics = m
	}
}

func WithClock(now func() time.Time) Option {
	return func(p *Publisher) {
		p.now = now
	}
}

// New creates a publisher. The store must be outbox-backed for guaranteed
// delivery.
func New(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Emit synchronously writes an event to the audit store.
// Returns error if persistence fails - the caller MUST fail its operation.
func (p *Publisher) Emit(ctx context.Context, event audit.ComplianceEvent) error {
	start := time.Now()

	if event.SakID.IsNil() {
		return fmt.Errorf("audit event requires SakID")
	}
	if event.Action == "" {
		return fmt.Errorf("audit event requires Action")
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = p.now()
	}

	if err := p.store.Append(ctx, event.ToEvent()); err != nil {
		p.metrics.IncPersistFailures()
		if p.logger != nil {
			p.logger.ErrorContext(ctx, "CRITICAL: audit persistence failed",
				"action", event.Action,
				"sak_id", event.SakID,
				"error", err,
			)
		}
		return fmt.Errorf("audit persistence failed: %w", err)
	}

	p.metrics.ObservePersistDuration(time.Since(start))
	p.metrics.IncEventsEmitted(event.Action.Category())
	return nil
}

// List returns the sak's stored events.
func (p *Publisher) List(ctx context.Context, sakID domain.SakID) ([]audit.Event, error) {
	return p.store.ListBySak(ctx, sakID)
}
