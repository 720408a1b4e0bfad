package adapters

import (
	"context"
	"fmt"
	"log/slog"

	"supstonad/internal/revurdering/ports"
	"supstonad/internal/simulering"
	"supstonad/pkg/platform/circuit"
	"supstonad/pkg/platform/sentinel"
)

// BreakerSimulator stops calling the payment system's simulering while it
// keeps failing, and fails fast with sentinel.ErrUnavailable instead.
type BreakerSimulator struct {
	next    ports.Simulator
	breaker *circuit.Breaker
	logger  *slog.Logger
}

func NewBreakerSimulator(next ports.Simulator, breaker *circuit.Breaker, logger *slog.Logger) *BreakerSimulator {
	return &BreakerSimulator{next: next, breaker: breaker, logger: logger}
}

func (s *BreakerSimulator) SimulerUtbetaling(ctx context.Context, req ports.SimuleringRequest) (*simulering.Simulering, error) {
	return s.call(ctx, func() (*simulering.Simulering, error) { return s.next.SimulerUtbetaling(ctx, req) })
}

func (s *BreakerSimulator) SimulerOpphor(ctx context.Context, req ports.SimuleringRequest) (*simulering.Simulering, error) {
	return s.call(ctx, func() (*simulering.Simulering, error) { return s.next.SimulerOpphor(ctx, req) })
}

func (s *BreakerSimulator) call(ctx context.Context, fn func() (*simulering.Simulering, error)) (*simulering.Simulering, error) {
	if !s.breaker.Allow() {
		return nil, fmt.Errorf("%s: circuit open: %w", s.breaker.Name(), sentinel.ErrUnavailable)
	}
	res, err := fn()
	if err != nil {
		if _, change := s.breaker.RecordFailure(); change.Opened {
			s.logger.WarnContext(ctx, "circuit opened", "breaker", s.breaker.Name(), "error", err)
		}
		return nil, err
	}
	if _, change := s.breaker.RecordSuccess(); change.Closed {
		s.logger.InfoContext(ctx, "circuit closed", "breaker", s.breaker.Name())
	}
	return res, nil
}
