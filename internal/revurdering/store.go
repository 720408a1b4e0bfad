package revurdering

import (
	"context"

	"supstonad/pkg/domain"
)

// Store persists revurderinger as snapshots. Implementations allow at most
// one open revurdering per sak and report a second one as
// sentinel.ErrConflict.
type Store interface {
	Lagre(ctx context.Context, r Revurdering) error
	Hent(ctx context.Context, id domain.RevurderingID) (Revurdering, error)
	HentForSak(ctx context.Context, sakID domain.SakID) ([]Revurdering, error)
	// HentApen returns nil when the sak has no open revurdering.
	HentApen(ctx context.Context, sakID domain.SakID) (Revurdering, error)
}
