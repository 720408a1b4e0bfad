package avkorting

import (
	"context"

	"supstonad/pkg/domain"
)

// Store persists avkortingsvarsler. Implementations enforce at most one
// utestående varsel per sak and report a second one as sentinel.ErrConflict.
type Store interface {
	Lagre(ctx context.Context, v Avkortingsvarsel) error
	// Erstatt stores an annulment and its replacing varsel together. Either
	// may be nil.
	Erstatt(ctx context.Context, annulleres, opprettes *Avkortingsvarsel) error
	Hent(ctx context.Context, id domain.AvkortingsvarselID) (*Avkortingsvarsel, error)
	// HentUtestaende returns nil when the sak has no outstanding varsel.
	HentUtestaende(ctx context.Context, sakID domain.SakID) (*Avkortingsvarsel, error)
}
