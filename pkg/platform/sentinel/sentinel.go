package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) and services translate them into coded domain errors.
//
//   - ErrNotFound: entity does not exist in store
//   - ErrConflict: write collides with an existing row (e.g. open revurdering per sak)
//   - ErrInvalidState: stored entity is not in the state the write expected
//   - ErrUnavailable: backing service temporarily unavailable
//   - ErrLockHeld: another writer holds the per-sak lock
//
// For validation failures use pkg/domain-errors directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
	ErrLockHeld     = errors.New("lock held")
)
