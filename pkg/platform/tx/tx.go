package tx

import (
	"context"
	"database/sql"
	"time"

	dErrors "supstonad/pkg/domain-errors"
)

type ctxKey struct{}

var txKey = ctxKey{}

// DefaultTimeout bounds a transaction when the caller set no deadline.
const DefaultTimeout = 10 * time.Second

// WithTx stores a SQL transaction in context for downstream store usage.
func WithTx(ctx context.Context, tx *sql.Tx) context.Context {
	if tx == nil {
		return ctx
	}
	return context.WithValue(ctx, txKey, tx)
}

// From extracts a SQL transaction from context if present.
func From(ctx context.Context) (*sql.Tx, bool) {
	tx, ok := ctx.Value(txKey).(*sql.Tx)
	return tx, ok
}

// Runner runs fn inside a transactional boundary. Stores called with the
// context passed to fn participate in the same transaction.
type Runner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// SQLRunner commits fn's writes atomically on a database/sql handle.
type SQLRunner struct {
	db      *sql.DB
	timeout time.Duration
}

func NewSQLRunner(db *sql.DB, timeout time.Duration) *SQLRunner {
	return &SQLRunner{db: db, timeout: timeout}
}

func (r *SQLRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, nested := From(ctx); nested {
		return fn(ctx)
	}
	ctx, cancel, err := bound(ctx, r.timeout)
	if err != nil {
		return err
	}
	defer cancel()

	sqlTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "begin transaction")
	}
	defer func() {
		_ = sqlTx.Rollback()
	}()

	if err := fn(WithTx(ctx, sqlTx)); err != nil {
		return err
	}
	if err := sqlTx.Commit(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "commit transaction")
	}
	return nil
}

// NoopRunner runs fn directly and rolls nothing back when it fails. Only the
// in-memory stores use it; they apply each write atomically and the service
// orders writes after all fallible steps.
type NoopRunner struct {
	Timeout time.Duration
}

func (r NoopRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx, cancel, err := bound(ctx, r.Timeout)
	if err != nil {
		return err
	}
	defer cancel()
	return fn(ctx)
}

func bound(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc, error) {
	if err := ctx.Err(); err != nil {
		return ctx, func() {}, dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}, nil
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	return ctx, cancel, nil
}
