// Package requestcontext provides HTTP-independent context accessors for request-scoped values.
//
// Middleware sets the values; services read them without importing net/http.
//
//	navIdent := requestcontext.NavIdent(ctx)
//	now := requestcontext.Now(ctx)
//
// Tests inject fixed values:
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
//	ctx = requestcontext.WithNavIdent(ctx, "Z990000")
package requestcontext

import (
	"context"
	"time"

	"supstonad/pkg/domain"
)

type (
	navIdentKey    struct{}
	rollerKey      struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
)

var (
	ContextKeyNavIdent    = navIdentKey{}
	ContextKeyRoller      = rollerKey{}
	ContextKeyRequestID   = requestIDKey{}
	ContextKeyRequestTime = requestTimeKey{}
)

// NavIdent returns the authenticated case worker, or the zero value.
func NavIdent(ctx context.Context) domain.NavIdent {
	if ident, ok := ctx.Value(ContextKeyNavIdent).(domain.NavIdent); ok {
		return ident
	}
	return ""
}

func WithNavIdent(ctx context.Context, ident domain.NavIdent) context.Context {
	return context.WithValue(ctx, ContextKeyNavIdent, ident)
}

// Roller returns the roles granted by the caller's token groups.
func Roller(ctx context.Context) []string {
	if roller, ok := ctx.Value(ContextKeyRoller).([]string); ok {
		return roller
	}
	return nil
}

func WithRoller(ctx context.Context, roller []string) context.Context {
	return context.WithValue(ctx, ContextKeyRoller, roller)
}

func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return reqID
	}
	return ""
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// Now retrieves the request-scoped time from context.
// Falls back to time.Now() outside HTTP requests (workers, tests).
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ContextKeyRequestTime).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a fixed time, for tests and for workers that need one
// consistent time across a batch.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyRequestTime, t)
}
