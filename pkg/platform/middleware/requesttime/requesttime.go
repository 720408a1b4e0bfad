// Package requesttime pins one "now" per HTTP request so every timestamp a
// request writes (opprettet, attestering, audit) agrees.
package requesttime

import (
	"net/http"
	"time"

	"supstonad/pkg/requestcontext"
)

// Middleware pins the wall clock.
func Middleware(next http.Handler) http.Handler {
	return WithClock(time.Now)(next)
}

// WithClock pins now() in UTC, truncated to the microsecond precision
// Postgres keeps, so a stored revurdering reads back equal.
func WithClock(now func() time.Time) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t := now().UTC().Truncate(time.Microsecond)
			next.ServeHTTP(w, r.WithContext(requestcontext.WithTime(r.Context(), t)))
		})
	}
}
