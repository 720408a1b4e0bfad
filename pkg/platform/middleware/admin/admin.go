// Package admin guards the drift endpoints.
package admin

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	dErrors "supstonad/pkg/domain-errors"
	"supstonad/pkg/platform/httputil"
	"supstonad/pkg/requestcontext"
)

const HeaderAdminToken = "X-Admin-Token"

// RequireAdminToken lets the request through when X-Admin-Token matches
// expected. An empty expected token locks the endpoints.
func RequireAdminToken(expected string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !matches(r.Header.Get(HeaderAdminToken), expected) {
				ctx := r.Context()
				logger.WarnContext(ctx, "admin token mismatch",
					"request_id", requestcontext.RequestID(ctx),
					"path", r.URL.Path,
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "admin token required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func matches(got, expected string) bool {
	if expected == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(expected)) == 1
}
