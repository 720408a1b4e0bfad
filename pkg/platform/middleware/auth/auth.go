package auth

import (
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"supstonad/pkg/domain"
	"supstonad/pkg/requestcontext"
)

const (
	RolleSaksbehandler = "saksbehandler"
	RolleAttestant     = "attestant"
	RolleVeileder      = "veileder"
)

// JWTValidator defines the interface for validating JWT tokens
type JWTValidator interface {
	ValidateToken(tokenString string) (*JWTClaims, error)
}

// JWTClaims represents the claims we expect from the JWT validator
type JWTClaims struct {
	NavIdent string
	Roller   []string
	JTI      string
}

// writeJSONError writes a JSON error response with the given status code and error details.
func writeJSONError(w http.ResponseWriter, status int, errCode, errDesc string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(fmt.Appendf(nil, `{"error":"%s","error_description":"%s"}`, errCode, errDesc))
}

// RequireAuth validates the bearer token and puts the case worker's ident
// and roles on the request context.
func RequireAuth(validator JWTValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := requestcontext.RequestID(ctx)
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestID,
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Missing or invalid Authorization header")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestID,
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
				return
			}

			ctx = requestcontext.WithNavIdent(ctx, domain.NavIdent(claims.NavIdent))
			ctx = requestcontext.WithRoller(ctx, claims.Roller)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRolle lets the request through when the caller holds at least one
// of roller.
func RequireRolle(logger *slog.Logger, roller ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			for _, har := range requestcontext.Roller(ctx) {
				if slices.Contains(roller, har) {
					next.ServeHTTP(w, r)
					return
				}
			}
			logger.WarnContext(ctx, "forbidden - missing rolle",
				"request_id", requestcontext.RequestID(ctx),
				"nav_ident", requestcontext.NavIdent(ctx),
				"required", roller,
			)
			writeJSONError(w, http.StatusForbidden, "forbidden", "Missing required rolle")
		})
	}
}
