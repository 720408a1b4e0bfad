package testutil

import (
	"net/http"

	"supstonad/pkg/domain"
	"supstonad/pkg/requestcontext"
)

// WithInnlogget puts ident and roller on the request context, as the auth
// middleware does for a validated token.
func WithInnlogget(req *http.Request, ident domain.NavIdent, roller ...string) *http.Request {
	ctx := requestcontext.WithNavIdent(req.Context(), ident)
	ctx = requestcontext.WithRoller(ctx, roller)
	return req.WithContext(ctx)
}
