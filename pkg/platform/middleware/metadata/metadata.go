// Package metadata records where a request came from for the access log.
package metadata

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/mssola/useragent"
)

type contextKeyClient struct{}

type client struct {
	ip        string
	userAgent string
	browser   string
	bot       bool
}

// ClientMetadata puts the caller's address and user agent on the context.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := WithClientMetadata(r.Context(), ClientIPFromRequest(r), r.Header.Get("User-Agent"))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func ClientIP(ctx context.Context) string {
	c, _ := ctx.Value(contextKeyClient{}).(client)
	return c.ip
}

func UserAgent(ctx context.Context) string {
	c, _ := ctx.Value(contextKeyClient{}).(client)
	return c.userAgent
}

// Browser is the parsed browser name, empty when the user agent is unknown.
func Browser(ctx context.Context) string {
	c, _ := ctx.Value(contextKeyClient{}).(client)
	return c.browser
}

func Bot(ctx context.Context) bool {
	c, _ := ctx.Value(contextKeyClient{}).(client)
	return c.bot
}

func WithClientMetadata(ctx context.Context, clientIP, userAgent string) context.Context {
	c := client{ip: clientIP, userAgent: userAgent}
	if userAgent != "" {
		ua := useragent.New(userAgent)
		c.browser, _ = ua.Browser()
		c.bot = ua.Bot()
	}
	return context.WithValue(ctx, contextKeyClient{}, c)
}

// ClientIPFromRequest prefers the first X-Forwarded-For hop, then X-Real-IP,
// then the connection's remote address.
func ClientIPFromRequest(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	if r.RemoteAddr == "" {
		return "unknown"
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
