package metadata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientIPFromRequest(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{name: "first forwarded hop", headers: map[string]string{"X-Forwarded-For": " 10.0.0.1, 10.0.0.2"}, want: "10.0.0.1"},
		{name: "real ip", headers: map[string]string{"X-Real-IP": "10.0.0.3"}, want: "10.0.0.3"},
		{name: "ipv4 remote", remoteAddr: "192.168.1.5:5123", want: "192.168.1.5"},
		{name: "ipv6 remote", remoteAddr: "[::1]:5123", want: "::1"},
		{name: "no port", remoteAddr: "192.168.1.5", want: "192.168.1.5"},
		{name: "nothing", want: "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, ClientIPFromRequest(req))
		})
	}
}

func TestClientMetadata(t *testing.T) {
	var ip, ua string
	h := ClientMetadata(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip = ClientIP(r.Context())
		ua = UserAgent(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.1.1.1:443"
	req.Header.Set("User-Agent", "supstonad-frontend")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "10.1.1.1", ip)
	assert.Equal(t, "supstonad-frontend", ua)
}

func TestWithClientMetadataParsesBrowser(t *testing.T) {
	ctx := WithClientMetadata(context.Background(), "10.0.0.1",
		"Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/115.0")
	assert.Equal(t, "Firefox", Browser(ctx))
	assert.False(t, Bot(ctx))

	ctx = WithClientMetadata(context.Background(), "10.0.0.1", "")
	assert.Empty(t, Browser(ctx))
}
