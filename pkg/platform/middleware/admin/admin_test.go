package admin

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"supstonad/pkg/testutil"
)

func TestRequireAdminToken(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name     string
		expected string
		header   string
		want     int
	}{
		{name: "matching token", expected: "secret", header: "secret", want: http.StatusNoContent},
		{name: "wrong token", expected: "secret", header: "guess", want: http.StatusUnauthorized},
		{name: "missing token", expected: "secret", header: "", want: http.StatusUnauthorized},
		{name: "unconfigured", expected: "", header: "", want: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/drift/audit/relay", nil)
			if tt.header != "" {
				req.Header.Set(HeaderAdminToken, tt.header)
			}
			rec := httptest.NewRecorder()
			RequireAdminToken(tt.expected, logger)(next).ServeHTTP(rec, req)
			if tt.want == http.StatusUnauthorized {
				testutil.AssertStatusAndError(t, rec, tt.want, "unauthorized")
				return
			}
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
