package requesttime

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"supstonad/pkg/requestcontext"
)

func TestWithClock(t *testing.T) {
	oslo := time.FixedZone("CET", 3600)
	fixed := time.Date(2021, 6, 15, 12, 0, 0, 123456789, oslo)

	var seen time.Time
	h := WithClock(func() time.Time { return fixed })(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestcontext.Now(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, time.Date(2021, 6, 15, 11, 0, 0, 123456000, time.UTC), seen)
}
