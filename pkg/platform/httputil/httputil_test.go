package httputil

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	dErrors "supstonad/pkg/domain-errors"
)

type detailed struct{ flags []string }

func (d *detailed) Error() string { return "unsupported" }
func (d *detailed) Unwrap() error {
	return dErrors.NewReason(dErrors.CodeUnprocessable, "utfall_stottes_ikke", "unsupported outcome")
}
func (d *detailed) ErrorDetails() any { return d.flags }

func TestWriteError(t *testing.T) {
	t.Run("internal error omits description", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeInternal, "db failed"))

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
		}
		body := decode(t, w)
		if body["error"] != "internal_error" {
			t.Fatalf("expected error code internal_error, got %q", body["error"])
		}
		if _, ok := body["error_description"]; ok {
			t.Fatalf("expected error_description to be omitted for internal errors")
		}
	})

	t.Run("invariant violation renders as generic internal error", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeInvariantViolation, "avkorting and tilbakekreving both active"))

		body := decode(t, w)
		if w.Code != http.StatusInternalServerError || body["error"] != "internal_error" {
			t.Fatalf("expected generic 500, got %d %v", w.Code, body)
		}
	})

	t.Run("bad request includes description", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid input"))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
		}
		body := decode(t, w)
		if body["error"] != "bad_request" {
			t.Fatalf("expected error code bad_request, got %q", body["error"])
		}
		if body["error_description"] != "invalid input" {
			t.Fatalf("expected error_description to be returned for bad request")
		}
	})

	t.Run("reason and details are rendered", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, &detailed{flags: []string{"DelvisOpphor"}})

		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
		body := decode(t, w)
		if body["reason"] != "utfall_stottes_ikke" {
			t.Fatalf("expected reason, got %v", body["reason"])
		}
		details, ok := body["details"].([]any)
		if !ok || len(details) != 1 || details[0] != "DelvisOpphor" {
			t.Fatalf("expected details, got %v", body["details"])
		}
	})
}

type pingRequest struct {
	Name string `json:"name"`
}

func (p *pingRequest) Validate() error {
	if p.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	return nil
}

func TestDecodeAndPrepare(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("valid body", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"name":"x"}`))
		req, ok := DecodeAndPrepare[pingRequest](w, r, logger, r.Context(), "req-1")
		if !ok || req.Name != "x" {
			t.Fatalf("expected decoded request, got %v %v", req, ok)
		}
	})

	t.Run("validation failure writes 400", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{}`))
		_, ok := DecodeAndPrepare[pingRequest](w, r, logger, r.Context(), "req-1")
		if ok || w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("malformed json writes 400", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{`))
		_, ok := DecodeAndPrepare[pingRequest](w, r, logger, r.Context(), "req-1")
		if ok || w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}
