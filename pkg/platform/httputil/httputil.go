// Package httputil holds the JSON response and request helpers shared by handlers.
package httputil

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	json "github.com/goccy/go-json"

	dErrors "supstonad/pkg/domain-errors"
)

const maxBodyBytes = 1 << 20

// Validatable is implemented by request bodies that parse and check themselves.
type Validatable interface {
	Validate() error
}

// DetailedError exposes structured details that belong in the error envelope.
type DetailedError interface {
	error
	ErrorDetails() any
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates err into the JSON error envelope. Internal and
// invariant errors never leak their message.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.GetCode(err)
	status := dErrors.ToHTTPStatus(code)

	body := map[string]any{"error": string(code)}
	if status < http.StatusInternalServerError {
		var de *dErrors.Error
		if errors.As(err, &de) && de.Message != "" {
			body["error_description"] = de.Message
		}
		if reason := dErrors.GetReason(err); reason != "" {
			body["reason"] = reason
		}
		var detailed DetailedError
		if errors.As(err, &detailed) {
			body["details"] = detailed.ErrorDetails()
		}
	} else {
		body["error"] = string(dErrors.CodeInternal)
		if code == dErrors.CodeUnavailable || code == dErrors.CodeTimeout {
			body["error"] = string(code)
		}
	}
	WriteJSON(w, status, body)
}

// DecodeAndPrepare decodes the body into T and runs its validation. On failure
// the error response has been written and ok is false.
func DecodeAndPrepare[T any, PT interface {
	*T
	Validatable
}](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (*T, bool) {
	req := PT(new(T))
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(req); err != nil {
		logger.WarnContext(ctx, "invalid request body",
			"request_id", requestID,
			"error", err.Error(),
		)
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return nil, false
	}
	if err := req.Validate(); err != nil {
		logger.WarnContext(ctx, "request validation failed",
			"request_id", requestID,
			"error", err.Error(),
		)
		WriteError(w, err)
		return nil, false
	}
	return (*T)(req), true
}
