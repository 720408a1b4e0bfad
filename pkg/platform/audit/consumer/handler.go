// Package consumer materializes audit events from the audit topic into the
// queryable audit_events table.
package consumer

import (
	"context"
	"fmt"
	"log/slog"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"supstonad/internal/platform/kafka"
	audit "supstonad/pkg/platform/audit"
	auditpg "supstonad/pkg/platform/audit/store/postgres"
)

// EventStore is the write side of the materialized audit table.
type EventStore interface {
	AppendWithID(ctx context.Context, eventID uuid.UUID, event audit.Event) error
}

// Handler processes audit events from Kafka.
type Handler struct {
	store  EventStore
	logger *slog.Logger
}

func NewHandler(store EventStore, logger *slog.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// Handle stores one audit event. Malformed messages are logged and skipped so
// they do not block the partition; store failures are returned so the
// message is redelivered.
func (h *Handler) Handle(ctx context.Context, msg *kafka.Message) error {
	var payload auditpg.Payload
	if err := json.Unmarshal(msg.Value, &payload); err != nil {
		h.logger.ErrorContext(ctx, "CRITICAL: failed to unmarshal audit payload",
			"key", string(msg.Key),
			"offset", msg.Offset,
			"error", err,
		)
		return nil
	}

	eventID, event, err := payload.ToEvent()
	if err != nil {
		h.logger.ErrorContext(ctx, "CRITICAL: malformed audit event",
			"key", string(msg.Key),
			"offset", msg.Offset,
			"error", err,
		)
		return nil
	}
	if event.Category == audit.CategoryCompliance && event.SakID.IsNil() {
		h.logger.ErrorContext(ctx, "CRITICAL: compliance event missing SakID",
			"event_id", eventID,
			"action", event.Action,
		)
		return nil
	}

	if err := h.store.AppendWithID(ctx, eventID, event); err != nil {
		h.logger.ErrorContext(ctx, "failed to store audit event",
			"event_id", eventID,
			"action", event.Action,
			"error", err,
		)
		return fmt.Errorf("store audit event: %w", err)
	}

	h.logger.DebugContext(ctx, "stored audit event",
		"event_id", eventID,
		"action", event.Action,
		"sak_id", event.SakID,
	)
	return nil
}
