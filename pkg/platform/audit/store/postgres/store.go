package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"supstonad/pkg/domain"
	audit "supstonad/pkg/platform/audit"
	"supstonad/pkg/platform/postgres"
)

// Store implements audit.Store using the transactional outbox pattern.
// Events are written to the outbox table in the caller's transaction and
// published to Kafka by the relay. The audit consumer materializes them into
// audit_events, which ListBySak reads.
type Store struct {
	db *sql.DB
}

// New creates a new PostgreSQL audit store that writes to the outbox.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Payload is the JSON structure published to Kafka.
type Payload struct {
	ID            string `json:"id"`
	Category      string `json:"category"`
	Timestamp     string `json:"timestamp"`
	SakID         string `json:"sakId,omitempty"`
	Subject       string `json:"subject"`
	Action        string `json:"action"`
	Decision      string `json:"decision,omitempty"`
	Reason        string `json:"reason,omitempty"`
	RequestID     string `json:"requestId,omitempty"`
	ActorID       string `json:"actorId,omitempty"`
	SubjectIDHash string `json:"subjectIdHash,omitempty"`
}

// ToEvent parses the payload back into an event.
func (p Payload) ToEvent() (uuid.UUID, audit.Event, error) {
	eventID, err := uuid.Parse(p.ID)
	if err != nil {
		return uuid.Nil, audit.Event{}, fmt.Errorf("parse event id: %w", err)
	}
	ts, err := time.Parse(time.RFC3339Nano, p.Timestamp)
	if err != nil {
		return uuid.Nil, audit.Event{}, fmt.Errorf("parse timestamp: %w", err)
	}
	event := audit.Event{
		Category:      audit.EventCategory(p.Category),
		Timestamp:     ts,
		Subject:       p.Subject,
		Action:        p.Action,
		Decision:      p.Decision,
		Reason:        p.Reason,
		RequestID:     p.RequestID,
		ActorID:       p.ActorID,
		SubjectIDHash: p.SubjectIDHash,
	}
	if p.SakID != "" {
		sakID, err := domain.ParseSakID(p.SakID)
		if err != nil {
			return uuid.Nil, audit.Event{}, err
		}
		event.SakID = sakID
	}
	return eventID, event, nil
}

// Append writes an audit event to the outbox table for Kafka publishing.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	eventID := uuid.New()

	// Always derive category from action - eventCategories map is the source of truth
	category := audit.AuditEvent(event.Action).Category()

	payload := Payload{
		ID:            eventID.String(),
		Category:      string(category),
		Timestamp:     event.Timestamp.Format(time.RFC3339Nano),
		Subject:       event.Subject,
		Action:        event.Action,
		Decision:      event.Decision,
		Reason:        event.Reason,
		RequestID:     event.RequestID,
		ActorID:       event.ActorID,
		SubjectIDHash: event.SubjectIDHash,
	}
	aggregateType := "audit"
	aggregateID := eventID.String()
	if !event.SakID.IsNil() {
		payload.SakID = event.SakID.String()
		aggregateType = "sak"
		aggregateID = event.SakID.String()
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}

	query := `
		INSERT INTO outbox (id, aggregate_type, aggregate_id, event_type, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = postgres.Executor(ctx, s.db).ExecContext(ctx, query,
		uuid.New(), // outbox entry ID
		aggregateType,
		aggregateID,
		event.Action,
		payloadBytes,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("insert outbox entry: %w", err)
	}
	return nil
}

// AppendWithID inserts an audit event into the audit_events table with a specific ID.
// Used by the Kafka consumer to materialize events for querying.
// This is idempotent - duplicate inserts are ignored via ON CONFLICT DO NOTHING.
func (s *Store) AppendWithID(ctx context.Context, eventID uuid.UUID, event audit.Event) error {
	query := `
		INSERT INTO audit_events (
			id, category, timestamp, sak_id, subject, action,
			decision, reason, request_id, actor_id, subject_id_hash
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO NOTHING
	`

	var sakID *uuid.UUID
	if !event.SakID.IsNil() {
		sid := uuid.UUID(event.SakID)
		sakID = &sid
	}

	_, err := s.db.ExecContext(ctx, query,
		eventID,
		string(event.Category),
		event.Timestamp,
		sakID,
		event.Subject,
		event.Action,
		event.Decision,
		event.Reason,
		event.RequestID,
		event.ActorID,
		event.SubjectIDHash,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// ListBySak returns the materialized events for a sak, oldest first.
func (s *Store) ListBySak(ctx context.Context, sakID domain.SakID) ([]audit.Event, error) {
	query := `
		SELECT category, timestamp, sak_id, subject, action,
			   COALESCE(decision, ''), COALESCE(reason, ''), COALESCE(request_id, ''),
			   COALESCE(actor_id, ''), COALESCE(subject_id_hash, '')
		FROM audit_events
		WHERE sak_id = $1
		ORDER BY timestamp
	`

	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(sakID))
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	var events []audit.Event
	for rows.Next() {
		var (
			category string
			event    audit.Event
			sak      uuid.NullUUID
		)
		err := rows.Scan(
			&category,
			&event.Timestamp,
			&sak,
			&event.Subject,
			&event.Action,
			&event.Decision,
			&event.Reason,
			&event.RequestID,
			&event.ActorID,
			&event.SubjectIDHash,
		)
		if err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		event.Category = audit.EventCategory(category)
		if sak.Valid {
			event.SakID = domain.SakID(sak.UUID)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return events, nil
}
