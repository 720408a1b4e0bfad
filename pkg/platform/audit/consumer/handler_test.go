package consumer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supstonad/internal/platform/kafka"
	"supstonad/pkg/domain"
	audit "supstonad/pkg/platform/audit"
	auditpg "supstonad/pkg/platform/audit/store/postgres"
)

type recordingStore struct {
	ids    []uuid.UUID
	events []audit.Event
	err    error
}

func (s *recordingStore) AppendWithID(_ context.Context, id uuid.UUID, event audit.Event) error {
	if s.err != nil {
		return s.err
	}
	s.ids = append(s.ids, id)
	s.events = append(s.events, event)
	return nil
}

func message(t *testing.T, p auditpg.Payload) *kafka.Message {
	t.Helper()
	b, err := json.Marshal(p)
	require.NoError(t, err)
	return &kafka.Message{Topic: "supstonad.audit", Key: []byte(p.SakID), Value: b}
}

func TestHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()
	sakID := domain.SakID(uuid.New())
	eventID := uuid.New()
	valid := auditpg.Payload{
		ID:        eventID.String(),
		Category:  string(audit.CategoryCompliance),
		Timestamp: time.Date(2021, 6, 15, 10, 0, 0, 0, time.UTC).Format(time.RFC3339Nano),
		SakID:     sakID.String(),
		Action:    string(audit.EventIverksatt),
	}

	t.Run("stores valid events", func(t *testing.T) {
		store := &recordingStore{}
		require.NoError(t, NewHandler(store, logger).Handle(ctx, message(t, valid)))
		require.Len(t, store.events, 1)
		assert.Equal(t, eventID, store.ids[0])
		assert.Equal(t, sakID, store.events[0].SakID)
	})

	t.Run("skips malformed payloads", func(t *testing.T) {
		store := &recordingStore{}
		h := NewHandler(store, logger)
		require.NoError(t, h.Handle(ctx, &kafka.Message{Value: []byte("{not json")}))

		missingSak := valid
		missingSak.SakID = ""
		require.NoError(t, h.Handle(ctx, message(t, missingSak)))
		assert.Empty(t, store.events)
	})

	t.Run("returns store failures for redelivery", func(t *testing.T) {
		store := &recordingStore{err: errors.New("connection reset")}
		assert.Error(t, NewHandler(store, logger).Handle(ctx, message(t, valid)))
	})
}
