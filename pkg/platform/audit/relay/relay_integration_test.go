//go:build integration

package relay

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"supstonad/internal/platform/kafka"
	"supstonad/pkg/domain"
	audit "supstonad/pkg/platform/audit"
	auditpg "supstonad/pkg/platform/audit/store/postgres"
	"supstonad/pkg/testutil/containers"
)

type capturingProducer struct {
	mu   sync.Mutex
	msgs []kafka.Message
}

func (p *capturingProducer) Produce(_ context.Context, msgs ...kafka.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, msgs...)
	return nil
}

type RelaySuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	pool     *pgxpool.Pool
	store    *auditpg.Store
}

func TestRelaySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RelaySuite))
}

func (s *RelaySuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	pool, err := pgxpool.New(context.Background(), s.postgres.DSN)
	s.Require().NoError(err)
	s.pool = pool
	s.store = auditpg.New(s.postgres.DB)
}

func (s *RelaySuite) TearDownSuite() {
	s.pool.Close()
}

func (s *RelaySuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "outbox", "audit_events"))
}

func (s *RelaySuite) TestPublishesEachRowOnce() {
	ctx := context.Background()
	sakID := domain.SakID(uuid.New())
	for range 3 {
		s.Require().NoError(s.store.Append(ctx, audit.Event{
			SakID:     sakID,
			Timestamp: time.Now(),
			Action:    string(audit.EventIverksatt),
		}))
	}

	producer := &capturingProducer{}
	r := New(s.pool, producer, "supstonad.audit", slog.New(slog.NewTextHandler(io.Discard, nil)), WithBatchSize(2))

	n, err := r.RelayBatch(ctx)
	s.Require().NoError(err)
	s.Equal(2, n)
	n, err = r.RelayBatch(ctx)
	s.Require().NoError(err)
	s.Equal(1, n)
	n, err = r.RelayBatch(ctx)
	s.Require().NoError(err)
	s.Equal(0, n)

	s.Require().Len(producer.msgs, 3)
	s.Equal(sakID.String(), string(producer.msgs[0].Key))
	s.Equal(string(audit.EventIverksatt), producer.msgs[0].Headers["event_type"])
}

func (s *RelaySuite) TestMaterializedEventsAreListedBySak() {
	ctx := context.Background()
	sakID := domain.SakID(uuid.New())
	event := audit.Event{
		Category:  audit.CategoryCompliance,
		SakID:     sakID,
		Timestamp: time.Now().UTC().Truncate(time.Microsecond),
		Subject:   domain.NewRevurderingID().String(),
		Action:    string(audit.EventAvsluttet),
		ActorID:   "Z990001",
	}
	id := uuid.New()
	s.Require().NoError(s.store.AppendWithID(ctx, id, event))
	s.Require().NoError(s.store.AppendWithID(ctx, id, event))

	events, err := s.store.ListBySak(ctx, sakID)
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(event.Subject, events[0].Subject)
	s.Equal("Z990001", events[0].ActorID)
}
