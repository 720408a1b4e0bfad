// Package relay publishes outbox rows to Kafka. Several instances may run
// concurrently; FOR UPDATE SKIP LOCKED hands each row to one of them.
package relay

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"supstonad/internal/platform/kafka"
)

// Producer is the part of kafka.Producer the relay uses.
type Producer interface {
	Produce(ctx context.Context, msgs ...kafka.Message) error
}

const (
	defaultBatchSize = 100
	defaultInterval  = time.Second
)

type Relay struct {
	pool      *pgxpool.Pool
	producer  Producer
	topic     string
	logger    *slog.Logger
	batchSize int
	interval  time.Duration
}

type Option func(*Relay)

func WithBatchSize(n int) Option {
	return func(r *Relay) {
		if n > 0 {
			r.batchSize = n
		}
	}
}

func WithInterval(d time.Duration) Option {
	return func(r *Relay) {
		if d > 0 {
			r.interval = d
		}
	}
}

func New(pool *pgxpool.Pool, producer Producer, topic string, logger *slog.Logger, opts ...Option) *Relay {
	r := &Relay{
		pool:      pool,
		producer:  producer,
		topic:     topic,
		logger:    logger,
		batchSize: defaultBatchSize,
		interval:  defaultInterval,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run relays batches until ctx is done. A full batch is followed immediately
// by the next one; otherwise the relay waits for the interval.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		n, err := r.RelayBatch(ctx)
		if err != nil && ctx.Err() == nil {
			r.logger.ErrorContext(ctx, "outbox relay failed", "error", err)
		}
		if n == r.batchSize {
			continue
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// RelayBatch publishes up to batchSize unpublished rows and marks them
// published in the same transaction. Rows are only marked after the broker
// has acknowledged them, so a crash re-publishes rather than loses events.
func (r *Relay) RelayBatch(ctx context.Context) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("relay: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, `
		SELECT id, aggregate_id, event_type, payload
		FROM outbox
		WHERE published_at IS NULL
		ORDER BY created_at
		LIMIT $1
		FOR UPDATE SKIP LOCKED
	`, r.batchSize)
	if err != nil {
		return 0, fmt.Errorf("relay: select outbox: %w", err)
	}

	var (
		ids  []string
		msgs []kafka.Message
	)
	for rows.Next() {
		var (
			id          uuid.UUID
			aggregateID string
			eventType   string
			payload     []byte
		)
		if err := rows.Scan(&id, &aggregateID, &eventType, &payload); err != nil {
			rows.Close()
			return 0, fmt.Errorf("relay: scan outbox: %w", err)
		}
		ids = append(ids, id.String())
		msgs = append(msgs, kafka.Message{
			Topic:   r.topic,
			Key:     []byte(aggregateID),
			Value:   payload,
			Headers: map[string]string{"event_type": eventType},
		})
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("relay: read outbox: %w", err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	if err := r.producer.Produce(ctx, msgs...); err != nil {
		return 0, fmt.Errorf("relay: publish: %w", err)
	}
	if _, err := tx.Exec(ctx, `UPDATE outbox SET published_at = now() WHERE id = ANY($1::uuid[])`, ids); err != nil {
		return 0, fmt.Errorf("relay: mark published: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("relay: commit: %w", err)
	}
	return len(ids), nil
}
