package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"
)

// Handler processes one message. Returning an error stops the poll loop
// without committing, so the message is redelivered after restart.
type Handler interface {
	Handle(ctx context.Context, msg *Message) error
}

// Consumer reads topics in a consumer group and commits after each batch
// has been handled.
type Consumer struct {
	client  *kgo.Client
	handler Handler
	logger  *slog.Logger
}

func NewConsumer(brokers []string, group string, topics []string, handler Handler, logger *slog.Logger) (*Consumer, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ConsumerGroup(group),
		kgo.ConsumeTopics(topics...),
		kgo.DisableAutoCommit(),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka consumer: %w", err)
	}
	return &Consumer{client: client, handler: handler, logger: logger}, nil
}

// Run polls until ctx is done or the handler fails.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		fetches := c.client.PollFetches(ctx)
		if fetches.IsClientClosed() || ctx.Err() != nil {
			return nil
		}
		for _, fe := range fetches.Errors() {
			if errors.Is(fe.Err, context.Canceled) {
				return nil
			}
			c.logger.WarnContext(ctx, "kafka fetch error",
				"topic", fe.Topic,
				"partition", fe.Partition,
				"error", fe.Err,
			)
		}

		var handled []*kgo.Record
		var handleErr error
		fetches.EachRecord(func(r *kgo.Record) {
			if handleErr != nil {
				return
			}
			if err := c.handler.Handle(ctx, fromRecord(r)); err != nil {
				handleErr = err
				return
			}
			handled = append(handled, r)
		})
		if len(handled) > 0 {
			if err := c.client.CommitRecords(ctx, handled...); err != nil {
				return fmt.Errorf("commit: %w", err)
			}
		}
		if handleErr != nil {
			return fmt.Errorf("handle message: %w", handleErr)
		}
	}
}

func (c *Consumer) Close() {
	c.client.Close()
}
