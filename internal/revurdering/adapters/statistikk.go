package adapters

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	json "github.com/goccy/go-json"

	"supstonad/internal/platform/kafka"
	"supstonad/internal/revurdering/ports"
	"supstonad/pkg/platform/privacy"
)

// Producer is the part of kafka.Producer the statistikk publisher uses.
type Producer interface {
	Produce(ctx context.Context, msgs ...kafka.Message) error
}

// statistikkPayload is the wire format on the statistikk topic. The fnr is
// replaced by a keyed digest.
type statistikkPayload struct {
	RevurderingID  string    `json:"revurderingId"`
	SakID          string    `json:"sakId"`
	Saksnummer     int64     `json:"saksnummer"`
	PersonHash     string    `json:"personHash"`
	Hendelse       string    `json:"hendelse"`
	Tilstand       string    `json:"tilstand"`
	FraOgMed       string    `json:"fraOgMed"`
	TilOgMed       string    `json:"tilOgMed"`
	Arsak          string    `json:"arsak,omitempty"`
	Saksbehandler  string    `json:"saksbehandler,omitempty"`
	Attestant      string    `json:"attestant,omitempty"`
	Opphorsgrunner []string  `json:"opphorsgrunner,omitempty"`
	Tidspunkt      time.Time `json:"tidspunkt"`
}

// StatistikkPublisher publishes transitions to Kafka keyed by sak, so every
// sak's events keep their order within a partition.
type StatistikkPublisher struct {
	producer Producer
	topic    string
	hasher   *privacy.Hasher
}

func NewStatistikkPublisher(producer Producer, topic string, hasher *privacy.Hasher) *StatistikkPublisher {
	return &StatistikkPublisher{producer: producer, topic: topic, hasher: hasher}
}

func (p *StatistikkPublisher) Publiser(ctx context.Context, h ports.StatistikkHendelse) error {
	value, err := json.Marshal(statistikkPayload{
		RevurderingID:  h.RevurderingID.String(),
		SakID:          h.SakID.String(),
		Saksnummer:     int64(h.Saksnummer),
		PersonHash:     p.hasher.Fnr(h.Fnr),
		Hendelse:       h.Hendelse,
		Tilstand:       string(h.Tilstand),
		FraOgMed:       h.Periode.FraOgMed.String(),
		TilOgMed:       h.Periode.TilOgMed.String(),
		Arsak:          string(h.Arsak),
		Saksbehandler:  h.Saksbehandler.String(),
		Attestant:      h.Attestant.String(),
		Opphorsgrunner: h.Opphorsgrunner,
		Tidspunkt:      h.Tidspunkt,
	})
	if err != nil {
		return fmt.Errorf("marshal statistikk: %w", err)
	}
	return p.producer.Produce(ctx, kafka.Message{
		Topic:   p.topic,
		Key:     []byte(h.SakID.String()),
		Value:   value,
		Headers: map[string]string{"hendelse": h.Hendelse},
	})
}

// LoggStatistikk writes transitions to the log when no broker is configured.
type LoggStatistikk struct {
	logger *slog.Logger
}

func NewLoggStatistikk(logger *slog.Logger) *LoggStatistikk {
	return &LoggStatistikk{logger: logger}
}

func (l *LoggStatistikk) Publiser(ctx context.Context, h ports.StatistikkHendelse) error {
	l.logger.InfoContext(ctx, "statistikk",
		"hendelse", h.Hendelse,
		"revurdering_id", h.RevurderingID,
		"sak_id", h.SakID,
		"tilstand", h.Tilstand,
	)
	return nil
}
