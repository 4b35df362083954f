// Package events publishes outbox rows to Kafka.
package events

import (
	"context"
	"log/slog"

	"court-reservation/internal/pkg/config"
	"court-reservation/internal/pkg/errs"
	"court-reservation/internal/usecase/shared"

	"github.com/segmentio/kafka-go"
)

const headerEventKind = "event-kind"

var ErrPublishFailed = errs.New("failed to publish reservation events")

// MessageWriter is the subset of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer MessageWriter
	logger *slog.Logger
}

func NewKafkaWriter(cfg config.KafkaConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{}, // per-reservation ordering
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  cfg.MaxAttempts,
		BatchTimeout: cfg.BatchTimeout,
		Logger:       kafka.LoggerFunc(func(string, ...any) {}),
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...any) {
			slog.Error("kafka writer error", "detail", msg, "args", args)
		}),
	}
}

func NewKafkaPublisher(writer MessageWriter, logger *slog.Logger) *KafkaPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &KafkaPublisher{writer: writer, logger: logger}
}

// Publish writes events in order keyed by reservation id. The batch either
// fully succeeds or is retried by the next relay run.
func (p *KafkaPublisher) Publish(ctx context.Context, evts []shared.Event) error {
	if len(evts) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(evts))
	for _, e := range evts {
		msgs = append(msgs, kafka.Message{
			Key:   []byte(e.ReservationID.String()),
			Value: e.Payload,
			Time:  e.CreatedAt,
			Headers: []kafka.Header{
				{Key: headerEventKind, Value: []byte(e.Kind.String())},
			},
		})
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		p.logger.Error("failed to publish reservation events",
			"count", len(msgs),
			"error", err.Error())
		return errs.Mark(errs.Wrap(err, "write messages"), ErrPublishFailed)
	}

	p.logger.Debug("published reservation events", "count", len(msgs))
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
