package events

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"audio-summary-pipeline/internal/models"
)

// Handler processes one storage-change notification. Errors are reported by
// the handler itself; the consumer only logs and moves on, it never retries.
type Handler func(ctx context.Context, event models.ObjectCreated)

// Consumer reads object-created notifications from Kafka and dispatches each
// to a handler, once per message.
type Consumer struct {
	reader  *kafka.Reader
	handler Handler
}

// ConsumerConfig holds Kafka consumer configuration.
type ConsumerConfig struct {
	Brokers []string
	Topic   string
	GroupID string
}

// NewConsumer creates a Kafka notification consumer.
func NewConsumer(cfg ConsumerConfig, handler Handler) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    cfg.Topic,
		GroupID:  cfg.GroupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})

	log.Info().
		Strs("brokers", cfg.Brokers).
		Str("topic", cfg.Topic).
		Str("groupId", cfg.GroupID).
		Msg("Kafka consumer initialized")

	return &Consumer{reader: reader, handler: handler}
}

// Run consumes messages until the context is cancelled. Malformed payloads
// are logged and skipped.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			log.Error().Err(err).Msg("Kafka read error")
			continue
		}

		var event models.ObjectCreated
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error().
				Err(err).
				Str("key", string(msg.Key)).
				Msg("Malformed notification payload, skipping")
			continue
		}

		c.handler(ctx, event)
	}
}

// Close closes the Kafka reader.
func (c *Consumer) Close() error {
	return c.reader.Close()
}
