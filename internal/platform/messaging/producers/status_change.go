package producers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"github.com/fincore-approval-engine/internal/config"
)

// StatusChangeProducer publishes business event status changes to the
// status topic. Messages are keyed by business event ID so all changes of
// one event land on the same partition, in order.
type StatusChangeProducer struct {
	logger *slog.Logger
	writer KafkaWriter // Interface for testability
	topic  string
}

// NewStatusChangeProducer creates the producer and ensures the topic exists
func NewStatusChangeProducer(ctx context.Context, logger *slog.Logger, cfg *config.KafkaConfig) (*StatusChangeProducer, error) {
	if cfg.StatusTopic == "" {
		return nil, fmt.Errorf("kafka status topic is not configured")
	}

	conn, err := kafka.Dial("tcp", cfg.Brokers)
	if err != nil {
		return nil, fmt.Errorf("failed to dial kafka for status change producer: %w", err)
	}
	defer conn.Close()

	err = createKafkaTopicIfNotExists(conn, cfg.StatusTopic, cfg.NumPartitions, cfg.ReplicationFactor, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure status topic %s exists: %w", cfg.StatusTopic, err)
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers),
		Topic:        cfg.StatusTopic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        false, // The poller retries on its own; keep acks synchronous
		WriteTimeout: cfg.MaxWait,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Error("Failed to write status change messages", "topic", cfg.StatusTopic, "error", err, "count", len(messages))
			} else {
				logger.Debug("Wrote status change messages", "topic", cfg.StatusTopic, "count", len(messages))
			}
		},
	}

	return &StatusChangeProducer{
		logger: logger,
		writer: writer,
		topic:  cfg.StatusTopic,
	}, nil
}

func (p *StatusChangeProducer) Publish(ctx context.Context, key string, value interface{}) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal status change message: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: jsonValue,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish status change message",
			"topic", p.topic,
			"key", key,
			"error", err,
		)
		return fmt.Errorf("failed to publish status change message to %s: %w", p.topic, err)
	}

	p.logger.Debug("Published status change message",
		"topic", p.topic,
		"key", key,
	)
	return nil
}

func (p *StatusChangeProducer) Close() error {
	p.logger.Info("Closing status change Kafka producer", "topic", p.topic)
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka writer for topic %s: %w", p.topic, err)
	}
	return nil
}
