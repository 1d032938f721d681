package events

import (
	"context"
	"encoding/json"
	"fmt"

	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

type logPublisher struct{}

// NewLogPublisher writes events to the structured log. Used when no brokers are configured.
func NewLogPublisher() Publisher {
	return logPublisher{}
}

func (logPublisher) PublishEvent(ctx context.Context, topic string, key string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	logger.FromCtx(ctx).Info("event published",
		zap.String("topic", topic),
		zap.String("key", key),
		zap.ByteString("payload", payload),
	)
	return nil
}

func (logPublisher) Close() error { return nil }

// NewPublisher picks Kafka when brokers are configured, the log otherwise.
func NewPublisher(brokers []string) Publisher {
	if len(brokers) == 0 {
		return NewLogPublisher()
	}
	return NewKafkaPublisher(brokers)
}
