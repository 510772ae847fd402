package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/ThreeDotsLabs/watermill-kafka/v3/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/garsue/watermillzap"
	"github.com/google/uuid"

	"usersvc/internal/config"
	"usersvc/internal/logging"
)

type watermillBus struct {
	publisher message.Publisher
	logger    logging.Logger
}

func NewBus(cfg config.KafkaConfig, baseLogger logging.Logger) (Bus, func(ctx context.Context) error, error) {
	if !cfg.Enabled {
		// No-op bus for environments without Kafka
		return &noopBus{}, func(ctx context.Context) error { return nil }, nil
	}

	wmlogger := watermillzap.NewLogger(logging.AsZap(baseLogger))

	pubCfg := kafka.PublisherConfig{
		Brokers:   cfg.Brokers,
		Marshaler: kafka.DefaultMarshaler{},
		OverwriteSaramaConfig: func() *sarama.Config {
			c := kafka.DefaultSaramaSyncPublisherConfig()
			c.ClientID = cfg.ClientID
			return c
		}(),
	}

	publisher, err := kafka.NewPublisher(pubCfg, wmlogger)
	if err != nil {
		return nil, nil, fmt.Errorf("create kafka publisher: %w", err)
	}

	bus := &watermillBus{
		publisher: publisher,
		logger:    baseLogger.With("component", "kafka_bus"),
	}

	closeFn := func(ctx context.Context) error {
		return publisher.Close()
	}

	return bus, closeFn, nil
}

func (b *watermillBus) Publish(ctx context.Context, topic string, msgType string, payload any) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	env := Envelope{
		MessageID:  uuid.NewString(),
		Type:       msgType,
		OccurredAt: time.Now().UTC(),
		Payload:    payloadBytes,
	}

	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}

	msg := message.NewMessage(env.MessageID, body)
	msg.Metadata.Set("type", msgType)

	if err := b.publisher.Publish(topic, msg); err != nil {
		b.logger.Error("failed to publish kafka message",
			"topic", topic,
			"type", msgType,
			"error", err,
		)
		return fmt.Errorf("publish: %w", err)
	}

	return nil
}

// No-op implementation when Kafka is disabled.
type noopBus struct{}

func (*noopBus) Publish(ctx context.Context, topic string, msgType string, payload any) error {
	return nil
}
