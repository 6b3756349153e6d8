package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/khoahotran/portfolio-builder/internal/config"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

const (
	TopicPortfolioEvents = "portfolio.events"
	TopicMediaEvents     = "media.events"
)

// Publisher is what the application layer emits events through.
type Publisher interface {
	PublishPortfolioEvent(ctx context.Context, payload PortfolioEventPayload) error
	PublishMediaEvent(ctx context.Context, payload MediaEventPayload) error
	Close()
}

type KafkaProducerClient struct {
	PortfolioEventsWriter *kafka.Writer
	MediaEventsWriter     *kafka.Writer
	logger                logger.Logger
}

func newWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 20 * time.Millisecond,
	}
}

func NewKafkaProducerClient(cfg config.Config, log logger.Logger) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	log.Info("Initialize Kafka Producers successfully.")
	return &KafkaProducerClient{
		PortfolioEventsWriter: newWriter(brokers, TopicPortfolioEvents),
		MediaEventsWriter:     newWriter(brokers, TopicMediaEvents),
		logger:                log,
	}, nil
}

func publish(ctx context.Context, w *kafka.Writer, key string, payload any) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := w.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: value}); err != nil {
		return fmt.Errorf("failed to write to %s: %w", w.Topic, err)
	}
	return nil
}

// Events are keyed by owner so one user's events stay ordered on a partition.
func (c *KafkaProducerClient) PublishPortfolioEvent(ctx context.Context, payload PortfolioEventPayload) error {
	return publish(ctx, c.PortfolioEventsWriter, payload.OwnerID, payload)
}

func (c *KafkaProducerClient) PublishMediaEvent(ctx context.Context, payload MediaEventPayload) error {
	return publish(ctx, c.MediaEventsWriter, payload.OwnerID, payload)
}

func (c *KafkaProducerClient) Close() {
	if c.PortfolioEventsWriter != nil {
		c.PortfolioEventsWriter.Close()
	}
	if c.MediaEventsWriter != nil {
		c.MediaEventsWriter.Close()
	}
	c.logger.Info("Closed Kafka Producers")
}

// NopPublisher drops every event. Used when no brokers are configured.
type NopPublisher struct {
	Logger logger.Logger
}

func (p NopPublisher) PublishPortfolioEvent(context.Context, PortfolioEventPayload) error { return nil }
func (p NopPublisher) PublishMediaEvent(context.Context, MediaEventPayload) error         { return nil }
func (p NopPublisher) Close()                                                             {}
