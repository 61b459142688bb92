package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Publisher publishes CloudEvents to a topic.
type Publisher interface {
	PublishEvent(ctx context.Context, topic string, ce CloudEvent) error
	PublishEventWithKey(ctx context.Context, topic, key string, ce CloudEvent) error
	Close() error
}

// Producer publishes events with a kafka-go writer.
type Producer struct {
	writer *kafkago.Writer
	logger *zap.Logger
}

// NewProducer creates a Producer for the given brokers.
func NewProducer(brokers []string, logger *zap.Logger) *Producer {
	return &Producer{
		writer: &kafkago.Writer{
			Addr:                   kafkago.TCP(brokers...),
			Balancer:               &kafkago.Hash{},
			RequiredAcks:           kafkago.RequireOne,
			BatchTimeout:           10 * time.Millisecond,
			AllowAutoTopicCreation: true,
		},
		logger: logger,
	}
}

// PublishEvent publishes ce keyed by its id.
func (p *Producer) PublishEvent(ctx context.Context, topic string, ce CloudEvent) error {
	return p.PublishEventWithKey(ctx, topic, ce.ID, ce)
}

// PublishEventWithKey publishes ce with an explicit partition key.
func (p *Producer) PublishEventWithKey(ctx context.Context, topic, key string, ce CloudEvent) error {
	value, err := json.Marshal(ce)
	if err != nil {
		return fmt.Errorf("marshal cloud event: %w", err)
	}
	msg := kafkago.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
		Headers: []kafkago.Header{
			{Key: "ce_type", Value: []byte(ce.Type)},
			{Key: "content-type", Value: []byte("application/cloudevents+json")},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write to %s: %w", topic, err)
	}
	p.logger.Debug("event published",
		zap.String("topic", topic),
		zap.String("type", ce.Type),
		zap.String("id", ce.ID),
	)
	return nil
}

// Close flushes and closes the writer.
func (p *Producer) Close() error {
	return p.writer.Close()
}

// NopPublisher drops every event. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) PublishEvent(context.Context, string, CloudEvent) error { return nil }

func (NopPublisher) PublishEventWithKey(context.Context, string, string, CloudEvent) error {
	return nil
}

func (NopPublisher) Close() error { return nil }
