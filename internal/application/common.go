package application

import (
	"context"

	"go.uber.org/zap"

	"github.com/adoptme/service-adoption/internal/events"
	"github.com/adoptme/service-adoption/internal/platform/kafka"
)

// ListResult is one page of a listing.
type ListResult[T any] struct {
	Items []T
	Total int64
	Page  int
	Limit int
}

// publishEvent wraps data in a CloudEvent and sends it to adoption.events.
// Failures are logged and never returned.
func publishEvent(ctx context.Context, producer kafka.Publisher, logger *zap.Logger, eventType, key string, data interface{}) {
	cloudEvent, err := kafka.NewCloudEvent(events.Source, eventType, data)
	if err != nil {
		logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := producer.PublishEventWithKey(ctx, events.TopicAdoptionEvents, key, cloudEvent); err != nil {
		logger.Error("failed to publish event",
			zap.String("topic", events.TopicAdoptionEvents),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
