package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/adoptme/service-adoption/internal/platform/domain"
	"github.com/adoptme/service-adoption/internal/platform/kafka"
)

// DonationSettler applies payment outcomes to donations.
type DonationSettler interface {
	CompletePayment(ctx context.Context, donationID uuid.UUID, transactionID, processor string, at time.Time) error
	FailPayment(ctx context.Context, donationID uuid.UUID, reason string) error
}

// DonationPaymentConsumer listens to payment events and settles donations.
type DonationPaymentConsumer struct {
	consumer *kafka.Consumer
	service  DonationSettler
	logger   *zap.Logger
}

// NewDonationPaymentConsumer creates a new DonationPaymentConsumer.
func NewDonationPaymentConsumer(
	brokers []string,
	groupID string,
	service DonationSettler,
	logger *zap.Logger,
) *DonationPaymentConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, TopicPaymentEvents, logger)
	return &DonationPaymentConsumer{
		consumer: consumer,
		service:  service,
		logger:   logger,
	}
}

// Start begins consuming payment events. This blocks until the context is cancelled.
func (c *DonationPaymentConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *DonationPaymentConsumer) Close() error {
	return c.consumer.Close()
}

func (c *DonationPaymentConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	cloudEvent, err := kafka.ParseCloudEvent(msg.Value)
	if err != nil {
		c.logger.Error("failed to parse cloud event from payment topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil
	}

	switch cloudEvent.Type {
	case PaymentDonationSettled:
		return c.handleSettled(ctx, cloudEvent)
	case PaymentDonationFailed:
		return c.handleFailed(ctx, cloudEvent)
	default:
		c.logger.Debug("ignoring unhandled payment event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *DonationPaymentConsumer) handleSettled(ctx context.Context, cloudEvent kafka.CloudEvent) error {
	var evt DonationSettledEvent
	if err := cloudEvent.ParseData(&evt); err != nil || evt.DonationID == uuid.Nil {
		c.logger.Error("failed to parse DonationSettledEvent data", zap.Error(err))
		return nil
	}

	at := evt.OccurredAt
	if at.IsZero() {
		at = time.Now().UTC()
	}

	c.logger.Info("processing donation settled event",
		zap.String("donation_id", evt.DonationID.String()),
		zap.String("transaction_id", evt.TransactionID),
	)

	err := c.service.CompletePayment(ctx, evt.DonationID, evt.TransactionID, evt.Processor, at)
	return c.outcome(err, evt.DonationID, "complete")
}

func (c *DonationPaymentConsumer) handleFailed(ctx context.Context, cloudEvent kafka.CloudEvent) error {
	var evt DonationSettledEvent
	if err := cloudEvent.ParseData(&evt); err != nil || evt.DonationID == uuid.Nil {
		c.logger.Error("failed to parse donation failure data", zap.Error(err))
		return nil
	}

	err := c.service.FailPayment(ctx, evt.DonationID, evt.Reason)
	return c.outcome(err, evt.DonationID, "fail")
}

// outcome drops events that can never succeed and surfaces the rest so the
// offset is not committed.
func (c *DonationPaymentConsumer) outcome(err error, donationID uuid.UUID, action string) error {
	if err == nil {
		c.logger.Info("donation payment settled",
			zap.String("donation_id", donationID.String()),
			zap.String("action", action),
		)
		return nil
	}

	if domain.IsNotFound(err) || domain.IsValidation(err) {
		c.logger.Warn("dropping payment event",
			zap.String("donation_id", donationID.String()),
			zap.String("action", action),
			zap.Error(err),
		)
		return nil
	}

	c.logger.Error("failed to settle donation payment",
		zap.String("donation_id", donationID.String()),
		zap.String("action", action),
		zap.Error(err),
	)
	return err
}
