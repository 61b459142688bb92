package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/adoptme/service-adoption/internal/platform/domain"
	"github.com/adoptme/service-adoption/internal/platform/kafka"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type settleCall struct {
	action        string
	donationID    uuid.UUID
	transactionID string
	processor     string
	reason        string
	at            time.Time
}

type fakeSettler struct {
	calls []settleCall
	err   error
}

func (f *fakeSettler) CompletePayment(_ context.Context, id uuid.UUID, txn, processor string, at time.Time) error {
	f.calls = append(f.calls, settleCall{action: "complete", donationID: id, transactionID: txn, processor: processor, at: at})
	return f.err
}

func (f *fakeSettler) FailPayment(_ context.Context, id uuid.UUID, reason string) error {
	f.calls = append(f.calls, settleCall{action: "fail", donationID: id, reason: reason})
	return f.err
}

func newTestConsumer(s DonationSettler) *DonationPaymentConsumer {
	return &DonationPaymentConsumer{service: s, logger: zap.NewNop()}
}

func paymentMessage(t *testing.T, eventType string, data interface{}) kafkago.Message {
	t.Helper()
	ce, err := kafka.NewCloudEvent("payment-gateway", eventType, data)
	require.NoError(t, err)
	value, err := json.Marshal(ce)
	require.NoError(t, err)
	return kafkago.Message{Topic: TopicPaymentEvents, Value: value}
}

func TestHandleMessage_Settled(t *testing.T) {
	settler := &fakeSettler{}
	c := newTestConsumer(settler)
	id := uuid.New()
	at := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	msg := paymentMessage(t, PaymentDonationSettled, DonationSettledEvent{
		DonationID: id, TransactionID: "txn-42", Processor: "khalti", OccurredAt: at,
	})
	require.NoError(t, c.handleMessage(context.Background(), msg))

	require.Len(t, settler.calls, 1)
	call := settler.calls[0]
	assert.Equal(t, "complete", call.action)
	assert.Equal(t, id, call.donationID)
	assert.Equal(t, "txn-42", call.transactionID)
	assert.Equal(t, "khalti", call.processor)
	assert.True(t, at.Equal(call.at))
}

func TestHandleMessage_SettledWithoutTimestampUsesNow(t *testing.T) {
	settler := &fakeSettler{}
	c := newTestConsumer(settler)

	before := time.Now().UTC()
	msg := paymentMessage(t, PaymentDonationSettled, DonationSettledEvent{DonationID: uuid.New(), TransactionID: "t"})
	require.NoError(t, c.handleMessage(context.Background(), msg))

	require.Len(t, settler.calls, 1)
	assert.False(t, settler.calls[0].at.Before(before))
}

func TestHandleMessage_Failed(t *testing.T) {
	settler := &fakeSettler{}
	c := newTestConsumer(settler)
	id := uuid.New()

	msg := paymentMessage(t, PaymentDonationFailed, DonationSettledEvent{DonationID: id, Reason: "insufficient funds"})
	require.NoError(t, c.handleMessage(context.Background(), msg))

	require.Len(t, settler.calls, 1)
	assert.Equal(t, "fail", settler.calls[0].action)
	assert.Equal(t, "insufficient funds", settler.calls[0].reason)
}

func TestHandleMessage_SkipsBadInput(t *testing.T) {
	settler := &fakeSettler{}
	c := newTestConsumer(settler)

	tests := []struct {
		name string
		msg  kafkago.Message
	}{
		{"not json", kafkago.Message{Value: []byte("garbage")}},
		{"no type", kafkago.Message{Value: []byte(`{"id":"1"}`)}},
		{"unknown type", paymentMessage(t, "payment.refund_issued", map[string]string{"x": "y"})},
		{"nil donation id", paymentMessage(t, PaymentDonationSettled, DonationSettledEvent{TransactionID: "t"})},
		{"data not an object", paymentMessage(t, PaymentDonationFailed, "oops")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, c.handleMessage(context.Background(), tt.msg))
		})
	}
	assert.Empty(t, settler.calls)
}

func TestHandleMessage_ErrorHandling(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{"not found is dropped", domain.NewNotFoundError("Donation", "x"), false},
		{"invalid transition is dropped", domain.NewValidationError("cannot move donation"), false},
		{"conflict is retried", domain.NewConflictError("modified"), true},
		{"storage failure is retried", errors.New("connection reset"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestConsumer(&fakeSettler{err: tt.err})
			msg := paymentMessage(t, PaymentDonationSettled, DonationSettledEvent{DonationID: uuid.New(), TransactionID: "t"})
			err := c.handleMessage(context.Background(), msg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
