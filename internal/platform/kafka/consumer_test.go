package kafka

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/cenkalti/backoff/v4"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubReader serves a fixed batch of messages and cancels the consumer's
// context once it runs dry.
type stubReader struct {
	mu        sync.Mutex
	pending   []kafkago.Message
	committed []int64
	cancel    context.CancelFunc
}

func (r *stubReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.pending) == 0 {
		r.cancel()
		return kafkago.Message{}, ctx.Err()
	}
	msg := r.pending[0]
	r.pending = r.pending[1:]
	return msg, nil
}

func (r *stubReader) CommitMessages(_ context.Context, msgs ...kafkago.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func (r *stubReader) Close() error { return nil }

func noWait() backoff.BackOff { return &backoff.ZeroBackOff{} }

func TestConsume_RetriesFailedMessageBeforeMovingOn(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &stubReader{
		pending: []kafkago.Message{{Offset: 10}, {Offset: 11}},
		cancel:  cancel,
	}
	c := newConsumer(reader, zap.NewNop(), noWait)

	var handled []int64
	failures := 2
	err := c.Consume(ctx, func(_ context.Context, msg kafkago.Message) error {
		handled = append(handled, msg.Offset)
		if msg.Offset == 10 && failures > 0 {
			failures--
			return errors.New("database unavailable")
		}
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []int64{10, 10, 10, 11}, handled)
	assert.Equal(t, []int64{10, 11}, reader.committed)
}

func TestConsume_CancelledWhileRetryingDoesNotCommit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &stubReader{
		pending: []kafkago.Message{{Offset: 7}, {Offset: 8}},
		cancel:  cancel,
	}
	c := newConsumer(reader, zap.NewNop(), noWait)

	attempts := 0
	err := c.Consume(ctx, func(_ context.Context, msg kafkago.Message) error {
		require.Equal(t, int64(7), msg.Offset, "later messages must wait behind a failing one")
		attempts++
		if attempts == 3 {
			cancel()
		}
		return errors.New("still failing")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 3, attempts)
	assert.Empty(t, reader.committed)
}

func TestRetryBackOff_NeverStops(t *testing.T) {
	b := retryBackOff()
	b.Reset()
	for i := 0; i < 50; i++ {
		assert.NotEqual(t, backoff.Stop, b.NextBackOff())
	}
}
