package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gagankishoreint-glitch/credai/internal/application/dto"
	"github.com/gagankishoreint-glitch/credai/internal/domain/event"
	"github.com/gagankishoreint-glitch/credai/internal/infrastructure/kafka"
	pkgkafka "github.com/gagankishoreint-glitch/credai/pkg/kafka"
)

type mockProducer struct {
	topic    string
	messages []pkgkafka.Message
	err      error
	closed   bool
}

func (m *mockProducer) Publish(_ context.Context, topic string, messages ...pkgkafka.Message) error {
	if m.err != nil {
		return m.err
	}
	m.topic = topic
	m.messages = append(m.messages, messages...)
	return nil
}

func (m *mockProducer) Close() error {
	m.closed = true
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPublisher_Publish(t *testing.T) {
	t.Run("encodes events with envelope headers", func(t *testing.T) {
		producer := &mockProducer{}
		pub := kafka.NewPublisher(producer, testLogger())

		submitted := event.NewApplicationSubmitted("app-1", "user-1", "Acme", decimal.NewFromInt(500_000))
		scored := event.NewApplicationScored("app-1", "user-1", 770, 833, 0.968, "A", "decision", "approved")

		require.NoError(t, pub.Publish(context.Background(), "credai.application.events", submitted, scored))

		assert.Equal(t, "credai.application.events", producer.topic)
		require.Len(t, producer.messages, 2)

		msg := producer.messages[0]
		assert.Equal(t, []byte("app-1"), msg.Key)
		assert.Equal(t, event.TypeApplicationSubmitted, msg.Headers["event_type"])
		assert.Equal(t, submitted.EventID(), msg.Headers["event_id"])
		assert.Equal(t, "CreditApplication", msg.Headers["aggregate_type"])

		var payload map[string]any
		require.NoError(t, json.Unmarshal(msg.Value, &payload))
		assert.Equal(t, "app-1", payload["aggregate_id"])
		assert.Equal(t, "user-1", payload["owner_id"])
	})

	t.Run("no events is a no-op", func(t *testing.T) {
		producer := &mockProducer{err: errors.New("should not be called")}
		pub := kafka.NewPublisher(producer, testLogger())
		assert.NoError(t, pub.Publish(context.Background(), "topic"))
	})

	t.Run("wraps producer errors", func(t *testing.T) {
		producer := &mockProducer{err: errors.New("leader not available")}
		pub := kafka.NewPublisher(producer, testLogger())

		err := pub.Publish(context.Background(), "topic", event.NewApplicationSubmitted("a", "u", "Acme", decimal.Zero))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "topic topic")
	})

	t.Run("close closes the producer", func(t *testing.T) {
		producer := &mockProducer{}
		require.NoError(t, kafka.NewPublisher(producer, testLogger()).Close())
		assert.True(t, producer.closed)
	})
}

func TestLogPublisher(t *testing.T) {
	pub := kafka.NewLogPublisher(testLogger())
	assert.NoError(t, pub.Publish(context.Background(), "topic", event.NewApplicationSubmitted("a", "u", "Acme", decimal.Zero)))
}

type recordingProcessor struct {
	got []dto.ScoringRequestMessage
	err error
}

func (r *recordingProcessor) Execute(_ context.Context, msg dto.ScoringRequestMessage) error {
	r.got = append(r.got, msg)
	return r.err
}

func TestScoringRequestHandler(t *testing.T) {
	t.Run("decodes lenient payloads", func(t *testing.T) {
		proc := &recordingProcessor{}
		handler := kafka.NewScoringRequestHandler(proc, testLogger())

		err := handler(context.Background(), pkgkafka.Message{
			Key:   []byte("req-7"),
			Value: []byte(`{"ownerId":"p1","data":{"annualRevenue":"1.2e6","yearsInBusiness":"3 years"}}`),
		})
		require.NoError(t, err)

		require.Len(t, proc.got, 1)
		assert.Equal(t, "req-7", proc.got[0].RequestID)
		assert.Equal(t, 1_200_000.0, proc.got[0].Data.AnnualRevenue.Float(0))
		assert.Equal(t, 3.0, proc.got[0].Data.YearsInBusiness.Integer(0))
	})

	t.Run("malformed payload is skipped", func(t *testing.T) {
		proc := &recordingProcessor{}
		handler := kafka.NewScoringRequestHandler(proc, testLogger())

		assert.NoError(t, handler(context.Background(), pkgkafka.Message{Value: []byte("not json")}))
		assert.Empty(t, proc.got)
	})

	t.Run("processing errors propagate", func(t *testing.T) {
		proc := &recordingProcessor{err: errors.New("publish failed")}
		handler := kafka.NewScoringRequestHandler(proc, testLogger())

		err := handler(context.Background(), pkgkafka.Message{Value: []byte(`{"requestId":"r1","data":{}}`)})
		assert.Error(t, err)
	})
}
