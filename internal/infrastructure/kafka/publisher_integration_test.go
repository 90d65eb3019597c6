//go:build integration

package kafka_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gagankishoreint-glitch/credai/internal/application/dto"
	"github.com/gagankishoreint-glitch/credai/internal/application/usecase"
	"github.com/gagankishoreint-glitch/credai/internal/domain/event"
	"github.com/gagankishoreint-glitch/credai/internal/domain/service"
	"github.com/gagankishoreint-glitch/credai/internal/infrastructure/kafka"
	pkgkafka "github.com/gagankishoreint-glitch/credai/pkg/kafka"
	"github.com/gagankishoreint-glitch/credai/pkg/testutil"
)

func TestScoringRoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	kc := testutil.NewKafkaContainer(ctx, t)
	cfg := pkgkafka.Config{Brokers: kc.Brokers, ClientID: "credai-test", ConsumerGroup: "credai-test"}

	producer, err := pkgkafka.NewProducer(cfg)
	require.NoError(t, err)
	publisher := kafka.NewPublisher(producer, testLogger())
	defer publisher.Close()

	processor := usecase.NewProcessScoringRequestUseCase(service.NewCreditEngine(), publisher, nil, testLogger())
	requests, err := pkgkafka.NewConsumer(cfg, "credai.scoring.requests", kafka.NewScoringRequestHandler(processor, testLogger()), testLogger())
	require.NoError(t, err)
	defer requests.Close()

	results := make(chan pkgkafka.Message, 1)
	resultsCfg := cfg
	resultsCfg.ConsumerGroup = "credai-test-results"
	collector, err := pkgkafka.NewConsumer(resultsCfg, "credai.assessment.results", func(_ context.Context, msg pkgkafka.Message) error {
		results <- msg
		return nil
	}, testLogger())
	require.NoError(t, err)
	defer collector.Close()

	go func() { _ = requests.Start(ctx) }()
	go func() { _ = collector.Start(ctx) }()

	payload, err := json.Marshal(map[string]any{"ownerId": "partner-1", "data": testutil.StrongApplication()})
	require.NoError(t, err)
	require.NoError(t, producer.Publish(ctx, "credai.scoring.requests", pkgkafka.Message{Key: []byte("req-1"), Value: payload}))

	select {
	case msg := <-results:
		assert.Equal(t, "req-1", string(msg.Key))
		assert.Equal(t, event.TypeAssessmentCompleted, msg.Headers["event_type"])

		var completed struct {
			Result dto.AssessmentResponse `json:"result"`
		}
		require.NoError(t, json.Unmarshal(msg.Value, &completed))
		assert.Equal(t, 770, completed.Result.PolicyScore)
		assert.Equal(t, 833, completed.Result.CreditScore)
	case <-ctx.Done():
		t.Fatal("timed out waiting for assessment result")
	}
}
