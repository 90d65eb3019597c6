package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/gagankishoreint-glitch/credai/internal/domain/valueobject"
	"github.com/gagankishoreint-glitch/credai/internal/infrastructure/telemetry"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := map[string]metricdata.Metrics{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func TestAssessmentMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	m, err := telemetry.NewAssessmentMetrics(provider)
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordAssessment(ctx, "submit", 770, 833, valueobject.DecisionApproved)
	m.RecordAssessment(ctx, "submit", 510, 375, valueobject.DecisionPending)
	m.RecordAssessment(ctx, "preview", 510, 375, valueobject.DecisionPending)

	metrics := collect(t, reader)

	counter, ok := metrics["credai_assessments_total"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	var total int64
	for _, dp := range counter.DataPoints {
		total += dp.Value
	}
	assert.Equal(t, int64(3), total)
	assert.Len(t, counter.DataPoints, 3, "one series per source and decision")

	divergence, ok := metrics["credai_score_divergence"].Data.(metricdata.Histogram[int64])
	require.True(t, ok)
	var sum int64
	for _, dp := range divergence.DataPoints {
		sum += dp.Sum
	}
	assert.Equal(t, int64(63+135+135), sum)

	assert.Contains(t, metrics, "credai_policy_score")
	assert.Contains(t, metrics, "credai_model_credit_score")
}
