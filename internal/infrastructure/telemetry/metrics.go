package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/gagankishoreint-glitch/credai/internal/domain/valueobject"
)

// Instrument names.
const (
	assessmentsTotal   = "credai_assessments_total"
	policyScoreMetric  = "credai_policy_score"
	modelScoreMetric   = "credai_model_credit_score"
	divergenceMetric   = "credai_score_divergence"
	meterInstrumentLib = "github.com/gagankishoreint-glitch/credai"
)

// scoreBuckets span the 300..850 score range in 50-point steps.
var scoreBuckets = []float64{300, 350, 400, 450, 500, 550, 600, 650, 700, 750, 800, 850}

// AssessmentMetrics implements port.AssessmentRecorder with OpenTelemetry
// instruments.
type AssessmentMetrics struct {
	assessments metric.Int64Counter
	policyScore metric.Int64Histogram
	modelScore  metric.Int64Histogram
	divergence  metric.Int64Histogram
}

// NewAssessmentMetrics registers the instruments on provider.
func NewAssessmentMetrics(provider metric.MeterProvider) (*AssessmentMetrics, error) {
	meter := provider.Meter(meterInstrumentLib)

	assessments, err := meter.Int64Counter(assessmentsTotal,
		metric.WithDescription("Credit assessments by source and policy decision."))
	if err != nil {
		return nil, fmt.Errorf("telemetry: %s: %w", assessmentsTotal, err)
	}
	policyScore, err := meter.Int64Histogram(policyScoreMetric,
		metric.WithDescription("Rule-based policy score."),
		metric.WithExplicitBucketBoundaries(scoreBuckets...))
	if err != nil {
		return nil, fmt.Errorf("telemetry: %s: %w", policyScoreMetric, err)
	}
	modelScore, err := meter.Int64Histogram(modelScoreMetric,
		metric.WithDescription("Logistic model credit score."),
		metric.WithExplicitBucketBoundaries(scoreBuckets...))
	if err != nil {
		return nil, fmt.Errorf("telemetry: %s: %w", modelScoreMetric, err)
	}
	divergence, err := meter.Int64Histogram(divergenceMetric,
		metric.WithDescription("Absolute gap between model credit score and policy score."),
		metric.WithExplicitBucketBoundaries(0, 25, 50, 100, 150, 200, 300))
	if err != nil {
		return nil, fmt.Errorf("telemetry: %s: %w", divergenceMetric, err)
	}

	return &AssessmentMetrics{
		assessments: assessments,
		policyScore: policyScore,
		modelScore:  modelScore,
		divergence:  divergence,
	}, nil
}

// RecordAssessment records one assessment.
func (m *AssessmentMetrics) RecordAssessment(ctx context.Context, source string, policyScore, modelScore int, decision valueobject.Decision) {
	src := metric.WithAttributes(attribute.String("source", source))

	m.assessments.Add(ctx, 1, metric.WithAttributes(
		attribute.String("source", source),
		attribute.String("decision", decision.String()),
	))
	m.policyScore.Record(ctx, int64(policyScore), src)
	m.modelScore.Record(ctx, int64(modelScore), src)

	gap := modelScore - policyScore
	if gap < 0 {
		gap = -gap
	}
	m.divergence.Record(ctx, int64(gap), src)
}
