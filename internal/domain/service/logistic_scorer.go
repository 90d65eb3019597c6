package service

import (
	"math"
	"slices"
)

// Weight is the coefficient of one named feature.
type Weight struct {
	Feature string
	Value   float64
}

// LogisticModel is an immutable set of ordered weights plus a bias. The
// linear term is always summed in weight order so identical inputs give
// bit-identical results.
type LogisticModel struct {
	weights []Weight
	bias    float64
}

// NewLogisticModel copies weights into a new model.
func NewLogisticModel(bias float64, weights ...Weight) LogisticModel {
	return LogisticModel{weights: slices.Clone(weights), bias: bias}
}

// DefaultLogisticModel returns the pre-trained credit model.
func DefaultLogisticModel() LogisticModel {
	return NewLogisticModel(-3.5,
		Weight{Feature: FeatureNormRevenue, Value: 1.5},
		Weight{Feature: FeatureNormYears, Value: 0.8},
		Weight{Feature: FeatureNormCreditScore, Value: 2.5},
		Weight{Feature: FeatureNormProfitMargin, Value: 2.0},
		Weight{Feature: FeatureNormLoanToRev, Value: 1.2},
	)
}

// Weights returns a copy of the model weights in summation order.
func (m LogisticModel) Weights() []Weight { return slices.Clone(m.weights) }

// Bias returns the intercept.
func (m LogisticModel) Bias() float64 { return m.bias }

// ScoringResult is the output of the logistic scorer.
type ScoringResult struct {
	Probability float64 `json:"probability"`
	Confidence  float64 `json:"confidence"`
	Score       int     `json:"score"`       // 0..100
	CreditScore int     `json:"creditScore"` // 300..850
}

// FeatureContribution is one term of the linear combination.
type FeatureContribution struct {
	Feature      string  `json:"feature"`
	Value        float64 `json:"value"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
	Impact       string  `json:"impact"`
}

// LogisticScorer applies a LogisticModel. It is safe for concurrent use.
type LogisticScorer struct {
	model LogisticModel
}

// NewLogisticScorer returns a scorer for model.
func NewLogisticScorer(model LogisticModel) LogisticScorer {
	return LogisticScorer{model: model}
}

// Predict computes the probability of creditworthiness for features.
//
// Only features present in both the model and the vector contribute: keys
// the model does not know are ignored and weighted features missing from
// the vector count as zero, as do NaN values.
func (s LogisticScorer) Predict(features FeatureVector) ScoringResult {
	z := s.model.bias
	for _, w := range s.model.weights {
		if v, ok := features[w.Feature]; ok && !math.IsNaN(v) {
			z += w.Value * v
		}
	}

	p := sigmoid(z)

	return ScoringResult{
		Probability: p,
		Confidence:  math.Abs(p-0.5) * 2,
		Score:       roundHalfUp(p * 100),
		CreditScore: roundHalfUp(300 + p*550),
	}
}

// Explain returns the weighted term of every model feature in model order.
// Impact compares the feature with the midpoint of its normalized range.
func (s LogisticScorer) Explain(features FeatureVector) []FeatureContribution {
	out := make([]FeatureContribution, 0, len(s.model.weights))
	for _, w := range s.model.weights {
		v := features[w.Feature]
		out = append(out, FeatureContribution{
			Feature:      w.Feature,
			Value:        v,
			Weight:       w.Value,
			Contribution: w.Value * v,
			Impact:       impactLabel(v),
		})
	}
	return out
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

// roundHalfUp rounds a non-negative value to the nearest integer, halves up.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

func impactLabel(v float64) string {
	switch {
	case v > 0.5:
		return "POSITIVE"
	case v < 0.5:
		return "NEGATIVE"
	default:
		return "NEUTRAL"
	}
}
