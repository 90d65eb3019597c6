package service

import (
	"github.com/gagankishoreint-glitch/credai/internal/domain/valueobject"
)

// Assessment bundles everything the engine computes for one application.
// The model credit score and the policy score are independent signals and
// are deliberately left unreconciled.
type Assessment struct {
	Cleaned        CleanedFeatures
	Engineered     EngineeredFeatures
	Normalized     NormalizedFeatures
	Scoring        ScoringResult
	Policy         DecisionResult
	Contributions  []FeatureContribution
	RiskGrade      valueobject.RiskGrade
	Recommendation valueobject.Recommendation
}

// ScoreDivergence is the absolute gap between the model credit score and
// the policy score.
func (a Assessment) ScoreDivergence() int {
	d := a.Scoring.CreditScore - a.Policy.Score
	if d < 0 {
		return -d
	}
	return d
}

// CreditEngine runs the full scoring pipeline. It holds only immutable
// configuration and may be shared between goroutines.
type CreditEngine struct {
	preprocessor Preprocessor
	normalizer   Normalizer
	scorer       LogisticScorer
	policy       DecisionPolicy
}

// NewCreditEngine returns an engine using the default model.
func NewCreditEngine() *CreditEngine {
	return NewCreditEngineWithModel(DefaultLogisticModel())
}

// NewCreditEngineWithModel returns an engine scoring with model.
func NewCreditEngineWithModel(model LogisticModel) *CreditEngine {
	return &CreditEngine{
		preprocessor: NewPreprocessor(),
		normalizer:   NewNormalizer(),
		scorer:       NewLogisticScorer(model),
		policy:       NewDecisionPolicy(),
	}
}

// Assess scores raw. It cannot fail: malformed input degrades to defaults.
func (e *CreditEngine) Assess(raw valueobject.RawApplication) Assessment {
	cleaned := e.preprocessor.Clean(raw)
	engineered := e.preprocessor.EngineerFeatures(cleaned)
	normalized := e.normalizer.Normalize(engineered)
	vector := normalized.Vector()

	scoring := e.scorer.Predict(vector)

	return Assessment{
		Cleaned:        cleaned,
		Engineered:     engineered,
		Normalized:     normalized,
		Scoring:        scoring,
		Policy:         e.policy.Evaluate(cleaned),
		Contributions:  e.scorer.Explain(vector),
		RiskGrade:      valueobject.RiskGradeFromScore(scoring.CreditScore),
		Recommendation: valueobject.RecommendationFromProbability(scoring.Probability),
	}
}
