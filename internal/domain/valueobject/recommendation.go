package valueobject

import "fmt"

// Recommendation is an advisory outcome derived from the model probability.
// It never overrides the rule-based Decision.
type Recommendation struct {
	value string
}

var (
	RecommendApprove = Recommendation{value: "approve"}
	RecommendReview  = Recommendation{value: "review"}
	RecommendReject  = Recommendation{value: "reject"}
)

// RecommendationFromProbability maps the probability of creditworthiness
// onto a recommendation. Both bounds are strict: 0.75 and 0.40 are reviews.
func RecommendationFromProbability(p float64) Recommendation {
	switch {
	case p > 0.75:
		return RecommendApprove
	case p < 0.40:
		return RecommendReject
	default:
		return RecommendReview
	}
}

// String returns the string representation.
func (r Recommendation) String() string { return r.value }

// NewRecommendation parses a stored recommendation.
func NewRecommendation(s string) (Recommendation, error) {
	switch s {
	case RecommendApprove.value:
		return RecommendApprove, nil
	case RecommendReview.value:
		return RecommendReview, nil
	case RecommendReject.value:
		return RecommendReject, nil
	default:
		return Recommendation{}, fmt.Errorf("%w: %q", ErrInvalidRecommendation, s)
	}
}

// IsZero returns true when not initialised.
func (r Recommendation) IsZero() bool { return r.value == "" }
