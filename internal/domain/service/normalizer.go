package service

import "math"

// Feature names understood by the logistic model.
const (
	FeatureNormRevenue      = "normRevenue"
	FeatureNormYears        = "normYears"
	FeatureNormCreditScore  = "normCreditScore"
	FeatureNormProfitMargin = "normProfitMargin"
	FeatureNormLoanToRev    = "normLoanToRev"
)

// FeatureVector maps feature names to values.
type FeatureVector map[string]float64

// NormalizedFeatures holds the engineered features rescaled into [0,1].
type NormalizedFeatures struct {
	Revenue       float64
	Years         float64
	CreditScore   float64
	ProfitMargin  float64
	LoanToRevenue float64 // inverted: a lower ratio scores higher
}

// Vector returns the features keyed by their model names.
func (n NormalizedFeatures) Vector() FeatureVector {
	return FeatureVector{
		FeatureNormRevenue:      n.Revenue,
		FeatureNormYears:        n.Years,
		FeatureNormCreditScore:  n.CreditScore,
		FeatureNormProfitMargin: n.ProfitMargin,
		FeatureNormLoanToRev:    n.LoanToRevenue,
	}
}

// Range is a closed min-max domain used for scaling.
type Range struct {
	Min float64
	Max float64
}

// Scale maps v linearly onto [0,1] and clamps values outside the domain.
// NaN scales to 0.
func (r Range) Scale(v float64) float64 {
	s := (v - r.Min) / (r.Max - r.Min)
	if math.IsNaN(s) {
		return 0
	}
	return max(0, min(1, s))
}

// Normalizer applies fixed min-max bounds typical of small businesses.
//
//	revenue        0 .. 5,000,000
//	years          0 .. 20
//	credit score 300 .. 850
//	profit margin -0.5 .. 0.5
//	loan/revenue   0 .. 2 (inverted)
type Normalizer struct {
	revenue       Range
	years         Range
	creditScore   Range
	profitMargin  Range
	loanToRevenue Range
}

// NewNormalizer returns a normalizer with the standard bounds.
func NewNormalizer() Normalizer {
	return Normalizer{
		revenue:       Range{Min: 0, Max: 5_000_000},
		years:         Range{Min: 0, Max: 20},
		creditScore:   Range{Min: 300, Max: 850},
		profitMargin:  Range{Min: -0.5, Max: 0.5},
		loanToRevenue: Range{Min: 0, Max: 2},
	}
}

// Normalize rescales f. Every output lies in [0,1] however extreme the input.
func (n Normalizer) Normalize(f EngineeredFeatures) NormalizedFeatures {
	return NormalizedFeatures{
		Revenue:       n.revenue.Scale(f.AnnualRevenue),
		Years:         n.years.Scale(f.YearsInBusiness),
		CreditScore:   n.creditScore.Scale(f.CreditScore),
		ProfitMargin:  n.profitMargin.Scale(f.ProfitMargin),
		LoanToRevenue: 1 - n.loanToRevenue.Scale(f.LoanToRevenueRatio),
	}
}
