package service

import (
	"github.com/gagankishoreint-glitch/credai/internal/domain/valueobject"
)

// DefaultCreditScore is assumed when an application carries no usable
// credit score.
const DefaultCreditScore = 650

// CleanedFeatures is a RawApplication with every field coerced to a number
// and defaults applied. YearsInBusiness and CreditScore hold whole numbers.
// LoanAmount feeds the model; RequestedAmount is what the policy weighs.
// They differ only when a submission's top-level amount disagrees with
// its loanAmount.
type CleanedFeatures struct {
	AnnualRevenue     float64
	OperatingExpenses float64 // monthly
	LoanAmount        float64
	RequestedAmount   float64
	YearsInBusiness   float64
	CreditScore       float64
}

// EngineeredFeatures adds the derived ratios to CleanedFeatures.
type EngineeredFeatures struct {
	CleanedFeatures
	NetIncome          float64
	DebtToIncomeRatio  float64
	LoanToRevenueRatio float64
	ProfitMargin       float64
}

// Preprocessor turns raw applications into engineered features. It has no
// state and never fails.
type Preprocessor struct{}

// NewPreprocessor returns a new preprocessor.
func NewPreprocessor() Preprocessor {
	return Preprocessor{}
}

// Clean coerces every field of raw. Missing or unparseable values become 0,
// except the credit score which becomes DefaultCreditScore.
func (Preprocessor) Clean(raw valueobject.RawApplication) CleanedFeatures {
	return CleanedFeatures{
		AnnualRevenue:     raw.AnnualRevenue.Float(0),
		OperatingExpenses: raw.OperatingExpenses.Float(0),
		LoanAmount:        raw.ModelLoanAmount().Float(0),
		RequestedAmount:   raw.RequestedAmount().Float(0),
		YearsInBusiness:   raw.YearsInBusiness.Integer(0),
		CreditScore:       raw.CreditScore.Integer(DefaultCreditScore),
	}
}

// EngineerFeatures derives net income and the three ratios. A zero net
// income or zero revenue denominator is replaced by 1.
func (Preprocessor) EngineerFeatures(c CleanedFeatures) EngineeredFeatures {
	netIncome := c.AnnualRevenue - c.OperatingExpenses*12

	revenue := nonZero(c.AnnualRevenue)
	income := nonZero(netIncome)

	return EngineeredFeatures{
		CleanedFeatures:    c,
		NetIncome:          netIncome,
		DebtToIncomeRatio:  c.LoanAmount / income,
		LoanToRevenueRatio: c.LoanAmount / revenue,
		ProfitMargin:       netIncome / revenue,
	}
}

func nonZero(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}
