package service

import (
	"github.com/gagankishoreint-glitch/credai/internal/domain/valueobject"
)

// Insight texts emitted by the decision policy.
const (
	InsightStrongDebtCoverage  = "Strong Debt Coverage Ratio"
	InsightNegativeCashFlow    = "Negative Cash Flow Detected"
	InsightEstablishedBusiness = "Established Business History (>5 years)"
	InsightEarlyStage          = "Early Stage Venture Risk"
	InsightHighLoanToRevenue   = "High Loan-to-Revenue Ratio"
)

// Policy score bounds and decision thresholds.
const (
	PolicyBaseScore = 650
	PolicyMinScore  = 300
	PolicyMaxScore  = 850

	ApproveAbove = 750
	RejectBelow  = 500
)

// DecisionResult is the outcome of the rule-based policy.
type DecisionResult struct {
	Score    int
	Insights []valueobject.Insight
	Status   valueobject.ApplicationStatus
	Decision valueobject.Decision
}

// DecisionPolicy derives a rule score, insights and a coarse decision
// directly from cleaned application values. It never consults the
// logistic model.
type DecisionPolicy struct{}

// NewDecisionPolicy returns a new policy.
func NewDecisionPolicy() DecisionPolicy {
	return DecisionPolicy{}
}

// Evaluate scores c starting from 650. The three rule groups are
// independent and each applies at most one branch:
//
//	profitability  net income > 0.5 x requested  +50 | net income < 0        -50
//	longevity      years >= 5                    +40 | years < 2             -30
//	leverage       requested < 0.3 x revenue     +30 | requested > revenue   -60
//
// The score is clamped to 300..850. Above 750 the application is approved,
// below 500 rejected, otherwise it stays under analysis.
func (DecisionPolicy) Evaluate(c CleanedFeatures) DecisionResult {
	score := PolicyBaseScore
	insights := make([]valueobject.Insight, 0, 3)

	requested := c.RequestedAmount
	netIncome := c.AnnualRevenue - c.OperatingExpenses*12

	if netIncome > requested*0.5 {
		score += 50
		insights = append(insights, valueobject.PositiveInsight(InsightStrongDebtCoverage))
	} else if netIncome < 0 {
		score -= 50
		insights = append(insights, valueobject.NegativeInsight(InsightNegativeCashFlow))
	}

	if c.YearsInBusiness >= 5 {
		score += 40
		insights = append(insights, valueobject.PositiveInsight(InsightEstablishedBusiness))
	} else if c.YearsInBusiness < 2 {
		score -= 30
		insights = append(insights, valueobject.NegativeInsight(InsightEarlyStage))
	}

	if requested < c.AnnualRevenue*0.3 {
		score += 30
	} else if requested > c.AnnualRevenue {
		score -= 60
		insights = append(insights, valueobject.NegativeInsight(InsightHighLoanToRevenue))
	}

	score = min(PolicyMaxScore, max(PolicyMinScore, score))

	status, decision := ClassifyScore(score)
	return DecisionResult{
		Score:    score,
		Insights: insights,
		Status:   status,
		Decision: decision,
	}
}

// ClassifyScore maps a policy score to a status and decision. Both
// thresholds are strict, so 750 and 500 remain pending.
func ClassifyScore(score int) (valueobject.ApplicationStatus, valueobject.Decision) {
	switch {
	case score > ApproveAbove:
		return valueobject.ApplicationStatusDecision, valueobject.DecisionApproved
	case score < RejectBelow:
		return valueobject.ApplicationStatusDecision, valueobject.DecisionRejected
	default:
		return valueobject.ApplicationStatusAnalyzing, valueobject.DecisionPending
	}
}
