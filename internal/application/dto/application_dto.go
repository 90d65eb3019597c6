package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gagankishoreint-glitch/credai/internal/domain/valueobject"
)

// Requester identifies the authenticated caller of a use case.
type Requester struct {
	UserID uuid.UUID `json:"-"`
	Roles  []string  `json:"-"`
}

// SubmitApplicationRequest is the DTO for submitting a new credit application.
type SubmitApplicationRequest struct {
	UserID       uuid.UUID                  `json:"-"`
	BusinessName string                     `json:"businessName"`
	Amount       decimal.Decimal            `json:"amount"`
	Data         valueobject.RawApplication `json:"data"`
}

// InsightResponse is one policy insight.
type InsightResponse struct {
	Type string `json:"type" yaml:"type"`
	Text string `json:"text" yaml:"text"`
}

// ApplicationResponse is the DTO representing a credit application in responses.
type ApplicationResponse struct {
	ID              uuid.UUID                  `json:"id"`
	UserID          uuid.UUID                  `json:"userId"`
	BusinessName    string                     `json:"businessName"`
	Amount          decimal.Decimal            `json:"amount"`
	Data            valueobject.RawApplication `json:"data"`
	AIScore         int                        `json:"aiScore"`
	Insights        []InsightResponse          `json:"insights"`
	Status          string                     `json:"status"`
	Decision        string                     `json:"decision"`
	ModelScore      int                        `json:"modelScore"`
	Probability     float64                    `json:"probability"`
	Confidence      float64                    `json:"confidence"`
	RiskGrade       string                     `json:"riskGrade"`
	Recommendation  string                     `json:"recommendation"`
	ScoreDivergence int                        `json:"scoreDivergence"`
	DecidedBy       *uuid.UUID                 `json:"decidedBy,omitempty"`
	DecidedAt       *time.Time                 `json:"decidedAt,omitempty"`
	Version         int                        `json:"version"`
	CreatedAt       time.Time                  `json:"createdAt"`
	UpdatedAt       time.Time                  `json:"updatedAt"`
}

// GetApplicationRequest is the DTO for retrieving one application.
type GetApplicationRequest struct {
	ApplicationID uuid.UUID `json:"id"`
	Requester     Requester `json:"-"`
}

// ListApplicationsRequest is the DTO for listing applications with pagination.
// Applicants always see only their own applications; underwriters may
// filter by UserID or list everything.
type ListApplicationsRequest struct {
	Requester Requester `json:"-"`
	UserID    uuid.UUID `json:"userId"`
	Status    string    `json:"status"`
	Limit     int       `json:"limit"`
	Offset    int       `json:"offset"`
}

// ListApplicationsResponse is the DTO returned when listing applications.
type ListApplicationsResponse struct {
	Applications []ApplicationResponse `json:"applications"`
	TotalCount   int                   `json:"totalCount"`
}

// DecideApplicationRequest is the DTO for an underwriter decision.
type DecideApplicationRequest struct {
	ApplicationID uuid.UUID `json:"id"`
	Requester     Requester `json:"-"`
	Decision      string    `json:"decision"`
	Reason        string    `json:"reason"`
}

// ScoreRequest is the DTO for a stateless scoring preview.
type ScoreRequest struct {
	Data    valueobject.RawApplication `json:"data"`
	Explain bool                       `json:"explain"`
}

// FeaturesResponse lists the cleaned, engineered and normalized inputs.
type FeaturesResponse struct {
	AnnualRevenue      float64 `json:"annualRevenue" yaml:"annualRevenue"`
	OperatingExpenses  float64 `json:"operatingExpenses" yaml:"operatingExpenses"`
	LoanAmount         float64 `json:"loanAmount" yaml:"loanAmount"`
	RequestedAmount    float64 `json:"requestedAmount" yaml:"requestedAmount"`
	YearsInBusiness    float64 `json:"yearsInBusiness" yaml:"yearsInBusiness"`
	CreditScore        float64 `json:"creditScore" yaml:"creditScore"`
	NetIncome          float64 `json:"netIncome" yaml:"netIncome"`
	DebtToIncomeRatio  float64 `json:"debtToIncomeRatio" yaml:"debtToIncomeRatio"`
	LoanToRevenueRatio float64 `json:"loanToRevenueRatio" yaml:"loanToRevenueRatio"`
	ProfitMargin       float64 `json:"profitMargin" yaml:"profitMargin"`
	NormRevenue        float64 `json:"normRevenue" yaml:"normRevenue"`
	NormYears          float64 `json:"normYears" yaml:"normYears"`
	NormCreditScore    float64 `json:"normCreditScore" yaml:"normCreditScore"`
	NormProfitMargin   float64 `json:"normProfitMargin" yaml:"normProfitMargin"`
	NormLoanToRev      float64 `json:"normLoanToRev" yaml:"normLoanToRev"`
}

// ContributionResponse is one term of the model's linear combination.
type ContributionResponse struct {
	Feature      string  `json:"feature" yaml:"feature"`
	Value        float64 `json:"value" yaml:"value"`
	Weight       float64 `json:"weight" yaml:"weight"`
	Contribution float64 `json:"contribution" yaml:"contribution"`
	Impact       string  `json:"impact" yaml:"impact"`
}

// AssessmentResponse is the full engine output for one raw application.
type AssessmentResponse struct {
	Probability     float64                `json:"probability" yaml:"probability"`
	Confidence      float64                `json:"confidence" yaml:"confidence"`
	Score           int                    `json:"score" yaml:"score"`
	CreditScore     int                    `json:"creditScore" yaml:"creditScore"`
	RiskGrade       string                 `json:"riskGrade" yaml:"riskGrade"`
	Recommendation  string                 `json:"recommendation" yaml:"recommendation"`
	PolicyScore     int                    `json:"policyScore" yaml:"policyScore"`
	Insights        []InsightResponse      `json:"insights" yaml:"insights"`
	Status          string                 `json:"status" yaml:"status"`
	Decision        string                 `json:"decision" yaml:"decision"`
	ScoreDivergence int                    `json:"scoreDivergence" yaml:"scoreDivergence"`
	Features        *FeaturesResponse      `json:"features,omitempty" yaml:"features,omitempty"`
	Contributions   []ContributionResponse `json:"contributions,omitempty" yaml:"contributions,omitempty"`
	Cached          bool                   `json:"cached,omitempty" yaml:"-"`
}

// ScoreBatchRequest is the DTO for scoring many raw applications.
type ScoreBatchRequest struct {
	Applications []valueobject.RawApplication `json:"applications"`
	Explain      bool                         `json:"explain"`
}

// ScoreBatchResponse holds one assessment per request item, in input order.
type ScoreBatchResponse struct {
	Results []AssessmentResponse `json:"results" yaml:"results"`
}

// WeightResponse is one model coefficient.
type WeightResponse struct {
	Feature string  `json:"feature" yaml:"feature"`
	Weight  float64 `json:"weight" yaml:"weight"`
}

// ModelInfoResponse describes the scoring model and the policy thresholds.
type ModelInfoResponse struct {
	Algorithm       string           `json:"algorithm" yaml:"algorithm"`
	Bias            float64          `json:"bias" yaml:"bias"`
	Weights         []WeightResponse `json:"weights" yaml:"weights"`
	ApproveAbove    int              `json:"approveAbove" yaml:"approveAbove"`
	RejectBelow     int              `json:"rejectBelow" yaml:"rejectBelow"`
	BaseCreditScore int              `json:"baseCreditScore" yaml:"baseCreditScore"`
}

// ScoringRequestMessage is a scoring request received over the message bus.
type ScoringRequestMessage struct {
	RequestID string                     `json:"requestId"`
	OwnerID   string                     `json:"ownerId"`
	Data      valueobject.RawApplication `json:"data"`
	Explain   bool                       `json:"explain"`
}
