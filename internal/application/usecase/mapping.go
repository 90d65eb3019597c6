package usecase

import (
	"errors"
	"slices"

	"github.com/google/uuid"

	"github.com/gagankishoreint-glitch/credai/internal/application/dto"
	"github.com/gagankishoreint-glitch/credai/internal/domain/model"
	"github.com/gagankishoreint-glitch/credai/internal/domain/service"
	"github.com/gagankishoreint-glitch/credai/internal/domain/valueobject"
	"github.com/gagankishoreint-glitch/credai/pkg/auth"
)

const applicationEventsTopic = "credai.application.events"

// Assessment sources reported to the AssessmentRecorder.
const (
	SourceSubmit  = "submit"
	SourcePreview = "preview"
	SourceBatch   = "batch"
	SourceStream  = "stream"
)

var (
	// ErrForbidden is returned when the requester lacks the role for an operation.
	ErrForbidden = errors.New("operation not permitted for requester")
	// ErrBatchTooLarge is returned when a batch exceeds MaxBatchSize.
	ErrBatchTooLarge = errors.New("batch too large")
)

func isReviewer(r dto.Requester) bool {
	return slices.Contains(r.Roles, auth.RoleUnderwriter) || slices.Contains(r.Roles, auth.RoleAdmin)
}

func toInsightResponses(in []valueobject.Insight) []dto.InsightResponse {
	out := make([]dto.InsightResponse, 0, len(in))
	for _, i := range in {
		out = append(out, dto.InsightResponse{Type: i.Kind.String(), Text: i.Text})
	}
	return out
}

func toApplicationResponse(app model.CreditApplication) dto.ApplicationResponse {
	resp := dto.ApplicationResponse{
		ID:              app.ID(),
		UserID:          app.UserID(),
		BusinessName:    app.BusinessName(),
		Amount:          app.RequestedAmount(),
		Data:            app.Data(),
		AIScore:         app.AIScore(),
		Insights:        toInsightResponses(app.Insights()),
		Status:          app.Status().String(),
		Decision:        app.Decision().String(),
		ModelScore:      app.ModelScore(),
		Probability:     app.Probability(),
		Confidence:      app.Confidence(),
		RiskGrade:       app.RiskGrade().String(),
		Recommendation:  app.Recommendation().String(),
		ScoreDivergence: app.ScoreDivergence(),
		Version:         app.Version(),
		CreatedAt:       app.CreatedAt(),
		UpdatedAt:       app.UpdatedAt(),
	}
	if by := app.DecidedBy(); by != uuid.Nil {
		resp.DecidedBy = &by
	}
	if at := app.DecidedAt(); !at.IsZero() {
		resp.DecidedAt = &at
	}
	return resp
}

// ToAssessmentResponse flattens an engine assessment. Features and
// contributions are included only when explain is set.
func ToAssessmentResponse(a service.Assessment, explain bool) dto.AssessmentResponse {
	resp := dto.AssessmentResponse{
		Probability:     a.Scoring.Probability,
		Confidence:      a.Scoring.Confidence,
		Score:           a.Scoring.Score,
		CreditScore:     a.Scoring.CreditScore,
		RiskGrade:       a.RiskGrade.String(),
		Recommendation:  a.Recommendation.String(),
		PolicyScore:     a.Policy.Score,
		Insights:        toInsightResponses(a.Policy.Insights),
		Status:          a.Policy.Status.String(),
		Decision:        a.Policy.Decision.String(),
		ScoreDivergence: a.ScoreDivergence(),
	}
	if !explain {
		return resp
	}

	resp.Features = &dto.FeaturesResponse{
		AnnualRevenue:      a.Cleaned.AnnualRevenue,
		OperatingExpenses:  a.Cleaned.OperatingExpenses,
		LoanAmount:         a.Cleaned.LoanAmount,
		RequestedAmount:    a.Cleaned.RequestedAmount,
		YearsInBusiness:    a.Cleaned.YearsInBusiness,
		CreditScore:        a.Cleaned.CreditScore,
		NetIncome:          a.Engineered.NetIncome,
		DebtToIncomeRatio:  a.Engineered.DebtToIncomeRatio,
		LoanToRevenueRatio: a.Engineered.LoanToRevenueRatio,
		ProfitMargin:       a.Engineered.ProfitMargin,
		NormRevenue:        a.Normalized.Revenue,
		NormYears:          a.Normalized.Years,
		NormCreditScore:    a.Normalized.CreditScore,
		NormProfitMargin:   a.Normalized.ProfitMargin,
		NormLoanToRev:      a.Normalized.LoanToRevenue,
	}
	resp.Contributions = make([]dto.ContributionResponse, 0, len(a.Contributions))
	for _, c := range a.Contributions {
		resp.Contributions = append(resp.Contributions, dto.ContributionResponse{
			Feature:      c.Feature,
			Value:        c.Value,
			Weight:       c.Weight,
			Contribution: c.Contribution,
			Impact:       c.Impact,
		})
	}
	return resp
}
