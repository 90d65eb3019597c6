package usecase

import (
	"github.com/gagankishoreint-glitch/credai/internal/application/dto"
	"github.com/gagankishoreint-glitch/credai/internal/domain/service"
)

// DescribeModelUseCase reports the coefficients of the scoring model and
// the policy thresholds.
type DescribeModelUseCase struct {
	model service.LogisticModel
}

// NewDescribeModelUseCase creates a new DescribeModelUseCase.
func NewDescribeModelUseCase(model service.LogisticModel) *DescribeModelUseCase {
	return &DescribeModelUseCase{model: model}
}

// Execute returns the model description.
func (uc *DescribeModelUseCase) Execute() dto.ModelInfoResponse {
	weights := uc.model.Weights()
	out := make([]dto.WeightResponse, 0, len(weights))
	for _, w := range weights {
		out = append(out, dto.WeightResponse{Feature: w.Feature, Weight: w.Value})
	}
	return dto.ModelInfoResponse{
		Algorithm:       "logistic_regression",
		Bias:            uc.model.Bias(),
		Weights:         out,
		ApproveAbove:    service.ApproveAbove,
		RejectBelow:     service.RejectBelow,
		BaseCreditScore: service.PolicyBaseScore,
	}
}
