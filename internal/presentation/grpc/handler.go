package grpc

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/gagankishoreint-glitch/credai/internal/application/dto"
	"github.com/gagankishoreint-glitch/credai/internal/application/usecase"
	"github.com/gagankishoreint-glitch/credai/internal/domain/model"
	"github.com/gagankishoreint-glitch/credai/internal/domain/valueobject"
	"github.com/gagankishoreint-glitch/credai/pkg/auth"
)

// ScoringHandler implements CreditScoringServiceServer on top of the use cases.
type ScoringHandler struct {
	UnimplementedCreditScoringServiceServer

	submit   *usecase.SubmitApplicationUseCase
	get      *usecase.GetApplicationUseCase
	list     *usecase.ListApplicationsUseCase
	decide   *usecase.DecideApplicationUseCase
	score    *usecase.ScoreApplicationUseCase
	batch    *usecase.ScoreBatchUseCase
	describe *usecase.DescribeModelUseCase
}

// NewScoringHandler creates a new gRPC scoring handler.
func NewScoringHandler(
	submit *usecase.SubmitApplicationUseCase,
	get *usecase.GetApplicationUseCase,
	list *usecase.ListApplicationsUseCase,
	decide *usecase.DecideApplicationUseCase,
	score *usecase.ScoreApplicationUseCase,
	batch *usecase.ScoreBatchUseCase,
	describe *usecase.DescribeModelUseCase,
) *ScoringHandler {
	return &ScoringHandler{
		submit:   submit,
		get:      get,
		list:     list,
		decide:   decide,
		score:    score,
		batch:    batch,
		describe: describe,
	}
}

// SubmitApplicationRequest represents the gRPC request for submitting an application.
type SubmitApplicationRequest struct {
	BusinessName string                     `json:"businessName"`
	Amount       string                     `json:"amount"`
	Data         valueobject.RawApplication `json:"data"`
}

// GetApplicationRequest represents the gRPC request for getting an application.
type GetApplicationRequest struct {
	ApplicationID string `json:"applicationId"`
}

// ListApplicationsRequest represents the gRPC request for listing applications.
type ListApplicationsRequest struct {
	UserID string `json:"userId"`
	Status string `json:"status"`
	Limit  int32  `json:"limit"`
	Offset int32  `json:"offset"`
}

// DecideApplicationRequest represents the gRPC request for an underwriter decision.
type DecideApplicationRequest struct {
	ApplicationID string `json:"applicationId"`
	Decision      string `json:"decision"`
	Reason        string `json:"reason"`
}

// ScoreApplicationRequest represents the gRPC request for a scoring preview.
type ScoreApplicationRequest = dto.ScoreRequest

// ScoreBatchRequest represents the gRPC request for batch scoring.
type ScoreBatchRequest = dto.ScoreBatchRequest

// DescribeModelRequest is empty.
type DescribeModelRequest struct{}

// Response messages share the application DTOs.
type (
	ApplicationResponse      = dto.ApplicationResponse
	ListApplicationsResponse = dto.ListApplicationsResponse
	AssessmentResponse       = dto.AssessmentResponse
	ScoreBatchResponse       = dto.ScoreBatchResponse
	ModelInfoResponse        = dto.ModelInfoResponse
)

// SubmitApplication handles the gRPC SubmitApplication request.
func (h *ScoringHandler) SubmitApplication(ctx context.Context, req *SubmitApplicationRequest) (*ApplicationResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	requester, err := requesterFromContext(ctx)
	if err != nil {
		return nil, err
	}

	amount := decimal.Zero
	if req.Amount != "" {
		amount, err = decimal.NewFromString(req.Amount)
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, fmt.Sprintf("invalid amount: %v", err))
		}
	}

	result, err := h.submit.Execute(ctx, dto.SubmitApplicationRequest{
		UserID:       requester.UserID,
		BusinessName: req.BusinessName,
		Amount:       amount,
		Data:         req.Data,
	})
	if err != nil {
		return nil, toStatusError(err)
	}
	return &result, nil
}

// GetApplication handles the gRPC GetApplication request.
func (h *ScoringHandler) GetApplication(ctx context.Context, req *GetApplicationRequest) (*ApplicationResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	requester, err := requesterFromContext(ctx)
	if err != nil {
		return nil, err
	}
	id, err := uuid.Parse(req.ApplicationID)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, fmt.Sprintf("invalid applicationId: %v", err))
	}

	result, err := h.get.Execute(ctx, dto.GetApplicationRequest{ApplicationID: id, Requester: requester})
	if err != nil {
		return nil, toStatusError(err)
	}
	return &result, nil
}

// ListApplications handles the gRPC ListApplications request.
func (h *ScoringHandler) ListApplications(ctx context.Context, req *ListApplicationsRequest) (*ListApplicationsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	requester, err := requesterFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var userID uuid.UUID
	if req.UserID != "" {
		userID, err = uuid.Parse(req.UserID)
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, fmt.Sprintf("invalid userId: %v", err))
		}
	}

	result, err := h.list.Execute(ctx, dto.ListApplicationsRequest{
		Requester: requester,
		UserID:    userID,
		Status:    req.Status,
		Limit:     int(req.Limit),
		Offset:    int(req.Offset),
	})
	if err != nil {
		return nil, toStatusError(err)
	}
	return &result, nil
}

// DecideApplication handles the gRPC DecideApplication request.
func (h *ScoringHandler) DecideApplication(ctx context.Context, req *DecideApplicationRequest) (*ApplicationResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	requester, err := requesterFromContext(ctx)
	if err != nil {
		return nil, err
	}
	id, err := uuid.Parse(req.ApplicationID)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, fmt.Sprintf("invalid applicationId: %v", err))
	}

	result, err := h.decide.Execute(ctx, dto.DecideApplicationRequest{
		ApplicationID: id,
		Requester:     requester,
		Decision:      req.Decision,
		Reason:        req.Reason,
	})
	if err != nil {
		return nil, toStatusError(err)
	}
	return &result, nil
}

// ScoreApplication handles the gRPC ScoreApplication request.
func (h *ScoringHandler) ScoreApplication(ctx context.Context, req *ScoreApplicationRequest) (*AssessmentResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	result, err := h.score.Execute(ctx, *req)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &result, nil
}

// ScoreBatch handles the gRPC ScoreBatch request.
func (h *ScoringHandler) ScoreBatch(ctx context.Context, req *ScoreBatchRequest) (*ScoreBatchResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	result, err := h.batch.Execute(ctx, *req)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &result, nil
}

// DescribeModel handles the gRPC DescribeModel request.
func (h *ScoringHandler) DescribeModel(_ context.Context, _ *DescribeModelRequest) (*ModelInfoResponse, error) {
	result := h.describe.Execute()
	return &result, nil
}

func requesterFromContext(ctx context.Context) (dto.Requester, error) {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return dto.Requester{}, status.Error(codes.Unauthenticated, "missing credentials")
	}
	return dto.Requester{UserID: claims.UserID, Roles: claims.Roles}, nil
}

// toStatusError maps use-case errors onto gRPC status codes.
func toStatusError(err error) error {
	var code codes.Code
	switch {
	case errors.Is(err, valueobject.ErrApplicationNotFound):
		code = codes.NotFound
	case errors.Is(err, usecase.ErrForbidden):
		code = codes.PermissionDenied
	case errors.Is(err, valueobject.ErrVersionConflict):
		code = codes.Aborted
	case errors.Is(err, model.ErrAlreadyDecided),
		errors.Is(err, model.ErrNotScored):
		code = codes.FailedPrecondition
	case errors.Is(err, model.ErrInvalidApplication),
		errors.Is(err, model.ErrDecisionNotFinal),
		errors.Is(err, model.ErrMissingUnderwriter),
		errors.Is(err, valueobject.ErrInvalidDecision),
		errors.Is(err, valueobject.ErrInvalidStatus),
		errors.Is(err, usecase.ErrBatchTooLarge):
		code = codes.InvalidArgument
	case errors.Is(err, context.Canceled):
		code = codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		code = codes.DeadlineExceeded
	default:
		code = codes.Internal
	}
	return status.Error(code, err.Error())
}
