package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/gagankishoreint-glitch/credai/internal/application/dto"
	"github.com/gagankishoreint-glitch/credai/internal/domain/port"
	"github.com/gagankishoreint-glitch/credai/internal/domain/valueobject"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// ListApplicationsUseCase handles listing credit applications with pagination.
type ListApplicationsUseCase struct {
	repo   port.ApplicationRepository
	logger *slog.Logger
}

// NewListApplicationsUseCase creates a new ListApplicationsUseCase.
func NewListApplicationsUseCase(repo port.ApplicationRepository, logger *slog.Logger) *ListApplicationsUseCase {
	return &ListApplicationsUseCase{
		repo:   repo,
		logger: logger,
	}
}

// Execute lists applications newest first. Applicants are always scoped to
// their own applications, whatever UserID they ask for.
func (uc *ListApplicationsUseCase) Execute(ctx context.Context, req dto.ListApplicationsRequest) (dto.ListApplicationsResponse, error) {
	uc.logger.Info("listing applications",
		"requester_id", req.Requester.UserID,
		"user_id", req.UserID,
		"status", req.Status,
		"limit", req.Limit,
		"offset", req.Offset,
	)

	filter := port.ApplicationFilter{
		UserID: req.UserID,
		Limit:  req.Limit,
		Offset: max(req.Offset, 0),
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultLimit
	}
	if filter.Limit > maxLimit {
		filter.Limit = maxLimit
	}

	if !isReviewer(req.Requester) {
		if req.Requester.UserID == uuid.Nil {
			return dto.ListApplicationsResponse{}, ErrForbidden
		}
		filter.UserID = req.Requester.UserID
	}

	if req.Status != "" {
		status, err := valueobject.NewApplicationStatus(req.Status)
		if err != nil {
			return dto.ListApplicationsResponse{}, fmt.Errorf("invalid status filter: %w", err)
		}
		filter.Status = status
	}

	apps, total, err := uc.repo.List(ctx, filter)
	if err != nil {
		return dto.ListApplicationsResponse{}, fmt.Errorf("failed to list applications: %w", err)
	}

	responses := make([]dto.ApplicationResponse, 0, len(apps))
	for _, app := range apps {
		responses = append(responses, toApplicationResponse(app))
	}

	return dto.ListApplicationsResponse{
		Applications: responses,
		TotalCount:   total,
	}, nil
}
