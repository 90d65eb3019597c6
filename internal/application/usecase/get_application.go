package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gagankishoreint-glitch/credai/internal/application/dto"
	"github.com/gagankishoreint-glitch/credai/internal/domain/port"
	"github.com/gagankishoreint-glitch/credai/internal/domain/valueobject"
)

// GetApplicationUseCase handles retrieving a credit application by ID.
type GetApplicationUseCase struct {
	repo   port.ApplicationRepository
	logger *slog.Logger
}

// NewGetApplicationUseCase creates a new GetApplicationUseCase.
func NewGetApplicationUseCase(repo port.ApplicationRepository, logger *slog.Logger) *GetApplicationUseCase {
	return &GetApplicationUseCase{
		repo:   repo,
		logger: logger,
	}
}

// Execute retrieves a credit application. Applicants only see their own
// applications; anything else is reported as not found.
func (uc *GetApplicationUseCase) Execute(ctx context.Context, req dto.GetApplicationRequest) (dto.ApplicationResponse, error) {
	uc.logger.Info("getting application", "application_id", req.ApplicationID)

	app, err := uc.repo.FindByID(ctx, req.ApplicationID)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("failed to find application %s: %w", req.ApplicationID, err)
	}

	if !app.OwnedBy(req.Requester.UserID) && !isReviewer(req.Requester) {
		return dto.ApplicationResponse{}, fmt.Errorf("failed to find application %s: %w", req.ApplicationID, valueobject.ErrApplicationNotFound)
	}

	return toApplicationResponse(app), nil
}
