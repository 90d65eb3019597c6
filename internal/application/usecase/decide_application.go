package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gagankishoreint-glitch/credai/internal/application/dto"
	"github.com/gagankishoreint-glitch/credai/internal/domain/port"
	"github.com/gagankishoreint-glitch/credai/internal/domain/valueobject"
)

// DecideApplicationUseCase records an underwriter's manual decision on an
// application the policy left pending.
type DecideApplicationUseCase struct {
	repo      port.ApplicationRepository
	publisher port.EventPublisher
	logger    *slog.Logger
}

// NewDecideApplicationUseCase creates a new DecideApplicationUseCase.
func NewDecideApplicationUseCase(
	repo port.ApplicationRepository,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *DecideApplicationUseCase {
	return &DecideApplicationUseCase{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// Execute approves or rejects an application. Only underwriters and admins
// may decide.
func (uc *DecideApplicationUseCase) Execute(ctx context.Context, req dto.DecideApplicationRequest) (dto.ApplicationResponse, error) {
	uc.logger.Info("deciding application",
		"application_id", req.ApplicationID,
		"underwriter_id", req.Requester.UserID,
		"decision", req.Decision,
	)

	if !isReviewer(req.Requester) {
		return dto.ApplicationResponse{}, ErrForbidden
	}

	decision, err := valueobject.NewDecision(req.Decision)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("invalid decision: %w", err)
	}

	app, err := uc.repo.FindByID(ctx, req.ApplicationID)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("failed to find application %s: %w", req.ApplicationID, err)
	}

	app, err = app.Decide(decision, req.Requester.UserID, req.Reason, time.Now().UTC())
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("failed to decide application: %w", err)
	}

	if err := uc.repo.Save(ctx, app); err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("failed to save application: %w", err)
	}

	publishEvents(ctx, uc.publisher, uc.logger, app)

	uc.logger.Info("application decided",
		"application_id", app.ID(),
		"decision", app.Decision().String(),
	)

	return toApplicationResponse(app), nil
}
