package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gagankishoreint-glitch/credai/internal/application/dto"
	"github.com/gagankishoreint-glitch/credai/internal/domain/model"
	"github.com/gagankishoreint-glitch/credai/internal/domain/port"
	"github.com/gagankishoreint-glitch/credai/internal/domain/service"
)

// SubmitApplicationUseCase handles the submission and automatic scoring of
// credit applications.
type SubmitApplicationUseCase struct {
	repo      port.ApplicationRepository
	publisher port.EventPublisher
	engine    *service.CreditEngine
	recorder  port.AssessmentRecorder
	logger    *slog.Logger
}

// NewSubmitApplicationUseCase creates a new SubmitApplicationUseCase.
// recorder may be nil.
func NewSubmitApplicationUseCase(
	repo port.ApplicationRepository,
	publisher port.EventPublisher,
	engine *service.CreditEngine,
	recorder port.AssessmentRecorder,
	logger *slog.Logger,
) *SubmitApplicationUseCase {
	return &SubmitApplicationUseCase{
		repo:      repo,
		publisher: publisher,
		engine:    engine,
		recorder:  recorder,
		logger:    logger,
	}
}

// Execute creates the application, runs the credit engine on its data,
// persists the scored application and publishes its events.
func (uc *SubmitApplicationUseCase) Execute(ctx context.Context, req dto.SubmitApplicationRequest) (dto.ApplicationResponse, error) {
	uc.logger.Info("submitting credit application",
		"user_id", req.UserID,
		"business_name", req.BusinessName,
		"amount", req.Amount.String(),
	)

	app, err := model.NewCreditApplication(req.UserID, req.BusinessName, req.Amount, req.Data, time.Now().UTC())
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("invalid application: %w", err)
	}

	assessment := uc.engine.Assess(app.Data())

	app, err = app.ApplyAssessment(assessment, time.Now().UTC())
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("failed to apply assessment: %w", err)
	}

	if err := uc.repo.Save(ctx, app); err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("failed to save application: %w", err)
	}

	publishEvents(ctx, uc.publisher, uc.logger, app)

	if uc.recorder != nil {
		uc.recorder.RecordAssessment(ctx, SourceSubmit, app.AIScore(), app.ModelScore(), app.Decision())
	}

	uc.logger.Info("credit application scored",
		"application_id", app.ID(),
		"ai_score", app.AIScore(),
		"model_score", app.ModelScore(),
		"decision", app.Decision().String(),
	)

	return toApplicationResponse(app), nil
}

// publishEvents sends the aggregate's pending events. Failures are logged
// and do not fail the operation.
func publishEvents(ctx context.Context, publisher port.EventPublisher, logger *slog.Logger, app model.CreditApplication) {
	events := app.DomainEvents()
	if len(events) == 0 {
		return
	}
	if err := publisher.Publish(ctx, applicationEventsTopic, events...); err != nil {
		logger.Error("failed to publish domain events",
			"error", err,
			"application_id", app.ID(),
			"event_count", len(events),
		)
	}
}
