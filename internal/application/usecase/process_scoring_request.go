package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gagankishoreint-glitch/credai/internal/application/dto"
	"github.com/gagankishoreint-glitch/credai/internal/domain/event"
	"github.com/gagankishoreint-glitch/credai/internal/domain/port"
	"github.com/gagankishoreint-glitch/credai/internal/domain/service"
)

const assessmentResultsTopic = "credai.assessment.results"

// ProcessScoringRequestUseCase answers scoring requests that arrive over the
// message bus with an AssessmentCompleted event.
type ProcessScoringRequestUseCase struct {
	engine    *service.CreditEngine
	publisher port.EventPublisher
	recorder  port.AssessmentRecorder
	logger    *slog.Logger
}

// NewProcessScoringRequestUseCase creates a new ProcessScoringRequestUseCase.
// recorder may be nil.
func NewProcessScoringRequestUseCase(
	engine *service.CreditEngine,
	publisher port.EventPublisher,
	recorder port.AssessmentRecorder,
	logger *slog.Logger,
) *ProcessScoringRequestUseCase {
	return &ProcessScoringRequestUseCase{
		engine:    engine,
		publisher: publisher,
		recorder:  recorder,
		logger:    logger,
	}
}

// Execute scores msg.Data and publishes the result keyed by the request ID.
func (uc *ProcessScoringRequestUseCase) Execute(ctx context.Context, msg dto.ScoringRequestMessage) error {
	if msg.RequestID == "" {
		return errors.New("scoring request ID is required")
	}

	a := uc.engine.Assess(msg.Data)
	result := ToAssessmentResponse(a, msg.Explain)

	evt := event.NewAssessmentCompleted(msg.RequestID, msg.OwnerID, result)
	if err := uc.publisher.Publish(ctx, assessmentResultsTopic, evt); err != nil {
		return fmt.Errorf("failed to publish assessment %s: %w", msg.RequestID, err)
	}

	if uc.recorder != nil {
		uc.recorder.RecordAssessment(ctx, SourceStream, a.Policy.Score, a.Scoring.CreditScore, a.Policy.Decision)
	}

	uc.logger.Debug("scoring request processed",
		"request_id", msg.RequestID,
		"policy_score", result.PolicyScore,
		"credit_score", result.CreditScore,
	)
	return nil
}
