package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/gagankishoreint-glitch/credai/internal/application/dto"
	"github.com/gagankishoreint-glitch/credai/internal/domain/port"
	"github.com/gagankishoreint-glitch/credai/internal/domain/service"
)

// MaxBatchSize bounds the number of applications in one batch.
const MaxBatchSize = 1000

// ScoreBatchUseCase scores many raw applications concurrently.
type ScoreBatchUseCase struct {
	engine   *service.CreditEngine
	workers  int
	recorder port.AssessmentRecorder
	logger   *slog.Logger
}

// NewScoreBatchUseCase creates a new ScoreBatchUseCase running at most
// workers assessments at once. recorder may be nil.
func NewScoreBatchUseCase(
	engine *service.CreditEngine,
	workers int,
	recorder port.AssessmentRecorder,
	logger *slog.Logger,
) *ScoreBatchUseCase {
	if workers <= 0 {
		workers = 1
	}
	return &ScoreBatchUseCase{
		engine:   engine,
		workers:  workers,
		recorder: recorder,
		logger:   logger,
	}
}

// Execute returns one result per input, in input order. It stops early
// only if ctx is cancelled.
func (uc *ScoreBatchUseCase) Execute(ctx context.Context, req dto.ScoreBatchRequest) (dto.ScoreBatchResponse, error) {
	if len(req.Applications) > MaxBatchSize {
		return dto.ScoreBatchResponse{}, fmt.Errorf("%w: %d applications (max %d)", ErrBatchTooLarge, len(req.Applications), MaxBatchSize)
	}

	uc.logger.Info("scoring batch", "size", len(req.Applications), "workers", uc.workers)

	results := make([]dto.AssessmentResponse, len(req.Applications))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.workers)
	for i, raw := range req.Applications {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			a := uc.engine.Assess(raw)
			results[i] = ToAssessmentResponse(a, req.Explain)
			if uc.recorder != nil {
				uc.recorder.RecordAssessment(gctx, SourceBatch, a.Policy.Score, a.Scoring.CreditScore, a.Policy.Decision)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return dto.ScoreBatchResponse{}, fmt.Errorf("batch scoring interrupted: %w", err)
	}

	return dto.ScoreBatchResponse{Results: results}, nil
}
