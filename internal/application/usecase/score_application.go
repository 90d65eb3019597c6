package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gagankishoreint-glitch/credai/internal/application/dto"
	"github.com/gagankishoreint-glitch/credai/internal/domain/port"
	"github.com/gagankishoreint-glitch/credai/internal/domain/service"
	"github.com/gagankishoreint-glitch/credai/internal/domain/valueobject"
)

const scoreCachePrefix = "credai:score:"

// ScoreApplicationUseCase runs the credit engine on raw data without
// persisting anything. Results are cached by input digest.
type ScoreApplicationUseCase struct {
	engine   *service.CreditEngine
	cache    port.ScoreCache
	ttl      time.Duration
	recorder port.AssessmentRecorder
	logger   *slog.Logger
}

// NewScoreApplicationUseCase creates a new ScoreApplicationUseCase. cache and
// recorder may be nil.
func NewScoreApplicationUseCase(
	engine *service.CreditEngine,
	cache port.ScoreCache,
	ttl time.Duration,
	recorder port.AssessmentRecorder,
	logger *slog.Logger,
) *ScoreApplicationUseCase {
	return &ScoreApplicationUseCase{
		engine:   engine,
		cache:    cache,
		ttl:      ttl,
		recorder: recorder,
		logger:   logger,
	}
}

// Execute assesses req.Data. Cache failures are logged and never fail the
// request.
func (uc *ScoreApplicationUseCase) Execute(ctx context.Context, req dto.ScoreRequest) (dto.AssessmentResponse, error) {
	key, err := CacheKey(req.Data)
	if err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("failed to derive cache key: %w", err)
	}

	if resp, ok := uc.lookup(ctx, key); ok {
		resp.Cached = true
		return trim(resp, req.Explain), nil
	}

	assessment := uc.engine.Assess(req.Data)
	resp := ToAssessmentResponse(assessment, true)
	uc.store(ctx, key, resp)

	if uc.recorder != nil {
		uc.recorder.RecordAssessment(ctx, SourcePreview, assessment.Policy.Score, assessment.Scoring.CreditScore, assessment.Policy.Decision)
	}

	return trim(resp, req.Explain), nil
}

func (uc *ScoreApplicationUseCase) lookup(ctx context.Context, key string) (dto.AssessmentResponse, bool) {
	if uc.cache == nil {
		return dto.AssessmentResponse{}, false
	}
	raw, ok, err := uc.cache.Get(ctx, key)
	if err != nil {
		uc.logger.Warn("score cache lookup failed", "error", err)
		return dto.AssessmentResponse{}, false
	}
	if !ok {
		return dto.AssessmentResponse{}, false
	}
	var resp dto.AssessmentResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		uc.logger.Warn("discarding malformed cached score", "error", err)
		return dto.AssessmentResponse{}, false
	}
	return resp, true
}

func (uc *ScoreApplicationUseCase) store(ctx context.Context, key string, resp dto.AssessmentResponse) {
	if uc.cache == nil {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		uc.logger.Warn("failed to encode score for cache", "error", err)
		return
	}
	if err := uc.cache.Set(ctx, key, raw, uc.ttl); err != nil {
		uc.logger.Warn("score cache store failed", "error", err)
	}
}

// CacheKey derives a stable key from the raw application as submitted.
// Inputs that differ only in spelling ("100" vs 100) get distinct keys.
func CacheKey(raw valueobject.RawApplication) (string, error) {
	b, err := json.Marshal(raw)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return scoreCachePrefix + hex.EncodeToString(sum[:]), nil
}

func trim(resp dto.AssessmentResponse, explain bool) dto.AssessmentResponse {
	if !explain {
		resp.Features = nil
		resp.Contributions = nil
	}
	return resp
}
