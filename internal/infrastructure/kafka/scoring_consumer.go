package kafka

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/gagankishoreint-glitch/credai/internal/application/dto"
	pkgkafka "github.com/gagankishoreint-glitch/credai/pkg/kafka"
)

// ScoringRequestProcessor is satisfied by *usecase.ProcessScoringRequestUseCase.
type ScoringRequestProcessor interface {
	Execute(ctx context.Context, msg dto.ScoringRequestMessage) error
}

// NewScoringRequestHandler adapts processor to a consumer handler. The
// message key stands in for a missing request ID. Undecodable messages are
// logged and skipped so they cannot block the partition.
func NewScoringRequestHandler(processor ScoringRequestProcessor, logger *slog.Logger) pkgkafka.Handler {
	return func(ctx context.Context, msg pkgkafka.Message) error {
		var req dto.ScoringRequestMessage
		if err := json.Unmarshal(msg.Value, &req); err != nil {
			logger.WarnContext(ctx, "dropping malformed scoring request",
				"key", string(msg.Key),
				"error", err,
			)
			return nil
		}
		if req.RequestID == "" {
			req.RequestID = string(msg.Key)
		}
		return processor.Execute(ctx, req)
	}
}
