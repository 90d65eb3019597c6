package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gagankishoreint-glitch/credai/internal/application/dto"
	"github.com/gagankishoreint-glitch/credai/internal/application/usecase"
	"github.com/gagankishoreint-glitch/credai/internal/domain/event"
	"github.com/gagankishoreint-glitch/credai/internal/domain/service"
)

func TestProcessScoringRequestUseCase_Execute(t *testing.T) {
	t.Run("publishes the assessment", func(t *testing.T) {
		publisher := &mockEventPublisher{}
		recorder := &mockRecorder{}
		uc := usecase.NewProcessScoringRequestUseCase(service.NewCreditEngine(), publisher, recorder, testLogger())

		err := uc.Execute(context.Background(), dto.ScoringRequestMessage{
			RequestID: "req-42",
			OwnerID:   "partner-1",
			Data:      strongData(),
		})
		require.NoError(t, err)

		assert.Equal(t, "credai.assessment.results", publisher.publishedTopic)
		require.Len(t, publisher.publishedEvents, 1)
		completed, ok := publisher.publishedEvents[0].(event.AssessmentCompleted)
		require.True(t, ok)
		assert.Equal(t, "req-42", completed.AggregateID())
		assert.Equal(t, "partner-1", completed.OwnerID())

		result, ok := completed.Result.(dto.AssessmentResponse)
		require.True(t, ok)
		assert.Equal(t, 770, result.PolicyScore)
		assert.Equal(t, 833, result.CreditScore)

		require.Len(t, recorder.records, 1)
		assert.Equal(t, usecase.SourceStream, recorder.records[0].source)
	})

	t.Run("request ID is required", func(t *testing.T) {
		publisher := &mockEventPublisher{}
		uc := usecase.NewProcessScoringRequestUseCase(service.NewCreditEngine(), publisher, nil, testLogger())

		err := uc.Execute(context.Background(), dto.ScoringRequestMessage{Data: strongData()})
		assert.Error(t, err)
		assert.Empty(t, publisher.publishedEvents)
	})

	t.Run("publish failure is returned", func(t *testing.T) {
		publisher := &mockEventPublisher{publishErr: errors.New("broker unavailable")}
		uc := usecase.NewProcessScoringRequestUseCase(service.NewCreditEngine(), publisher, nil, testLogger())

		err := uc.Execute(context.Background(), dto.ScoringRequestMessage{RequestID: "r", Data: weakData()})
		assert.Error(t, err)
	})
}
