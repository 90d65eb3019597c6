package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gagankishoreint-glitch/credai/internal/application/dto"
	"github.com/gagankishoreint-glitch/credai/internal/application/usecase"
	"github.com/gagankishoreint-glitch/credai/internal/domain/event"
	"github.com/gagankishoreint-glitch/credai/internal/domain/service"
	"github.com/gagankishoreint-glitch/credai/internal/domain/valueobject"
)

func TestSubmitApplicationUseCase_Execute(t *testing.T) {
	t.Run("approves a strong application", func(t *testing.T) {
		repo := &mockApplicationRepository{}
		publisher := &mockEventPublisher{}
		recorder := &mockRecorder{}
		uc := usecase.NewSubmitApplicationUseCase(repo, publisher, service.NewCreditEngine(), recorder, testLogger())

		userID := uuid.New()
		resp, err := uc.Execute(context.Background(), dto.SubmitApplicationRequest{
			UserID:       userID,
			BusinessName: "Acme Bakery",
			Amount:       decimal.NewFromInt(500_000),
			Data:         strongData(),
		})
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, resp.ID)
		assert.Equal(t, userID, resp.UserID)
		assert.Equal(t, 770, resp.AIScore)
		assert.Equal(t, 833, resp.ModelScore)
		assert.Equal(t, 63, resp.ScoreDivergence)
		assert.Equal(t, "decision", resp.Status)
		assert.Equal(t, "approved", resp.Decision)
		assert.Equal(t, "A", resp.RiskGrade)
		assert.Equal(t, "approve", resp.Recommendation)
		require.NotNil(t, resp.DecidedAt)
		assert.Nil(t, resp.DecidedBy)
		assert.Equal(t, []dto.InsightResponse{
			{Type: "positive", Text: service.InsightStrongDebtCoverage},
			{Type: "positive", Text: service.InsightEstablishedBusiness},
		}, resp.Insights)

		require.NotNil(t, repo.savedApp)
		assert.Equal(t, resp.ID, repo.savedApp.ID())

		assert.Equal(t, "credai.application.events", publisher.publishedTopic)
		assert.Equal(t, []string{
			event.TypeApplicationSubmitted,
			event.TypeApplicationScored,
			event.TypeApplicationApproved,
		}, publisher.eventTypes())

		require.Len(t, recorder.records, 1)
		assert.Equal(t, usecase.SourceSubmit, recorder.records[0].source)
		assert.Equal(t, valueobject.DecisionApproved, recorder.records[0].decision)
	})

	t.Run("weak application stays under analysis", func(t *testing.T) {
		publisher := &mockEventPublisher{}
		uc := usecase.NewSubmitApplicationUseCase(&mockApplicationRepository{}, publisher, service.NewCreditEngine(), nil, testLogger())

		resp, err := uc.Execute(context.Background(), dto.SubmitApplicationRequest{
			UserID:       uuid.New(),
			BusinessName: "Corner Shop",
			Amount:       decimal.NewFromInt(300_000),
			Data:         weakData(),
		})
		require.NoError(t, err)

		assert.Equal(t, 510, resp.AIScore)
		assert.Equal(t, "analyzing", resp.Status)
		assert.Equal(t, "pending", resp.Decision)
		assert.Nil(t, resp.DecidedAt)
		assert.Len(t, resp.Insights, 3)
		assert.Equal(t, []string{event.TypeApplicationSubmitted, event.TypeApplicationScored}, publisher.eventTypes())
	})

	t.Run("top-level amount backs a missing loanAmount", func(t *testing.T) {
		uc := usecase.NewSubmitApplicationUseCase(&mockApplicationRepository{}, &mockEventPublisher{}, service.NewCreditEngine(), nil, testLogger())

		data := strongData()
		data.LoanAmount = valueobject.RawNumber{}
		resp, err := uc.Execute(context.Background(), dto.SubmitApplicationRequest{
			UserID:       uuid.New(),
			BusinessName: "Acme Bakery",
			Amount:       decimal.NewFromInt(500_000),
			Data:         data,
		})
		require.NoError(t, err)
		assert.Equal(t, 770, resp.AIScore)
	})

	t.Run("top-level amount drives the policy when loanAmount disagrees", func(t *testing.T) {
		uc := usecase.NewSubmitApplicationUseCase(&mockApplicationRepository{}, &mockEventPublisher{}, service.NewCreditEngine(), nil, testLogger())

		resp, err := uc.Execute(context.Background(), dto.SubmitApplicationRequest{
			UserID:       uuid.New(),
			BusinessName: "Acme Bakery",
			Amount:       decimal.NewFromInt(1_000_000),
			Data: valueobject.RawApplication{
				AnnualRevenue:   valueobject.Number(2_000_000),
				LoanAmount:      valueobject.Number(100_000),
				YearsInBusiness: valueobject.Number(8),
			},
		})
		require.NoError(t, err)
		assert.Equal(t, 740, resp.AIScore)
		assert.Equal(t, "pending", resp.Decision)
	})

	t.Run("rejects missing business name", func(t *testing.T) {
		repo := &mockApplicationRepository{}
		uc := usecase.NewSubmitApplicationUseCase(repo, &mockEventPublisher{}, service.NewCreditEngine(), nil, testLogger())

		_, err := uc.Execute(context.Background(), dto.SubmitApplicationRequest{UserID: uuid.New()})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid application")
		assert.Nil(t, repo.savedApp)
	})

	t.Run("returns error when save fails", func(t *testing.T) {
		publisher := &mockEventPublisher{}
		repo := &mockApplicationRepository{saveErr: errors.New("db down")}
		uc := usecase.NewSubmitApplicationUseCase(repo, publisher, service.NewCreditEngine(), nil, testLogger())

		_, err := uc.Execute(context.Background(), dto.SubmitApplicationRequest{
			UserID:       uuid.New(),
			BusinessName: "Acme",
			Data:         strongData(),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to save application")
		assert.Empty(t, publisher.publishedEvents)
	})

	t.Run("publish failure does not fail the submission", func(t *testing.T) {
		repo := &mockApplicationRepository{}
		publisher := &mockEventPublisher{publishErr: errors.New("broker unavailable")}
		uc := usecase.NewSubmitApplicationUseCase(repo, publisher, service.NewCreditEngine(), nil, testLogger())

		_, err := uc.Execute(context.Background(), dto.SubmitApplicationRequest{
			UserID:       uuid.New(),
			BusinessName: "Acme",
			Data:         strongData(),
		})
		require.NoError(t, err)
		assert.NotNil(t, repo.savedApp)
	})
}
