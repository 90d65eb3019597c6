//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gagankishoreint-glitch/credai/internal/domain/model"
	"github.com/gagankishoreint-glitch/credai/internal/domain/port"
	"github.com/gagankishoreint-glitch/credai/internal/domain/service"
	"github.com/gagankishoreint-glitch/credai/internal/domain/valueobject"
	"github.com/gagankishoreint-glitch/credai/internal/infrastructure/persistence/postgres"
	"github.com/gagankishoreint-glitch/credai/pkg/testutil"
)

func newRepo(t *testing.T) *postgres.ApplicationRepo {
	t.Helper()
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	pc.RunMigrations(t, postgres.Migrations, postgres.MigrationsDir)
	return postgres.NewApplicationRepo(pc.Pool)
}

func scoredApplication(t *testing.T, owner uuid.UUID, data valueobject.RawApplication, createdAt time.Time) model.CreditApplication {
	t.Helper()
	app, err := model.NewCreditApplication(owner, "Acme Bakery", decimal.RequireFromString("500000.50"), data, createdAt)
	require.NoError(t, err)
	app, err = app.ApplyAssessment(service.NewCreditEngine().Assess(app.Data()), createdAt)
	require.NoError(t, err)
	return app
}

func TestApplicationRepo(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Ping(ctx))

	owner := testutil.TestUserID1
	base := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

	strong := valueobject.RawApplication{
		AnnualRevenue:     valueobject.Text("4000000"),
		OperatingExpenses: valueobject.Number(50_000),
		LoanAmount:        valueobject.Number(500_000),
		YearsInBusiness:   valueobject.Number(8),
		CreditScore:       valueobject.Number(800),
	}
	weak := valueobject.RawApplication{
		AnnualRevenue:     valueobject.Number(100_000),
		OperatingExpenses: valueobject.Number(20_000),
		LoanAmount:        valueobject.Number(300_000),
		YearsInBusiness:   valueobject.Number(1),
	}

	approved := scoredApplication(t, owner, strong, base)
	pending := scoredApplication(t, owner, weak, base.Add(time.Hour))
	other := scoredApplication(t, testutil.TestUserID2, weak, base.Add(2*time.Hour))

	for _, app := range []model.CreditApplication{approved, pending, other} {
		require.NoError(t, repo.Save(ctx, app))
	}

	t.Run("round trip", func(t *testing.T) {
		got, err := repo.FindByID(ctx, approved.ID())
		require.NoError(t, err)

		assert.Equal(t, approved.BusinessName(), got.BusinessName())
		assert.True(t, approved.RequestedAmount().Equal(got.RequestedAmount()))
		assert.Equal(t, "4000000", got.Data().AnnualRevenue.String(), "raw input is kept as submitted")
		assert.Equal(t, 770, got.AIScore())
		assert.Equal(t, approved.Insights(), got.Insights())
		assert.Equal(t, valueobject.DecisionApproved, got.Decision())
		assert.Equal(t, valueobject.RiskGradeA, got.RiskGrade())
		assert.Equal(t, valueobject.RecommendApprove, got.Recommendation())
		assert.InDelta(t, approved.Probability(), got.Probability(), 1e-12)
		assert.WithinDuration(t, approved.DecidedAt(), got.DecidedAt(), time.Millisecond)
		assert.Equal(t, uuid.Nil, got.DecidedBy())
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, valueobject.ErrApplicationNotFound)
	})

	t.Run("list newest first with filters", func(t *testing.T) {
		apps, total, err := repo.List(ctx, port.ApplicationFilter{UserID: owner, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		require.Len(t, apps, 2)
		assert.Equal(t, pending.ID(), apps[0].ID())
		assert.Equal(t, approved.ID(), apps[1].ID())

		apps, total, err = repo.List(ctx, port.ApplicationFilter{Status: valueobject.ApplicationStatusAnalyzing, Limit: 1})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		require.Len(t, apps, 1)
		assert.Equal(t, other.ID(), apps[0].ID())
	})

	t.Run("decide bumps version and detects stale writes", func(t *testing.T) {
		stored, err := repo.FindByID(ctx, pending.ID())
		require.NoError(t, err)

		decided, err := stored.Decide(valueobject.DecisionRejected, testutil.TestUserID2, "insufficient collateral", time.Now())
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, decided))

		reloaded, err := repo.FindByID(ctx, pending.ID())
		require.NoError(t, err)
		assert.Equal(t, stored.Version()+1, reloaded.Version())
		assert.Equal(t, valueobject.DecisionRejected, reloaded.Decision())
		assert.Equal(t, testutil.TestUserID2, reloaded.DecidedBy())

		err = repo.Save(ctx, decided)
		assert.ErrorIs(t, err, valueobject.ErrVersionConflict)
	})
}
