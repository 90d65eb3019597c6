package usecase_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/gagankishoreint-glitch/credai/internal/domain/model"
	"github.com/gagankishoreint-glitch/credai/internal/domain/service"
	"github.com/gagankishoreint-glitch/credai/internal/domain/valueobject"
)

func strongData() valueobject.RawApplication {
	return valueobject.RawApplication{
		AnnualRevenue:     valueobject.Number(4_000_000),
		OperatingExpenses: valueobject.Number(50_000),
		LoanAmount:        valueobject.Number(500_000),
		YearsInBusiness:   valueobject.Number(8),
		CreditScore:       valueobject.Number(800),
	}
}

func weakData() valueobject.RawApplication {
	return valueobject.RawApplication{
		AnnualRevenue:     valueobject.Number(100_000),
		OperatingExpenses: valueobject.Number(20_000),
		LoanAmount:        valueobject.Number(300_000),
		YearsInBusiness:   valueobject.Number(1),
	}
}

// pendingApplication returns a scored application that the policy left
// under analysis (rule score 510).
func pendingApplication(t *testing.T, owner uuid.UUID) model.CreditApplication {
	t.Helper()
	app, err := model.NewCreditApplication(owner, "Corner Shop", decimal.NewFromInt(300_000), weakData(), time.Now())
	require.NoError(t, err)
	app, err = app.ApplyAssessment(service.NewCreditEngine().Assess(app.Data()), time.Now())
	require.NoError(t, err)
	require.Equal(t, valueobject.DecisionPending, app.Decision())
	return app.ClearEvents()
}
