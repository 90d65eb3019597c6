package service_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gagankishoreint-glitch/credai/internal/domain/service"
)

func TestNormalizer_Normalize(t *testing.T) {
	p := service.NewPreprocessor()
	n := service.NewNormalizer()

	got := n.Normalize(p.EngineerFeatures(p.Clean(strongRaw())))

	assert.Equal(t, 0.8, got.Revenue)
	assert.Equal(t, 0.4, got.Years)
	assert.InDelta(t, 500.0/550.0, got.CreditScore, 1e-15)
	assert.Equal(t, 1.0, got.ProfitMargin, "0.85 margin is clamped")
	assert.Equal(t, 0.9375, got.LoanToRevenue, "ratio 0.125 is inverted")
}

func TestNormalizer_ClampsExtremes(t *testing.T) {
	n := service.NewNormalizer()

	extremes := []float64{math.Inf(-1), -1e300, -1, 0, 0.5, 1, 1e300, math.Inf(1), math.NaN()}
	for _, v := range extremes {
		f := service.EngineeredFeatures{
			CleanedFeatures: service.CleanedFeatures{
				AnnualRevenue:   v,
				YearsInBusiness: v,
				CreditScore:     v,
			},
			ProfitMargin:       v,
			LoanToRevenueRatio: v,
		}

		for name, x := range n.Normalize(f).Vector() {
			assert.GreaterOrEqual(t, x, 0.0, "%s for %v", name, v)
			assert.LessOrEqual(t, x, 1.0, "%s for %v", name, v)
		}
	}
}

func TestRange_Scale(t *testing.T) {
	r := service.Range{Min: -0.5, Max: 0.5}

	assert.Equal(t, 0.0, r.Scale(-0.5))
	assert.Equal(t, 0.5, r.Scale(0))
	assert.Equal(t, 1.0, r.Scale(0.5))
	assert.Equal(t, 0.0, r.Scale(-7))
	assert.Equal(t, 1.0, r.Scale(7))
	assert.Equal(t, 0.0, r.Scale(math.NaN()))
}

func TestNormalizedFeatures_VectorKeys(t *testing.T) {
	v := service.NormalizedFeatures{Revenue: 0.1, Years: 0.2, CreditScore: 0.3, ProfitMargin: 0.4, LoanToRevenue: 0.5}.Vector()

	assert.Equal(t, service.FeatureVector{
		"normRevenue":      0.1,
		"normYears":        0.2,
		"normCreditScore":  0.3,
		"normProfitMargin": 0.4,
		"normLoanToRev":    0.5,
	}, v)
}
