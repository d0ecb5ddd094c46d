package allocation

import (
	"errors"
	"math"
	"testing"

	"github.com/Gonzalodlm/proyecto-L-v2/internal/domain"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/universe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUniverse(t *testing.T) *universe.Universe {
	t.Helper()
	u, err := universe.New([]universe.Instrument{
		{Ticker: "AGG", Name: "Bonds", Category: universe.CategoryBonds, RiskLevel: universe.RiskLow},
		{Ticker: "ACWI", Name: "Equities", Category: universe.CategoryEquities, RiskLevel: universe.RiskMediumHigh},
	})
	require.NoError(t, err)
	return u
}

func TestNewValidator_ToleranceFallback(t *testing.T) {
	u := testUniverse(t)

	for _, tol := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		assert.Equal(t, domain.DefaultSumTolerance, NewValidator(u, tol).Tolerance())
	}
	assert.Equal(t, 0.01, NewValidator(u, 0.01).Tolerance())
}

func TestValidate_Tolerance(t *testing.T) {
	v := NewValidator(testUniverse(t), domain.DefaultSumTolerance)

	tests := []struct {
		name  string
		alloc domain.Allocation
		ok    bool
	}{
		{"exact", domain.Allocation{"AGG": 0.4, "ACWI": 0.6}, true},
		{"floating point noise", domain.Allocation{"AGG": 0.1 + 0.2, "ACWI": 0.7}, true},
		{"at tolerance", domain.Allocation{"AGG": 0.4, "ACWI": 0.601}, true},
		{"beyond tolerance", domain.Allocation{"AGG": 0.4, "ACWI": 0.602}, false},
		{"empty", domain.Allocation{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.alloc)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			var sumErr domain.AllocationSumError
			assert.True(t, errors.As(err, &sumErr))
		})
	}
}

func TestValidate_ZeroWeightIsValid(t *testing.T) {
	v := NewValidator(testUniverse(t), 0)
	assert.NoError(t, v.Validate(domain.Allocation{"AGG": 0, "ACWI": 1}))
}

func TestValidateAll_NoErrors(t *testing.T) {
	v := NewValidator(testUniverse(t), 0)
	assert.Empty(t, v.ValidateAll(domain.Allocation{"AGG": 0.5, "ACWI": 0.5}))
}
