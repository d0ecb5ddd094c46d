package allocation_test

import (
	"errors"
	"math"
	"testing"

	"github.com/Gonzalodlm/proyecto-L-v2/internal/domain"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/allocation"
	testingpkg "github.com/Gonzalodlm/proyecto-L-v2/internal/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bucketPtr(b domain.RiskBucket) *domain.RiskBucket {
	return &b
}

func TestCompose_ModelPath(t *testing.T) {
	composer := testingpkg.NewComposer()

	result, err := composer.Compose(allocation.ComposeRequest{Bucket: bucketPtr(domain.BucketBalanced)})
	require.NoError(t, err)

	assert.Equal(t, allocation.SourceModel, result.Source)
	assert.Equal(t, testingpkg.NewBalancedModel(), result.Allocation)
	assert.False(t, result.Normalized)
}

func TestCompose_OverridesReplaceModelWeights(t *testing.T) {
	composer := testingpkg.NewComposer()

	result, err := composer.Compose(allocation.ComposeRequest{
		Bucket:    bucketPtr(domain.BucketBalanced),
		Overrides: domain.Allocation{"ACWI": 0.40, "GLD": 0.15},
	})
	require.NoError(t, err)

	assert.Equal(t, allocation.SourceModelWithOverrides, result.Source)
	assert.Equal(t, 0.40, result.Allocation["ACWI"])
	assert.Equal(t, 0.15, result.Allocation["GLD"])
	assert.Equal(t, 0.25, result.Allocation["AGG"])
}

func TestCompose_ZeroOverrideRemovesTicker(t *testing.T) {
	composer := testingpkg.NewComposer()

	result, err := composer.Compose(allocation.ComposeRequest{
		Bucket:    bucketPtr(domain.BucketBalanced),
		Overrides: domain.Allocation{"BIL": 0, "AGG": 0.30},
	})
	require.NoError(t, err)

	_, ok := result.Allocation["BIL"]
	assert.False(t, ok)
	assert.Len(t, result.Allocation, 4)
}

func TestCompose_DoesNotMutateModelCatalog(t *testing.T) {
	composer := testingpkg.NewComposer()

	_, err := composer.Compose(allocation.ComposeRequest{
		Bucket:    bucketPtr(domain.BucketBalanced),
		Overrides: domain.Allocation{"BIL": 0, "AGG": 0.30},
	})
	require.NoError(t, err)

	again, err := composer.Compose(allocation.ComposeRequest{Bucket: bucketPtr(domain.BucketBalanced)})
	require.NoError(t, err)
	assert.Equal(t, testingpkg.NewBalancedModel(), again.Allocation)
}

func TestCompose_CustomAllocationSumError(t *testing.T) {
	composer := testingpkg.NewComposer()

	_, err := composer.Compose(allocation.ComposeRequest{
		Overrides: domain.Allocation{"AGG": 0.5, "ACWI": 0.3, "GLD": 0.17},
	})

	var sumErr domain.AllocationSumError
	require.True(t, errors.As(err, &sumErr))
	assert.Equal(t, 0.97, sumErr.ActualSum)
	assert.Equal(t, 1.0, sumErr.ExpectedSum)
	assert.Equal(t, domain.CodeAllocationSum, sumErr.Code())
}

func TestCompose_CustomAllocation(t *testing.T) {
	composer := testingpkg.NewComposer()

	result, err := composer.Compose(allocation.ComposeRequest{
		Overrides: domain.Allocation{"AGG": 0.5, "ACWI": 0.5},
	})
	require.NoError(t, err)
	assert.Equal(t, allocation.SourceCustom, result.Source)
	assert.Nil(t, result.Bucket)
}

func TestCompose_Normalize(t *testing.T) {
	composer := testingpkg.NewComposer()

	result, err := composer.Compose(allocation.ComposeRequest{
		Overrides: domain.Allocation{"AGG": 2, "ACWI": 6},
		Normalize: true,
	})
	require.NoError(t, err)

	assert.True(t, result.Normalized)
	assert.InDelta(t, 0.25, result.Allocation["AGG"], 1e-12)
	assert.InDelta(t, 0.75, result.Allocation["ACWI"], 1e-12)
}

func TestCompose_ValidationOrder(t *testing.T) {
	composer := testingpkg.NewComposer()

	balanced := domain.BucketBalanced

	tests := []struct {
		name      string
		bucket    *domain.RiskBucket
		overrides domain.Allocation
		check     func(t *testing.T, err error)
	}{
		{
			name:      "unknown ticker with zero weight over a model",
			bucket:    &balanced,
			overrides: domain.Allocation{"XYZ": 0},
			check: func(t *testing.T, err error) {
				var e domain.UnknownTickerError
				require.True(t, errors.As(err, &e))
				assert.Equal(t, domain.Ticker("XYZ"), e.Ticker)
			},
		},
		{
			name:      "unknown ticker with zero weight alone",
			overrides: domain.Allocation{"XYZ": 0, "AGG": 1},
			check: func(t *testing.T, err error) {
				var e domain.UnknownTickerError
				require.True(t, errors.As(err, &e))
			},
		},
		{
			name:      "unknown ticker before bad weight",
			overrides: domain.Allocation{"SPY": 0.5, "AGG": -0.2},
			check: func(t *testing.T, err error) {
				var e domain.UnknownTickerError
				require.True(t, errors.As(err, &e))
				assert.Equal(t, domain.Ticker("SPY"), e.Ticker)
			},
		},
		{
			name:      "bad weight before sum",
			overrides: domain.Allocation{"AGG": -0.2, "ACWI": 0.3},
			check: func(t *testing.T, err error) {
				var e domain.InvalidWeightError
				require.True(t, errors.As(err, &e))
				assert.Equal(t, domain.Ticker("AGG"), e.Ticker)
			},
		},
		{
			name:      "NaN weight",
			overrides: domain.Allocation{"AGG": math.NaN()},
			check: func(t *testing.T, err error) {
				var e domain.InvalidWeightError
				require.True(t, errors.As(err, &e))
			},
		},
		{
			name:      "infinite weight",
			overrides: domain.Allocation{"AGG": math.Inf(1)},
			check: func(t *testing.T, err error) {
				var e domain.InvalidWeightError
				require.True(t, errors.As(err, &e))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := composer.Compose(allocation.ComposeRequest{Bucket: tt.bucket, Overrides: tt.overrides})
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestCompose_RequiresBucketOrOverrides(t *testing.T) {
	composer := testingpkg.NewComposer()

	_, err := composer.Compose(allocation.ComposeRequest{})
	var verr domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "bucket", verr.Field)

	_, err = composer.Compose(allocation.ComposeRequest{Bucket: bucketPtr(7)})
	require.True(t, errors.As(err, &verr))
}

func TestNormalize_ZeroSum(t *testing.T) {
	composer := testingpkg.NewComposer()

	_, err := composer.Normalize(domain.Allocation{"AGG": 0, "ACWI": 0})
	var sumErr domain.AllocationSumError
	require.True(t, errors.As(err, &sumErr))
	assert.Equal(t, 0.0, sumErr.ActualSum)
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	composer := testingpkg.NewComposer()

	input := domain.Allocation{"AGG": 1, "ACWI": 1}
	out, err := composer.Normalize(input)
	require.NoError(t, err)

	assert.Equal(t, domain.Allocation{"AGG": 1, "ACWI": 1}, input)
	assert.InDelta(t, 0.5, out["AGG"], 1e-12)
}

func TestValidateAll_ReportsEveryProblem(t *testing.T) {
	composer := testingpkg.NewComposer()

	report := composer.ValidateAll(domain.Allocation{"SPY": 0.2, "QQQ": 0.2, "AGG": -0.1})
	assert.False(t, report.Valid)

	codes := make([]string, 0, len(report.Errors))
	for _, p := range report.Errors {
		codes = append(codes, p.Code)
	}
	assert.Equal(t, []string{
		domain.CodeUnknownTicker,
		domain.CodeUnknownTicker,
		domain.CodeInvalidWeight,
		domain.CodeAllocationSum,
	}, codes)
	assert.Equal(t, domain.Ticker("QQQ"), report.Errors[0].Ticker)
	require.NotNil(t, report.ActualSum)
	assert.InDelta(t, 0.3, *report.ActualSum, 1e-12)
}

func TestValidateAll_SkipsSumForNonFiniteWeights(t *testing.T) {
	composer := testingpkg.NewComposer()

	report := composer.ValidateAll(domain.Allocation{"AGG": math.NaN(), "ACWI": 0.5})
	assert.False(t, report.Valid)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, domain.CodeInvalidWeight, report.Errors[0].Code)
	assert.Nil(t, report.ActualSum)
}

func TestValidateAll_Valid(t *testing.T) {
	composer := testingpkg.NewComposer()

	report := composer.ValidateAll(testingpkg.NewBalancedModel())
	assert.True(t, report.Valid)
	assert.Empty(t, report.Errors)
	require.NotNil(t, report.ActualSum)
	assert.Equal(t, 1.0, *report.ActualSum)
}

func TestBreakdown(t *testing.T) {
	composer := testingpkg.NewComposer()

	b, err := composer.Breakdown(domain.Allocation{"AGG": 0.25, "ACWI": 0.45, "VNQ": 0.15, "GLD": 0.10, "BIL": 0.05})
	require.NoError(t, err)

	require.Len(t, b.Entries, 5)
	tickers := make([]domain.Ticker, 0, len(b.Entries))
	for _, e := range b.Entries {
		tickers = append(tickers, e.Ticker)
	}
	assert.Equal(t, []domain.Ticker{"ACWI", "AGG", "VNQ", "GLD", "BIL"}, tickers)
	assert.Equal(t, 45.0, b.Entries[0].WeightPct)
	assert.Equal(t, "iShares MSCI ACWI ETF", b.Entries[0].Instrument.Name)

	require.Len(t, b.Categories, 5)
	assert.Equal(t, 0.05, b.Categories[0].Weight)
}

func TestBreakdown_TiesByTicker(t *testing.T) {
	composer := testingpkg.NewComposer()

	b, err := composer.Breakdown(domain.Allocation{"VNQ": 0.5, "AGG": 0.5})
	require.NoError(t, err)
	assert.Equal(t, domain.Ticker("AGG"), b.Entries[0].Ticker)
	assert.Equal(t, domain.Ticker("VNQ"), b.Entries[1].Ticker)
}

func TestBreakdown_RejectsInvalid(t *testing.T) {
	composer := testingpkg.NewComposer()

	_, err := composer.Breakdown(domain.Allocation{"AGG": 0.5})
	var sumErr domain.AllocationSumError
	assert.True(t, errors.As(err, &sumErr))
}
