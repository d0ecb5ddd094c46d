package comparison_test

import (
	"testing"

	"github.com/Gonzalodlm/proyecto-L-v2/internal/domain"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/comparison"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/diversification"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/performance"
	testingpkg "github.com/Gonzalodlm/proyecto-L-v2/internal/testing"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newComparator() *comparison.Comparator {
	tables := testingpkg.NewTables()
	analyzer := diversification.NewAnalyzer(tables.Validator, tables.Universe, diversification.DefaultConfig(), zerolog.Nop())
	return comparison.NewComparator(performance.NewCalculator(0, zerolog.Nop()), analyzer, zerolog.Nop())
}

func candidates() []comparison.Candidate {
	return []comparison.Candidate{
		{Name: "balanced", Allocation: testingpkg.NewBalancedModel(), Values: []float64{100, 104, 101, 108, 112}},
		{Name: "aggressive", Allocation: domain.Allocation{"ACWI": 0.80, "VNQ": 0.15, "GLD": 0.05}, Values: []float64{100, 120, 90, 130}},
		{Name: "steady", Allocation: domain.Allocation{"BIL": 0.30, "AGG": 0.50, "ACWI": 0.10, "GLD": 0.10}, Values: testingpkg.NewGrowingSeries()},
		{Name: "even", Allocation: domain.Allocation{"BIL": 0.2, "AGG": 0.2, "ACWI": 0.2, "VNQ": 0.2, "GLD": 0.2}, Values: []float64{100, 102, 99, 103, 106}},
	}
}

func names(entries []comparison.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name)
	}
	return out
}

func TestCompare_RankKeys(t *testing.T) {
	tests := []struct {
		key      comparison.RankKey
		expected []string
	}{
		{"", []string{"balanced", "even", "aggressive", "steady"}},
		{comparison.RankBySharpe, []string{"balanced", "even", "aggressive", "steady"}},
		{comparison.RankByAnnualizedReturn, []string{"steady", "aggressive", "balanced", "even"}},
		{comparison.RankByTotalReturn, []string{"aggressive", "steady", "balanced", "even"}},
		{comparison.RankByVolatility, []string{"steady", "even", "balanced", "aggressive"}},
		{comparison.RankByMaxDrawdown, []string{"steady", "balanced", "even", "aggressive"}},
		{comparison.RankByDiversification, []string{"even", "balanced", "steady", "aggressive"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			result, err := newComparator().Compare(candidates(), comparison.Options{RankBy: tt.key, PeriodsPerYear: 12})
			require.NoError(t, err)

			assert.Empty(t, result.Errors)
			assert.Equal(t, tt.expected, names(result.Ranked))
			for i, e := range result.Ranked {
				assert.Equal(t, i+1, e.Rank)
			}
		})
	}
}

func TestCompare_UndefinedSharpeRanksLast(t *testing.T) {
	result, err := newComparator().Compare(candidates(), comparison.Options{PeriodsPerYear: 12})
	require.NoError(t, err)

	last := result.Ranked[len(result.Ranked)-1]
	assert.Equal(t, "steady", last.Name)
	assert.Nil(t, last.Metrics.Sharpe)
	assert.Equal(t, comparison.RankBySharpe, result.RankBy)
}

func TestCompare_ErroredCandidatesAreExcluded(t *testing.T) {
	input := append(candidates(),
		comparison.Candidate{Name: "off by 3%", Allocation: domain.Allocation{"AGG": 0.5, "ACWI": 0.3, "GLD": 0.17}, Values: []float64{100, 101}},
		comparison.Candidate{Name: "balanced", Allocation: testingpkg.NewBalancedModel(), Values: []float64{100, 101}},
		comparison.Candidate{Name: "too short", Allocation: testingpkg.NewBalancedModel(), Values: []float64{100}},
		comparison.Candidate{Name: "unknown", Allocation: domain.Allocation{"SPY": 1}, Values: []float64{100, 101}},
		comparison.Candidate{Name: "  ", Allocation: testingpkg.NewBalancedModel(), Values: []float64{100, 101}},
	)

	result, err := newComparator().Compare(input, comparison.Options{PeriodsPerYear: 12})
	require.NoError(t, err)

	assert.Len(t, result.Ranked, 4)
	require.Len(t, result.Errors, 5)

	codes := make(map[string]string, len(result.Errors))
	for _, e := range result.Errors {
		codes[e.Name] = e.Code
	}
	assert.Equal(t, domain.CodeAllocationSum, codes["off by 3%"])
	assert.Equal(t, comparison.CodeDuplicateName, codes["balanced"])
	assert.Equal(t, domain.CodeInsufficientData, codes["too short"])
	assert.Equal(t, domain.CodeUnknownTicker, codes["unknown"])
	assert.Equal(t, comparison.CodeMissingName, codes[""])
	assert.Equal(t, 8, result.Errors[len(result.Errors)-1].Index)
}

func TestCompare_TiesBreakOnDrawdownThenName(t *testing.T) {
	model := testingpkg.NewBalancedModel()
	input := []comparison.Candidate{
		{Name: "deep", Allocation: model, Values: []float64{100, 50, 110}},
		{Name: "shallow", Allocation: model, Values: []float64{100, 90, 110}},
		{Name: "b-twin", Allocation: model, Values: []float64{100, 90, 110}},
	}

	result, err := newComparator().Compare(input, comparison.Options{RankBy: comparison.RankByTotalReturn, PeriodsPerYear: 12})
	require.NoError(t, err)
	assert.Equal(t, []string{"b-twin", "shallow", "deep"}, names(result.Ranked))
}

func TestCompare_Empty(t *testing.T) {
	result, err := newComparator().Compare(nil, comparison.Options{PeriodsPerYear: 252})
	require.NoError(t, err)
	assert.Empty(t, result.Ranked)
	assert.Empty(t, result.Errors)
}

func TestCompare_RejectsOptions(t *testing.T) {
	_, err := newComparator().Compare(candidates(), comparison.Options{RankBy: "alpha", PeriodsPerYear: 12})
	assert.Error(t, err)

	_, err = newComparator().Compare(candidates(), comparison.Options{PeriodsPerYear: 0})
	assert.Error(t, err)
}

func TestRankKey_Valid(t *testing.T) {
	for _, k := range comparison.RankKeys() {
		assert.True(t, k.Valid())
	}
	assert.False(t, comparison.RankKey("alpha").Valid())
}
