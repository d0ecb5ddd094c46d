package universe

import (
	"errors"
	"testing"

	"github.com/Gonzalodlm/proyecto-L-v2/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInstruments() []Instrument {
	return []Instrument{
		{Ticker: "BIL", Name: "T-Bills", Category: CategoryCash, RiskLevel: RiskLow, ExpectedReturn: "2-4%", Color: "#2E7D32"},
		{Ticker: "AGG", Name: "Bonds", Category: CategoryBonds, RiskLevel: RiskLow, ExpectedReturn: "3-5%", Color: "#1976D2"},
		{Ticker: "ACWI", Name: "Global equities", Category: CategoryEquities, RiskLevel: RiskMediumHigh, ExpectedReturn: "7-10%", Color: "#388E3C"},
		{Ticker: "VNQ", Name: "Real estate", Category: CategoryRealEstate, RiskLevel: RiskMediumHigh, ExpectedReturn: "6-9%", Color: "#F57C00"},
		{Ticker: "GLD", Name: "Gold", Category: CategoryCommodities, RiskLevel: RiskMedium, ExpectedReturn: "Variable", Color: "#FFD700"},
	}
}

func TestNew(t *testing.T) {
	u, err := New(testInstruments())
	require.NoError(t, err)

	assert.Equal(t, 5, u.Size())
	assert.Equal(t, []domain.Ticker{"BIL", "AGG", "ACWI", "VNQ", "GLD"}, u.Tickers())
	assert.True(t, u.Contains("GLD"))
	assert.False(t, u.Contains("SPY"))
	assert.Equal(t, CategoryEquities, u.CategoryOf("ACWI"))
	assert.Equal(t, Category(""), u.CategoryOf("SPY"))
}

func TestNew_RejectsInvalidCatalog(t *testing.T) {
	tests := []struct {
		name        string
		instruments []Instrument
		fields      []string
	}{
		{
			name: "duplicate ticker",
			instruments: []Instrument{
				{Ticker: "AGG", Category: CategoryBonds, RiskLevel: RiskLow},
				{Ticker: "AGG", Category: CategoryBonds, RiskLevel: RiskLow},
			},
			fields: []string{"instruments[1].ticker"},
		},
		{
			name: "lower-case ticker",
			instruments: []Instrument{
				{Ticker: "agg", Category: CategoryBonds, RiskLevel: RiskLow},
			},
			fields: []string{"instruments[0].ticker"},
		},
		{
			name: "unknown category and risk",
			instruments: []Instrument{
				{Ticker: "BTC", Category: "crypto", RiskLevel: "extreme"},
			},
			fields: []string{"instruments[0].category", "instruments[0].risk_level"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.instruments)
			require.Error(t, err)

			var verrs domain.ValidationErrors
			require.True(t, errors.As(err, &verrs))
			assert.Equal(t, tt.fields, verrs.Fields())
		})
	}
}

func TestNew_Empty(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)

	var verr domain.ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestLookup(t *testing.T) {
	u, err := New(testInstruments())
	require.NoError(t, err)

	inst, err := u.Lookup("VNQ")
	require.NoError(t, err)
	assert.Equal(t, "Real estate", inst.Name)

	_, err = u.Lookup("SPY")
	var unknown domain.UnknownTickerError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, domain.Ticker("SPY"), unknown.Ticker)
}

func TestFilters(t *testing.T) {
	u, err := New(testInstruments())
	require.NoError(t, err)

	low := u.ByRiskLevel(RiskLow)
	require.Len(t, low, 2)
	assert.Equal(t, domain.Ticker("BIL"), low[0].Ticker)
	assert.Equal(t, domain.Ticker("AGG"), low[1].Ticker)

	equities := u.ByCategory("EQUITIES")
	require.Len(t, equities, 1)
	assert.Equal(t, domain.Ticker("ACWI"), equities[0].Ticker)

	assert.Empty(t, u.ByCategory("crypto"))
	assert.Len(t, u.All(), 5)
}

func TestTickers_ReturnsCopy(t *testing.T) {
	u, err := New(testInstruments())
	require.NoError(t, err)

	tickers := u.Tickers()
	tickers[0] = "XXX"

	assert.Equal(t, domain.Ticker("BIL"), u.Tickers()[0])
}

func TestNormalizeTicker(t *testing.T) {
	assert.Equal(t, domain.Ticker("ACWI"), NormalizeTicker("  acwi "))
}
