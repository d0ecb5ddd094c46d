package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/universe"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandler(t *testing.T) *chi.Mux {
	u, err := universe.New([]universe.Instrument{
		{Ticker: "BIL", Name: "T-Bills", Category: universe.CategoryCash, RiskLevel: universe.RiskLow},
		{Ticker: "AGG", Name: "Bonds", Category: universe.CategoryBonds, RiskLevel: universe.RiskLow},
		{Ticker: "ACWI", Name: "Equities", Category: universe.CategoryEquities, RiskLevel: universe.RiskMediumHigh},
	})
	require.NoError(t, err)

	handler := NewHandler(u, zerolog.Nop())
	router := chi.NewRouter()
	router.Route("/api", handler.RegisterRoutes)
	return router
}

type listEnvelope struct {
	Data     ListResponse      `json:"data"`
	Metadata map[string]string `json:"metadata"`
}

func TestHandleList(t *testing.T) {
	router := setupHandler(t)

	tests := []struct {
		name     string
		query    string
		expected []string
	}{
		{"all instruments", "", []string{"BIL", "AGG", "ACWI"}},
		{"by category", "?category=bonds", []string{"AGG"}},
		{"by risk", "?risk=LOW", []string{"BIL", "AGG"}},
		{"combined filters", "?category=cash&risk=low", []string{"BIL"}},
		{"no match", "?category=crypto", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/universe"+tt.query, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)

			var body listEnvelope
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.expected, body.Data.Tickers)
			assert.Equal(t, len(tt.expected), body.Data.Count)
			assert.NotEmpty(t, body.Metadata["timestamp"])
		})
	}
}

func TestHandleGet(t *testing.T) {
	router := setupHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/universe/acwi", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Data universe.Instrument `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Equities", body.Data.Name)
	assert.Equal(t, universe.CategoryEquities, body.Data.Category)
}

func TestHandleGet_NotFound(t *testing.T) {
	router := setupHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/universe/SPY", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"not_found"`)
}

func TestRegisterRoutes(t *testing.T) {
	u, err := universe.New([]universe.Instrument{
		{Ticker: "AGG", Category: universe.CategoryBonds, RiskLevel: universe.RiskLow},
	})
	require.NoError(t, err)
	handler := NewHandler(u, zerolog.New(nil).Level(zerolog.Disabled))

	router := chi.NewRouter()

	// Should not panic
	assert.NotPanics(t, func() {
		handler.RegisterRoutes(router)
	}, "RegisterRoutes should not panic")
}
