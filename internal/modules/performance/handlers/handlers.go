// Package handlers provides HTTP handlers for performance metrics and
// portfolio comparison.
package handlers

import (
	"net/http"

	"github.com/Gonzalodlm/proyecto-L-v2/internal/httpapi"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/metrics"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/comparison"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/performance"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handler handles performance HTTP requests
type Handler struct {
	calculator *performance.Calculator
	comparator *comparison.Comparator
	resp       *httpapi.Responder
	log        zerolog.Logger
}

// NewHandler creates a new performance handler
func NewHandler(calc *performance.Calculator, comparator *comparison.Comparator, log zerolog.Logger) *Handler {
	l := log.With().Str("handler", "performance").Logger()
	return &Handler{
		calculator: calc,
		comparator: comparator,
		resp:       httpapi.NewResponder(l),
		log:        l,
	}
}

// SeriesOptions describes the spacing of value series and the risk-free rate.
// PeriodsPerYear wins over Interval when both are set.
type SeriesOptions struct {
	Interval       performance.Interval `json:"interval,omitempty"`
	PeriodsPerYear int                  `json:"periods_per_year,omitempty"`
	RiskFreeRate   *float64             `json:"risk_free_rate,omitempty"`
}

// MetricsRequest is the body of POST /api/performance/metrics
type MetricsRequest struct {
	Values []float64 `json:"values"`
	SeriesOptions
}

// CompareRequest is the body of POST /api/performance/compare
type CompareRequest struct {
	Candidates []comparison.Candidate `json:"candidates"`
	RankBy     comparison.RankKey     `json:"rank_by,omitempty"`
	SeriesOptions
}

// HandleMetrics handles POST /api/performance/metrics
func (h *Handler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	var req MetricsRequest
	if err := httpapi.Decode(r, &req); err != nil {
		h.resp.WriteBadRequest(w, r, err)
		return
	}

	ppy, err := performance.ResolvePeriodsPerYear(req.Interval, req.PeriodsPerYear)
	if err != nil {
		h.resp.WriteOperation(w, r, "compute_metrics", nil, err)
		return
	}

	m, err := h.calculator.Compute(req.Values, ppy, req.RiskFreeRate)
	h.resp.WriteOperation(w, r, "compute_metrics", m, err)
}

// HandleCompare handles POST /api/performance/compare
func (h *Handler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if err := httpapi.Decode(r, &req); err != nil {
		h.resp.WriteBadRequest(w, r, err)
		return
	}

	ppy, err := performance.ResolvePeriodsPerYear(req.Interval, req.PeriodsPerYear)
	if err != nil {
		h.resp.WriteOperation(w, r, "compare", nil, err)
		return
	}

	result, err := h.comparator.Compare(req.Candidates, comparison.Options{
		RankBy:         req.RankBy,
		PeriodsPerYear: ppy,
		RiskFreeRate:   req.RiskFreeRate,
	})
	if err == nil {
		metrics.ComparisonCandidates.WithLabelValues("ranked").Add(float64(len(result.Ranked)))
		metrics.ComparisonCandidates.WithLabelValues("errored").Add(float64(len(result.Errors)))
	}
	h.resp.WriteOperation(w, r, "compare", result, err)
}

// RegisterRoutes registers performance routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/performance", func(r chi.Router) {
		r.Post("/metrics", h.HandleMetrics)
		r.Post("/compare", h.HandleCompare)
	})
}
