// Package handlers provides HTTP handlers for diversification analysis.
package handlers

import (
	"errors"
	"net/http"

	"github.com/Gonzalodlm/proyecto-L-v2/internal/domain"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/httpapi"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/diversification"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handler handles diversification HTTP requests
type Handler struct {
	analyzer *diversification.Analyzer
	resp     *httpapi.Responder
	log      zerolog.Logger
}

// NewHandler creates a new diversification handler
func NewHandler(analyzer *diversification.Analyzer, log zerolog.Logger) *Handler {
	l := log.With().Str("handler", "diversification").Logger()
	return &Handler{
		analyzer: analyzer,
		resp:     httpapi.NewResponder(l),
		log:      l,
	}
}

// AnalyzeRequest is the body of POST /api/diversification/analyze
type AnalyzeRequest struct {
	Allocation domain.Allocation `json:"allocation"`
}

// HandleAnalyze handles POST /api/diversification/analyze
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := httpapi.Decode(r, &req); err != nil {
		h.resp.WriteBadRequest(w, r, err)
		return
	}
	if req.Allocation == nil {
		h.resp.WriteBadRequest(w, r, errors.New("allocation is required"))
		return
	}

	report, err := h.analyzer.Analyze(req.Allocation)
	h.resp.WriteOperation(w, r, "analyze_diversification", report, err)
}

// RegisterRoutes registers diversification routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/diversification", func(r chi.Router) {
		r.Post("/analyze", h.HandleAnalyze)
	})
}
