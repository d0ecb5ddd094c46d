// Package handlers provides HTTP handlers for rebalancing operations.
package handlers

import (
	"errors"
	"net/http"

	"github.com/Gonzalodlm/proyecto-L-v2/internal/domain"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/httpapi"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/rebalancing"
	"github.com/rs/zerolog"
)

// Handler handles rebalancing HTTP requests
type Handler struct {
	advisor *rebalancing.Advisor
	resp    *httpapi.Responder
	log     zerolog.Logger
}

// NewHandler creates a new rebalancing handler
func NewHandler(advisor *rebalancing.Advisor, log zerolog.Logger) *Handler {
	l := log.With().Str("handler", "rebalancing").Logger()
	return &Handler{
		advisor: advisor,
		resp:    httpapi.NewResponder(l),
		log:     l,
	}
}

// SuggestRequest represents a request to compare a holding with its target
type SuggestRequest struct {
	Current        domain.Allocation       `json:"current"`
	Target         domain.Allocation       `json:"target"`
	Threshold      float64                 `json:"threshold,omitempty"`
	PortfolioValue float64                 `json:"portfolio_value,omitempty"`
	Costs          *rebalancing.TradeCosts `json:"costs,omitempty"`
}

// HandleSuggest handles POST /api/rebalancing/suggest
func (h *Handler) HandleSuggest(w http.ResponseWriter, r *http.Request) {
	var req SuggestRequest
	if err := httpapi.Decode(r, &req); err != nil {
		h.resp.WriteBadRequest(w, r, err)
		return
	}
	if req.Current == nil || req.Target == nil {
		h.resp.WriteBadRequest(w, r, errors.New("current and target allocations are required"))
		return
	}

	plan, err := h.advisor.Suggest(req.Current, req.Target, rebalancing.Options{
		Threshold:      req.Threshold,
		PortfolioValue: req.PortfolioValue,
		Costs:          req.Costs,
	})
	h.resp.WriteOperation(w, r, "suggest_rebalance", plan, err)
}
