// Package handlers provides HTTP handlers for the instrument universe.
package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Gonzalodlm/proyecto-L-v2/internal/httpapi"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/universe"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handler handles universe HTTP requests
type Handler struct {
	universe *universe.Universe
	resp     *httpapi.Responder
	log      zerolog.Logger
}

// NewHandler creates a new universe handler
func NewHandler(u *universe.Universe, log zerolog.Logger) *Handler {
	l := log.With().Str("handler", "universe").Logger()
	return &Handler{
		universe: u,
		resp:     httpapi.NewResponder(l),
		log:      l,
	}
}

// ListResponse is the payload of GET /api/universe
type ListResponse struct {
	Instruments []universe.Instrument `json:"instruments"`
	Tickers     []string              `json:"tickers"`
	Count       int                   `json:"count"`
}

// HandleList handles GET /api/universe
// Optional filters: ?category=bonds and ?risk=low (case-insensitive, combinable)
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	risk := strings.TrimSpace(r.URL.Query().Get("risk"))

	instruments := h.universe.All()
	if category != "" {
		instruments = intersect(instruments, h.universe.ByCategory(universe.Category(category)))
	}
	if risk != "" {
		instruments = intersect(instruments, h.universe.ByRiskLevel(universe.RiskLevel(risk)))
	}

	tickers := make([]string, 0, len(instruments))
	for _, inst := range instruments {
		tickers = append(tickers, string(inst.Ticker))
	}

	h.log.Debug().
		Str("category", category).
		Str("risk", risk).
		Int("count", len(instruments)).
		Msg("Listed universe")

	h.resp.WriteData(w, r, http.StatusOK, ListResponse{
		Instruments: instruments,
		Tickers:     tickers,
		Count:       len(instruments),
	})
}

// HandleGet handles GET /api/universe/{ticker}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ticker := universe.NormalizeTicker(chi.URLParam(r, "ticker"))

	inst, err := h.universe.Lookup(ticker)
	if err != nil {
		h.resp.WriteNotFound(w, r, fmt.Sprintf("instrument %s is not part of the universe", ticker))
		return
	}

	h.resp.WriteData(w, r, http.StatusOK, inst)
}

func intersect(a, b []universe.Instrument) []universe.Instrument {
	keep := make(map[string]bool, len(b))
	for _, inst := range b {
		keep[string(inst.Ticker)] = true
	}
	out := make([]universe.Instrument, 0, len(a))
	for _, inst := range a {
		if keep[string(inst.Ticker)] {
			out = append(out, inst)
		}
	}
	return out
}
