package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers universe routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/universe", func(r chi.Router) {
		r.Get("/", h.HandleList)
		r.Get("/{ticker}", h.HandleGet)
	})
}
