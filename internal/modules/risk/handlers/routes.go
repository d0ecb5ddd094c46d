package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all risk profiling routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/risk", func(r chi.Router) {
		r.Post("/profile", h.HandleProfile)
		r.Post("/simulate", h.HandleSimulate)
		r.Get("/buckets", h.HandleBuckets)
		r.Get("/questionnaire", h.HandleQuestionnaire)
	})
}
