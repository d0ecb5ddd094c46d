package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers allocation routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/allocation", func(r chi.Router) {
		r.Post("/compose", h.HandleCompose)
		r.Post("/breakdown", h.HandleBreakdown)
		r.Post("/validate", h.HandleValidate)
		r.Post("/normalize", h.HandleNormalize)
		r.Get("/models/{bucket}", h.HandleGetModel)
	})
}
