package domain

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers domain catalog routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/domains", h.ListDomains)
}
