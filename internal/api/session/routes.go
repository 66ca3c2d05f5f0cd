package session

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers session routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/interview-session", func(r chi.Router) {
		r.Post("/", h.StartSession)
		r.Get("/{id}", h.GetSession)
		r.Post("/{id}/answer", h.SubmitTextAnswer)
		r.Post("/{id}/answer/audio", h.SubmitAudioAnswer)
		r.Post("/{id}/next-question", h.NextQuestion)
		r.Post("/{id}/end", h.EndSession)
		r.Get("/{id}/report", h.GetReport)
	})
}
