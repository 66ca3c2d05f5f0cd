package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/vocaprep/interview-engine/internal/api/docs"
	domainapi "github.com/vocaprep/interview-engine/internal/api/domain"
	"github.com/vocaprep/interview-engine/internal/api/middleware"
	sessionapi "github.com/vocaprep/interview-engine/internal/api/session"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(sessionHandler *sessionapi.Handler, domainHandler *domainapi.Handler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)                 // Recover from panics
	r.Use(chimiddleware.RequestID)                 // Add request ID
	r.Use(middleware.Logger(logger))               // Log requests
	r.Use(middleware.CORS)                         // Handle CORS
	r.Use(chimiddleware.Timeout(60 * time.Second)) // Default timeout

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	// Register routes
	sessionapi.RegisterRoutes(r, sessionHandler)
	domainapi.RegisterRoutes(r, domainHandler)

	return r
}
