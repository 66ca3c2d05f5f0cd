package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vocaprep/interview-engine/internal/entity"
)

// JSON writes a JSON response
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Can't change response at this point
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// Error writes an error response
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, entity.ErrorResponse{Error: message})
}

// Success writes a success response
func Success(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// Created writes a 201 Created response
func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

// StatusFromError maps engine sentinel errors to HTTP status codes so the
// transport layer presents named failures consistently.
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, entity.ErrUnknownDomain),
		errors.Is(err, entity.ErrInvalidLevel),
		errors.Is(err, entity.ErrMissingField),
		errors.Is(err, entity.ErrInvalidExtension),
		errors.Is(err, entity.ErrFileTooLarge):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrInvalidSessionState),
		errors.Is(err, entity.ErrSessionExhausted),
		errors.Is(err, entity.ErrEmptySession):
		return http.StatusConflict
	case errors.Is(err, entity.ErrTranscriptionFailed),
		errors.Is(err, entity.ErrModelUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
