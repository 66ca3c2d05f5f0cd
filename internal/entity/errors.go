package entity

import "errors"

// Domain errors
var (
	// Catalog errors
	ErrUnknownDomain = errors.New("unknown interview domain")
	ErrInvalidLevel  = errors.New("invalid experience level")

	// Session errors
	ErrSessionNotFound     = errors.New("session not found")
	ErrInvalidSessionState = errors.New("invalid session state")
	ErrSessionExhausted    = errors.New("session question limit reached")
	ErrEmptySession        = errors.New("session has no feedback to report on")

	// External collaborator errors. Both are recovered locally via
	// fallback paths wherever a fallback exists.
	ErrTranscriptionFailed = errors.New("audio transcription failed")
	ErrModelUnavailable    = errors.New("model service unavailable")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidExtension = errors.New("invalid file extension")
	ErrFileTooLarge     = errors.New("file too large")
)
