package response

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vocaprep/interview-engine/internal/entity"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "unknown domain", err: entity.ErrUnknownDomain, want: http.StatusBadRequest},
		{name: "invalid level", err: entity.ErrInvalidLevel, want: http.StatusBadRequest},
		{name: "bad upload", err: entity.ErrFileTooLarge, want: http.StatusBadRequest},
		{name: "not found", err: entity.ErrSessionNotFound, want: http.StatusNotFound},
		{name: "state conflict", err: entity.ErrInvalidSessionState, want: http.StatusConflict},
		{name: "exhausted", err: entity.ErrSessionExhausted, want: http.StatusConflict},
		{name: "empty session", err: entity.ErrEmptySession, want: http.StatusConflict},
		{name: "asr failure", err: entity.ErrTranscriptionFailed, want: http.StatusBadGateway},
		{name: "model failure", err: entity.ErrModelUnavailable, want: http.StatusBadGateway},
		{name: "unclassified", err: errors.New("boom"), want: http.StatusInternalServerError},
		{
			name: "wrapped sentinel keeps its status",
			err:  fmt.Errorf("get session: %w", entity.ErrSessionNotFound),
			want: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFromError(tt.err))
		})
	}
}

func TestErrorWritesJSONBody(t *testing.T) {
	rec := httptest.NewRecorder()

	Error(rec, http.StatusConflict, "session already completed")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"session already completed"}`, rec.Body.String())
}

func TestSuccessAndCreated(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, map[string]string{"status": "ok"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	Created(rec, map[string]string{"id": "s1"})
	assert.Equal(t, http.StatusCreated, rec.Code)
}
