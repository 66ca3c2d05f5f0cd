package entity

import (
	"mime/multipart"
	"time"
)

type StartSessionRequest struct {
	DomainID        string          `json:"domain_id"`
	ExperienceLevel ExperienceLevel `json:"experience_level"`
}

type StartSessionResponse struct {
	SessionID string   `json:"session_id"`
	DomainID  string   `json:"domain_id"`
	Question  Question `json:"question"`
}

type SubmitAnswerRequest struct {
	Answer string `json:"answer"`
}

type SubmitAudioAnswerRequest struct {
	AudioFile *multipart.FileHeader
}

type SubmitAnswerResponse struct {
	Feedback Feedback `json:"feedback"`
	// Exhausted reports that the session hit its question cap and the
	// client should end it rather than request another question.
	Exhausted bool `json:"exhausted"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type SessionDTO struct {
	ID              string          `json:"session_id"`
	DomainID        string          `json:"domain_id"`
	ExperienceLevel ExperienceLevel `json:"experience_level"`
	Status          SessionStatus   `json:"session_status"`
	QuestionIndex   int             `json:"question_index"`
	AnsweredCount   int             `json:"answered_count"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type DomainDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type DomainListResponse struct {
	Domains []DomainDTO `json:"domains"`
}
