package session

import (
	"context"

	"github.com/vocaprep/interview-engine/internal/entity"
)

type SessionUsecase interface {
	StartSession(ctx context.Context, req *entity.StartSessionRequest) (*entity.Session, *entity.Question, error)
	GetSession(ctx context.Context, sessionID string) (*entity.Session, error)
	SubmitTextAnswer(ctx context.Context, sessionID, answer string) (*entity.Feedback, bool, error)
	SubmitAudioAnswer(ctx context.Context, sessionID string, audioData []byte, filename string) (*entity.Feedback, bool, error)
	NextQuestion(ctx context.Context, sessionID string) (*entity.Question, error)
	EndSession(ctx context.Context, sessionID string) (*entity.Session, error)
	GetReport(ctx context.Context, sessionID string) (*entity.Report, error)
}
