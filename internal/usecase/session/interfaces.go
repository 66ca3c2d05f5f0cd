package session

import (
	"context"

	"github.com/vocaprep/interview-engine/internal/entity"
)

type GenerationConnector interface {
	GenerateQuestion(ctx context.Context, req *entity.GenerateQuestionRequest) (string, error)
}

type ASRConnector interface {
	TranscribeBytes(ctx context.Context, audioData []byte, filename string) (string, error)
}
