package asr

import (
	"context"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/vocaprep/interview-engine/internal/entity"
	"go.uber.org/zap"
)

// MockConnector is a stand-in ASR used for local runs and tests.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

// TranscribeBytes returns a fixed transcript regardless of the audio content.
func (m *MockConnector) TranscribeBytes(ctx context.Context, audioData []byte, filename string) (string, error) {
	if len(audioData) == 0 {
		return "", fmt.Errorf("%w: empty audio data", entity.ErrTranscriptionFailed)
	}

	ctxzap.Info(ctx, "[MOCK] transcribing audio via ASR",
		zap.String("filename", filename),
		zap.Int("size", len(audioData)),
	)

	mockTranscription := "I would start by clarifying the requirements. " +
		"For this kind of problem I usually reach for a hash map because it gives constant time lookups. " +
		"If memory became a concern I would consider a sorted array with binary search instead. " +
		"In my last project we benchmarked both approaches before committing to one."

	ctxzap.Info(ctx, "[MOCK] audio transcribed", zap.Int("transcription_length", len(mockTranscription)))
	return mockTranscription, nil
}
