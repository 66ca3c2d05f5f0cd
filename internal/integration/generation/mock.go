package generation

import (
	"context"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/vocaprep/interview-engine/internal/entity"
	"go.uber.org/zap"
)

// MockConnector is a deterministic question generator for local runs and
// tests.
type MockConnector struct {
	logger *zap.Logger

	// Unavailable makes every call fail, exercising the template fallback.
	Unavailable bool
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) GenerateQuestion(ctx context.Context, req *entity.GenerateQuestionRequest) (string, error) {
	if m.Unavailable {
		return "", entity.ErrModelUnavailable
	}

	ctxzap.Info(ctx, "[MOCK] generating question",
		zap.String("domain", req.DomainID),
		zap.String("level", string(req.ExperienceLevel)),
	)

	if len(req.RecentAnswers) > 0 {
		return fmt.Sprintf("You mentioned an approach in your last answer. How would you test it in a %s setting?", req.DomainName), nil
	}

	return fmt.Sprintf("Walk me through a %s problem you solved recently and the decisions you made.", req.DomainName), nil
}
