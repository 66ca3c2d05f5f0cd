package embedding

import (
	"context"

	"github.com/vocaprep/interview-engine/internal/analysis"
	"github.com/vocaprep/interview-engine/internal/entity"
	"go.uber.org/zap"
)

// MockConnector is a deterministic similarity backend for local runs and
// tests. It reuses the lexical heuristic so that related texts score
// higher than unrelated ones without a real embedding model.
type MockConnector struct {
	logger    *zap.Logger
	heuristic *analysis.HeuristicScorer

	// Unavailable makes every call fail, exercising the analyzer fallback.
	Unavailable bool
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger:    logger,
		heuristic: analysis.NewHeuristicScorer(),
	}
}

func (m *MockConnector) Similarities(ctx context.Context, text string, candidates []string) ([]float64, error) {
	if m.Unavailable {
		return nil, entity.ErrModelUnavailable
	}

	return m.heuristic.Similarities(ctx, text, candidates)
}
