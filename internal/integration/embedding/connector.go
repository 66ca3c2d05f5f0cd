package embedding

import (
	"context"
	"fmt"
	"net/http"

	"github.com/avast/retry-go/v4"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/vocaprep/interview-engine/internal/config"
	"github.com/vocaprep/interview-engine/internal/entity"
	"github.com/vocaprep/interview-engine/internal/integration/common"
	pkghttp "github.com/vocaprep/interview-engine/pkg/http"
	"go.uber.org/zap"
)

type Connector struct {
	config    config.EmbeddingConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.EmbeddingConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector("embedding", cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// Similarities returns cosine similarities in [-1,1] between the text and
// each candidate, in candidate order. Implements analysis.SimilarityScorer.
func (c *Connector) Similarities(ctx context.Context, text string, candidates []string) ([]float64, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	ctxzap.Debug(ctx, "scoring similarity via embedding service",
		zap.Int("candidates", len(candidates)),
	)

	req := &entity.SimilarityRequest{
		Text:       text,
		Candidates: candidates,
	}

	resp, err := retry.DoWithData(func() (entity.SimilarityResponse, error) {
		var r entity.SimilarityResponse
		err := c.connector.DoRequest(ctx, http.MethodPost, c.config.SimilarityEndpoint, req, &r)
		return r, err
	}, append(c.config.Retry.ToRetryOptions(), retry.Context(ctx))...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrModelUnavailable, err)
	}

	if len(resp.Scores) != len(candidates) {
		return nil, fmt.Errorf("%w: expected %d scores, got %d", entity.ErrModelUnavailable, len(candidates), len(resp.Scores))
	}

	return resp.Scores, nil
}
