package generation

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/avast/retry-go/v4"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/vocaprep/interview-engine/internal/config"
	"github.com/vocaprep/interview-engine/internal/entity"
	"github.com/vocaprep/interview-engine/internal/integration/common"
	pkghttp "github.com/vocaprep/interview-engine/pkg/http"
	"go.uber.org/zap"
)

type Connector struct {
	config    config.GenerationConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.GenerationConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector("generation", cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// GenerateQuestion asks the generation service for an interview question
// conditioned on domain, level and a window of recent answers. Degenerate
// output (empty or implausibly short/long) is reported as
// ErrModelUnavailable so the caller falls back to templates.
func (c *Connector) GenerateQuestion(ctx context.Context, req *entity.GenerateQuestionRequest) (string, error) {
	ctxzap.Info(ctx, "generating question via generation service",
		zap.String("domain", req.DomainID),
		zap.String("level", string(req.ExperienceLevel)),
		zap.Int("recent_answers", len(req.RecentAnswers)),
	)

	resp, err := retry.DoWithData(func() (entity.GenerateQuestionResponse, error) {
		var r entity.GenerateQuestionResponse
		err := c.connector.DoRequest(ctx, http.MethodPost, c.config.GenerateEndpoint, req, &r)
		return r, err
	}, append(c.config.Retry.ToRetryOptions(), retry.Context(ctx))...)
	if err != nil {
		return "", fmt.Errorf("%w: %v", entity.ErrModelUnavailable, err)
	}

	question := strings.TrimSpace(resp.Question)
	if len(question) < 10 || len(question) > 300 {
		return "", fmt.Errorf("%w: degenerate generated question (%d chars)", entity.ErrModelUnavailable, len(question))
	}

	ctxzap.Info(ctx, "question generated successfully", zap.Int("question_length", len(question)))

	return question, nil
}
