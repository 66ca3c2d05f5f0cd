package asr

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"mime/multipart"
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
	config    config.ASRConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.ASRConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector("asr", cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// TranscribeBytes sends audio to the speech-to-text service and returns the
// raw transcript. An empty transcription is a valid result: the engine
// treats it as a degenerate answer, not an error.
func (c *Connector) TranscribeBytes(ctx context.Context, audioData []byte, filename string) (string, error) {
	if len(audioData) == 0 {
		return "", fmt.Errorf("%w: empty audio data", entity.ErrTranscriptionFailed)
	}

	hash := sha256.Sum256(audioData)
	checksum := hex.EncodeToString(hash[:])

	ctxzap.Info(ctx, "transcribing audio via ASR service",
		zap.String("filename", filename),
		zap.String("checksum", checksum),
		zap.Int("size", len(audioData)),
	)

	prepareBody := func(writer *multipart.Writer) error {
		part, err := writer.CreateFormFile("file", filename)
		if err != nil {
			return fmt.Errorf("create form file: %w", err)
		}

		if _, err := part.Write(audioData); err != nil {
			return fmt.Errorf("write file content: %w", err)
		}

		if err := writer.WriteField("checksum", checksum); err != nil {
			return fmt.Errorf("write checksum field: %w", err)
		}

		return nil
	}

	resp, err := retry.DoWithData(func() (entity.ASRTranscribeResponse, error) {
		var r entity.ASRTranscribeResponse
		err := c.connector.DoMultipartRequest(ctx, http.MethodPost, c.config.TranscribeEndpoint, prepareBody, &r)
		return r, err
	}, append(c.config.Retry.ToRetryOptions(), retry.Context(ctx))...)
	if err != nil {
		return "", fmt.Errorf("%w: %v", entity.ErrTranscriptionFailed, err)
	}

	ctxzap.Info(ctx, "audio transcribed successfully", zap.Int("transcription_length", len(resp.Transcription)))

	return resp.Transcription, nil
}
