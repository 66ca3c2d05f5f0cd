package common

import (
	"github.com/vocaprep/interview-engine/internal/config"
	pkgHTTP "github.com/vocaprep/interview-engine/pkg/http"
	"go.uber.org/zap"
)

// NewBaseConnector builds the HTTP connector shared by the model service
// integrations, tagging outbound request logs with the service name.
func NewBaseConnector(service string, cfg config.HTTPClientConfig, logger *zap.Logger) *pkgHTTP.Connector {
	connCfg := &pkgHTTP.ConnectorConfig{
		Logger:  logger.With(zap.String("service", service)),
		BaseURL: cfg.Url,
	}

	opts := []pkgHTTP.HttpOpts{
		pkgHTTP.WithRequestTimeout(cfg.RequestTimeout),
		pkgHTTP.WithConnClientTimeout(cfg.ConnTimeout),
		pkgHTTP.WithClientKeepAlive(cfg.KeepAlive),
		pkgHTTP.WithIdleConnTimeout(cfg.IdleConnTimeout),
		pkgHTTP.WithResponseHeaderTimeout(cfg.ResponseHeaderTimeout),
		pkgHTTP.WithRequestLogging(),
	}
	// Model services deployed next to the engine often run unauthenticated.
	if cfg.Token != "" {
		opts = append(opts, pkgHTTP.WithAuthToken(cfg.Token))
	}

	return pkgHTTP.NewConnector(connCfg, opts...)
}
