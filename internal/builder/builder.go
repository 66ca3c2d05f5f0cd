package builder

import (
	"fmt"
	"net/http"
	"time"

	"github.com/vocaprep/interview-engine/internal/analysis"
	"github.com/vocaprep/interview-engine/internal/api"
	domainapi "github.com/vocaprep/interview-engine/internal/api/domain"
	sessionapi "github.com/vocaprep/interview-engine/internal/api/session"
	"github.com/vocaprep/interview-engine/internal/config"
	"github.com/vocaprep/interview-engine/internal/integration/asr"
	"github.com/vocaprep/interview-engine/internal/integration/embedding"
	"github.com/vocaprep/interview-engine/internal/integration/generation"
	"github.com/vocaprep/interview-engine/internal/pkg/logger"
	"github.com/vocaprep/interview-engine/internal/pkg/validator"
	"github.com/vocaprep/interview-engine/internal/repository"
	"github.com/vocaprep/interview-engine/internal/usecase/report"
	"github.com/vocaprep/interview-engine/internal/usecase/session"
	"go.uber.org/zap"
)

func Build() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	log.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	// Initialize repositories
	sessionRepo := repository.NewSessionMemory(cfg.Session.CompletedTTL)
	catalog := repository.NewCatalog(cfg.Domains)
	log.Info("Repositories initialized", zap.Int("domains", len(cfg.Domains)))

	// Initialize external service connectors (with mock support)
	var generationConnector session.GenerationConnector
	var asrConnector session.ASRConnector
	var similarityScorer analysis.SimilarityScorer

	if cfg.EnableMocks {
		log.Info("Using mock connectors for external services")
		generationConnector = generation.NewMockConnector(log)
		asrConnector = asr.NewMockConnector(log)
		similarityScorer = embedding.NewMockConnector(log)
	} else {
		log.Info("Using real connectors for external services")
		generationConnector = generation.NewConnector(cfg.GenerationConnectorCfg, log)
		asrConnector = asr.NewConnector(cfg.ASRConnectorCfg, log)
		similarityScorer = embedding.NewConnector(cfg.EmbeddingConnectorCfg, log)
	}

	// Initialize analyzers
	commAnalyzer := analysis.NewCommunicationAnalyzer(cfg.Analysis)
	techAnalyzer := analysis.NewTechnicalAnalyzer(cfg.Analysis, similarityScorer)
	log.Info("Analyzers initialized")

	// Initialize validators
	reqValidator := validator.NewValidator(cfg.UploadCfg)

	// Initialize use cases
	selector := session.NewSelector(generationConnector, cfg.Session.AnswerWindow)
	reporter := report.NewGenerator(cfg.Report)

	sessionUC := session.NewUsecase(
		sessionRepo,
		catalog,
		selector,
		commAnalyzer,
		techAnalyzer,
		reporter,
		asrConnector,
		cfg.Session,
		log,
	)
	log.Info("Use cases initialized")

	// Setup API handlers
	sessionHandler := sessionapi.NewHandler(sessionUC, reqValidator)
	domainHandler := domainapi.NewHandler(sessionUC)
	log.Info("API handlers initialized")

	// Setup router
	router := api.SetupRouter(sessionHandler, domainHandler, log)
	log.Info("HTTP router configured")

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		logger: log,
	}, nil
}
