package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/vocaprep/interview-engine/internal/entity"
	pkgRetry "github.com/vocaprep/interview-engine/internal/pkg/retry"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8080"`

	// External service configurations
	ASRConnectorCfg        ASRConnectorConfig        `envPrefix:"ASR_"`
	GenerationConnectorCfg GenerationConnectorConfig `envPrefix:"GENERATION_"`
	EmbeddingConnectorCfg  EmbeddingConnectorConfig  `envPrefix:"EMBEDDING_"`

	// Engine configuration
	Session  SessionConfig  `envPrefix:"SESSION_"`
	Analysis AnalysisConfig `envPrefix:"ANALYSIS_"`
	Report   ReportConfig   `envPrefix:"REPORT_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Audio upload configuration
	UploadCfg UploadConfig `envPrefix:"UPLOAD_"`

	// Interview domain catalog (loaded from JSON file, with compiled-in defaults)
	Domains []entity.Domain

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"true"`

	// Environment (set from flag, not from env var)
	Environment string
}

// SessionConfig bounds the session state machine.
type SessionConfig struct {
	// MaxQuestions caps the number of questions per session.
	MaxQuestions int `env:"MAX_QUESTIONS" envDefault:"5"`
	// AnswerWindow is how many recent answers are passed to the question
	// generation service for context-sensitive follow-ups.
	AnswerWindow int `env:"ANSWER_WINDOW" envDefault:"3"`
	// CompletedTTL is how long a completed session stays readable so
	// report re-reads remain idempotent.
	CompletedTTL time.Duration `env:"COMPLETED_TTL" envDefault:"1h"`
}

// AnalysisConfig holds the scoring weights and bands for both analyzers.
// All values are process-wide immutable after startup and passed into
// analyzer constructors explicitly.
type AnalysisConfig struct {
	// Filler lexicon, matched case-insensitively against normalized tokens.
	FillerWords []string `env:"FILLER_WORDS" envSeparator:"," envDefault:"um,uh,er,ah,like,you know,so,well,actually,basically,literally,right,okay,ok,hmm,huh,yeah,yep,nope"`

	// Clarity composite weights. Must sum to 1.
	ClarityLengthWeight    float64 `env:"CLARITY_LENGTH_WEIGHT" envDefault:"0.3"`
	ClarityDiversityWeight float64 `env:"CLARITY_DIVERSITY_WEIGHT" envDefault:"0.2"`
	ClarityFillerWeight    float64 `env:"CLARITY_FILLER_WEIGHT" envDefault:"0.25"`
	ClarityBalanceWeight   float64 `env:"CLARITY_BALANCE_WEIGHT" envDefault:"0.25"`

	// Ideal average-sentence-length band, in words. Clarity peaks inside
	// the band and decays outside it.
	IdealSentenceMin float64 `env:"IDEAL_SENTENCE_MIN" envDefault:"10"`
	IdealSentenceMax float64 `env:"IDEAL_SENTENCE_MAX" envDefault:"20"`

	// FillerDensityFull is the filler density at which the clarity filler
	// component bottoms out at zero.
	FillerDensityFull float64 `env:"FILLER_DENSITY_FULL" envDefault:"0.25"`

	// Content-to-total word ratio band for the grammatical balance
	// component. A structured answer sits inside the band.
	ContentRatioMin float64 `env:"CONTENT_RATIO_MIN" envDefault:"0.4"`
	ContentRatioMax float64 `env:"CONTENT_RATIO_MAX" envDefault:"0.75"`

	// Communication score blend between clarity and filler fluency.
	CommClarityWeight float64 `env:"COMM_CLARITY_WEIGHT" envDefault:"0.6"`
	CommFluencyWeight float64 `env:"COMM_FLUENCY_WEIGHT" envDefault:"0.4"`

	// Technical blend: semantic similarity vs lexical keyword coverage vs
	// answer length, mirroring the heuristic evaluation path.
	TechSemanticWeight float64 `env:"TECH_SEMANTIC_WEIGHT" envDefault:"0.5"`
	TechKeywordWeight  float64 `env:"TECH_KEYWORD_WEIGHT" envDefault:"0.3"`
	TechLengthWeight   float64 `env:"TECH_LENGTH_WEIGHT" envDefault:"0.2"`

	// Semantic aggregation: top-k average across concept similarities,
	// blended with question similarity.
	ConceptTopK          int     `env:"CONCEPT_TOP_K" envDefault:"3"`
	ConceptBlendWeight   float64 `env:"CONCEPT_BLEND_WEIGHT" envDefault:"0.6"`
	QuestionBlendWeight  float64 `env:"QUESTION_BLEND_WEIGHT" envDefault:"0.4"`
	ConceptMatchMinScore float64 `env:"CONCEPT_MATCH_MIN_SCORE" envDefault:"0.6"`

	// Suggestion thresholds.
	FillerDensityMax float64 `env:"FILLER_DENSITY_MAX" envDefault:"0.08"`
	ShortAnswerWords int     `env:"SHORT_ANSWER_WORDS" envDefault:"10"`
	LongAnswerWords  int     `env:"LONG_ANSWER_WORDS" envDefault:"150"`
	TechLowScore     float64 `env:"TECH_LOW_SCORE" envDefault:"0.5"`
}

// ReportConfig holds the aggregation thresholds for report generation.
type ReportConfig struct {
	HighThreshold      float64 `env:"HIGH_THRESHOLD" envDefault:"0.7"`
	LowThreshold       float64 `env:"LOW_THRESHOLD" envDefault:"0.5"`
	MaxRecommendations int     `env:"MAX_RECOMMENDATIONS" envDefault:"5"`
	// Filler-word statistics thresholds across the whole session.
	FillerTotalMax   int     `env:"FILLER_TOTAL_MAX" envDefault:"10"`
	FillerAvgPerTurn float64 `env:"FILLER_AVG_PER_TURN" envDefault:"3"`
}

type ASRConnectorConfig struct {
	HTTPClientConfig
	TranscribeEndpoint string               `env:"TRANSCRIBE_ENDPOINT" envDefault:"/transcribe"`
	Retry              pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type GenerationConnectorConfig struct {
	HTTPClientConfig
	GenerateEndpoint string               `env:"GENERATE_ENDPOINT" envDefault:"/generate"`
	Retry            pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type EmbeddingConnectorConfig struct {
	HTTPClientConfig
	SimilarityEndpoint string               `env:"SIMILARITY_ENDPOINT" envDefault:"/similarity"`
	Retry              pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"10s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"5s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"10s"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL"`
}

// UploadConfig holds audio upload limits
type UploadConfig struct {
	MaxAudioFileSize int64 `env:"MAX_AUDIO_FILE_SIZE" envDefault:"26214400"` // 25 MiB
	MaxUploadSize    int64 `env:"MAX_UPLOAD_SIZE" envDefault:"33554432"`     // 32 MiB
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// Load the interview domain catalog from JSON file
	if err := loadDomains(cfg); err != nil {
		return nil, fmt.Errorf("load domain catalog: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Session.MaxQuestions < 1 || cfg.Session.MaxQuestions > 50 {
		return fmt.Errorf("SESSION_MAX_QUESTIONS must be between 1 and 50, got %d", cfg.Session.MaxQuestions)
	}

	if cfg.Session.AnswerWindow < 1 {
		return fmt.Errorf("SESSION_ANSWER_WINDOW must be at least 1, got %d", cfg.Session.AnswerWindow)
	}

	claritySum := cfg.Analysis.ClarityLengthWeight + cfg.Analysis.ClarityDiversityWeight +
		cfg.Analysis.ClarityFillerWeight + cfg.Analysis.ClarityBalanceWeight
	if claritySum < 0.99 || claritySum > 1.01 {
		return fmt.Errorf("clarity weights must sum to 1, got %.2f", claritySum)
	}

	if cfg.Analysis.IdealSentenceMin >= cfg.Analysis.IdealSentenceMax {
		return fmt.Errorf("IDEAL_SENTENCE_MIN must be below IDEAL_SENTENCE_MAX")
	}

	if cfg.Analysis.ConceptTopK < 1 {
		return fmt.Errorf("CONCEPT_TOP_K must be at least 1, got %d", cfg.Analysis.ConceptTopK)
	}

	if cfg.Report.LowThreshold >= cfg.Report.HighThreshold {
		return fmt.Errorf("REPORT_LOW_THRESHOLD must be below REPORT_HIGH_THRESHOLD")
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
