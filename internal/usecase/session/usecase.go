package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/vocaprep/interview-engine/internal/analysis"
	"github.com/vocaprep/interview-engine/internal/config"
	"github.com/vocaprep/interview-engine/internal/entity"
	"github.com/vocaprep/interview-engine/internal/repository"
	"github.com/vocaprep/interview-engine/internal/usecase/report"
	"go.uber.org/zap"
)

// SessionUsecase owns the interview session state machine: it sequences
// question issuance, answer evaluation and report generation, and is the
// only writer of session state.
type SessionUsecase struct {
	sessionRepo  repository.SessionRepository
	catalog      *repository.Catalog
	selector     *Selector
	commAnalyzer *analysis.CommunicationAnalyzer
	techAnalyzer *analysis.TechnicalAnalyzer
	reporter     *report.Generator
	asrConnector ASRConnector
	cfg          config.SessionConfig
	locks        *sessionLocks
	logger       *zap.Logger
}

// NewUsecase creates a new session use case
func NewUsecase(
	sessionRepo repository.SessionRepository,
	catalog *repository.Catalog,
	selector *Selector,
	commAnalyzer *analysis.CommunicationAnalyzer,
	techAnalyzer *analysis.TechnicalAnalyzer,
	reporter *report.Generator,
	asrConnector ASRConnector,
	cfg config.SessionConfig,
	logger *zap.Logger,
) *SessionUsecase {
	return &SessionUsecase{
		sessionRepo:  sessionRepo,
		catalog:      catalog,
		selector:     selector,
		commAnalyzer: commAnalyzer,
		techAnalyzer: techAnalyzer,
		reporter:     reporter,
		asrConnector: asrConnector,
		cfg:          cfg,
		locks:        newSessionLocks(),
		logger:       logger,
	}
}

// StartSession validates the domain and level, creates an active session
// and issues its first question.
func (uc *SessionUsecase) StartSession(ctx context.Context, req *entity.StartSessionRequest) (*entity.Session, *entity.Question, error) {
	domain, err := uc.catalog.Get(req.DomainID)
	if err != nil {
		return nil, nil, fmt.Errorf("get domain %q: %w", req.DomainID, err)
	}

	if err := req.ExperienceLevel.Validate(); err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	session := &entity.Session{
		ID:              uuid.New().String(),
		DomainID:        domain.ID,
		ExperienceLevel: req.ExperienceLevel,
		Status:          entity.SessionStatusCreated,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	question := uc.selector.Next(ctx, domain, req.ExperienceLevel, 1, nil)

	// First successful question issuance activates the session.
	session.AskedQuestions = append(session.AskedQuestions, question)
	session.QuestionIndex = 1
	session.Status = entity.SessionStatusActive

	if err := uc.sessionRepo.Create(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("create session: %w", err)
	}

	ctxzap.Info(ctx, "interview session started",
		zap.String("session_id", session.ID),
		zap.String("domain", domain.ID),
		zap.String("level", string(req.ExperienceLevel)),
	)

	return session, &question, nil
}

// SubmitTextAnswer evaluates an answer against the current question and
// appends the resulting feedback. The turn either fully succeeds or
// leaves the session untouched, so retries are idempotent. The second
// return value reports that the session reached its question cap.
func (uc *SessionUsecase) SubmitTextAnswer(ctx context.Context, sessionID, answer string) (*entity.Feedback, bool, error) {
	unlock := uc.locks.lock(sessionID)
	defer unlock()

	session, err := uc.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, false, fmt.Errorf("get session: %w", err)
	}

	if session.Status != entity.SessionStatusActive {
		return nil, false, fmt.Errorf("%w: cannot submit answer on status '%s'", entity.ErrInvalidSessionState, session.Status)
	}

	question, ok := session.CurrentQuestion()
	if !ok || !session.AwaitingAnswer() {
		return nil, false, fmt.Errorf("%w: no question awaiting an answer", entity.ErrInvalidSessionState)
	}

	domain, err := uc.catalog.Get(session.DomainID)
	if err != nil {
		return nil, false, fmt.Errorf("get domain: %w", err)
	}

	transcript := analysis.NormalizeTranscript(answer)

	// Analyzers run before any mutation, so a failed turn appends nothing.
	comm := uc.commAnalyzer.Analyze(transcript)
	tech := uc.techAnalyzer.Analyze(ctx, question, transcript, domain.ReferenceConcepts)

	feedback := combineFeedback(question, transcript, comm, tech)

	session.Answers = append(session.Answers, transcript)
	session.FeedbackHistory = append(session.FeedbackHistory, feedback)
	session.UpdatedAt = time.Now().UTC()

	if err := uc.sessionRepo.Update(ctx, session); err != nil {
		return nil, false, fmt.Errorf("update session: %w", err)
	}

	ctxzap.Info(ctx, "answer evaluated",
		zap.String("session_id", sessionID),
		zap.Int("question_number", question.SequenceNumber),
		zap.Float64("communication_score", comm.Score),
		zap.Float64("technical_score", tech.Score),
	)

	return &feedback, session.QuestionIndex >= uc.cfg.MaxQuestions, nil
}

// SubmitAudioAnswer transcribes the audio and evaluates the transcript as
// a text answer. An empty transcription is a valid degenerate answer.
func (uc *SessionUsecase) SubmitAudioAnswer(ctx context.Context, sessionID string, audioData []byte, filename string) (*entity.Feedback, bool, error) {
	transcription, err := uc.asrConnector.TranscribeBytes(ctx, audioData, filename)
	if err != nil {
		return nil, false, fmt.Errorf("transcribe audio: %w", err)
	}

	return uc.SubmitTextAnswer(ctx, sessionID, transcription)
}

// NextQuestion issues the next question, passing the full answer history
// to the selector for context-sensitive follow-ups.
func (uc *SessionUsecase) NextQuestion(ctx context.Context, sessionID string) (*entity.Question, error) {
	unlock := uc.locks.lock(sessionID)
	defer unlock()

	session, err := uc.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if session.Status != entity.SessionStatusActive {
		return nil, fmt.Errorf("%w: cannot issue question on status '%s'", entity.ErrInvalidSessionState, session.Status)
	}

	if session.AwaitingAnswer() {
		return nil, fmt.Errorf("%w: current question has not been answered", entity.ErrInvalidSessionState)
	}

	if session.QuestionIndex >= uc.cfg.MaxQuestions {
		return nil, fmt.Errorf("%w: %d questions asked", entity.ErrSessionExhausted, session.QuestionIndex)
	}

	domain, err := uc.catalog.Get(session.DomainID)
	if err != nil {
		return nil, fmt.Errorf("get domain: %w", err)
	}

	question := uc.selector.Next(ctx, domain, session.ExperienceLevel, session.QuestionIndex+1, session.Answers)

	session.AskedQuestions = append(session.AskedQuestions, question)
	session.QuestionIndex++
	session.UpdatedAt = time.Now().UTC()

	if err := uc.sessionRepo.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}

	ctxzap.Info(ctx, "question issued",
		zap.String("session_id", sessionID),
		zap.Int("question_number", question.SequenceNumber),
		zap.Bool("generated", question.Generated),
	)

	return &question, nil
}

// EndSession transitions the session to COMPLETED and generates its
// report. Idempotent: ending a completed session returns the same
// terminal snapshot without re-mutating it.
func (uc *SessionUsecase) EndSession(ctx context.Context, sessionID string) (*entity.Session, error) {
	unlock := uc.locks.lock(sessionID)
	defer unlock()

	session, err := uc.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if session.Status == entity.SessionStatusCompleted {
		return session, nil
	}

	if len(session.FeedbackHistory) == 0 {
		return nil, fmt.Errorf("%w: answer at least one question before ending", entity.ErrEmptySession)
	}

	// Claiming the slot atomically gives concurrent completions distinct
	// sequence numbers in their reports.
	completed := uc.sessionRepo.ClaimCompletion()

	rep, err := uc.reporter.Generate(session, completed)
	if err != nil {
		return nil, fmt.Errorf("generate report: %w", err)
	}

	session.Status = entity.SessionStatusCompleted
	session.Report = rep
	session.UpdatedAt = time.Now().UTC()

	if err := uc.sessionRepo.MarkCompleted(ctx, session); err != nil {
		return nil, fmt.Errorf("mark session completed: %w", err)
	}

	uc.locks.forget(sessionID)

	ctxzap.Info(ctx, "interview session completed",
		zap.String("session_id", sessionID),
		zap.Int("questions_answered", len(session.FeedbackHistory)),
		zap.Float64("overall_score", rep.Summary.OverallScore),
	)

	return session, nil
}

// GetReport ends the session if it is still active and returns the report.
func (uc *SessionUsecase) GetReport(ctx context.Context, sessionID string) (*entity.Report, error) {
	session, err := uc.EndSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return session.Report, nil
}

// GetSession returns the current session snapshot.
func (uc *SessionUsecase) GetSession(ctx context.Context, sessionID string) (*entity.Session, error) {
	return uc.sessionRepo.Get(ctx, sessionID)
}

// ListDomains returns the full domain catalog.
func (uc *SessionUsecase) ListDomains(ctx context.Context) []entity.Domain {
	return uc.catalog.List()
}
