package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vocaprep/interview-engine/internal/analysis"
	"github.com/vocaprep/interview-engine/internal/config"
	"github.com/vocaprep/interview-engine/internal/entity"
	"github.com/vocaprep/interview-engine/internal/repository"
	"github.com/vocaprep/interview-engine/internal/usecase/report"
	"go.uber.org/zap"
)

type stubASR struct {
	text string
	err  error
}

func (s *stubASR) TranscribeBytes(context.Context, []byte, string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}

func scoringConfig() config.AnalysisConfig {
	return config.AnalysisConfig{
		FillerWords:            []string{"um", "uh", "like", "you know"},
		ClarityLengthWeight:    0.3,
		ClarityDiversityWeight: 0.2,
		ClarityFillerWeight:    0.25,
		ClarityBalanceWeight:   0.25,
		IdealSentenceMin:       10,
		IdealSentenceMax:       20,
		FillerDensityFull:      0.25,
		ContentRatioMin:        0.4,
		ContentRatioMax:        0.75,
		CommClarityWeight:      0.6,
		CommFluencyWeight:      0.4,
		TechSemanticWeight:     0.5,
		TechKeywordWeight:      0.3,
		TechLengthWeight:       0.2,
		ConceptTopK:            3,
		ConceptBlendWeight:     0.6,
		QuestionBlendWeight:    0.4,
		ConceptMatchMinScore:   0.6,
		FillerDensityMax:       0.08,
		ShortAnswerWords:       10,
		LongAnswerWords:        150,
		TechLowScore:           0.5,
	}
}

func reportConfig() config.ReportConfig {
	return config.ReportConfig{
		HighThreshold:      0.7,
		LowThreshold:       0.5,
		MaxRecommendations: 5,
		FillerTotalMax:     10,
		FillerAvgPerTurn:   3,
	}
}

func newTestUsecase(t *testing.T, asr ASRConnector) *SessionUsecase {
	t.Helper()

	if asr == nil {
		asr = &stubASR{text: "a hash map keeps lookups fast"}
	}

	analysisCfg := scoringConfig()
	return NewUsecase(
		repository.NewSessionMemory(time.Hour),
		repository.NewCatalog([]entity.Domain{testDomain()}),
		NewSelector(nil, 3),
		analysis.NewCommunicationAnalyzer(analysisCfg),
		analysis.NewTechnicalAnalyzer(analysisCfg, analysis.NewHeuristicScorer()),
		report.NewGenerator(reportConfig()),
		asr,
		config.SessionConfig{MaxQuestions: 2, AnswerWindow: 3, CompletedTTL: time.Hour},
		zap.NewNop(),
	)
}

func startTestSession(t *testing.T, uc *SessionUsecase) *entity.Session {
	t.Helper()

	session, question, err := uc.StartSession(context.Background(), &entity.StartSessionRequest{
		DomainID:        "software",
		ExperienceLevel: entity.LevelFresher,
	})
	require.NoError(t, err)
	require.NotNil(t, question)
	return session
}

func TestStartSession(t *testing.T) {
	uc := newTestUsecase(t, nil)

	session, question, err := uc.StartSession(context.Background(), &entity.StartSessionRequest{
		DomainID:        "software",
		ExperienceLevel: entity.LevelFresher,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.SessionStatusActive, session.Status)
	assert.Equal(t, 1, session.QuestionIndex)
	require.Len(t, session.AskedQuestions, 1)
	assert.Equal(t, session.AskedQuestions[0], *question)
	assert.Equal(t, 1, question.SequenceNumber)
	assert.Empty(t, session.Answers)
}

func TestStartSessionUnknownDomain(t *testing.T) {
	uc := newTestUsecase(t, nil)

	_, _, err := uc.StartSession(context.Background(), &entity.StartSessionRequest{
		DomainID:        "astrology",
		ExperienceLevel: entity.LevelFresher,
	})

	assert.ErrorIs(t, err, entity.ErrUnknownDomain)
}

func TestStartSessionInvalidLevel(t *testing.T) {
	uc := newTestUsecase(t, nil)

	_, _, err := uc.StartSession(context.Background(), &entity.StartSessionRequest{
		DomainID:        "software",
		ExperienceLevel: "wizard",
	})

	assert.ErrorIs(t, err, entity.ErrInvalidLevel)
}

func TestSubmitTextAnswer(t *testing.T) {
	uc := newTestUsecase(t, nil)
	session := startTestSession(t, uc)

	feedback, exhausted, err := uc.SubmitTextAnswer(context.Background(), session.ID,
		"I use a hash map almost daily because lookups stay constant time on average.")

	require.NoError(t, err)
	require.NotNil(t, feedback)
	assert.False(t, exhausted)
	assert.InDelta(t, (feedback.Communication.Score+feedback.Technical.Score)/2, feedback.OverallScore, 1e-9)

	stored, err := uc.GetSession(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Answers, 1)
	assert.Len(t, stored.FeedbackHistory, 1)
	assert.Equal(t, stored.QuestionIndex, len(stored.AskedQuestions))
}

func TestSubmitAnswerTwiceWithoutNextQuestion(t *testing.T) {
	uc := newTestUsecase(t, nil)
	session := startTestSession(t, uc)

	_, _, err := uc.SubmitTextAnswer(context.Background(), session.ID, "first answer")
	require.NoError(t, err)

	_, _, err = uc.SubmitTextAnswer(context.Background(), session.ID, "second answer")
	assert.ErrorIs(t, err, entity.ErrInvalidSessionState)

	stored, err := uc.GetSession(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Answers, 1, "rejected submission must not mutate the session")
}

func TestSubmitEmptyAnswerIsDegenerate(t *testing.T) {
	uc := newTestUsecase(t, nil)
	session := startTestSession(t, uc)

	feedback, _, err := uc.SubmitTextAnswer(context.Background(), session.ID, "")

	require.NoError(t, err)
	assert.Zero(t, feedback.Communication.Score)
	assert.Zero(t, feedback.Technical.Score)
	assert.Zero(t, feedback.OverallScore)
}

func TestSubmitAudioAnswer(t *testing.T) {
	uc := newTestUsecase(t, &stubASR{text: "a hash map keeps lookups fast and testing guards against regressions"})
	session := startTestSession(t, uc)

	feedback, _, err := uc.SubmitAudioAnswer(context.Background(), session.ID, []byte("riff-data"), "answer.wav")

	require.NoError(t, err)
	assert.Contains(t, feedback.Transcript.RawText, "hash map")
}

func TestSubmitAudioAnswerTranscriptionFailure(t *testing.T) {
	uc := newTestUsecase(t, &stubASR{err: entity.ErrTranscriptionFailed})
	session := startTestSession(t, uc)

	_, _, err := uc.SubmitAudioAnswer(context.Background(), session.ID, []byte("riff-data"), "answer.wav")
	assert.ErrorIs(t, err, entity.ErrTranscriptionFailed)

	stored, getErr := uc.GetSession(context.Background(), session.ID)
	require.NoError(t, getErr)
	assert.Empty(t, stored.Answers, "failed transcription must not consume the question")
}

func TestNextQuestionSequence(t *testing.T) {
	uc := newTestUsecase(t, nil)
	session := startTestSession(t, uc)

	_, _, err := uc.SubmitTextAnswer(context.Background(), session.ID, "first answer about data structures")
	require.NoError(t, err)

	question, err := uc.NextQuestion(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, question.SequenceNumber)

	stored, err := uc.GetSession(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.QuestionIndex)
	assert.Equal(t, stored.QuestionIndex, len(stored.AskedQuestions))
}

func TestNextQuestionWhileAwaitingAnswer(t *testing.T) {
	uc := newTestUsecase(t, nil)
	session := startTestSession(t, uc)

	_, err := uc.NextQuestion(context.Background(), session.ID)
	assert.ErrorIs(t, err, entity.ErrInvalidSessionState)
}

func TestNextQuestionExhaustion(t *testing.T) {
	uc := newTestUsecase(t, nil)
	session := startTestSession(t, uc)

	_, exhausted, err := uc.SubmitTextAnswer(context.Background(), session.ID, "first")
	require.NoError(t, err)
	assert.False(t, exhausted)

	_, err = uc.NextQuestion(context.Background(), session.ID)
	require.NoError(t, err)

	_, exhausted, err = uc.SubmitTextAnswer(context.Background(), session.ID, "second")
	require.NoError(t, err)
	assert.True(t, exhausted, "question cap of 2 reached")

	_, err = uc.NextQuestion(context.Background(), session.ID)
	assert.ErrorIs(t, err, entity.ErrSessionExhausted)
}

func TestEndSessionRequiresAnAnswer(t *testing.T) {
	uc := newTestUsecase(t, nil)
	session := startTestSession(t, uc)

	_, err := uc.EndSession(context.Background(), session.ID)
	assert.ErrorIs(t, err, entity.ErrEmptySession)
}

func TestEndSessionIsIdempotent(t *testing.T) {
	uc := newTestUsecase(t, nil)
	session := startTestSession(t, uc)

	_, _, err := uc.SubmitTextAnswer(context.Background(), session.ID,
		"I rely on a hash map for fast lookups and write tests for the edge cases.")
	require.NoError(t, err)

	first, err := uc.EndSession(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SessionStatusCompleted, first.Status)
	require.NotNil(t, first.Report)

	second, err := uc.EndSession(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Same(t, first.Report, second.Report)
}

func TestSubmitAnswerOnCompletedSession(t *testing.T) {
	uc := newTestUsecase(t, nil)
	session := startTestSession(t, uc)

	_, _, err := uc.SubmitTextAnswer(context.Background(), session.ID, "an answer")
	require.NoError(t, err)

	_, err = uc.EndSession(context.Background(), session.ID)
	require.NoError(t, err)

	_, err = uc.NextQuestion(context.Background(), session.ID)
	assert.ErrorIs(t, err, entity.ErrInvalidSessionState)
}

func TestGetSessionNotFound(t *testing.T) {
	uc := newTestUsecase(t, nil)

	_, err := uc.GetSession(context.Background(), "missing-id")
	assert.ErrorIs(t, err, entity.ErrSessionNotFound)
}

func TestGetReportEndsActiveSession(t *testing.T) {
	uc := newTestUsecase(t, nil)
	session := startTestSession(t, uc)

	_, _, err := uc.SubmitTextAnswer(context.Background(), session.ID, "an answer about testing")
	require.NoError(t, err)

	rep, err := uc.GetReport(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, rep.SessionID)

	stored, err := uc.GetSession(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SessionStatusCompleted, stored.Status)
}

// Exercised under the race detector: readers encode session snapshots
// while the interview advances through submits and next questions.
func TestConcurrentReadsDuringInterview(t *testing.T) {
	uc := newTestUsecase(t, nil)
	session := startTestSession(t, uc)

	done := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				snapshot, err := uc.GetSession(context.Background(), session.ID)
				if err != nil {
					continue
				}
				if _, err := json.Marshal(snapshot); err != nil {
					t.Errorf("encode session snapshot: %v", err)
					return
				}
			}
		}()
	}

	_, _, err := uc.SubmitTextAnswer(context.Background(), session.ID, "a first answer about hash maps")
	require.NoError(t, err)
	_, err = uc.NextQuestion(context.Background(), session.ID)
	require.NoError(t, err)
	_, _, err = uc.SubmitTextAnswer(context.Background(), session.ID, "a second answer about testing")
	require.NoError(t, err)

	close(done)
	wg.Wait()

	stored, err := uc.GetSession(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Answers, 2)
	assert.Equal(t, stored.QuestionIndex, len(stored.AskedQuestions))
}

func TestConcurrentCompletionsGetDistinctSequenceNumbers(t *testing.T) {
	uc := newTestUsecase(t, nil)

	const sessions = 4
	ids := make([]string, sessions)
	for i := range ids {
		s := startTestSession(t, uc)
		_, _, err := uc.SubmitTextAnswer(context.Background(), s.ID, "an answer about data structures")
		require.NoError(t, err)
		ids[i] = s.ID
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := uc.EndSession(context.Background(), id)
			assert.NoError(t, err)
		}(id)
	}
	wg.Wait()

	seen := make(map[int64]bool, sessions)
	for _, id := range ids {
		rep, err := uc.GetReport(context.Background(), id)
		require.NoError(t, err)
		assert.False(t, seen[rep.Statistics.SessionsCompleted],
			"completion sequence %d assigned twice", rep.Statistics.SessionsCompleted)
		seen[rep.Statistics.SessionsCompleted] = true
	}
	assert.Len(t, seen, sessions)
}

func TestConcurrentSubmitsOnlyOneWins(t *testing.T) {
	uc := newTestUsecase(t, nil)
	session := startTestSession(t, uc)

	const workers = 8
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		go func() {
			_, _, err := uc.SubmitTextAnswer(context.Background(), session.ID, "a concurrent answer")
			errs <- err
		}()
	}

	succeeded := 0
	for i := 0; i < workers; i++ {
		if err := <-errs; err == nil {
			succeeded++
		} else {
			assert.True(t, errors.Is(err, entity.ErrInvalidSessionState))
		}
	}

	assert.Equal(t, 1, succeeded)

	stored, err := uc.GetSession(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Answers, 1)
}
