package session

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/vocaprep/interview-engine/internal/entity"
	"go.uber.org/zap"
)

// Selector picks the next question for a session. The generation service
// is a best-effort enhancement; the template pool is the authoritative
// baseline that always produces a question.
type Selector struct {
	generator    GenerationConnector
	answerWindow int
}

func NewSelector(generator GenerationConnector, answerWindow int) *Selector {
	return &Selector{
		generator:    generator,
		answerWindow: answerWindow,
	}
}

// Next returns the question with the given sequence number (1-based),
// conditioned on a bounded window of prior answers when the generator is
// available.
func (s *Selector) Next(ctx context.Context, domain entity.Domain, level entity.ExperienceLevel, sequenceNumber int, history []entity.Transcript) entity.Question {
	question := entity.Question{
		DomainID:        domain.ID,
		ExperienceLevel: level,
		SequenceNumber:  sequenceNumber,
	}

	if text, ok := s.generate(ctx, domain, level, history); ok {
		question.Text = text
		question.Generated = true
		return question
	}

	question.Text = s.template(domain, level, sequenceNumber)
	return question
}

func (s *Selector) generate(ctx context.Context, domain entity.Domain, level entity.ExperienceLevel, history []entity.Transcript) (string, bool) {
	if s.generator == nil {
		return "", false
	}

	recent := recentAnswers(history, s.answerWindow)

	text, err := s.generator.GenerateQuestion(ctx, &entity.GenerateQuestionRequest{
		DomainID:        domain.ID,
		DomainName:      domain.Name,
		ExperienceLevel: level,
		RecentAnswers:   recent,
	})
	if err != nil {
		ctxzap.Warn(ctx, "question generation unavailable, falling back to templates",
			zap.String("domain", domain.ID),
			zap.Error(err),
		)
		return "", false
	}

	return text, true
}

// template deterministically picks from the domain pool by sequence
// number, so the fallback path never repeats until the pool is exhausted.
// Once the pool runs out the selector switches to the domain's follow-up
// prompts instead of repeating opening questions.
func (s *Selector) template(domain entity.Domain, level entity.ExperienceLevel, sequenceNumber int) string {
	pool := domain.TemplatesFor(level)
	if sequenceNumber > len(pool) && len(domain.FollowupTemplates) > 0 {
		return domain.FollowupTemplates[(sequenceNumber-len(pool)-1)%len(domain.FollowupTemplates)]
	}
	return pool[(sequenceNumber-1)%len(pool)]
}

func recentAnswers(history []entity.Transcript, window int) []string {
	if window <= 0 || len(history) == 0 {
		return nil
	}

	start := len(history) - window
	if start < 0 {
		start = 0
	}

	out := make([]string, 0, len(history)-start)
	for _, t := range history[start:] {
		out = append(out, t.RawText)
	}
	return out
}
