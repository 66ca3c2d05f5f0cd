package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vocaprep/interview-engine/internal/entity"
)

type stubGenerator struct {
	text    string
	err     error
	lastReq *entity.GenerateQuestionRequest
}

func (s *stubGenerator) GenerateQuestion(_ context.Context, req *entity.GenerateQuestionRequest) (string, error) {
	s.lastReq = req
	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}

func testDomain() entity.Domain {
	return entity.Domain{
		ID:                "software",
		Name:              "Software Engineering",
		Description:       "Programming and system design",
		ReferenceConcepts: []string{"hash map", "complexity", "testing"},
		QuestionTemplates: map[entity.ExperienceLevel][]string{
			entity.LevelFresher: {
				"Tell me about a data structure you use often.",
				"How do you test your code?",
			},
		},
	}
}

func TestSelectorTemplateFallbackIsDeterministic(t *testing.T) {
	selector := NewSelector(nil, 3)
	domain := testDomain()
	pool := domain.QuestionTemplates[entity.LevelFresher]

	for seq := 1; seq <= 5; seq++ {
		q := selector.Next(context.Background(), domain, entity.LevelFresher, seq, nil)

		assert.Equal(t, pool[(seq-1)%len(pool)], q.Text)
		assert.Equal(t, seq, q.SequenceNumber)
		assert.False(t, q.Generated)
	}
}

func TestSelectorFallsBackOnGeneratorError(t *testing.T) {
	gen := &stubGenerator{err: errors.New("service down")}
	selector := NewSelector(gen, 3)
	domain := testDomain()

	q := selector.Next(context.Background(), domain, entity.LevelFresher, 1, nil)

	assert.False(t, q.Generated)
	assert.Equal(t, domain.QuestionTemplates[entity.LevelFresher][0], q.Text)
}

func TestSelectorUsesGeneratorWhenAvailable(t *testing.T) {
	gen := &stubGenerator{text: "What trade-offs did you consider in your last design?"}
	selector := NewSelector(gen, 2)
	domain := testDomain()

	history := []entity.Transcript{
		{RawText: "first answer"},
		{RawText: "second answer"},
		{RawText: "third answer"},
	}

	q := selector.Next(context.Background(), domain, entity.LevelIntermediate, 4, history)

	assert.True(t, q.Generated)
	assert.Equal(t, gen.text, q.Text)
	assert.Equal(t, 4, q.SequenceNumber)

	require.NotNil(t, gen.lastReq)
	assert.Equal(t, domain.ID, gen.lastReq.DomainID)
	assert.Equal(t, entity.LevelIntermediate, gen.lastReq.ExperienceLevel)
	assert.Equal(t, []string{"second answer", "third answer"}, gen.lastReq.RecentAnswers)
}

func TestSelectorSwitchesToFollowupsAfterPoolExhausted(t *testing.T) {
	selector := NewSelector(nil, 3)
	domain := testDomain()
	domain.FollowupTemplates = []string{
		"Can you elaborate on that?",
		"What would you do differently in hindsight?",
	}

	q := selector.Next(context.Background(), domain, entity.LevelFresher, 3, nil)
	assert.Equal(t, "Can you elaborate on that?", q.Text)

	q = selector.Next(context.Background(), domain, entity.LevelFresher, 4, nil)
	assert.Equal(t, "What would you do differently in hindsight?", q.Text)

	// Follow-ups cycle once exhausted too.
	q = selector.Next(context.Background(), domain, entity.LevelFresher, 5, nil)
	assert.Equal(t, "Can you elaborate on that?", q.Text)
}

func TestSelectorLevelFallsBackToFresherPool(t *testing.T) {
	selector := NewSelector(nil, 3)
	domain := testDomain()

	q := selector.Next(context.Background(), domain, entity.LevelSenior, 1, nil)

	assert.Equal(t, domain.QuestionTemplates[entity.LevelFresher][0], q.Text)
	assert.Equal(t, entity.LevelSenior, q.ExperienceLevel)
}
