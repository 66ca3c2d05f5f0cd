package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vocaprep/interview-engine/internal/entity"
)

type failingScorer struct{}

func (failingScorer) Similarities(context.Context, string, []string) ([]float64, error) {
	return nil, errors.New("model unavailable")
}

func cacheQuestion() entity.Question {
	return entity.Question{
		Text:            "How would you design a cache for a web service?",
		DomainID:        "software",
		ExperienceLevel: entity.LevelIntermediate,
		SequenceNumber:  1,
	}
}

func TestTechnicalRelevantAnswerScoresAboveNeutral(t *testing.T) {
	analyzer := NewTechnicalAnalyzer(testAnalysisConfig(), NewHeuristicScorer())
	concepts := []string{"hash map", "eviction policy", "ttl"}

	answer := NormalizeTranscript(
		"I would design a cache using a hash map to store entries keyed by the request, " +
			"because a hash map gives constant time reads and writes. For memory limits I " +
			"would remove old entries when the store grows too large.",
	)

	result := analyzer.Analyze(context.Background(), cacheQuestion(), answer, concepts)

	assert.Greater(t, result.Score, 0.5)
	assert.Equal(t, []string{"hash map"}, result.MatchedConcepts)
}

func TestTechnicalEmptyTranscript(t *testing.T) {
	analyzer := NewTechnicalAnalyzer(testAnalysisConfig(), NewHeuristicScorer())

	result := analyzer.Analyze(context.Background(), cacheQuestion(), NormalizeTranscript(""), []string{"hash map"})

	assert.Zero(t, result.Score)
	assert.Empty(t, result.MatchedConcepts)
	require.NotEmpty(t, result.Suggestions)
}

func TestTechnicalOnTopicBeatsOffTopic(t *testing.T) {
	analyzer := NewTechnicalAnalyzer(testAnalysisConfig(), NewHeuristicScorer())
	concepts := []string{"hash map", "eviction policy", "ttl"}

	onTopic := analyzer.Analyze(context.Background(), cacheQuestion(), NormalizeTranscript(
		"A cache backed by a hash map with a ttl per entry and an eviction policy for stale data.",
	), concepts)
	offTopic := analyzer.Analyze(context.Background(), cacheQuestion(), NormalizeTranscript(
		"My favorite hobby is hiking in the mountains every weekend with friends.",
	), concepts)

	assert.Greater(t, onTopic.Score, offTopic.Score)
	assert.Empty(t, offTopic.MatchedConcepts)
}

func TestTechnicalFallbackOnScorerFailure(t *testing.T) {
	primary := NewTechnicalAnalyzer(testAnalysisConfig(), failingScorer{})
	baseline := NewTechnicalAnalyzer(testAnalysisConfig(), NewHeuristicScorer())
	concepts := []string{"hash map", "eviction policy"}

	answer := NormalizeTranscript("A hash map keeps lookups fast while entries rotate out over time.")

	got := primary.Analyze(context.Background(), cacheQuestion(), answer, concepts)
	want := baseline.Analyze(context.Background(), cacheQuestion(), answer, concepts)

	assert.InDelta(t, want.Score, got.Score, 1e-9)
	assert.Equal(t, want.MatchedConcepts, got.MatchedConcepts)
}

func TestTechnicalSuggestionsNameMissingConcepts(t *testing.T) {
	analyzer := NewTechnicalAnalyzer(testAnalysisConfig(), NewHeuristicScorer())
	concepts := []string{"hash map", "eviction policy"}

	result := analyzer.Analyze(context.Background(), cacheQuestion(), NormalizeTranscript(
		"I would use a hash map and size the cache based on available memory and traffic.",
	), concepts)

	require.NotEmpty(t, result.Suggestions)
	assert.Contains(t, result.Suggestions[len(result.Suggestions)-1], "eviction policy")
}

func TestHeuristicScorerPhraseMatch(t *testing.T) {
	scores, err := NewHeuristicScorer().Similarities(context.Background(),
		"we keep a hash map of recent results",
		[]string{"hash map", "binary tree", "map"},
	)

	require.NoError(t, err)
	require.Len(t, scores, 3)
	assert.Equal(t, 1.0, scores[0])
	assert.Equal(t, 0.0, scores[1])
	assert.Equal(t, 1.0, scores[2])
}
