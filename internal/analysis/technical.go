package analysis

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/vocaprep/interview-engine/internal/config"
	"github.com/vocaprep/interview-engine/internal/entity"
	"go.uber.org/zap"
)

// SimilarityScorer supplies cosine-style similarity scores in [-1,1]
// between a text and each candidate, in candidate order. The model-backed
// variant is the embedding connector; HeuristicScorer is the lexical
// baseline that never fails.
type SimilarityScorer interface {
	Similarities(ctx context.Context, text string, candidates []string) ([]float64, error)
}

// HeuristicScorer approximates similarity with lexical overlap: the
// fraction of candidate tokens literally present in the text. Scores land
// in [0,1], the non-negative half of the similarity range.
type HeuristicScorer struct{}

func NewHeuristicScorer() *HeuristicScorer {
	return &HeuristicScorer{}
}

func (s *HeuristicScorer) Similarities(_ context.Context, text string, candidates []string) ([]float64, error) {
	tokens := Tokenize(text)
	tokenSet := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		tokenSet[tok] = struct{}{}
	}

	scores := make([]float64, len(candidates))
	for i, candidate := range candidates {
		candTokens := Tokenize(candidate)
		if len(candTokens) == 0 {
			continue
		}

		// Multi-word candidates found as a contiguous phrase count as a
		// full match regardless of their individual token hits.
		if len(candTokens) > 1 && ContainsPhrase(tokens, candidate) > 0 {
			scores[i] = 1
			continue
		}

		hits := 0
		for _, ct := range candTokens {
			if _, ok := tokenSet[ct]; ok {
				hits++
			}
		}
		scores[i] = float64(hits) / float64(len(candTokens))
	}

	return scores, nil
}

// TechnicalAnalyzer scores content correctness and relevance against the
// question and the domain reference concepts. It holds a primary scorer
// (model-backed in production) and degrades to the lexical heuristic when
// the primary is unavailable, so a model outage never fails a turn.
type TechnicalAnalyzer struct {
	cfg      config.AnalysisConfig
	scorer   SimilarityScorer
	fallback *HeuristicScorer
}

func NewTechnicalAnalyzer(cfg config.AnalysisConfig, scorer SimilarityScorer) *TechnicalAnalyzer {
	return &TechnicalAnalyzer{
		cfg:      cfg,
		scorer:   scorer,
		fallback: NewHeuristicScorer(),
	}
}

// Analyze produces a TechnicalResult for the transcript against the
// question and reference concepts.
func (a *TechnicalAnalyzer) Analyze(ctx context.Context, question entity.Question, t entity.Transcript, concepts []string) entity.TechnicalResult {
	if t.Empty() {
		return entity.TechnicalResult{
			Score:           0,
			MatchedConcepts: []string{},
			Suggestions:     []string{"No answer was given. Try to address the question even when unsure."},
		}
	}

	candidates := make([]string, 0, len(concepts)+1)
	candidates = append(candidates, question.Text)
	candidates = append(candidates, concepts...)

	sims, err := a.scorer.Similarities(ctx, t.RawText, candidates)
	if err != nil || len(sims) != len(candidates) {
		ctxzap.Warn(ctx, "similarity scorer unavailable, falling back to lexical overlap", zap.Error(err))
		sims, _ = a.fallback.Similarities(ctx, t.RawText, candidates)
	}

	questionSim := normalizeSim(sims[0])
	conceptSims := make([]float64, len(concepts))
	for i, s := range sims[1:] {
		conceptSims[i] = normalizeSim(s)
	}

	semantic := a.cfg.ConceptBlendWeight*topKAverage(conceptSims, a.cfg.ConceptTopK) +
		a.cfg.QuestionBlendWeight*questionSim

	matched := make([]string, 0, len(concepts))
	for i, s := range conceptSims {
		if s >= a.cfg.ConceptMatchMinScore {
			matched = append(matched, concepts[i])
		}
	}

	keyword := keywordScore(len(matched))
	length := lengthScore(len(t.Tokens))

	score := clamp01(a.cfg.TechSemanticWeight*semantic +
		a.cfg.TechKeywordWeight*keyword +
		a.cfg.TechLengthWeight*length)

	return entity.TechnicalResult{
		Score:           score,
		MatchedConcepts: matched,
		Suggestions:     a.suggestions(score, matched, concepts),
	}
}

// normalizeSim maps a cosine similarity from [-1,1] to [0,1].
func normalizeSim(s float64) float64 {
	return clamp01((s + 1) / 2)
}

// topKAverage averages the k highest scores. Covering several relevant
// concepts beats nailing a single one.
func topKAverage(scores []float64, k int) float64 {
	if len(scores) == 0 {
		return 0
	}

	sorted := make([]float64, len(scores))
	copy(sorted, scores)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))

	if k > len(sorted) {
		k = len(sorted)
	}

	sum := 0.0
	for _, s := range sorted[:k] {
		sum += s
	}
	return sum / float64(k)
}

// keywordScore tiers lexical concept coverage the way the heuristic
// evaluation path always has.
func keywordScore(matches int) float64 {
	switch {
	case matches == 0:
		return 0.3
	case matches < 3:
		return 0.5
	case matches < 5:
		return 0.7
	default:
		return 0.9
	}
}

// lengthScore bands answer length in words: roughly 30-100 words is a
// complete spoken answer.
func lengthScore(words int) float64 {
	switch {
	case words < 10:
		return 0.3
	case words < 20:
		return 0.6
	case words <= 100:
		return 0.9
	case words <= 150:
		return 0.8
	default:
		return 0.7
	}
}

func (a *TechnicalAnalyzer) suggestions(score float64, matched, concepts []string) []string {
	var out []string

	if score < a.cfg.TechLowScore {
		out = append(out, "Review the fundamental concepts of this domain and practice explaining them out loud.")
	}

	if len(matched) < len(concepts) {
		missing := missingConcepts(matched, concepts)
		if len(missing) > 0 {
			out = append(out, fmt.Sprintf("Your answer did not touch on: %s.", strings.Join(missing, ", ")))
		}
	}

	if len(out) == 0 {
		out = append(out, "Solid coverage of the expected concepts. Add concrete examples to stand out.")
	}

	return out
}

func missingConcepts(matched, concepts []string) []string {
	matchedSet := make(map[string]struct{}, len(matched))
	for _, m := range matched {
		matchedSet[m] = struct{}{}
	}

	var missing []string
	for _, c := range concepts {
		if _, ok := matchedSet[c]; !ok {
			missing = append(missing, c)
		}
	}
	return missing
}
