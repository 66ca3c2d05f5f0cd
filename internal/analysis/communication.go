package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/vocaprep/interview-engine/internal/config"
	"github.com/vocaprep/interview-engine/internal/entity"
)

// functionWords is the closed-class lexicon used as a proxy for
// grammatical-role classification: everything outside it counts as a
// content word (noun/verb/adjective territory).
var functionWords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(
		"a an the this that these those my your his her its our their " +
			"i you he she it we they me him them us " +
			"and or but nor so yet for because although while if then than as " +
			"in on at by with from to of about into over under between through up down out off " +
			"is are was were be been being am do does did have has had will would shall should " +
			"can could may might must not no yes " +
			"um uh er ah okay ok hmm huh yeah yep nope well like just really very quite",
	) {
		functionWords[w] = struct{}{}
	}
}

// CommunicationAnalyzer scores delivery quality: filler words, clarity,
// sentence structure. All weights and bands come from configuration.
type CommunicationAnalyzer struct {
	cfg config.AnalysisConfig
}

func NewCommunicationAnalyzer(cfg config.AnalysisConfig) *CommunicationAnalyzer {
	return &CommunicationAnalyzer{cfg: cfg}
}

// Analyze produces a CommunicationResult for the transcript. Degenerate
// input yields a zero score with a prompt to answer more fully.
func (a *CommunicationAnalyzer) Analyze(t entity.Transcript) entity.CommunicationResult {
	if t.Empty() {
		return entity.CommunicationResult{
			Score:        0,
			ClarityScore: 0,
			FillerWords:  []string{},
			Suggestions:  []string{"Try to answer the question more fully. Even a short structured answer is better than silence."},
		}
	}

	fillerCount, distinctFillers := a.detectFillers(t.Tokens)
	density := float64(fillerCount) / float64(len(t.Tokens))

	clarity := a.clarityScore(t, density)
	fluency := 1 - math.Min(1, density/a.cfg.FillerDensityFull)

	score := a.cfg.CommClarityWeight*clarity + a.cfg.CommFluencyWeight*fluency

	// Heavy filler use drags the whole delivery down beyond its density share.
	if fillerCount > 5 {
		score *= 0.9
	}
	if fillerCount > 10 {
		score *= 0.8
	}

	return entity.CommunicationResult{
		Score:           clamp01(score),
		FillerWordCount: fillerCount,
		FillerWords:     distinctFillers,
		ClarityScore:    clamp01(clarity),
		Suggestions:     a.suggestions(t, fillerCount, density, clarity),
	}
}

// detectFillers counts lexicon hits (multi-word fillers included) and
// collects the distinct matched entries in lexicon order.
func (a *CommunicationAnalyzer) detectFillers(tokens []string) (int, []string) {
	total := 0
	distinct := make([]string, 0, 4)

	for _, filler := range a.cfg.FillerWords {
		n := ContainsPhrase(tokens, filler)
		if n > 0 {
			total += n
			distinct = append(distinct, strings.ToLower(filler))
		}
	}

	return total, distinct
}

func (a *CommunicationAnalyzer) clarityScore(t entity.Transcript, fillerDensity float64) float64 {
	lengthScore := a.sentenceLengthScore(t)
	diversityScore := math.Min(1, lexicalDiversity(t.Tokens)*1.2)
	fillerScore := 1 - math.Min(1, fillerDensity/a.cfg.FillerDensityFull)
	balanceScore := a.balanceScore(t.Tokens)

	return a.cfg.ClarityLengthWeight*lengthScore +
		a.cfg.ClarityDiversityWeight*diversityScore +
		a.cfg.ClarityFillerWeight*fillerScore +
		a.cfg.ClarityBalanceWeight*balanceScore
}

// sentenceLengthScore peaks inside the ideal band and decays smoothly
// outside it: too short reads as fragments, too long as run-ons.
func (a *CommunicationAnalyzer) sentenceLengthScore(t entity.Transcript) float64 {
	if len(t.Sentences) == 0 {
		return 0
	}

	avg := float64(len(t.Tokens)) / float64(len(t.Sentences))

	switch {
	case avg < a.cfg.IdealSentenceMin:
		return avg / a.cfg.IdealSentenceMin
	case avg > a.cfg.IdealSentenceMax:
		return a.cfg.IdealSentenceMax / avg
	default:
		return 1
	}
}

// balanceScore is the content-to-function word ratio mapped onto the
// configured band, a proxy for structured delivery.
func (a *CommunicationAnalyzer) balanceScore(tokens []string) float64 {
	content := 0
	for _, tok := range tokens {
		if _, ok := functionWords[tok]; !ok {
			content++
		}
	}
	ratio := float64(content) / float64(len(tokens))

	switch {
	case ratio < a.cfg.ContentRatioMin:
		return ratio / a.cfg.ContentRatioMin
	case ratio > a.cfg.ContentRatioMax:
		return a.cfg.ContentRatioMax / ratio
	default:
		return 1
	}
}

func lexicalDiversity(tokens []string) float64 {
	if len(tokens) == 0 {
		return 0
	}
	unique := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		unique[tok] = struct{}{}
	}
	return float64(len(unique)) / float64(len(tokens))
}

type weightedSuggestion struct {
	severity float64
	text     string
}

// suggestions maps detected conditions to advice, ordered by severity of
// the underlying condition.
func (a *CommunicationAnalyzer) suggestions(t entity.Transcript, fillerCount int, density, clarity float64) []string {
	var rules []weightedSuggestion

	if density > a.cfg.FillerDensityMax {
		rules = append(rules, weightedSuggestion{
			severity: density / a.cfg.FillerDensityMax,
			text:     fmt.Sprintf("Reduce filler words (found %d). Practice pausing instead of saying 'um' or 'uh'.", fillerCount),
		})
	}

	if len(t.Tokens) < a.cfg.ShortAnswerWords {
		rules = append(rules, weightedSuggestion{
			severity: float64(a.cfg.ShortAnswerWords) / float64(len(t.Tokens)),
			text:     "Elaborate with more detail. Short answers rarely demonstrate depth of understanding.",
		})
	}

	if len(t.Tokens) > a.cfg.LongAnswerWords {
		rules = append(rules, weightedSuggestion{
			severity: float64(len(t.Tokens)) / float64(a.cfg.LongAnswerWords),
			text:     "Be more concise. Long answers lose the interviewer; lead with the key point.",
		})
	}

	if clarity < 0.6 {
		rules = append(rules, weightedSuggestion{
			severity: 0.6 / math.Max(clarity, 0.01),
			text:     "Improve clarity with shorter, more direct sentences. Avoid run-ons and fragments.",
		})
	}

	if len(rules) == 0 {
		return []string{"Clear delivery. Keep practicing to stay consistent."}
	}

	sort.SliceStable(rules, func(i, j int) bool { return rules[i].severity > rules[j].severity })

	out := make([]string, len(rules))
	for i, r := range rules {
		out[i] = r.text
	}
	return out
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
