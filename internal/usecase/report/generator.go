package report

import (
	"fmt"
	"time"

	"github.com/vocaprep/interview-engine/internal/config"
	"github.com/vocaprep/interview-engine/internal/entity"
)

// Generator builds the end-of-session report from the feedback history.
// Apart from the timestamp, the same history always produces the same
// report, so a completed session can cache it forever.
type Generator struct {
	cfg config.ReportConfig
}

func NewGenerator(cfg config.ReportConfig) *Generator {
	return &Generator{cfg: cfg}
}

// Generate aggregates the session's feedback into a report.
// sessionsCompleted is the completed-session counter as of this session.
func (g *Generator) Generate(session *entity.Session, sessionsCompleted int64) (*entity.Report, error) {
	history := session.FeedbackHistory
	if len(history) == 0 {
		return nil, fmt.Errorf("%w: session %s has no evaluated answers", entity.ErrEmptySession, session.ID)
	}

	summary, stats := g.aggregate(history)
	stats.SessionsCompleted = sessionsCompleted

	report := &entity.Report{
		SessionID:       session.ID,
		DomainID:        session.DomainID,
		Date:            time.Now().UTC(),
		Summary:         summary,
		Statistics:      stats,
		Strengths:       g.strengths(summary, stats, history),
		Weaknesses:      g.weaknesses(summary, stats, history),
		ImprovementPlan: g.improvementPlan(summary, stats, history),
	}
	report.Recommendations = g.recommendations(report.ImprovementPlan, history)

	return report, nil
}

func (g *Generator) aggregate(history []entity.Feedback) (entity.ReportSummary, entity.ReportStatistics) {
	var commSum, techSum, overallSum, claritySum float64
	totalFillers := 0

	for _, fb := range history {
		commSum += fb.Communication.Score
		techSum += fb.Technical.Score
		overallSum += fb.OverallScore
		claritySum += fb.Communication.ClarityScore
		totalFillers += fb.Communication.FillerWordCount
	}

	n := float64(len(history))

	summary := entity.ReportSummary{
		OverallScore:       overallSum / n,
		CommunicationScore: commSum / n,
		TechnicalScore:     techSum / n,
		TotalQuestions:     len(history),
	}

	stats := entity.ReportStatistics{
		TotalFillerWords: totalFillers,
		AvgClarity:       claritySum / n,
	}

	return summary, stats
}

func (g *Generator) strengths(summary entity.ReportSummary, stats entity.ReportStatistics, history []entity.Feedback) []string {
	var out []string

	if summary.CommunicationScore >= g.cfg.HighThreshold {
		out = append(out, "Clear and well-paced communication throughout the interview")
	}
	if summary.TechnicalScore >= g.cfg.HighThreshold {
		out = append(out, "Strong technical answers with relevant domain concepts")
	}
	if stats.AvgClarity >= g.cfg.HighThreshold {
		out = append(out, "Well-structured answers that are easy to follow")
	}
	if stats.TotalFillerWords <= len(history) {
		out = append(out, "Minimal use of filler words")
	}

	if concepts := mentionedConcepts(history); len(concepts) > 0 {
		out = append(out, fmt.Sprintf("Demonstrated familiarity with: %s", joinLimited(concepts, 5)))
	}

	if len(out) == 0 {
		out = append(out, "Completed the interview and engaged with every question")
	}

	return out
}

func (g *Generator) weaknesses(summary entity.ReportSummary, stats entity.ReportStatistics, history []entity.Feedback) []string {
	var out []string

	if summary.CommunicationScore < g.cfg.LowThreshold {
		out = append(out, "Answers were hard to follow; delivery needs work")
	}
	if summary.TechnicalScore < g.cfg.LowThreshold {
		out = append(out, "Technical depth fell short of the question requirements")
	}
	if stats.AvgClarity < g.cfg.LowThreshold {
		out = append(out, "Answer structure was unclear on average")
	}

	avgFillers := float64(stats.TotalFillerWords) / float64(len(history))
	if stats.TotalFillerWords > g.cfg.FillerTotalMax || avgFillers > g.cfg.FillerAvgPerTurn {
		out = append(out, fmt.Sprintf("Heavy reliance on filler words (%d across the session)", stats.TotalFillerWords))
	}

	return out
}

func (g *Generator) improvementPlan(summary entity.ReportSummary, stats entity.ReportStatistics, history []entity.Feedback) []entity.ImprovementArea {
	var plan []entity.ImprovementArea

	if summary.CommunicationScore < g.cfg.HighThreshold {
		plan = append(plan, entity.ImprovementArea{
			Area:     "Communication",
			Priority: priorityFor(summary.CommunicationScore, g.cfg),
			Actions: []string{
				"Record yourself answering practice questions and review the playback",
				"Use the answer-pause-answer technique instead of thinking out loud",
				"Structure answers as situation, action, result",
			},
			Resources: []string{
				"Toastmasters public speaking exercises",
				"'Talk Like TED' by Carmine Gallo",
			},
		})
	}

	if summary.TechnicalScore < g.cfg.HighThreshold {
		plan = append(plan, entity.ImprovementArea{
			Area:     "Technical Knowledge",
			Priority: priorityFor(summary.TechnicalScore, g.cfg),
			Actions: []string{
				"Review the core concepts the interviewer expected in each answer",
				"Practice explaining fundamentals to a non-expert",
				"Work through one applied problem per day in your target domain",
			},
			Resources: []string{
				"Official documentation for your target stack",
				"Interview preparation question banks for your domain",
			},
		})
	}

	avgFillers := float64(stats.TotalFillerWords) / float64(len(history))
	if stats.TotalFillerWords > g.cfg.FillerTotalMax || avgFillers > g.cfg.FillerAvgPerTurn {
		plan = append(plan, entity.ImprovementArea{
			Area:     "Filler Words",
			Priority: entity.PriorityMedium,
			Actions: []string{
				"Replace filler words with deliberate pauses",
				"Slow down your speaking pace to reduce verbal tics",
			},
			Resources: []string{
				"Speech pacing drills",
			},
		})
	}

	if len(plan) == 0 {
		plan = append(plan, entity.ImprovementArea{
			Area:     "Maintenance",
			Priority: entity.PriorityLow,
			Actions: []string{
				"Keep practicing at the current cadence to retain your level",
				"Attempt questions one experience level above your current one",
			},
			Resources: []string{
				"Mock interviews with peers",
			},
		})
	}

	return plan
}

// recommendations flattens the plan's leading actions plus per-answer
// analyzer suggestions into a deduplicated, capped list.
func (g *Generator) recommendations(plan []entity.ImprovementArea, history []entity.Feedback) []string {
	seen := make(map[string]struct{})
	var out []string

	add := func(s string) {
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	for _, area := range plan {
		if len(area.Actions) > 0 {
			add(area.Actions[0])
		}
	}

	for _, fb := range history {
		for _, s := range fb.Communication.Suggestions {
			add(s)
		}
		for _, s := range fb.Technical.Suggestions {
			add(s)
		}
	}

	if len(out) > g.cfg.MaxRecommendations {
		out = out[:g.cfg.MaxRecommendations]
	}

	return out
}

func priorityFor(score float64, cfg config.ReportConfig) entity.Priority {
	switch {
	case score < cfg.LowThreshold:
		return entity.PriorityHigh
	case score < cfg.HighThreshold:
		return entity.PriorityMedium
	default:
		return entity.PriorityLow
	}
}

// mentionedConcepts returns the distinct matched concepts across the
// session, in first-mention order.
func mentionedConcepts(history []entity.Feedback) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, fb := range history {
		for _, c := range fb.Technical.MatchedConcepts {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}

func joinLimited(items []string, limit int) string {
	if len(items) > limit {
		items = items[:limit]
	}
	joined := ""
	for i, item := range items {
		if i > 0 {
			joined += ", "
		}
		joined += item
	}
	return joined
}
