package report

import (
	"fmt"
	"strings"

	"github.com/vocaprep/interview-engine/internal/entity"
)

// Render flattens a report into the plain text body consumed by the
// export formatters.
func Render(rep *entity.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Session: %s\n", rep.SessionID)
	fmt.Fprintf(&b, "Domain: %s\n", rep.DomainID)
	fmt.Fprintf(&b, "Date: %s\n\n", rep.Date.Format("2006-01-02 15:04 UTC"))

	b.WriteString("Summary\n")
	fmt.Fprintf(&b, "  Overall score: %.0f%%\n", rep.Summary.OverallScore*100)
	fmt.Fprintf(&b, "  Communication: %.0f%%\n", rep.Summary.CommunicationScore*100)
	fmt.Fprintf(&b, "  Technical: %.0f%%\n", rep.Summary.TechnicalScore*100)
	fmt.Fprintf(&b, "  Questions answered: %d\n\n", rep.Summary.TotalQuestions)

	b.WriteString("Statistics\n")
	fmt.Fprintf(&b, "  Filler words: %d\n", rep.Statistics.TotalFillerWords)
	fmt.Fprintf(&b, "  Average clarity: %.0f%%\n", rep.Statistics.AvgClarity*100)
	fmt.Fprintf(&b, "  Sessions completed: %d\n\n", rep.Statistics.SessionsCompleted)

	writeList(&b, "Strengths", rep.Strengths)
	writeList(&b, "Areas to improve", rep.Weaknesses)

	if len(rep.ImprovementPlan) > 0 {
		b.WriteString("Improvement plan\n")
		for _, area := range rep.ImprovementPlan {
			fmt.Fprintf(&b, "  %s (%s priority)\n", area.Area, area.Priority)
			for _, action := range area.Actions {
				fmt.Fprintf(&b, "    - %s\n", action)
			}
			for _, res := range area.Resources {
				fmt.Fprintf(&b, "    * %s\n", res)
			}
		}
		b.WriteString("\n")
	}

	writeList(&b, "Recommendations", rep.Recommendations)

	return strings.TrimRight(b.String(), "\n")
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString(title + "\n")
	for _, item := range items {
		fmt.Fprintf(b, "  - %s\n", item)
	}
	b.WriteString("\n")
}
