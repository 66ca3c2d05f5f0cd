package entity

import "time"

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// ReportSummary aggregates per-question scores across the session.
type ReportSummary struct {
	OverallScore       float64 `json:"overall_score"`
	CommunicationScore float64 `json:"communication_score"`
	TechnicalScore     float64 `json:"technical_score"`
	TotalQuestions     int     `json:"total_questions"`
}

// ReportStatistics holds the raw counters behind the summary.
type ReportStatistics struct {
	TotalFillerWords  int     `json:"total_filler_words"`
	AvgClarity        float64 `json:"avg_clarity"`
	SessionsCompleted int64   `json:"sessions_completed"`
}

// ImprovementArea is one entry of the prioritized improvement plan.
type ImprovementArea struct {
	Area      string   `json:"area"`
	Priority  Priority `json:"priority"`
	Actions   []string `json:"actions"`
	Resources []string `json:"resources"`
}

// Report is the end-of-session aggregate. Computed once from the full
// feedback history and read-only thereafter.
type Report struct {
	SessionID       string            `json:"session_id"`
	DomainID        string            `json:"domain_id"`
	Date            time.Time         `json:"date"`
	Summary         ReportSummary     `json:"summary"`
	Statistics      ReportStatistics  `json:"statistics"`
	Strengths       []string          `json:"strengths"`
	Weaknesses      []string          `json:"weaknesses"`
	ImprovementPlan []ImprovementArea `json:"improvement_plan"`
	Recommendations []string          `json:"recommendations"`
}

type ReportFormat string

const (
	FormatMarkdown ReportFormat = "md"
	FormatPDF      ReportFormat = "pdf"
	FormatDOCX     ReportFormat = "docx"
)
