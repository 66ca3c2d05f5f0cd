package entity

import (
	"fmt"
	"time"
)

type SessionStatus string

// Session status represents the current state of the interview session workflow
const (
	SessionStatusCreated   SessionStatus = "CREATED"   // Session allocated, no question issued yet
	SessionStatusActive    SessionStatus = "ACTIVE"    // Interview in progress, questions being answered
	SessionStatusCompleted SessionStatus = "COMPLETED" // Session ended, report available
)

type ExperienceLevel string

const (
	LevelFresher      ExperienceLevel = "fresher"
	LevelIntermediate ExperienceLevel = "intermediate"
	LevelSenior       ExperienceLevel = "senior"
)

func (l ExperienceLevel) Validate() error {
	switch l {
	case LevelFresher, LevelIntermediate, LevelSenior:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLevel, string(l))
	}
}

// Domain is a static catalog entry: an interview area with the reference
// concepts an ideal answer should touch and the template question pools
// used when the generation service is unavailable.
type Domain struct {
	ID                string                       `json:"id"`
	Name              string                       `json:"name"`
	Description       string                       `json:"description"`
	ReferenceConcepts []string                     `json:"reference_concepts"`
	QuestionTemplates map[ExperienceLevel][]string `json:"question_templates"`
	FollowupTemplates []string                     `json:"followup_templates,omitempty"`
}

// TemplatesFor returns the template pool for the level, falling back to the
// fresher pool so every catalog domain can always issue a question.
func (d *Domain) TemplatesFor(level ExperienceLevel) []string {
	if pool, ok := d.QuestionTemplates[level]; ok && len(pool) > 0 {
		return pool
	}
	return d.QuestionTemplates[LevelFresher]
}

// Question is immutable once issued.
type Question struct {
	Text            string          `json:"text"`
	DomainID        string          `json:"domain_id"`
	ExperienceLevel ExperienceLevel `json:"experience_level"`
	SequenceNumber  int             `json:"sequence_number"`
	Generated       bool            `json:"generated"` // true when produced by the generation service
}

// Transcript is the normalized textual form of a spoken answer,
// derived once by the normalizer and immutable afterwards.
type Transcript struct {
	RawText   string   `json:"raw_text"`
	Tokens    []string `json:"normalized_tokens"`
	Sentences []string `json:"sentences"`
}

func (t *Transcript) Empty() bool {
	return len(t.Tokens) == 0
}

// Feedback is the per-question scored result combining delivery and
// content assessment. Immutable once produced.
type Feedback struct {
	Question      Question            `json:"question"`
	Transcript    Transcript          `json:"transcript"`
	Communication CommunicationResult `json:"communication"`
	Technical     TechnicalResult     `json:"technical"`
	OverallScore  float64             `json:"overall_score"`
	CreatedAt     time.Time           `json:"created_at"`
}

// Session is one end-to-end interview attempt. It is owned exclusively by
// the session usecase and mutated only by appending: QuestionIndex,
// AskedQuestions, Answers and FeedbackHistory grow monotonically, with
// QuestionIndex == len(AskedQuestions) at all times.
type Session struct {
	ID              string          `json:"session_id"`
	DomainID        string          `json:"domain_id"`
	ExperienceLevel ExperienceLevel `json:"experience_level"`
	Status          SessionStatus   `json:"session_status"`
	QuestionIndex   int             `json:"question_index"`
	AskedQuestions  []Question      `json:"asked_questions"`
	Answers         []Transcript    `json:"answers"`
	FeedbackHistory []Feedback      `json:"feedback_history"`
	Report          *Report         `json:"report,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Clone returns a read snapshot of the session. The append-only slice
// headers are copied; their elements and the report are immutable once
// produced, so sharing them between snapshots is safe.
func (s *Session) Clone() *Session {
	out := *s
	out.AskedQuestions = append([]Question(nil), s.AskedQuestions...)
	out.Answers = append([]Transcript(nil), s.Answers...)
	out.FeedbackHistory = append([]Feedback(nil), s.FeedbackHistory...)
	return &out
}

// CurrentQuestion returns the most recently issued question, which is the
// one the next submitted answer is evaluated against.
func (s *Session) CurrentQuestion() (Question, bool) {
	if len(s.AskedQuestions) == 0 {
		return Question{}, false
	}
	return s.AskedQuestions[len(s.AskedQuestions)-1], true
}

// AwaitingAnswer reports whether an issued question has no answer yet.
func (s *Session) AwaitingAnswer() bool {
	return len(s.Answers) < len(s.AskedQuestions)
}
