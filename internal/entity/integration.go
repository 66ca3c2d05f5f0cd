package entity

// Wire types for the external model services consumed by the engine.

type ASRTranscribeResponse struct {
	Transcription string `json:"transcription"`
}

type GenerateQuestionRequest struct {
	DomainID        string          `json:"domain_id"`
	DomainName      string          `json:"domain_name"`
	ExperienceLevel ExperienceLevel `json:"experience_level"`
	// RecentAnswers is a bounded window of prior answer texts so
	// follow-ups stay contextual without unbounded prompt growth.
	RecentAnswers []string `json:"recent_answers,omitempty"`
}

type GenerateQuestionResponse struct {
	Question string `json:"question"`
}

type SimilarityRequest struct {
	Text       string   `json:"text"`
	Candidates []string `json:"candidates"`
}

// SimilarityResponse carries cosine similarities in [-1,1], one per
// candidate, in request order.
type SimilarityResponse struct {
	Scores []float64 `json:"scores"`
}
