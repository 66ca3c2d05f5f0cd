package entity

// CommunicationResult scores delivery quality of a single answer.
type CommunicationResult struct {
	Score           float64  `json:"score"`
	FillerWordCount int      `json:"filler_word_count"`
	FillerWords     []string `json:"filler_words"`
	ClarityScore    float64  `json:"clarity_score"`
	Suggestions     []string `json:"suggestions"`
}

// TechnicalResult scores content correctness and relevance of a single
// answer against the question and the domain reference concepts.
type TechnicalResult struct {
	Score           float64  `json:"score"`
	MatchedConcepts []string `json:"matched_concepts"`
	Suggestions     []string `json:"suggestions"`
}
