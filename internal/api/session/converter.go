package session

import "github.com/vocaprep/interview-engine/internal/entity"

// toSessionDTO converts Session entity to SessionDTO
func toSessionDTO(session *entity.Session) *entity.SessionDTO {
	return &entity.SessionDTO{
		ID:              session.ID,
		DomainID:        session.DomainID,
		ExperienceLevel: session.ExperienceLevel,
		Status:          session.Status,
		QuestionIndex:   session.QuestionIndex,
		AnsweredCount:   len(session.Answers),
		CreatedAt:       session.CreatedAt,
		UpdatedAt:       session.UpdatedAt,
	}
}
