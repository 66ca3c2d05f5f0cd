package session

import (
	"sync"
	"time"

	"github.com/vocaprep/interview-engine/internal/entity"
)

// sessionLocks serializes turns within a single session while leaving
// unrelated sessions fully concurrent.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{
		locks: make(map[string]*sync.Mutex),
	}
}

func (l *sessionLocks) lock(sessionID string) func() {
	l.mu.Lock()
	m, ok := l.locks[sessionID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[sessionID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// forget drops the lock of a terminal session. Callers still holding the
// mutex keep a valid reference; new callers get a fresh one and fail on
// the status check instead.
func (l *sessionLocks) forget(sessionID string) {
	l.mu.Lock()
	delete(l.locks, sessionID)
	l.mu.Unlock()
}

// combineFeedback merges the analyzer results into a single feedback
// entry. The overall score weighs both channels equally.
func combineFeedback(question entity.Question, transcript entity.Transcript, comm entity.CommunicationResult, tech entity.TechnicalResult) entity.Feedback {
	return entity.Feedback{
		Question:      question,
		Transcript:    transcript,
		Communication: comm,
		Technical:     tech,
		OverallScore:  (comm.Score + tech.Score) / 2,
		CreatedAt:     time.Now().UTC(),
	}
}
