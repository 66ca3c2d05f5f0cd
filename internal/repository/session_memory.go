package repository

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/vocaprep/interview-engine/internal/entity"
)

// SessionRepository defines the interface for session storage. Sessions
// live for the duration of the process; completed sessions are retained
// for a bounded window so report reads stay idempotent.
//
// Stored sessions are replaced wholesale on Update and never mutated in
// place, and Get hands out isolated snapshots, so readers never observe
// a session mid-mutation.
type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	// Get returns a snapshot of the session. Mutating the result does
	// not affect the stored state until it is passed back to Update.
	Get(ctx context.Context, sessionID string) (*entity.Session, error)
	Update(ctx context.Context, session *entity.Session) error
	// ClaimCompletion reserves the next slot in the process-wide
	// completion sequence and returns it. Each claim is handed out once.
	ClaimCompletion() int64
	// MarkCompleted stores the terminal snapshot with the archive TTL.
	MarkCompleted(ctx context.Context, session *entity.Session) error
	SessionsCompleted() int64
	ResetCompleted()
}

// SessionMemory is the in-memory SessionRepository. Active sessions never
// expire; completed ones are archived with completedTTL and evicted by the
// cache janitor.
type SessionMemory struct {
	sessions     *cache.Cache
	completedTTL time.Duration
	completed    atomic.Int64
}

func NewSessionMemory(completedTTL time.Duration) *SessionMemory {
	return &SessionMemory{
		sessions:     cache.New(cache.NoExpiration, completedTTL/2+time.Minute),
		completedTTL: completedTTL,
	}
}

func (r *SessionMemory) Create(_ context.Context, session *entity.Session) error {
	if err := r.sessions.Add(session.ID, session, cache.NoExpiration); err != nil {
		return fmt.Errorf("session %s already exists", session.ID)
	}
	return nil
}

func (r *SessionMemory) Get(_ context.Context, sessionID string) (*entity.Session, error) {
	v, ok := r.sessions.Get(sessionID)
	if !ok {
		return nil, entity.ErrSessionNotFound
	}
	// Hand out a snapshot so concurrent readers never share the slices a
	// writer is about to replace through Update.
	return v.(*entity.Session).Clone(), nil
}

func (r *SessionMemory) Update(_ context.Context, session *entity.Session) error {
	if _, ok := r.sessions.Get(session.ID); !ok {
		return entity.ErrSessionNotFound
	}
	r.sessions.Set(session.ID, session, cache.NoExpiration)
	return nil
}

func (r *SessionMemory) ClaimCompletion() int64 {
	return r.completed.Add(1)
}

func (r *SessionMemory) MarkCompleted(_ context.Context, session *entity.Session) error {
	if _, ok := r.sessions.Get(session.ID); !ok {
		return entity.ErrSessionNotFound
	}
	r.sessions.Set(session.ID, session, r.completedTTL)
	return nil
}

func (r *SessionMemory) SessionsCompleted() int64 {
	return r.completed.Load()
}

// ResetCompleted zeroes the cross-session counter. Administrative use only.
func (r *SessionMemory) ResetCompleted() {
	r.completed.Store(0)
}
