package database

import (
	"context"
	"time"

	"github.com/akyairhashvil/spiritualpath/internal/models"
	"github.com/akyairhashvil/spiritualpath/internal/timer"
)

// SessionAdder is the part of SessionRepository a SessionSink needs.
type SessionAdder interface {
	AddSession(ctx context.Context, s models.Session) (models.Session, error)
}

// SessionSink records timer completions as sessions for one user.
type SessionSink struct {
	Repo   SessionAdder
	UserID string
	// GuidedID tags sessions started from the guided catalog.
	GuidedID string
	Now      func() time.Time
}

var _ timer.SessionRecorder = (*SessionSink)(nil)

func (s *SessionSink) RecordSession(ctx context.Context, elapsedSeconds int, note string) error {
	session := models.Session{
		UserID:          s.UserID,
		DurationSeconds: elapsedSeconds,
	}
	if note != "" {
		session.Notes = &note
	}
	if s.GuidedID != "" {
		id := s.GuidedID
		session.GuidedID = &id
	}
	if s.Now != nil {
		session.CompletedAt = s.Now()
	}
	_, err := s.Repo.AddSession(ctx, session)
	return err
}
