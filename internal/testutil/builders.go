package testutil

import (
	"time"

	"github.com/akyairhashvil/spiritualpath/internal/models"
	"github.com/akyairhashvil/spiritualpath/internal/util"
)

// SessionBuilder provides fluent API for creating test sessions.
type SessionBuilder struct {
	session models.Session
}

func NewSession() *SessionBuilder {
	return &SessionBuilder{
		session: models.Session{
			UserID:          "user123",
			DurationSeconds: 300,
			CompletedAt:     time.Date(2026, 4, 15, 7, 30, 0, 0, time.UTC),
		},
	}
}

func (b *SessionBuilder) WithUser(id string) *SessionBuilder {
	b.session.UserID = id
	return b
}

func (b *SessionBuilder) WithDuration(seconds int) *SessionBuilder {
	b.session.DurationSeconds = seconds
	return b
}

func (b *SessionBuilder) WithNotes(notes string) *SessionBuilder {
	b.session.Notes = &notes
	b.session.Tags = util.NoteTags(notes)
	return b
}

func (b *SessionBuilder) WithGuided(id string) *SessionBuilder {
	b.session.GuidedID = &id
	return b
}

func (b *SessionBuilder) CompletedAt(t time.Time) *SessionBuilder {
	b.session.CompletedAt = t
	return b
}

func (b *SessionBuilder) Build() models.Session {
	return b.session
}
