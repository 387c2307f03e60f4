package models

import "time"

// Session is a completed meditation, as handed to the session-recording sink.
type Session struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	DurationSeconds int       `json:"duration"`
	CompletedAt     time.Time `json:"completedAt"`
	Notes           *string   `json:"notes,omitempty"`
	GuidedID        *string   `json:"guidedId,omitempty"`
	Tags            []string  `json:"tags,omitempty"`
}

// Minutes returns the session length rounded down to whole minutes.
func (s Session) Minutes() int {
	return s.DurationSeconds / 60
}

// SessionStats summarises a user's practice.
type SessionStats struct {
	UserID          string     `json:"userId"`
	Count           int        `json:"count"`
	TotalSeconds    int        `json:"totalSeconds"`
	LongestSeconds  int        `json:"longestSeconds"`
	LastCompletedAt *time.Time `json:"lastCompletedAt,omitempty"`
}

// AverageSeconds is the mean session length, zero when there are no sessions.
func (s SessionStats) AverageSeconds() int {
	if s.Count == 0 {
		return 0
	}
	return s.TotalSeconds / s.Count
}

// GuidedMeditation is a catalog entry that presets the timer.
type GuidedMeditation struct {
	ID              string
	Title           string
	Description     string
	DurationSeconds int
}
