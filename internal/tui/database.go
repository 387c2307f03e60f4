package tui

import (
	"context"

	"github.com/akyairhashvil/spiritualpath/internal/models"
)

// Database defines the persistence methods the TUI requires.
type Database interface {
	GetSetting(ctx context.Context, key string) (string, bool)
	SetSetting(ctx context.Context, key, value string) error

	AddSession(ctx context.Context, s models.Session) (models.Session, error)
	GetSessionsForUser(ctx context.Context, userID string, limit int) ([]models.Session, error)
	GetSessionStats(ctx context.Context, userID string) (models.SessionStats, error)
	DeleteSession(ctx context.Context, id string) error
}
