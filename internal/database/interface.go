package database

import (
	"context"

	"github.com/akyairhashvil/spiritualpath/internal/models"
)

// SessionRepository defines session-related database operations.
type SessionRepository interface {
	AddSession(ctx context.Context, s models.Session) (models.Session, error)
	GetSession(ctx context.Context, id string) (models.Session, error)
	GetSessionsForUser(ctx context.Context, userID string, limit int) ([]models.Session, error)
	GetSessionsByTag(ctx context.Context, userID, tag string) ([]models.Session, error)
	GetSessionStats(ctx context.Context, userID string) (models.SessionStats, error)
	DeleteSession(ctx context.Context, id string) error
}

// SettingsRepository defines key/value settings operations.
type SettingsRepository interface {
	GetSetting(ctx context.Context, key string) (string, bool)
	SetSetting(ctx context.Context, key, value string) error
}

// Repository combines all repository interfaces.
type Repository interface {
	SessionRepository
	SettingsRepository
}

var _ Repository = (*Database)(nil)
