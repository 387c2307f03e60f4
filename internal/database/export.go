package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/akyairhashvil/spiritualpath/internal/models"
	"github.com/akyairhashvil/spiritualpath/internal/util"
)

const exportVersion = 1

// SessionExport is the portable JSON form of a user's history.
type SessionExport struct {
	Version    int              `json:"version"`
	ExportedAt time.Time        `json:"exportedAt"`
	UserID     string           `json:"userId"`
	Sessions   []models.Session `json:"sessions"`
}

// ExportSessions serialises every session of userID, newest first.
func (d *Database) ExportSessions(ctx context.Context, userID string) ([]byte, error) {
	sessions, err := d.GetSessionsForUser(ctx, userID, 0)
	if err != nil {
		return nil, err
	}
	export := SessionExport{
		Version:    exportVersion,
		ExportedAt: time.Now().UTC().Truncate(time.Second),
		UserID:     userID,
		Sessions:   sessions,
	}
	return json.MarshalIndent(export, "", "  ")
}

// ImportSessions loads an export. Sessions whose ID already exists are
// skipped; the number of new rows is returned. Every session is validated
// before anything is written.
func (d *Database) ImportSessions(ctx context.Context, payload []byte) (int, error) {
	var export SessionExport
	if err := json.Unmarshal(payload, &export); err != nil {
		return 0, fmt.Errorf("import sessions: %w", err)
	}
	if export.Version > exportVersion {
		return 0, fmt.Errorf("import sessions: unsupported export version %d", export.Version)
	}
	for i, s := range export.Sessions {
		switch {
		case s.ID == "":
			return 0, fmt.Errorf("import session %d: %w", i, invalidSession("id is required"))
		case s.UserID == "":
			return 0, fmt.Errorf("import session %s: %w", s.ID, invalidSession("user id is required"))
		case s.DurationSeconds <= 0:
			return 0, fmt.Errorf("import session %s: %w", s.ID, invalidSession("duration must be positive"))
		}
	}

	imported := 0
	err := d.WithTx(ctx, func(tx *sql.Tx) error {
		for _, s := range export.Sessions {
			res, err := tx.ExecContext(ctx, `
				INSERT OR IGNORE INTO sessions
				(id, user_id, duration_seconds, notes, guided_id, tags, completed_at)
				VALUES (?, ?, ?, ?, ?, ?, ?)`,
				s.ID, s.UserID, s.DurationSeconds,
				nullableString(util.Deref(s.Notes)), nullableString(util.Deref(s.GuidedID)),
				util.TagsToJSON(util.NoteTags(util.Deref(s.Notes))),
				s.CompletedAt.UTC().Truncate(time.Second),
			)
			if err != nil {
				return fmt.Errorf("import session %s: %w", s.ID, err)
			}
			if n, err := res.RowsAffected(); err == nil {
				imported += int(n)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return imported, nil
}
