package database

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/akyairhashvil/spiritualpath/internal/models"
	"github.com/akyairhashvil/spiritualpath/internal/util"
	"github.com/google/uuid"
)

// AddSession validates and stores a completed session. A missing ID is
// generated, a zero CompletedAt becomes now, and tags are derived from the
// notes. The stored record is returned.
func (d *Database) AddSession(ctx context.Context, s models.Session) (models.Session, error) {
	s.UserID = strings.TrimSpace(s.UserID)
	if s.UserID == "" {
		return models.Session{}, wrapSessionErr("add", "", invalidSession("user id is required"))
	}
	if s.DurationSeconds <= 0 {
		return models.Session{}, wrapSessionErr("add", "", invalidSession("duration must be positive"))
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.CompletedAt.IsZero() {
		s.CompletedAt = time.Now()
	}
	s.CompletedAt = s.CompletedAt.UTC().Truncate(time.Second)
	if s.Notes != nil && strings.TrimSpace(*s.Notes) == "" {
		s.Notes = nil
	}
	s.Tags = util.NoteTags(util.Deref(s.Notes))

	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	_, err := d.DB.ExecContext(ctx, `
		INSERT INTO sessions (id, user_id, duration_seconds, notes, guided_id, tags, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.UserID, s.DurationSeconds, toNullableArg(s.Notes), toNullableArg(s.GuidedID),
		util.TagsToJSON(s.Tags), s.CompletedAt)
	if err != nil {
		return models.Session{}, wrapSessionErr("add", s.ID, err)
	}
	return s, nil
}

// GetSession loads one session by ID.
func (d *Database) GetSession(ctx context.Context, id string) (models.Session, error) {
	query, args := NewSessionQuery().WhereID(id).Build()
	sessions, err := d.querySessions(ctx, query, args...)
	if err != nil {
		return models.Session{}, wrapSessionErr("get", id, err)
	}
	if len(sessions) == 0 {
		return models.Session{}, wrapSessionErr("get", id, ErrNotFound)
	}
	return sessions[0], nil
}

// GetSessionsForUser lists a user's sessions newest first. A limit of zero
// or less returns all of them.
func (d *Database) GetSessionsForUser(ctx context.Context, userID string, limit int) ([]models.Session, error) {
	query, args := NewSessionQuery().WhereUser(userID).Limit(limit).Build()
	sessions, err := d.querySessions(ctx, query, args...)
	if err != nil {
		return nil, wrapSessionErr("list", "", err)
	}
	return sessions, nil
}

// GetSessionsByTag lists a user's sessions whose notes carry #tag.
func (d *Database) GetSessionsByTag(ctx context.Context, userID, tag string) ([]models.Session, error) {
	tag = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(tag), "#"))
	if tag == "" {
		return d.GetSessionsForUser(ctx, userID, 0)
	}
	query, args := NewSessionQuery().WhereUser(userID).WhereTagged(tag).Build()
	candidates, err := d.querySessions(ctx, query, args...)
	if err != nil {
		return nil, wrapSessionErr("list tagged", "", err)
	}
	sessions := make([]models.Session, 0, len(candidates))
	for _, s := range candidates {
		if util.HasTag(s.Tags, tag) {
			sessions = append(sessions, s)
		}
	}
	return sessions, nil
}

// GetSessionStats aggregates a user's practice.
func (d *Database) GetSessionStats(ctx context.Context, userID string) (models.SessionStats, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()

	stats := models.SessionStats{UserID: userID}
	err := d.DB.QueryRowContext(ctx, `
		SELECT COUNT(1), COALESCE(SUM(duration_seconds), 0), COALESCE(MAX(duration_seconds), 0)
		FROM sessions WHERE user_id = ?`, userID).
		Scan(&stats.Count, &stats.TotalSeconds, &stats.LongestSeconds)
	if err != nil {
		return models.SessionStats{}, wrapSessionErr("stats", "", err)
	}
	if stats.Count == 0 {
		return stats, nil
	}

	var last time.Time
	err = d.DB.QueryRowContext(ctx, `
		SELECT completed_at FROM sessions WHERE user_id = ?
		ORDER BY completed_at DESC LIMIT 1`, userID).Scan(&last)
	if err != nil {
		return models.SessionStats{}, wrapSessionErr("stats", "", err)
	}
	last = last.UTC()
	stats.LastCompletedAt = &last
	return stats, nil
}

// DeleteSession removes a session. Deleting an unknown ID reports ErrNotFound.
func (d *Database) DeleteSession(ctx context.Context, id string) error {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	res, err := d.DB.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return wrapSessionErr("delete", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrapSessionErr("delete", id, err)
	}
	if n == 0 {
		return wrapSessionErr("delete", id, ErrNotFound)
	}
	return nil
}

func (d *Database) querySessions(ctx context.Context, query string, args ...interface{}) ([]models.Session, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	rows, err := d.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := []models.Session{}
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSession(row rowScanner) (models.Session, error) {
	var (
		s        models.Session
		notes    sql.NullString
		guidedID sql.NullString
		tags     sql.NullString
	)
	if err := row.Scan(&s.ID, &s.UserID, &s.DurationSeconds, &notes, &guidedID, &tags, &s.CompletedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, ErrNotFound
		}
		return models.Session{}, err
	}
	s.CompletedAt = s.CompletedAt.UTC()
	s.Notes = fromNullString(notes)
	s.GuidedID = fromNullString(guidedID)
	s.Tags = util.JSONToTags(tags.String)
	return s, nil
}
