package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/akyairhashvil/spiritualpath/internal/util"
)

func TestSessionSinkRecordsCompletion(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, ctx)
	at := time.Date(2026, 4, 15, 7, 0, 0, 0, time.UTC)
	sink := &SessionSink{Repo: db, UserID: "user123", GuidedID: "body-scan", Now: func() time.Time { return at }}

	if err := sink.RecordSession(ctx, 900, "settled #body"); err != nil {
		t.Fatalf("RecordSession failed: %v", err)
	}
	sessions, err := db.GetSessionsForUser(ctx, "user123", 0)
	if err != nil {
		t.Fatalf("GetSessionsForUser failed: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
	s := sessions[0]
	if s.DurationSeconds != 900 || !s.CompletedAt.Equal(at) {
		t.Fatalf("unexpected session %+v", s)
	}
	if util.Deref(s.GuidedID) != "body-scan" || util.Deref(s.Notes) != "settled #body" {
		t.Fatalf("unexpected guided id or notes: %+v", s)
	}
	if !util.HasTag(s.Tags, "body") {
		t.Fatalf("expected body tag, got %v", s.Tags)
	}
}

func TestSessionSinkEmptyNoteIsNull(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, ctx)
	sink := &SessionSink{Repo: db, UserID: "user123"}
	if err := sink.RecordSession(ctx, 300, ""); err != nil {
		t.Fatalf("RecordSession failed: %v", err)
	}
	sessions, err := db.GetSessionsForUser(ctx, "user123", 1)
	if err != nil {
		t.Fatalf("GetSessionsForUser failed: %v", err)
	}
	if len(sessions) != 1 || sessions[0].Notes != nil || sessions[0].GuidedID != nil {
		t.Fatalf("expected session without notes or guided id, got %+v", sessions)
	}
}

func TestSessionSinkSurfacesValidationError(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, ctx)
	sink := &SessionSink{Repo: db}
	if err := sink.RecordSession(ctx, 300, ""); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession for missing user, got %v", err)
	}
}
