package database

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/akyairhashvil/spiritualpath/internal/testutil"
	"github.com/google/go-cmp/cmp"
)

func TestExportImportSessions(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, ctx)
	base := time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC)
	for i, note := range []string{"first #calm", "", "third"} {
		b := testutil.NewSession().WithDuration(300 + 60*i).CompletedAt(base.Add(time.Duration(i) * time.Hour))
		if note != "" {
			b = b.WithNotes(note)
		}
		if i == 1 {
			b = b.WithGuided("breathing")
		}
		if _, err := db.AddSession(ctx, b.Build()); err != nil {
			t.Fatalf("AddSession failed: %v", err)
		}
	}

	payload, err := db.ExportSessions(ctx, "user123")
	if err != nil {
		t.Fatalf("ExportSessions failed: %v", err)
	}
	var export SessionExport
	if err := json.Unmarshal(payload, &export); err != nil {
		t.Fatalf("json.Unmarshal failed: %v", err)
	}
	if export.Version != exportVersion || len(export.Sessions) != 3 {
		t.Fatalf("unexpected export header %+v", export)
	}

	other := setupTestDB(t, ctx)
	n, err := other.ImportSessions(ctx, payload)
	if err != nil {
		t.Fatalf("ImportSessions failed: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 imported, got %d", n)
	}
	original, _ := db.GetSessionsForUser(ctx, "user123", 0)
	imported, err := other.GetSessionsForUser(ctx, "user123", 0)
	if err != nil {
		t.Fatalf("GetSessionsForUser failed: %v", err)
	}
	if diff := cmp.Diff(original, imported); diff != "" {
		t.Fatalf("imported sessions mismatch (-want +got):\n%s", diff)
	}

	again, err := other.ImportSessions(ctx, payload)
	if err != nil {
		t.Fatalf("second ImportSessions failed: %v", err)
	}
	if again != 0 {
		t.Fatalf("expected duplicate import to add nothing, got %d", again)
	}
}

func TestImportSessionsRejectsInvalidPayload(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, ctx)

	if _, err := db.ImportSessions(ctx, []byte("{not json")); err == nil {
		t.Fatalf("expected error for malformed JSON")
	}
	if _, err := db.ImportSessions(ctx, []byte(`{"version": 99, "sessions": []}`)); err == nil {
		t.Fatalf("expected error for future version")
	}

	bad := `{"version":1,"sessions":[
		{"id":"ok","userId":"u","duration":60,"completedAt":"2026-01-01T00:00:00Z"},
		{"id":"bad","userId":"u","duration":0,"completedAt":"2026-01-01T00:00:00Z"}]}`
	_, err := db.ImportSessions(ctx, []byte(bad))
	if !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
	if _, err := db.GetSession(ctx, "ok"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected nothing imported after validation failure, got %v", err)
	}
}
