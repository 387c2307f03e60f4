package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
)

func setupTestDB(t *testing.T, ctx context.Context) *Database {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	db, err := Open(ctx, dbPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("db close failed: %v", err)
		}
	})
	return db
}

func TestOpenTwiceKeepsSchema(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, ctx)
	if err := db.Close(); err != nil {
		t.Fatalf("db close failed: %v", err)
	}
	again, err := Open(ctx, db.Path())
	if err != nil {
		t.Fatalf("Open second run failed: %v", err)
	}
	defer again.Close()
	for _, col := range []string{"guided_id", "tags"} {
		ok, err := again.hasColumn(ctx, "sessions", col)
		if err != nil {
			t.Fatalf("hasColumn(%s) failed: %v", col, err)
		}
		if !ok {
			t.Fatalf("expected column %s after reopen", col)
		}
	}
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "dir", "sessions.db")
	db, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()
	if db.Path() != path {
		t.Fatalf("expected path %s, got %s", path, db.Path())
	}
}

func TestMigrateIdempotent(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, ctx)
	if err := db.migrate(ctx); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if err := db.migrate(ctx); err != nil {
		t.Fatalf("second migrate failed: %v", err)
	}
}

func TestMigrateUpgradesFirstSchema(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "old.db")
	raw, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("sql.Open failed: %v", err)
	}
	if _, err := raw.Exec(`CREATE TABLE sessions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		duration_seconds INTEGER NOT NULL,
		notes TEXT,
		completed_at DATETIME NOT NULL
	)`); err != nil {
		t.Fatalf("create old schema failed: %v", err)
	}
	if _, err := raw.Exec(`INSERT INTO sessions (id, user_id, duration_seconds, completed_at)
		VALUES ('old-1', 'user123', 600, '2025-01-01 08:00:00+00:00')`); err != nil {
		t.Fatalf("insert old row failed: %v", err)
	}
	raw.Close()

	db, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	s, err := db.GetSession(ctx, "old-1")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if s.GuidedID != nil || len(s.Tags) != 0 {
		t.Fatalf("expected empty guided id and tags on migrated row, got %+v", s)
	}
}

func TestWithTxRollback(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, ctx)
	err := db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "INSERT INTO settings (key, value) VALUES (?, ?)", "tx", "rollback"); err != nil {
			return err
		}
		return fmt.Errorf("force rollback")
	})
	if err == nil {
		t.Fatalf("expected error from WithTx")
	}

	var count int
	if err := db.DB.QueryRowContext(ctx, "SELECT COUNT(1) FROM settings WHERE key = ?", "tx").Scan(&count); err != nil {
		t.Fatalf("query count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected rollback to remove setting, got count %d", count)
	}
}

func TestOpErrorFormatting(t *testing.T) {
	err := wrapSessionErr("get", "abc", ErrNotFound)
	if got := err.Error(); got != "get session abc: not found" {
		t.Fatalf("unexpected message %q", got)
	}
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected errors.Is to match ErrNotFound")
	}
	err = wrapSessionErr("list", "", errors.New("boom"))
	if got := err.Error(); got != "list session: boom" {
		t.Fatalf("unexpected message %q", got)
	}
	if wrapSessionErr("add", "x", nil) != nil {
		t.Fatalf("expected nil for nil error")
	}
}
