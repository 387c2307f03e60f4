// Package database persists completed meditation sessions and user settings
// in a local SQLite file.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const defaultDBTimeout = 5 * time.Second

// Database wraps the SQLite handle.
type Database struct {
	DB     *sql.DB
	dbFile string
}

// Open opens (creating if needed) the database at path and brings the schema
// up to date.
func Open(ctx context.Context, path string) (*Database, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=on", path)
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A single writer keeps SQLite from returning SQLITE_BUSY under the TUI
	// and the recorder writing at the same time.
	conn.SetMaxOpenConns(1)

	d := &Database{DB: conn, dbFile: path}
	pingCtx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := d.createTables(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}
	if err := d.migrate(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return d, nil
}

// Path returns the database file location.
func (d *Database) Path() string {
	return d.dbFile
}

// Close releases the connection.
func (d *Database) Close() error {
	if d == nil || d.DB == nil {
		return nil
	}
	return d.DB.Close()
}

func (d *Database) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := ctx.Deadline(); ok {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// WithTx runs fn in a transaction, rolling back when fn returns an error.
func (d *Database) WithTx(ctx context.Context, fn func(*sql.Tx) error) error {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()

	tx, err := d.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (d *Database) createTables(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			duration_seconds INTEGER NOT NULL CHECK (duration_seconds > 0),
			notes TEXT,
			completed_at DATETIME NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_user_completed
			ON sessions (user_id, completed_at DESC);`,
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT
		);`,
	}

	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	for _, query := range queries {
		if _, err := d.DB.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("create tables: %w", err)
		}
	}
	return nil
}

// migrate adds columns introduced after the first schema. It is safe to run
// repeatedly.
func (d *Database) migrate(ctx context.Context) error {
	columns := []struct {
		table, column, decl string
	}{
		{"sessions", "guided_id", "TEXT"},
		{"sessions", "tags", "TEXT"},
	}
	for _, c := range columns {
		if err := d.ensureColumn(ctx, c.table, c.column, c.decl); err != nil {
			return fmt.Errorf("migrate %s.%s: %w", c.table, c.column, err)
		}
	}
	return nil
}

func (d *Database) ensureColumn(ctx context.Context, table, column, decl string) error {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()

	exists, err := d.hasColumn(ctx, table, column)
	if err != nil || exists {
		return err
	}
	_, err = d.DB.ExecContext(ctx, fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, decl))
	return err
}

func (d *Database) hasColumn(ctx context.Context, table, column string) (bool, error) {
	rows, err := d.DB.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid       int
			name      string
			ctype     string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notNull, &dfltValue, &pk); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}
