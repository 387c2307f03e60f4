package util

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLoggerWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	logger, err := NewLogger(path, "debug")
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	LogError(logger, "record session", errors.New("disk full"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "disk full") {
		t.Fatalf("expected error in log, got %q", data)
	}
}

func TestNewLoggerRejectsBadLevel(t *testing.T) {
	if _, err := NewLogger(filepath.Join(t.TempDir(), "x.log"), "loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestNewLoggerEmptyPathIsNop(t *testing.T) {
	logger, err := NewLogger("", "")
	if err != nil || logger == nil {
		t.Fatalf("expected nop logger, got %v %v", logger, err)
	}
	LogError(logger, "ignored", errors.New("x"))
	LogError(nil, "ignored", errors.New("x"))
}
