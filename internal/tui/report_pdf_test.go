package tui

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/akyairhashvil/spiritualpath/internal/models"
	"github.com/akyairhashvil/spiritualpath/internal/testutil"
)

func TestGeneratePDFReport(t *testing.T) {
	last := time.Date(2026, 4, 15, 7, 30, 0, 0, time.UTC)
	data := ReportData{
		UserID:      "tester",
		GeneratedAt: last.Add(time.Hour),
		Stats: models.SessionStats{
			UserID:          "tester",
			Count:           2,
			TotalSeconds:    900,
			LongestSeconds:  600,
			LastCompletedAt: &last,
		},
		Sessions: []models.Session{
			testutil.NewSession().WithUser("tester").WithDuration(600).WithGuided("loving-kindness").WithNotes("warm, café after").CompletedAt(last).Build(),
			testutil.NewSession().WithUser("tester").CompletedAt(last.Add(-24 * time.Hour)).Build(),
		},
	}

	path := filepath.Join(t.TempDir(), "nested", ReportFileName(data.GeneratedAt))
	out, err := GeneratePDFReport(path, data)
	if err != nil {
		t.Fatalf("GeneratePDFReport failed: %v", err)
	}
	if out != path {
		t.Fatalf("expected %s, got %s", path, out)
	}
	raw, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !bytes.HasPrefix(raw, []byte("%PDF-")) {
		t.Fatalf("expected PDF header")
	}
}

func TestGeneratePDFReportEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")
	if _, err := GeneratePDFReport(path, ReportData{UserID: "tester", GeneratedAt: time.Now()}); err != nil {
		t.Fatalf("GeneratePDFReport failed: %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Fatalf("expected non-empty report, err=%v", err)
	}
}

func TestReportFileName(t *testing.T) {
	at := time.Date(2026, 4, 15, 23, 0, 0, 0, time.UTC)
	if got := ReportFileName(at); got != "spiritualpath-report-2026-04-15.pdf" {
		t.Fatalf("unexpected name %s", got)
	}
}
