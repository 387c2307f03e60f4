package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/akyairhashvil/spiritualpath/internal/config"
	"github.com/akyairhashvil/spiritualpath/internal/models"
	"github.com/akyairhashvil/spiritualpath/internal/util"
	"github.com/go-pdf/fpdf"
)

// ReportData is everything a practice report shows.
type ReportData struct {
	UserID      string
	GeneratedAt time.Time
	Stats       models.SessionStats
	Sessions    []models.Session
}

// GeneratePDFReport writes a practice summary and session log to path and
// returns the absolute path written.
func GeneratePDFReport(path string, data ReportData) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Meditation Report", true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Meditation Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, tr(fmt.Sprintf("%s  |  generated %s", data.UserID, data.GeneratedAt.Format("2006-01-02 15:04"))))
	pdf.Ln(12)

	st := data.Stats
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Summary")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
	summary := []string{
		FormatSessionCount(st.Count),
		"Total time: " + FormatDuration(secondsToDuration(st.TotalSeconds)),
		"Average: " + FormatDuration(secondsToDuration(st.AverageSeconds())),
		"Longest: " + FormatDuration(secondsToDuration(st.LongestSeconds)),
	}
	if st.LastCompletedAt != nil {
		summary = append(summary, "Last session: "+st.LastCompletedAt.Local().Format("2006-01-02 15:04"))
	}
	for _, line := range summary {
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Sessions")
	pdf.Ln(8)
	if len(data.Sessions) == 0 {
		pdf.SetFont("Arial", "I", 11)
		pdf.Cell(0, 6, "No sessions recorded.")
		pdf.Ln(6)
	} else {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(40, 7, "Completed", "B", 0, "L", false, 0, "")
		pdf.CellFormat(20, 7, "Length", "B", 0, "R", false, 0, "")
		pdf.CellFormat(0, 7, "Meditation", "B", 1, "L", false, 0, "")
		for _, s := range data.Sessions {
			pdf.SetFont("Arial", "", 10)
			kind := "Timer"
			if s.GuidedID != nil {
				if g, ok := config.FindGuided(*s.GuidedID); ok {
					kind = g.Title
				}
			}
			pdf.CellFormat(40, 6, s.CompletedAt.Local().Format("2006-01-02 15:04"), "", 0, "L", false, 0, "")
			pdf.CellFormat(20, 6, FormatClock(s.DurationSeconds), "", 0, "R", false, 0, "")
			pdf.CellFormat(0, 6, tr("  "+kind), "", 1, "L", false, 0, "")
			if note := strings.TrimSpace(util.Deref(s.Notes)); note != "" {
				pdf.SetFont("Arial", "I", 9)
				pdf.SetX(pdf.GetX() + 10)
				pdf.MultiCell(0, 5, tr(note), "", "L", false)
			}
		}
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path, nil
	}
	return abs, nil
}
