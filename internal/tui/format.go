package tui

import (
	"fmt"
	"time"
)

// FormatDuration formats a duration for display (e.g., "2h 15m", "45s").
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	hours := int(d.Hours())
	mins := int(d.Minutes()) % 60
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}

// FormatClock renders whole seconds as mm:ss. Sixty minutes stays "60:00".
func FormatClock(seconds int) string {
	if seconds <= 0 {
		return "00:00"
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// FormatTimerStatus returns a human-readable state label.
func FormatTimerStatus(running bool, remaining, duration int) string {
	switch {
	case running:
		return "Meditating"
	case remaining == 0:
		return "Complete"
	case remaining < duration:
		return "Paused"
	default:
		return "Ready"
	}
}

// FormatSessionCount formats session totals for display.
func FormatSessionCount(count int) string {
	switch count {
	case 0:
		return "No sessions yet"
	case 1:
		return "1 session"
	default:
		return fmt.Sprintf("%d sessions", count)
	}
}

func secondsToDuration(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}
