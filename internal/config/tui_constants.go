package config

// Layout constants.
const (
	// ProgressWidth is the preferred width of the countdown bar.
	ProgressWidth = 40

	// MinProgressWidth is the narrowest bar rendered.
	MinProgressWidth = 10

	// CompactModeThreshold triggers compact rendering below this width.
	CompactModeThreshold = 60

	// NotesWidth is the width of the completion notes editor.
	NotesWidth = 50

	// NotesHeight is the visible line count of the notes editor.
	NotesHeight = 5
)

// Display limits.
const (
	// MaxHistoryRows limits sessions shown in the history tab.
	MaxHistoryRows = 15

	// HistoryLoadLimit caps sessions fetched for the history tab.
	HistoryLoadLimit = 200

	// MaxNotePreview is the display width of a note in history rows.
	MaxNotePreview = 40

	// TruncationSuffix appended to truncated strings.
	TruncationSuffix = "..."
)

// Input constraints.
const (
	// MaxNoteLength is the maximum session note length.
	MaxNoteLength = 2000
)
