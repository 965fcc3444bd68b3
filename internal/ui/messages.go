package ui

import "github.com/ksilabs/ksi/internal/feeds"

// Messages for Bubble Tea

// AnswerMsg is sent when the LLM has answered a question.
type AnswerMsg struct {
	Query   string
	Content string
	Model   string
	Err     error
}

// SnapshotMsg is sent when a data refresh completes.
type SnapshotMsg struct {
	Snapshot *feeds.Snapshot
	Forced   bool
	Err      error
}

// TickMsg is sent periodically for auto-refresh.
type TickMsg struct{}
