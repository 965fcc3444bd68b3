package ui

import "github.com/charmbracelet/lipgloss"

// Colors used in the application.
var (
	colorPrimary   = lipgloss.Color("34")  // Green, pitch-colored
	colorSecondary = lipgloss.Color("241") // Gray
	colorMuted     = lipgloss.Color("240") // Darker gray
	colorHighlight = lipgloss.Color("220") // Yellow
)

// Header style for the top bar.
var Header = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

// UserLine style for the user's own messages in the transcript.
var UserLine = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight)

// AssistantLine style for assistant answers.
var AssistantLine = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255"))

// SystemLine style for offers, hints, and command output.
var SystemLine = lipgloss.NewStyle().
	Foreground(colorSecondary).
	Italic(true)

// FeedHeadline style for feed item headlines.
var FeedHeadline = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255"))

// FeedFallbackHeadline style for fallback feed items.
var FeedFallbackHeadline = lipgloss.NewStyle().
	Foreground(colorSecondary)

// FeedMeta style for score, category, and source lines under a headline.
var FeedMeta = lipgloss.NewStyle().
	Foreground(colorMuted)

// StatusBar style for the bottom status bar.
var StatusBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

// ErrorStyle for displaying errors.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("196")).
	Bold(true).
	Padding(0, 1)
