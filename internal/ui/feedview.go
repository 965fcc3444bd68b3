package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/ksilabs/ksi/internal/feed"
)

// renderFeed draws the full-screen feed browser.
func (m Model) renderFeed() string {
	var sections []string

	header := fmt.Sprintf("  Personalized Feed · %s  ·  %d items", m.feedTopic, len(m.feedItems))
	sections = append(sections, Header.Width(m.width).Render(header))
	sections = append(sections, "")

	if len(m.feedItems) == 0 {
		sections = append(sections, SystemLine.Render("  Nothing to show yet. Try /refresh first."))
	}

	for i, item := range m.feedItems {
		sections = append(sections, renderFeedItem(i+1, &item, m.width))
	}

	sections = append(sections, "")
	sections = append(sections, StatusBar.Width(m.width).Render("  [q/esc] back to chat  [ctrl+c] quit"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderFeedItem(n int, item *feed.Item, width int) string {
	headlineStyle := FeedHeadline
	if item.Fallback {
		headlineStyle = FeedFallbackHeadline
	}

	headline := fmt.Sprintf("  %d. %s", n, item.Headline)
	lines := []string{headlineStyle.Width(max(width-2, 20)).Render(headline)}

	meta := fmt.Sprintf("     %s · %s · relevance %.2f · %s",
		item.Kind, item.Category, item.Relevance, relativeTime(item.Timestamp))
	if item.SourceName != "" {
		meta += " · " + item.SourceName
	}
	lines = append(lines, FeedMeta.Render(meta))

	if item.Summary != "" {
		summary := "     " + strings.ReplaceAll(item.Summary, "\n", " ")
		lines = append(lines, FeedMeta.Width(max(width-2, 20)).Render(summary))
	}
	if item.URL != "" {
		lines = append(lines, FeedMeta.Render("     "+item.URL))
	}

	return strings.Join(lines, "\n")
}

// relativeTime formats an age the way feed readers do.
func relativeTime(t time.Time) string {
	if t.IsZero() {
		return "now"
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
