// Package feeds defines the normalized content records produced by data
// aggregation and the aggregator that collects them from remote sources.
package feeds

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// SourceType identifies the origin of a content record.
type SourceType string

const (
	SourceKickerRSS   SourceType = "kicker_rss"
	SourceSportsDB    SourceType = "sports_db"
	SourceAPIFootball SourceType = "api_football"
)

// NewsArticle is a normalized news article from any source.
type NewsArticle struct {
	Source    SourceType
	Title     string
	Content   string
	URL       string
	Author    string
	Category  string // Feed section, e.g. "Bundesliga"
	Timestamp time.Time
}

// MatchEvent is a normalized match record: a result, a scheduled fixture,
// or a live score.
type MatchEvent struct {
	Source    SourceType
	EventType string // "match", "score", "schedule"
	Title     string
	Content   string // Human-readable description
	HomeTeam  string
	AwayTeam  string
	Score     string // "2:1", empty for fixtures
	League    string
	Timestamp time.Time
}

// PlayerStat is a normalized per-player statistics record for the current
// season.
type PlayerStat struct {
	Source        SourceType
	PlayerName    string
	Team          string
	Position      string
	Appearances   int
	MinutesPlayed int
	Goals         int
	Assists       int
	YellowCards   int
	RedCards      int
	Season        string
	League        string
}

// Headline renders the display headline for a stat record.
func (p PlayerStat) Headline() string {
	return fmt.Sprintf("%s - %s", p.PlayerName, p.Team)
}

// Summary renders the one-line summary for a stat record.
func (p PlayerStat) Summary() string {
	return fmt.Sprintf("%d goals, %d assists in %d appearances (%d minutes)",
		p.Goals, p.Assists, p.Appearances, p.MinutesPlayed)
}

// Snapshot is a read-only bundle of everything aggregated in one cycle.
// Ownership stays with the caller; consumers must not mutate it.
type Snapshot struct {
	News   []NewsArticle
	Events []MatchEvent
	Stats  []PlayerStat

	// Standings carries pre-formatted league-table context, attached here
	// explicitly rather than injected into the rendering path at runtime.
	Standings string

	AggregatedAt time.Time
}

// Empty reports whether the snapshot holds no content at all.
func (s *Snapshot) Empty() bool {
	return s == nil || (len(s.News) == 0 && len(s.Events) == 0 && len(s.Stats) == 0)
}

// Merge appends another snapshot's records, deduplicating news by URL.
func (s *Snapshot) Merge(other Snapshot) {
	urls := make(map[string]bool, len(s.News))
	for _, a := range s.News {
		if a.URL != "" {
			urls[a.URL] = true
		}
	}
	for _, a := range other.News {
		if a.URL != "" && urls[a.URL] {
			continue
		}
		if a.URL != "" {
			urls[a.URL] = true
		}
		s.News = append(s.News, a)
	}

	s.Events = append(s.Events, other.Events...)
	s.Stats = append(s.Stats, other.Stats...)

	if other.Standings != "" {
		s.Standings = other.Standings
	}
}

// ContextString renders the snapshot as an LLM prompt context block.
func (s *Snapshot) ContextString() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Data aggregated at: %s\n", s.AggregatedAt.Format(time.RFC3339))

	if s.Standings != "" {
		b.WriteString("\n=== BUNDESLIGA STANDINGS ===\n")
		b.WriteString(s.Standings)
		b.WriteString("\n")
	}

	if len(s.News) > 0 {
		b.WriteString("\n=== NEWS ARTICLES ===\n")
		for _, a := range s.News {
			fmt.Fprintf(&b, "[%s] %s\n", a.Timestamp.Format("2006-01-02 15:04"), a.Title)
			fmt.Fprintf(&b, "Source: %s\n", a.Source)
			fmt.Fprintf(&b, "Content: %s\n\n", truncate(a.Content, 500))
		}
	}

	if len(s.Events) > 0 {
		b.WriteString("\n=== SPORTS EVENTS ===\n")
		for _, e := range s.Events {
			fmt.Fprintf(&b, "[%s] %s\n", e.Timestamp.Format("2006-01-02 15:04"), e.Title)
			fmt.Fprintf(&b, "Content: %s\n", e.Content)
			if e.Score != "" {
				fmt.Fprintf(&b, "Score: %s\n", e.Score)
			}
			b.WriteString("\n")
		}
	}

	if len(s.Stats) > 0 {
		b.WriteString("\n=== PLAYER STATISTICS ===\n")
		for _, p := range s.Stats {
			fmt.Fprintf(&b, "%s: %s\n", p.Headline(), p.Summary())
		}
	}

	return b.String()
}

// Source is implemented by every remote data source. A source returns the
// slice of the snapshot it knows how to fill; the aggregator merges them.
type Source interface {
	// Name returns a human-readable source name.
	Name() string

	// Fetch retrieves the latest content from this source. Fetch must
	// respect context cancellation.
	Fetch(ctx context.Context) (Snapshot, error)
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
