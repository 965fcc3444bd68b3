package feeds

import (
	"strings"
	"testing"
	"time"
)

func TestSnapshotEmpty(t *testing.T) {
	var nilSnap *Snapshot
	if !nilSnap.Empty() {
		t.Error("nil snapshot should be empty")
	}
	if !(&Snapshot{Standings: "table"}).Empty() {
		t.Error("standings alone do not make a snapshot non-empty")
	}
	if (&Snapshot{News: []NewsArticle{{Title: "x"}}}).Empty() {
		t.Error("snapshot with news reported empty")
	}
}

func TestMergeDeduplicatesNewsByURL(t *testing.T) {
	s := Snapshot{News: []NewsArticle{
		{Title: "first", URL: "https://example.com/1"},
	}}
	s.Merge(Snapshot{News: []NewsArticle{
		{Title: "duplicate", URL: "https://example.com/1"},
		{Title: "second", URL: "https://example.com/2"},
	}})

	if len(s.News) != 2 {
		t.Fatalf("len(News) = %d, want 2 after dedup", len(s.News))
	}
	if s.News[0].Title != "first" {
		t.Error("existing article replaced by duplicate")
	}
}

func TestMergeKeepsLatestStandings(t *testing.T) {
	s := Snapshot{Standings: "old table"}
	s.Merge(Snapshot{})
	if s.Standings != "old table" {
		t.Error("empty merge cleared standings")
	}
	s.Merge(Snapshot{Standings: "new table"})
	if s.Standings != "new table" {
		t.Error("merge did not take the newer standings")
	}
}

func TestContextString(t *testing.T) {
	snap := Snapshot{
		News: []NewsArticle{{
			Source:    SourceKickerRSS,
			Title:     "Bayern siegt",
			Content:   "Bericht vom Spiel",
			Timestamp: time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC),
		}},
		Events: []MatchEvent{{
			Title:   "Bayern Munich vs RB Leipzig",
			Content: "Final score 2:1 in Bundesliga",
			Score:   "2:1",
		}},
		Stats: []PlayerStat{{
			PlayerName: "Harry Kane", Team: "Bayern Munich",
			Goals: 28, Assists: 8, Appearances: 25, MinutesPlayed: 2214,
		}},
		Standings:    " 1. Bayern Munich  62 pts\n",
		AggregatedAt: time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC),
	}

	ctx := snap.ContextString()

	for _, want := range []string{
		"=== BUNDESLIGA STANDINGS ===",
		"=== NEWS ARTICLES ===",
		"=== SPORTS EVENTS ===",
		"=== PLAYER STATISTICS ===",
		"Bayern siegt",
		"Score: 2:1",
		"Harry Kane - Bayern Munich: 28 goals, 8 assists in 25 appearances (2214 minutes)",
	} {
		if !strings.Contains(ctx, want) {
			t.Errorf("ContextString() missing %q", want)
		}
	}
}

func TestContextStringTruncatesLongContent(t *testing.T) {
	snap := Snapshot{News: []NewsArticle{{
		Title:   "Langer Artikel",
		Content: strings.Repeat("a", 600),
	}}}

	ctx := snap.ContextString()
	if strings.Contains(ctx, strings.Repeat("a", 501)) {
		t.Error("article content not truncated in prompt context")
	}
	if !strings.Contains(ctx, "...") {
		t.Error("truncation marker missing")
	}
}
