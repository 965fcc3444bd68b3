package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/ksilabs/ksi/internal/feeds"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleSnapshot(aggregatedAt time.Time) *feeds.Snapshot {
	return &feeds.Snapshot{
		News: []feeds.NewsArticle{{
			Source:    feeds.SourceKickerRSS,
			Title:     "Bayern siegt",
			Content:   "Bericht vom Spiel",
			URL:       "https://example.com/1",
			Category:  "Bundesliga",
			Timestamp: aggregatedAt.Add(-2 * time.Hour),
		}},
		Events: []feeds.MatchEvent{{
			Source:    feeds.SourceSportsDB,
			EventType: "match",
			Title:     "Bayern Munich vs RB Leipzig",
			Content:   "Final score 2:1 in Bundesliga",
			HomeTeam:  "Bayern Munich",
			AwayTeam:  "RB Leipzig",
			Score:     "2:1",
			League:    "Bundesliga",
			Timestamp: aggregatedAt.Add(-24 * time.Hour),
		}},
		Stats: []feeds.PlayerStat{{
			Source:     feeds.SourceAPIFootball,
			PlayerName: "Harry Kane",
			Team:       "Bayern Munich",
			Position:   "Attacker",
			Goals:      28,
			Assists:    8,
			Season:     "2025",
			League:     "Bundesliga",
		}},
		Standings:    " 1. Bayern Munich  62 pts\n",
		AggregatedAt: aggregatedAt,
	}
}

func TestLoadSnapshotEmptyStore(t *testing.T) {
	s := openTestStore(t)

	snap, err := s.LoadSnapshot(time.Hour)
	if err != nil {
		t.Fatalf("LoadSnapshot() error = %v", err)
	}
	if snap != nil {
		t.Errorf("LoadSnapshot() = %+v, want nil for an empty store", snap)
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	s := openTestStore(t)

	orig := sampleSnapshot(time.Now().UTC().Truncate(time.Second))
	if err := s.SaveSnapshot(orig); err != nil {
		t.Fatalf("SaveSnapshot() error = %v", err)
	}

	snap, err := s.LoadSnapshot(time.Hour)
	if err != nil {
		t.Fatalf("LoadSnapshot() error = %v", err)
	}
	if snap == nil {
		t.Fatal("LoadSnapshot() = nil, want the saved snapshot")
	}

	if len(snap.News) != 1 || snap.News[0].Title != "Bayern siegt" {
		t.Errorf("News = %+v", snap.News)
	}
	if snap.News[0].Source != feeds.SourceKickerRSS {
		t.Errorf("News Source = %q, want kicker_rss", snap.News[0].Source)
	}
	if len(snap.Events) != 1 || snap.Events[0].Score != "2:1" {
		t.Errorf("Events = %+v", snap.Events)
	}
	if len(snap.Stats) != 1 || snap.Stats[0].Goals != 28 {
		t.Errorf("Stats = %+v", snap.Stats)
	}
	if snap.Standings != orig.Standings {
		t.Errorf("Standings = %q, want %q", snap.Standings, orig.Standings)
	}
}

func TestSaveReplacesPreviousSnapshot(t *testing.T) {
	s := openTestStore(t)

	now := time.Now().UTC().Truncate(time.Second)
	if err := s.SaveSnapshot(sampleSnapshot(now.Add(-time.Hour))); err != nil {
		t.Fatalf("first SaveSnapshot() error = %v", err)
	}

	second := &feeds.Snapshot{
		News: []feeds.NewsArticle{{
			Title: "Neuer Artikel", URL: "https://example.com/new", Timestamp: now,
		}},
		AggregatedAt: now,
	}
	if err := s.SaveSnapshot(second); err != nil {
		t.Fatalf("second SaveSnapshot() error = %v", err)
	}

	snap, err := s.LoadSnapshot(time.Hour)
	if err != nil {
		t.Fatalf("LoadSnapshot() error = %v", err)
	}
	if len(snap.News) != 1 || snap.News[0].Title != "Neuer Artikel" {
		t.Errorf("News = %+v, want only the second snapshot's article", snap.News)
	}
	if len(snap.Events) != 0 || len(snap.Stats) != 0 {
		t.Error("old events/stats survived the replace")
	}
}

func TestLoadSnapshotStale(t *testing.T) {
	s := openTestStore(t)

	old := sampleSnapshot(time.Now().UTC().Add(-7 * time.Hour))
	if err := s.SaveSnapshot(old); err != nil {
		t.Fatalf("SaveSnapshot() error = %v", err)
	}

	snap, err := s.LoadSnapshot(6 * time.Hour)
	if err != nil {
		t.Fatalf("LoadSnapshot() error = %v", err)
	}
	if snap != nil {
		t.Errorf("LoadSnapshot() returned a snapshot older than the TTL")
	}

	// A generous TTL still finds it.
	snap, err = s.LoadSnapshot(24 * time.Hour)
	if err != nil {
		t.Fatalf("LoadSnapshot() error = %v", err)
	}
	if snap == nil {
		t.Error("LoadSnapshot() = nil within a 24h TTL")
	}
}
