// Package store persists aggregated content snapshots to SQLite so a fresh
// session can answer its first query from cache instead of waiting on every
// remote source. Entries older than the TTL are treated as absent.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)

	"github.com/ksilabs/ksi/internal/feeds"
)

// Store is the on-disk content cache.
type Store struct {
	db *sql.DB
}

// Open creates or opens the cache database at path and applies migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS news (
		url TEXT,
		source TEXT NOT NULL,
		title TEXT NOT NULL,
		content TEXT,
		author TEXT,
		category TEXT,
		published_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		source TEXT NOT NULL,
		event_type TEXT NOT NULL,
		title TEXT NOT NULL,
		content TEXT,
		home_team TEXT,
		away_team TEXT,
		score TEXT,
		league TEXT,
		event_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS player_stats (
		source TEXT NOT NULL,
		player_name TEXT NOT NULL,
		team TEXT NOT NULL,
		position TEXT,
		appearances INTEGER DEFAULT 0,
		minutes_played INTEGER DEFAULT 0,
		goals INTEGER DEFAULT 0,
		assists INTEGER DEFAULT 0,
		yellow_cards INTEGER DEFAULT 0,
		red_cards INTEGER DEFAULT 0,
		season TEXT,
		league TEXT
	);

	CREATE TABLE IF NOT EXISTS snapshot_meta (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		aggregated_at DATETIME NOT NULL,
		standings TEXT
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveSnapshot replaces the cached snapshot with snap.
func (s *Store) SaveSnapshot(snap *feeds.Snapshot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"news", "events", "player_stats", "snapshot_meta"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return err
		}
	}

	newsStmt, err := tx.Prepare(`
		INSERT INTO news (url, source, title, content, author, category, published_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer newsStmt.Close()
	for _, a := range snap.News {
		if _, err := newsStmt.Exec(a.URL, string(a.Source), a.Title, a.Content, a.Author, a.Category, a.Timestamp); err != nil {
			return err
		}
	}

	eventStmt, err := tx.Prepare(`
		INSERT INTO events (source, event_type, title, content, home_team, away_team, score, league, event_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer eventStmt.Close()
	for _, e := range snap.Events {
		if _, err := eventStmt.Exec(string(e.Source), e.EventType, e.Title, e.Content, e.HomeTeam, e.AwayTeam, e.Score, e.League, e.Timestamp); err != nil {
			return err
		}
	}

	statStmt, err := tx.Prepare(`
		INSERT INTO player_stats (source, player_name, team, position, appearances, minutes_played, goals, assists, yellow_cards, red_cards, season, league)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer statStmt.Close()
	for _, p := range snap.Stats {
		if _, err := statStmt.Exec(string(p.Source), p.PlayerName, p.Team, p.Position, p.Appearances, p.MinutesPlayed, p.Goals, p.Assists, p.YellowCards, p.RedCards, p.Season, p.League); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(`INSERT INTO snapshot_meta (id, aggregated_at, standings) VALUES (1, ?, ?)`,
		snap.AggregatedAt, snap.Standings); err != nil {
		return err
	}

	return tx.Commit()
}

// LoadSnapshot returns the cached snapshot if it is younger than maxAge,
// or nil when the cache is empty or stale.
func (s *Store) LoadSnapshot(maxAge time.Duration) (*feeds.Snapshot, error) {
	var aggregatedAt time.Time
	var standings sql.NullString
	err := s.db.QueryRow(`SELECT aggregated_at, standings FROM snapshot_meta WHERE id = 1`).
		Scan(&aggregatedAt, &standings)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot meta: %w", err)
	}

	if time.Since(aggregatedAt) > maxAge {
		return nil, nil
	}

	snap := &feeds.Snapshot{
		AggregatedAt: aggregatedAt,
		Standings:    standings.String,
	}

	if err := s.loadNews(snap); err != nil {
		return nil, err
	}
	if err := s.loadEvents(snap); err != nil {
		return nil, err
	}
	if err := s.loadStats(snap); err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *Store) loadNews(snap *feeds.Snapshot) error {
	rows, err := s.db.Query(`SELECT url, source, title, content, author, category, published_at FROM news`)
	if err != nil {
		return fmt.Errorf("failed to read news: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a feeds.NewsArticle
		var source string
		if err := rows.Scan(&a.URL, &source, &a.Title, &a.Content, &a.Author, &a.Category, &a.Timestamp); err != nil {
			return err
		}
		a.Source = feeds.SourceType(source)
		snap.News = append(snap.News, a)
	}
	return rows.Err()
}

func (s *Store) loadEvents(snap *feeds.Snapshot) error {
	rows, err := s.db.Query(`SELECT source, event_type, title, content, home_team, away_team, score, league, event_at FROM events`)
	if err != nil {
		return fmt.Errorf("failed to read events: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e feeds.MatchEvent
		var source string
		if err := rows.Scan(&source, &e.EventType, &e.Title, &e.Content, &e.HomeTeam, &e.AwayTeam, &e.Score, &e.League, &e.Timestamp); err != nil {
			return err
		}
		e.Source = feeds.SourceType(source)
		snap.Events = append(snap.Events, e)
	}
	return rows.Err()
}

func (s *Store) loadStats(snap *feeds.Snapshot) error {
	rows, err := s.db.Query(`SELECT source, player_name, team, position, appearances, minutes_played, goals, assists, yellow_cards, red_cards, season, league FROM player_stats`)
	if err != nil {
		return fmt.Errorf("failed to read player stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p feeds.PlayerStat
		var source string
		if err := rows.Scan(&source, &p.PlayerName, &p.Team, &p.Position, &p.Appearances, &p.MinutesPlayed, &p.Goals, &p.Assists, &p.YellowCards, &p.RedCards, &p.Season, &p.League); err != nil {
			return err
		}
		p.Source = feeds.SourceType(source)
		snap.Stats = append(snap.Stats, p)
	}
	return rows.Err()
}
