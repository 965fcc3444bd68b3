// Package sportsdb fetches fixtures, results and league standings from the
// TheSportsDB public API (free tier).
package sportsdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/ksilabs/ksi/internal/feeds"
)

const defaultBaseURL = "https://www.thesportsdb.com/api/v1/json/3"

// League IDs on TheSportsDB.
const (
	LeagueBundesliga  = "4331"
	LeagueBundesliga2 = "4332"
)

// eventsPerLeague caps fixtures/results taken per league per fetch.
const eventsPerLeague = 5

// Source fetches Bundesliga match events and standings.
type Source struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	leagues []string
}

// New creates a TheSportsDB source for the Bundesliga leagues.
func New() *Source {
	return &Source{
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		// The free tier allows roughly 2 requests per second.
		limiter: rate.NewLimiter(rate.Every(500*time.Millisecond), 1),
		leagues: []string{LeagueBundesliga, LeagueBundesliga2},
	}
}

// NewWithBaseURL creates a source against a custom endpoint, for tests.
func NewWithBaseURL(baseURL string) *Source {
	s := New()
	s.baseURL = baseURL
	s.limiter = rate.NewLimiter(rate.Inf, 1)
	return s
}

func (s *Source) Name() string {
	return "TheSportsDB"
}

// apiEvent mirrors the fields of a TheSportsDB event we consume.
type apiEvent struct {
	HomeTeam  string `json:"strHomeTeam"`
	AwayTeam  string `json:"strAwayTeam"`
	HomeScore string `json:"intHomeScore"`
	AwayScore string `json:"intAwayScore"`
	League    string `json:"strLeague"`
	Timestamp string `json:"strTimestamp"`
}

type eventsResponse struct {
	Events []apiEvent `json:"events"`
}

// apiTableRow mirrors one row of a lookuptable response.
type apiTableRow struct {
	Team   string `json:"strTeam"`
	Played string `json:"intPlayed"`
	Win    string `json:"intWin"`
	Draw   string `json:"intDraw"`
	Loss   string `json:"intLoss"`
	Points string `json:"intPoints"`
}

type tableResponse struct {
	Table []apiTableRow `json:"table"`
}

// Fetch retrieves upcoming fixtures, recent results and the Bundesliga
// table. Failures of individual endpoints degrade to whatever succeeded.
func (s *Source) Fetch(ctx context.Context) (feeds.Snapshot, error) {
	var snap feeds.Snapshot
	var lastErr error

	for _, league := range s.leagues {
		upcoming, err := s.fetchEvents(ctx, "eventsnextleague.php?id="+league, "schedule")
		if err != nil {
			lastErr = err
		}
		snap.Events = append(snap.Events, upcoming...)

		recent, err := s.fetchEvents(ctx, "eventspastleague.php?id="+league, "match")
		if err != nil {
			lastErr = err
		}
		snap.Events = append(snap.Events, recent...)
	}

	if standings, err := s.fetchStandings(ctx, LeagueBundesliga); err == nil {
		snap.Standings = standings
	} else {
		lastErr = err
	}

	if len(snap.Events) == 0 && snap.Standings == "" && lastErr != nil {
		return feeds.Snapshot{}, lastErr
	}
	return snap, nil
}

func (s *Source) fetchEvents(ctx context.Context, path, eventType string) ([]feeds.MatchEvent, error) {
	var resp eventsResponse
	if err := s.getJSON(ctx, path, &resp); err != nil {
		return nil, err
	}

	events := make([]feeds.MatchEvent, 0, eventsPerLeague)
	for i, ev := range resp.Events {
		if i >= eventsPerLeague {
			break
		}

		timestamp := time.Now()
		if ev.Timestamp != "" {
			if t, err := time.Parse("2006-01-02T15:04:05", ev.Timestamp); err == nil {
				timestamp = t
			}
		}

		event := feeds.MatchEvent{
			Source:    feeds.SourceSportsDB,
			EventType: eventType,
			Title:     fmt.Sprintf("%s vs %s", ev.HomeTeam, ev.AwayTeam),
			HomeTeam:  ev.HomeTeam,
			AwayTeam:  ev.AwayTeam,
			League:    ev.League,
			Timestamp: timestamp,
		}

		if ev.HomeScore != "" && ev.AwayScore != "" {
			event.Score = ev.HomeScore + ":" + ev.AwayScore
			event.Content = fmt.Sprintf("Final score %s in %s", event.Score, ev.League)
		} else {
			event.Content = fmt.Sprintf("Upcoming match in %s", ev.League)
		}

		events = append(events, event)
	}
	return events, nil
}

func (s *Source) fetchStandings(ctx context.Context, league string) (string, error) {
	season := currentSeason(time.Now())
	path := fmt.Sprintf("lookuptable.php?l=%s&s=%s", league, season)

	var resp tableResponse
	if err := s.getJSON(ctx, path, &resp); err != nil {
		return "", err
	}
	if len(resp.Table) == 0 {
		return "", fmt.Errorf("empty standings table for league %s", league)
	}

	var b strings.Builder
	for i, row := range resp.Table {
		fmt.Fprintf(&b, "%2d. %s  %s pts (W%s D%s L%s, %s played)\n",
			i+1, row.Team, row.Points, row.Win, row.Draw, row.Loss, row.Played)
	}
	return b.String(), nil
}

func (s *Source) getJSON(ctx context.Context, path string, out any) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	url := s.baseURL + "/" + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP error from %s: %d %s", path, resp.StatusCode, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

// currentSeason formats the season string the API expects, e.g. "2025-2026".
// The European season rolls over in July.
func currentSeason(now time.Time) string {
	year := now.Year()
	if now.Month() < time.July {
		year--
	}
	return fmt.Sprintf("%d-%d", year, year+1)
}
