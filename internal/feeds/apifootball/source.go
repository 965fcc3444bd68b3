// Package apifootball fetches Bundesliga top-scorer statistics from the
// API-Football service. An API key is required; without one the source
// reports itself unavailable and returns nothing.
package apifootball

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/ksilabs/ksi/internal/feeds"
)

const defaultBaseURL = "https://v3.football.api-sports.io"

// bundesligaID is the API-Football league ID for the Bundesliga.
const bundesligaID = 78

// topScorerLimit caps how many players are kept per fetch.
const topScorerLimit = 20

// Source fetches player statistics.
type Source struct {
	baseURL string
	apiKey  string
	client  *http.Client
	limiter *rate.Limiter
}

// New creates an API-Football source. apiKey may be empty, in which case
// Fetch returns an empty snapshot without touching the network.
func New(apiKey string) *Source {
	return &Source{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
		// Free tier quota is 100 requests per day; one per 15 minutes
		// keeps well inside it even with frequent refreshes.
		limiter: rate.NewLimiter(rate.Every(15*time.Minute), 1),
	}
}

// NewWithBaseURL creates a source against a custom endpoint, for tests.
func NewWithBaseURL(baseURL, apiKey string) *Source {
	s := New(apiKey)
	s.baseURL = baseURL
	s.limiter = rate.NewLimiter(rate.Inf, 1)
	return s
}

func (s *Source) Name() string {
	return "API-Football"
}

type topScorersResponse struct {
	Response []struct {
		Player struct {
			Name string `json:"name"`
		} `json:"player"`
		Statistics []struct {
			Team struct {
				Name string `json:"name"`
			} `json:"team"`
			Games struct {
				Position    string `json:"position"`
				Appearances int    `json:"appearences"` // sic, API spelling
				Minutes     int    `json:"minutes"`
			} `json:"games"`
			Goals struct {
				Total   int `json:"total"`
				Assists int `json:"assists"`
			} `json:"goals"`
			Cards struct {
				Yellow int `json:"yellow"`
				Red    int `json:"red"`
			} `json:"cards"`
		} `json:"statistics"`
	} `json:"response"`
}

// Fetch retrieves the current season's top scorers.
func (s *Source) Fetch(ctx context.Context) (feeds.Snapshot, error) {
	if s.apiKey == "" {
		return feeds.Snapshot{}, nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return feeds.Snapshot{}, err
	}

	season := seasonYear(time.Now())
	url := fmt.Sprintf("%s/players/topscorers?league=%d&season=%d", s.baseURL, bundesligaID, season)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return feeds.Snapshot{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("x-apisports-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return feeds.Snapshot{}, fmt.Errorf("failed to fetch top scorers: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return feeds.Snapshot{}, fmt.Errorf("HTTP error from api-football: %d %s", resp.StatusCode, resp.Status)
	}

	var payload topScorersResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return feeds.Snapshot{}, fmt.Errorf("failed to decode top scorers: %w", err)
	}

	var snap feeds.Snapshot
	for i, entry := range payload.Response {
		if i >= topScorerLimit {
			break
		}
		if len(entry.Statistics) == 0 {
			continue
		}
		stats := entry.Statistics[0]

		snap.Stats = append(snap.Stats, feeds.PlayerStat{
			Source:        feeds.SourceAPIFootball,
			PlayerName:    entry.Player.Name,
			Team:          stats.Team.Name,
			Position:      stats.Games.Position,
			Appearances:   stats.Games.Appearances,
			MinutesPlayed: stats.Games.Minutes,
			Goals:         stats.Goals.Total,
			Assists:       stats.Goals.Assists,
			YellowCards:   stats.Cards.Yellow,
			RedCards:      stats.Cards.Red,
			Season:        fmt.Sprintf("%d-%d", season, season+1),
			League:        "Bundesliga",
		})
	}

	return snap, nil
}

// seasonYear returns the season start year API-Football expects.
func seasonYear(now time.Time) int {
	year := now.Year()
	if now.Month() < time.July {
		year--
	}
	return year
}
