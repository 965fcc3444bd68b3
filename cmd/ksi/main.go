package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/ksilabs/ksi/internal/brain"
	"github.com/ksilabs/ksi/internal/config"
	"github.com/ksilabs/ksi/internal/conversation"
	"github.com/ksilabs/ksi/internal/feeds"
	"github.com/ksilabs/ksi/internal/feeds/apifootball"
	"github.com/ksilabs/ksi/internal/feeds/rss"
	"github.com/ksilabs/ksi/internal/feeds/sportsdb"
	"github.com/ksilabs/ksi/internal/logging"
	"github.com/ksilabs/ksi/internal/store"
	"github.com/ksilabs/ksi/internal/ui"
)

func main() {
	// .env is optional; real deployments use the environment directly.
	godotenv.Load()

	if err := logging.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logging: %v\n", err)
	}
	defer logging.Close()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg.Save() // Persist keys picked up from the environment

	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to get home directory: %v\n", err)
		os.Exit(1)
	}
	dataDir := filepath.Join(homeDir, ".ksi")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create data directory: %v\n", err)
		os.Exit(1)
	}

	st, err := store.Open(filepath.Join(dataDir, "cache.db"))
	if err != nil {
		// Continue without persistence
		logging.Warn("cache unavailable", "error", err)
		st = nil
	} else {
		defer st.Close()
	}

	agg := feeds.NewAggregator(time.Duration(cfg.Feeds.RefreshMinutes) * time.Minute)
	agg.AddSource(rss.New())
	agg.AddSource(sportsdb.New())
	if key := os.Getenv("API_FOOTBALL_KEY"); key != "" {
		agg.AddSource(apifootball.New(key))
	}

	if st != nil {
		ttl := time.Duration(cfg.Feeds.CacheHours) * time.Hour
		if snap, err := st.LoadSnapshot(ttl); err != nil {
			logging.Warn("cache load failed", "error", err)
		} else if snap != nil {
			agg.SetCached(snap)
			logging.Info("seeded from cache", "news", len(snap.News), "age", time.Since(snap.AggregatedAt))
		}
	}

	deps := ui.Deps{
		Config:     cfg,
		Tracker:    conversation.NewTracker(),
		Aggregator: agg,
		Brain:      brain.NewManagerFromConfig(cfg),
	}
	if st != nil {
		deps.SaveSnapshot = st.SaveSnapshot
	}

	program := tea.NewProgram(ui.New(deps), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error running program: %v\n", err)
		os.Exit(1)
	}
}
