package feeds

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ksilabs/ksi/internal/logging"
)

// sourceState tracks fetch history and the latest result for one source.
type sourceState struct {
	source       Source
	snap         Snapshot
	lastFetched  time.Time
	lastError    error
	consecErrors int
}

// Aggregator fans out to all registered sources and merges the results into
// one snapshot. Each source's latest result is retained, so a refresh cycle
// only refetches sources whose interval has elapsed, backing off sources
// that keep failing.
type Aggregator struct {
	mu      sync.Mutex
	sources []*sourceState
	refresh time.Duration
	seed    *Snapshot // Cached content used until live fetches land
}

// NewAggregator creates an aggregator with the given refresh interval.
func NewAggregator(refresh time.Duration) *Aggregator {
	if refresh <= 0 {
		refresh = 5 * time.Minute
	}
	return &Aggregator{refresh: refresh}
}

// AddSource registers a source.
func (a *Aggregator) AddSource(s Source) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sources = append(a.sources, &sourceState{source: s})
}

// SourceCount returns the number of registered sources.
func (a *Aggregator) SourceCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.sources)
}

// SetCached seeds the aggregator with a previously stored snapshot so the
// first query can be answered before any network fetch completes. The seed
// is dropped as soon as any live fetch succeeds.
func (a *Aggregator) SetCached(snap *Snapshot) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.seed = snap
}

// Snapshot returns the current aggregate, refetching stale sources first.
// With force set, every source is refetched regardless of age. Individual
// source failures are logged and skipped; the merged snapshot holds whatever
// the healthy sources returned.
func (a *Aggregator) Snapshot(ctx context.Context, force bool) (*Snapshot, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var due []*sourceState
	for _, st := range a.sources {
		if force || st.shouldRefresh(a.refresh) {
			due = append(due, st)
		}
	}

	if len(due) > 0 {
		g, gctx := errgroup.WithContext(ctx)
		for _, st := range due {
			g.Go(func() error {
				snap, err := st.source.Fetch(gctx)
				st.lastFetched = time.Now()
				st.lastError = err
				if err != nil {
					st.consecErrors++
					logging.Warn("source fetch failed", "source", st.source.Name(), "error", err)
					return nil // Degrade to partial data, never fail the cycle
				}
				st.consecErrors = 0
				st.snap = snap
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	merged := &Snapshot{AggregatedAt: time.Now()}
	live := false
	for _, st := range a.sources {
		if !st.snap.Empty() || st.snap.Standings != "" {
			live = true
		}
		merged.Merge(st.snap)
	}
	if !live && a.seed != nil {
		merged.Merge(*a.seed)
	} else if live {
		a.seed = nil
	}

	logging.Info("aggregation complete",
		"news", len(merged.News), "events", len(merged.Events), "stats", len(merged.Stats))
	return merged, nil
}

func (st *sourceState) shouldRefresh(interval time.Duration) bool {
	if st.lastFetched.IsZero() {
		return true
	}

	// Back off on errors, capped at 30 minutes.
	if st.consecErrors > 0 {
		backoff := time.Duration(st.consecErrors*st.consecErrors) * time.Minute
		if backoff > 30*time.Minute {
			backoff = 30 * time.Minute
		}
		interval += backoff
	}

	return time.Since(st.lastFetched) >= interval
}
