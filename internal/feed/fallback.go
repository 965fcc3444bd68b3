package feed

import (
	"strings"
	"time"

	"github.com/ksilabs/ksi/internal/feeds"
	"github.com/ksilabs/ksi/internal/relevance"
)

// Fallback pass ("engagement engine"): when the primary topic match comes up
// sparse, progressively broader strategies pad the feed so the user never
// sees an empty result while any content exists at all.

// fallbackThreshold is the relaxed lower bound for marginal matches.
const fallbackThreshold = 0.15

// maxFallbackItems caps how many fallback items one generation may add.
const maxFallbackItems = 5

// broadeningKeywords mark league-level content used to widen a team topic.
var broadeningKeywords = []string{"bundesliga", "liga", "tabelle", "standings"}

// collectFallback runs the fallback strategies in order, stopping once
// enough items have accumulated. Items already collected by the primary pass
// are never duplicated (articles by URL, stats by player name).
func collectFallback(topic string, snap *feeds.Snapshot, existing []Item, now time.Time) []Item {
	seen := make(map[string]bool)
	seenPlayers := make(map[string]bool)
	for _, it := range existing {
		if it.URL != "" {
			seen[it.URL] = true
		}
		if it.PlayerName != "" {
			seenPlayers[it.PlayerName] = true
		}
	}

	var fallback []Item
	add := func(it Item) {
		it.Fallback = true
		fallback = append(fallback, it)
		if it.URL != "" {
			seen[it.URL] = true
		}
		if it.PlayerName != "" {
			seenPlayers[it.PlayerName] = true
		}
	}

	// Strategy 1: marginal matches just below the primary threshold.
	for _, article := range snap.News {
		if len(fallback) >= maxFallbackItems {
			break
		}
		if article.URL != "" && seen[article.URL] {
			continue
		}

		rel := relevance.Score(article.Title+" "+article.Content, topic)
		if rel < fallbackThreshold || rel >= relevanceThreshold {
			continue
		}

		add(Item{
			Kind:       KindNews,
			Headline:   "[Related] " + article.Title,
			Summary:    summarize(article.Content),
			URL:        article.URL,
			Timestamp:  article.Timestamp,
			Relevance:  rel,
			Category:   relevance.Classify(article.Title, article.Content),
			SourceName: string(article.Source),
		})
	}

	// Strategy 2: broaden to league-level coverage.
	if len(fallback) < 2 {
		for _, article := range snap.News {
			if len(fallback) >= maxFallbackItems {
				break
			}
			if article.URL != "" && seen[article.URL] {
				continue
			}

			text := strings.ToLower(article.Title + " " + article.Content)
			if !containsAny(text, broadeningKeywords) {
				continue
			}

			add(Item{
				Kind:       KindNews,
				Headline:   "[Bundesliga] " + article.Title,
				Summary:    summarize(article.Content),
				URL:        article.URL,
				Timestamp:  article.Timestamp,
				Relevance:  0.2, // Lower than direct matches
				Category:   relevance.Classify(article.Title, article.Content),
				SourceName: string(article.Source),
			})
		}
	}

	// Strategy 3: universal stats dump when almost nothing was found.
	if len(existing)+len(fallback) < 2 {
		for _, stat := range snap.Stats {
			if len(fallback) >= maxFallbackItems {
				break
			}
			if seenPlayers[stat.PlayerName] {
				continue
			}

			add(Item{
				Kind:       KindStats,
				Headline:   stat.Headline(),
				Summary:    stat.Summary(),
				Timestamp:  now,
				Relevance:  fallbackThreshold,
				Category:   relevance.CategoryStats,
				SourceName: string(stat.Source),
				PlayerName: stat.PlayerName,
				Team:       stat.Team,
				Goals:      stat.Goals,
				Assists:    stat.Assists,
			})
		}
	}

	// Safety net: the feed must never be empty while content exists. If
	// every strategy came up dry, surface the freshest records as-is.
	if len(existing)+len(fallback) == 0 {
		for _, article := range snap.News {
			if len(fallback) >= maxFallbackItems {
				break
			}
			add(Item{
				Kind:       KindNews,
				Headline:   "[Aktuell] " + article.Title,
				Summary:    summarize(article.Content),
				URL:        article.URL,
				Timestamp:  article.Timestamp,
				Relevance:  0.1,
				Category:   relevance.Classify(article.Title, article.Content),
				SourceName: string(article.Source),
			})
		}
		for _, event := range snap.Events {
			if len(fallback) >= maxFallbackItems {
				break
			}
			add(Item{
				Kind:       KindEvent,
				Headline:   "[Aktuell] " + event.Title,
				Summary:    event.Content,
				Timestamp:  event.Timestamp,
				Relevance:  0.1,
				Category:   relevance.CategoryNews,
				SourceName: string(event.Source),
				HomeTeam:   event.HomeTeam,
				AwayTeam:   event.AwayTeam,
				Score:      event.Score,
			})
		}
	}

	if len(fallback) > maxFallbackItems {
		fallback = fallback[:maxFallbackItems]
	}
	return fallback
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
