package feed

import (
	"sort"
	"strings"
	"time"

	"github.com/ksilabs/ksi/internal/config"
	"github.com/ksilabs/ksi/internal/feeds"
	"github.com/ksilabs/ksi/internal/relevance"
)

// relevanceThreshold is the primary cutoff: below it an article is not
// considered on-topic. Chosen so a single incidental mention is rejected
// while a short article with the topic in its headline clears it.
const relevanceThreshold = 0.3

// minPrimaryItems is the sparse-results bound that triggers the fallback
// pass.
const minPrimaryItems = 3

// defaultCount is the feed length when the caller does not specify one.
const defaultCount = 10

// summaryLimit caps article summaries in the generated feed.
const summaryLimit = 200

// Options tunes feed generation.
type Options struct {
	// Count limits the returned feed length; 0 means 10.
	Count int

	// Persona adjusts ranking for the requesting user; empty means no
	// persona-specific ranking.
	Persona config.Persona

	// Now anchors recency scoring; zero means time.Now(). Tests pin it.
	Now time.Time
}

// Generate builds a ranked feed for topic from the snapshot.
//
// News articles are kept when their relevance beats the primary threshold;
// events whose teams match the topic and stats whose player or team match
// are maximally relevant. When fewer than three primary items survive, the
// fallback pass pads the feed, and the final order is a single stable sort
// over primary and fallback items by combined score. The returned slice is
// never longer than Count and is empty only when the snapshot itself holds
// nothing.
func Generate(topic string, snap *feeds.Snapshot, opts Options) []Item {
	if snap == nil {
		return nil
	}

	count := opts.Count
	if count <= 0 {
		count = defaultCount
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	items := collectPrimary(topic, snap, now)

	if len(items) < minPrimaryItems {
		items = append(items, collectFallback(topic, snap, items, now)...)
	}

	applyPersona(items, opts.Persona)

	sortByScore(items, now)

	if len(items) > count {
		items = items[:count]
	}
	return items
}

// collectPrimary gathers items that directly match the topic.
func collectPrimary(topic string, snap *feeds.Snapshot, now time.Time) []Item {
	var items []Item
	topicLower := strings.ToLower(topic)

	for _, article := range snap.News {
		text := article.Title + " " + article.Content
		rel := relevance.Score(text, topic)
		if rel <= relevanceThreshold {
			continue
		}

		items = append(items, Item{
			Kind:       KindNews,
			Headline:   article.Title,
			Summary:    summarize(article.Content),
			URL:        article.URL,
			Timestamp:  article.Timestamp,
			Relevance:  rel,
			Category:   relevance.Classify(article.Title, article.Content),
			SourceName: string(article.Source),
		})
	}

	for _, event := range snap.Events {
		var rel float64
		switch {
		// An exact team match is maximally relevant regardless of text.
		case event.HomeTeam != "" && strings.Contains(strings.ToLower(event.HomeTeam), topicLower) && topicLower != "":
			rel = 1.0
		case event.AwayTeam != "" && strings.Contains(strings.ToLower(event.AwayTeam), topicLower) && topicLower != "":
			rel = 1.0
		default:
			rel = relevance.Score(event.Title+" "+event.Content, topic)
		}
		if rel <= relevanceThreshold {
			continue
		}

		items = append(items, Item{
			Kind:      KindEvent,
			Headline:  event.Title,
			Summary:   event.Content,
			Timestamp: event.Timestamp,
			Relevance: rel,
			// Events are factual records, never analysis.
			Category:   relevance.CategoryNews,
			SourceName: string(event.Source),
			HomeTeam:   event.HomeTeam,
			AwayTeam:   event.AwayTeam,
			Score:      event.Score,
		})
	}

	for _, stat := range snap.Stats {
		if topicLower == "" {
			continue
		}
		if !strings.Contains(strings.ToLower(stat.PlayerName), topicLower) &&
			!strings.Contains(strings.ToLower(stat.Team), topicLower) {
			continue
		}

		items = append(items, Item{
			Kind:       KindStats,
			Headline:   stat.Headline(),
			Summary:    stat.Summary(),
			Timestamp:  now, // Stats are current
			Relevance:  1.0, // Direct name match
			Category:   relevance.CategoryStats,
			SourceName: string(stat.Source),
			PlayerName: stat.PlayerName,
			Team:       stat.Team,
			Goals:      stat.Goals,
			Assists:    stat.Assists,
		})
	}

	return items
}

// sortByScore orders items by non-increasing combined score. The sort is
// stable, so collection order breaks ties.
func sortByScore(items []Item, now time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].combinedScore(now) > items[j].combinedScore(now)
	})
}

// AdjustMix re-ranks an already generated feed by a content-mix preference:
// 0 favors plain news, 1 favors analysis, 0.5 leaves the balance unchanged.
// The adjustment is additive on the combined score, mirroring how persona
// boosts shift ranking without erasing relevance.
func AdjustMix(items []Item, mix float64) []Item {
	if mix < 0 {
		mix = 0
	} else if mix > 1 {
		mix = 1
	}
	shift := (mix - 0.5) * 0.4 // Full slider swing moves a score by ±0.2

	now := time.Now()
	out := make([]Item, len(items))
	copy(out, items)

	sort.SliceStable(out, func(i, j int) bool {
		return mixScore(&out[i], now, shift) > mixScore(&out[j], now, shift)
	})
	return out
}

func mixScore(it *Item, now time.Time, shift float64) float64 {
	score := it.combinedScore(now)
	switch it.Category {
	case relevance.CategoryAnalysis:
		score += shift
	case relevance.CategoryNews:
		score -= shift
	}
	return score
}

// summarize truncates article bodies for feed display.
func summarize(content string) string {
	runes := []rune(content)
	if len(runes) <= summaryLimit {
		return content
	}
	return string(runes[:summaryLimit]) + "..."
}
