// Package rss fetches Bundesliga news from kicker.de RSS feeds.
package rss

import (
	"context"
	"fmt"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/ksilabs/ksi/internal/feeds"
)

// Default kicker feeds; the OPML index lists many more but these two cover
// the general and Bundesliga news streams the assistant needs.
var defaultFeeds = []string{
	"https://newsfeed.kicker.de/news/aktuell",
	"https://newsfeed.kicker.de/bundesliga/news",
}

// itemsPerFeed caps how many articles are taken from each feed per fetch.
const itemsPerFeed = 5

// Source fetches news articles from one or more RSS feeds.
type Source struct {
	name   string
	urls   []string
	parser *gofeed.Parser
}

// New creates an RSS source for the default kicker feeds.
func New() *Source {
	return NewWithFeeds("Kicker RSS", defaultFeeds)
}

// NewWithFeeds creates an RSS source for explicit feed URLs.
func NewWithFeeds(name string, urls []string) *Source {
	return &Source{
		name:   name,
		urls:   urls,
		parser: gofeed.NewParser(),
	}
}

func (s *Source) Name() string {
	return s.name
}

// Fetch retrieves articles from every configured feed. A feed that fails to
// parse is skipped; Fetch only errors when no feed yielded anything.
func (s *Source) Fetch(ctx context.Context) (feeds.Snapshot, error) {
	var snap feeds.Snapshot
	var lastErr error

	for _, url := range s.urls {
		feed, err := s.parser.ParseURLWithContext(url, ctx)
		if err != nil {
			lastErr = fmt.Errorf("failed to fetch %s: %w", url, err)
			continue
		}

		count := 0
		for _, entry := range feed.Items {
			if count >= itemsPerFeed {
				break
			}

			published := time.Now()
			if entry.PublishedParsed != nil {
				published = *entry.PublishedParsed
			} else if entry.UpdatedParsed != nil {
				published = *entry.UpdatedParsed
			}

			author := ""
			if entry.Author != nil {
				author = entry.Author.Name
			}

			snap.News = append(snap.News, feeds.NewsArticle{
				Source:    feeds.SourceKickerRSS,
				Title:     entry.Title,
				Content:   entry.Description,
				URL:       entry.Link,
				Author:    author,
				Category:  feed.Title,
				Timestamp: published,
			})
			count++
		}
	}

	if len(snap.News) == 0 && lastErr != nil {
		return feeds.Snapshot{}, lastErr
	}
	return snap, nil
}
