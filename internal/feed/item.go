// Package feed builds ranked, persona-aware content feeds from an aggregated
// snapshot. Generation is a pure in-memory computation: no I/O, no hidden
// state, and the returned order is the rank order.
package feed

import (
	"time"

	"github.com/ksilabs/ksi/internal/relevance"
)

// Kind identifies what sort of record a feed item was built from.
type Kind string

const (
	KindNews  Kind = "news"
	KindEvent Kind = "event"
	KindStats Kind = "stats"
)

// Item is one ranked entry of a generated feed.
type Item struct {
	Kind      Kind
	Headline  string
	Summary   string
	URL       string
	Timestamp time.Time

	// Relevance is the topic-match score in [0, 1].
	Relevance float64

	// Category is the editorial label (news, analysis, stats).
	Category relevance.Category

	// PersonaBoost is the signed ranking adjustment applied for the
	// requesting persona; zero when no persona was supplied.
	PersonaBoost float64

	// Fallback marks items produced by the engagement fallback pass
	// rather than the primary topic match.
	Fallback bool

	// Kind-specific detail, populated where it applies.
	SourceName string
	HomeTeam   string
	AwayTeam   string
	Score      string
	PlayerName string
	Team       string
	Goals      int
	Assists    int
}

// combinedScore is the rank key: relevance dominates at 70%, recency
// contributes 30%, and the persona boost shifts the result additively.
// Recency halves roughly every 24 hours of age.
func (it *Item) combinedScore(now time.Time) float64 {
	ageHours := now.Sub(it.Timestamp).Hours()
	if ageHours < 0 {
		ageHours = 0
	}
	recency := 1.0 / (1.0 + ageHours/24.0)
	return it.Relevance*0.7 + recency*0.3 + it.PersonaBoost
}
