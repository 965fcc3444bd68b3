package feed

import (
	"strings"

	"github.com/ksilabs/ksi/internal/config"
	"github.com/ksilabs/ksi/internal/relevance"
)

// personaBoost returns the ranking adjustment for one item under one
// persona. At most one rule fires per persona; anything unmatched, including
// unknown personas, gets zero.
func personaBoost(persona config.Persona, item *Item) float64 {
	switch persona {
	case config.PersonaCasualFan:
		// Casual fans prefer simple match results over analysis.
		if item.Category == relevance.CategoryNews && item.Kind == KindEvent {
			return 0.10
		}
		if item.Category == relevance.CategoryAnalysis {
			return -0.10
		}

	case config.PersonaExpertAnalyst:
		// Analysts want tactical depth, not bare results.
		if item.Category == relevance.CategoryAnalysis {
			return 0.20
		}
		if item.Category == relevance.CategoryNews && item.Kind == KindEvent {
			return -0.05
		}

	case config.PersonaBettingEnthusiast:
		// Bettors want stats and factual data.
		if item.Category == relevance.CategoryStats || item.Kind == KindStats {
			return 0.15
		}
		if item.Category == relevance.CategoryAnalysis {
			return -0.05
		}

	case config.PersonaFantasyPlayer:
		// Fantasy players live on player numbers and goal involvement.
		if item.Kind == KindStats {
			return 0.25
		}
		if item.Category == relevance.CategoryNews && strings.Contains(strings.ToLower(item.Headline), "goal") {
			return 0.10
		}
		if item.Category == relevance.CategoryAnalysis {
			return -0.10
		}
	}

	return 0
}

// applyPersona sets PersonaBoost on every item. An empty persona leaves all
// boosts at zero.
func applyPersona(items []Item, persona config.Persona) {
	if persona == "" {
		return
	}
	for i := range items {
		items[i].PersonaBoost = personaBoost(persona, &items[i])
	}
}
