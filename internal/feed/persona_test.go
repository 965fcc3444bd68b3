package feed

import (
	"testing"

	"github.com/ksilabs/ksi/internal/config"
	"github.com/ksilabs/ksi/internal/relevance"
)

func TestPersonaBoostTable(t *testing.T) {
	newsEvent := Item{Kind: KindEvent, Category: relevance.CategoryNews}
	newsArticle := Item{Kind: KindNews, Category: relevance.CategoryNews}
	analysis := Item{Kind: KindNews, Category: relevance.CategoryAnalysis}
	stats := Item{Kind: KindStats, Category: relevance.CategoryStats}
	goalNews := Item{Kind: KindNews, Category: relevance.CategoryNews, Headline: "Kane scores late goal"}

	tests := []struct {
		name    string
		persona config.Persona
		item    Item
		want    float64
	}{
		{"casual likes results", config.PersonaCasualFan, newsEvent, 0.10},
		{"casual dislikes analysis", config.PersonaCasualFan, analysis, -0.10},
		{"casual neutral on articles", config.PersonaCasualFan, newsArticle, 0},

		{"expert likes analysis", config.PersonaExpertAnalyst, analysis, 0.20},
		{"expert dislikes bare results", config.PersonaExpertAnalyst, newsEvent, -0.05},

		{"betting likes stats", config.PersonaBettingEnthusiast, stats, 0.15},
		{"betting dislikes analysis", config.PersonaBettingEnthusiast, analysis, -0.05},

		{"fantasy loves player stats", config.PersonaFantasyPlayer, stats, 0.25},
		{"fantasy likes goal news", config.PersonaFantasyPlayer, goalNews, 0.10},
		{"fantasy dislikes analysis", config.PersonaFantasyPlayer, analysis, -0.10},

		{"unknown persona", config.Persona("pundit"), analysis, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := personaBoost(tt.persona, &tt.item); got != tt.want {
				t.Errorf("personaBoost(%s) = %v, want %v", tt.persona, got, tt.want)
			}
		})
	}
}

func TestPersonaFirstMatchingRuleOnly(t *testing.T) {
	// A stats-kind item that also mentions a goal in its headline: for the
	// fantasy persona only the stats rule fires, not the goal-news rule.
	item := Item{Kind: KindStats, Category: relevance.CategoryStats, Headline: "Kane - 28 goals"}
	if got := personaBoost(config.PersonaFantasyPlayer, &item); got != 0.25 {
		t.Errorf("personaBoost = %v, want 0.25 from the first matching rule", got)
	}
}

func TestApplyPersonaEmptyIsNoop(t *testing.T) {
	items := []Item{
		{Kind: KindStats, Category: relevance.CategoryStats},
		{Kind: KindNews, Category: relevance.CategoryAnalysis},
	}
	applyPersona(items, "")
	for i, it := range items {
		if it.PersonaBoost != 0 {
			t.Errorf("items[%d].PersonaBoost = %v, want 0 without a persona", i, it.PersonaBoost)
		}
	}
}
