package relevance

import "strings"

// Category labels a feed item's editorial content.
type Category string

const (
	CategoryNews     Category = "news"
	CategoryAnalysis Category = "analysis"
	CategoryStats    Category = "stats"
)

// analysisKeywords is the bilingual (German/English) vocabulary that marks
// tactical or analytical writing.
var analysisKeywords = []string{
	"taktik", "tactic", "tactical",
	"analyse", "analysis",
	"strategie", "strategy",
	"formation",
	"spielsystem", "system",
	"schwächen", "weakness", "stärken", "strength",
	"warum", "why", "wie", "how",
}

// Classify labels an article as news or analysis. An article counting two or
// more distinct analysis keywords across headline and body is analysis;
// everything else is news.
func Classify(headline, body string) Category {
	text := strings.ToLower(headline + " " + body)

	count := 0
	for _, keyword := range analysisKeywords {
		if strings.Contains(text, keyword) {
			count++
			if count >= 2 {
				return CategoryAnalysis
			}
		}
	}
	return CategoryNews
}
