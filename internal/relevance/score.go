// Package relevance scores text against a topic and classifies articles as
// plain news or tactical analysis. Both are deliberately simple keyword
// heuristics so that ranking behavior stays predictable and testable without
// any embeddings infrastructure.
package relevance

import (
	"math"
	"strings"
)

// headlineWindow is the number of leading characters treated as the
// headline-equivalent position of a text blob.
const headlineWindow = 50

// Score returns a relevance score in [0, 1] for text given topic.
//
// The score is mention density: non-overlapping occurrences of the topic per
// 100 characters, normalized so that 3 mentions per 100 characters saturate
// at 1.0. A topic appearing within the first 50 characters gets a 1.5x
// headline boost, clamped to 1.0. The result is rounded to 2 decimal places.
// Either input being empty, or the topic not occurring at all, scores 0.
func Score(text, topic string) float64 {
	if text == "" || topic == "" {
		return 0
	}

	textLower := strings.ToLower(text)
	topicLower := strings.ToLower(topic)

	if !strings.Contains(textLower, topicLower) {
		return 0
	}

	mentions := strings.Count(textLower, topicLower)

	// Density counts runes, not bytes, so German text scores the same as
	// its ASCII transliteration.
	runes := []rune(textLower)
	density := float64(mentions) / float64(len(runes)) * 100

	score := math.Min(density/3.0, 1.0)

	head := runes
	if len(head) > headlineWindow {
		head = head[:headlineWindow]
	}
	if strings.Contains(string(head), topicLower) {
		score = math.Min(score*1.5, 1.0)
	}

	return math.Round(score*100) / 100
}
