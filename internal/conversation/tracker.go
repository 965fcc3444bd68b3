// Package conversation tracks multi-turn session state and decides when the
// assistant should proactively offer a personalized feed.
//
// A Tracker is owned by exactly one session and accessed sequentially; it
// has no internal locking.
package conversation

import (
	"time"

	"github.com/ksilabs/ksi/internal/entity"
)

// topicWindow is how many trailing turns the pattern detector examines.
const topicWindow = 3

// minMentions is how often an entity must appear across the window before it
// counts as the conversation's topic.
const minMentions = 2

// Turn is one completed exchange. Entities are derived from the query at
// creation time and never mutated afterward. The assistant's response is
// deliberately not scanned, so topics the system itself introduced are not
// amplified.
type Turn struct {
	Query     string
	Response  string
	Timestamp time.Time
	Entities  []string
}

// State is a read-only snapshot of tracker state for status displays.
type State struct {
	TurnCount      int
	Topic          string
	FeedOffered    bool
	FeedAccepted   bool
	RecentEntities []string
}

// Tracker owns the ordered turn history for one conversation.
type Tracker struct {
	turns        []Turn
	currentTopic string
	feedOffered  bool
	feedAccepted bool
}

// NewTracker creates an empty tracker for a new session.
func NewTracker() *Tracker {
	return &Tracker{}
}

// AddTurn records a completed query/response exchange and re-evaluates the
// topic pattern. Empty queries degrade to turns with no entities.
func (t *Tracker) AddTurn(query, response string) {
	t.turns = append(t.turns, Turn{
		Query:     query,
		Response:  response,
		Timestamp: time.Now(),
		Entities:  entity.Extract(query),
	})
	t.detectTopicPattern()
}

// detectTopicPattern recomputes the current topic from the trailing window.
// Entities are counted with multiplicity across turns, so an entity repeated
// in consecutive turns reaches the threshold while two one-off entities do
// not.
func (t *Tracker) detectTopicPattern() {
	if len(t.turns) < 2 {
		t.currentTopic = ""
		return
	}

	start := len(t.turns) - topicWindow
	if start < 0 {
		start = 0
	}

	counts := make(map[string]int)
	var order []string // First-seen order breaks frequency ties
	for _, turn := range t.turns[start:] {
		for _, name := range turn.Entities {
			if counts[name] == 0 {
				order = append(order, name)
			}
			counts[name]++
		}
	}

	best, bestCount := "", 0
	for _, name := range order {
		if counts[name] > bestCount {
			best, bestCount = name, counts[name]
		}
	}

	if bestCount >= minMentions {
		t.currentTopic = best
	} else {
		t.currentTopic = ""
	}
}

// CurrentTopic returns the detected topic, or "" if none.
func (t *Tracker) CurrentTopic() string {
	return t.currentTopic
}

// ShouldOfferFeed reports whether a proactive feed offer should fire and for
// which topic. A true result durably marks the offer as made: until
// ResetFeedState the tracker never offers again, even if the topic changes.
func (t *Tracker) ShouldOfferFeed() (bool, string) {
	if t.feedOffered {
		return false, ""
	}
	if len(t.turns) < 2 {
		return false, ""
	}
	if t.currentTopic == "" {
		return false, ""
	}

	t.feedOffered = true
	return true, t.currentTopic
}

// AcceptFeedOffer records that the user accepted the offer.
func (t *Tracker) AcceptFeedOffer() {
	t.feedAccepted = true
}

// ResetFeedState re-arms the offer logic, clearing offer, acceptance and the
// detected topic. Turn history is kept.
func (t *Tracker) ResetFeedState() {
	t.feedOffered = false
	t.feedAccepted = false
	t.currentTopic = ""
}

// TurnCount returns the number of recorded turns.
func (t *Tracker) TurnCount() int {
	return len(t.turns)
}

// State returns a snapshot of the tracker for status displays.
func (t *Tracker) State() State {
	s := State{
		TurnCount:    len(t.turns),
		Topic:        t.currentTopic,
		FeedOffered:  t.feedOffered,
		FeedAccepted: t.feedAccepted,
	}
	if len(t.turns) > 0 {
		last := t.turns[len(t.turns)-1]
		s.RecentEntities = append(s.RecentEntities, last.Entities...)
	}
	return s
}
