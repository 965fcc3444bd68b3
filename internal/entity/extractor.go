// Package entity maps free text to canonical Bundesliga team and player
// names using fixed alias tables.
package entity

import (
	"sort"
	"strings"
)

// teamAliases maps lowercase aliases to canonical team names.
// Matching is pure substring containment, so aliases are chosen long enough
// to avoid colliding with fragments of unrelated words.
var teamAliases = map[string]string{
	"bayern":                 "Bayern Munich",
	"munich":                 "Bayern Munich",
	"bayern munich":          "Bayern Munich",
	"dortmund":               "Borussia Dortmund",
	"bvb":                    "Borussia Dortmund",
	"borussia dortmund":      "Borussia Dortmund",
	"leipzig":                "RB Leipzig",
	"rb leipzig":             "RB Leipzig",
	"leverkusen":             "Bayer Leverkusen",
	"bayer leverkusen":       "Bayer Leverkusen",
	"frankfurt":              "Eintracht Frankfurt",
	"eintracht frankfurt":    "Eintracht Frankfurt",
	"union":                  "Union Berlin",
	"union berlin":           "Union Berlin",
	"freiburg":               "SC Freiburg",
	"sc freiburg":            "SC Freiburg",
	"gladbach":               "Borussia Mönchengladbach",
	"mönchengladbach":        "Borussia Mönchengladbach",
	"borussia mönchengladbach": "Borussia Mönchengladbach",
	"bremen":        "Werder Bremen",
	"werder bremen": "Werder Bremen",
	"wolfsburg":     "VfL Wolfsburg",
	"vfl wolfsburg": "VfL Wolfsburg",
	"stuttgart":     "VfB Stuttgart",
	"vfb stuttgart": "VfB Stuttgart",
	"hoffenheim":    "TSG Hoffenheim",
	"tsg hoffenheim": "TSG Hoffenheim",
	"augsburg":      "FC Augsburg",
	"fc augsburg":   "FC Augsburg",
	"mainz":         "Mainz 05",
	"mainz 05":      "Mainz 05",
	"bochum":        "VfL Bochum",
	"vfl bochum":    "VfL Bochum",
	"heidenheim":    "FC Heidenheim",
	"fc heidenheim": "FC Heidenheim",
	"st. pauli":     "St. Pauli",
	"st pauli":      "St. Pauli",
	"sankt pauli":   "St. Pauli",
	"kiel":          "Holstein Kiel",
	"holstein kiel": "Holstein Kiel",
}

// playerAliases maps lowercase aliases to canonical player names.
var playerAliases = map[string]string{
	"kane":           "Harry Kane",
	"harry kane":     "Harry Kane",
	"musiala":        "Jamal Musiala",
	"jamal musiala":  "Jamal Musiala",
	"wirtz":          "Florian Wirtz",
	"florian wirtz":  "Florian Wirtz",
	"füllkrug":       "Niclas Füllkrug",
	"niclas füllkrug": "Niclas Füllkrug",
	"sané":           "Leroy Sané",
	"leroy sané":     "Leroy Sané",
	"kimmich":        "Joshua Kimmich",
	"joshua kimmich": "Joshua Kimmich",
	"gündogan":       "İlkay Gündoğan",
	"ilkay gündogan": "İlkay Gündoğan",
	"goretzka":       "Leon Goretzka",
	"leon goretzka":  "Leon Goretzka",
}

// Extract returns the canonical names of all teams and players whose aliases
// appear in text. Matching is case-insensitive substring containment; no
// tokenization. The result is sorted and free of duplicates. Empty text
// yields an empty result.
func Extract(text string) []string {
	if text == "" {
		return nil
	}
	lower := strings.ToLower(text)

	seen := make(map[string]bool)
	for alias, canonical := range teamAliases {
		if strings.Contains(lower, alias) {
			seen[canonical] = true
		}
	}
	for alias, canonical := range playerAliases {
		if strings.Contains(lower, alias) {
			seen[canonical] = true
		}
	}

	if len(seen) == 0 {
		return nil
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsTeam reports whether name is a canonical team name known to the extractor.
func IsTeam(name string) bool {
	for _, canonical := range teamAliases {
		if canonical == name {
			return true
		}
	}
	return false
}
