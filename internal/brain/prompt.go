package brain

import (
	"strings"

	"github.com/ksilabs/ksi/internal/config"
	"github.com/ksilabs/ksi/internal/feeds"
)

const basePromptGerman = `Du bist Fußball GPT, ein KI-Assistent für deutschen Fußball.

Dein Fachwissen umfasst:
- Deutsche Bundesliga und 2. Bundesliga
- Europäische Wettbewerbe (Champions League, Europa League)
- Spielanalysen und Spielerstatistiken
- Anstehende Spiele und Spielpläne

Du hast Zugriff auf aktuelle Sportdaten. Bei Antworten:
1. Basiere Antworten auf den bereitgestellten Daten
2. Sei spezifisch mit Daten, Ergebnissen und Spielernamen
3. Wenn Informationen nicht verfügbar sind, sage das klar
4. Biete Kontext und Analyse, nicht nur rohe Fakten
5. Verwende einen professionellen aber freundlichen Ton

Antworte immer auf Deutsch.`

const basePromptEnglish = `You are Fußball GPT, an AI assistant for German football.

Your expertise includes:
- German Bundesliga and 2. Bundesliga
- European competitions (Champions League, Europa League)
- Match analysis and player statistics
- Upcoming fixtures and schedules

You have access to real-time sports data. When answering:
1. Base answers on the provided data
2. Be specific with dates, scores, and player names
3. If information isn't available, clearly state that
4. Provide context and analysis, not just raw facts
5. Use a professional but friendly tone

Always respond in English.`

var detailModifiersGerman = map[config.DetailLevel]string{
	config.DetailQuick: `WICHTIG: Dieser Nutzer bevorzugt KURZE Antworten.
- Maximal 2-3 Sätze
- Nur die wichtigsten Highlights
- Keine taktischen Details
- Einfache Sprache
- Direkte Antworten ohne Kontext
Beispiel: "Bayern führt die Tabelle mit 82 Punkten an, 13 Punkte vor Leverkusen."`,
	config.DetailBalanced: `WICHTIG: Dieser Nutzer bevorzugt AUSGEWOGENE Antworten.
- 2-3 Absätze
- Wichtige Fakten + etwas Kontext
- Gelegentliche taktische Einblicke
- Professioneller Ton
- Journalistischer Stil`,
	config.DetailDetailed: `WICHTIG: Dieser Nutzer bevorzugt DETAILLIERTE Antworten.
- Umfassende Analysen
- Taktische Tiefe (Formationen, Systeme, Strategien)
- Statistische Belege
- Fachterminologie erwünscht
- Vergleiche und historischer Kontext
- 3-5 Absätze oder mehr bei Bedarf`,
}

var detailModifiersEnglish = map[config.DetailLevel]string{
	config.DetailQuick: `IMPORTANT: This user prefers SHORT answers.
- Maximum 2-3 sentences
- Only the most important highlights
- No tactical details
- Simple language
- Direct answers without context
Example: "Bayern leads the table with 82 points, 13 ahead of Leverkusen."`,
	config.DetailBalanced: `IMPORTANT: This user prefers BALANCED answers.
- 2-3 paragraphs
- Key facts + some context
- Occasional tactical insights
- Professional tone
- Journalism style`,
	config.DetailDetailed: `IMPORTANT: This user prefers DETAILED answers.
- Comprehensive analysis
- Tactical depth (formations, systems, strategies)
- Statistical evidence
- Technical terminology welcome
- Comparisons and historical context
- 3-5 paragraphs or more as needed`,
}

// BuildSystemPrompt assembles the full system prompt for a query: the base
// prompt in the user's language, the detail-level modifier, and the current
// data snapshot. Answer quality depends entirely on this context block, so a
// nil or empty snapshot is stated explicitly rather than silently omitted.
func BuildSystemPrompt(profile config.Profile, snap *feeds.Snapshot) string {
	var b strings.Builder

	if profile.Language == config.LanguageEnglish {
		b.WriteString(basePromptEnglish)
		b.WriteString("\n\n")
		b.WriteString(modifierFor(detailModifiersEnglish, profile.DetailLevel))
	} else {
		b.WriteString(basePromptGerman)
		b.WriteString("\n\n")
		b.WriteString(modifierFor(detailModifiersGerman, profile.DetailLevel))
	}

	if profile.FavoriteTeam != "" {
		b.WriteString("\n\nThe user's favorite team is ")
		b.WriteString(profile.FavoriteTeam)
		b.WriteString(".")
	}

	b.WriteString("\n\nCurrent sports data context:\n")
	if snap == nil || snap.Empty() {
		b.WriteString("(no live data available right now)")
	} else {
		b.WriteString(snap.ContextString())
	}
	b.WriteString("\n\nUse this data to answer questions accurately. If the answer isn't in the provided data, say so clearly.")

	return b.String()
}

func modifierFor(modifiers map[config.DetailLevel]string, level config.DetailLevel) string {
	if m, ok := modifiers[level]; ok {
		return m
	}
	return modifiers[config.DetailBalanced]
}
