// Package ui is the interactive terminal front end: a chat transcript with a
// text input, plus a feed browser that takes over the screen when the user
// accepts a feed offer or asks for one directly.
package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ksilabs/ksi/internal/brain"
	"github.com/ksilabs/ksi/internal/config"
	"github.com/ksilabs/ksi/internal/conversation"
	"github.com/ksilabs/ksi/internal/feed"
	"github.com/ksilabs/ksi/internal/feeds"
	"github.com/ksilabs/ksi/internal/logging"
)

// View mode
type viewMode int

const (
	modeChat viewMode = iota
	modeFeed
)

// Deps carries everything the UI needs; cmd/ksi wires it up.
type Deps struct {
	Config     *config.Config
	Tracker    *conversation.Tracker
	Aggregator *feeds.Aggregator
	Brain      *brain.Manager

	// SaveSnapshot persists a fresh snapshot; nil disables persistence.
	SaveSnapshot func(*feeds.Snapshot) error
}

// Model is the root Bubble Tea model.
type Model struct {
	deps Deps

	input   textinput.Model
	spin    spinner.Model
	history []string
	waiting bool
	width   int
	height  int
	err     error

	mode      viewMode
	feedTopic string
	feedItems []feed.Item
	feedMix   float64 // 0 news-heavy .. 1 analysis-heavy, 0.5 neutral

	offerPending bool
	offerTopic   string

	snapshot *feeds.Snapshot
}

// New creates the root model.
func New(deps Deps) Model {
	ti := textinput.New()
	ti.Placeholder = placeholderFor(deps.Config.Profile.Language)
	ti.Focus()
	ti.CharLimit = 500

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorHighlight)

	m := Model{
		deps:    deps,
		input:   ti,
		spin:    sp,
		mode:    modeChat,
		feedMix: 0.5,
	}
	m.pushSystem(greetingFor(deps.Config.Profile))
	return m
}

func placeholderFor(lang config.Language) string {
	if lang == config.LanguageEnglish {
		return "Ask about German football..."
	}
	return "Frag mich etwas zum deutschen Fußball..."
}

func greetingFor(p config.Profile) string {
	if p.Language == config.LanguageEnglish {
		return fmt.Sprintf("Hello %s! Ask me anything about the Bundesliga. Commands: /feed <topic>, /refresh, /help, /quit", p.Name)
	}
	return fmt.Sprintf("Hallo %s! Frag mich alles zur Bundesliga. Befehle: /feed <Thema>, /refresh, /help, /quit", p.Name)
}

// Init starts the initial data load and refresh ticker.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.refreshCmd(false),
		m.tickRefresh(),
		textinput.Blink,
	)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 4
		return m, nil

	case AnswerMsg:
		return m.handleAnswer(msg)

	case SnapshotMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.snapshot = msg.Snapshot
		if m.deps.SaveSnapshot != nil && msg.Snapshot != nil && !msg.Snapshot.Empty() {
			if err := m.deps.SaveSnapshot(msg.Snapshot); err != nil {
				logging.Warn("snapshot save failed", "error", err)
			}
		}
		if msg.Forced {
			m.pushSystem(fmt.Sprintf("Data refreshed: %d articles, %d events, %d player stats",
				len(msg.Snapshot.News), len(msg.Snapshot.Events), len(msg.Snapshot.Stats)))
		}
		return m, nil

	case TickMsg:
		return m, tea.Batch(m.refreshCmd(false), m.tickRefresh())

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode == modeFeed {
		switch msg.String() {
		case "q", "esc", "enter":
			m.mode = modeChat
			return m, nil
		case "ctrl+c":
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "enter":
		text := strings.TrimSpace(m.input.Value())
		if text == "" || m.waiting {
			return m, nil
		}
		m.input.SetValue("")
		return m.handleSubmit(text)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleSubmit(text string) (tea.Model, tea.Cmd) {
	if strings.HasPrefix(text, "/") {
		return m.handleCommand(text)
	}

	if m.offerPending {
		m.offerPending = false
		if isYes(text) {
			m.deps.Tracker.AcceptFeedOffer()
			m.openFeed(m.offerTopic)
			return m, nil
		}
		m.pushSystem("Okay.")
		// Fall through: a "no" that is itself a question still deserves an
		// answer, anything shorter is treated as a plain decline.
		if len([]rune(text)) <= 5 {
			return m, nil
		}
	}

	m.pushUser(text)
	m.waiting = true
	return m, tea.Batch(m.answerCmd(text), m.spin.Tick)
}

func (m Model) handleCommand(text string) (tea.Model, tea.Cmd) {
	parts := strings.SplitN(text, " ", 2)
	arg := ""
	if len(parts) > 1 {
		arg = strings.TrimSpace(parts[1])
	}

	switch parts[0] {
	case "/quit", "/q":
		return m, tea.Quit

	case "/refresh":
		m.pushSystem("Refreshing all sources...")
		return m, m.refreshCmd(true)

	case "/feed":
		topic := arg
		if topic == "" {
			topic = m.deps.Tracker.CurrentTopic()
		}
		if topic == "" {
			topic = m.deps.Config.Profile.FavoriteTeam
		}
		if topic == "" {
			m.pushSystem("No topic yet. Use /feed <topic> or just keep chatting.")
			return m, nil
		}
		m.openFeed(topic)
		return m, nil

	case "/mix":
		mix, err := strconv.ParseFloat(arg, 64)
		if err != nil || mix < 0 || mix > 1 {
			m.pushSystem("Usage: /mix <0..1>  (0 = news-heavy, 1 = analysis-heavy)")
			return m, nil
		}
		m.feedMix = mix
		m.pushSystem(fmt.Sprintf("Feed mix set to %.2f", mix))
		return m, nil

	case "/models":
		names := m.deps.Brain.ListAvailable()
		if len(names) == 0 {
			m.pushSystem("No LLM providers configured. Set OPENAI_API_KEY or ANTHROPIC_API_KEY.")
		} else {
			m.pushSystem("Available providers: " + strings.Join(names, ", "))
		}
		return m, nil

	case "/help":
		m.pushSystem("/feed <topic>  show a personalized feed\n/mix <0..1>  shift the feed between news and analysis\n/refresh  refetch all sources\n/models  list LLM providers\n/quit  exit")
		return m, nil
	}

	m.pushSystem("Unknown command: " + parts[0])
	return m, nil
}

func (m Model) handleAnswer(msg AnswerMsg) (tea.Model, tea.Cmd) {
	m.waiting = false

	if msg.Err != nil {
		m.err = msg.Err
		m.pushSystem("Error: " + msg.Err.Error())
		return m, nil
	}

	m.pushAssistant(msg.Content)
	m.deps.Tracker.AddTurn(msg.Query, msg.Content)

	if offer, topic := m.deps.Tracker.ShouldOfferFeed(); offer {
		m.offerPending = true
		m.offerTopic = topic
		m.pushSystem(offerTextFor(m.deps.Config.Profile.Language, topic))
	}
	return m, nil
}

func offerTextFor(lang config.Language, topic string) string {
	if lang == config.LanguageEnglish {
		return fmt.Sprintf("You seem interested in %s. Want a personalized feed on that? (y/n)", topic)
	}
	return fmt.Sprintf("Du scheinst dich für %s zu interessieren. Soll ich dir dazu einen personalisierten Feed erstellen? (j/n)", topic)
}

func isYes(text string) bool {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "y", "yes", "j", "ja", "yep", "sure", "ok", "gerne":
		return true
	}
	return false
}

func (m *Model) openFeed(topic string) {
	m.feedTopic = topic
	m.feedItems = feed.Generate(topic, m.snapshot, feed.Options{
		Count:   m.deps.Config.Feeds.ItemsPerFeed,
		Persona: m.deps.Config.Profile.Persona,
	})
	if m.feedMix != 0.5 {
		m.feedItems = feed.AdjustMix(m.feedItems, m.feedMix)
	}
	m.mode = modeFeed
}

// Transcript helpers. History lines carry their style already applied.

func (m *Model) pushUser(text string) {
	m.history = append(m.history, UserLine.Render("> "+text))
}

func (m *Model) pushAssistant(text string) {
	m.history = append(m.history, AssistantLine.Render(text))
}

func (m *Model) pushSystem(text string) {
	m.history = append(m.history, SystemLine.Render(text))
}

// Commands

func (m Model) answerCmd(query string) tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		snap, err := deps.Aggregator.Snapshot(ctx, false)
		if err != nil {
			logging.Warn("snapshot unavailable for query", "error", err)
		}

		provider := deps.Brain.Active()
		if provider == nil {
			return AnswerMsg{Query: query, Err: fmt.Errorf("no LLM provider configured")}
		}

		resp, err := provider.Generate(ctx, brain.Request{
			SystemPrompt: brain.BuildSystemPrompt(deps.Config.Profile, snap),
			UserPrompt:   query,
		})
		if err != nil {
			return AnswerMsg{Query: query, Err: err}
		}
		return AnswerMsg{Query: query, Content: resp.Content, Model: resp.Model}
	}
}

func (m Model) refreshCmd(force bool) tea.Cmd {
	agg := m.deps.Aggregator
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		snap, err := agg.Snapshot(ctx, force)
		return SnapshotMsg{Snapshot: snap, Forced: force, Err: err}
	}
}

func (m Model) tickRefresh() tea.Cmd {
	interval := time.Duration(m.deps.Config.Feeds.RefreshMinutes) * time.Minute
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View renders the UI.
func (m Model) View() string {
	if m.mode == modeFeed {
		return m.renderFeed()
	}

	var sections []string

	headerText := fmt.Sprintf("  KSI · Fußball GPT  ·  %d sources", m.deps.Aggregator.SourceCount())
	if m.snapshot != nil {
		headerText += fmt.Sprintf("  ·  %d articles", len(m.snapshot.News))
	}
	sections = append(sections, Header.Width(m.width).Render(headerText))

	sections = append(sections, m.renderTranscript())

	if m.waiting {
		sections = append(sections, m.spin.View()+" thinking...")
	} else {
		sections = append(sections, m.input.View())
	}

	sections = append(sections, StatusBar.Width(m.width).Render(m.renderStatusBar()))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderTranscript() string {
	bodyHeight := m.height - 4
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	wrap := lipgloss.NewStyle().Width(max(m.width-2, 20))
	var lines []string
	for _, entry := range m.history {
		lines = append(lines, strings.Split(wrap.Render(entry), "\n")...)
		lines = append(lines, "")
	}
	if len(lines) > bodyHeight {
		lines = lines[len(lines)-bodyHeight:]
	}
	for len(lines) < bodyHeight {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderStatusBar() string {
	if m.err != nil {
		return "  Error: " + m.err.Error()
	}
	state := m.deps.Tracker.State()
	status := fmt.Sprintf("  %s  ·  %d turns", m.deps.Config.Profile.Persona, state.TurnCount)
	if state.Topic != "" {
		status += "  ·  topic: " + state.Topic
	}
	return status + "  ·  [enter] send  [ctrl+c] quit"
}
