package ui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/appengine-ltd/last-shelter/internal/game"
	"github.com/appengine-ltd/last-shelter/internal/parser"
	"github.com/appengine-ltd/last-shelter/internal/session"
)

const maxLogLines = 500

type AppConfig struct {
	Session *session.Session
	Parser  *parser.Parser
	// Notes must be the notifier the session was built with.
	Notes   *Notifier
	Version string
}

type App struct {
	cfg AppConfig
}

func NewApp(cfg AppConfig) *App {
	return &App{cfg: cfg}
}

// Run drives the program until the player quits or ctx ends. Quitting
// cancels the context handed to session operations.
func (a *App) Run(ctx context.Context) error {
	if a.cfg.Session == nil || a.cfg.Notes == nil {
		return errors.New("ui: session and notifier are required")
	}
	m := newModel(ctx, a.cfg)
	defer m.cancel()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// noteMsg carries one session notification.
type noteMsg game.Notification

type opDoneMsg struct {
	verb string
	text string
	err  error
}

// hazardTickMsg carries the id of the encounter the tick belongs to.
type hazardTickMsg struct{ id string }

type hazardEndedMsg struct{}

type hazardAppliedMsg struct {
	id  string
	err error
}

type model struct {
	ctx     context.Context
	cancel  context.CancelFunc
	session *session.Session
	parser  *parser.Parser
	notes   <-chan game.Notification
	version string

	input    textinput.Model
	viewport viewport.Model
	lines    []string
	width    int
	height   int
	ready    bool

	busy       bool
	watching   bool
	lastEntity string
	clarify    *parser.ClarifyQuestion
}

func newModel(parent context.Context, cfg AppConfig) model {
	ctx, cancel := context.WithCancel(parent)
	p := cfg.Parser
	if p == nil {
		p = parser.New()
	}
	ti := textinput.New()
	ti.Placeholder = "What do you do? (help for commands)"
	ti.Focus()
	ti.CharLimit = 120
	ti.Width = 60

	m := model{
		ctx:     ctx,
		cancel:  cancel,
		session: cfg.Session,
		parser:  p,
		notes:   cfg.Notes.C(),
		version: cfg.Version,
		input:   ti,
	}
	snap := cfg.Session.Snapshot()
	m.appendLine(titleStyle.Render("LAST SHELTER"))
	m.appendLine(textStyle.Render(fmt.Sprintf("Day %d. The city is gone. Keep yourself alive.", snap.Player.GameDay)))
	m.appendLine(mutedStyle.Render("Type help for commands, explore to head out."))
	return m
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForNote(m.notes))
}

func waitForNote(ch <-chan game.Notification) tea.Cmd {
	return func() tea.Msg {
		return noteMsg(<-ch)
	}
}

func waitForHazard(ticks <-chan string, done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case id := <-ticks:
			return hazardTickMsg{id: id}
		case <-done:
			return hazardEndedMsg{}
		}
	}
}

// watchHazard starts listening to the session's hazard timer if one runs
// and nothing listens yet.
func (m *model) watchHazard() tea.Cmd {
	if m.watching {
		return nil
	}
	ticks, done, ok := m.session.HazardTicks()
	if !ok {
		return nil
	}
	m.watching = true
	return waitForHazard(ticks, done)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m.quit()
		case tea.KeyEnter:
			if m.busy {
				return m, nil
			}
			raw := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if raw == "" {
				return m, nil
			}
			return m.submit(raw)
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		logWidth, logHeight := m.logSize()
		if !m.ready {
			m.viewport = viewport.New(logWidth, logHeight)
			m.ready = true
		} else {
			m.viewport.Width = logWidth
			m.viewport.Height = logHeight
		}
		m.input.Width = max(10, logWidth-4)
		m.refresh()
		return m, nil

	case noteMsg:
		m.appendNote(game.Notification(msg))
		return m, waitForNote(m.notes)

	case opDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.appendLine(warnStyle.Render(describeError(msg.err)))
		} else if msg.text != "" {
			m.appendLine(textStyle.Render(msg.text))
		}
		m.announceEnding()
		return m, m.watchHazard()

	case hazardTickMsg:
		m.watching = false
		x, ok := m.session.Expedition()
		if !ok || x.Encounter == nil || x.Encounter.ID != msg.id {
			return m, m.watchHazard()
		}
		id := msg.id
		s := m.session
		return m, func() tea.Msg {
			_, err := s.ApplyHazardTick(id)
			return hazardAppliedMsg{id: id, err: err}
		}

	case hazardAppliedMsg:
		if msg.err != nil && !errors.Is(msg.err, session.ErrNoEncounter) {
			m.appendLine(warnStyle.Render(describeError(msg.err)))
		}
		m.announceEnding()
		return m, m.watchHazard()

	case hazardEndedMsg:
		m.watching = false
		return m, m.watchHazard()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) quit() (tea.Model, tea.Cmd) {
	m.cancel()
	return m, tea.Quit
}

// submit echoes the player's line and acts on it. A pending clarification
// accepts an option number.
func (m model) submit(raw string) (tea.Model, tea.Cmd) {
	m.appendLine(playerStyle.Render("> " + raw))
	if m.clarify != nil {
		q := m.clarify
		m.clarify = nil
		if n, err := strconv.Atoi(raw); err == nil {
			if n < 1 || n > len(q.Options) {
				m.appendLine(warnStyle.Render("No such option."))
				return m, nil
			}
			return m.dispatch(q.Options[n-1])
		}
	}

	intent := m.parser.Parse(m.parseContext(), raw)
	if intent.Clarify != nil {
		m.askClarify(intent.Clarify)
		return m, nil
	}
	return m.dispatch(intent)
}

func (m *model) askClarify(q *parser.ClarifyQuestion) {
	m.appendLine(mutedStyle.Render(q.Prompt))
	for i, opt := range q.Options {
		m.appendLine(mutedStyle.Render(fmt.Sprintf("  %d. %s", i+1, parser.IntentToCommandString(opt))))
	}
	if len(q.Options) > 0 {
		m.clarify = q
	}
}

func (m *model) appendNote(n game.Notification) {
	if n.Text == "" {
		return
	}
	switch n.Cue {
	case game.CueCombatStart, game.CueDefeat:
		m.appendLine(dangerStyle.Render(n.Text))
	case game.CueDiscovery:
		m.appendLine(findStyle.Render(n.Text))
	case game.CueVictory:
		m.appendLine(victoryStyle.Render(n.Text))
	default:
		m.appendLine(textStyle.Render(n.Text))
	}
}

func (m *model) announceEnding() {
	snap := m.session.Snapshot()
	switch {
	case snap.GameWon:
		m.appendLine(victoryStyle.Render(fmt.Sprintf("You survived %d days. Type reset to play again or quit.", snap.Statistics.TotalDaysSurvived)))
	case snap.IsGameOver:
		m.appendLine(dangerStyle.Render(fmt.Sprintf("You did not survive. Day %d. Type load, reset or quit.", snap.Player.GameDay)))
	}
}

func (m *model) appendLine(line string) {
	m.lines = append(m.lines, line)
	if len(m.lines) > maxLogLines {
		m.lines = m.lines[len(m.lines)-maxLogLines:]
	}
	m.refresh()
}

func (m *model) refresh() {
	if !m.ready {
		return
	}
	width, _ := m.logSize()
	wrapped := make([]string, len(m.lines))
	for i, line := range m.lines {
		wrapped[i] = lipgloss.NewStyle().Width(width).Render(line)
	}
	m.viewport.SetContent(strings.Join(wrapped, "\n"))
	m.viewport.GotoBottom()
}

func (m model) logSize() (int, int) {
	return int(float64(m.width) * 0.68), max(3, m.height-5)
}

func (m model) View() string {
	if !m.ready {
		return "\n  Preparing the shelter...\n"
	}
	panelWidth := m.width - m.viewport.Width - 4
	panel := panelStyle.Width(max(10, panelWidth)).Height(m.viewport.Height).Render(renderStatus(m.session))
	main := lipgloss.JoinHorizontal(lipgloss.Top, m.viewport.View(), panel)

	hint := "Enter to act, PgUp/PgDn to scroll, Esc to quit."
	if m.busy {
		hint = "..."
	}
	if m.version != "" {
		hint += "  v" + m.version
	}
	return lipgloss.JoinVertical(lipgloss.Left, main, "", m.input.View(), mutedStyle.Render(hint))
}
