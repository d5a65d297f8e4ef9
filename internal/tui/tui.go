package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/tatianab/steps-and-leaps/internal/board"
	"github.com/tatianab/steps-and-leaps/internal/engine"
	"github.com/tatianab/steps-and-leaps/internal/models"
)

// Options configures the terminal front end.
type Options struct {
	Difficulty board.Difficulty
	SaveDir    string
	// Computer plays seat two by issuing the same intents a person would.
	Computer bool
	Logger   *zap.Logger
}

// model holds presentation-only state. The game itself lives in the engine;
// m.state is the last snapshot it published.
type model struct {
	engine      *engine.Engine
	events      <-chan engine.Event
	unsubscribe func()
	opts        Options
	state       models.GameState
	inputs      [2]textinput.Model
	avatars     [2]int
	focus       int

	difficulty board.Difficulty
	viewport   viewport.Model
	spinner    spinner.Model

	rolling     bool
	spinning    bool
	animating   bool
	loadingFact bool
	fact        string
	notice      string

	err    error
	width  int
	height int
}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true)

	stepsStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#3b82f6")).Bold(true)
	leapsStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e")).Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			Padding(0, 1)

	logStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	factStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8b5cf6")).
			Italic(true)

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#555555"))
)

func NewModel(eng *engine.Engine, opts Options) model {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Difficulty == "" {
		opts.Difficulty = board.Easy
	}
	state := eng.Snapshot()

	var inputs [2]textinput.Model
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = "Enter name..."
		ti.CharLimit = 24
		ti.Width = 24
		ti.SetValue(state.Players[i].Name)
		inputs[i] = ti
	}
	inputs[0].Focus()

	var avatars [2]int
	for i, p := range state.Players {
		avatars[i] = max(slices.Index(models.Avatars, p.Avatar), 0)
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = factStyle

	events, unsubscribe := eng.Subscribe(256)
	return model{
		engine:      eng,
		events:      events,
		unsubscribe: unsubscribe,
		opts:       opts,
		state:      state,
		inputs:     inputs,
		avatars:    avatars,
		difficulty: opts.Difficulty,
		spinner:    sp,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, waitForEvent(m.events))
}

type eventMsg struct {
	event engine.Event
}

type intentDoneMsg struct {
	accepted bool
}

type savedMsg struct {
	path string
	err  error
}

func waitForEvent(ch <-chan engine.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return eventMsg{ev}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			m.unsubscribe()
			return m, tea.Quit
		}
		if m.state.Phase == models.PhaseSetup {
			return m.updateSetup(msg)
		}
		return m.updatePlaying(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		logWidth, logHeight := max(msg.Width-m.sideWidth()-4, 20), max(msg.Height-4, 5)
		if m.viewport.Width == 0 {
			m.viewport = viewport.New(logWidth, logHeight)
		} else {
			m.viewport.Width = logWidth
			m.viewport.Height = logHeight
		}
		m.refreshLog()
		return m, nil

	case eventMsg:
		m.apply(msg.event)
		cmds := []tea.Cmd{waitForEvent(m.events)}
		if msg.event.Kind == engine.EventVictory && m.opts.SaveDir != "" {
			cmds = append(cmds, m.save(msg.event.State))
		}
		return m, tea.Batch(cmds...)

	case intentDoneMsg:
		m.rolling = false
		m.spinning = false
		m.animating = false
		m.state = m.engine.Snapshot()
		m.refreshLog()
		return m, m.computerTurn()

	case savedMsg:
		if msg.err != nil {
			m.opts.Logger.Warn("saving transcript", zap.Error(msg.err))
			m.notice = "Could not save this game."
		} else {
			m.notice = "Game saved to " + msg.path
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m model) updateSetup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Start):
		setup := engine.Setup{
			P1Name:     m.inputs[0].Value(),
			P1Avatar:   models.Avatars[m.avatars[0]],
			P2Name:     m.inputs[1].Value(),
			P2Avatar:   models.Avatars[m.avatars[1]],
			Difficulty: m.difficulty,
		}
		if err := m.engine.StartGame(setup); err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.notice = ""
		m.state = m.engine.Snapshot()
		m.refreshLog()
		return m, nil

	case key.Matches(msg, keys.Next), key.Matches(msg, keys.Prev):
		m.inputs[m.focus].Blur()
		m.focus = 1 - m.focus
		return m, m.inputs[m.focus].Focus()

	case key.Matches(msg, keys.AvatarNext):
		m.avatars[m.focus] = (m.avatars[m.focus] + 1) % len(models.Avatars)
		return m, nil

	case key.Matches(msg, keys.AvatarPrev):
		m.avatars[m.focus] = (m.avatars[m.focus] + len(models.Avatars) - 1) % len(models.Avatars)
		return m, nil

	case key.Matches(msg, keys.Difficulty):
		presets := board.Presets()
		i := slices.IndexFunc(presets, func(c board.Config) bool { return c.Difficulty == m.difficulty })
		m.difficulty = presets[(i+1)%len(presets)].Difficulty
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m model) updatePlaying(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.computerSeat() {
		if key.Matches(msg, keys.NewGame) {
			return m.newGame()
		}
		return m, nil
	}
	switch {
	case key.Matches(msg, keys.Roll):
		return m.roll()
	case key.Matches(msg, keys.Spin):
		return m.spin()
	case key.Matches(msg, keys.Again):
		if m.engine.Reset() {
			m.fact = ""
			m.notice = ""
			m.state = m.engine.Snapshot()
			m.refreshLog()
			return m, m.computerTurn()
		}
	case key.Matches(msg, keys.NewGame):
		return m.newGame()
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m model) roll() (tea.Model, tea.Cmd) {
	if m.state.Phase != models.PhaseRollDice || m.rolling || m.animating {
		return m, nil
	}
	m.rolling = true
	eng := m.engine
	return m, func() tea.Msg {
		return intentDoneMsg{eng.RollDice(context.Background())}
	}
}

func (m model) spin() (tea.Model, tea.Cmd) {
	if m.state.Phase != models.PhaseSpinWheel || m.spinning || m.animating {
		return m, nil
	}
	m.spinning = true
	eng := m.engine
	return m, func() tea.Msg {
		return intentDoneMsg{eng.Spin(context.Background())}
	}
}

func (m model) newGame() (tea.Model, tea.Cmd) {
	m.engine.Abandon()
	m.state = m.engine.Snapshot()
	m.rolling, m.spinning, m.animating = false, false, false
	m.loadingFact = false
	m.fact = ""
	m.notice = ""
	m.focus = 0
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	return m, m.inputs[0].Focus()
}

func (m model) computerSeat() bool {
	return m.opts.Computer && m.state.CurrentPlayer == models.SeatTwo &&
		m.state.Phase != models.PhaseSetup && m.state.Phase != models.PhaseGameOver
}

// computerTurn issues the next intent for seat two when it is computer-controlled.
func (m *model) computerTurn() tea.Cmd {
	if !m.computerSeat() {
		return nil
	}
	var cmd tea.Cmd
	switch m.state.Phase {
	case models.PhaseRollDice:
		_, cmd = m.roll()
		m.rolling = true
	case models.PhaseSpinWheel:
		_, cmd = m.spin()
		m.spinning = true
	}
	return cmd
}

// apply folds an engine event into the presentation flags.
func (m *model) apply(ev engine.Event) {
	m.state = ev.State
	switch ev.Kind {
	case engine.EventDiceRolled:
		m.rolling = false
		m.animating = true
	case engine.EventSpun:
		m.spinning = false
		m.animating = true
	case engine.EventMoved:
		m.animating = false
	case engine.EventFactRequested:
		m.loadingFact = true
		m.fact = ""
	case engine.EventFact:
		m.loadingFact = false
		m.fact = ev.Fact
	case engine.EventTurnSwitched, engine.EventReset, engine.EventAbandoned:
		m.loadingFact = false
		m.fact = ""
	}
	m.refreshLog()
}

func (m model) save(state models.GameState) tea.Cmd {
	dir := m.opts.SaveDir
	return func() tea.Msg {
		path, err := models.SaveTranscript(dir, state)
		return savedMsg{path, err}
	}
}

func (m *model) refreshLog() {
	if m.viewport.Width == 0 {
		return
	}
	m.viewport.SetContent(lipgloss.NewStyle().Width(m.viewport.Width).Render(strings.Join(m.state.Log, "\n")))
	m.viewport.GotoBottom()
}

func (m model) sideWidth() int {
	return max(m.width/2, 40)
}

func (m model) View() string {
	if m.state.Phase == models.PhaseSetup {
		return m.viewSetup()
	}
	return m.viewPlaying()
}

func (m model) viewSetup() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Steps & Leaps") + "\n\n")
	for i := range m.inputs {
		marker := "  "
		if m.focus == i {
			marker = "> "
		}
		fmt.Fprintf(&b, "%sPlayer %d  %s  avatar: %s\n", marker, i+1, m.inputs[i].View(), models.Avatars[m.avatars[i]])
	}
	fmt.Fprintf(&b, "\n  Mode: %s\n", m.difficulty.Label())
	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("tab: switch player • ctrl+←/→: avatar • ctrl+t: difficulty • enter: start • esc: quit"))
	return "\n" + b.String() + "\n"
}

func (m model) viewPlaying() string {
	cfg := board.MustForDifficulty(m.state.Difficulty)
	width := m.sideWidth()

	header := titleStyle.Render("Steps & Leaps") + "\n" +
		fmt.Sprintf("Race to %d! Watch out for monsters!\nMode: %s", cfg.MaxScore, m.state.Difficulty.Label())

	var players strings.Builder
	for _, p := range m.state.Players {
		marker := "  "
		if p.Seat == m.state.CurrentPlayer && !m.state.HasWinner() {
			marker = "▶ "
		}
		trophy := ""
		if m.state.Winner == p.Seat {
			trophy = "  🏆"
		}
		name := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color)).Bold(true).Render(p.Name)
		fmt.Fprintf(&players, "%s%s (%s) at %d/%d%s\n", marker, name, p.Avatar, p.Position, cfg.MaxScore, trophy)
	}

	dice := fmt.Sprintf("Dice: [%d] [%d]", m.state.LastDice[0], m.state.LastDice[1])
	if m.rolling {
		dice = "Dice: Rolling..."
	}
	leap := "Leap: -"
	if m.state.LastSpin > 0 {
		leap = fmt.Sprintf("Leap: %d", m.state.LastSpin)
	}
	if m.spinning {
		leap = "Leap: Spinning..."
	}
	stepsLine := stepsStyle.Render(dice)
	leapsLine := leapsStyle.Render(leap)
	if m.state.Phase != models.PhaseRollDice && m.state.Phase != models.PhaseMovingSteps {
		stepsLine = dimStyle.Render(dice)
	}
	if m.state.Phase != models.PhaseSpinWheel && m.state.Phase != models.PhaseMovingLeaps {
		leapsLine = dimStyle.Render(leap)
	}

	var buddy string
	switch {
	case m.loadingFact:
		buddy = m.spinner.View() + " Thinking of a fun fact..."
	case m.fact != "":
		buddy = "Math Buddy says:\n" + factStyle.Render(`"`+m.fact+`"`)
	}

	var hazards strings.Builder
	for _, h := range cfg.Hazards() {
		arrow := "↑"
		if h.Kind == board.Monster {
			arrow = "↓"
		}
		fmt.Fprintf(&hazards, "%s %d→%d  ", arrow, h.Start, h.End)
	}

	sections := []string{
		header,
		panelStyle.Width(width - 2).Render(strings.TrimRight(players.String(), "\n")),
		stepsLine + "   " + leapsLine,
	}
	if buddy != "" {
		sections = append(sections, buddy)
	}
	sections = append(sections, dimStyle.Width(width).Render(strings.TrimSpace(hazards.String())))
	if m.notice != "" {
		sections = append(sections, helpStyle.Render(m.notice))
	}
	sections = append(sections, helpStyle.Render(m.help()))

	side := lipgloss.NewStyle().Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
	if m.viewport.Width == 0 {
		return "\n" + side + "\n"
	}
	return "\n" + lipgloss.JoinHorizontal(lipgloss.Top, side, logStyle.Render(m.viewport.View())) + "\n"
}

func (m model) help() string {
	switch {
	case m.computerSeat():
		return "The computer is playing... • ctrl+n: new game • esc: quit"
	case m.state.Phase == models.PhaseRollDice:
		return "r: roll dice • ctrl+n: new game • esc: quit"
	case m.state.Phase == models.PhaseSpinWheel:
		return "s: spin • ctrl+n: new game • esc: quit"
	case m.state.Phase == models.PhaseGameOver:
		return "p: play again • ctrl+n: new game • esc: quit"
	}
	return "ctrl+n: new game • esc: quit"
}

// Run starts the terminal UI and blocks until the player quits.
func Run(eng *engine.Engine, opts Options) error {
	m := NewModel(eng, opts)
	defer m.unsubscribe()
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
