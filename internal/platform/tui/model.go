package tui

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zusu/flappy-arcade/internal/config"
	"github.com/zusu/flappy-arcade/internal/core"
	"github.com/zusu/flappy-arcade/internal/game"
	"github.com/zusu/flappy-arcade/internal/leaderboard"
	"github.com/zusu/flappy-arcade/internal/profile"
)

// backendTimeout bounds every fire-and-forget backend call made from the
// update loop.
const backendTimeout = 5 * time.Second

// scoreResultMsg carries the outcome of an async score submission. seq ties
// it to the run that produced it; results from earlier runs are discarded.
type scoreResultMsg struct {
	seq       int
	highScore int
	err       error
}

// leaderboardMsg carries an async leaderboard fetch for the overlay.
type leaderboardMsg struct {
	seq     int
	entries []leaderboard.Entry
	err     error
}

// presenceMsg carries an active-user count update.
type presenceMsg struct {
	count int
	err   error
}

// Model is the Bubble Tea model for a single player's game loop.
type Model struct {
	cfg      config.GameConfig
	rc       core.RuntimeConfig
	session  *game.Session
	seq      int // run token, bumped on restart
	screen   *core.Screen
	input    core.InputFrame
	backend  Backend // nil when playing offline
	prof     *profile.Profile
	profPath string
	username string

	activeUsers int
	serverBest  int
	submitted   bool
	board       *boardModel
	nudgeRng    *rand.Rand
	quitting    bool
}

// NewModel creates the game model. backend may be nil for offline play.
func NewModel(cfg config.GameConfig, rc core.RuntimeConfig, backend Backend, prof *profile.Profile, profPath string) Model {
	if rc.Seed == 0 {
		rc.Seed = time.Now().UnixNano()
	}

	return Model{
		cfg:      cfg,
		rc:       rc,
		session:  game.NewSession(cfg, rc),
		screen:   core.NewScreen(rc.ScreenW, rc.ScreenH),
		input:    core.NewInputFrame(),
		backend:  backend,
		prof:     prof,
		profPath: profPath,
		username: prof.Username,
		nudgeRng: rand.New(rand.NewSource(rc.Seed ^ 0x5f3759df)),
	}
}

// Init starts the tick loop and, when connected, the presence machinery.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.rc.TickRate)}
	if m.backend != nil {
		cmds = append(cmds, m.fetchPresenceCmd(), nudgeTickCmd())
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The overlay owns all input while open.
	if m.board != nil {
		return m.updateBoard(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.rc.ScreenW = msg.Width
		m.rc.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil
	case TickMsg:
		return m.handleTick()
	case nudgeTickMsg:
		return m, tea.Batch(m.nudgeCmd(), nudgeTickCmd())
	case presenceMsg:
		if msg.err == nil {
			m.activeUsers = msg.count
		}
		return m, nil
	case scoreResultMsg:
		if msg.seq == m.seq && msg.err == nil {
			m.serverBest = msg.highScore
		}
		return m, nil
	case leaderboardMsg:
		// Stale fetch; the overlay that wanted it is gone.
		return m, nil
	}

	return m, nil
}

// actionForKey maps a physical key press to a semantic action. Everything
// past this point works in actions, never in key names.
func actionForKey(msg tea.KeyMsg) core.Action {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit
	case " ", "up", "w":
		return core.ActionFlap
	case "p", "esc":
		return core.ActionPause
	case "r":
		return core.ActionRestart
	case "l", "tab":
		return core.ActionBoard
	}
	return core.ActionNone
}

// handleKey dispatches keyboard input as game actions.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch actionForKey(msg) {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionFlap:
		m.input.Set(core.ActionFlap)
	case core.ActionPause:
		m.input.Set(core.ActionPause)
	case core.ActionRestart:
		if m.session.Phase() == game.PhaseTerminal {
			m.input.Set(core.ActionRestart)
		}
	case core.ActionBoard:
		if m.backend != nil {
			board := newBoardModel(m.rc.ScreenW, m.rc.ScreenH)
			m.board = &board
			return m, m.fetchLeaderboardCmd()
		}
	}
	return m, nil
}

// handleTick advances the simulation one step.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.input.Has(core.ActionRestart) && m.session.Phase() == game.PhaseTerminal {
		m.seq++
		// Advance rather than reseed, so a run started with a fixed seed
		// stays reproducible across restarts.
		m.rc.Seed++
		m.session = game.NewSession(m.cfg, m.rc)
		m.submitted = false
		m.input.Clear()
		return m, tickCmd(m.rc.TickRate)
	}

	result := m.session.Step(m.input)
	m.input.Clear()

	var cmds []tea.Cmd
	for _, ev := range result.Events {
		if ev.Kind != game.EventHit {
			continue
		}
		if m.prof.RecordScore(ev.Score) && m.profPath != "" {
			//nolint:errcheck // Best-effort save, game continues regardless
			m.prof.Save(m.profPath)
		}
		if m.backend != nil && !m.submitted {
			m.submitted = true
			cmds = append(cmds, m.submitScoreCmd(ev.Score))
		}
	}

	cmds = append(cmds, tickCmd(m.rc.TickRate))
	return m, tea.Batch(cmds...)
}

// updateBoard routes messages to the leaderboard overlay.
func (m Model) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case leaderboardMsg:
		if msg.seq == m.seq {
			m.board.setEntries(msg.entries, msg.err)
		}
		return m, nil
	case nudgeTickMsg:
		return m, tea.Batch(m.nudgeCmd(), nudgeTickCmd())
	case presenceMsg:
		if msg.err == nil {
			m.activeUsers = msg.count
		}
		return m, nil
	case TickMsg:
		// The world freezes while the overlay is open: simulation ticks
		// are not rescheduled, and resume when the overlay closes.
		return m, nil
	}

	board, cmd, done := m.board.update(msg)
	*m.board = board
	if board.quitting {
		m.quitting = true
		return m, tea.Quit
	}
	if done {
		m.board = nil
		m.input.Clear()
		return m, tickCmd(m.rc.TickRate)
	}
	return m, cmd
}

// View renders the current frame.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.board != nil {
		return m.board.view()
	}

	m.session.Render(m.screen)
	m.drawHUD()
	return RenderScreen(m.screen)
}

// drawHUD overlays connection status on top of the rendered frame.
func (m *Model) drawHUD() {
	best := m.prof.BestScore
	if m.serverBest > best {
		best = m.serverBest
	}
	m.screen.DrawTextColored(1, 0, fmt.Sprintf("%s  best %d", m.username, best), core.ColorGray)

	if m.backend != nil {
		label := fmt.Sprintf("%d online", m.activeUsers)
		m.screen.DrawTextColored(m.screen.Width()-len(label)-1, 0, label, core.ColorGray)
	}
}

func (m Model) submitScoreCmd(score int) tea.Cmd {
	backend, username, seq := m.backend, m.username, m.seq
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), backendTimeout)
		defer cancel()
		high, err := backend.SubmitScore(ctx, username, score)
		return scoreResultMsg{seq: seq, highScore: high, err: err}
	}
}

func (m Model) fetchLeaderboardCmd() tea.Cmd {
	backend, seq := m.backend, m.seq
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), backendTimeout)
		defer cancel()
		entries, err := backend.Leaderboard(ctx)
		return leaderboardMsg{seq: seq, entries: entries, err: err}
	}
}

func (m Model) fetchPresenceCmd() tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), backendTimeout)
		defer cancel()
		n, err := backend.ActiveUsers(ctx)
		return presenceMsg{count: n, err: err}
	}
}

func (m Model) nudgeCmd() tea.Cmd {
	backend := m.backend
	delta := m.nudgeRng.Intn(11) - 5
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), backendTimeout)
		defer cancel()
		n, err := backend.NudgeActiveUsers(ctx, delta)
		return presenceMsg{count: n, err: err}
	}
}

// Run starts the Bubble Tea program with the given model.
func Run(cfg config.GameConfig, rc core.RuntimeConfig, backend Backend, prof *profile.Profile, profPath string) error {
	model := NewModel(cfg, rc, backend, prof, profPath)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
