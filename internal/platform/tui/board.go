package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zusu/flappy-arcade/internal/leaderboard"
)

// boardKeyMap defines the key bindings for the leaderboard overlay.
type boardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k boardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k boardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Back, k.Quit},
	}
}

func defaultBoardKeyMap() boardKeyMap {
	return boardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b", "l"),
			key.WithHelp("esc/l", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// boardModel is the leaderboard overlay shown over a frozen game.
type boardModel struct {
	entries  []leaderboard.Entry
	fetchErr error
	loading  bool
	table    table.Model
	help     help.Model
	keys     boardKeyMap
	width    int
	height   int
	quitting bool
}

func newBoardModel(width, height int) boardModel {
	h := help.New()
	h.ShowAll = false

	m := boardModel{
		keys:    defaultBoardKeyMap(),
		help:    h,
		width:   width,
		height:  height,
		loading: true,
	}
	m.table = m.createTable()
	return m
}

func (m *boardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Player", Width: 20},
		{Title: "Score", Width: 10},
	}

	height := m.height - 8
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// setEntries installs a fetch result into the overlay.
func (m *boardModel) setEntries(entries []leaderboard.Entry, err error) {
	m.loading = false
	m.fetchErr = err
	m.entries = entries

	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			e.Username,
			fmt.Sprintf("%d", e.Score),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// update handles a message; done reports that the overlay should close.
func (m boardModel) update(msg tea.Msg) (boardModel, tea.Cmd, bool) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, nil, true
		case key.Matches(msg, m.keys.Back):
			return m, nil, true
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.setEntries(m.entries, m.fetchErr)
		m.help.Width = msg.Width
		return m, nil, false
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd, false
}

// view renders the overlay.
func (m boardModel) view() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("LEADERBOARD", m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(tableStyle.Render(m.content()), m.width))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m boardModel) content() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.loading:
		return emptyStyle.Render("Fetching leaderboard...")
	case m.fetchErr != nil:
		return emptyStyle.Render("Could not reach the server.")
	case len(m.entries) == 0:
		return emptyStyle.Render("No scores recorded yet.\nBe the first on the board!")
	}
	return m.table.View()
}

// centerText pads text so it appears centered within width.
func centerText(text string, width int) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		pad := (width - lipgloss.Width(line)) / 2
		if pad > 0 {
			lines[i] = strings.Repeat(" ", pad) + line
		}
	}
	return strings.Join(lines, "\n")
}
