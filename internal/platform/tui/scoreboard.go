package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/rocks-arcade/internal/registry"
	"github.com/vovakirdan/rocks-arcade/internal/storage"
)

const (
	minWidthForStats = 90 // narrower terminals fold the stats panel into one line
	statsPanelWidth  = 24
	maxScores        = 100
)

// ScoreSource is the read side of score storage.
type ScoreSource interface {
	TopScores(gameID string, limit int) ([]storage.ScoreEntry, error)
	Stats(gameID string) (*storage.GameStats, error)
}

type scoreboardKeys struct {
	Scroll key.Binding
	Next   key.Binding
	Prev   key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func (k scoreboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.Next, k.Back, k.Quit}
}

func (k scoreboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Scroll, k.Next, k.Prev}, {k.Back, k.Quit}}
}

func newScoreboardKeys() scoreboardKeys {
	return scoreboardKeys{
		Scroll: key.NewBinding(key.WithKeys("up", "down", "k", "j"), key.WithHelp("↑/↓", "scroll")),
		Next:   key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next variant")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev variant")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	tabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
	emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4)
)

// ScoreboardModel lists the best runs of each registered game variant.
type ScoreboardModel struct {
	games    []registry.GameInfo
	current  int
	store    ScoreSource
	scores   []storage.ScoreEntry
	stats    *storage.GameStats
	table    table.Model
	help     help.Model
	keys     scoreboardKeys
	width    int
	height   int
	quitting bool
	back     bool
}

// NewScoreboardModel creates a scoreboard over every registered game. store
// may be nil.
func NewScoreboardModel(store ScoreSource, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		games:  registry.List(),
		store:  store,
		keys:   newScoreboardKeys(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.table = m.newTable()
	m.load()
	return m
}

// Focus shows gameID first when it is registered.
func (m ScoreboardModel) Focus(gameID string) ScoreboardModel {
	for i, g := range m.games {
		if g.ID == gameID {
			m.current = i
			m.load()
		}
	}
	return m
}

func (m ScoreboardModel) wide() bool {
	return m.width >= minWidthForStats
}

// scoreColumns sizes the table to the space left by the layout. The player
// column takes whatever is spare.
func scoreColumns(tableWidth int) []table.Column {
	cols := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Diamonds", Width: 9},
		{Title: "Levels", Width: 7},
		{Title: "Player", Width: 10},
		{Title: "Date", Width: 12},
	}
	used := 0
	for _, c := range cols {
		used += c.Width + 2 // cell padding
	}
	if spare := tableWidth - used; spare > 0 {
		cols[3].Width += min(spare, 14)
	}
	return cols
}

func (m ScoreboardModel) newTable() table.Model {
	width := m.width - 4
	if m.wide() {
		width -= statsPanelWidth + 6
	}
	t := table.New(
		table.WithColumns(scoreColumns(width)),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
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

// load fetches the runs of the current game. Storage errors show as an empty
// board.
func (m *ScoreboardModel) load() {
	m.scores, m.stats = nil, nil
	if m.store != nil && len(m.games) > 0 {
		id := m.games[m.current].ID
		if scores, err := m.store.TopScores(id, maxScores); err == nil {
			m.scores = scores
		}
		if stats, err := m.store.Stats(id); err == nil {
			m.stats = stats
		}
	}
	m.table.SetRows(scoreRows(m.scores))
	m.table.GotoTop()
}

func scoreRows(scores []storage.ScoreEntry) []table.Row {
	rows := make([]table.Row, len(scores))
	for i, s := range scores {
		player := s.Profile
		if player == "" {
			player = "-"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprint(s.Score),
			fmt.Sprint(s.Level),
			player,
			s.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	return rows
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.back = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.cycle(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.cycle(-1)
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.table.SetRows(scoreRows(m.scores))
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ScoreboardModel) cycle(step int) {
	if len(m.games) == 0 {
		return
	}
	m.current = (m.current + step + len(m.games)) % len(m.games)
	m.load()
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(menuTitleStyle.Render(centerText("BEST RUNS", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.tabs(), m.width))
	b.WriteString("\n\n")

	board := panelStyle.Render(m.boardContent())
	if m.wide() {
		board = lipgloss.JoinHorizontal(lipgloss.Top, board, "  ", m.statsPanel())
	} else if line := m.statsLine(); line != "" {
		board += "\n" + helpStyle.Render(line)
	}
	b.WriteString(board)
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) tabs() string {
	tabs := make([]string, len(m.games))
	for i, g := range m.games {
		if i == m.current {
			tabs[i] = activeTabStyle.Render(g.Title)
		} else {
			tabs[i] = tabStyle.Render(g.Title)
		}
	}
	line := strings.Join(tabs, " ")
	if lipgloss.Width(line) > m.width-4 && len(m.games) > 0 {
		return activeTabStyle.Render("< " + m.games[m.current].Title + " >")
	}
	return line
}

func (m ScoreboardModel) boardContent() string {
	if len(m.scores) == 0 {
		return emptyStyle.Render("No runs recorded yet.\nDig up some diamonds!")
	}
	return m.table.View()
}

func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.RunsCount == 0 {
		return ""
	}
	return fmt.Sprintf("%d runs  |  best %d  |  furthest %d levels  |  average %.1f",
		m.stats.RunsCount, m.stats.HighScore, m.stats.BestLevel, m.stats.AvgScore)
}

func (m ScoreboardModel) statsPanel() string {
	var b strings.Builder
	b.WriteString(menuCursorStyle.Render("Stats"))
	b.WriteString("\n\n")
	if m.stats == nil || m.stats.RunsCount == 0 {
		b.WriteString(helpStyle.Render("nothing yet"))
	} else {
		fmt.Fprintf(&b, "Runs      %d\n", m.stats.RunsCount)
		fmt.Fprintf(&b, "Best      %d\n", m.stats.HighScore)
		fmt.Fprintf(&b, "Furthest  %d\n", m.stats.BestLevel)
		fmt.Fprintf(&b, "Average   %.1f\n", m.stats.AvgScore)
		if !m.stats.LastPlayed.IsZero() {
			fmt.Fprintf(&b, "Last      %s", m.stats.LastPlayed.Local().Format("Jan 02"))
		}
	}
	return panelStyle.Width(statsPanelWidth).Render(b.String())
}

// IsGoingBack reports whether the user asked to return to the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.back
}

// IsQuitting reports whether the user asked to leave entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard shows the scoreboard in its own program, starting on gameID.
func RunScoreboard(store ScoreSource, gameID string, width, height int) error {
	p := tea.NewProgram(NewScoreboardModel(store, width, height).Focus(gameID), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
