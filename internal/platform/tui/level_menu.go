package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/rocks-arcade/internal/core"
	"github.com/vovakirdan/rocks-arcade/internal/games/rocks/levels"
)

// LevelChoice is a pick from the level menu. Level is 1-indexed; 0 means
// resume saved progress.
type LevelChoice struct {
	Level int
}

type levelOption struct {
	label string
	hint  string
	level int
}

// LevelMenuModel lets the player continue, start over or jump to a level.
type LevelMenuModel struct {
	title     string
	options   []levelOption
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	choice    *LevelChoice
	quitting  bool
	back      bool
}

// NewLevelMenuModel lists the campaign levels. saved is the stored 0-based
// level index, or a negative number when there is no progress.
func NewLevelMenuModel(title string, campaign *levels.Campaign, saved int, width, height int) LevelMenuModel {
	var opts []levelOption
	if saved >= 0 && saved < campaign.Count() {
		name := ""
		if info, ok := campaign.Info(saved); ok {
			name = info.Name
		}
		opts = append(opts, levelOption{
			label: fmt.Sprintf("Continue (level %d: %s)", saved+1, name),
			level: 0,
		})
	}
	opts = append(opts, levelOption{label: "New game", level: 1})
	for i, lvl := range campaign.Levels() {
		opts = append(opts, levelOption{
			label: fmt.Sprintf("%2d. %s", i+1, lvl.Name),
			hint:  lvl.Metadata["hint"],
			level: i + 1,
		})
	}

	return LevelMenuModel{
		title:     title,
		options:   opts,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the model.
func (m LevelMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			m.quitting = true
			return m, tea.Quit
		case MenuActionUp:
			if m.cursor > 0 {
				m.cursor--
			}
		case MenuActionDown:
			if m.cursor < len(m.options)-1 {
				m.cursor++
			}
		case MenuActionSelect:
			m.choice = &LevelChoice{Level: m.options[m.cursor].level}
			return m, tea.Quit
		case MenuActionBack:
			m.back = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	menuHintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
)

// View renders the level list with the hint of the highlighted level.
func (m LevelMenuModel) View() string {
	if m.quitting || m.choice != nil || m.back {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(menuTitleStyle.Render(centerText(m.title, m.width)))
	b.WriteString("\n\n")

	for i, opt := range m.options {
		if i == m.cursor {
			b.WriteString(menuCursorStyle.Render(centerText("> "+opt.label, m.width)))
		} else {
			b.WriteString(centerText("  "+opt.label, m.width))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if hint := m.options[m.cursor].hint; hint != "" {
		b.WriteString(menuHintStyle.Render(centerText(hint, m.width)))
	}
	b.WriteString("\n\n")
	b.WriteString(centerText("Enter: Play  |  Esc: Back  |  Q: Quit", m.width))
	return b.String()
}

// Choice returns the selection, or nil while still choosing.
func (m LevelMenuModel) Choice() *LevelChoice {
	return m.choice
}

// IsQuitting returns true if the user wants to quit.
func (m LevelMenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if the user pressed back.
func (m LevelMenuModel) WantsBack() bool {
	return m.back
}

// RunLevelMenu shows the level menu in its own program. A nil choice means
// the user backed out or quit.
func RunLevelMenu(title string, campaign *levels.Campaign, saved int, cfg core.RuntimeConfig) (*LevelChoice, error) {
	p := tea.NewProgram(NewLevelMenuModel(title, campaign, saved, cfg.ScreenW, cfg.ScreenH), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	m, ok := final.(LevelMenuModel)
	if !ok {
		return nil, nil
	}
	return m.Choice(), nil
}
