package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/rocks-arcade/internal/core"
	"github.com/vovakirdan/rocks-arcade/internal/games/rocks"
	"github.com/vovakirdan/rocks-arcade/internal/registry"
	"github.com/vovakirdan/rocks-arcade/internal/storage"
)

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenLevels
	screenGame
	screenScores
)

// starter is implemented by games that can begin at a chosen level.
type starter interface {
	StartAt(level int)
}

// SessionModel drives a whole session in one program:
// game menu, level menu, game, back to the menu, with the scoreboard on Tab.
type SessionModel struct {
	store   *storage.Store
	config  core.RuntimeConfig
	profile string
	logger  *log.Logger
	sound   *Sound

	screen     sessionScreen
	menu       MenuModel
	levels     LevelMenuModel
	scoreboard ScoreboardModel
	gameID     string
	game       *Model
	quitting   bool
}

// NewSessionModel creates a session for profile. store may be nil.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, profile string, logger *log.Logger) SessionModel {
	return SessionModel{
		store:   store,
		config:  cfg,
		profile: profile,
		logger:  logger,
		menu:    NewMenuModel(cfg),
	}
}

// WithSound plays effects through s during games.
func (m SessionModel) WithSound(s *Sound) SessionModel {
	m.sound = s
	return m
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen. Child models signal that
// they are done by returning tea.Quit; the session swallows that command
// and switches screens instead.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenLevels:
		return m.updateLevels(msg)
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	}
	return m.updateMenu(msg)
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.menu.WantsScoreboard():
		m.screen = screenScores
		m.scoreboard = NewScoreboardModel(m.scoreSource(), m.config.ScreenW, m.config.ScreenH)
		return m, nil
	case m.menu.Selected() != nil:
		return m.openLevels(m.menu.Selected().ID)
	}
	return m, cmd
}

func (m SessionModel) scoreSource() ScoreSource {
	if m.store == nil {
		return nil
	}
	return m.store
}

func (m SessionModel) openLevels(gameID string) (tea.Model, tea.Cmd) {
	campaign, err := rocks.LoadCampaign()
	if err != nil {
		m.logger.Error("no campaign", "error", err)
		return m.backToMenu()
	}
	m.gameID = gameID
	m.screen = screenLevels
	m.levels = NewLevelMenuModel(m.menu.Selected().Title, campaign, m.savedLevel(), m.config.ScreenW, m.config.ScreenH)
	return m, nil
}

// savedLevel returns the stored level index for the profile, or -1.
func (m SessionModel) savedLevel() int {
	if m.store == nil {
		return -1
	}
	lvl, err := m.store.LoadProgress(m.profile)
	if err != nil {
		if !errors.Is(err, storage.ErrNoProgress) {
			m.logger.Warn("progress load failed", "error", err)
		}
		return -1
	}
	return lvl
}

func (m SessionModel) updateLevels(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.levels.Update(msg)
	m.levels = next.(LevelMenuModel)

	switch {
	case m.levels.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.levels.WantsBack():
		return m.backToMenu()
	case m.levels.Choice() != nil:
		return m.startGame(m.levels.Choice().Level)
	}
	return m, cmd
}

func (m SessionModel) startGame(level int) (tea.Model, tea.Cmd) {
	game, err := registry.Create(m.gameID)
	if err != nil {
		m.logger.Error("cannot create game", "game", m.gameID, "error", err)
		return m.backToMenu()
	}
	if s, ok := game.(starter); ok && level > 0 {
		s.StartAt(level)
	}

	gm := NewModel(game, m.config, Options{
		Store:    m.store,
		Profile:  m.profile,
		Sound:    m.sound,
		Logger:   m.logger,
		Embedded: true,
	})
	m.game = &gm
	m.screen = screenGame
	m.logger.Info("game started", "game", m.gameID, "level", level)
	return m, m.game.Init()
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	gm := next.(Model)
	m.game = &gm

	switch {
	case m.game.IsQuitting():
		m.logGameEnd()
		m.quitting = true
		return m, tea.Quit
	case m.game.BackToMenu():
		m.logGameEnd()
		return m.backToMenu()
	}
	return m, cmd
}

func (m SessionModel) logGameEnd() {
	st := m.game.gameState
	m.logger.Info("game ended",
		"game", m.gameID,
		"level", st.Level+1,
		"score", st.Score,
		"won", st.Won,
		"levels_cleared", m.game.run.cleared,
	)
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scoreboard.Update(msg)
	m.scoreboard = next.(ScoreboardModel)

	switch {
	case m.scoreboard.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scoreboard.IsGoingBack():
		return m.backToMenu()
	}
	return m, cmd
}

func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.game = nil
	m.gameID = ""
	m.menu = NewMenuModel(m.config)
	return m, m.menu.Init()
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.screen {
	case screenLevels:
		return m.levels.View()
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scoreboard.View()
	}
	return m.menu.View()
}

// RunSession runs the full menu-driven session on the local terminal.
func RunSession(store *storage.Store, cfg core.RuntimeConfig, profile string, logger *log.Logger, sound *Sound) error {
	p := tea.NewProgram(NewSessionModel(store, cfg, profile, logger).WithSound(sound), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
