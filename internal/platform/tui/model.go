package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/rocks-arcade/internal/core"
	"github.com/vovakirdan/rocks-arcade/internal/registry"
	"github.com/vovakirdan/rocks-arcade/internal/storage"
)

// Rows below the playfield used by the short and the full help bar.
const (
	helpHeight     = 1
	fullHelpHeight = 4
)

// ScoreSaver records finished runs.
type ScoreSaver interface {
	SaveScore(e storage.ScoreEntry) (string, error)
}

// progressAttacher is implemented by games that persist campaign progress.
type progressAttacher interface {
	AttachProgress(store storage.Progress, profile string)
}

// resizer is implemented by games that can change viewport without a reset.
type resizer interface {
	Resize(w, h int)
}

// Options configures a game session.
type Options struct {
	Store   *storage.Store
	Profile string
	Sound   *Sound
	Logger  *log.Logger
	// Embedded makes Back end the model instead of being ignored, for
	// hosting inside a SessionModel.
	Embedded bool
}

// run accumulates one attempt at the campaign: from the first load to a
// death, the campaign end, a new game or quitting.
type run struct {
	cleared int
	banked  int
	saved   bool
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	scores     ScoreSaver
	profile    string
	sound      *Sound
	logger     *log.Logger
	keys       *KeyMapper
	help       help.Model
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	run        *run
	tickID     uint64
	embedded   bool
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stderr)
	}

	m := Model{
		game:       game,
		profile:    opts.Profile,
		sound:      opts.Sound,
		logger:     logger,
		keys:       NewKeyMapper(),
		help:       help.New(),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		run:        &run{},
		tickID:     nextTickID(),
		embedded:   opts.Embedded,
	}
	m.screen = core.NewScreen(cfg.ScreenW, m.playfieldHeight())
	m.help.Width = cfg.ScreenW

	// Store is a concrete pointer; a nil *Store must not become a non-nil
	// interface.
	if opts.Store != nil {
		m.scores = opts.Store
		if pa, ok := game.(progressAttacher); ok {
			pa.AttachProgress(opts.Store, opts.Profile)
		}
	}
	return m
}

func (m Model) playfieldHeight() int {
	rows := helpHeight
	if m.help.ShowAll {
		rows = fullHelpHeight
	}
	return max(m.config.ScreenH-rows, 1)
}

// Init starts the game and the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.gameConfig())
	return tickCmd(m.tickID, m.config.TickRate)
}

func (m Model) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = m.playfieldHeight()
	return cfg
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		if msg.ID != m.tickID {
			return m, nil
		}
		return m.handleTick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil
	case key.Matches(msg, m.keys.Keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Keys.Back):
		if !m.embedded {
			return m, nil
		}
		m.finishRun(m.gameState.Score)
		m.backToMenu = true
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.finishRun(m.gameState.Score)
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width
	m.layout()
	return m, nil
}

// layout fits the screen and the game viewport to the terminal size. Games
// that cannot resize in place are restarted unless already over.
func (m *Model) layout() {
	w, h := m.config.ScreenW, m.playfieldHeight()
	m.screen.Resize(w, h)

	if r, ok := m.game.(resizer); ok {
		r.Resize(w, h)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.gameConfig())
	}
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	// Starting over abandons the current run.
	if m.inputFrame.Has(core.ActionRestartGame) {
		m.finishRun(m.gameState.Score)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.handleEvents(result.Events)

	m.inputFrame.Clear()
	return m, tickCmd(m.tickID, m.config.TickRate)
}

func (m Model) handleEvents(events []core.Event) {
	for _, e := range events {
		switch e.Kind {
		case core.EventThunk:
			m.sound.Thunk()
		case core.EventLevelComplete:
			m.run.cleared++
			m.run.banked += e.Score
		case core.EventCampaignComplete:
			m.finishRun(0)
		case core.EventPlayerDied:
			m.finishRun(e.Score)
		case core.EventLevelLoaded:
			if m.run.saved {
				*m.run = run{}
			}
		}
	}
}

// finishRun saves the current run once. current is the score collected on
// the level in progress.
func (m Model) finishRun(current int) {
	if m.run.saved {
		return
	}
	m.run.saved = true

	total := m.run.banked + current
	if m.scores == nil || total <= 0 {
		return
	}
	entry := storage.ScoreEntry{
		GameID:  m.game.ID(),
		Profile: m.profile,
		Level:   m.run.cleared,
		Score:   total,
	}
	id, err := m.scores.SaveScore(entry)
	if err != nil {
		m.logger.Warn("score save failed", "game", entry.GameID, "profile", entry.Profile, "error", err)
		return
	}
	m.logger.Debug("score saved", "run", id, "score", total, "levels", m.run.cleared)
}

// saveScreenshot writes the current screen as plain text under
// ~/.arcade/screenshots.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}
	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	if err := os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
	}
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View renders the playfield and the help bar.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys.Keys))
}

// IsQuitting reports whether the user asked to leave entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu reports whether the user asked to return to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a standalone Bubble Tea program for game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	p := tea.NewProgram(
		NewModel(game, cfg, opts),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
