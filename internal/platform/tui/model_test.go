package tui

import (
	"io"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/rocks-arcade/internal/core"
	"github.com/vovakirdan/rocks-arcade/internal/storage"
)

// scriptGame replays a fixed list of per-step events.
type scriptGame struct {
	steps    [][]core.Event
	stepped  int
	resets   int
	resizedW int
	resizedH int
	progress storage.Progress
	profile  string
}

func (g *scriptGame) ID() string { return "script" }
func (g *scriptGame) Title() string { return "Script" }
func (g *scriptGame) Reset(core.RuntimeConfig) { g.resets++ }
func (g *scriptGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "script") }
func (g *scriptGame) State() core.GameState { return core.GameState{} }
func (g *scriptGame) Resize(w, h int) { g.resizedW, g.resizedH = w, h }
func (g *scriptGame) StartAt(int) {}
func (g *scriptGame) AttachProgress(p storage.Progress, profile string) {
	g.progress, g.profile = p, profile
}

func (g *scriptGame) Step(core.InputFrame) core.StepResult {
	var events []core.Event
	if g.stepped < len(g.steps) {
		events = g.steps[g.stepped]
	}
	g.stepped++
	return core.StepResult{Events: events}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "rocks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestModel(t *testing.T, g *scriptGame, store *storage.Store, embedded bool) Model {
	t.Helper()
	m := NewModel(g, core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 60, Seed: 1}, Options{
		Store:    store,
		Profile:  "alice",
		Logger:   log.New(io.Discard),
		Embedded: embedded,
	})
	m.Init()
	return m
}

func tick(t *testing.T, m Model, n int) Model {
	t.Helper()
	for range n {
		next, cmd := m.Update(TickMsg{ID: m.tickID})
		require.NotNil(t, cmd, "tick loop must continue")
		m = next.(Model)
	}
	return m
}

func press(m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func ev(kind core.EventKind, score int) []core.Event {
	return []core.Event{{Kind: kind, Score: score}}
}

func TestNewModelAttachesProgress(t *testing.T) {
	store := openStore(t)
	g := &scriptGame{}
	newTestModel(t, g, store, false)

	assert.Equal(t, store, g.progress)
	assert.Equal(t, "alice", g.profile)
	assert.Equal(t, 1, g.resets)
}

func TestRunSavedOnDeath(t *testing.T) {
	store := openStore(t)
	g := &scriptGame{steps: [][]core.Event{
		ev(core.EventLevelComplete, 3),
		ev(core.EventLevelLoaded, 0),
		nil,
		ev(core.EventPlayerDied, 2),
	}}
	m := newTestModel(t, g, store, false)
	tick(t, m, 4)

	scores, err := store.TopScores("script", 10)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, 5, scores[0].Score)
	assert.Equal(t, 1, scores[0].Level)
	assert.Equal(t, "alice", scores[0].Profile)
}

func TestRetryStartsNewRun(t *testing.T) {
	store := openStore(t)
	g := &scriptGame{steps: [][]core.Event{
		ev(core.EventPlayerDied, 2),
		ev(core.EventLevelLoaded, 0),
		ev(core.EventPlayerDied, 1),
	}}
	m := newTestModel(t, g, store, false)
	tick(t, m, 3)

	scores, err := store.TopScores("script", 10)
	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.Equal(t, 2, scores[0].Score)
	assert.Equal(t, 1, scores[1].Score)
}

func TestCampaignCompleteSavesBankedScore(t *testing.T) {
	store := openStore(t)
	g := &scriptGame{steps: [][]core.Event{
		{{Kind: core.EventLevelComplete, Score: 4}, {Kind: core.EventCampaignComplete, Score: 4}},
	}}
	m := newTestModel(t, g, store, false)
	tick(t, m, 1)

	high, err := store.HighScore("script")
	require.NoError(t, err)
	assert.Equal(t, 4, high)
}

func TestNothingScoredNothingSaved(t *testing.T) {
	store := openStore(t)
	g := &scriptGame{steps: [][]core.Event{ev(core.EventPlayerDied, 0)}}
	m := newTestModel(t, g, store, false)
	tick(t, m, 1)

	scores, err := store.TopScores("script", 10)
	require.NoError(t, err)
	assert.Empty(t, scores)
}

func TestQuitSavesRunInProgress(t *testing.T) {
	store := openStore(t)
	g := &scriptGame{steps: [][]core.Event{ev(core.EventLevelComplete, 4)}}
	m := newTestModel(t, g, store, false)
	m = tick(t, m, 1)

	m, cmd := press(m, runeKey('q'))
	assert.NotNil(t, cmd)
	assert.True(t, m.IsQuitting())
	assert.Empty(t, m.View())

	scores, err := store.TopScores("script", 10)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, 4, scores[0].Score)
}

func TestStaleTickIgnored(t *testing.T) {
	g := &scriptGame{}
	m := newTestModel(t, g, nil, false)

	_, cmd := m.Update(TickMsg{ID: m.tickID + 1})
	assert.Nil(t, cmd)
	assert.Zero(t, g.stepped)
}

func TestResizeKeepsGame(t *testing.T) {
	g := &scriptGame{}
	m := newTestModel(t, g, nil, false)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 50, Height: 20})
	m = next.(Model)
	assert.Equal(t, 50, g.resizedW)
	assert.Equal(t, 19, g.resizedH, "one row is kept for help")
	assert.Equal(t, 1, g.resets)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	assert.Equal(t, 16, g.resizedH, "full help takes more rows")
	assert.Equal(t, 16, m.screen.Height())
}

func TestBackOnlyWhenEmbedded(t *testing.T) {
	esc := tea.KeyMsg{Type: tea.KeyEsc}

	standalone, _ := press(newTestModel(t, &scriptGame{}, nil, false), esc)
	assert.False(t, standalone.BackToMenu())

	embedded, _ := press(newTestModel(t, &scriptGame{}, nil, true), esc)
	assert.True(t, embedded.BackToMenu())
	_, cmd := embedded.Update(TickMsg{ID: embedded.tickID})
	assert.Nil(t, cmd, "tick loop stops after leaving")
}

func TestViewIncludesHelp(t *testing.T) {
	m := newTestModel(t, &scriptGame{}, nil, false)
	view := m.View()
	assert.Contains(t, view, "script")
	assert.Contains(t, view, "bomb")
}
