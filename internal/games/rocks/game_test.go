package rocks

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/rocks-arcade/internal/core"
	"github.com/vovakirdan/rocks-arcade/internal/games/rocks/engine"
	"github.com/vovakirdan/rocks-arcade/internal/registry"
	"github.com/vovakirdan/rocks-arcade/internal/storage"
)

// writeLevels writes one YAML file per level, named so that they sort in
// argument order.
func writeLevels(t *testing.T, levels ...[]string) string {
	t.Helper()
	dir := t.TempDir()
	for i, rows := range levels {
		var b strings.Builder
		fmt.Fprintf(&b, "id: \"%02d\"\nname: Level %d\nrows:\n", i+1, i+1)
		for _, r := range rows {
			fmt.Fprintf(&b, "  - %q\n", r)
		}
		path := filepath.Join(dir, fmt.Sprintf("%02d.yaml", i+1))
		require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	}
	return dir
}

func startGame(t *testing.T, g *Game, levels ...[]string) *Game {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	SetLevelsDir(writeLevels(t, levels...))
	t.Cleanup(func() {
		SetLevelsDir("")
		SetStartLevel(0)
		SetDifficultyPreset("")
	})
	g.Reset(core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 60, Seed: 7})
	require.NotNil(t, g.World(), "reset failed: %v", g.err)
	return g
}

func step(g *Game, actions ...core.Action) core.StepResult {
	return g.Step(core.NewInputFrame(actions...))
}

func kinds(r core.StepResult) []core.EventKind {
	out := make([]core.EventKind, 0, len(r.Events))
	for _, e := range r.Events {
		out = append(out, e.Kind)
	}
	return out
}

type memProgress struct {
	levels map[string]int
}

func newMemProgress() *memProgress {
	return &memProgress{levels: make(map[string]int)}
}

func (m *memProgress) LoadProgress(profile string) (int, error) {
	l, ok := m.levels[profile]
	if !ok {
		return 0, storage.ErrNoProgress
	}
	return l, nil
}

func (m *memProgress) SaveProgress(profile string, level int) error {
	m.levels[profile] = level
	return nil
}

var (
	twoLevels = [][]string{
		{"#P*>#"},
		{"#P.>#"},
	}
	dropOnFloor = []string{
		"#####",
		"#.O.#",
		"#...#",
		"#P..#",
		"#####",
	}
	dropOnPlayer = []string{
		"###",
		"#O#",
		"#.#",
		"#P#",
		"###",
	}
)

func TestRegistered(t *testing.T) {
	for _, id := range []string{IDTiles, IDEntities} {
		require.True(t, registry.Exists(id), id)
		g, err := registry.Create(id)
		require.NoError(t, err)
		assert.Equal(t, id, g.ID())
	}
}

func TestLevelCompleteAndCampaign(t *testing.T) {
	g := startGame(t, New(), twoLevels...)

	r := step(g, core.ActionRight)
	assert.Equal(t, 1, r.State.Score)
	assert.Empty(t, r.Events)

	r = step(g, core.ActionRight)
	assert.Equal(t, []core.EventKind{core.EventLevelComplete, core.EventLevelLoaded}, kinds(r))
	assert.Equal(t, core.Event{Kind: core.EventLevelComplete, Level: 0, Score: 1}, r.Events[0])
	assert.Equal(t, 1, r.State.Level)
	assert.Equal(t, 0, r.State.Score)
	assert.False(t, r.State.GameOver)

	step(g, core.ActionRight)
	r = step(g, core.ActionRight)
	assert.Equal(t, []core.EventKind{core.EventLevelComplete, core.EventCampaignComplete}, kinds(r))
	assert.True(t, r.State.Won)
	assert.True(t, r.State.GameOver)
}

func TestGravitySpeedsUpPerLevel(t *testing.T) {
	g := startGame(t, New(), twoLevels...)
	assert.Equal(t, 15, g.sched.Gravity.Period, "250ms at 60fps")

	step(g, core.ActionRight)
	step(g, core.ActionRight)
	require.Equal(t, 1, g.State().Level)
	assert.Equal(t, 14, g.sched.Gravity.Period, "227ms at 60fps")
}

func TestThunkEventShakesCamera(t *testing.T) {
	g := startGame(t, New(), dropOnFloor)

	var thunks []int
	for i := 1; i <= 30; i++ {
		if step(g).Has(core.EventThunk) {
			thunks = append(thunks, i)
		}
	}
	assert.Equal(t, []int{30}, thunks, "second gravity sweep lands the rock")
	assert.True(t, g.camera.Shaking())

	for i := 0; i < 10; i++ {
		step(g)
	}
	assert.False(t, g.camera.Shaking())
}

func TestSquashAndRestart(t *testing.T) {
	g := startGame(t, New(), dropOnPlayer)

	var died core.StepResult
	for i := 0; i < 15; i++ {
		died = step(g)
	}
	assert.True(t, died.Has(core.EventPlayerDied))
	assert.True(t, died.State.GameOver)
	assert.False(t, died.State.Won)

	screen := core.NewScreen(40, 12)
	g.Render(screen)
	assert.Contains(t, screen.String(), "Squashed!")

	r := step(g, core.ActionRestart)
	assert.True(t, r.Has(core.EventLevelLoaded))
	assert.False(t, r.State.GameOver)
	assert.Equal(t, engine.TileRock, g.World().Grid().Get(engine.P(1, 1)))
}

func TestPauseFreezesSimulation(t *testing.T) {
	g := startGame(t, New(), dropOnPlayer)

	step(g, core.ActionPause)
	for i := 0; i < 30; i++ {
		step(g, core.ActionRight)
	}
	assert.True(t, g.State().Paused)
	assert.False(t, g.State().GameOver)
	assert.Equal(t, engine.TileRock, g.World().Grid().Get(engine.P(1, 1)))
}

func TestProgressPersistence(t *testing.T) {
	mem := newMemProgress()
	g := New()
	g.AttachProgress(mem, "alice")
	startGame(t, g, twoLevels...)

	assert.Equal(t, 0, mem.levels["alice"], "first load is saved")
	step(g, core.ActionRight)
	step(g, core.ActionRight)
	assert.Equal(t, 1, mem.levels["alice"])

	resumed := New()
	resumed.AttachProgress(mem, "alice")
	resumed.Reset(core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 60})
	assert.Equal(t, 1, resumed.State().Level)

	mem.levels["bob"] = 9
	corrupt := New()
	corrupt.AttachProgress(mem, "bob")
	corrupt.Reset(core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 60})
	assert.Equal(t, 0, corrupt.State().Level, "out of range index restarts the campaign")
	assert.Equal(t, 0, mem.levels["bob"])
}

func TestProgressWithSQLite(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "rocks.db"))
	require.NoError(t, err)
	defer store.Close()

	g := New()
	g.AttachProgress(store, "local")
	startGame(t, g, twoLevels...)
	step(g, core.ActionRight)
	step(g, core.ActionRight)

	level, err := store.LoadProgress("local")
	require.NoError(t, err)
	assert.Equal(t, 1, level)
}

func TestStartLevelOverridesProgress(t *testing.T) {
	mem := newMemProgress()
	mem.levels["alice"] = 0
	SetStartLevel(2)

	g := New()
	g.AttachProgress(mem, "alice")
	startGame(t, g, twoLevels...)

	assert.Equal(t, 1, g.State().Level)
	assert.Equal(t, 0, GetStartLevel(), "start level is consumed by Reset")
}

func TestStartAtIsPerGame(t *testing.T) {
	mem := newMemProgress()
	mem.levels["alice"] = 0

	g := New()
	g.AttachProgress(mem, "alice")
	g.StartAt(2)
	startGame(t, g, twoLevels...)
	assert.Equal(t, 1, g.State().Level)

	other := New()
	other.AttachProgress(mem, "carol")
	other.Reset(core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 60})
	assert.Equal(t, 0, other.State().Level)

	g.Reset(core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 60})
	assert.Equal(t, 1, g.State().Level, "second reset resumes saved progress")
}

func TestEntityVariant(t *testing.T) {
	g := startGame(t, NewEntities(), dropOnFloor)

	assert.Equal(t, engine.VariantEntities, g.World().Rules().Variant)
	assert.Len(t, g.World().Entities(), 1)
	assert.Zero(t, g.World().Grid().Count(engine.TileRock))
}

func TestRender(t *testing.T) {
	g := startGame(t, New(), twoLevels...)
	screen := core.NewScreen(40, 12)
	g.Render(screen)

	assert.Contains(t, screen.Row(0), "Level 1/2: Level 1")
	// A 5x1 level is centred in the 40x10 playfield.
	assert.Equal(t, '█', screen.Get(17, 6))
	assert.Equal(t, '►', screen.Get(18, 6))
	assert.Equal(t, '◆', screen.Get(19, 6))
	assert.Equal(t, '≡', screen.Get(20, 6))

	step(g, core.ActionLeft)
	g.Render(screen)
	assert.Equal(t, '◄', screen.Get(18, 6), "player faces left after bumping the wall")
}
