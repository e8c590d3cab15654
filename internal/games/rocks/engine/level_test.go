package engine_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/rocks-arcade/internal/games/rocks/engine"
)

func TestParseLayout(t *testing.T) {
	l, err := engine.ParseLayout("demo", []string{
		"#####",
		"#.P.#",
		"#P:",
		"#####",
	})
	require.NoError(t, err)

	assert.Equal(t, 5, l.Width)
	assert.Equal(t, 4, l.Height)
	assert.Equal(t, engine.P(1, 2), l.Spawn, "spawn is the first P scanning columns")
	assert.Equal(t, engine.TileEmpty, l.At(1, 2))
	assert.Equal(t, engine.TileEmpty, l.At(2, 1), "extra spawn markers are dropped")
	assert.Equal(t, engine.TileEmpty, l.At(4, 2), "short rows are padded")
	assert.Equal(t, engine.TileDirt, l.At(2, 2))
	assert.Equal(t, engine.TileWall, l.At(-1, 0))
	assert.NoError(t, l.Validate())
}

func TestParseLayoutErrors(t *testing.T) {
	tests := []struct {
		name string
		rows []string
	}{
		{"no rows", nil},
		{"blank rows", []string{"", ""}},
		{"unknown glyph", []string{"#P?#"}},
		{"no spawn", []string{"#..#"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := engine.ParseLayout(tc.name, tc.rows)
			assert.ErrorIs(t, err, engine.ErrMalformedLevel)
		})
	}
}

func TestLevelValidate(t *testing.T) {
	good := engine.LevelData{Width: 2, Height: 1, Tiles: []engine.Tile{engine.TileEmpty, engine.TileWall}}
	require.NoError(t, good.Validate())

	tests := []struct {
		name  string
		level engine.LevelData
	}{
		{"zero size", engine.LevelData{}},
		{"short tiles", engine.LevelData{Width: 2, Height: 2, Tiles: make([]engine.Tile, 3)}},
		{"spawn outside", engine.LevelData{Width: 1, Height: 1, Tiles: make([]engine.Tile, 1), Spawn: engine.P(1, 0)}},
		{"bad tile", engine.LevelData{Width: 1, Height: 1, Tiles: []engine.Tile{0x7f}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.level.Validate(), engine.ErrMalformedLevel)
		})
	}
}

func TestClampLevel(t *testing.T) {
	tests := []struct {
		index, count, expected int
	}{
		{0, 3, 0},
		{2, 3, 2},
		{3, 3, 0},
		{-1, 3, 0},
		{99, 3, 0},
		{0, 0, 0},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.expected, engine.ClampLevel(tc.index, tc.count), "ClampLevel(%d, %d)", tc.index, tc.count)
	}
}

func TestLoadIsIdempotent(t *testing.T) {
	w := newWorld(t, tileRules(),
		"######",
		"#P:*.#",
		"#.O..#",
		"######",
	)
	first := w.Snapshot()
	firstHash := w.Hash()

	require.NoError(t, w.ApplyInput(press(right)))
	require.NoError(t, w.ApplyInput(press(right)))
	w.GravityTick()
	w.AnimateTick()
	require.Equal(t, 1, w.Player().Score)

	require.NoError(t, w.Load(0))
	assert.Equal(t, first, w.Snapshot())
	assert.Equal(t, firstHash, w.Hash())
	assert.Equal(t, 0, w.Player().Score)
	assert.Equal(t, engine.P(1, 1), w.Player().Pos)

	require.NoError(t, w.Load(0))
	assert.Equal(t, first, w.Snapshot())
}

func TestLoadRejectsOversizedLevel(t *testing.T) {
	small, err := engine.ParseLayout("small", []string{"#P#"})
	require.NoError(t, err)
	big, err := engine.ParseLayout("big", []string{"#P..#", "#...#"})
	require.NoError(t, err)

	w := engine.NewWorld(engine.Levels{small, big}, engine.Options{Width: 3, Height: 3})
	require.NoError(t, w.Load(0))
	before := w.Snapshot()
	gen := w.Generation()

	err = w.Load(1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, engine.ErrLevelTooLarge))
	assert.Equal(t, before, w.Snapshot(), "a rejected level leaves the world untouched")
	assert.Equal(t, gen, w.Generation())
	assert.Equal(t, "small", w.LevelName())

	assert.Error(t, w.Load(7), "missing level index")
	assert.Equal(t, before, w.Snapshot())
}

func TestLoadClearsCapacityBeyondLevel(t *testing.T) {
	a, err := engine.ParseLayout("a", []string{"####", "#P.#", "####"})
	require.NoError(t, err)
	b, err := engine.ParseLayout("b", []string{"P."})
	require.NoError(t, err)

	w := engine.NewWorld(engine.Levels{a, b}, engine.Options{Width: 6, Height: 6})
	require.NoError(t, w.Load(0))
	require.NoError(t, w.Load(1))

	assert.Equal(t, 0, w.Grid().Count(engine.TileWall), "previous level must not leak through")
	assert.Equal(t, engine.P(0, 0), w.Player().Pos)
}

func TestTileAtShowsPlayer(t *testing.T) {
	w := newWorld(t, tileRules(), "#P.#")

	assert.Equal(t, engine.TilePlayer, w.TileAt(engine.P(1, 0)))
	assert.Equal(t, engine.TileEmpty, w.Grid().Get(engine.P(1, 0)), "the player is never stored in the grid")
	assert.Equal(t, engine.TileEmpty, w.TileAt(engine.P(2, 0)))
}
