package levels_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/rocks-arcade/internal/games/rocks/engine"
	"github.com/vovakirdan/rocks-arcade/internal/games/rocks/levels"
)

func writeLevel(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(filepath.Join(dir, name)), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestLoaderLoadAll(t *testing.T) {
	dir := t.TempDir()
	writeLevel(t, dir, "b.yaml", "id: b\nname: Second\nrows: ['#P>#']\n")
	writeLevel(t, dir, "nested/a.yml", "id: a\nrows: ['#P.#']\n")
	writeLevel(t, dir, "broken.yaml", "id: broken\nrows: ['#..#']\n")
	writeLevel(t, dir, "notes.txt", "not a level")

	lvls, err := levels.NewLoader(dir).LoadAll()
	require.NoError(t, err)
	require.Len(t, lvls, 2, "broken and non-yaml files are skipped")

	assert.Equal(t, "a", lvls[0].ID)
	assert.Equal(t, "a", lvls[0].Name, "name defaults to the id")
	assert.Equal(t, filepath.ToSlash(filepath.Join("nested", "a.yml")), lvls[0].FilePath)
	assert.Equal(t, "b", lvls[1].ID)
	assert.Equal(t, "Second", lvls[1].Name)
	assert.Equal(t, engine.TileStairs, lvls[1].Data.At(2, 0))
}

func TestLoaderLoadByID(t *testing.T) {
	dir := t.TempDir()
	writeLevel(t, dir, "one.yaml", "id: one\nrows: ['#P#']\n")
	loader := levels.NewLoader(dir)

	lvl, err := loader.LoadByID("one")
	require.NoError(t, err)
	assert.Equal(t, engine.P(1, 0), lvl.Data.Spawn)

	_, err = loader.LoadByID("two")
	assert.ErrorIs(t, err, levels.ErrLevelNotFound)
}

func TestLoaderMissingDir(t *testing.T) {
	_, err := levels.NewLoader(filepath.Join(t.TempDir(), "nope")).LoadAll()
	assert.Error(t, err)
}

func TestCampaignFromDir(t *testing.T) {
	dir := t.TempDir()
	writeLevel(t, dir, "1.yaml", "id: \"1\"\nrows: ['#P>#']\n")
	writeLevel(t, dir, "2.yaml", "id: \"2\"\nrows: ['#>P#']\n")

	c, err := levels.NewLoader(dir).Campaign()
	require.NoError(t, err)
	require.Equal(t, 2, c.Count())

	second, err := c.Level(1)
	require.NoError(t, err)
	assert.Equal(t, engine.P(2, 0), second.Spawn)

	_, err = c.Level(2)
	assert.ErrorIs(t, err, levels.ErrLevelNotFound)

	info, ok := c.Info(0)
	require.True(t, ok)
	assert.Equal(t, "1", info.ID)
	assert.Len(t, c.Levels(), 2)

	_, err = levels.NewLoader(t.TempDir()).Campaign()
	assert.Error(t, err, "an empty directory is not a campaign")
}

func TestBuiltinCampaign(t *testing.T) {
	c, err := levels.Builtin().Campaign()
	require.NoError(t, err)
	require.GreaterOrEqual(t, c.Count(), 3)

	w := engine.NewWorld(c, engine.Options{Rules: engine.DefaultRules()})
	for i, lvl := range c.Levels() {
		assert.NoError(t, lvl.Data.Validate(), lvl.ID)
		assert.LessOrEqual(t, lvl.Data.Width, engine.DefaultWidth, lvl.ID)
		assert.LessOrEqual(t, lvl.Data.Height, engine.DefaultHeight, lvl.ID)
		require.NoError(t, w.Load(i), lvl.ID)
		assert.Equal(t, engine.TilePlayer, w.TileAt(w.Player().Pos), lvl.ID)

		exits := 0
		for y := 0; y < lvl.Data.Height; y++ {
			for x := 0; x < lvl.Data.Width; x++ {
				if tile := lvl.Data.At(x, y); tile == engine.TileStairs || tile == engine.TileLockedStairs {
					exits++
				}
			}
		}
		assert.Positive(t, exits, "%s needs a way out", lvl.ID)
	}
}
