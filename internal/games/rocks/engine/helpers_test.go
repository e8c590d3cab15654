package engine_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/rocks-arcade/internal/games/rocks/engine"
)

func tileRules() engine.Rules {
	return engine.DefaultRules()
}

func entityRules() engine.Rules {
	r := engine.DefaultRules()
	r.Variant = engine.VariantEntities
	return r
}

// newWorld loads a single layout into a world whose capacity matches the
// layout exactly.
func newWorld(t *testing.T, rules engine.Rules, rows ...string) *engine.World {
	t.Helper()
	l, err := engine.ParseLayout(t.Name(), rows)
	require.NoError(t, err)
	w := engine.NewWorld(engine.Levels{l}, engine.Options{Width: l.Width, Height: l.Height, Rules: rules})
	require.NoError(t, w.Load(0))
	return w
}

func layout(w *engine.World) string {
	width, height := w.LevelSize()
	return w.Grid().Region(width, height)
}

func rows(lines ...string) string {
	return strings.Join(lines, "\n")
}

func press(opts ...func(*engine.Input)) engine.Input {
	var in engine.Input
	for _, o := range opts {
		o(&in)
	}
	return in
}

func up(in *engine.Input) { in.Up = true }
func down(in *engine.Input) { in.Down = true }
func left(in *engine.Input) { in.Left = true }
func right(in *engine.Input) { in.Right = true }
func bomb(in *engine.Input) { in.Bomb = true }
