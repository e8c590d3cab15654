package engine

import "fmt"

// Variant selects how rocks and diamonds are represented.
type Variant uint8

const (
	// VariantTiles keeps movables in the grid and resolves them with the
	// discrete fall/crush/roll rules.
	VariantTiles Variant = iota
	// VariantEntities lifts movables into a pixel-positioned entity list
	// resolved with box overlap tests.
	VariantEntities
)

func (v Variant) String() string {
	if v == VariantEntities {
		return "entities"
	}
	return "tiles"
}

// BlastMode selects which neighbours an exploding bomb turns into fresh dirt.
type BlastMode uint8

const (
	// BlastDust stamps decaying dirt only into empty neighbours. Walls,
	// rocks and everything else survive the blast.
	BlastDust BlastMode = iota
	// BlastDemolish stamps decaying dirt only into occupied neighbours,
	// so the blast eats walls and rocks and leaves empty cells alone.
	BlastDemolish
)

func (m BlastMode) String() string {
	if m == BlastDemolish {
		return "demolish"
	}
	return "dust"
}

// Rules are the gameplay switches of a world.
type Rules struct {
	Variant   Variant
	PushRocks bool
	Blast     BlastMode
}

// DefaultRules returns the tile variant with rock pushing and dust blasts.
func DefaultRules() Rules {
	return Rules{Variant: VariantTiles, PushRocks: true, Blast: BlastDust}
}

// Options configure a World.
type Options struct {
	Width  int // grid capacity, DefaultWidth if zero
	Height int // grid capacity, DefaultHeight if zero
	Rules  Rules
}

// World is the whole simulation state of one running level.
type World struct {
	grid     *Grid
	player   Player
	entities []Entity
	feedback Feedback
	rules    Rules
	source   LevelSource

	level      LevelData
	won        bool
	generation int
	completion Completion
}

// Completion records the last level left through the stairs. Seq counts
// completions over the life of the world and survives reloads.
type Completion struct {
	Level int
	Score int
	Seq   int
}

// NewWorld creates a world with an empty grid. Call Load before stepping.
func NewWorld(src LevelSource, opts Options) *World {
	return &World{
		grid:   NewGrid(opts.Width, opts.Height),
		rules:  opts.Rules,
		source: src,
		player: Player{Facing: FacingRight},
	}
}

// Grid returns the live grid. Callers outside the engine should only read it.
func (w *World) Grid() *Grid { return w.grid }

// Player returns a copy of the player state.
func (w *World) Player() Player { return w.player }

// Entities returns a copy of the entity list.
func (w *World) Entities() []Entity {
	out := make([]Entity, len(w.entities))
	copy(out, w.entities)
	return out
}

// Feedback returns the thunk flag slot.
func (w *World) Feedback() *Feedback { return &w.feedback }

// Rules returns the active rules.
func (w *World) Rules() Rules { return w.rules }

// Source returns the level source.
func (w *World) Source() LevelSource { return w.source }

// LevelName returns the name of the loaded level.
func (w *World) LevelName() string { return w.level.Name }

// LevelSize returns the dimensions of the loaded level.
func (w *World) LevelSize() (int, int) { return w.level.Width, w.level.Height }

// Won reports whether the player took the stairs of the last level.
func (w *World) Won() bool { return w.won }

// Generation increments on every successful Load.
func (w *World) Generation() int { return w.generation }

// LastCompletion returns the most recent stairs exit. Seq is zero until the
// first one.
func (w *World) LastCompletion() Completion { return w.completion }

// TileAt returns the grid tile at p, except that the empty cell the player
// stands on reads as TilePlayer.
func (w *World) TileAt(p Point) Tile {
	t := w.grid.Get(p)
	if t == TileEmpty && p == w.player.Pos {
		return TilePlayer
	}
	return t
}

// Load replaces the world with level index. A level that is malformed or
// larger than the grid is rejected and the world is left untouched.
func (w *World) Load(index int) error {
	if w.source == nil {
		return fmt.Errorf("engine: no level source")
	}
	l, err := w.source.Level(index)
	if err != nil {
		return fmt.Errorf("engine: load level %d: %w", index, err)
	}
	if l.Width > w.grid.Width() || l.Height > w.grid.Height() {
		return fmt.Errorf("%w: level %d is %dx%d, capacity %dx%d",
			ErrLevelTooLarge, index, l.Width, l.Height, w.grid.Width(), w.grid.Height())
	}
	if err := l.Validate(); err != nil {
		return fmt.Errorf("engine: load level %d: %w", index, err)
	}

	w.grid.Clear()
	w.entities = w.entities[:0]
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			t := l.At(x, y)
			if t == TilePlayer {
				continue
			}
			if w.rules.Variant == VariantEntities && t.IsMovable() {
				w.entities = append(w.entities, newEntity(P(x, y), t))
				continue
			}
			w.grid.Set(P(x, y), t)
		}
	}

	w.player = Player{Pos: l.Spawn, Facing: FacingRight, Level: index}
	w.feedback = Feedback{}
	w.level = l
	w.won = false
	w.generation++
	return nil
}

// Restart reloads the current level.
func (w *World) Restart() error {
	return w.Load(w.player.Level)
}

// RestartGame loads the first level.
func (w *World) RestartGame() error {
	return w.Load(0)
}

// advance moves to the next level, or marks the campaign won after the last.
// A next level that fails to load is not a completion.
func (w *World) advance() error {
	done := Completion{Level: w.player.Level, Score: w.player.Score, Seq: w.completion.Seq + 1}
	next := w.player.Level + 1
	if next >= w.source.Count() {
		w.completion = done
		w.won = true
		return nil
	}
	if err := w.Load(next); err != nil {
		return err
	}
	w.completion = done
	return nil
}
