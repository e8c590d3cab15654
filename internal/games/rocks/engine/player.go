package engine

// Facing is the horizontal direction the player looks in.
type Facing uint8

const (
	FacingRight Facing = iota
	FacingLeft
)

func (f Facing) String() string {
	if f == FacingLeft {
		return "left"
	}
	return "right"
}

// Player is tracked apart from the grid.
type Player struct {
	Pos    Point
	Facing Facing
	HasKey bool
	Score  int
	Dead   bool
	Level  int
}

// Input is the set of actions pressed this frame.
type Input struct {
	Up, Down, Left, Right bool
	Bomb                  bool
	Restart               bool // reload the current level
	RestartGame           bool // go back to the first level
}

// ApplyInput resolves one frame of player input. Restarts are honoured in
// any state; bombs and movement only while the player is alive and the
// campaign is not over. The returned error comes from a level reload.
func (w *World) ApplyInput(in Input) error {
	switch {
	case in.RestartGame:
		return w.RestartGame()
	case in.Restart:
		return w.Restart()
	}
	if w.player.Dead || w.won {
		return nil
	}

	if in.Bomb {
		below := w.player.Pos.Add(0, 1)
		if w.tileForPlayer(below) == TileEmpty {
			w.grid.Set(below, TileBomb1)
		}
	}

	dx, dy := 0, 0
	if in.Up {
		dy = -1
	}
	if in.Down {
		dy = 1
	}
	if in.Left {
		dx = -1
		w.player.Facing = FacingLeft
	}
	if in.Right {
		dx = 1
		w.player.Facing = FacingRight
	}
	if dx == 0 && dy == 0 {
		return nil
	}
	return w.move(dx, dy)
}

// move applies a tentative step and resolves the destination tile.
func (w *World) move(dx, dy int) error {
	from := w.player.Pos
	dst := from.Add(dx, dy)
	w.player.Pos = dst

	switch w.tileForPlayer(dst) {
	case TileWall:
		w.player.Pos = from
	case TileRock:
		beyond := dst.Add(dx, 0)
		if w.rules.PushRocks && w.rules.Variant == VariantTiles && dy == 0 && w.grid.Get(beyond) == TileEmpty {
			w.grid.Set(beyond, TileRock)
			w.grid.Set(dst, TileEmpty)
		} else {
			w.player.Pos = from
		}
	case TileDiamond:
		w.player.Score++
		w.grid.Set(dst, TileEmpty)
	case TileDirt:
		w.grid.Set(dst, TileDirtDecay1)
	case TileKeySilver:
		w.player.HasKey = true
		w.grid.Set(dst, TileEmpty)
	case TileLockedStairs:
		if w.player.HasKey {
			w.grid.Set(dst, TileStairs)
		}
		w.player.Pos = from
	case TileStairs:
		return w.advance()
	}
	return nil
}

// tileForPlayer is the tile the player would interact with at p. In the
// entity variant a rock entity covering p masks the grid cell; diamonds are
// collected by the entity sweep, so they never block.
func (w *World) tileForPlayer(p Point) Tile {
	t := w.grid.Get(p)
	if w.rules.Variant != VariantEntities || t != TileEmpty {
		return t
	}
	box := tileBox(p)
	for i := range w.entities {
		e := &w.entities[i]
		if e.Kind == EntityRock && e.Box().Intersects(box) {
			return TileRock
		}
	}
	return t
}
