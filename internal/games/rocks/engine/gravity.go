package engine

// GravityTick runs one sweep of the tile-encoded movables. Rows go from the
// bottom (h-1) up to 1 and columns left to right, mutating in place, so a
// column of rocks cascades within a single sweep. Each movable takes at most
// one of three branches: fall, crush or roll.
func (w *World) GravityTick() {
	g := w.grid
	for y := g.Height() - 1; y >= 1; y-- {
		for x := 0; x < g.Width(); x++ {
			p := P(x, y)
			t := g.Get(p)
			if !t.IsMovable() {
				continue
			}
			w.settle(p, t)
		}
	}
}

func (w *World) settle(p Point, t Tile) {
	g := w.grid
	below := p.Add(0, 1)

	switch under := w.TileAt(below); {
	case under == TileEmpty:
		g.Set(p, TileEmpty)
		g.Set(below, t)
		if t != TileRock {
			return
		}
		impact := p.Add(0, 2)
		switch w.TileAt(impact) {
		case TileWall:
			w.feedback.Raise()
		case TilePlayer:
			w.player.Dead = true
			g.Set(impact, TilePlayerSquashed)
			w.feedback.Raise()
		}

	case under == TilePlayerSquashed && t == TileRock:
		g.Set(p, TileEmpty)
		g.Set(below, TilePlayerDead)

	case under == TileRock || under == TileDiamond:
		left, right := p.Add(-1, 0), p.Add(1, 0)
		switch {
		case w.TileAt(left) == TileEmpty && w.TileAt(left.Add(0, 1)) == TileEmpty:
			g.Set(p, TileEmpty)
			g.Set(left.Add(0, 1), t)
		case w.TileAt(right) == TileEmpty && w.TileAt(right.Add(0, 1)) == TileEmpty:
			g.Set(p, TileEmpty)
			g.Set(right.Add(0, 1), t)
		}
	}
}
