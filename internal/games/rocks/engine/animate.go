package engine

// nextFrame returns the successor of an animation frame and whether the
// cell is a bomb that just finished exploding.
func nextFrame(t Tile) (Tile, bool) {
	switch {
	case t == TileDirtDecay4:
		return TileEmpty, false
	case t.IsDirtDecay():
		return t + 1, false
	case t == TileBomb6:
		return TileEmpty, true
	case t.IsBomb():
		return t + 1, false
	}
	return t, false
}

// AnimateTick runs one animation sweep. Every animation cell advances
// exactly one frame. Bombs leaving their last frame then stamp fresh
// decaying dirt around them according to the blast mode; cells stamped this
// way start advancing on the next sweep.
func (w *World) AnimateTick() {
	g := w.grid
	var blasts []Point
	vacated := make(map[Point]bool) // animation cells that emptied this sweep
	for y := g.Height() - 1; y >= 0; y-- {
		for x := 0; x < g.Width(); x++ {
			p := P(x, y)
			t := g.Get(p)
			if !t.IsAnimation() {
				continue
			}
			next, exploded := nextFrame(t)
			g.Set(p, next)
			if next == TileEmpty {
				vacated[p] = true
			}
			if exploded {
				blasts = append(blasts, p)
			}
		}
	}

	for _, c := range blasts {
		for _, d := range neighbours8 {
			n := c.Add(d.X, d.Y)
			switch w.rules.Blast {
			case BlastDemolish:
				g.SetIfOccupied(n, TileDirtDecay1)
			default:
				// Only cells that were already empty before the sweep.
				if !vacated[n] {
					g.SetIfEmpty(n, TileDirtDecay1)
				}
			}
		}
	}
}
