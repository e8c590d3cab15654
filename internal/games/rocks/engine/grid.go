package engine

import (
	"hash/fnv"
	"strings"
)

// Default grid capacity.
const (
	DefaultWidth  = 64
	DefaultHeight = 64
)

// Grid is a fixed-size row-major array of tile codes: index = y*W + x.
// Reads outside the grid yield TileWall, writes outside are dropped.
type Grid struct {
	w, h  int
	cells []Tile
}

// NewGrid creates an all-empty grid. Non-positive sizes fall back to the
// default capacity.
func NewGrid(w, h int) *Grid {
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return &Grid{w: w, h: h, cells: make([]Tile, w*h)}
}

// Width returns the capacity in columns.
func (g *Grid) Width() int { return g.w }

// Height returns the capacity in rows.
func (g *Grid) Height() int { return g.h }

// InBounds reports whether p lies inside the grid.
func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.w && p.Y >= 0 && p.Y < g.h
}

func (g *Grid) index(p Point) int {
	return p.Y*g.w + p.X
}

// Get returns the tile at p, or TileWall outside the grid.
func (g *Grid) Get(p Point) Tile {
	if !g.InBounds(p) {
		return TileWall
	}
	return g.cells[g.index(p)]
}

// Set writes t at p unconditionally.
func (g *Grid) Set(p Point, t Tile) {
	if g.InBounds(p) {
		g.cells[g.index(p)] = t
	}
}

// SetIfOccupied writes t only when the cell at p is not empty.
func (g *Grid) SetIfOccupied(p Point, t Tile) bool {
	if !g.InBounds(p) || g.cells[g.index(p)] == TileEmpty {
		return false
	}
	g.cells[g.index(p)] = t
	return true
}

// SetIfEmpty writes t only when the cell at p is empty.
func (g *Grid) SetIfEmpty(p Point, t Tile) bool {
	if !g.InBounds(p) || g.cells[g.index(p)] != TileEmpty {
		return false
	}
	g.cells[g.index(p)] = t
	return true
}

// Clear resets every cell to empty.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = TileEmpty
	}
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	cells := make([]Tile, len(g.cells))
	copy(cells, g.cells)
	return &Grid{w: g.w, h: g.h, cells: cells}
}

// Equal reports whether both grids have the same size and contents.
func (g *Grid) Equal(other *Grid) bool {
	if g.w != other.w || g.h != other.h {
		return false
	}
	for i, t := range g.cells {
		if t != other.cells[i] {
			return false
		}
	}
	return true
}

// First finds the first cell holding t, scanning column by column
// (x outer, y inner).
func (g *Grid) First(t Tile) (Point, bool) {
	for x := 0; x < g.w; x++ {
		for y := 0; y < g.h; y++ {
			if g.cells[y*g.w+x] == t {
				return P(x, y), true
			}
		}
	}
	return Point{}, false
}

// Count returns the number of cells holding t.
func (g *Grid) Count(t Tile) int {
	n := 0
	for _, c := range g.cells {
		if c == t {
			n++
		}
	}
	return n
}

// Hash returns an FNV-1a digest of the size and contents.
func (g *Grid) Hash() uint64 {
	h := fnv.New64a()
	h.Write([]byte{byte(g.w), byte(g.w >> 8), byte(g.h), byte(g.h >> 8)})
	buf := make([]byte, len(g.cells))
	for i, t := range g.cells {
		buf[i] = byte(t)
	}
	h.Write(buf)
	return h.Sum64()
}

// Region renders the top-left w x h cells with layout glyphs, one line per
// row. It is meant for tests and debug logging.
func (g *Grid) Region(w, h int) string {
	var sb strings.Builder
	for y := 0; y < h; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < w; x++ {
			sb.WriteRune(g.Get(P(x, y)).Rune())
		}
	}
	return sb.String()
}
