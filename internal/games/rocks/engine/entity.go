package engine

import (
	"sort"

	"github.com/vovakirdan/rocks-arcade/internal/core"
)

// Entity geometry in pixels.
const (
	TileSize = 8
	HitboxW  = 7
	HitboxH  = 8
)

// EntityKind is the state of a movable entity. EntityNothing and
// EntityPlayerDead are terminal.
type EntityKind uint8

const (
	EntityNothing EntityKind = iota
	EntityRock
	EntityDiamond
	EntityPlayerDead
)

func (k EntityKind) String() string {
	switch k {
	case EntityRock:
		return "rock"
	case EntityDiamond:
		return "diamond"
	case EntityPlayerDead:
		return "player-dead"
	}
	return "nothing"
}

// Entity is a movable lifted out of the grid. Pos is in pixels.
type Entity struct {
	Pos  Point
	Vel  int
	Kind EntityKind
}

func newEntity(tile Point, t Tile) Entity {
	kind := EntityRock
	if t == TileDiamond {
		kind = EntityDiamond
	}
	return Entity{Pos: tile.Scale(TileSize), Kind: kind}
}

// Box returns the entity hitbox.
func (e Entity) Box() core.Rect {
	return core.NewRect(e.Pos.X, e.Pos.Y, HitboxW, HitboxH)
}

// Tile returns the tile containing the entity's top-left pixel.
func (e Entity) Tile() Point {
	return P(floorDiv(e.Pos.X, TileSize), floorDiv(e.Pos.Y, TileSize))
}

// Live reports whether the entity still takes part in the sweep.
func (e Entity) Live() bool {
	return e.Kind == EntityRock || e.Kind == EntityDiamond
}

func tileBox(p Point) core.Rect {
	return core.NewRect(p.X*TileSize, p.Y*TileSize, TileSize, TileSize)
}

func playerBox(p Point) core.Rect {
	return core.NewRect(p.X*TileSize, p.Y*TileSize, HitboxW, HitboxH)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

// EntityTick runs one sweep of the entity list. Entities are ordered by
// descending Y first, so lower ones settle before the ones resting on them.
func (w *World) EntityTick() {
	sort.SliceStable(w.entities, func(i, j int) bool {
		return w.entities[i].Pos.Y > w.entities[j].Pos.Y
	})
	for i := range w.entities {
		if w.entities[i].Live() {
			w.stepEntity(i)
		}
	}
}

func (w *World) stepEntity(i int) {
	e := &w.entities[i]
	tile := e.Tile()

	below := w.TileAt(tile.Add(0, 1))
	if below == TileEmpty || below == TilePlayerSquashed {
		if w.blocked(i, e.Box().Offset(0, 1)) {
			e.Vel = 0
			return
		}
		e.Vel = 1
		e.Pos = e.Pos.Add(0, e.Vel)
		return
	}

	// Resting on something solid from here on.
	if e.Kind == EntityDiamond {
		if !w.player.Dead && e.Box().Intersects(playerBox(w.player.Pos)) {
			w.player.Score++
			e.Kind = EntityNothing
		}
		return
	}

	if e.Kind == EntityRock && e.Vel > 0 {
		e.Vel = 0
		w.feedback.Raise()
		if below == TilePlayer {
			w.player.Dead = true
			w.grid.Set(tile.Add(0, 1), TilePlayerSquashed)
		}
	}
	if e.Kind == EntityRock && e.Vel == 0 && w.grid.Get(tile) == TilePlayerSquashed {
		e.Kind = EntityPlayerDead
	}
}

// blocked reports whether box overlaps any other entity that has not been
// removed. Corpses stay solid.
func (w *World) blocked(self int, box core.Rect) bool {
	for j := range w.entities {
		if j == self || w.entities[j].Kind == EntityNothing {
			continue
		}
		if w.entities[j].Box().Intersects(box) {
			return true
		}
	}
	return false
}
