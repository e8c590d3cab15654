// Package engine is the rocks-and-diamonds simulation: a fixed-capacity tile
// grid, the periodic animation and gravity sweeps, the entity-list movable
// model and the per-frame player resolver. It performs no I/O and has no
// notion of wall-clock time; the host drives it frame by frame.
package engine

import "fmt"

// Tile is the code stored in one grid cell.
type Tile uint8

// Tile codes. The values are stable and appear in numeric level files.
const (
	TileEmpty        Tile = 0x00
	TileDirt         Tile = 0x01
	TileWall         Tile = 0x02
	TileStairs       Tile = 0x03
	TileLockedStairs Tile = 0x04

	TileRock    Tile = 0x10
	TileDiamond Tile = 0x11

	TileKeySilver Tile = 0x20
	TileKeyGold   Tile = 0x21

	// TilePlayer is a view value. It is never stored in the grid; World.TileAt
	// reports it for the empty cell the player stands on.
	TilePlayer         Tile = 0x30
	TilePlayerSquashed Tile = 0x3e
	TilePlayerDead     Tile = 0x3f

	TileDirtDecay1 Tile = 0x50
	TileDirtDecay2 Tile = 0x51
	TileDirtDecay3 Tile = 0x52
	TileDirtDecay4 Tile = 0x53

	TileBomb1 Tile = 0x60
	TileBomb2 Tile = 0x61
	TileBomb3 Tile = 0x62
	TileBomb4 Tile = 0x63
	TileBomb5 Tile = 0x64
	TileBomb6 Tile = 0x65
)

// Category is the static classification of a tile code.
type Category uint8

const (
	CategoryInvalid Category = iota
	CategoryTerrain
	CategoryMovable
	CategoryCollectible
	CategoryPlayerMarker
	CategoryAnimation
)

func (c Category) String() string {
	switch c {
	case CategoryTerrain:
		return "terrain"
	case CategoryMovable:
		return "movable"
	case CategoryCollectible:
		return "collectible"
	case CategoryPlayerMarker:
		return "player-marker"
	case CategoryAnimation:
		return "animation"
	}
	return "invalid"
}

type tileInfo struct {
	name     string
	category Category
	glyph    rune
}

var tiles = map[Tile]tileInfo{
	TileEmpty:          {"empty", CategoryTerrain, '.'},
	TileDirt:           {"dirt", CategoryTerrain, ':'},
	TileWall:           {"wall", CategoryTerrain, '#'},
	TileStairs:         {"stairs", CategoryTerrain, '>'},
	TileLockedStairs:   {"locked-stairs", CategoryTerrain, 'L'},
	TileRock:           {"rock", CategoryMovable, 'O'},
	TileDiamond:        {"diamond", CategoryMovable, '*'},
	TileKeySilver:      {"silver-key", CategoryCollectible, 'k'},
	TileKeyGold:        {"gold-key", CategoryCollectible, 'g'},
	TilePlayer:         {"player", CategoryPlayerMarker, 'P'},
	TilePlayerSquashed: {"player-squashed", CategoryPlayerMarker, 'x'},
	TilePlayerDead:     {"player-dead", CategoryPlayerMarker, 'X'},
	TileDirtDecay1:     {"dirt-decay-1", CategoryAnimation, '1'},
	TileDirtDecay2:     {"dirt-decay-2", CategoryAnimation, '2'},
	TileDirtDecay3:     {"dirt-decay-3", CategoryAnimation, '3'},
	TileDirtDecay4:     {"dirt-decay-4", CategoryAnimation, '4'},
	TileBomb1:          {"bomb-1", CategoryAnimation, 'a'},
	TileBomb2:          {"bomb-2", CategoryAnimation, 'b'},
	TileBomb3:          {"bomb-3", CategoryAnimation, 'c'},
	TileBomb4:          {"bomb-4", CategoryAnimation, 'd'},
	TileBomb5:          {"bomb-5", CategoryAnimation, 'e'},
	TileBomb6:          {"bomb-6", CategoryAnimation, 'f'},
}

var glyphs = func() map[rune]Tile {
	m := make(map[rune]Tile, len(tiles)+1)
	for t, info := range tiles {
		m[info.glyph] = t
	}
	m[' '] = TileEmpty
	return m
}()

// Valid reports whether t is a known tile code.
func (t Tile) Valid() bool {
	_, ok := tiles[t]
	return ok
}

// Category returns the classification of t.
func (t Tile) Category() Category {
	return tiles[t].category
}

func (t Tile) IsTerrain() bool { return t.Category() == CategoryTerrain }
func (t Tile) IsMovable() bool { return t.Category() == CategoryMovable }
func (t Tile) IsCollectible() bool { return t.Category() == CategoryCollectible }
func (t Tile) IsPlayerMarker() bool { return t.Category() == CategoryPlayerMarker }
func (t Tile) IsAnimation() bool { return t.Category() == CategoryAnimation }

// IsDirtDecay reports whether t is one of the four dirt decay frames.
func (t Tile) IsDirtDecay() bool {
	return t >= TileDirtDecay1 && t <= TileDirtDecay4
}

// IsBomb reports whether t is one of the six bomb frames.
func (t Tile) IsBomb() bool {
	return t >= TileBomb1 && t <= TileBomb6
}

// Rune returns the ASCII glyph used by level layouts and debug dumps.
func (t Tile) Rune() rune {
	if info, ok := tiles[t]; ok {
		return info.glyph
	}
	return '?'
}

func (t Tile) String() string {
	if info, ok := tiles[t]; ok {
		return info.name
	}
	return fmt.Sprintf("tile(0x%02x)", uint8(t))
}

// TileFromRune maps a layout glyph back to its tile. Space is accepted as
// an alias for empty.
func TileFromRune(r rune) (Tile, bool) {
	t, ok := glyphs[r]
	return t, ok
}
