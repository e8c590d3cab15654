package engine

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	// ErrLevelTooLarge is returned when a level does not fit the grid capacity.
	ErrLevelTooLarge = errors.New("engine: level exceeds grid capacity")
	// ErrMalformedLevel is returned for inconsistent level data.
	ErrMalformedLevel = errors.New("engine: malformed level")
)

// LevelData is one level as supplied by a level source: a row-major tile
// array plus the spawn point.
type LevelData struct {
	Name   string
	Width  int
	Height int
	Tiles  []Tile
	Spawn  Point
}

// LevelSource supplies levels by index.
type LevelSource interface {
	Count() int
	Level(index int) (LevelData, error)
}

// At returns the tile at (x, y) of the level, or TileWall outside it.
func (l LevelData) At(x, y int) Tile {
	if x < 0 || x >= l.Width || y < 0 || y >= l.Height {
		return TileWall
	}
	return l.Tiles[y*l.Width+x]
}

// Validate checks internal consistency. Capacity is checked by World.Load.
func (l LevelData) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrMalformedLevel, l.Width, l.Height)
	}
	if len(l.Tiles) != l.Width*l.Height {
		return fmt.Errorf("%w: %d tiles for %dx%d", ErrMalformedLevel, len(l.Tiles), l.Width, l.Height)
	}
	if l.Spawn.X < 0 || l.Spawn.X >= l.Width || l.Spawn.Y < 0 || l.Spawn.Y >= l.Height {
		return fmt.Errorf("%w: spawn %s outside level", ErrMalformedLevel, l.Spawn)
	}
	for i, t := range l.Tiles {
		if !t.Valid() {
			return fmt.Errorf("%w: unknown tile 0x%02x at (%d,%d)", ErrMalformedLevel, uint8(t), i%l.Width, i/l.Width)
		}
	}
	return nil
}

// ParseLayout builds a level from glyph rows. Short rows are padded with
// empty cells. The spawn is the first 'P' found scanning column by column;
// that cell becomes empty.
func ParseLayout(name string, rows []string) (LevelData, error) {
	if len(rows) == 0 {
		return LevelData{}, fmt.Errorf("%w: %q has no rows", ErrMalformedLevel, name)
	}
	width := 0
	for _, r := range rows {
		width = max(width, utf8.RuneCountInString(r))
	}
	if width == 0 {
		return LevelData{}, fmt.Errorf("%w: %q has empty rows", ErrMalformedLevel, name)
	}

	l := LevelData{Name: name, Width: width, Height: len(rows), Tiles: make([]Tile, width*len(rows))}
	for y, row := range rows {
		x := 0
		for _, r := range row {
			t, ok := TileFromRune(r)
			if !ok {
				return LevelData{}, fmt.Errorf("%w: %q: unknown glyph %q at (%d,%d)", ErrMalformedLevel, name, r, x, y)
			}
			l.Tiles[y*width+x] = t
			x++
		}
	}

	spawn, ok := l.firstColumnMajor(TilePlayer)
	if !ok {
		return LevelData{}, fmt.Errorf("%w: %q has no player spawn", ErrMalformedLevel, name)
	}
	l.Spawn = spawn
	for i, t := range l.Tiles {
		if t == TilePlayer {
			l.Tiles[i] = TileEmpty
		}
	}
	return l, nil
}

func (l LevelData) firstColumnMajor(t Tile) (Point, bool) {
	for x := 0; x < l.Width; x++ {
		for y := 0; y < l.Height; y++ {
			if l.Tiles[y*l.Width+x] == t {
				return P(x, y), true
			}
		}
	}
	return Point{}, false
}

// Levels is an in-memory LevelSource.
type Levels []LevelData

func (ls Levels) Count() int { return len(ls) }

func (ls Levels) Level(index int) (LevelData, error) {
	if index < 0 || index >= len(ls) {
		return LevelData{}, fmt.Errorf("engine: level %d out of range [0,%d)", index, len(ls))
	}
	return ls[index], nil
}

// ClampLevel maps a stored level index to a usable one. Anything outside
// [0, count) is treated as corrupt and resets to the first level.
func ClampLevel(index, count int) int {
	if index < 0 || index >= count {
		return 0
	}
	return index
}
