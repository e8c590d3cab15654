// Package formats parses level files into engine level data.
package formats

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/rocks-arcade/internal/games/rocks/engine"
)

// YAMLLevel is the on-disk level document. A level is given either as a
// glyph layout (layout or rows) or as raw tile codes (size, data, spawn).
type YAMLLevel struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Layout   string            `yaml:"layout,omitempty"`
	Rows     []string          `yaml:"rows,omitempty"`
	Size     *YAMLSize         `yaml:"size,omitempty"`
	Data     []int             `yaml:"data,omitempty"`
	Spawn    *YAMLPoint        `yaml:"spawn,omitempty"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// YAMLSize holds level dimensions.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// YAMLPoint is a tile coordinate.
type YAMLPoint struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Level is a parsed level file.
type Level struct {
	ID       string
	Name     string
	Data     engine.LevelData
	Metadata map[string]string
}

// ParseYAML parses one level document.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yl.ID == "" {
		return Level{}, fmt.Errorf("level has no id")
	}
	name := yl.Name
	if name == "" {
		name = yl.ID
	}

	var (
		ld  engine.LevelData
		err error
	)
	switch {
	case yl.Layout != "" || len(yl.Rows) > 0:
		ld, err = engine.ParseLayout(name, layoutRows(yl))
	case yl.Size != nil:
		ld, err = parseCodes(name, yl)
	default:
		err = fmt.Errorf("level %q has neither layout nor data", yl.ID)
	}
	if err != nil {
		return Level{}, err
	}
	if err := ld.Validate(); err != nil {
		return Level{}, err
	}

	return Level{ID: yl.ID, Name: name, Data: ld, Metadata: yl.Metadata}, nil
}

func layoutRows(yl YAMLLevel) []string {
	if len(yl.Rows) > 0 {
		return yl.Rows
	}
	return strings.Split(strings.TrimRight(yl.Layout, "\n"), "\n")
}

func parseCodes(name string, yl YAMLLevel) (engine.LevelData, error) {
	w, h := yl.Size.W, yl.Size.H
	if len(yl.Data) != w*h {
		return engine.LevelData{}, fmt.Errorf("level %q: %d codes for %dx%d", yl.ID, len(yl.Data), w, h)
	}
	if yl.Spawn == nil {
		return engine.LevelData{}, fmt.Errorf("level %q: numeric data needs a spawn", yl.ID)
	}

	tiles := make([]engine.Tile, len(yl.Data))
	for i, code := range yl.Data {
		if code < 0 || code > 0xff || !engine.Tile(code).Valid() {
			return engine.LevelData{}, fmt.Errorf("level %q: invalid tile code %d at index %d", yl.ID, code, i)
		}
		tiles[i] = engine.Tile(code)
	}
	return engine.LevelData{
		Name:   name,
		Width:  w,
		Height: h,
		Tiles:  tiles,
		Spawn:  engine.P(yl.Spawn.X, yl.Spawn.Y),
	}, nil
}

// FormatYAML renders level data back into a layout document.
func FormatYAML(id string, ld engine.LevelData) ([]byte, error) {
	rows := make([]string, ld.Height)
	for y := range rows {
		var sb strings.Builder
		for x := 0; x < ld.Width; x++ {
			if engine.P(x, y) == ld.Spawn {
				sb.WriteRune(engine.TilePlayer.Rune())
				continue
			}
			sb.WriteRune(ld.At(x, y).Rune())
		}
		rows[y] = sb.String()
	}
	return yaml.Marshal(YAMLLevel{ID: id, Name: ld.Name, Rows: rows})
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
