// Package levels loads rocks-and-diamonds levels from YAML files, either
// from a directory or from the campaign embedded in the binary. The engine
// only sees the resulting Campaign through engine.LevelSource.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/vovakirdan/rocks-arcade/internal/games/rocks/engine"
	"github.com/vovakirdan/rocks-arcade/internal/games/rocks/levels/formats"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// ErrLevelNotFound is returned by LoadByID for unknown ids.
var ErrLevelNotFound = errors.New("levels: level not found")

// Level is a loaded level file.
type Level struct {
	ID       string
	Name     string
	Data     engine.LevelData
	Metadata map[string]string
	FilePath string
}

// Loader reads level files from a file system.
type Loader struct {
	fsys   fs.FS
	root   string
	strict bool
}

// NewLoader reads levels from a directory on disk. Unparseable files are
// skipped.
func NewLoader(dir string) *Loader {
	return &Loader{fsys: os.DirFS(dir), root: "."}
}

// Builtin reads the embedded campaign. Parse errors are fatal there.
func Builtin() *Loader {
	return &Loader{fsys: builtinFS, root: "builtin", strict: true}
}

// LoadAll walks the tree and returns every level sorted by ID.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := fs.WalkDir(l.fsys, l.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(path.Ext(p))) {
			return nil
		}

		level, err := l.LoadFile(p)
		if err != nil {
			if l.strict {
				return err
			}
			return nil
		}
		levels = append(levels, level)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("levels: walking %s: %w", l.root, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	return levels, nil
}

// LoadFile loads one level file, relative to the loader root.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return Level{}, fmt.Errorf("levels: reading %s: %w", p, err)
	}

	parsed, err := formats.ParseYAML(data)
	if err != nil {
		return Level{}, fmt.Errorf("levels: parsing %s: %w", p, err)
	}

	return Level{
		ID:       parsed.ID,
		Name:     parsed.Name,
		Data:     parsed.Data,
		Metadata: parsed.Metadata,
		FilePath: p,
	}, nil
}

// LoadByID loads the level with the given id.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}
	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("%w: %s", ErrLevelNotFound, id)
}

// Campaign loads every level into an ordered campaign.
func (l *Loader) Campaign() (*Campaign, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	if len(levels) == 0 {
		return nil, fmt.Errorf("levels: no levels under %s", l.root)
	}
	return &Campaign{levels: levels}, nil
}

func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// Campaign is an ordered list of levels. It implements engine.LevelSource.
type Campaign struct {
	levels []Level
}

var _ engine.LevelSource = (*Campaign)(nil)

// Count returns the number of levels.
func (c *Campaign) Count() int { return len(c.levels) }

// Level returns the level data at index.
func (c *Campaign) Level(index int) (engine.LevelData, error) {
	if index < 0 || index >= len(c.levels) {
		return engine.LevelData{}, fmt.Errorf("%w: index %d of %d", ErrLevelNotFound, index, len(c.levels))
	}
	return c.levels[index].Data, nil
}

// Info returns the file-level description at index.
func (c *Campaign) Info(index int) (Level, bool) {
	if index < 0 || index >= len(c.levels) {
		return Level{}, false
	}
	return c.levels[index], true
}

// Levels returns all levels in campaign order.
func (c *Campaign) Levels() []Level {
	out := make([]Level, len(c.levels))
	copy(out, c.levels)
	return out
}
