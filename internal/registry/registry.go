// Package registry keeps the game factories the platform can launch.
// Game packages register themselves from init(), so the CLI and the SSH
// server pick up every variant without naming them.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/rocks-arcade/internal/core"
)

// Game is what the platform drives. Implementations are pure simulations:
// the platform owns timing, input mapping and terminal output.
type Game interface {
	// ID returns the stable identifier used by the CLI and score storage.
	ID() string

	// Title returns a display name.
	Title() string

	// Reset (re)starts the game for the given runtime configuration.
	Reset(cfg core.RuntimeConfig)

	// Step advances the game by one host frame.
	Step(in core.InputFrame) core.StepResult

	// Render draws into a pre-cleared screen.
	Render(dst *core.Screen)

	// State returns the current status.
	State() core.GameState
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID          string
	Title       string
	Description string
}

// Factory creates a fresh game instance.
type Factory func() Game

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a factory under id. It panics on duplicate ids since that is
// a programming error in an init function.
func Register(id, description string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	entries[id] = entry{
		info:    GameInfo{ID: id, Title: f().Title(), Description: description},
		factory: f,
	}
}

// List returns all registered games sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.info)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates the game registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
