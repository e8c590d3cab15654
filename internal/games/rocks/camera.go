package rocks

import (
	"math/rand"

	"github.com/vovakirdan/rocks-arcade/internal/core"
	"github.com/vovakirdan/rocks-arcade/internal/games/rocks/engine"
)

// Camera is the viewport origin in grid cells. It trails the player one
// cell per frame and jitters for a few frames after a thunk.
type Camera struct {
	X, Y int

	radius int
	shake  int
	jx, jy int
	rng    *rand.Rand
}

func newCamera(rng *rand.Rand, radius int) Camera {
	return Camera{rng: rng, radius: radius}
}

// target is the origin that centres focus, clamped so the view never
// scrolls past the level edges. A level smaller than the view is centred.
func target(focus, level, view int) int {
	if level <= view {
		return (level - view) / 2
	}
	return core.Clamp(focus-view/2, 0, level-view)
}

// Follow moves the origin at most one cell per axis toward the target.
func (c *Camera) Follow(focus engine.Point, levelW, levelH, viewW, viewH int) {
	c.X += core.Sign(target(focus.X, levelW, viewW) - c.X)
	c.Y += core.Sign(target(focus.Y, levelH, viewH) - c.Y)
}

// Snap jumps straight to the target, used after a level load.
func (c *Camera) Snap(focus engine.Point, levelW, levelH, viewW, viewH int) {
	c.X = target(focus.X, levelW, viewW)
	c.Y = target(focus.Y, levelH, viewH)
	c.shake, c.jx, c.jy = 0, 0, 0
}

// Shake starts (or restarts) a shake lasting frames frames.
func (c *Camera) Shake(frames int) {
	if frames > c.shake {
		c.shake = frames
	}
}

// Shaking reports whether a shake is in progress.
func (c *Camera) Shaking() bool { return c.shake > 0 }

// Tick advances the shake by one frame.
func (c *Camera) Tick() {
	if c.shake <= 0 || c.radius <= 0 || c.rng == nil {
		c.shake, c.jx, c.jy = 0, 0, 0
		return
	}
	c.shake--
	span := 2*c.radius + 1
	c.jx = c.rng.Intn(span) - c.radius
	c.jy = c.rng.Intn(span) - c.radius
	if c.shake == 0 {
		c.jx, c.jy = 0, 0
	}
}

// Origin returns the top-left cell to draw, jitter included.
func (c *Camera) Origin() (int, int) {
	return c.X + c.jx, c.Y + c.jy
}
