package engine

import (
	"math"
	"time"
)

// Default sweep periods.
const (
	DefaultAnimationPeriod = 100 * time.Millisecond
	DefaultGravityPeriod   = 250 * time.Millisecond
	DefaultEntityPeriod    = 16 * time.Millisecond
)

// FramesFor converts a period into a whole number of host frames, at least one.
func FramesFor(d time.Duration, tickRate int) int {
	if tickRate <= 0 {
		tickRate = 60
	}
	n := int(math.Round(d.Seconds() * float64(tickRate)))
	return max(n, 1)
}

// Clock is a logical periodic timer counted in host frames.
type Clock struct {
	Period  int
	elapsed int
}

// NewClock creates a clock firing every period frames.
func NewClock(period int) Clock {
	return Clock{Period: max(period, 1)}
}

// Advance counts one frame and reports whether the clock fired.
func (c *Clock) Advance() bool {
	c.elapsed++
	if c.elapsed >= max(c.Period, 1) {
		c.elapsed = 0
		return true
	}
	return false
}

// Reset restarts the current period.
func (c *Clock) Reset() { c.elapsed = 0 }

// Periods holds the sweep periods of a Scheduler.
type Periods struct {
	Animation time.Duration
	Gravity   time.Duration
	Entity    time.Duration
}

// DefaultPeriods returns the standard sweep periods.
func DefaultPeriods() Periods {
	return Periods{
		Animation: DefaultAnimationPeriod,
		Gravity:   DefaultGravityPeriod,
		Entity:    DefaultEntityPeriod,
	}
}

// Scheduler drives a World from the host loop with three independent
// clocks. A level load restarts all of them.
type Scheduler struct {
	Animation Clock
	Gravity   Clock
	Entity    Clock

	generation int
}

// NewScheduler builds the clocks for the given host tick rate.
func NewScheduler(p Periods, tickRate int) *Scheduler {
	return &Scheduler{
		Animation: NewClock(FramesFor(p.Animation, tickRate)),
		Gravity:   NewClock(FramesFor(p.Gravity, tickRate)),
		Entity:    NewClock(FramesFor(p.Entity, tickRate)),
	}
}

// Frame runs one host frame: due sweeps first, then the player input.
func (s *Scheduler) Frame(w *World, in Input) error {
	s.sync(w)

	if s.Animation.Advance() {
		w.AnimateTick()
	}
	switch w.Rules().Variant {
	case VariantEntities:
		if s.Entity.Advance() {
			w.EntityTick()
		}
	default:
		if s.Gravity.Advance() {
			w.GravityTick()
		}
	}

	err := w.ApplyInput(in)
	s.sync(w)
	return err
}

func (s *Scheduler) sync(w *World) {
	if w.Generation() == s.generation {
		return
	}
	s.generation = w.Generation()
	s.Animation.Reset()
	s.Gravity.Reset()
	s.Entity.Reset()
}
