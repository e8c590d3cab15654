package core

// RuntimeConfig is passed to a game on Reset.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Host frames per second
	Seed     int64 // RNG seed, 0 lets the platform pick one
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState is the status a game reports to the platform.
type GameState struct {
	Score    int
	Level    int  // zero-based level index
	GameOver bool // the player died or the campaign ended
	Won      bool // the last level was completed
	Paused   bool
}

// EventKind identifies something that happened during a step.
type EventKind int

const (
	EventThunk            EventKind = iota + 1 // a falling object landed
	EventPlayerDied                            // the player was crushed
	EventLevelComplete                         // the player took the stairs
	EventCampaignComplete                      // the last level was completed
	EventLevelLoaded                           // a level was (re)loaded
)

func (k EventKind) String() string {
	switch k {
	case EventThunk:
		return "thunk"
	case EventPlayerDied:
		return "player_died"
	case EventLevelComplete:
		return "level_complete"
	case EventCampaignComplete:
		return "campaign_complete"
	case EventLevelLoaded:
		return "level_loaded"
	}
	return "unknown"
}

// Event is a notable occurrence during a step. Level and Score describe the
// level the event refers to.
type Event struct {
	Kind  EventKind
	Level int
	Score int
}

// StepResult is returned by Game.Step.
type StepResult struct {
	State  GameState
	Events []Event
}

// Has reports whether an event of kind k occurred.
func (r StepResult) Has(k EventKind) bool {
	for _, e := range r.Events {
		if e.Kind == k {
			return true
		}
	}
	return false
}
