package core

// Action is a semantic input, decoupled from the physical key that produced it.
type Action int

const (
	ActionNone        Action = iota
	ActionUp                 // move up
	ActionDown               // move down
	ActionLeft               // move left
	ActionRight              // move right
	ActionBomb               // plant a bomb below the player
	ActionRestart            // reload the current level
	ActionRestartGame        // start over from the first level
	ActionPause              // pause/unpause
	ActionConfirm            // menu confirm
	ActionBack               // back to menu
	ActionQuit               // leave the session
)

var actionNames = map[Action]string{
	ActionNone:        "None",
	ActionUp:          "Up",
	ActionDown:        "Down",
	ActionLeft:        "Left",
	ActionRight:       "Right",
	ActionBomb:        "Bomb",
	ActionRestart:     "Restart",
	ActionRestartGame: "RestartGame",
	ActionPause:       "Pause",
	ActionConfirm:     "Confirm",
	ActionBack:        "Back",
	ActionQuit:        "Quit",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// InputFrame holds the actions pressed during one simulation step.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame(actions ...Action) InputFrame {
	f := InputFrame{Actions: make(map[Action]bool, len(actions))}
	for _, a := range actions {
		f.Actions[a] = true
	}
	return f
}

// Set marks an action as pressed.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has reports whether a was pressed this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Empty reports whether no action was pressed.
func (f InputFrame) Empty() bool {
	for _, v := range f.Actions {
		if v {
			return false
		}
	}
	return true
}

// Clear resets the frame for reuse.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
