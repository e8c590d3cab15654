package engine

// Feedback is a single-slot edge-triggered signal that a rock thunked.
// Raising it twice before it is consumed still yields one event.
type Feedback struct {
	thunk bool
}

// Raise sets the thunk flag.
func (f *Feedback) Raise() { f.thunk = true }

// Pending reports whether a thunk is waiting to be consumed.
func (f *Feedback) Pending() bool { return f.thunk }

// Consume returns the flag and clears it.
func (f *Feedback) Consume() bool {
	t := f.thunk
	f.thunk = false
	return t
}
