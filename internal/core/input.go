package core

// InputKind identifies a semantic input, abstracted from physical keys and
// mouse buttons. The controller binds kinds, the platform produces them.
type InputKind int

const (
	InputNone    InputKind = iota
	InputStart             // Space/Enter on the title screen
	InputImpulse           // Space/Up - flap (bird)
	InputPointer           // Left click at a world position (ants)
	InputRestart           // Space/R after game over
)

// String returns a human-readable name for the input kind.
func (k InputKind) String() string {
	switch k {
	case InputNone:
		return "None"
	case InputStart:
		return "Start"
	case InputImpulse:
		return "Impulse"
	case InputPointer:
		return "Pointer"
	case InputRestart:
		return "Restart"
	default:
		return "Unknown"
	}
}

// InputEvent is one input occurrence. X and Y are world coordinates and are
// only meaningful for InputPointer.
type InputEvent struct {
	Kind InputKind
	X, Y float64
}

// InputFrame holds every event drained from the input queue for one tick,
// in arrival order.
type InputFrame struct {
	Events []InputEvent
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Add appends an event to the frame.
func (f *InputFrame) Add(ev InputEvent) {
	f.Events = append(f.Events, ev)
}

// Set records a positionless event of the given kind.
func (f *InputFrame) Set(k InputKind) {
	f.Add(InputEvent{Kind: k})
}

// Has returns true if at least one event of the given kind arrived this tick.
func (f InputFrame) Has(k InputKind) bool {
	for _, ev := range f.Events {
		if ev.Kind == k {
			return true
		}
	}
	return false
}

// Of returns the events of the given kind, in arrival order.
func (f InputFrame) Of(k InputKind) []InputEvent {
	var out []InputEvent
	for _, ev := range f.Events {
		if ev.Kind == k {
			out = append(out, ev)
		}
	}
	return out
}

// Clear resets the frame for the next tick, keeping its capacity.
func (f *InputFrame) Clear() {
	f.Events = f.Events[:0]
}

// Len returns the number of events in the frame.
func (f InputFrame) Len() int {
	return len(f.Events)
}
