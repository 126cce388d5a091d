package core

// Action represents a semantic game intent, abstracted from physical key presses.
// The binding of keys to actions is the platform's concern.
type Action int

const (
	ActionNone      Action = iota
	ActionMoveUp           // W, Up arrow
	ActionMoveDown         // S, Down arrow
	ActionMoveLeft         // A, Left arrow
	ActionMoveRight        // D, Right arrow
	ActionScan             // Q - scanner pulse (edge-triggered)
	ActionHide             // E - hold to hide (level-triggered)
	ActionCollect          // Space - interact with a nearby object (edge-triggered)
)

// Actions lists every control intent the simulation understands.
var Actions = []Action{
	ActionMoveUp, ActionMoveDown, ActionMoveLeft, ActionMoveRight,
	ActionScan, ActionHide, ActionCollect,
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionMoveUp:
		return "MoveUp"
	case ActionMoveDown:
		return "MoveDown"
	case ActionMoveLeft:
		return "MoveLeft"
	case ActionMoveRight:
		return "MoveRight"
	case ActionScan:
		return "Scan"
	case ActionHide:
		return "Hide"
	case ActionCollect:
		return "Collect"
	default:
		return "Unknown"
	}
}

// EdgeTriggered reports whether the action fires once per press and must be
// consumed after dispatch. Movement and hide are read every tick instead.
func (a Action) EdgeTriggered() bool {
	return a == ActionScan || a == ActionCollect
}

// InputFrame represents the intents held during one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they are held this tick.
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

// Set marks an action as held for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action is held this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Any reports whether at least one of the given actions is held.
func (f InputFrame) Any(actions ...Action) bool {
	for _, a := range actions {
		if f.Has(a) {
			return true
		}
	}
	return false
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
