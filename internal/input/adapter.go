// Package input turns key presses into the per-tick intent set the
// simulation reads.
//
// Terminals deliver presses and auto-repeats but no releases, so a press
// holds its token for a short window that each repeat refreshes. Surfaces
// with real key-up events call Release directly.
package input

import (
	"github.com/vovakirdan/echo-isles/internal/core"
)

// Adapter maintains the set of held control tokens.
type Adapter struct {
	hold    uint64
	expires map[core.Action]uint64 // Last tick the token is still held
	latched map[core.Action]bool   // Edge tokens dispatched during the current hold
}

// NewAdapter creates an adapter whose presses last holdTicks ticks without a repeat.
func NewAdapter(holdTicks int) *Adapter {
	if holdTicks < 1 {
		holdTicks = 1
	}
	return &Adapter{
		hold:    uint64(holdTicks),
		expires: make(map[core.Action]uint64),
		latched: make(map[core.Action]bool),
	}
}

// Press records a key press or auto-repeat at the given tick. A press that
// arrives while the token is still held counts as a repeat and keeps any
// consumed edge token suppressed.
func (a *Adapter) Press(action core.Action, tick uint64) {
	if action == core.ActionNone {
		return
	}
	if exp, ok := a.expires[action]; !ok || tick > exp {
		a.latched[action] = false
	}
	a.expires[action] = tick + a.hold
}

// Release drops a token immediately.
func (a *Adapter) Release(action core.Action) {
	delete(a.expires, action)
	delete(a.latched, action)
}

// ReleaseAll drops every token, e.g. when the game is paused.
func (a *Adapter) ReleaseAll() {
	clear(a.expires)
	clear(a.latched)
}

// Frame returns the intents held at tick. Expired tokens are released and
// edge tokens already dispatched during this hold are left out.
func (a *Adapter) Frame(tick uint64) core.InputFrame {
	frame := core.NewInputFrame()
	for action, exp := range a.expires {
		if tick > exp {
			a.Release(action)
			continue
		}
		if a.latched[action] {
			continue
		}
		frame.Set(action)
	}
	return frame
}

// Consume removes edge-triggered tokens after the simulation dispatched them.
// Level-triggered actions are ignored.
func (a *Adapter) Consume(actions ...core.Action) {
	for _, action := range actions {
		if !action.EdgeTriggered() {
			continue
		}
		if _, ok := a.expires[action]; ok {
			a.latched[action] = true
		}
	}
}

// Held reports whether the token is currently held, dispatched or not.
func (a *Adapter) Held(action core.Action, tick uint64) bool {
	exp, ok := a.expires[action]
	return ok && tick <= exp
}
