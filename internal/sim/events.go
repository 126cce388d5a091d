package sim

import (
	"github.com/vovakirdan/echo-isles/internal/core"
	"github.com/vovakirdan/echo-isles/internal/world"
)

// EventKind identifies a side signal produced by a tick.
type EventKind int

const (
	EventBeat           EventKind = iota // Beat edge; Beat and Island are set
	EventScanStarted                     // Scanner pulse began
	EventScanEnded                       // Scheduled scanner clear fired
	EventCollectMarked                   // Treasure marked for collection; Treasure is set
	EventLevelCleared                    // Every treasure of the level is collected
	EventIslandAdvanced                  // Portal reached; Island is the new index
)

func (k EventKind) String() string {
	switch k {
	case EventBeat:
		return "beat"
	case EventScanStarted:
		return "scan_started"
	case EventScanEnded:
		return "scan_ended"
	case EventCollectMarked:
		return "collect_marked"
	case EventLevelCleared:
		return "level_cleared"
	case EventIslandAdvanced:
		return "island_advanced"
	default:
		return "unknown"
	}
}

// Event is emitted by Step for the owner to dispatch after the tick commits.
type Event struct {
	Kind       EventKind
	Beat       int
	Island     int
	Generation uint64
	Treasure   world.Treasure
}

// StepResult describes what a single tick did besides mutating state.
type StepResult struct {
	Events   []Event
	Consumed []core.Action // Edge-triggered tokens the input adapter must drop
	Moving   bool
}

// Has reports whether the result contains an event of the given kind.
func (r StepResult) Has(kind EventKind) bool {
	for _, e := range r.Events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}
