package input

import (
	"testing"

	"github.com/vovakirdan/echo-isles/internal/core"
)

func TestLevelTriggeredHold(t *testing.T) {
	a := NewAdapter(3)
	a.Press(core.ActionMoveLeft, 10)

	for tick := uint64(10); tick <= 13; tick++ {
		if !a.Frame(tick).Has(core.ActionMoveLeft) {
			t.Errorf("tick %d: move should be held", tick)
		}
	}
	if a.Frame(14).Has(core.ActionMoveLeft) {
		t.Error("move should expire after the hold window")
	}

	// Movement is never consumed
	a.Press(core.ActionMoveLeft, 20)
	a.Consume(core.ActionMoveLeft)
	if !a.Frame(21).Has(core.ActionMoveLeft) {
		t.Error("Consume should not drop a level-triggered token")
	}
}

func TestRepeatExtendsHold(t *testing.T) {
	a := NewAdapter(3)
	a.Press(core.ActionHide, 0)
	a.Press(core.ActionHide, 3)
	a.Press(core.ActionHide, 6)

	if !a.Frame(9).Has(core.ActionHide) {
		t.Error("repeats should keep the token held")
	}
	if a.Frame(10).Has(core.ActionHide) {
		t.Error("token should expire once repeats stop")
	}
}

func TestEdgeTokenFiresOncePerHold(t *testing.T) {
	a := NewAdapter(4)
	a.Press(core.ActionScan, 0)

	if !a.Frame(0).Has(core.ActionScan) {
		t.Fatal("scan should be present on the press tick")
	}
	a.Consume(core.ActionScan)

	// Auto-repeat while held does not retrigger
	a.Press(core.ActionScan, 2)
	for tick := uint64(1); tick <= 6; tick++ {
		if a.Frame(tick).Has(core.ActionScan) {
			t.Fatalf("tick %d: consumed scan retriggered during the hold", tick)
		}
	}
	if !a.Held(core.ActionScan, 6) {
		t.Error("consumed token should still count as held")
	}

	// A fresh press after the hold lapsed fires again
	a.Frame(7)
	a.Press(core.ActionScan, 8)
	if !a.Frame(8).Has(core.ActionScan) {
		t.Error("new press after release should fire")
	}
}

func TestReleaseRearmsEdgeToken(t *testing.T) {
	a := NewAdapter(10)
	a.Press(core.ActionCollect, 0)
	a.Consume(core.ActionCollect)
	a.Release(core.ActionCollect)

	a.Press(core.ActionCollect, 1)
	if !a.Frame(1).Has(core.ActionCollect) {
		t.Error("press after an explicit release should fire")
	}

	a.ReleaseAll()
	if a.Frame(1).Any(core.Actions...) {
		t.Error("ReleaseAll should drop every token")
	}
}

func TestUnconsumedEdgeTokenStaysHeld(t *testing.T) {
	a := NewAdapter(5)
	a.Press(core.ActionCollect, 0)

	// Not consumed (nothing in range), so it is offered again next tick
	if !a.Frame(0).Has(core.ActionCollect) || !a.Frame(1).Has(core.ActionCollect) {
		t.Error("unconsumed collect should remain held")
	}
}
