package tilemesh

import "testing"

func TestClockAdvance(t *testing.T) {
	frames := []Frame{
		{TileID: 3, Duration: 0.1},
		{TileID: 4, Duration: 0.25},
		{TileID: 5, Duration: 0.1},
	}
	clock := NewClock(frames, 0)

	steps := []struct {
		name        string
		now         float64
		wantID      uint32
		wantChanged bool
	}{
		{name: "before first duration", now: 0.05, wantID: 3, wantChanged: false},
		{name: "exactly at duration holds", now: 0.1, wantID: 3, wantChanged: false},
		{name: "past duration advances", now: 0.11, wantID: 4, wantChanged: true},
		{name: "second frame holds", now: 0.3, wantID: 4, wantChanged: false},
		{name: "second frame advances", now: 0.4, wantID: 5, wantChanged: true},
		{name: "wraps to first frame", now: 0.55, wantID: 3, wantChanged: true},
		{name: "stays after wrap", now: 0.6, wantID: 3, wantChanged: false},
	}

	for _, step := range steps {
		id, changed := clock.Advance(step.now)
		if id != step.wantID || changed != step.wantChanged {
			t.Errorf("%s: Advance(%g) = (%d, %t), want (%d, %t)",
				step.name, step.now, id, changed, step.wantID, step.wantChanged)
		}
	}
}

// LastUpdate resets on every frame change, so frame durations are measured
// from the previous change, not from clock creation.
func TestClockLastUpdateReset(t *testing.T) {
	frames := []Frame{
		{TileID: 0, Duration: 0.1},
		{TileID: 1, Duration: 0.1},
	}
	clock := NewClock(frames, 0)

	if _, changed := clock.Advance(0.15); !changed {
		t.Fatal("Advance(0.15) did not change frames")
	}
	if clock.LastUpdate != 0.15 {
		t.Errorf("LastUpdate = %g, want 0.15", clock.LastUpdate)
	}
	// 0.2 is only 0.05 past the change; the second frame must hold.
	if id, changed := clock.Advance(0.2); changed || id != 1 {
		t.Errorf("Advance(0.2) = (%d, %t), want (1, false)", id, changed)
	}
}

func TestClockNoFrames(t *testing.T) {
	clock := NewClock(nil, 0)
	if id, changed := clock.Advance(10); id != 0 || changed {
		t.Errorf("Advance on empty clock = (%d, %t), want (0, false)", id, changed)
	}
}

// Instances are independent: advancing one clock must not move another built
// from the same definition.
func TestClockPerInstance(t *testing.T) {
	frames := []Frame{
		{TileID: 0, Duration: 0.1},
		{TileID: 1, Duration: 0.1},
	}
	a := NewClock(frames, 0)
	b := NewClock(frames, 0.05)

	a.Advance(0.15)
	if b.Current != 0 {
		t.Errorf("b.Current = %d, want 0", b.Current)
	}
	if id, changed := b.Advance(0.15); changed || id != 0 {
		t.Errorf("b.Advance(0.15) = (%d, %t), want (0, false)", id, changed)
	}
}
