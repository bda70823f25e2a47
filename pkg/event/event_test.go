package event

import (
	"testing"

	"github.com/clockpad/tinygo-clockpad/pkg/button"
)

// testConfig keeps the numbers small: first hold after 5 ticks, then every
// 3 ticks for two repeats, then every tick.
func testConfig() Config {
	return Config{
		HoldDelay:    5,
		SlowInterval: 3,
		FastInterval: 1,
		SlowRepeats:  2,
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		want error
	}{
		{"default", DefaultConfig(), nil},
		{"zero delay", Config{HoldDelay: 0, SlowInterval: 3, FastInterval: 1, SlowRepeats: 2}, ErrZeroDelay},
		{"zero interval", Config{HoldDelay: 5, SlowInterval: 0, FastInterval: 1, SlowRepeats: 2}, ErrZeroInterval},
		{"fast slower than slow", Config{HoldDelay: 5, SlowInterval: 2, FastInterval: 4, SlowRepeats: 2}, ErrIntervalIncrease},
	}
	for _, tc := range cases {
		if got := tc.cfg.Validate(); got != tc.want {
			t.Errorf("%s: Validate() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestPressEmittedOnceOnDownEdge(t *testing.T) {
	d := NewDispatcher(testConfig())

	down := button.Snapshot(0).With(button.A)
	events := d.Tick(down)
	if len(events) != 1 {
		t.Fatalf("down edge: expected 1 event, got %d", len(events))
	}
	if events[0].Kind != Press || events[0].Button != button.A {
		t.Errorf("expected Press(A), got %v %v", events[0].Kind, events[0].Button)
	}

	// Still down on the next tick: no second Press.
	events = d.Tick(down)
	for _, ev := range events {
		if ev.Kind == Press {
			t.Errorf("unexpected second Press while held")
		}
	}

	// Release emits nothing; press again emits a fresh Press.
	if events := d.Tick(0); len(events) != 0 {
		t.Errorf("release: expected no events, got %d", len(events))
	}
	events = d.Tick(down)
	if len(events) != 1 || events[0].Kind != Press {
		t.Errorf("re-press: expected a fresh Press, got %v", events)
	}
}

func TestHoldTiming(t *testing.T) {
	cfg := testConfig()
	d := NewDispatcher(cfg)
	down := button.Snapshot(0).With(button.Up)

	d.Tick(down) // press edge at tick 0

	// Collect the tick number of each hold over a long press.
	var holdTicks []uint
	var holdRepeats []uint
	for tick := uint(1); tick <= 20; tick++ {
		for _, ev := range d.Tick(down) {
			if ev.Kind != Hold {
				t.Fatalf("tick %d: unexpected event kind %v", tick, ev.Kind)
			}
			holdTicks = append(holdTicks, tick)
			holdRepeats = append(holdRepeats, ev.Repeat)
		}
	}

	// No hold before HoldDelay, first hold exactly at HoldDelay.
	if len(holdTicks) == 0 || holdTicks[0] != cfg.HoldDelay {
		t.Fatalf("first hold at tick %v, want %d", holdTicks, cfg.HoldDelay)
	}
	if holdRepeats[0] != 0 {
		t.Errorf("first hold repeat index = %d, want 0", holdRepeats[0])
	}

	// 5, 8, 11, 12, 13, ... : slow spacing twice, then fast.
	want := []uint{5, 8, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20}
	if len(holdTicks) != len(want) {
		t.Fatalf("got holds at %v, want %v", holdTicks, want)
	}
	for i := range want {
		if holdTicks[i] != want[i] {
			t.Fatalf("got holds at %v, want %v", holdTicks, want)
		}
		if holdRepeats[i] != uint(i) {
			t.Errorf("hold %d has repeat index %d", i, holdRepeats[i])
		}
	}

	// Spacing must never increase.
	for i := 2; i < len(holdTicks); i++ {
		prev := holdTicks[i-1] - holdTicks[i-2]
		cur := holdTicks[i] - holdTicks[i-1]
		if cur > prev {
			t.Errorf("hold spacing increased from %d to %d at repeat %d", prev, cur, i)
		}
	}
}

func TestReleaseClearsRepeatTimer(t *testing.T) {
	d := NewDispatcher(testConfig())
	down := button.Snapshot(0).With(button.Down)

	d.Tick(down)
	for i := 0; i < 4; i++ {
		d.Tick(down) // held 4 ticks, one short of the delay
	}
	d.Tick(0) // release

	// A new press must wait the full delay again.
	d.Tick(down)
	for tick := 1; tick < 5; tick++ {
		if events := d.Tick(down); len(events) != 0 {
			t.Fatalf("tick %d after re-press: unexpected events %v", tick, events)
		}
	}
	events := d.Tick(down)
	if len(events) != 1 || events[0].Kind != Hold || events[0].Repeat != 0 {
		t.Errorf("expected Hold(0) at full delay after re-press, got %v", events)
	}
}

func TestNoInputPausesTimers(t *testing.T) {
	d := NewDispatcher(testConfig())
	down := button.Snapshot(0).With(button.Up)

	d.Tick(down)
	d.Tick(down) // held = 1
	d.Tick(down) // held = 2

	// Input gap: timers freeze, nothing is emitted or reset.
	for i := 0; i < 10; i++ {
		d.TickNoInput()
	}

	// Resume: holds arrive as if the gap never happened, 3 more ticks to
	// reach the delay of 5.
	for tick := 0; tick < 2; tick++ {
		if events := d.Tick(down); len(events) != 0 {
			t.Fatalf("resume tick %d: unexpected events %v", tick, events)
		}
	}
	events := d.Tick(down)
	if len(events) != 1 || events[0].Kind != Hold || events[0].Repeat != 0 {
		t.Errorf("expected ramp to resume at Hold(0), got %v", events)
	}
}

func TestButtonsTrackedIndependently(t *testing.T) {
	d := NewDispatcher(testConfig())

	up := button.Snapshot(0).With(button.Up)
	both := up.With(button.Right)

	d.Tick(up)
	d.Tick(up)
	d.Tick(up)

	// RIGHT joins three ticks later: one Press for RIGHT only.
	events := d.Tick(both)
	if len(events) != 1 || events[0].Button != button.Right || events[0].Kind != Press {
		t.Fatalf("expected Press(RIGHT), got %v", events)
	}

	// UP reaches its first hold while RIGHT is still waiting. Events come
	// in button enumeration order.
	events = d.Tick(both)
	if len(events) != 1 || events[0].Button != button.Up || events[0].Kind != Hold {
		t.Fatalf("expected Hold(UP) first, got %v", events)
	}

	// Releasing RIGHT must not disturb UP's timer.
	events = d.Tick(up)
	if len(events) != 0 {
		t.Errorf("release of RIGHT: unexpected events %v", events)
	}
}

func TestSimultaneousEventsInButtonOrder(t *testing.T) {
	d := NewDispatcher(testConfig())

	snap := button.Snapshot(0).With(button.Start).With(button.Up).With(button.B)
	events := d.Tick(snap)
	if len(events) != 3 {
		t.Fatalf("expected 3 presses, got %d", len(events))
	}
	want := []button.Button{button.Up, button.B, button.Start}
	for i, ev := range events {
		if ev.Button != want[i] {
			t.Errorf("event %d: got %v, want %v", i, ev.Button, want[i])
		}
	}
}
