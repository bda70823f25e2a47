package controller

import (
	"testing"

	"github.com/clockpad/tinygo-clockpad/pkg/button"
	"github.com/clockpad/tinygo-clockpad/pkg/event"
	"github.com/clockpad/tinygo-clockpad/pkg/render"
	"github.com/clockpad/tinygo-clockpad/pkg/rtc"
	"github.com/clockpad/tinygo-clockpad/pkg/statemachine"
)

// Short repeat schedule so hold behavior is reachable in a few ticks.
var testConfig = event.Config{
	HoldDelay:    5,
	SlowInterval: 3,
	FastInterval: 1,
	SlowRepeats:  2,
}

type frameRecorder struct {
	frames []render.Frame
}

func (r *frameRecorder) Show(fr render.Frame) { r.frames = append(r.frames, fr) }

func (r *frameRecorder) last() render.Frame { return r.frames[len(r.frames)-1] }

var bootFields = rtc.Fields{Year: 2024, Month: 9, Day: 12, Hour: 12, Minute: 0, Second: 1}

func newTestController(divider uint) (*Controller, *rtc.Mem, *frameRecorder) {
	mem := rtc.NewMem(bootFields)
	rec := &frameRecorder{}
	return New(mem, rec, testConfig, divider), mem, rec
}

// press drives one tick with the button down and one with it released, the
// shape of a short physical tap.
func press(c *Controller, b button.Button) {
	var snap button.Snapshot
	c.TickSnapshot(snap.With(b))
	c.TickSnapshot(0)
}

// report builds a wired-gamepad input report with the given button mask.
func report(mask uint16) []byte {
	r := make([]byte, 20)
	r[1] = 20
	r[2] = byte(mask)
	r[3] = byte(mask >> 8)
	return r
}

// The full set-the-hour flow through raw gamepad reports: START enters the
// set group seeded from the clock, five UP taps advance the hour, B commits.
func TestSetHourEndToEnd(t *testing.T) {
	c, mem, _ := newTestController(1)

	const (
		maskUp    = 0x0001
		maskStart = 0x0010
		maskB     = 0x2000
	)

	c.Tick(report(maskStart))
	c.Tick(report(0))
	if c.Mode() != statemachine.SetHour {
		t.Fatalf("after START: mode = %v, want setHour", c.Mode())
	}

	for i := 0; i < 5; i++ {
		c.Tick(report(maskUp))
		c.Tick(report(0))
	}

	c.Tick(report(maskB))
	c.Tick(report(0))
	if c.Mode() != statemachine.ClockHHMM {
		t.Fatalf("after B: mode = %v, want hhmm", c.Mode())
	}

	got, err := mem.ReadTime()
	if err != nil {
		t.Fatalf("ReadTime failed: %v", err)
	}
	wantHour := (bootFields.Hour + 5) % 24
	if got.Hour != wantHour {
		t.Errorf("committed hour = %d, want %d", got.Hour, wantHour)
	}
}

// Holding UP in a set mode repeats the edit after the hold delay.
func TestHoldRepeatsEdit(t *testing.T) {
	c, _, rec := newTestController(1)

	press(c, button.Start)
	var up button.Snapshot
	up = up.With(button.Up)

	// One press edge, then enough held ticks for two hold repeats.
	for i := uint(0); i < 1+testConfig.HoldDelay+testConfig.SlowInterval; i++ {
		c.TickSnapshot(up)
	}
	c.TickSnapshot(0)

	want := "15:00:01" // 12 + press + hold(0) + hold(1)
	if got := rec.last().Digits; got != want {
		t.Errorf("digits after hold = %q, want %q", got, want)
	}
}

// Ticks with no usable report freeze the repeat timers instead of releasing
// the buttons.
func TestNoInputFreezesHold(t *testing.T) {
	c, _, _ := newTestController(1)

	press(c, button.Start)
	start := c.LastFrame().Digits

	var up button.Snapshot
	up = up.With(button.Up)

	// Not enough held ticks for the first repeat, then a stretch of dead
	// transport, then more held ticks. The dead ticks must not count.
	c.TickSnapshot(up) // press edge fires here
	c.TickSnapshot(up)
	for i := 0; i < 50; i++ {
		c.Tick(nil)
	}
	c.TickSnapshot(up)
	c.TickSnapshot(0)

	if start != "12:00:01" {
		t.Fatalf("seed digits = %q, want 12:00:01", start)
	}
	// Only the press edge advanced the hour; no hold ever fired.
	if got := c.LastFrame().Digits; got != "13:00:01" {
		t.Errorf("digits = %q, want 13:00:01", got)
	}
}

// The clock is only re-read every divider ticks; between polls the display
// keeps the previous reading.
func TestClockPollDivider(t *testing.T) {
	c, mem, _ := newTestController(4)

	c.TickSnapshot(0) // first tick always reads
	if c.LastFrame().Digits != "  12:00" {
		t.Fatalf("boot digits = %q, want %q", c.LastFrame().Digits, "  12:00")
	}

	// The stored time moves, but the next poll is three ticks away.
	for i := 0; i < 60; i++ {
		mem.Tick()
	}
	c.TickSnapshot(0)
	c.TickSnapshot(0)
	c.TickSnapshot(0)
	if got := c.LastFrame().Digits; got != "  12:00" {
		t.Errorf("digits before poll = %q, want stale %q", got, "  12:00")
	}

	c.TickSnapshot(0) // next divider boundary
	if got := c.LastFrame().Digits; got != "  12:01" {
		t.Errorf("digits after poll = %q, want %q", got, "  12:01")
	}
}

// A dead clock bus lights the indicator and keeps the last-known time on
// screen; recovery clears it.
func TestClockFailureKeepsLastKnown(t *testing.T) {
	c, mem, rec := newTestController(1)

	c.TickSnapshot(0)
	if c.ClockErr() {
		t.Fatal("indicator lit on a healthy bus")
	}

	mem.FailRead = true
	c.TickSnapshot(0)
	if !c.ClockErr() {
		t.Error("indicator not lit after a failed poll")
	}
	fr := rec.last()
	if !fr.ClockErr {
		t.Error("frame does not carry the indicator")
	}
	if fr.Digits != "  12:00" {
		t.Errorf("digits = %q, want last-known %q", fr.Digits, "  12:00")
	}

	mem.FailRead = false
	mem.Tick()
	c.TickSnapshot(0)
	if c.ClockErr() {
		t.Error("indicator still lit after recovery")
	}
}

// A failed seed keeps the machine in the clock modes and lights the
// indicator; once the bus recovers, START works again.
func TestSeedFailureRecovers(t *testing.T) {
	c, mem, _ := newTestController(1)

	c.TickSnapshot(0)
	mem.FailRead = true
	press(c, button.Start)
	if c.Mode() != statemachine.ClockHHMM {
		t.Fatalf("mode = %v after failed seed, want hhmm", c.Mode())
	}
	if !c.ClockErr() {
		t.Error("indicator not lit after failed seed")
	}

	mem.FailRead = false
	press(c, button.Start)
	if c.Mode() != statemachine.SetHour {
		t.Errorf("mode = %v after retry, want setHour", c.Mode())
	}
}

// In the set group the display shows the edit buffer, not the live clock.
func TestSetGroupShowsEditBuffer(t *testing.T) {
	c, mem, rec := newTestController(1)

	c.TickSnapshot(0)
	press(c, button.Start)
	press(c, button.Up)

	// The live clock keeps moving underneath; the frame must not follow it.
	for i := 0; i < 120; i++ {
		mem.Tick()
	}
	c.TickSnapshot(0)

	fr := rec.last()
	if fr.Digits != "13:00:01" {
		t.Errorf("set-group digits = %q, want buffered %q", fr.Digits, "13:00:01")
	}
	if !fr.Badges.Has(render.BadgeSet) {
		t.Error("set badge not lit")
	}
}
