// Package controller runs the clock's main loop logic. One Tick is one loop
// iteration: decode the controller report, advance the hold-repeat timers,
// apply the resulting events to the state machine, poll the clock chip on
// its slower cadence, and push a display frame.
//
// Everything is single-threaded and tick-driven; there are no goroutines
// here, which is also what makes the whole loop drivable from tests.
package controller

import (
	"github.com/clockpad/tinygo-clockpad/pkg/button"
	"github.com/clockpad/tinygo-clockpad/pkg/event"
	"github.com/clockpad/tinygo-clockpad/pkg/input"
	"github.com/clockpad/tinygo-clockpad/pkg/render"
	"github.com/clockpad/tinygo-clockpad/pkg/rtc"
	"github.com/clockpad/tinygo-clockpad/pkg/statemachine"
)

// Controller owns the per-tick orchestration state.
type Controller struct {
	ts       rtc.TimeSource
	renderer render.Renderer
	disp     *event.Dispatcher
	machine  *statemachine.Machine

	rtcDivider uint
	tickCount  uint

	// last-known clock reading, shown while the bus is down
	fields   rtc.Fields
	haveRead bool
	clockErr bool

	lastFrame render.Frame
}

// New wires a controller. rtcDivider is how many ticks pass between clock
// polls; the clock changes once a second, buttons need the full tick rate.
func New(ts rtc.TimeSource, renderer render.Renderer, cfg event.Config, rtcDivider uint) *Controller {
	if rtcDivider == 0 {
		rtcDivider = 1
	}
	return &Controller{
		ts:         ts,
		renderer:   renderer,
		disp:       event.NewDispatcher(cfg),
		machine:    statemachine.New(ts),
		rtcDivider: rtcDivider,
	}
}

// Mode exposes the state machine mode, mainly for tests and the simulator
// status line.
func (c *Controller) Mode() statemachine.Mode { return c.machine.Mode() }

// ClockErr reports whether the last clock access failed.
func (c *Controller) ClockErr() bool { return c.clockErr }

// LastFrame returns the most recently rendered frame.
func (c *Controller) LastFrame() render.Frame { return c.lastFrame }

// Tick runs one loop iteration with this tick's raw controller report.
// Pass nil (or any unusable report) when the transport had nothing; that is
// the NoInput path and freezes the repeat timers. All errors are recovered
// inside the tick; the loop never stops.
func (c *Controller) Tick(report []byte) {
	snap, err := input.Decode(report)
	if err != nil {
		c.disp.TickNoInput()
	} else {
		// Events come back in button enumeration order, which is the
		// documented order simultaneous presses are applied in.
		for _, ev := range c.disp.Tick(snap) {
			c.apply(ev)
		}
	}

	c.pollClock()
	c.draw()
}

// TickSnapshot is Tick for callers that already hold a decoded snapshot
// (the simulator's keyboard path).
func (c *Controller) TickSnapshot(snap button.Snapshot) {
	for _, ev := range c.disp.Tick(snap) {
		c.apply(ev)
	}
	c.pollClock()
	c.draw()
}

func (c *Controller) apply(ev event.Event) {
	if err := c.machine.Apply(ev); err != nil {
		// Seed or commit failed: the machine kept its mode and buffer.
		// Light the indicator; the user retries the exit press.
		c.clockErr = true
	}
}

// pollClock re-reads the clock every rtcDivider ticks while displaying it.
// In the set group the edit buffer is the truth being shown, so polling
// pauses and resumes on exit.
func (c *Controller) pollClock() {
	due := c.tickCount%c.rtcDivider == 0 || !c.haveRead
	c.tickCount++
	if c.machine.Mode().InSetGroup() || !due {
		return
	}

	fields, err := c.ts.ReadTime()
	if err != nil {
		// Keep showing the last-known time; retry next poll.
		c.clockErr = true
		return
	}
	c.fields = fields
	c.haveRead = true
	c.clockErr = false
}

func (c *Controller) draw() {
	var fr render.Frame
	if c.machine.Mode().InSetGroup() {
		buf := c.machine.Buffer()
		fr = render.Compose(c.machine.Mode(), buf.Fields, buf.Calibration, c.clockErr)
	} else {
		fr = render.Compose(c.machine.Mode(), c.fields, 0, c.clockErr)
	}
	c.lastFrame = fr
	c.renderer.Show(fr)
}
