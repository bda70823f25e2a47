// Package event turns per-tick button snapshots into discrete press and
// hold-repeat events.
//
// A button going down emits exactly one Press. While it stays down the
// dispatcher runs a per-button repeat timer: after HoldDelay ticks it emits
// Hold with repeat index 0, then further Holds spaced SlowInterval ticks
// apart for the first SlowRepeats repeats and FastInterval ticks apart after
// that. Releasing the button clears its timer without emitting anything.
package event

import (
	"errors"

	"github.com/clockpad/tinygo-clockpad/pkg/button"
)

// Kind distinguishes the two event flavors.
type Kind uint8

const (
	Press Kind = iota
	Hold
)

// Event is one discrete button event.
type Event struct {
	Button button.Button
	Kind   Kind
	Repeat uint // repeat index, meaningful for Hold only
}

// Config holds the repeat timing tunables, all in ticks.
type Config struct {
	HoldDelay    uint // ticks a button must stay down before the first Hold
	SlowInterval uint // spacing for the first SlowRepeats holds
	FastInterval uint // spacing once the ramp has accelerated
	SlowRepeats  uint // number of holds emitted at the slow spacing
}

// DefaultConfig is tuned for a 10ms tick: half a second to the first repeat,
// four repeats at 4/s, then 20/s.
func DefaultConfig() Config {
	return Config{
		HoldDelay:    50,
		SlowInterval: 25,
		FastInterval: 5,
		SlowRepeats:  4,
	}
}

var (
	ErrZeroDelay        = errors.New("event: HoldDelay must be nonzero")
	ErrZeroInterval     = errors.New("event: repeat intervals must be nonzero")
	ErrIntervalIncrease = errors.New("event: FastInterval must not exceed SlowInterval")
)

// Validate checks that the schedule can only accelerate, never slow down.
func (c Config) Validate() error {
	if c.HoldDelay == 0 {
		return ErrZeroDelay
	}
	if c.SlowInterval == 0 || c.FastInterval == 0 {
		return ErrZeroInterval
	}
	if c.FastInterval > c.SlowInterval {
		return ErrIntervalIncrease
	}
	return nil
}

// interval returns the spacing between hold i and hold i+1.
func (c Config) interval(i uint) uint {
	if i < c.SlowRepeats {
		return c.SlowInterval
	}
	return c.FastInterval
}

// repeatTimer tracks one held button. held counts ticks since the down edge,
// next is the held value at which the upcoming Hold fires.
type repeatTimer struct {
	held    uint
	repeats uint
	next    uint
}

// Dispatcher converts successive snapshots into events. It owns all repeat
// timer state; callers just feed it one snapshot per tick.
type Dispatcher struct {
	cfg    Config
	prev   button.Snapshot
	timers [button.NumButtons]repeatTimer
}

// NewDispatcher returns a dispatcher using cfg, falling back to
// DefaultConfig when cfg fails validation.
func NewDispatcher(cfg Config) *Dispatcher {
	if cfg.Validate() != nil {
		cfg = DefaultConfig()
	}
	return &Dispatcher{cfg: cfg}
}

// Tick advances every timer by one tick against the new snapshot and returns
// the events this tick produced, in button enumeration order. At most one
// event per button per tick; distinct buttons are tracked independently.
func (d *Dispatcher) Tick(snap button.Snapshot) []Event {
	var events []Event
	for b := button.Button(0); b < button.NumButtons; b++ {
		down := snap.Down(b)
		was := d.prev.Down(b)
		switch {
		case down && !was:
			// Down edge: arm the timer, emit the one Press.
			d.timers[b] = repeatTimer{next: d.cfg.HoldDelay}
			events = append(events, Event{Button: b, Kind: Press})
		case down && was:
			t := &d.timers[b]
			t.held++
			if t.held >= t.next {
				events = append(events, Event{Button: b, Kind: Hold, Repeat: t.repeats})
				t.next = t.held + d.cfg.interval(t.repeats)
				t.repeats++
			}
		case !down && was:
			d.timers[b] = repeatTimer{}
		}
	}
	d.prev = snap
	return events
}

// TickNoInput is called when the decoder had nothing usable this tick. All
// timers freeze in place so a transient read failure neither restarts the
// acceleration ramp nor fakes a release.
func (d *Dispatcher) TickNoInput() {}
