// Package render decides what the displays show. The composer is pure: mode
// plus clock fields in, one Frame out. Device backends (OLED on hardware,
// terminal cells in the simulator) just draw the frame they are given.
package render

// Badge identifies one of the mode-indicator sprites around the digit area.
type Badge uint8

const (
	BadgeYear Badge = iota
	BadgeMon
	BadgeDay
	BadgeSet
	BadgeHHMM
	BadgeMMSS
	BadgeCal

	numBadges
)

var badgeNames = [numBadges]string{"YEAR", "MON", "DAY", "SET", "HHMM", "MMSS", "CAL"}

func (b Badge) String() string {
	if b >= numBadges {
		return "?"
	}
	return badgeNames[b]
}

// Badges is a bitmask of lit badges.
type Badges uint8

// With returns the set with b lit.
func (s Badges) With(b Badge) Badges { return s | 1<<b }

// Has reports whether b is lit.
func (s Badges) Has(b Badge) bool { return s&(1<<b) != 0 }

// Frame is one complete display update. Digits is the big seven-segment
// style readout; MsgTop and MsgBottom are the two character rows above and
// below it. ClockErr lights the bus-trouble indicator so a dead clock chip
// is never silently ignored.
type Frame struct {
	Digits    string
	MsgTop    string
	MsgBottom string
	Badges    Badges
	ClockErr  bool
}

// Renderer draws frames. Calls are fire-and-forget; a renderer that cannot
// draw (missing display) drops the frame.
type Renderer interface {
	Show(Frame)
}

// Discard is a Renderer that draws nothing.
type Discard struct{}

func (Discard) Show(Frame) {}
