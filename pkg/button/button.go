// Package button defines the logical gamepad buttons the clock cares about
// and a compact snapshot of which of them are currently held down.
package button

// Button identifies one logical gamepad button.
type Button uint8

// Button values double as the deterministic order in which simultaneous
// events are applied to the state machine. Keep UP first and START last.
const (
	Up Button = iota
	Down
	Left
	Right
	A
	B
	Start

	NumButtons
)

var names = [NumButtons]string{"UP", "DOWN", "LEFT", "RIGHT", "A", "B", "START"}

// String returns the button name.
func (b Button) String() string {
	if b >= NumButtons {
		return "?"
	}
	return names[b]
}

// Snapshot is the set of buttons held down at one instant, one bit per Button.
type Snapshot uint8

// With returns a copy of the snapshot with b marked as down.
func (s Snapshot) With(b Button) Snapshot {
	if b >= NumButtons {
		return s
	}
	return s | 1<<b
}

// Without returns a copy of the snapshot with b marked as up.
func (s Snapshot) Without(b Button) Snapshot {
	if b >= NumButtons {
		return s
	}
	return s &^ (1 << b)
}

// Down reports whether b is held in this snapshot.
func (s Snapshot) Down(b Button) bool {
	if b >= NumButtons {
		return false
	}
	return s&(1<<b) != 0
}

// String lists the held buttons, e.g. "UP+A", or "-" when none are held.
func (s Snapshot) String() string {
	out := ""
	for b := Button(0); b < NumButtons; b++ {
		if !s.Down(b) {
			continue
		}
		if out != "" {
			out += "+"
		}
		out += b.String()
	}
	if out == "" {
		return "-"
	}
	return out
}
