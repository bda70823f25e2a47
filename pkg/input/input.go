// Package input decodes raw wired-controller reports into button snapshots.
//
// The report format is the XInput wired report: byte 0 is the message type,
// byte 1 the report length, bytes 2-3 the little-endian wButtons word. Axes
// and triggers in the remaining bytes are ignored; this device only uses the
// d-pad, A, B and START.
package input

import (
	"encoding/binary"
	"errors"

	"github.com/clockpad/tinygo-clockpad/pkg/button"
)

// ErrNoInput means no usable snapshot could be produced from the report.
// Callers must treat it as "no data this tick", not as "all buttons released".
var ErrNoInput = errors.New("input: no snapshot available")

const (
	// XInput wired report layout.
	msgTypeInput = 0x00
	reportLen    = 20

	maskDPadUp    = 0x0001
	maskDPadDown  = 0x0002
	maskDPadLeft  = 0x0004
	maskDPadRight = 0x0008
	maskStart     = 0x0010
	maskA         = 0x1000
	maskB         = 0x2000
)

// wButtons bit → logical button, applied in button enumeration order.
var buttonMasks = [button.NumButtons]uint16{
	button.Up:    maskDPadUp,
	button.Down:  maskDPadDown,
	button.Left:  maskDPadLeft,
	button.Right: maskDPadRight,
	button.A:     maskA,
	button.B:     maskB,
	button.Start: maskStart,
}

// Decode turns one raw controller report into a snapshot of held buttons.
// Short or malformed reports return ErrNoInput so the caller can freeze its
// hold timers instead of treating garbage as a mass release.
func Decode(report []byte) (button.Snapshot, error) {
	if len(report) < 4 {
		return 0, ErrNoInput
	}
	if report[0] != msgTypeInput || report[1] != reportLen {
		return 0, ErrNoInput
	}
	w := binary.LittleEndian.Uint16(report[2:4])

	var snap button.Snapshot
	for b := button.Button(0); b < button.NumButtons; b++ {
		if w&buttonMasks[b] != 0 {
			snap = snap.With(b)
		}
	}
	return snap, nil
}
