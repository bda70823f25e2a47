//go:build tinygo

// Package serial receives pad-link frames from the USB-host co-processor
// over the board UART. Bytes arrive whenever the co-processor polls the
// gamepad; Poll drains what is buffered and hands back at most one complete
// frame per call, never blocking the main loop.
package serial

import (
	"bytes"
	"encoding/binary"
	"machine"

	"github.com/clockpad/tinygo-clockpad/pkg/link"
)

const bufSize = 4 + link.MaxPayload + 2 // header + payload + crc

type Link struct {
	serial machine.Serialer
	buf    [bufSize]byte
	n      int
}

func NewLink(serial machine.Serialer) Link {
	return Link{
		serial: serial,
		n:      0,
	}
}

// Poll consumes available bytes and returns a complete validated frame when
// one has accumulated. It returns (nil, false) when no frame is ready this
// tick. Garbage between frames is skipped by resyncing on the sync byte;
// frames failing the CRC are dropped whole.
func (l *Link) Poll() (*link.Frame, bool) {
	for {
		b, err := l.serial.ReadByte()
		if err != nil {
			return nil, false
		}

		if l.n == 0 && b != link.SyncByte {
			continue
		}

		l.buf[l.n] = b
		l.n++

		if l.n < 4 {
			continue
		}

		length := binary.LittleEndian.Uint16(l.buf[2:4])
		if length > link.MaxPayload {
			l.n = 0
			continue
		}

		total := 4 + int(length) + 2
		if l.n < total {
			continue
		}

		frame, err := link.ReadFrame(bytes.NewReader(l.buf[:l.n]))
		l.n = 0
		if err != nil {
			continue
		}
		return frame, true
	}
}
