// Package link implements the framed serial protocol between the clock board
// and the USB-host co-processor that owns the gamepad.
//
// Frame format:
//
//	[SYNC:1][TYPE:1][LEN:2][PAYLOAD:LEN][CRC:2]
//	- SYNC: 0xAA (frame start marker)
//	- TYPE: Frame type byte
//	- LEN: Payload length (uint16, little-endian)
//	- PAYLOAD: Variable length data
//	- CRC: CRC16-CCITT of [TYPE][LEN][PAYLOAD]
//
// The co-processor pushes one report frame per controller poll and a status
// frame whenever the pad connects or disconnects. A frame that fails the
// sync, length, or CRC checks is dropped whole; the caller treats that tick
// as "no input" rather than guessing at a button state.
package link

import (
	"encoding/binary"
	"errors"
	"io"
)

const (
	SyncByte = 0xAA

	// Frame types (co-processor → clock board)
	TypeReport = 0x01 // raw controller report bytes
	TypeStatus = 0x02 // pad connection state

	// Status payload values
	StatusDisconnected = 0x00
	StatusConnected    = 0x01

	// MaxPayload bounds the frame payload. Controller reports are 20
	// bytes; anything bigger is line noise.
	MaxPayload = 64
)

var (
	ErrInvalidFrame = errors.New("link: invalid frame")
	ErrCRCMismatch  = errors.New("link: CRC mismatch")
)

// Frame represents one link frame.
type Frame struct {
	Type    uint8
	Payload []byte
}

// ReadFrame reads and validates a frame from the reader.
func ReadFrame(r io.Reader) (*Frame, error) {
	// Read sync byte
	sync := make([]byte, 1)
	if _, err := io.ReadFull(r, sync); err != nil {
		return nil, err
	}
	if sync[0] != SyncByte {
		return nil, ErrInvalidFrame
	}

	// Read header (type + len)
	header := make([]byte, 3)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, err
	}

	typ := header[0]
	length := binary.LittleEndian.Uint16(header[1:])

	// Sanity check on length
	if length > MaxPayload {
		return nil, ErrInvalidFrame
	}

	// Read payload
	var payload []byte
	if length > 0 {
		payload = make([]byte, length)
		if _, err := io.ReadFull(r, payload); err != nil {
			return nil, err
		}
	}

	// Read CRC
	crcBytes := make([]byte, 2)
	if _, err := io.ReadFull(r, crcBytes); err != nil {
		return nil, err
	}
	receivedCRC := binary.LittleEndian.Uint16(crcBytes)

	// Verify CRC
	calculatedCRC := calcCRC(append(header, payload...))
	if receivedCRC != calculatedCRC {
		return nil, ErrCRCMismatch
	}

	return &Frame{
		Type:    typ,
		Payload: payload,
	}, nil
}

// WriteFrame writes a frame to the writer (co-processor side, and tests).
func WriteFrame(w io.Writer, frame *Frame) error {
	payloadLen := uint16(len(frame.Payload))
	frameLen := 1 + 1 + 2 + int(payloadLen) + 2 // sync + type + len + payload + crc

	buf := make([]byte, 0, frameLen)

	// Sync byte
	buf = append(buf, SyncByte)

	// Type
	buf = append(buf, frame.Type)

	// Length
	lenBytes := make([]byte, 2)
	binary.LittleEndian.PutUint16(lenBytes, payloadLen)
	buf = append(buf, lenBytes...)

	// Payload
	buf = append(buf, frame.Payload...)

	// CRC (of type + len + payload)
	crc := calcCRC(buf[1:]) // Skip sync byte
	crcBytes := make([]byte, 2)
	binary.LittleEndian.PutUint16(crcBytes, crc)
	buf = append(buf, crcBytes...)

	_, err := w.Write(buf)
	return err
}

// calcCRC calculates CRC16-CCITT.
// Polynomial: 0x1021, Initial: 0xFFFF
func calcCRC(data []byte) uint16 {
	var crc uint16 = 0xFFFF

	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = (crc << 1) ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}

	return crc
}
