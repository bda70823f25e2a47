// Package config defines the tunable settings for the clock controller:
// the tick cadence, the clock poll divider, and the hold-repeat schedule.
// The struct has a fixed binary layout for flash persistence and yaml tags
// for the host-side settings file.
package config

import (
	"encoding/binary"
	"errors"

	"github.com/clockpad/tinygo-clockpad/pkg/event"
)

// CurrentVersion is the settings format version.
// Bump this when making breaking changes to the layout.
// When firmware boots and finds a different version in flash, settings reset
// to defaults.
const CurrentVersion uint16 = 1

// SettingsSize is the serialized size in bytes.
const SettingsSize = 16

// Settings holds every tunable. All tick-denominated values are counts of
// main-loop ticks; TickMs is the tick length itself.
// Total size: 16 bytes
// Layout (all uint16, little-endian):
//
//	[0-1]:   Version
//	[2-3]:   HoldDelay
//	[4-5]:   SlowInterval
//	[6-7]:   FastInterval
//	[8-9]:   SlowRepeats
//	[10-11]: TickMs
//	[12-13]: RTCDivider
//	[14-15]: Reserved
type Settings struct {
	Version      uint16 `yaml:"-"`
	HoldDelay    uint16 `yaml:"hold_delay"`    // ticks before the first hold repeat
	SlowInterval uint16 `yaml:"slow_interval"` // ticks between early repeats
	FastInterval uint16 `yaml:"fast_interval"` // ticks between accelerated repeats
	SlowRepeats  uint16 `yaml:"slow_repeats"`  // repeats emitted at the slow spacing
	TickMs       uint16 `yaml:"tick_ms"`       // main loop cadence
	RTCDivider   uint16 `yaml:"rtc_divider"`   // clock poll once per this many ticks
	Reserved     uint16 `yaml:"-"`
}

// Errors
var (
	ErrInvalidSize = errors.New("invalid settings size")
	ErrBadVersion  = errors.New("settings version mismatch")
	ErrBadTick     = errors.New("tick_ms must be nonzero")
	ErrBadDivider  = errors.New("rtc_divider must be at least 1")
)

// Default returns the shipped tuning: 10ms tick, clock polled four times a
// second, half-second hold delay, repeats at 4/s then 20/s.
func Default() Settings {
	return Settings{
		Version:      CurrentVersion,
		HoldDelay:    50,
		SlowInterval: 25,
		FastInterval: 5,
		SlowRepeats:  4,
		TickMs:       10,
		RTCDivider:   25,
	}
}

// Validate checks the settings, including the repeat schedule rules.
func (s *Settings) Validate() error {
	if s.TickMs == 0 {
		return ErrBadTick
	}
	if s.RTCDivider == 0 {
		return ErrBadDivider
	}
	return s.EventConfig().Validate()
}

// EventConfig converts the repeat tunables to the dispatcher's config type.
func (s *Settings) EventConfig() event.Config {
	return event.Config{
		HoldDelay:    uint(s.HoldDelay),
		SlowInterval: uint(s.SlowInterval),
		FastInterval: uint(s.FastInterval),
		SlowRepeats:  uint(s.SlowRepeats),
	}
}

// MarshalBinary implements encoding.BinaryMarshaler for Settings.
func (s *Settings) MarshalBinary() ([]byte, error) {
	buf := make([]byte, SettingsSize)
	binary.LittleEndian.PutUint16(buf[0:], s.Version)
	binary.LittleEndian.PutUint16(buf[2:], s.HoldDelay)
	binary.LittleEndian.PutUint16(buf[4:], s.SlowInterval)
	binary.LittleEndian.PutUint16(buf[6:], s.FastInterval)
	binary.LittleEndian.PutUint16(buf[8:], s.SlowRepeats)
	binary.LittleEndian.PutUint16(buf[10:], s.TickMs)
	binary.LittleEndian.PutUint16(buf[12:], s.RTCDivider)
	binary.LittleEndian.PutUint16(buf[14:], s.Reserved)
	return buf, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler for Settings.
func (s *Settings) UnmarshalBinary(data []byte) error {
	if len(data) < SettingsSize {
		return ErrInvalidSize
	}
	s.Version = binary.LittleEndian.Uint16(data[0:])
	s.HoldDelay = binary.LittleEndian.Uint16(data[2:])
	s.SlowInterval = binary.LittleEndian.Uint16(data[4:])
	s.FastInterval = binary.LittleEndian.Uint16(data[6:])
	s.SlowRepeats = binary.LittleEndian.Uint16(data[8:])
	s.TickMs = binary.LittleEndian.Uint16(data[10:])
	s.RTCDivider = binary.LittleEndian.Uint16(data[12:])
	s.Reserved = binary.LittleEndian.Uint16(data[14:])
	return nil
}
