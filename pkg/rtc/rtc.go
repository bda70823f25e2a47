// Package rtc abstracts the battery-backed real-time clock. The state
// machine edits plain integer fields; the chip adapters translate those to
// and from the register encoding.
package rtc

import "errors"

// ErrClockUnavailable is returned when the clock could not be reached over
// the bus. It is never fatal; callers keep running on last-known values and
// retry on a later tick.
var ErrClockUnavailable = errors.New("rtc: clock unavailable")

// Calibration register limits. The DS3231 aging offset is a two's-complement
// byte; the value saturates at these bounds, it never wraps.
const (
	CalibrationMin = -128
	CalibrationMax = 127
)

// Representable year range. The chip stores a two-digit year plus a century
// bit, anchored at 2000.
const (
	YearMin = 2000
	YearMax = 2199
)

// Fields is one clock reading as plain integers: Month 1-12, Day 1-31,
// Hour 0-23, Minute and Second 0-59.
type Fields struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second int
}

// TimeSource is the clock the controller reads and the state machine commits
// to. WriteTime is atomic from the caller's perspective: a concurrent
// ReadTime never observes a half-written date.
type TimeSource interface {
	ReadTime() (Fields, error)
	WriteTime(Fields) error
	ReadCalibration() (int8, error)
	WriteCalibration(int8) error
}

// ClampCalibration saturates v to the supported register range.
func ClampCalibration(v int) int8 {
	if v < CalibrationMin {
		return CalibrationMin
	}
	if v > CalibrationMax {
		return CalibrationMax
	}
	return int8(v)
}
