// Package statemachine implements the clock's mode logic: two display
// modes, six set modes, and the lookup table that maps button events in each
// mode to transitions and field edits.
//
// Table of states and state transitions:
//
//	| Mode     | UP     | DOWN   | LEFT    | RIGHT   | A       | B       | START   |
//	| -------- | ------ | ------ | ------- | ------- | ------- | ------- | ------- |
//	| hhmm     | nop    | nop    | mmss    | mmss    | nop     | hhmm    | setHour |
//	| mmss     | nop    | nop    | hhmm    | hhmm    | nop     | hhmm    | setHour |
//	| setYr    | year+1 | year-1 | setCal  | setMDay | setMDay | commit  | commit  |
//	| setMDay  | day+1  | day-1  | setYr   | setHour | setHour | commit  | commit  |
//	| setHour  | hour+1 | hour-1 | setMDay | setHMin | setHMin | commit  | commit  |
//	| setHMin  | min+1  | min-1  | setHour | setSec  | setSec  | commit  | commit  |
//	| setSec   | sec=0  | sec=0  | setHMin | setCal  | setYr   | commit  | commit  |
//	| setCal   | cal+1  | cal-1  | setSec  | setYr   | setYr   | commit  | commit  |
//
// Entering the set group copies the live clock into an edit buffer; nothing
// touches the clock chip until the commit on exit, so an abandoned edit
// session can never corrupt the stored time.
package statemachine

import (
	"github.com/clockpad/tinygo-clockpad/pkg/button"
	"github.com/clockpad/tinygo-clockpad/pkg/event"
	"github.com/clockpad/tinygo-clockpad/pkg/rtc"
)

// Mode is the machine's current state.
type Mode uint8

const (
	ClockHHMM Mode = iota
	ClockMMSS
	SetYear
	SetMonthDay
	SetHour
	SetHourMin
	SetSecond
	SetCalibration

	numModes
)

var modeNames = [numModes]string{
	"hhmm", "mmss", "setYr", "setMDay", "setHour", "setHMin", "setSec", "setCal",
}

func (m Mode) String() string {
	if m >= numModes {
		return "?"
	}
	return modeNames[m]
}

// InSetGroup reports whether m is one of the editing modes.
func (m Mode) InSetGroup() bool {
	return m >= SetYear
}

// EditBuffer is the scratch copy of the clock fields edited in the set
// group. It is seeded from the live clock on entry and written back only on
// the commit transition.
type EditBuffer struct {
	Fields      rtc.Fields
	Calibration int8
}

// Action codes stored in the lookup table.
type action uint8

const (
	actNop action = iota

	// state transitions
	toHHMM
	toMMSS
	toSetYear
	toSetMonthDay
	toSetHour
	toSetHourMin
	toSetSecond
	toSetCalibration
	enterSet   // seed edit buffer from the clock, then go to setHour
	commitExit // write edit buffer to the clock, then go to hhmm

	// field edits
	yearInc
	yearDec
	dayInc
	dayDec
	hourInc
	hourDec
	minInc
	minDec
	secZero
	calInc
	calDec
)

// table is the authoritative transition/action table, indexed by
// [Mode][Button].
var table = [numModes][button.NumButtons]action{
	//                UP       DOWN     LEFT              RIGHT             A             B           START
	ClockHHMM:      {actNop, actNop, toMMSS, toMMSS, actNop, toHHMM, enterSet},
	ClockMMSS:      {actNop, actNop, toHHMM, toHHMM, actNop, toHHMM, enterSet},
	SetYear:        {yearInc, yearDec, toSetCalibration, toSetMonthDay, toSetMonthDay, commitExit, commitExit},
	SetMonthDay:    {dayInc, dayDec, toSetYear, toSetHour, toSetHour, commitExit, commitExit},
	SetHour:        {hourInc, hourDec, toSetMonthDay, toSetHourMin, toSetHourMin, commitExit, commitExit},
	SetHourMin:     {minInc, minDec, toSetHour, toSetSecond, toSetSecond, commitExit, commitExit},
	SetSecond:      {secZero, secZero, toSetHourMin, toSetCalibration, toSetYear, commitExit, commitExit},
	SetCalibration: {calInc, calDec, toSetSecond, toSetYear, toSetYear, commitExit, commitExit},
}

// Machine owns the current mode and the edit buffer. The clock chip is only
// touched on set-group entry (seed) and exit (commit).
type Machine struct {
	ts   rtc.TimeSource
	mode Mode
	buf  EditBuffer
}

// New returns a machine starting in the hh:mm clock mode.
func New(ts rtc.TimeSource) *Machine {
	return &Machine{ts: ts, mode: ClockHHMM}
}

// Mode returns the current mode.
func (m *Machine) Mode() Mode { return m.mode }

// Buffer returns the current edit buffer. Only meaningful in the set group.
func (m *Machine) Buffer() EditBuffer { return m.buf }

// Apply handles one button event. A non-nil error means a clock bus failure
// during seed or commit; the mode is left unchanged in that case so the user
// can retry, and the edit buffer keeps its contents.
func (m *Machine) Apply(ev event.Event) error {
	// Hold repeats only drive the UP/DOWN value edits. Navigation, commit
	// and mode entry fire on the press edge alone.
	if ev.Kind == event.Hold && ev.Button != button.Up && ev.Button != button.Down {
		return nil
	}
	if ev.Button >= button.NumButtons {
		return nil
	}

	switch act := table[m.mode][ev.Button]; act {
	case actNop:

	case toHHMM:
		m.mode = ClockHHMM
	case toMMSS:
		m.mode = ClockMMSS
	case toSetYear:
		m.mode = SetYear
	case toSetMonthDay:
		m.mode = SetMonthDay
	case toSetHour:
		m.mode = SetHour
	case toSetHourMin:
		m.mode = SetHourMin
	case toSetSecond:
		m.mode = SetSecond
	case toSetCalibration:
		m.mode = SetCalibration

	case enterSet:
		fields, err := m.ts.ReadTime()
		if err != nil {
			return err
		}
		cal, err := m.ts.ReadCalibration()
		if err != nil {
			return err
		}
		m.buf = EditBuffer{Fields: fields, Calibration: cal}
		m.mode = SetHour

	case commitExit:
		if err := m.ts.WriteTime(m.buf.Fields); err != nil {
			return err
		}
		if err := m.ts.WriteCalibration(m.buf.Calibration); err != nil {
			return err
		}
		m.mode = ClockHHMM

	default:
		m.edit(act)
	}
	return nil
}

// edit applies one field mutation to the buffer. Every path keeps the buffer
// a valid calendar date, so nothing invalid can ever be committed.
func (m *Machine) edit(act action) {
	f := &m.buf.Fields
	switch act {
	case yearInc:
		if f.Year < rtc.YearMax {
			f.Year++
			f.Day = rtc.ClampDay(f.Year, f.Month, f.Day)
		}
	case yearDec:
		// Below the minimum representable year is a no-op, not a wrap.
		if f.Year > rtc.YearMin {
			f.Year--
			f.Day = rtc.ClampDay(f.Year, f.Month, f.Day)
		}
	case dayInc:
		m.rollDayForward()
	case dayDec:
		m.rollDayBack()
	case hourInc:
		f.Hour = (f.Hour + 1) % 24
	case hourDec:
		f.Hour = (f.Hour + 23) % 24
	case minInc:
		f.Minute = (f.Minute + 1) % 60
	case minDec:
		f.Minute = (f.Minute + 59) % 60
	case secZero:
		// Round to the nearest minute: 30 or more seconds carries one
		// minute forward, then seconds clear.
		if f.Second >= 30 {
			f.Minute++
			if f.Minute >= 60 {
				f.Minute = 0
				f.Hour++
				if f.Hour >= 24 {
					f.Hour = 0
					m.rollDayForward()
				}
			}
		}
		f.Second = 0
	case calInc:
		m.buf.Calibration = rtc.ClampCalibration(int(m.buf.Calibration) + 1)
	case calDec:
		m.buf.Calibration = rtc.ClampCalibration(int(m.buf.Calibration) - 1)
	}
}

// rollDayForward steps the date one day ahead, crossing month and year
// boundaries. Stepping the day is also how the month gets edited.
func (m *Machine) rollDayForward() {
	f := &m.buf.Fields
	f.Day++
	if f.Day <= rtc.DaysInMonth(f.Year, f.Month) {
		return
	}
	f.Day = 1
	f.Month++
	if f.Month > 12 {
		f.Month = 1
		if f.Year < rtc.YearMax {
			f.Year++
		}
	}
}

// rollDayBack steps the date one day back, crossing month and year
// boundaries.
func (m *Machine) rollDayBack() {
	f := &m.buf.Fields
	f.Day--
	if f.Day >= 1 {
		return
	}
	f.Month--
	if f.Month < 1 {
		f.Month = 12
		if f.Year > rtc.YearMin {
			f.Year--
		}
	}
	f.Day = rtc.DaysInMonth(f.Year, f.Month)
}
