package rtc

// Mem is an in-memory TimeSource for tests and the host simulator. Tick
// advances it one second with full calendar rollover. The Fail* switches
// inject bus failures.
type Mem struct {
	fields      Fields
	calibration int8

	FailRead  bool
	FailWrite bool
}

// NewMem returns a Mem seeded with f.
func NewMem(f Fields) *Mem {
	return &Mem{fields: f}
}

func (m *Mem) ReadTime() (Fields, error) {
	if m.FailRead {
		return Fields{}, ErrClockUnavailable
	}
	return m.fields, nil
}

func (m *Mem) WriteTime(f Fields) error {
	if m.FailWrite {
		return ErrClockUnavailable
	}
	m.fields = f
	return nil
}

func (m *Mem) ReadCalibration() (int8, error) {
	if m.FailRead {
		return 0, ErrClockUnavailable
	}
	return m.calibration, nil
}

func (m *Mem) WriteCalibration(v int8) error {
	if m.FailWrite {
		return ErrClockUnavailable
	}
	m.calibration = v
	return nil
}

// Tick advances the stored time by one second, rolling minutes, hours, days,
// months and the year as needed.
func (m *Mem) Tick() {
	f := &m.fields
	f.Second++
	if f.Second < 60 {
		return
	}
	f.Second = 0
	f.Minute++
	if f.Minute < 60 {
		return
	}
	f.Minute = 0
	f.Hour++
	if f.Hour < 24 {
		return
	}
	f.Hour = 0
	f.Day++
	if f.Day <= DaysInMonth(f.Year, f.Month) {
		return
	}
	f.Day = 1
	f.Month++
	if f.Month <= 12 {
		return
	}
	f.Month = 1
	f.Year++
}
