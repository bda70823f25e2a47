package rtc

// I2C is the register-level bus the driver needs: TinyGo's machine.I2C and
// PeriphBus both provide it. (tinygo.org/x/drivers dropped ReadRegister and
// WriteRegister from its I2C interface in v0.26.)
type I2C interface {
	ReadRegister(addr uint8, r uint8, buf []byte) error
	WriteRegister(addr uint8, r uint8, buf []byte) error
	Tx(addr uint16, w, r []byte) error
}

// DS3231 register map (datasheet: DS3231, Maxim Integrated).
const (
	Address = 0x68

	regSeconds = 0x00
	regMinutes = 0x01
	regHours   = 0x02
	regWeekday = 0x03
	regDay     = 0x04
	regMonth   = 0x05 // bit 7 is the century flag
	regYear    = 0x06
	regControl = 0x0E
	regStatus  = 0x0F // bit 7 is the oscillator-stop flag
	regAging   = 0x10 // two's-complement drift compensation

	centuryBit = 1 << 7
	osfBit     = 1 << 7
)

// DS3231 drives the clock chip over I2C. Time registers are read and written
// as a single 7-byte burst, so a reader on the same bus never sees a date
// with only some registers updated.
type DS3231 struct {
	bus     I2C
	Address uint8
}

// NewDS3231 returns a driver for the chip at the standard address.
func NewDS3231(bus I2C) *DS3231 {
	return &DS3231{
		bus:     bus,
		Address: Address,
	}
}

// ReadTime reads the calendar registers and decodes them to plain integers.
func (d *DS3231) ReadTime() (Fields, error) {
	buf := make([]byte, 7)
	if err := d.bus.ReadRegister(d.Address, regSeconds, buf); err != nil {
		return Fields{}, ErrClockUnavailable
	}

	f := Fields{
		Second: bcdToDec(buf[0] & 0x7F),
		Minute: bcdToDec(buf[1] & 0x7F),
		Hour:   bcdToDec(buf[2] & 0x3F), // 24-hour mode
		Day:    bcdToDec(buf[4] & 0x3F),
		Month:  bcdToDec(buf[5] & 0x1F),
		Year:   bcdToDec(buf[6]) + YearMin,
	}
	if buf[5]&centuryBit != 0 {
		f.Year += 100
	}
	return f, nil
}

// WriteTime encodes f and writes all calendar registers in one burst. The
// oscillator-stop flag is cleared afterwards so the chip reports the time as
// valid again.
func (d *DS3231) WriteTime(f Fields) error {
	year := f.Year - YearMin
	century := byte(0)
	if year >= 100 {
		year -= 100
		century = centuryBit
	}

	buf := []byte{
		decToBCD(f.Second),
		decToBCD(f.Minute),
		decToBCD(f.Hour),
		decToBCD(weekday(f)),
		decToBCD(f.Day),
		decToBCD(f.Month) | century,
		decToBCD(year),
	}
	if err := d.bus.WriteRegister(d.Address, regSeconds, buf); err != nil {
		return ErrClockUnavailable
	}

	status := make([]byte, 1)
	if err := d.bus.ReadRegister(d.Address, regStatus, status); err != nil {
		return ErrClockUnavailable
	}
	status[0] &^= osfBit
	if err := d.bus.WriteRegister(d.Address, regStatus, status); err != nil {
		return ErrClockUnavailable
	}
	return nil
}

// ReadCalibration returns the aging-offset register.
func (d *DS3231) ReadCalibration() (int8, error) {
	buf := make([]byte, 1)
	if err := d.bus.ReadRegister(d.Address, regAging, buf); err != nil {
		return 0, ErrClockUnavailable
	}
	return int8(buf[0]), nil
}

// WriteCalibration sets the aging-offset register.
func (d *DS3231) WriteCalibration(v int8) error {
	if err := d.bus.WriteRegister(d.Address, regAging, []byte{byte(v)}); err != nil {
		return ErrClockUnavailable
	}
	return nil
}

// LostPower reports whether the oscillator stopped since the last WriteTime,
// meaning the stored time cannot be trusted.
func (d *DS3231) LostPower() (bool, error) {
	buf := make([]byte, 1)
	if err := d.bus.ReadRegister(d.Address, regStatus, buf); err != nil {
		return false, ErrClockUnavailable
	}
	return buf[0]&osfBit != 0, nil
}

// weekday computes the 1-7 day-of-week register value using Zeller's
// congruence. The chip only needs it to be internally consistent.
func weekday(f Fields) int {
	y, m := f.Year, f.Month
	if m < 3 {
		m += 12
		y--
	}
	k := y % 100
	j := y / 100
	h := (f.Day + 13*(m+1)/5 + k + k/4 + j/4 + 5*j) % 7
	// Zeller: 0 = Saturday. Map to 1 = Sunday .. 7 = Saturday.
	return (h+1)%7 + 1
}

// decToBCD converts int to BCD
func decToBCD(dec int) uint8 {
	return uint8(dec + 6*(dec/10))
}

// bcdToDec converts BCD to int
func bcdToDec(bcd uint8) int {
	return int(bcd - 6*(bcd>>4))
}
