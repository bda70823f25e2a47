package rtc

import (
	"periph.io/x/conn/v3/i2c"
)

// PeriphBus adapts a periph.io I2C bus to the drivers.I2C interface, so the
// same DS3231 driver runs on a Linux host (e.g. a Raspberry Pi deployment)
// as on the microcontroller.
type PeriphBus struct {
	Bus i2c.Bus
}

func (p PeriphBus) ReadRegister(addr uint8, r uint8, buf []byte) error {
	return p.Bus.Tx(uint16(addr), []byte{r}, buf)
}

func (p PeriphBus) WriteRegister(addr uint8, r uint8, buf []byte) error {
	w := make([]byte, 0, len(buf)+1)
	w = append(w, r)
	w = append(w, buf...)
	return p.Bus.Tx(uint16(addr), w, nil)
}

func (p PeriphBus) Tx(addr uint16, w, r []byte) error {
	return p.Bus.Tx(addr, w, r)
}
