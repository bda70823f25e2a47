//go:build noscreen

package render

import "tinygo.org/x/drivers"

// OLED is a no-op stub when the noscreen build tag is used. This drops the
// SSD1306 driver and font data from the firmware image.
type OLED struct{}

// NewOLED returns a renderer that draws nothing.
func NewOLED(bus drivers.I2C) *OLED {
	return &OLED{}
}

// Show is a no-op in noscreen mode.
func (o *OLED) Show(fr Frame) {}
