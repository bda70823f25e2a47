//go:build !noscreen

package render

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/ssd1306"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"
)

const (
	i2cAddress = 0x3C

	screenWidth  = 128
	screenHeight = 64

	// Row baselines
	yMsgTop = 10
	yBadges = 22
	yDigits = 44
	yMsgBot = 62
)

var white = color.RGBA{255, 255, 255, 255}

// OLED draws frames on an SSD1306 over I2C. It shares the bus with the
// clock chip; both transfers are short and the loop is single-threaded, so
// no arbitration is needed.
//
// To build without display support (saves flash), use:
//
//	tinygo build -tags=noscreen -target=feather-rp2040 .
type OLED struct {
	device *ssd1306.Device
	last   Frame
	drawn  bool
}

// NewOLED initializes the display on an already-configured bus.
func NewOLED(bus drivers.I2C) *OLED {
	dev := ssd1306.NewI2C(bus)
	dev.Configure(ssd1306.Config{
		Address: i2cAddress,
		Width:   screenWidth,
		Height:  screenHeight,
	})
	dev.ClearDisplay()
	return &OLED{device: dev}
}

// Show draws one frame. Identical consecutive frames are skipped to avoid
// redundant bus traffic; the clock digits change once a second at most.
func (o *OLED) Show(fr Frame) {
	if o.drawn && fr == o.last {
		return
	}
	o.last = fr
	o.drawn = true

	o.device.ClearBuffer()
	tinyfont.WriteLine(o.device, &tinyfont.Org01, 2, yMsgTop, fr.MsgTop, white)
	tinyfont.WriteLine(o.device, &tinyfont.Org01, 2, yBadges, badgeLine(fr), white)
	tinyfont.WriteLine(o.device, &freemono.Bold9pt7b, 2, yDigits, fr.Digits, white)
	tinyfont.WriteLine(o.device, &tinyfont.Org01, 2, yMsgBot, fr.MsgBottom, white)
	o.device.Display()
}

// badgeLine renders the lit badges as a text row, with the bus-trouble
// indicator pinned on the end.
func badgeLine(fr Frame) string {
	line := ""
	for b := Badge(0); b < numBadges; b++ {
		if !fr.Badges.Has(b) {
			continue
		}
		if line != "" {
			line += " "
		}
		line += b.String()
	}
	if fr.ClockErr {
		line += " !RTC"
	}
	return line
}
