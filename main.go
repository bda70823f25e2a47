//go:build tinygo

package main

import (
	"machine"
	"time"

	"github.com/clockpad/tinygo-clockpad/pkg/config"
	"github.com/clockpad/tinygo-clockpad/pkg/controller"
	"github.com/clockpad/tinygo-clockpad/pkg/link"
	"github.com/clockpad/tinygo-clockpad/pkg/render"
	"github.com/clockpad/tinygo-clockpad/pkg/rtc"
	"github.com/clockpad/tinygo-clockpad/pkg/storage"
	"github.com/clockpad/tinygo-clockpad/serial"
)

// A report older than this many ticks means the co-processor stalled;
// treat the input as unavailable rather than replaying the stale state.
const staleReportTicks = 25

func main() {
	i2c := machine.I2C0
	if err := i2c.Configure(machine.I2CConfig{
		Frequency: 400000, // 400kHz fast mode, shared by RTC and OLED
		SCL:       machine.GPIO1,
		SDA:       machine.GPIO0,
	}); err != nil {
		println("I2C config failed:", err.Error())
	}

	settings := config.Default()
	if store, err := storage.New(machine.Flash, true); err != nil {
		println("storage unavailable, using default settings:", err.Error())
	} else {
		settings = store.SettingsOrDefault()
	}

	clock := rtc.NewDS3231(i2c)
	if lost, err := clock.LostPower(); err == nil && lost {
		println("RTC lost power, stored time is stale")
	}

	screen := render.NewOLED(i2c)
	padLink := serial.NewLink(machine.Serial) // USB CDC Serial from the co-processor

	ctl := controller.New(clock, screen, settings.EventConfig(), uint(settings.RTCDivider))

	tick := time.Duration(settings.TickMs) * time.Millisecond
	connected := false
	var lastReport []byte
	staleTicks := 0

	// MAIN EVENT LOOP
	for {
		if frame, ok := padLink.Poll(); ok {
			switch frame.Type {
			case link.TypeReport:
				lastReport = frame.Payload
				staleTicks = 0
			case link.TypeStatus:
				was := connected
				connected = len(frame.Payload) == 1 && frame.Payload[0] == link.StatusConnected
				if connected != was {
					if connected {
						println("gamepad connected")
					} else {
						println("gamepad disconnected")
					}
					lastReport = nil
				}
			}
		} else {
			staleTicks++
		}

		report := lastReport
		if !connected || staleTicks > staleReportTicks {
			report = nil
		}

		ctl.Tick(report)
		time.Sleep(tick)
	}
}
