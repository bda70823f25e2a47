// Command clocksim runs the clock controller on a host terminal: the
// keyboard stands in for the gamepad and an in-memory clock stands in for
// the RTC chip. Hold a key and the terminal's auto-repeat drives the same
// hold-acceleration ramp the hardware sees.
//
// Keys: arrows = d-pad, a = A, b = B, Enter = START, F = fail the clock
// bus (toggle), q or Esc = quit.
package main

import (
	"flag"
	"log"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/clockpad/tinygo-clockpad/pkg/button"
	"github.com/clockpad/tinygo-clockpad/pkg/config"
	"github.com/clockpad/tinygo-clockpad/pkg/controller"
	"github.com/clockpad/tinygo-clockpad/pkg/render"
	"github.com/clockpad/tinygo-clockpad/pkg/rtc"
)

// A key event keeps its button down for this many ticks; terminal
// auto-repeat refreshes it faster than that, so holding a key reads as a
// continuously held button.
const keyHoldTicks = 5

func main() {
	configPath := flag.String("config", "", "settings YAML file")
	flag.Parse()

	settings := config.Default()
	if *configPath != "" {
		var err error
		settings, err = config.LoadFile(*configPath)
		if err != nil {
			log.Fatalf("load settings: %v", err)
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("init screen: %v", err)
	}
	defer screen.Fini()
	screen.SetStyle(tcell.StyleDefault)

	now := time.Now()
	mem := rtc.NewMem(rtc.Fields{
		Year:   now.Year(),
		Month:  int(now.Month()),
		Day:    now.Day(),
		Hour:   now.Hour(),
		Minute: now.Minute(),
		Second: now.Second(),
	})

	renderer := &termRenderer{screen: screen}
	ctl := controller.New(mem, renderer, settings.EventConfig(), uint(settings.RTCDivider))

	keys := make(chan *tcell.EventKey, 16)
	go func() {
		for {
			switch ev := screen.PollEvent().(type) {
			case *tcell.EventKey:
				keys <- ev
			case *tcell.EventResize:
				screen.Sync()
			}
		}
	}()

	tick := time.NewTicker(time.Duration(settings.TickMs) * time.Millisecond)
	defer tick.Stop()

	ticksPerSecond := uint(1000 / settings.TickMs)
	var held [button.NumButtons]int
	var tickCount uint

	for {
		select {
		case ev := <-keys:
			b, ok := keyToButton(ev)
			if ok {
				held[b] = keyHoldTicks
				break
			}
			switch {
			case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC, ev.Rune() == 'q':
				return
			case ev.Rune() == 'F':
				mem.FailRead = !mem.FailRead
				mem.FailWrite = mem.FailRead
			}

		case <-tick.C:
			var snap button.Snapshot
			for b := button.Button(0); b < button.NumButtons; b++ {
				if held[b] > 0 {
					snap = snap.With(b)
					held[b]--
				}
			}

			tickCount++
			if ticksPerSecond > 0 && tickCount%ticksPerSecond == 0 {
				mem.Tick()
			}

			ctl.TickSnapshot(snap)
		}
	}
}

func keyToButton(ev *tcell.EventKey) (button.Button, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return button.Up, true
	case tcell.KeyDown:
		return button.Down, true
	case tcell.KeyLeft:
		return button.Left, true
	case tcell.KeyRight:
		return button.Right, true
	case tcell.KeyEnter:
		return button.Start, true
	}
	switch ev.Rune() {
	case 'a':
		return button.A, true
	case 'b':
		return button.B, true
	}
	return 0, false
}

// termRenderer draws frames as plain terminal rows, one per display slot.
type termRenderer struct {
	screen tcell.Screen
}

func (r *termRenderer) Show(fr render.Frame) {
	s := r.screen
	s.Clear()

	badges := ""
	for b := render.Badge(0); b < 7; b++ {
		if fr.Badges.Has(b) {
			if badges != "" {
				badges += " "
			}
			badges += b.String()
		}
	}

	drawText(s, 2, 1, tcell.StyleDefault.Dim(true), badges)
	if fr.ClockErr {
		drawText(s, 30, 1, tcell.StyleDefault.Foreground(tcell.ColorRed), "!RTC")
	}
	drawText(s, 2, 3, tcell.StyleDefault, displayable(fr.MsgTop))
	drawText(s, 2, 5, tcell.StyleDefault.Bold(true), fr.Digits)
	drawText(s, 2, 7, tcell.StyleDefault, displayable(fr.MsgBottom))
	drawText(s, 2, 9, tcell.StyleDefault.Dim(true),
		"arrows=d-pad  a=A  b=B  Enter=START  F=fail bus  q=quit")

	s.Show()
}

// displayable swaps the sprite-sheet arrow byte for a real glyph.
func displayable(msg string) string {
	return strings.ReplaceAll(msg, "\x7f", "↕")
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range text {
		s.SetContent(x+i, y, r, nil, style)
	}
}
