package render

import (
	"fmt"

	"github.com/clockpad/tinygo-clockpad/pkg/rtc"
	"github.com/clockpad/tinygo-clockpad/pkg/statemachine"
)

// The set-mode help rows use a special up/down arrows sprite that is mapped
// in the sprite sheet to ASCII DEL (0x7f).
const (
	setHelp    = "\x7f:+/-  B:Save  A:OK"
	setHelpSec = "\x7f:=00  B:Save  A:OK"
)

// Compose builds the display frame for one mode. In the clock group fields
// holds the latest clock reading; in the set group it holds the edit buffer.
// clockErr lights the bus-trouble indicator.
func Compose(mode statemachine.Mode, fields rtc.Fields, cal int8, clockErr bool) Frame {
	fr := Frame{ClockErr: clockErr}

	switch mode {
	case statemachine.ClockHHMM:
		// Simple clock like, "12:00"
		fr.Digits = fmt.Sprintf("  %02d:%02d", fields.Hour, fields.Minute)
		fr.Badges = fr.Badges.With(BadgeHHMM)

	case statemachine.ClockMMSS:
		// Full date and time like, "2024-09-12 12:00:01"
		fr.MsgTop = fmt.Sprintf("%04d-%02d-%02d", fields.Year, fields.Month, fields.Day)
		fr.Digits = fmt.Sprintf("%02d:%02d:%02d", fields.Hour, fields.Minute, fields.Second)
		fr.Badges = fr.Badges.With(BadgeMMSS)

	case statemachine.SetYear:
		fr.Digits = fmt.Sprintf("   %04d", fields.Year)
		fr.MsgTop = "   SET       YEAR"
		fr.MsgBottom = setHelp
		fr.Badges = fr.Badges.With(BadgeSet).With(BadgeYear)

	case statemachine.SetMonthDay:
		fr.Digits = fmt.Sprintf("  %02d-%02d", fields.Month, fields.Day)
		fr.MsgTop = "   SET  MONTH-DAY"
		fr.MsgBottom = setHelp
		fr.Badges = fr.Badges.With(BadgeSet).With(BadgeMon).With(BadgeDay)

	case statemachine.SetHour:
		fr.Digits = fmt.Sprintf("%02d:%02d:%02d", fields.Hour, fields.Minute, fields.Second)
		fr.MsgTop = "   SET      HOURS"
		fr.MsgBottom = setHelp
		fr.Badges = fr.Badges.With(BadgeSet).With(BadgeHHMM)

	case statemachine.SetHourMin:
		fr.Digits = fmt.Sprintf("%02d:%02d:%02d", fields.Hour, fields.Minute, fields.Second)
		fr.MsgTop = "   SET    MINUTES"
		fr.MsgBottom = setHelp
		fr.Badges = fr.Badges.With(BadgeSet).With(BadgeHHMM)

	case statemachine.SetSecond:
		fr.Digits = fmt.Sprintf("%02d:%02d:%02d", fields.Hour, fields.Minute, fields.Second)
		fr.MsgTop = "   SET    SECONDS"
		fr.MsgBottom = setHelpSec
		fr.Badges = fr.Badges.With(BadgeSet).With(BadgeMMSS)

	case statemachine.SetCalibration:
		fr.Digits = fmt.Sprintf("   %+04d", cal)
		fr.MsgTop = "   SET   CAL TRIM"
		fr.MsgBottom = setHelp
		fr.Badges = fr.Badges.With(BadgeSet).With(BadgeCal)
	}

	return fr
}
