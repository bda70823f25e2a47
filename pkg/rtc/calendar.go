package rtc

// monthDays holds the day count per month in a non-leap year, 1-indexed.
var monthDays = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// IsLeapYear reports whether year is a Gregorian leap year.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in the given month of the given
// year. Out-of-range months return 0.
func DaysInMonth(year, month int) int {
	if month < 1 || month > 12 {
		return 0
	}
	if month == 2 && IsLeapYear(year) {
		return 29
	}
	return monthDays[month]
}

// ClampDay forces day into the valid range for the given month and year.
// Every mutation that can change the month or year runs its day through
// here, so an impossible date never reaches the clock.
func ClampDay(year, month, day int) int {
	if day < 1 {
		return 1
	}
	if max := DaysInMonth(year, month); day > max {
		return max
	}
	return day
}

// Valid reports whether f is a real calendar date and time of day within the
// representable year range.
func (f Fields) Valid() bool {
	if f.Year < YearMin || f.Year > YearMax {
		return false
	}
	if f.Month < 1 || f.Month > 12 {
		return false
	}
	if f.Day < 1 || f.Day > DaysInMonth(f.Year, f.Month) {
		return false
	}
	if f.Hour < 0 || f.Hour > 23 {
		return false
	}
	if f.Minute < 0 || f.Minute > 59 {
		return false
	}
	if f.Second < 0 || f.Second > 59 {
		return false
	}
	return true
}
