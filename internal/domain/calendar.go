// Package domain contains the pure clock and calendar logic.
// No external dependencies allowed - this is the innermost ring of the
// architecture. Everything here is whole-second integer arithmetic; the
// platform this models has no floating point worth trusting.
package domain

// cumulativeDays[m] is the number of completed days before month m in a
// non-leap year. Index 0 is an unused sentinel so months index 1-based.
var cumulativeDays = [13]int64{0, 0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}

// monthDays[m] is the length of month m in a non-leap year.
var monthDays = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// IsLeapYear reports whether y is a Gregorian leap year.
func IsLeapYear(y int) bool {
	return y%400 == 0 || (y%100 != 0 && y%4 == 0)
}

// DaysInYear returns the number of days in year y.
func DaysInYear(y int) int64 {
	if IsLeapYear(y) {
		return DaysPerLeapYear
	}
	return DaysPerYear
}

// SecondsInYear returns the length of year y in seconds.
func SecondsInYear(y int) int64 {
	return DaysInYear(y) * SecondsPerDay
}

// DaysInMonth returns the length of month m in year y.
func DaysInMonth(m, y int) int {
	if m == 2 && IsLeapYear(y) {
		return 29
	}
	return monthDays[m]
}

// DateToDayOfYear converts a calendar date to its 1-based ordinal day
// within year y. The caller must supply a valid (m, d, y); no validation
// is performed, and out-of-range input yields a meaningless but
// non-panicking result.
func DateToDayOfYear(m, d, y int) int64 {
	doy := cumulativeDays[m] + int64(d)
	if m > 2 && IsLeapYear(y) {
		doy++
	}
	return doy
}

// DayOfYearToMonthDay is the inverse of DateToDayOfYear. It returns
// ErrDayOfYearRange if doy falls outside year y; that only happens when
// an internal invariant is broken, never from well-formed engine state.
func DayOfYearToMonthDay(doy int64, y int) (month, day int, err error) {
	if IsLeapYear(y) {
		switch {
		case doy == 60:
			return 2, 29, nil
		case doy > 60:
			// Compensate for Feb 29 so the non-leap table applies.
			doy--
		}
	}
	if doy < 1 || doy > DaysPerYear {
		return 0, 0, ErrDayOfYearRange
	}
	for m := 12; m >= 1; m-- {
		if doy > cumulativeDays[m] {
			return m, int(doy - cumulativeDays[m]), nil
		}
	}
	return 0, 0, ErrDayOfYearRange
}

// SecondsSoFarInYear returns the number of seconds from Jan 1 00:00:00
// of year y through the given instant. Inputs are not validated.
func SecondsSoFarInYear(m, d, y, hh, mm, ss int) int64 {
	return (DateToDayOfYear(m, d, y)-1)*SecondsPerDay +
		int64(hh)*SecondsPerHour + int64(mm)*SecondsPerMinute + int64(ss)
}

// DayOfWeek computes the weekday of a calendar date using Zeller's
// congruence. The raw congruence yields 0=Saturday; the result is
// normalized to Weekday's 0=Sunday ordering.
func DayOfWeek(m, d, y int) Weekday {
	// Zeller treats January and February as months 13 and 14 of the
	// previous year.
	if m < 3 {
		m += 12
		y--
	}
	k := y % 100
	j := y / 100
	h := (d + 13*(m+1)/5 + k + k/4 + j/4 + 5*j) % 7
	return Weekday((h + 6) % 7)
}
