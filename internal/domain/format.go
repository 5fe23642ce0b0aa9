package domain

import "fmt"

// TimeFormat selects a time rendering.
type TimeFormat string

const (
	// TimeFormat24Hour renders HH:MM.SS, zero-padded.
	TimeFormat24Hour TimeFormat = "24h"
	// TimeFormatAMPM renders H:MM.SSam or H:MM.SSpm, hour not padded.
	TimeFormatAMPM TimeFormat = "ampm"
)

// DateFormat selects a date rendering.
type DateFormat string

const (
	// DateFormatMonthDay renders M/D with no padding.
	DateFormatMonthDay DateFormat = "md"
	// DateFormatMonthDayYear renders M/D/YYYY.
	DateFormatMonthDayYear DateFormat = "mdy"
	// DateFormatISO renders YYYY-MM-DD, zero-padded.
	DateFormatISO DateFormat = "iso"
)

// FormatTime renders the time of day of an instant. Every selector value
// is matched explicitly; an unknown selector is an error, never an
// undefined result.
func FormatTime(i Instant, f TimeFormat) (string, error) {
	switch f {
	case TimeFormat24Hour:
		return fmt.Sprintf("%02d:%02d.%02d", i.Hour, i.Minute, i.Second), nil
	case TimeFormatAMPM:
		suffix := "am"
		if i.Hour >= 12 {
			suffix = "pm"
		}
		hour := i.Hour
		switch {
		case hour == 0:
			hour = 12
		case hour > 12:
			hour -= 12
		}
		return fmt.Sprintf("%d:%02d.%02d%s", hour, i.Minute, i.Second, suffix), nil
	default:
		return "", fmt.Errorf("time format %q: %w", f, ErrInvalidFormat)
	}
}

// FormatDate renders the date of an instant.
func FormatDate(i Instant, f DateFormat) (string, error) {
	switch f {
	case DateFormatMonthDay:
		return fmt.Sprintf("%d/%d", i.Month, i.Day), nil
	case DateFormatMonthDayYear:
		return fmt.Sprintf("%d/%d/%04d", i.Month, i.Day, i.Year), nil
	case DateFormatISO:
		return fmt.Sprintf("%04d-%02d-%02d", i.Year, i.Month, i.Day), nil
	default:
		return "", fmt.Errorf("date format %q: %w", f, ErrInvalidFormat)
	}
}

// FormatDateTime renders the combined YYYY-MM-DD HH:MM.SS stamp.
func FormatDateTime(i Instant) string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d.%02d",
		i.Year, i.Month, i.Day, i.Hour, i.Minute, i.Second)
}
