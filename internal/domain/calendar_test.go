package domain_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quartzless/softrtc/internal/domain"
)

func TestIsLeapYear(t *testing.T) {
	tests := []struct {
		year int
		want bool
	}{
		{2000, true},  // divisible by 400
		{1900, false}, // century, not divisible by 400
		{2024, true},
		{2023, false},
		{2020, true},
		{2100, false},
		{2400, true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d", tt.year), func(t *testing.T) {
			assert.Equal(t, tt.want, domain.IsLeapYear(tt.year))
		})
	}
}

func TestDateToDayOfYear(t *testing.T) {
	tests := []struct {
		name    string
		m, d, y int
		want    int64
	}{
		{"Jan 1 is day 1", 1, 1, 2023, 1},
		{"Feb 28 non-leap", 2, 28, 2023, 59},
		{"Mar 1 non-leap", 3, 1, 2023, 60},
		{"Feb 29 leap is day 60", 2, 29, 2024, 60},
		{"Mar 1 leap is day 61", 3, 1, 2024, 61},
		{"Dec 31 non-leap", 12, 31, 2023, 365},
		{"Dec 31 leap", 12, 31, 2024, 366},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.DateToDayOfYear(tt.m, tt.d, tt.y))
		})
	}
}

func TestDayOfYearToMonthDay(t *testing.T) {
	t.Run("leap day maps directly", func(t *testing.T) {
		m, d, err := domain.DayOfYearToMonthDay(60, 2024)
		require.NoError(t, err)
		assert.Equal(t, 2, m)
		assert.Equal(t, 29, d)
	})

	t.Run("day after leap day", func(t *testing.T) {
		m, d, err := domain.DayOfYearToMonthDay(61, 2024)
		require.NoError(t, err)
		assert.Equal(t, 3, m)
		assert.Equal(t, 1, d)
	})

	t.Run("last day of leap year", func(t *testing.T) {
		m, d, err := domain.DayOfYearToMonthDay(366, 2024)
		require.NoError(t, err)
		assert.Equal(t, 12, m)
		assert.Equal(t, 31, d)
	})

	t.Run("day 366 of a non-leap year is out of range", func(t *testing.T) {
		_, _, err := domain.DayOfYearToMonthDay(366, 2023)
		assert.ErrorIs(t, err, domain.ErrDayOfYearRange)
	})

	t.Run("day 367 of a leap year is out of range", func(t *testing.T) {
		_, _, err := domain.DayOfYearToMonthDay(367, 2024)
		assert.ErrorIs(t, err, domain.ErrDayOfYearRange)
	})

	t.Run("day 0 is out of range", func(t *testing.T) {
		_, _, err := domain.DayOfYearToMonthDay(0, 2023)
		assert.ErrorIs(t, err, domain.ErrDayOfYearRange)
	})
}

func TestDayOfYearRoundTrip(t *testing.T) {
	// Every valid calendar date must survive the conversion both ways.
	for _, y := range []int{2023, 2024} {
		for m := 1; m <= 12; m++ {
			for d := 1; d <= domain.DaysInMonth(m, y); d++ {
				doy := domain.DateToDayOfYear(m, d, y)
				gotM, gotD, err := domain.DayOfYearToMonthDay(doy, y)
				require.NoError(t, err, "%d-%02d-%02d", y, m, d)
				require.Equal(t, m, gotM, "%d-%02d-%02d", y, m, d)
				require.Equal(t, d, gotD, "%d-%02d-%02d", y, m, d)
			}
		}
	}
}

func TestSecondsSoFarInYear(t *testing.T) {
	tests := []struct {
		name                string
		m, d, y, hh, mm, ss int
		want                int64
	}{
		{"start of year", 1, 1, 2023, 0, 0, 0, 0},
		{"one second in", 1, 1, 2023, 0, 0, 1, 1},
		{"start of second day", 1, 2, 2023, 0, 0, 0, domain.SecondsPerDay},
		{"end of non-leap year", 12, 31, 2023, 23, 59, 59, 365*domain.SecondsPerDay - 1},
		{"end of leap year", 12, 31, 2024, 23, 59, 59, 366*domain.SecondsPerDay - 1},
		{"leap day noon", 2, 29, 2024, 12, 0, 0, 59*domain.SecondsPerDay + 12*domain.SecondsPerHour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.SecondsSoFarInYear(tt.m, tt.d, tt.y, tt.hh, tt.mm, tt.ss))
		})
	}
}

func TestDayOfWeek(t *testing.T) {
	tests := []struct {
		name    string
		m, d, y int
		want    domain.Weekday
	}{
		{"2000-01-01", 1, 1, 2000, domain.Saturday},
		{"2020-01-01", 1, 1, 2020, domain.Wednesday},
		{"2024-01-01", 1, 1, 2024, domain.Monday},
		{"2024-02-29", 2, 29, 2024, domain.Thursday},
		{"2024-06-15", 6, 15, 2024, domain.Saturday},
		{"2026-08-30", 8, 30, 2026, domain.Sunday},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.DayOfWeek(tt.m, tt.d, tt.y))
		})
	}
}

func TestWeekdayString(t *testing.T) {
	assert.Equal(t, "Sunday", domain.Sunday.String())
	assert.Equal(t, "Saturday", domain.Saturday.String())
	assert.Equal(t, "Unknown", domain.Weekday(7).String())
}
