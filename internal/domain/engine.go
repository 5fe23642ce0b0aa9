package domain

import "sync"

// Setpoint is the persisted clock state: three values that together
// define one linear mapping from the elapsed counter to a calendar
// instant. They are only ever read or replaced as a unit.
type Setpoint struct {
	// ReferenceYear anchors the start-of-year epoch currently in use.
	ReferenceYear int
	// SecondsIntoYear is the seconds elapsed since Jan 1 00:00:00 of
	// ReferenceYear as of the last synchronization. It may transiently
	// exceed a year's length (or go negative) after a large advance;
	// the resolver rolls it across year boundaries.
	SecondsIntoYear int64
	// ElapsedAtSetpoint is the elapsed counter's reading at the moment
	// of last synchronization.
	ElapsedAtSetpoint int64
}

// Engine owns the clock state and all calendar resolution over it.
// The invariant it maintains: for any counter reading e,
//
//	Resolve(e) == roll(ReferenceYear, SecondsIntoYear + (e - ElapsedAtSetpoint))
//
// All mutators replace the setpoint triple atomically under one lock, so
// a concurrent reader never observes a partial update.
type Engine struct {
	mu sync.Mutex
	sp Setpoint
}

// NewEngine creates an engine anchored at Jan 1 00:00:00 of startYear
// with the elapsed counter at zero. Years before the epoch floor fall
// back to the default start year.
func NewEngine(startYear int) *Engine {
	if startYear < EpochYearFloor {
		startYear = DefaultStartYear
	}
	return &Engine{sp: Setpoint{ReferenceYear: startYear}}
}

// Setpoint returns a copy of the current clock state triple.
func (e *Engine) Setpoint() Setpoint {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sp
}

// Resolve computes the calendar instant for the given elapsed counter
// reading. ErrDayOfYearRange signals a broken internal invariant and is
// never expected from well-formed state.
func (e *Engine) Resolve(elapsed int64) (Instant, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.resolveLocked(elapsed)
}

func (e *Engine) resolveLocked(elapsed int64) (Instant, error) {
	secs := e.sp.SecondsIntoYear + (elapsed - e.sp.ElapsedAtSetpoint)
	y := e.sp.ReferenceYear

	// Roll whole years by repeated subtraction. Backward first: a large
	// negative advance may have pushed the virtual clock before Jan 1 of
	// the reference year.
	for secs < 0 {
		y--
		secs += SecondsInYear(y)
	}
	for secs >= SecondsInYear(y) {
		secs -= SecondsInYear(y)
		y++
	}

	doy := secs/SecondsPerDay + 1
	rem := secs % SecondsPerDay

	month, day, err := DayOfYearToMonthDay(doy, y)
	if err != nil {
		return Instant{}, err
	}

	return Instant{
		Year:      y,
		Month:     month,
		Day:       day,
		Hour:      int(rem / SecondsPerHour),
		Minute:    int(rem % SecondsPerHour / SecondsPerMinute),
		Second:    int(rem % SecondsPerMinute),
		DayOfYear: int(doy),
		Weekday:   DayOfWeek(month, day, y),
	}, nil
}

// Set24HourTime synchronizes the time of day, keeping the current date.
func (e *Engine) Set24HourTime(elapsed int64, hour, minute, second int) error {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return ErrInvalidTime
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	cur, err := e.resolveLocked(elapsed)
	if err != nil {
		return err
	}

	// The resolved year may have rolled past the reference year; the
	// new setpoint must anchor to the year the date actually lives in.
	e.sp = Setpoint{
		ReferenceYear:     cur.Year,
		SecondsIntoYear:   SecondsSoFarInYear(cur.Month, cur.Day, cur.Year, hour, minute, second),
		ElapsedAtSetpoint: elapsed,
	}
	return nil
}

// Set12HourTime normalizes a 12-hour clock reading to 24-hour form and
// delegates to Set24HourTime. 12 AM maps to hour 0; PM hours other than
// 12 gain 12.
func (e *Engine) Set12HourTime(elapsed int64, hour, minute, second int, m Meridian) error {
	if hour < 1 || hour > 12 {
		return ErrInvalidTime
	}
	switch m {
	case AM:
		if hour == 12 {
			hour = 0
		}
	case PM:
		if hour != 12 {
			hour += 12
		}
	default:
		return ErrInvalidTime
	}
	return e.Set24HourTime(elapsed, hour, minute, second)
}

// SetDate synchronizes the calendar date, keeping the current time of day.
func (e *Engine) SetDate(elapsed int64, month, day, year int) error {
	if year < EpochYearFloor || month < 1 || month > 12 {
		return ErrInvalidDate
	}
	if day < 1 || day > DaysInMonth(month, year) {
		return ErrInvalidDate
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	cur, err := e.resolveLocked(elapsed)
	if err != nil {
		return err
	}

	e.sp = Setpoint{
		ReferenceYear:     year,
		SecondsIntoYear:   SecondsSoFarInYear(month, day, year, cur.Hour, cur.Minute, cur.Second),
		ElapsedAtSetpoint: elapsed,
	}
	return nil
}

// Advance shifts the virtual clock by a signed offset. Subtracting from
// the setpoint's elapsed anchor is equivalent to adding to the clock;
// the resolver handles any year boundaries the shift crosses.
func (e *Engine) Advance(amount int64, unit TimeUnit) error {
	secs, err := unit.Seconds(amount)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	sp := e.sp
	sp.ElapsedAtSetpoint -= secs
	e.sp = sp
	return nil
}
