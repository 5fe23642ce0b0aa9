package domain

// Weekday is a day of the week, 0=Sunday through 6=Saturday.
type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var weekdayNames = [7]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

func (w Weekday) String() string {
	if w < Sunday || w > Saturday {
		return "Unknown"
	}
	return weekdayNames[w]
}

// Instant is a fully resolved calendar date and time. It is produced
// fresh on every query, never mutated after construction, and owned
// solely by the caller that requested it.
type Instant struct {
	Year      int
	Month     int // 1..12
	Day       int // 1..31
	Hour      int // 0..23
	Minute    int // 0..59
	Second    int // 0..59
	DayOfYear int // 1..366
	Weekday   Weekday
}

// Meridian distinguishes the halves of a 12-hour clock.
type Meridian string

const (
	AM Meridian = "am"
	PM Meridian = "pm"
)

// TimeUnit is an advance-by offset unit.
type TimeUnit string

const (
	UnitMilliseconds TimeUnit = "ms"
	UnitSeconds      TimeUnit = "s"
	UnitMinutes      TimeUnit = "min"
	UnitHours        TimeUnit = "hr"
	UnitDays         TimeUnit = "day"
)

// Seconds converts amount units to whole seconds. The millisecond unit
// is best-effort: it truncates toward zero, so offsets under a full
// second vanish. That mirrors the reference platform, where the counter
// itself only ticks in whole seconds.
func (u TimeUnit) Seconds(amount int64) (int64, error) {
	switch u {
	case UnitMilliseconds:
		return amount / 1000, nil
	case UnitSeconds:
		return amount, nil
	case UnitMinutes:
		return amount * SecondsPerMinute, nil
	case UnitHours:
		return amount * SecondsPerHour, nil
	case UnitDays:
		return amount * SecondsPerDay, nil
	default:
		return 0, ErrInvalidUnit
	}
}
