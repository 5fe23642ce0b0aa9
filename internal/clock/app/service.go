// Package app implements the clock use-case layer: synchronization
// operations, formatted and numeric queries, and change-event
// distribution over the domain engine.
package app

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/quartzless/softrtc/internal/domain"
)

var tracer = otel.Tracer("clock/app")

var (
	syncsTotal        metric.Int64Counter
	queriesTotal      metric.Int64Counter
	changeEventsTotal metric.Int64Counter
)

func init() {
	m := otel.Meter("clock/app")

	syncsTotal, _ = m.Int64Counter("clock_syncs_total",
		metric.WithDescription("Total clock synchronization operations"))
	queriesTotal, _ = m.Int64Counter("clock_queries_total",
		metric.WithDescription("Total clock queries"))
	changeEventsTotal, _ = m.Int64Counter("clock_change_events_total",
		metric.WithDescription("Total minute/hour/day change events fired"))
}

// NumericReading is the eight-field snapshot handed to numeric
// consumers, in the order the control surface documents it.
type NumericReading struct {
	Hour      int
	Minute    int
	Second    int
	Weekday   domain.Weekday
	Day       int
	Month     int
	Year      int
	DayOfYear int
}

// Status reports the daemon's identity and raw clock state.
type Status struct {
	BootID         string
	ElapsedSeconds int64
	Setpoint       domain.Setpoint
	Anomalies      int64
}

// anomalyCounter is implemented by elapsed sources that track
// implausible counter deltas. The fake source does not.
type anomalyCounter interface {
	Anomalies() int64
}

// ClockService owns the engine and its tick source. It is the only
// mutator of clock state above the domain layer.
type ClockService struct {
	engine *domain.Engine
	source domain.ElapsedSource
	logger *slog.Logger
	bootID string

	watch watchState
}

// NewClockService creates the service. A fresh UUID identifies this
// power-on; it changes on every restart because nothing persists.
func NewClockService(engine *domain.Engine, source domain.ElapsedSource, logger *slog.Logger) *ClockService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &ClockService{
		engine: engine,
		source: source,
		logger: logger,
		bootID: uuid.NewString(),
	}
	s.watch.init()
	return s
}

// BootID returns the identifier of this power-on.
func (s *ClockService) BootID() string { return s.bootID }

// Set24HourTime synchronizes the time of day from a 24-hour reading.
func (s *ClockService) Set24HourTime(ctx context.Context, hour, minute, second int) error {
	ctx, span := tracer.Start(ctx, "clock.set_24h_time")
	defer span.End()

	if err := s.engine.Set24HourTime(s.source.ElapsedSeconds(), hour, minute, second); err != nil {
		return err
	}
	syncsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("op", "set_24h_time")))
	s.logger.Info("clock time set",
		slog.Int("hour", hour), slog.Int("minute", minute), slog.Int("second", second))
	return nil
}

// SetTime synchronizes the time of day from a 12-hour reading.
func (s *ClockService) SetTime(ctx context.Context, hour, minute, second int, m domain.Meridian) error {
	ctx, span := tracer.Start(ctx, "clock.set_12h_time")
	defer span.End()

	if err := s.engine.Set12HourTime(s.source.ElapsedSeconds(), hour, minute, second, m); err != nil {
		return err
	}
	syncsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("op", "set_12h_time")))
	s.logger.Info("clock time set",
		slog.Int("hour", hour), slog.Int("minute", minute), slog.Int("second", second),
		slog.String("meridian", string(m)))
	return nil
}

// SetDate synchronizes the calendar date.
func (s *ClockService) SetDate(ctx context.Context, month, day, year int) error {
	ctx, span := tracer.Start(ctx, "clock.set_date")
	defer span.End()

	if err := s.engine.SetDate(s.source.ElapsedSeconds(), month, day, year); err != nil {
		return err
	}
	syncsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("op", "set_date")))
	s.logger.Info("clock date set",
		slog.Int("month", month), slog.Int("day", day), slog.Int("year", year))
	return nil
}

// AdvanceBy shifts the clock by a signed offset.
func (s *ClockService) AdvanceBy(ctx context.Context, amount int64, unit domain.TimeUnit) error {
	ctx, span := tracer.Start(ctx, "clock.advance_by")
	defer span.End()

	if err := s.engine.Advance(amount, unit); err != nil {
		return err
	}
	syncsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("op", "advance_by")))
	s.logger.Info("clock advanced",
		slog.Int64("amount", amount), slog.String("unit", string(unit)))
	return nil
}

// Instant resolves the current calendar instant.
func (s *ClockService) Instant(ctx context.Context) (domain.Instant, error) {
	queriesTotal.Add(ctx, 1)
	return s.resolve()
}

// Time renders the current time of day in the requested format.
func (s *ClockService) Time(ctx context.Context, f domain.TimeFormat) (string, error) {
	i, err := s.Instant(ctx)
	if err != nil {
		return "", err
	}
	return domain.FormatTime(i, f)
}

// Date renders the current date in the requested format.
func (s *ClockService) Date(ctx context.Context, f domain.DateFormat) (string, error) {
	i, err := s.Instant(ctx)
	if err != nil {
		return "", err
	}
	return domain.FormatDate(i, f)
}

// DateTime renders the combined date-time stamp.
func (s *ClockService) DateTime(ctx context.Context) (string, error) {
	i, err := s.Instant(ctx)
	if err != nil {
		return "", err
	}
	return domain.FormatDateTime(i), nil
}

// NumericTime resolves the current instant and invokes the consumer
// synchronously with its numeric fields.
func (s *ClockService) NumericTime(ctx context.Context, fn func(NumericReading)) error {
	i, err := s.Instant(ctx)
	if err != nil {
		return err
	}
	fn(NumericReading{
		Hour:      i.Hour,
		Minute:    i.Minute,
		Second:    i.Second,
		Weekday:   i.Weekday,
		Day:       i.Day,
		Month:     i.Month,
		Year:      i.Year,
		DayOfYear: i.DayOfYear,
	})
	return nil
}

// Status reports boot identity and raw clock state.
func (s *ClockService) Status(ctx context.Context) Status {
	queriesTotal.Add(ctx, 1)
	st := Status{
		BootID:         s.bootID,
		ElapsedSeconds: s.source.ElapsedSeconds(),
		Setpoint:       s.engine.Setpoint(),
	}
	if ac, ok := s.source.(anomalyCounter); ok {
		st.Anomalies = ac.Anomalies()
	}
	return st
}

// resolve reads the counter once and resolves it, logging internal
// invariant violations loudly. It never returns a partial instant.
func (s *ClockService) resolve() (domain.Instant, error) {
	elapsed := s.source.ElapsedSeconds()
	i, err := s.engine.Resolve(elapsed)
	if err != nil {
		if domain.IsInternal(err) {
			s.logger.Error("clock state resolved outside the calendar",
				slog.Int64("elapsed", elapsed), slog.String("error", err.Error()))
		}
		return domain.Instant{}, err
	}
	return i, nil
}
