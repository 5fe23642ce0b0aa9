package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/quartzless/softrtc/internal/domain"
)

// EventKind classifies a clock event.
type EventKind string

const (
	EventTick          EventKind = "tick"
	EventMinuteChanged EventKind = "minute_changed"
	EventHourChanged   EventKind = "hour_changed"
	EventDayChanged    EventKind = "day_changed"
)

// Event is one observation of the clock from the watch loop.
type Event struct {
	Kind    EventKind
	Instant domain.Instant
	Elapsed int64
}

// Subscription receives clock events until closed. A subscriber that
// stops draining its channel is kicked rather than allowed to stall
// the watch loop.
type Subscription struct {
	c      chan Event
	once   sync.Once
	kicked bool
	mu     sync.Mutex
}

// Events returns the subscription's event channel. It is closed when
// the subscription ends.
func (sub *Subscription) Events() <-chan Event { return sub.c }

// Kicked reports whether the subscription was terminated for falling
// behind.
func (sub *Subscription) Kicked() bool {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	return sub.kicked
}

func (sub *Subscription) close(kicked bool) {
	sub.once.Do(func() {
		sub.mu.Lock()
		sub.kicked = kicked
		sub.mu.Unlock()
		close(sub.c)
	})
}

// watchState holds change-detection and fan-out state, guarded by its
// own lock so event plumbing never contends with clock arithmetic.
type watchState struct {
	mu        sync.Mutex
	prev      *domain.Instant
	minuteFns []func(domain.Instant)
	hourFns   []func(domain.Instant)
	dayFns    []func(domain.Instant)
	subs      map[*Subscription]struct{}
}

func (w *watchState) init() {
	w.subs = make(map[*Subscription]struct{})
}

// OnMinuteChanged registers a handler fired when a polled instant's
// minute differs from the previous poll. Handlers run synchronously on
// the watch loop.
func (s *ClockService) OnMinuteChanged(fn func(domain.Instant)) {
	s.watch.mu.Lock()
	defer s.watch.mu.Unlock()
	s.watch.minuteFns = append(s.watch.minuteFns, fn)
}

// OnHourChanged registers a handler fired when the hour changes.
func (s *ClockService) OnHourChanged(fn func(domain.Instant)) {
	s.watch.mu.Lock()
	defer s.watch.mu.Unlock()
	s.watch.hourFns = append(s.watch.hourFns, fn)
}

// OnDayChanged registers a handler fired when the day changes.
func (s *ClockService) OnDayChanged(fn func(domain.Instant)) {
	s.watch.mu.Lock()
	defer s.watch.mu.Unlock()
	s.watch.dayFns = append(s.watch.dayFns, fn)
}

// Subscribe attaches an event-stream subscriber. The caller must drain
// Events() and call Unsubscribe when done.
func (s *ClockService) Subscribe() *Subscription {
	sub := &Subscription{c: make(chan Event, domain.OutboundBufferSize)}
	s.watch.mu.Lock()
	defer s.watch.mu.Unlock()
	s.watch.subs[sub] = struct{}{}
	return sub
}

// Unsubscribe detaches a subscriber and closes its channel.
func (s *ClockService) Unsubscribe(sub *Subscription) {
	s.watch.mu.Lock()
	delete(s.watch.subs, sub)
	s.watch.mu.Unlock()
	sub.close(false)
}

// Run drives the watch loop until the context is cancelled. It polls
// the clock at the given interval, emits a tick per poll, and fires
// change events when the resolved minute, hour, or day differs from
// the previous poll.
func (s *ClockService) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = domain.DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.closeSubscribers()
			return nil
		case <-ticker.C:
			s.poll(ctx)
		}
	}
}

// Poll performs one observation outside the loop. Exposed so tests and
// callers without a running loop can drive change detection
// deterministically.
func (s *ClockService) Poll(ctx context.Context) {
	s.poll(ctx)
}

func (s *ClockService) poll(ctx context.Context) {
	elapsed := s.source.ElapsedSeconds()
	cur, err := s.engine.Resolve(elapsed)
	if err != nil {
		s.logger.Error("watch poll failed", slog.String("error", err.Error()))
		return
	}

	s.watch.mu.Lock()
	prev := s.watch.prev
	s.watch.prev = &cur

	var fire []func(domain.Instant)
	events := []Event{{Kind: EventTick, Instant: cur, Elapsed: elapsed}}

	if prev != nil {
		dayChanged := cur.Day != prev.Day || cur.Month != prev.Month || cur.Year != prev.Year
		hourChanged := cur.Hour != prev.Hour || dayChanged
		minuteChanged := cur.Minute != prev.Minute || hourChanged

		if minuteChanged {
			fire = append(fire, s.watch.minuteFns...)
			events = append(events, Event{Kind: EventMinuteChanged, Instant: cur, Elapsed: elapsed})
		}
		if hourChanged {
			fire = append(fire, s.watch.hourFns...)
			events = append(events, Event{Kind: EventHourChanged, Instant: cur, Elapsed: elapsed})
		}
		if dayChanged {
			fire = append(fire, s.watch.dayFns...)
			events = append(events, Event{Kind: EventDayChanged, Instant: cur, Elapsed: elapsed})
		}
	}

	for _, ev := range events {
		for sub := range s.watch.subs {
			select {
			case sub.c <- ev:
			default:
				delete(s.watch.subs, sub)
				sub.close(true)
			}
		}
	}
	s.watch.mu.Unlock()

	if n := len(events) - 1; n > 0 {
		changeEventsTotal.Add(ctx, int64(n))
	}
	for _, fn := range fire {
		fn(cur)
	}
}

func (s *ClockService) closeSubscribers() {
	s.watch.mu.Lock()
	defer s.watch.mu.Unlock()
	for sub := range s.watch.subs {
		delete(s.watch.subs, sub)
		sub.close(false)
	}
}
