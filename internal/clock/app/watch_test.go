package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quartzless/softrtc/internal/clock/app"
	"github.com/quartzless/softrtc/internal/domain"
)

// drain collects everything currently buffered on the subscription.
func drain(sub *app.Subscription) []app.Event {
	var events []app.Event
	for {
		select {
		case ev, ok := <-sub.Events():
			if !ok {
				return events
			}
			events = append(events, ev)
		default:
			return events
		}
	}
}

func kinds(events []app.Event) []app.EventKind {
	out := make([]app.EventKind, 0, len(events))
	for _, ev := range events {
		out = append(out, ev.Kind)
	}
	return out
}

func TestWatchChangeDetection(t *testing.T) {
	ctx := context.Background()

	t.Run("first poll emits only a tick", func(t *testing.T) {
		h := newHarness(t)
		sub := h.svc.Subscribe()
		defer h.svc.Unsubscribe(sub)

		h.svc.Poll(ctx)

		assert.Equal(t, []app.EventKind{app.EventTick}, kinds(drain(sub)))
	})

	t.Run("advancing within a minute emits ticks only", func(t *testing.T) {
		h := newHarness(t)
		sub := h.svc.Subscribe()
		defer h.svc.Unsubscribe(sub)

		h.svc.Poll(ctx)
		h.elapsed.AdvanceSeconds(5)
		h.svc.Poll(ctx)

		assert.Equal(t, []app.EventKind{app.EventTick, app.EventTick}, kinds(drain(sub)))
	})

	t.Run("minute rollover fires the minute event and handler", func(t *testing.T) {
		h := newHarness(t)
		sub := h.svc.Subscribe()
		defer h.svc.Unsubscribe(sub)

		var handled []domain.Instant
		h.svc.OnMinuteChanged(func(i domain.Instant) { handled = append(handled, i) })

		h.svc.Poll(ctx)
		h.elapsed.Advance(time.Minute)
		h.svc.Poll(ctx)

		assert.Equal(t,
			[]app.EventKind{app.EventTick, app.EventTick, app.EventMinuteChanged},
			kinds(drain(sub)))
		require.Len(t, handled, 1)
		assert.Equal(t, 1, handled[0].Minute)
	})

	t.Run("day rollover cascades to hour and minute", func(t *testing.T) {
		h := newHarness(t)
		h.syncTo(t, 6, 15, 2024, 23, 59, 30)
		sub := h.svc.Subscribe()
		defer h.svc.Unsubscribe(sub)

		var days, hours, minutes int
		h.svc.OnDayChanged(func(domain.Instant) { days++ })
		h.svc.OnHourChanged(func(domain.Instant) { hours++ })
		h.svc.OnMinuteChanged(func(domain.Instant) { minutes++ })

		h.svc.Poll(ctx)
		h.elapsed.Advance(time.Minute)
		h.svc.Poll(ctx)

		assert.Equal(t,
			[]app.EventKind{
				app.EventTick,
				app.EventTick, app.EventMinuteChanged, app.EventHourChanged, app.EventDayChanged,
			},
			kinds(drain(sub)))
		assert.Equal(t, 1, days)
		assert.Equal(t, 1, hours)
		assert.Equal(t, 1, minutes)
	})

	t.Run("tick events carry the resolved instant", func(t *testing.T) {
		h := newHarness(t)
		h.syncTo(t, 6, 15, 2024, 10, 30, 0)
		sub := h.svc.Subscribe()
		defer h.svc.Unsubscribe(sub)

		h.svc.Poll(ctx)

		events := drain(sub)
		require.Len(t, events, 1)
		assert.Equal(t, "2024-06-15 10:30.00", domain.FormatDateTime(events[0].Instant))
	})
}

func TestWatchSlowSubscriber(t *testing.T) {
	h := newHarness(t)
	sub := h.svc.Subscribe()

	// Never drained: the buffer fills and the subscriber is kicked
	// instead of stalling the poll loop.
	for range domain.OutboundBufferSize + 1 {
		h.svc.Poll(context.Background())
	}

	assert.True(t, sub.Kicked())
	events := drain(sub)
	assert.Len(t, events, domain.OutboundBufferSize)
}

func TestWatchRun(t *testing.T) {
	h := newHarness(t)
	sub := h.svc.Subscribe()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.svc.Run(ctx, time.Millisecond) }()

	// Wait for at least one tick to arrive.
	select {
	case _, ok := <-sub.Events():
		require.True(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("no tick received from the watch loop")
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch loop did not stop on cancellation")
	}

	// Subscription channel is closed once the loop exits.
	for {
		if _, ok := <-sub.Events(); !ok {
			break
		}
	}
}
