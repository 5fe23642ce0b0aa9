// Package uptime provides the real elapsed-time source: a free-running
// count of whole seconds since process start, derived from a 32-bit
// microsecond ticker view over the monotonic clock.
//
// The 32-bit ticker wraps roughly every 71.6 minutes; deltas between
// successive readings are accumulated wraparound-safe into a 64-bit
// total. An implausibly large delta (more than one full wrap between
// reads) is a detectable anomaly: it is logged and counted but still
// folded into the total, never corrected.
package uptime

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/quartzless/softrtc/internal/domain"
)

// anomalyThresholdUs is the delta, in microseconds, above which a
// reading is considered implausible for a 32-bit ticker.
const anomalyThresholdUs = 4_294_000_000

var anomaliesTotal metric.Int64Counter

func init() {
	m := otel.Meter("uptime")
	anomaliesTotal, _ = m.Int64Counter("uptime_anomalies_total",
		metric.WithDescription("Implausible elapsed-counter deltas detected"))
}

// MonotonicSource implements domain.ElapsedSource over the host's
// monotonic clock. The accumulation state that the reference platform
// kept in static locals is explicit owned state here.
type MonotonicSource struct {
	mu        sync.Mutex
	logger    *slog.Logger
	tickUs    func() uint32
	lastUs    uint32
	totalUs   uint64
	anomalies int64
}

// New creates a source ticking from process start.
func New(logger *slog.Logger) *MonotonicSource {
	start := time.Now()
	return NewWithTicker(logger, func() uint32 {
		return uint32(time.Since(start).Microseconds())
	})
}

// NewWithTicker creates a source over an arbitrary 32-bit microsecond
// ticker. Used by tests to drive wraparound and anomaly paths
// deterministically.
func NewWithTicker(logger *slog.Logger, tickUs func() uint32) *MonotonicSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &MonotonicSource{logger: logger, tickUs: tickUs}
}

// ElapsedSeconds returns whole seconds since start. Readings never
// decrease.
func (s *MonotonicSource) ElapsedSeconds() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	currentUs := s.tickUs()
	deltaUs := currentUs - s.lastUs // uint32 arithmetic absorbs wraparound
	s.lastUs = currentUs

	if deltaUs > anomalyThresholdUs {
		s.anomalies++
		anomaliesTotal.Add(context.Background(), 1)
		s.logger.Warn("implausible elapsed-counter delta",
			slog.Uint64("delta_us", uint64(deltaUs)),
			slog.Uint64("current_us", uint64(currentUs)),
		)
	}

	s.totalUs += uint64(deltaUs)
	return int64(s.totalUs / 1_000_000)
}

// Anomalies returns how many implausible deltas have been observed
// since start.
func (s *MonotonicSource) Anomalies() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.anomalies
}

// Ensure MonotonicSource implements domain.ElapsedSource at compile time.
var _ domain.ElapsedSource = (*MonotonicSource)(nil)
