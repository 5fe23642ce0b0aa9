package domain

import "time"

// Calendar arithmetic constants. All derived state is whole seconds;
// there is no sub-second resolution anywhere in the engine.
const (
	SecondsPerMinute = 60
	SecondsPerHour   = 60 * SecondsPerMinute
	SecondsPerDay    = 24 * SecondsPerHour

	DaysPerYear     = 365
	DaysPerLeapYear = 366
)

// EpochYearFloor is the earliest reference year the engine accepts.
// The device has no battery-backed clock, so anything a user sets is a
// near-future date; years before this are a configuration mistake.
const EpochYearFloor = 2020

// DefaultStartYear is the reference year a freshly booted, never
// synchronized device reports: Jan 1 00:00:00 of this year.
const DefaultStartYear = 2020

// Poll and stream pacing.
const (
	// DefaultPollInterval is how often the watch loop resolves the clock
	// to detect minute/hour/day transitions. Once per second matches the
	// resolution of the elapsed counter.
	DefaultPollInterval = 1 * time.Second

	// OutboundBufferSize is the per-stream frame buffer; a subscriber
	// that falls this far behind is disconnected rather than blocking
	// the watch loop.
	OutboundBufferSize = 64
)

// Graceful shutdown budgets.
const (
	GracefulShutdownTimeout = 30 * time.Second
	ShutdownDrainDelay      = 2 * time.Second
	ShutdownHTTPTimeout     = 10 * time.Second
	ShutdownOTELTimeout     = 5 * time.Second
)
