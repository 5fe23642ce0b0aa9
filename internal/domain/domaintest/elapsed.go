// Package domaintest provides test doubles for the domain package.
package domaintest

import (
	"sync"
	"time"

	"github.com/quartzless/softrtc/internal/domain"
)

// FakeElapsed is a deterministic, advanceable elapsed-time source for
// tests. Use Advance/Set to control time progression instead of
// creating new source instances.
type FakeElapsed struct {
	mu      sync.Mutex
	seconds int64
}

// NewFakeElapsed creates a FakeElapsed at the given reading.
func NewFakeElapsed(seconds int64) *FakeElapsed {
	return &FakeElapsed{seconds: seconds}
}

// ElapsedSeconds returns the fake counter's current reading.
func (f *FakeElapsed) ElapsedSeconds() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seconds
}

// Advance moves the fake counter forward by the given duration,
// truncated to whole seconds.
func (f *FakeElapsed) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seconds += int64(d / time.Second)
}

// AdvanceSeconds moves the fake counter forward by whole seconds.
func (f *FakeElapsed) AdvanceSeconds(s int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seconds += s
}

// Set changes the fake counter to a specific reading.
func (f *FakeElapsed) Set(seconds int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seconds = seconds
}

// Ensure FakeElapsed implements domain.ElapsedSource at compile time.
var _ domain.ElapsedSource = (*FakeElapsed)(nil)
