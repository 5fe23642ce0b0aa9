package domain

// ElapsedSource supplies a monotonically increasing count of whole
// seconds since device start. It is the engine's only tick input; the
// domain defines the interface and adapters provide implementations,
// real (monotonic counter) or deterministic (testing).
type ElapsedSource interface {
	// ElapsedSeconds returns whole seconds since start. Readings never
	// decrease. The underlying counter may wrap at a very large bound;
	// that anomaly is detected and reported by the implementation but
	// not corrected.
	ElapsedSeconds() int64
}
