package ports

import "time"

// Clock abstracts time so fps measurement is deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// FrameSource delivers tick requests, the equivalent of an animation-frame
// callback. Each value received on C asks for one tick.
type FrameSource interface {
	// C returns the channel of tick timestamps.
	C() <-chan time.Time
	// Stop cancels any pending tick request. It is safe to call more than once.
	Stop()
}
