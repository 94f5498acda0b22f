package expiry

import "time"

// Clock supplies the wall clock to the scheduler and pipeline so tests can
// substitute a fixed time instead of real timers.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }
