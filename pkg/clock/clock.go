package clock

import "time"

// Clock abstracts wall-clock access so time-sensitive logic
// (timestamps, the 24h story window) can be tested with a fake.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// System returns a Clock backed by time.Now.
func System() Clock { return systemClock{} }
