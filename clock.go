package timetree

import "time"

// Clock is the time source of a tree. Implementations must return readings
// that never go backwards; time.Now carries a monotonic reading, so the
// default clock satisfies this.
type Clock interface {
	Now() time.Time
}

// MonotonicClock reads time.Now.
type MonotonicClock struct{}

func (MonotonicClock) Now() time.Time {
	return time.Now()
}

// elapsed returns the non-negative duration between from and to.
func elapsed(from, to time.Time) time.Duration {
	d := to.Sub(from)
	if d < 0 {
		return 0
	}

	return d
}
