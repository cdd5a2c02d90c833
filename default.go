package timetree

import "sync"

var (
	defaultTracker     *Tracker
	defaultTrackerOnce sync.Once
)

// Default returns the process-wide Tracker, creating it on first use. It is
// one shared mutable tree: every package timing through it writes into the
// same path and the same report.
func Default() *Tracker {
	defaultTrackerOnce.Do(func() {
		defaultTracker = New()
	})

	return defaultTracker
}

func Enter(name string) (*Region, error) {
	return Default().Enter(name)
}

func Exit() error {
	return Default().Exit()
}

func Do(name string, fn func() error) error {
	return Default().Do(name, fn)
}

func Wrap(fn func() error, name ...string) func() error {
	return Default().Wrap(fn, name...)
}

func Clear() {
	Default().Clear()
}

func String() string {
	return Default().String()
}

func JSON() ([]byte, error) {
	return Default().JSON()
}

func CurrentReport() Report {
	return Default().Report()
}
