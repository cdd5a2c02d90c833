package timetree

import "github.com/pkg/errors"

var (
	// ErrNestingViolation is returned when a region is exited out of order,
	// exited twice, or exited while no region is open.
	ErrNestingViolation = errors.New("region nesting violation")

	// ErrInvalidTimerState is returned when a running timer is started again
	// or a stopped timer is stopped.
	ErrInvalidTimerState = errors.New("invalid timer state")
)
