package lifecycle

import (
	"context"
	"time"
)

// State represents the lifecycle state of a managed loop.
type State int

const (
	StateStopped State = iota
	StateStarting
	StateRunning
	StateStopping
	StateCrashed
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StateStarting:
		return "Starting"
	case StateRunning:
		return "Running"
	case StateStopping:
		return "Stopping"
	case StateCrashed:
		return "Crashed"
	default:
		return "Unknown"
	}
}

// RunFunc is the loop a Manager runs. It must return once ctx is done.
type RunFunc func(ctx context.Context) error

// EventEmitter is called when lifecycle state changes.
type EventEmitter interface {
	OnStateChange(previous, current State, reason string)
}

// EventFunc adapts a function to EventEmitter.
type EventFunc func(previous, current State, reason string)

func (f EventFunc) OnStateChange(previous, current State, reason string) {
	f(previous, current, reason)
}

// Manager manages the lifecycle state machine for one loop.
type Manager interface {
	// State returns the current lifecycle state.
	State() State

	// CanStart returns true if Start() can be called.
	CanStart() bool

	// CanStop returns true if Stop() can be called.
	CanStop() bool

	// TransitionTo attempts to transition to a new state.
	// Returns an error if the transition is not valid.
	TransitionTo(newState State, reason string) error

	// Start runs fn in a new goroutine until it returns or Stop is called.
	Start(ctx context.Context, fn RunFunc) error

	// Stop cancels the running loop and waits up to timeout for it to return.
	// Returns ErrShutdownTimeout if the timeout expires.
	Stop(timeout time.Duration) error

	// Done is closed when the current run has returned.
	Done() <-chan struct{}

	// Err returns the error that crashed the last run, if any.
	Err() error
}
