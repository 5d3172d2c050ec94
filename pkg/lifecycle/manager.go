package lifecycle

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/motivation-app/motivation/pkg/log"
)

// Common lifecycle errors.
var (
	ErrNotRunning      = errors.New("not running")
	ErrAlreadyRunning  = errors.New("already running")
	ErrShutdownTimeout = errors.New("shutdown timeout")
)

// ShutdownTimeout is the default maximum time to wait for graceful shutdown.
const ShutdownTimeout = 5 * time.Second

// DefaultManager implements Manager with a state machine for lifecycle management.
type DefaultManager struct {
	mu           sync.RWMutex
	state        State
	cancel       context.CancelFunc
	done         chan struct{}
	err          error
	logger       log.Logger
	eventEmitter EventEmitter
}

// NewManager creates a new lifecycle manager. Both arguments may be nil.
func NewManager(logger log.Logger, emitter EventEmitter) *DefaultManager {
	return &DefaultManager{
		state:        StateStopped,
		logger:       log.OrNoop(logger),
		eventEmitter: emitter,
	}
}

// State returns the current lifecycle state.
func (l *DefaultManager) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// TransitionTo attempts to transition to a new state.
// Returns an error if the transition is not valid.
func (l *DefaultManager) TransitionTo(newState State, reason string) error {
	return l.transition(newState, reason, nil)
}

// transition changes state and, on success, runs locked while still holding
// the lock.
func (l *DefaultManager) transition(newState State, reason string, locked func()) error {
	l.mu.Lock()
	oldState := l.state

	if err := validTransition(oldState, newState); err != nil {
		l.mu.Unlock()
		return err
	}

	l.state = newState
	if locked != nil {
		locked()
	}
	l.mu.Unlock()

	// Emit event outside of lock
	if l.eventEmitter != nil {
		l.eventEmitter.OnStateChange(oldState, newState, reason)
	}

	l.logger.Debug("state transition",
		log.String("from", oldState.String()),
		log.String("to", newState.String()),
		log.String("reason", reason),
	)

	return nil
}

func validTransition(from, to State) error {
	switch from {
	case StateStopped:
		if to != StateStarting {
			return ErrNotRunning
		}
	case StateStarting:
		if to != StateRunning && to != StateStopping && to != StateCrashed {
			return ErrAlreadyRunning
		}
	case StateRunning:
		if to != StateStopping && to != StateCrashed {
			return ErrAlreadyRunning
		}
	case StateStopping:
		if to != StateStopped && to != StateCrashed {
			return ErrAlreadyRunning
		}
	case StateCrashed:
		if to != StateStarting {
			return ErrNotRunning
		}
	}
	return nil
}

// CanStart returns true if Start() can be called.
func (l *DefaultManager) CanStart() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state == StateStopped || l.state == StateCrashed
}

// CanStop returns true if Stop() can be called.
func (l *DefaultManager) CanStop() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state == StateRunning || l.state == StateStarting
}

// Start runs fn in a new goroutine with a context derived from ctx.
// Returns ErrAlreadyRunning unless the manager is Stopped or Crashed.
func (l *DefaultManager) Start(ctx context.Context, fn RunFunc) error {
	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	err := l.transition(StateStarting, "start requested", func() {
		l.cancel = cancel
		l.done = done
		l.err = nil
	})
	if err != nil {
		cancel()
		return ErrAlreadyRunning
	}

	// Fails only when Stop won the race; fn then sees a canceled context.
	_ = l.TransitionTo(StateRunning, "started")

	go func() {
		defer close(done)
		err := fn(runCtx)
		cancel()
		l.finish(err)
	}()

	return nil
}

func (l *DefaultManager) finish(err error) {
	if err != nil && !errors.Is(err, context.Canceled) {
		l.mu.Lock()
		l.err = err
		l.mu.Unlock()

		l.logger.Error("run failed", log.Err(err))
		_ = l.TransitionTo(StateCrashed, err.Error())
		return
	}

	if s := l.State(); s == StateStarting || s == StateRunning {
		_ = l.TransitionTo(StateStopping, "finished")
	}
	_ = l.TransitionTo(StateStopped, "finished")
}

// Stop cancels the run and waits for it to return.
// Returns ErrNotRunning if nothing is running, or ErrShutdownTimeout if the
// run does not return within timeout.
func (l *DefaultManager) Stop(timeout time.Duration) error {
	var cancel context.CancelFunc
	var done chan struct{}

	err := l.transition(StateStopping, "stop requested", func() {
		cancel = l.cancel
		done = l.done
	})
	if err != nil {
		return ErrNotRunning
	}

	if cancel != nil {
		cancel()
	}
	if done == nil {
		return nil
	}

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		l.logger.Warn("shutdown timeout, forcing exit",
			log.Duration("timeout", timeout),
		)
		return ErrShutdownTimeout
	}
}

// Done is closed when the current run returns. Before the first Start it
// is already closed.
func (l *DefaultManager) Done() <-chan struct{} {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.done == nil {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return l.done
}

// Err returns the error that crashed the last run, or nil.
func (l *DefaultManager) Err() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.err
}

var _ Manager = (*DefaultManager)(nil)
