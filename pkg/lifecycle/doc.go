// Package lifecycle runs a long-lived loop behind a small state machine.
//
// A Manager starts one run function in its own goroutine, cancels it on
// Stop, and records how it ended: Stopped when it returned cleanly or was
// canceled, Crashed when it returned any other error.
//
// # Usage
//
//	manager := lifecycle.NewManager(logger, nil)
//
//	if err := manager.Start(ctx, screen.Run); err != nil {
//	    return err
//	}
//
//	<-manager.Done()
//	if err := manager.Err(); err != nil {
//	    return err
//	}
//
// # State Machine
//
// Valid state transitions:
//   - Stopped -> Starting
//   - Starting -> Running, Stopping, Crashed
//   - Running -> Stopping, Crashed
//   - Stopping -> Stopped, Crashed
//   - Crashed -> Starting
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package lifecycle
