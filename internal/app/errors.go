// Package app wires the navigation engine, Lua view provider, event
// bus, configuration, and terminal shell into a runnable application.
package app

import (
	"errors"
	"fmt"
)

// Application state errors.
var (
	// ErrQuit signals a user-requested exit from the event loop.
	ErrQuit = errors.New("quit requested")

	// ErrAlreadyRunning indicates Run was called twice.
	ErrAlreadyRunning = errors.New("application already running")

	// ErrNotRunning indicates an operation that requires a running
	// application.
	ErrNotRunning = errors.New("application not running")
)

// InitError wraps a component startup failure.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("initializing %s: %v", e.Component, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}
