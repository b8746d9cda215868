package luaview

import (
	"errors"
	"fmt"
)

// Script errors.
var (
	// ErrNotATable indicates a view script did not return a table.
	ErrNotATable = errors.New("view script must return a table")

	// ErrViewClosed indicates a hook call on a destroyed view.
	ErrViewClosed = errors.New("lua view is closed")
)

// HookError wraps a fault raised inside a Lua lifecycle hook.
type HookError struct {
	View string
	Hook string
	Err  error
}

func (e *HookError) Error() string {
	return fmt.Sprintf("lua view %s: hook %s: %v", e.View, e.Hook, e.Err)
}

func (e *HookError) Unwrap() error {
	return e.Err
}
