package navigation

import (
	"errors"
	"fmt"
)

// Navigation errors.
var (
	// ErrViewNotRegistered indicates the view provider has no factory
	// for the requested view name.
	ErrViewNotRegistered = errors.New("view not registered")

	// ErrViewAlreadyRegistered indicates a factory already exists for
	// the view name.
	ErrViewAlreadyRegistered = errors.New("view already registered")

	// ErrNilFactory indicates a nil view factory was registered.
	ErrNilFactory = errors.New("nil view factory")

	// ErrNilView indicates a factory produced a nil view.
	ErrNilView = errors.New("factory produced nil view")

	// ErrCannotGoBack indicates GoBack was called with no backward
	// neighbor in the stack.
	ErrCannotGoBack = errors.New("cannot go back")

	// ErrCannotGoForward indicates GoForward was called with no
	// forward neighbor in the stack.
	ErrCannotGoForward = errors.New("cannot go forward")

	// ErrRegionDestroyed indicates an operation on a region after
	// DestroyAll.
	ErrRegionDestroyed = errors.New("region destroyed")

	// ErrRegionExists indicates a region name is already registered
	// with the manager.
	ErrRegionExists = errors.New("region name already in use")

	// ErrRegionNotFound indicates no region is registered under the
	// given name.
	ErrRegionNotFound = errors.New("region not found")
)

// OperationError wraps a fault with the navigation operation, region,
// and view it occurred in.
type OperationError struct {
	Op     string // Operation name ("push", "goback", "destroyall", ...)
	Region string // Region name
	View   string // Target view name, if any
	Err    error  // Underlying fault
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}

	msg := e.Op
	if e.Region != "" {
		msg = fmt.Sprintf("%s region %s", msg, e.Region)
	}
	if e.View != "" {
		msg = fmt.Sprintf("%s view %s", msg, e.View)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is implements errors.Is for OperationError.
// Matches both the wrapper itself and the wrapped error.
func (e *OperationError) Is(target error) bool {
	if e == nil {
		return false
	}
	if t, ok := target.(*OperationError); ok {
		return e == t
	}
	return errors.Is(e.Err, target)
}

// RecoveredPanicError wraps a panic captured at a navigation boundary
// as an error so it can travel inside a failed Result.
type RecoveredPanicError struct {
	Value any
	Stack string
}

func (e *RecoveredPanicError) Error() string {
	if e == nil {
		return ""
	}
	if e.Stack != "" {
		return fmt.Sprintf("panic: %v\n%s", e.Value, e.Stack)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}
