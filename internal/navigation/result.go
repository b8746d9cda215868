package navigation

// Result is the outcome of one navigation call: a success flag and, on
// failure, the captured fault. Results are immutable once constructed.
type Result struct {
	success bool
	err     error
}

// Succeeded returns a successful Result.
func Succeeded() Result {
	return Result{success: true}
}

// Failed returns a failed Result carrying err.
func Failed(err error) Result {
	return Result{err: err}
}

// Success reports whether the navigation completed.
func (r Result) Success() bool {
	return r.success
}

// Err returns the captured fault, or nil on success.
func (r Result) Err() error {
	return r.err
}
