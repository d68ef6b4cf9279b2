package pauwcheck

import "errors"

// ErrChecksFailed reports a completed run with at least one failed check.
var ErrChecksFailed = errors.New("one or more checks failed")

// SetupError is a fatal error raised before any check runs: no port could
// be resolved or the link could not be opened.
type SetupError struct {
	Op  string
	Err error
}

func (e *SetupError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *SetupError) Unwrap() error {
	return e.Err
}

// TransportError is an I/O failure on the link itself. It aborts a run and is
// never recorded as a check outcome.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return "serial " + e.Op + ": " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
