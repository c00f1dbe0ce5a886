package surface

import (
	"errors"
	"fmt"
)

// FaultCode categorizes invocation faults.
type FaultCode string

const (
	// FaultNotFound means the operation is not on the surface.
	FaultNotFound FaultCode = "NOT_FOUND"

	// FaultPanic means the operation panicked, typically on an argument of
	// the wrong type or a missing argument.
	FaultPanic FaultCode = "PANIC"

	// FaultError means the operation returned an error.
	FaultError FaultCode = "ERROR"
)

// Fault is the error side of an invocation result. A fault is evidence that
// the candidate call is invalid; it is never fatal to discovery.
type Fault struct {
	Code      FaultCode
	Owner     string
	Operation string
	Static    bool

	// Cause holds the recovered panic value or the returned error.
	Cause any
}

func (f *Fault) Error() string {
	kind := "method"
	if f.Static {
		kind = "static"
	}
	if f.Cause != nil {
		return fmt.Sprintf("%s: %s %s.%s: %v", f.Code, kind, f.Owner, f.Operation, f.Cause)
	}
	return fmt.Sprintf("%s: %s %s.%s", f.Code, kind, f.Owner, f.Operation)
}

// Unwrap exposes an underlying error cause.
func (f *Fault) Unwrap() error {
	if err, ok := f.Cause.(error); ok {
		return err
	}
	return nil
}

// IsFault reports whether err is (or wraps) an invocation fault.
func IsFault(err error) bool {
	var f *Fault
	return errors.As(err, &f)
}

// IsNotFound reports whether err is a FaultNotFound fault.
func IsNotFound(err error) bool {
	var f *Fault
	if errors.As(err, &f) {
		return f.Code == FaultNotFound
	}
	return false
}
