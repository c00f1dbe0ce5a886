package engine

import (
	"errors"
	"fmt"
)

// ConfigError reports an engine configuration that cannot run. It is the
// only error the engine returns: discovery itself never fails.
type ConfigError struct {
	// Code identifies the error category.
	Code ConfigErrorCode

	// Message is a human-readable description.
	Message string

	// Details contains additional context.
	Details map[string]string
}

// ConfigErrorCode categorizes configuration errors.
type ConfigErrorCode string

const (
	// ErrCodeUnknownOwner indicates a profile owner has no registered surface.
	ErrCodeUnknownOwner ConfigErrorCode = "UNKNOWN_OWNER"

	// ErrCodeInvalidArity indicates max_arity is outside 0..MaxArityLimit.
	ErrCodeInvalidArity ConfigErrorCode = "INVALID_ARITY"

	// ErrCodeInvalidTolerance indicates a non-positive or non-finite tolerance.
	ErrCodeInvalidTolerance ConfigErrorCode = "INVALID_TOLERANCE"
)

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsUnknownOwner returns true if err is an unknown-owner configuration error.
// Uses errors.As to handle wrapped errors.
func IsUnknownOwner(err error) bool {
	var ce *ConfigError
	if errors.As(err, &ce) {
		return ce.Code == ErrCodeUnknownOwner
	}
	return false
}

// IsConfigError returns true if err is any engine configuration error.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

func newUnknownOwnerError(owner string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeUnknownOwner,
		Message: fmt.Sprintf("owner %s has no registered surface", owner),
		Details: map[string]string{"owner": owner},
	}
}

func newArityError(arity, limit int) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeInvalidArity,
		Message: fmt.Sprintf("max arity %d outside 0..%d", arity, limit),
		Details: map[string]string{
			"max_arity": fmt.Sprintf("%d", arity),
			"limit":     fmt.Sprintf("%d", limit),
		},
	}
}

func newToleranceError(tol float64) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeInvalidTolerance,
		Message: fmt.Sprintf("tolerance %v must be finite and positive", tol),
	}
}
