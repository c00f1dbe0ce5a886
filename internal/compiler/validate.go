package compiler

import (
	"fmt"
	"math"
	"strings"

	"github.com/roach88/sigprobe/internal/ir"
)

// Validation error codes (E100-E199)
const (
	ErrInvalidArity     = "E101" // max_arity outside 0..ir.MaxArityLimit
	ErrInvalidTolerance = "E102" // tolerance not finite and positive
	ErrInvalidOwner     = "E103" // owner is not a catalog type
	ErrDuplicateOwner   = "E104" // owner listed twice
	ErrEmptyDeny        = "E105" // blank deny entry
	ErrDuplicateDeny    = "E106" // deny entry listed twice
	ErrEmptySource      = "E107" // source is blank
)

// ValidationError represents a profile validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate checks a compiled profile. Profiles assembled from CLI flags
// never pass through the CUE schema, so the bounds are checked again here.
// Returns all errors found (does not fail-fast).
func Validate(p *ir.Profile) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(p.Source) == "" {
		errs = append(errs, ValidationError{
			Field:   "source",
			Message: "source must be non-empty",
			Code:    ErrEmptySource,
		})
	}

	if p.MaxArity < 0 || p.MaxArity > ir.MaxArityLimit {
		errs = append(errs, ValidationError{
			Field:   "max_arity",
			Message: fmt.Sprintf("max_arity %d outside 0..%d", p.MaxArity, ir.MaxArityLimit),
			Code:    ErrInvalidArity,
		})
	}

	if math.IsNaN(p.Tolerance) || math.IsInf(p.Tolerance, 0) || p.Tolerance <= 0 {
		errs = append(errs, ValidationError{
			Field:   "tolerance",
			Message: fmt.Sprintf("tolerance %v must be finite and positive", p.Tolerance),
			Code:    ErrInvalidTolerance,
		})
	}

	seenOwners := make(map[string]bool)
	for i, o := range p.Owners {
		field := fmt.Sprintf("owners[%d]", i)
		if !o.Valid() {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("invalid owner type %d", uint8(o)),
				Code:    ErrInvalidOwner,
			})
			continue
		}
		if seenOwners[o.String()] {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("duplicate owner: %q", o.String()),
				Code:    ErrDuplicateOwner,
			})
		}
		seenOwners[o.String()] = true
	}

	seenDeny := make(map[string]bool)
	for i, name := range p.Deny {
		field := fmt.Sprintf("deny[%d]", i)
		if strings.TrimSpace(name) == "" {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: "deny entry must be non-empty",
				Code:    ErrEmptyDeny,
			})
			continue
		}
		if seenDeny[name] {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("duplicate deny entry: %q", name),
				Code:    ErrDuplicateDeny,
			})
		}
		seenDeny[name] = true
	}

	return errs
}
