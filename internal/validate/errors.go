package validate

import (
	"errors"
	"fmt"

	"github.com/roach88/sigprobe/internal/ir"
)

// Reason categorizes a rejected candidate.
type Reason string

const (
	// ReasonNotInvocable means the owner has no such operation (step 1).
	ReasonNotInvocable Reason = "not_invocable"

	// ReasonFault means the call faulted with the declared types (steps 2, 5).
	ReasonFault Reason = "fault"

	// ReasonUnclassified means the return value is absent or not a catalog
	// type (step 3), or variant B's result classifies differently from
	// variant A's (step 5).
	ReasonUnclassified Reason = "unclassified"

	// ReasonFluent means the call returned its own receiver (step 4).
	ReasonFluent Reason = "fluent"

	// ReasonInsensitive means variant A and B calls returned equal values:
	// the parameters had no observable effect (step 5).
	ReasonInsensitive Reason = "insensitive"

	// ReasonUnderSpecified means a smaller type substituted at some position
	// produced differing outputs, so the declared type is a false positive
	// (step 6).
	ReasonUnderSpecified Reason = "under_specified"
)

// Reasons lists every rejection reason in check order.
func Reasons() []Reason {
	return []Reason{
		ReasonNotInvocable,
		ReasonFault,
		ReasonUnclassified,
		ReasonFluent,
		ReasonInsensitive,
		ReasonUnderSpecified,
	}
}

// Rejection reports why a candidate is not a signature. Rejections are
// local outcomes; a discovery run never stops because of one.
type Rejection struct {
	Reason    Reason
	Step      int
	Candidate ir.CandidateSignature

	// Position is the parameter index that triggered an under-specification
	// rejection, -1 otherwise.
	Position int

	// Err is the invocation fault behind a ReasonFault or
	// ReasonNotInvocable rejection.
	Err error
}

func (r *Rejection) Error() string {
	msg := fmt.Sprintf("step %d: %s: %s", r.Step, r.Reason, r.Candidate)
	if r.Position >= 0 {
		msg += fmt.Sprintf(" (position %d)", r.Position)
	}
	if r.Err != nil {
		msg += ": " + r.Err.Error()
	}
	return msg
}

func (r *Rejection) Unwrap() error {
	return r.Err
}

// IsRejection reports whether err is (or wraps) a *Rejection.
func IsRejection(err error) bool {
	var r *Rejection
	return errors.As(err, &r)
}

// ReasonOf returns the rejection reason carried by err, or "" when err is
// not a rejection.
func ReasonOf(err error) Reason {
	var r *Rejection
	if errors.As(err, &r) {
		return r.Reason
	}
	return ""
}
