// Package validate decides whether a candidate call is a genuine,
// type-faithful signature.
//
// The validator runs a fixed sequence of checks; the first failure rejects:
//
//  1. invocability: the operation exists on the owner's surface
//  2. initial call: variant A arguments do not fault
//  3. classification: the return value maps to a catalog type
//  4. fluent-self: the return value is not the receiver itself
//  5. differential: variant B inputs change the result (arity > 0)
//  6. under-specification: no smaller type at any position reproduces the
//     sensitivity of the declared type
//
// Rejections are returned as *Rejection errors. They are expected outcomes,
// not failures of the validator.
package validate

import (
	"io"
	"log/slog"
	"math"
	"reflect"
	"slices"

	"github.com/roach88/sigprobe/internal/catalog"
	"github.com/roach88/sigprobe/internal/ir"
	"github.com/roach88/sigprobe/internal/probe"
	"github.com/roach88/sigprobe/internal/surface"
)

// Factory builds test instances. probe.Factory is the production
// implementation.
type Factory interface {
	CreateAt(t catalog.Type, v probe.Variant, slot, k int) any
}

// Option configures a Validator.
type Option func(*options)

type options struct {
	tolerance float64
	factory   Factory
	logger    *slog.Logger
}

// WithTolerance sets the absolute tolerance of the differential checks.
// Panics unless tol is finite and positive.
func WithTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol <= 0 {
		panic("validate: WithTolerance: tolerance must be finite and positive")
	}
	return func(o *options) { o.tolerance = tol }
}

// WithFactory replaces the instance factory.
func WithFactory(f Factory) Option {
	return func(o *options) { o.factory = f }
}

// WithLogger sets the logger used for rejection traces.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Validator checks candidate signatures against a registry of surfaces.
type Validator struct {
	registry  *surface.Registry
	tolerance float64
	factory   Factory
	logger    *slog.Logger
}

// New creates a Validator over registry.
func New(registry *surface.Registry, opts ...Option) *Validator {
	o := options{
		tolerance: probe.DefaultTolerance,
		factory:   probe.Factory{},
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Validator{
		registry:  registry,
		tolerance: o.tolerance,
		factory:   o.factory,
		logger:    o.logger,
	}
}

// Tolerance returns the configured tolerance.
func (v *Validator) Tolerance() float64 {
	return v.tolerance
}

// Validate runs the checks on c. It returns the validated signature, or a
// *Rejection naming the failing check.
func (v *Validator) Validate(c ir.CandidateSignature) (ir.ValidatedSignature, error) {
	s, ok := v.registry.Lookup(c.Owner)
	if !ok {
		return v.reject(c, ReasonNotInvocable, 1, -1, nil)
	}

	// Step 1.
	if c.Static {
		if _, ok := s.Static(c.Operation); !ok {
			return v.reject(c, ReasonNotInvocable, 1, -1, nil)
		}
	} else if _, ok := s.Method(c.Operation); !ok {
		return v.reject(c, ReasonNotInvocable, 1, -1, nil)
	}

	// Step 2.
	resultA, self, err := v.call(s, c, c.Params, probe.VariantA)
	if err != nil {
		return v.reject(c, ReasonFault, 2, -1, err)
	}

	// Step 3.
	returns, ok := probe.Classify(resultA)
	if !ok {
		return v.reject(c, ReasonUnclassified, 3, -1, nil)
	}

	// Step 4.
	if sameInstance(resultA, self) {
		return v.reject(c, ReasonFluent, 4, -1, nil)
	}

	// Step 5.
	if len(c.Params) > 0 {
		resultB, _, err := v.call(s, c, c.Params, probe.VariantB)
		if err != nil {
			return v.reject(c, ReasonFault, 5, -1, err)
		}
		if tb, ok := probe.Classify(resultB); !ok || tb != returns {
			return v.reject(c, ReasonUnclassified, 5, -1, nil)
		}
		if probe.Equal(returns, resultA, resultB, v.tolerance) {
			return v.reject(c, ReasonInsensitive, 5, -1, nil)
		}
	}

	// Step 6.
	for i, p := range c.Params {
		smaller, ok := p.Smaller()
		if !ok {
			continue
		}
		sub := slices.Clone(c.Params)
		sub[i] = smaller
		if v.sensitive(s, c, sub) {
			return v.reject(c, ReasonUnderSpecified, 6, i, nil)
		}
	}

	// Step 7.
	return c.Accept(returns), nil
}

// sensitive repeats steps 2 and 5 with a substituted tuple. A fault, an
// unclassifiable result or equal outputs all mean the substitution does not
// reproduce the declared behavior.
func (v *Validator) sensitive(s *surface.Surface, c ir.CandidateSignature, params []catalog.Type) bool {
	a, _, err := v.call(s, c, params, probe.VariantA)
	if err != nil {
		return false
	}
	b, _, err := v.call(s, c, params, probe.VariantB)
	if err != nil {
		return false
	}
	t, ok := probe.Classify(a)
	if !ok {
		return false
	}
	return !probe.Equal(t, a, b, v.tolerance)
}

// call builds fresh instances for one variant and invokes the operation.
// The receiver is slot 0 and parameter i is slot i+1. For static calls the
// returned self is the leading argument, which plays the receiver's role in
// the fluent check.
func (v *Validator) call(s *surface.Surface, c ir.CandidateSignature, params []catalog.Type, variant probe.Variant) (result, self any, err error) {
	args := make([]any, len(params))
	for i, p := range params {
		args[i] = v.factory.CreateAt(p, variant, i+1, probe.DefaultSharedPrefix(p))
	}

	if c.Static {
		if len(args) > 0 {
			self = args[0]
		}
		result, err = s.InvokeStatic(c.Operation, args...)
		return result, self, err
	}

	self = v.factory.CreateAt(c.Owner, variant, 0, probe.DefaultSharedPrefix(c.Owner))
	result, err = s.Invoke(self, c.Operation, args...)
	return result, self, err
}

func (v *Validator) reject(c ir.CandidateSignature, reason Reason, step, position int, err error) (ir.ValidatedSignature, error) {
	v.logger.Debug("candidate rejected",
		"owner", c.Owner.String(),
		"operation", c.Operation,
		"params", catalog.Names(c.Params),
		"static", c.Static,
		"reason", string(reason),
		"step", step)
	return ir.ValidatedSignature{}, &Rejection{
		Reason:    reason,
		Step:      step,
		Candidate: c,
		Position:  position,
		Err:       err,
	}
}

// sameInstance reports whether a and b are the same pointer.
func sameInstance(a, b any) bool {
	if a == nil || b == nil {
		return false
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Kind() != reflect.Pointer || rb.Kind() != reflect.Pointer {
		return false
	}
	return ra.Type() == rb.Type() && ra.Pointer() == rb.Pointer()
}
