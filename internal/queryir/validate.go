package queryir

import (
	"fmt"

	"github.com/roach88/sigprobe/internal/catalog"
	"github.com/roach88/sigprobe/internal/ir"
)

// ValidationResult lists the problems found in a query.
type ValidationResult struct {
	// Valid is true when Problems is empty.
	Valid bool

	// Problems describes each invalid node, in traversal order.
	Problems []string
}

// Validate checks field names, value kinds and catalog names.
//
// Rules:
//  1. Equals names a known Field
//  2. owner and returns compare to a String holding a catalog type name
//  3. operation compares to a String, static to a Bool, arity to a
//     non-negative Int
//  4. HasParam names a valid type and a position >= AnyPosition
//  5. Limit is not negative
//
// Validate is a pure function with no side effects.
func Validate(q Query) ValidationResult {
	v := &validator{problems: []string{}}
	v.validateQuery(q)
	return ValidationResult{
		Valid:    len(v.problems) == 0,
		Problems: v.problems,
	}
}

type validator struct {
	problems []string
}

func (v *validator) addProblem(format string, args ...any) {
	v.problems = append(v.problems, fmt.Sprintf(format, args...))
}

func (v *validator) validateQuery(q Query) {
	switch query := q.(type) {
	case Select:
		v.validateSelect(query)
	case *Select:
		v.validateSelect(*query)
	case nil:
		v.addProblem("nil query")
	default:
		v.addProblem("unknown query type: %T", q)
	}
}

func (v *validator) validateSelect(sel Select) {
	if sel.Limit < 0 {
		v.addProblem("negative limit %d", sel.Limit)
	}
	if sel.Filter != nil {
		v.validatePredicate(sel.Filter)
	}
}

func (v *validator) validatePredicate(p Predicate) {
	switch pred := p.(type) {
	case Equals:
		v.validateEquals(pred)
	case *Equals:
		v.validateEquals(*pred)
	case HasParam:
		v.validateHasParam(pred)
	case *HasParam:
		v.validateHasParam(*pred)
	case And:
		v.validateAnd(pred)
	case *And:
		v.validateAnd(*pred)
	case nil:
		v.addProblem("nil predicate")
	default:
		v.addProblem("unknown predicate type: %T", p)
	}
}

func (v *validator) validateEquals(eq Equals) {
	switch eq.Field {
	case FieldOwner, FieldReturns:
		s, ok := eq.Value.(ir.String)
		if !ok {
			v.addProblem("field %q needs a string, got %T", eq.Field, eq.Value)
			return
		}
		if _, err := catalog.Parse(string(s)); err != nil {
			v.addProblem("field %q: %v", eq.Field, err)
		}
	case FieldOperation:
		if _, ok := eq.Value.(ir.String); !ok {
			v.addProblem("field %q needs a string, got %T", eq.Field, eq.Value)
		}
	case FieldStatic:
		if _, ok := eq.Value.(ir.Bool); !ok {
			v.addProblem("field %q needs a bool, got %T", eq.Field, eq.Value)
		}
	case FieldArity:
		n, ok := eq.Value.(ir.Int)
		if !ok {
			v.addProblem("field %q needs an int, got %T", eq.Field, eq.Value)
			return
		}
		if n < 0 {
			v.addProblem("field %q: negative arity %d", eq.Field, n)
		}
	default:
		v.addProblem("unknown field %q", eq.Field)
	}
}

func (v *validator) validateHasParam(hp HasParam) {
	if !hp.Type.Valid() {
		v.addProblem("has_param: invalid type %d", uint8(hp.Type))
	}
	if hp.Position < AnyPosition {
		v.addProblem("has_param: invalid position %d", hp.Position)
	}
}

func (v *validator) validateAnd(and And) {
	for _, sub := range and.Predicates {
		v.validatePredicate(sub)
	}
}
