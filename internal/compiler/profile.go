// Package compiler turns CUE run profiles into ir.Profile values.
package compiler

import (
	_ "embed"
	"fmt"
	"slices"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/sigprobe/internal/catalog"
	"github.com/roach88/sigprobe/internal/ir"
)

//go:embed profile.cue
var profileSchema string

// ProfileFields lists the fields a profile may set.
var ProfileFields = []string{"source", "max_arity", "tolerance", "owners", "deny"}

// CompileProfile parses a CUE value into a Profile. Missing fields take the
// values of ir.DefaultProfile.
// Uses CUE SDK's Go API directly (not CLI subprocess).
//
// The CUE value should be the profile struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`profile: { max_arity: 2 }`)
//	p, err := CompileProfile(v.LookupPath(cue.ParsePath("profile")))
func CompileProfile(v cue.Value) (*ir.Profile, error) {
	if !v.Exists() {
		return nil, &CompileError{Field: "profile", Message: "profile is required"}
	}
	if err := v.Err(); err != nil {
		return nil, FormatCUEError(err)
	}
	if k := v.IncompleteKind(); k != cue.StructKind {
		return nil, &CompileError{
			Field:   "profile",
			Message: fmt.Sprintf("profile must be a struct, got %v", k),
			Pos:     v.Pos(),
		}
	}

	if err := checkFields(v); err != nil {
		return nil, err
	}
	if err := checkSchema(v); err != nil {
		return nil, err
	}

	p := ir.DefaultProfile()

	if f := v.LookupPath(cue.ParsePath("source")); f.Exists() {
		s, err := f.String()
		if err != nil {
			return nil, FormatCUEError(err)
		}
		p.Source = s
	}

	if f := v.LookupPath(cue.ParsePath("max_arity")); f.Exists() {
		n, err := f.Int64()
		if err != nil {
			return nil, FormatCUEError(err)
		}
		p.MaxArity = int(n)
	}

	if f := v.LookupPath(cue.ParsePath("tolerance")); f.Exists() {
		tol, err := f.Float64()
		if err != nil {
			return nil, FormatCUEError(err)
		}
		p.Tolerance = tol
	}

	owners, err := parseOwners(v)
	if err != nil {
		return nil, err
	}
	p.Owners = owners

	deny, err := parseStrings(v, "deny")
	if err != nil {
		return nil, err
	}
	p.Deny = deny

	return &p, nil
}

// checkFields rejects labels the schema does not know, with the position
// of the offending field.
func checkFields(v cue.Value) error {
	it, err := v.Fields()
	if err != nil {
		return FormatCUEError(err)
	}
	for it.Next() {
		name := it.Selector().String()
		if !slices.Contains(ProfileFields, name) {
			return &CompileError{
				Field:   name,
				Message: "unknown profile field",
				Pos:     it.Value().Pos(),
			}
		}
	}
	return nil
}

// checkSchema unifies v with #Profile and requires a concrete result.
func checkSchema(v cue.Value) error {
	schema := v.Context().CompileString(profileSchema, cue.Filename("profile.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile profile schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Profile"))
	if err := def.Unify(v).Validate(cue.Concrete(true)); err != nil {
		return FormatCUEError(err)
	}
	return nil
}

func parseOwners(v cue.Value) ([]catalog.Type, error) {
	owners := []catalog.Type{}
	f := v.LookupPath(cue.ParsePath("owners"))
	if !f.Exists() {
		return owners, nil
	}

	it, err := f.List()
	if err != nil {
		return nil, FormatCUEError(err)
	}
	for it.Next() {
		name, err := it.Value().String()
		if err != nil {
			return nil, FormatCUEError(err)
		}
		t, err := catalog.Parse(name)
		if err != nil {
			return nil, &CompileError{
				Field:   "owners",
				Message: err.Error(),
				Pos:     it.Value().Pos(),
			}
		}
		owners = append(owners, t)
	}
	return owners, nil
}

func parseStrings(v cue.Value, field string) ([]string, error) {
	out := []string{}
	f := v.LookupPath(cue.ParsePath(field))
	if !f.Exists() {
		return out, nil
	}

	it, err := f.List()
	if err != nil {
		return nil, FormatCUEError(err)
	}
	for it.Next() {
		s, err := it.Value().String()
		if err != nil {
			return nil, FormatCUEError(err)
		}
		out = append(out, s)
	}
	return out, nil
}

// CompileError reports a profile that cannot be compiled, with the CUE
// source position when one is known.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// FormatCUEError converts the first CUE error into a CompileError, keeping
// its position when CUE reports one.
func FormatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return &CompileError{Field: "cue", Message: err.Error()}
	}

	first := errs[0]
	ce := &CompileError{Field: "cue", Message: first.Error()}
	if positions := errors.Positions(first); len(positions) > 0 {
		ce.Pos = positions[0]
	}
	return ce
}
