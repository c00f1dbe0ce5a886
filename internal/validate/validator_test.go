package validate

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sigprobe/internal/bindings"
	"github.com/roach88/sigprobe/internal/catalog"
	"github.com/roach88/sigprobe/internal/ir"
	"github.com/roach88/sigprobe/internal/linalg"
	"github.com/roach88/sigprobe/internal/probe"
	"github.com/roach88/sigprobe/internal/surface"
)

// synthetic is a duck-typed Vector3 owner whose operations read their
// arguments through probe.Components, like a dynamically typed library that
// accepts anything with enough fields.
func synthetic() *surface.Registry {
	comps := func(v any) []float64 { return probe.Components(v) }
	// at reads a missing component as NaN.
	at := func(c []float64, i int) float64 {
		if i < len(c) {
			return c[i]
		}
		return math.NaN()
	}
	calls := 0

	s := &surface.Surface{
		Owner: catalog.Vector3,
		Methods: map[string]surface.Method{
			"constant": func(self any, args ...any) (any, error) {
				return 42.0, nil
			},
			"scale": func(self any, args ...any) (any, error) {
				v := self.(*linalg.Vector3)
				for _, a := range args {
					if f, ok := a.(float64); ok {
						v.MultiplyScalar(f)
					}
				}
				return v, nil
			},
			"sumXY": func(self any, args ...any) (any, error) {
				c := comps(args[0])
				return c[0] + c[1], nil
			},
			"sumXYZ": func(self any, args ...any) (any, error) {
				c := comps(args[0])
				return c[0] + c[1] + c[2], nil
			},
			"sumXYZW": func(self any, args ...any) (any, error) {
				c := comps(args[0])
				return c[0] + c[1] + c[2] + c[3], nil
			},
			"zOrOne": func(self any, args ...any) (any, error) {
				c := comps(args[0])
				if len(c) < 3 {
					return 1.0, nil
				}
				return c[2], nil
			},
			"fragile": func(self any, args ...any) (any, error) {
				c := comps(args[0])
				if c[1] < 5 {
					return nil, errors.New("out of range")
				}
				return c[1], nil
			},
			"nothing": func(self any, args ...any) (any, error) {
				return nil, nil
			},
			"label": func(self any, args ...any) (any, error) {
				return "vector", nil
			},
			"nanConstant": func(self any, args ...any) (any, error) {
				return math.NaN(), nil
			},
			"looseDot": func(self any, args ...any) (any, error) {
				s, c := comps(self), comps(args[0])
				return s[0]*at(c, 0) + s[1]*at(c, 1) + s[2]*at(c, 2), nil
			},
			"shiftingType": func(self any, args ...any) (any, error) {
				calls++
				if calls%2 == 0 {
					return true, nil
				}
				return comps(args[0])[0], nil
			},
			"vanishing": func(self any, args ...any) (any, error) {
				calls++
				if calls%2 == 0 {
					return nil, nil
				}
				return comps(args[0])[0], nil
			},
		},
		Statics: map[string]surface.Static{
			"first": func(args ...any) (any, error) {
				return args[0], nil
			},
		},
	}

	r := surface.NewRegistry()
	r.MustRegister(s)
	return r
}

func candidate(op string, params ...catalog.Type) ir.CandidateSignature {
	return ir.CandidateSignature{Owner: catalog.Vector3, Operation: op, Params: params}
}

func requireRejection(t *testing.T, err error, reason Reason, step int) *Rejection {
	t.Helper()
	require.Error(t, err)
	var r *Rejection
	require.True(t, errors.As(err, &r), "expected *Rejection, got %T", err)
	assert.Equal(t, reason, r.Reason)
	assert.Equal(t, step, r.Step)
	return r
}

func TestValidate_ConstantRejectedAtEveryNonZeroArity(t *testing.T) {
	v := New(synthetic())

	tuples := [][]catalog.Type{
		{catalog.Scalar},
		{catalog.Vector3},
		{catalog.Quaternion, catalog.Boolean},
		{catalog.Matrix4, catalog.Vector2, catalog.Euler},
	}
	for _, params := range tuples {
		t.Run(catalog.Names(params)[0], func(t *testing.T) {
			_, err := v.Validate(candidate("constant", params...))
			requireRejection(t, err, ReasonInsensitive, 5)
		})
	}

	// No differential check at arity 0.
	sig, err := v.Validate(candidate("constant"))
	require.NoError(t, err)
	assert.Equal(t, catalog.Scalar, sig.Returns)
}

func TestValidate_NaNConstantIsInsensitive(t *testing.T) {
	v := New(synthetic())

	for _, params := range [][]catalog.Type{
		{catalog.Scalar},
		{catalog.Vector3, catalog.Boolean},
	} {
		_, err := v.Validate(candidate("nanConstant", params...))
		requireRejection(t, err, ReasonInsensitive, 5)
	}
}

func TestValidate_NaNOnSubstitutionPasses(t *testing.T) {
	v := New(synthetic())

	// A Vector2 has no z, so both variants produce NaN: the substitution
	// does not reproduce the declared behavior.
	sig, err := v.Validate(candidate("looseDot", catalog.Vector3))
	require.NoError(t, err)
	assert.Equal(t, []catalog.Type{catalog.Vector3}, sig.Params)
	assert.Equal(t, catalog.Scalar, sig.Returns)
}

func TestValidate_VariantResultTypeMustMatch(t *testing.T) {
	for _, op := range []string{"shiftingType", "vanishing"} {
		t.Run(op, func(t *testing.T) {
			v := New(synthetic())
			_, err := v.Validate(candidate(op, catalog.Vector3))
			requireRejection(t, err, ReasonUnclassified, 5)
		})
	}
}

func TestValidate_FluentRejectedRegardlessOfArity(t *testing.T) {
	v := New(synthetic())

	for _, params := range [][]catalog.Type{
		nil,
		{catalog.Scalar},
		{catalog.Scalar, catalog.Vector3},
		{catalog.Boolean, catalog.Scalar, catalog.Matrix3},
	} {
		_, err := v.Validate(candidate("scale", params...))
		requireRejection(t, err, ReasonFluent, 4)
	}
}

func TestValidate_StaticFluentRejected(t *testing.T) {
	v := New(synthetic())
	c := candidate("first", catalog.Vector3, catalog.Vector3)
	c.Static = true

	_, err := v.Validate(c)
	requireRejection(t, err, ReasonFluent, 4)
}

func TestValidate_UnderSpecifiedVector3(t *testing.T) {
	v := New(synthetic())

	_, err := v.Validate(candidate("sumXY", catalog.Vector3))
	r := requireRejection(t, err, ReasonUnderSpecified, 6)
	assert.Equal(t, 0, r.Position)

	// The honest declaration is accepted.
	sig, err := v.Validate(candidate("sumXY", catalog.Vector2))
	require.NoError(t, err)
	assert.Equal(t, []catalog.Type{catalog.Vector2}, sig.Params)
}

func TestValidate_UnderSpecifiedPositionIsReported(t *testing.T) {
	v := New(synthetic())

	_, err := v.Validate(candidate("sumXY", catalog.Vector3, catalog.Matrix4))
	r := requireRejection(t, err, ReasonUnderSpecified, 6)
	assert.Equal(t, 0, r.Position)
	assert.Contains(t, r.Error(), "position 0")
}

func TestValidate_EqualOnSubstitutionPasses(t *testing.T) {
	v := New(synthetic())

	sig, err := v.Validate(candidate("zOrOne", catalog.Vector3))
	require.NoError(t, err)
	assert.Equal(t, catalog.Scalar, sig.Returns)
}

func TestValidate_QuaternionDisambiguation(t *testing.T) {
	v := New(synthetic())

	// Reads w: only the 4th component differs between variants, and that is
	// enough.
	sig, err := v.Validate(candidate("sumXYZW", catalog.Quaternion))
	require.NoError(t, err)
	assert.Equal(t, []catalog.Type{catalog.Quaternion}, sig.Params)

	// Reads only x, y, z: the shared prefix hides every difference.
	_, err = v.Validate(candidate("sumXYZ", catalog.Quaternion))
	requireRejection(t, err, ReasonInsensitive, 5)

	// Tested at Vector3 it is accepted; the Vector2 substitution faults.
	sig, err = v.Validate(candidate("sumXYZ", catalog.Vector3))
	require.NoError(t, err)
	assert.Equal(t, []catalog.Type{catalog.Vector3}, sig.Params)
}

func TestValidate_Vector4SharesPrefixLikeQuaternion(t *testing.T) {
	v := New(synthetic())

	_, err := v.Validate(candidate("sumXYZ", catalog.Vector4))
	requireRejection(t, err, ReasonInsensitive, 5)

	_, err = v.Validate(candidate("sumXYZW", catalog.Vector4))
	require.NoError(t, err)
}

func TestValidate_Vector3DotScenario(t *testing.T) {
	var f probe.Factory
	ownerA := f.CreateAt(catalog.Vector3, probe.VariantA, 0, 0).(*linalg.Vector3)
	argA := f.CreateAt(catalog.Vector3, probe.VariantA, 1, 0).(*linalg.Vector3)
	ownerB := f.CreateAt(catalog.Vector3, probe.VariantB, 0, 0).(*linalg.Vector3)
	argB := f.CreateAt(catalog.Vector3, probe.VariantB, 1, 0).(*linalg.Vector3)

	assert.Equal(t, linalg.Vector3{X: 1.5, Y: 2.7, Z: 3.1}, *ownerA)
	assert.InDelta(t, 41.49, ownerA.Dot(argA), 1e-9)
	assert.NotEqual(t, ownerA.Dot(argA), ownerB.Dot(argB))

	s := bindings.Vector3()
	_, err := s.Invoke(ownerA, "dot", f.CreateAt(catalog.Vector2, probe.VariantA, 1, 0))
	assert.True(t, surface.IsFault(err), "dot must refuse a Vector2")

	v := New(bindings.Default())
	sig, err := v.Validate(candidate("dot", catalog.Vector3))
	require.NoError(t, err)
	assert.Equal(t, ir.ValidatedSignature{
		Owner:     catalog.Vector3,
		Operation: "dot",
		Params:    []catalog.Type{catalog.Vector3},
		Returns:   catalog.Scalar,
	}, sig)
}

func TestValidate_LinalgSignatures(t *testing.T) {
	v := New(bindings.Default())

	tests := []struct {
		name    string
		c       ir.CandidateSignature
		returns catalog.Type
	}{
		{"length", candidate("length"), catalog.Scalar},
		{"angleTo", candidate("angleTo", catalog.Vector3), catalog.Scalar},
		{"quaternion dot", ir.CandidateSignature{Owner: catalog.Quaternion, Operation: "dot", Params: []catalog.Type{catalog.Quaternion}}, catalog.Scalar},
		{"determinant", ir.CandidateSignature{Owner: catalog.Matrix4, Operation: "determinant"}, catalog.Scalar},
		{"static midpoint", ir.CandidateSignature{Owner: catalog.Vector3, Operation: "midpoint", Params: []catalog.Type{catalog.Vector3, catalog.Vector3}, Static: true}, catalog.Vector3},
		{"static product", ir.CandidateSignature{Owner: catalog.Matrix4, Operation: "product", Params: []catalog.Type{catalog.Matrix4, catalog.Matrix4}, Static: true}, catalog.Matrix4},
		{"static slerp", ir.CandidateSignature{Owner: catalog.Quaternion, Operation: "slerp", Params: []catalog.Type{catalog.Quaternion, catalog.Quaternion, catalog.Scalar}, Static: true}, catalog.Quaternion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig, err := v.Validate(tt.c)
			require.NoError(t, err)
			assert.Equal(t, tt.returns, sig.Returns)
			assert.Equal(t, tt.c.Static, sig.Static)
		})
	}
}

func TestValidate_LinalgRejections(t *testing.T) {
	v := New(bindings.Default())

	_, err := v.Validate(candidate("add", catalog.Vector3))
	requireRejection(t, err, ReasonFluent, 4)

	_, err = v.Validate(candidate("dot", catalog.Scalar))
	r := requireRejection(t, err, ReasonFault, 2)
	assert.True(t, surface.IsFault(r.Err))

	_, err = v.Validate(candidate("dot"))
	requireRejection(t, err, ReasonFault, 2)

	_, err = v.Validate(candidate("toArray"))
	requireRejection(t, err, ReasonUnclassified, 3)
}

func TestValidate_NotInvocable(t *testing.T) {
	v := New(synthetic())

	_, err := v.Validate(candidate("missing"))
	requireRejection(t, err, ReasonNotInvocable, 1)

	_, err = v.Validate(ir.CandidateSignature{Owner: catalog.Matrix3, Operation: "determinant"})
	requireRejection(t, err, ReasonNotInvocable, 1)

	c := candidate("constant", catalog.Vector3)
	c.Static = true
	_, err = v.Validate(c)
	requireRejection(t, err, ReasonNotInvocable, 1)
}

func TestValidate_Unclassified(t *testing.T) {
	v := New(synthetic())

	_, err := v.Validate(candidate("nothing"))
	requireRejection(t, err, ReasonUnclassified, 3)

	_, err = v.Validate(candidate("label", catalog.Vector3))
	requireRejection(t, err, ReasonUnclassified, 3)
}

func TestValidate_FaultOnVariantB(t *testing.T) {
	v := New(synthetic())

	_, err := v.Validate(candidate("fragile", catalog.Vector3))
	r := requireRejection(t, err, ReasonFault, 5)
	assert.True(t, surface.IsFault(r.Err))
	assert.ErrorContains(t, err, "out of range")
}

func TestWithTolerance(t *testing.T) {
	v := New(bindings.Default(), WithTolerance(1e6))
	assert.Equal(t, 1e6, v.Tolerance())

	_, err := v.Validate(candidate("dot", catalog.Vector3))
	requireRejection(t, err, ReasonInsensitive, 5)

	assert.Panics(t, func() { WithTolerance(0) })
	assert.Panics(t, func() { WithTolerance(-1) })
}

type countingFactory struct {
	probe.Factory
	calls int
}

func (f *countingFactory) CreateAt(t catalog.Type, v probe.Variant, slot, k int) any {
	f.calls++
	return f.Factory.CreateAt(t, v, slot, k)
}

func TestWithFactory_FreshInstancesPerCall(t *testing.T) {
	f := &countingFactory{}
	v := New(bindings.Default(), WithFactory(f))

	_, err := v.Validate(candidate("dot", catalog.Vector3))
	require.NoError(t, err)

	// Owner and argument for variant A and variant B, then the Vector2
	// substitution for variant A; it faults, so variant B is never built.
	assert.Equal(t, 6, f.calls)
}

func TestWithLogger_TracesRejections(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	v := New(synthetic(), WithLogger(logger))

	_, err := v.Validate(candidate("constant", catalog.Scalar))
	require.Error(t, err)
	assert.Contains(t, buf.String(), "candidate rejected")
	assert.Contains(t, buf.String(), "reason=insensitive")
	assert.Contains(t, buf.String(), "operation=constant")
}

func TestReasonOf(t *testing.T) {
	err := error(&Rejection{Reason: ReasonFluent, Position: -1, Candidate: candidate("add")})
	assert.True(t, IsRejection(err))
	assert.Equal(t, ReasonFluent, ReasonOf(err))
	assert.Equal(t, Reason(""), ReasonOf(errors.New("other")))
	assert.False(t, IsRejection(nil))
	assert.Equal(t, "step 0: fluent: Vector3.add()", err.Error())
	assert.Len(t, Reasons(), 6)
}
