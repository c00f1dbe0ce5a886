package engine

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sigprobe/internal/bindings"
	"github.com/roach88/sigprobe/internal/catalog"
	"github.com/roach88/sigprobe/internal/ir"
	"github.com/roach88/sigprobe/internal/probe"
	"github.com/roach88/sigprobe/internal/surface"
	"github.com/roach88/sigprobe/internal/testutil"
	"github.com/roach88/sigprobe/internal/validate"
)

var errUnsupported = errors.New("unsupported argument")

func newTestEngine(t *testing.T, profile ir.Profile, opts ...Option) *Engine {
	t.Helper()
	opts = append([]Option{
		WithWallClock(testutil.NewFixedClock(testutil.Epoch)),
		WithRunIDGenerator(testutil.NewFixedRunIDGenerator("run-test")),
	}, opts...)
	e, err := New(bindings.Default(), profile, opts...)
	require.NoError(t, err)
	return e
}

func signatureStrings(db *ir.EquationDatabase) []string {
	out := make([]string, len(db.Signatures))
	for i, s := range db.Signatures {
		out[i] = s.String()
	}
	return out
}

func TestRun_LinalgDiscovery(t *testing.T) {
	e := newTestEngine(t, ir.DefaultProfile())
	db, summary := e.Run()

	want := []string{
		"Vector2.angle() -> Scalar",
		"Vector2.cross(Vector2) -> Scalar",
		"Vector2.distanceTo(Vector2) -> Scalar",
		"Vector2.distanceToSquared(Vector2) -> Scalar",
		"Vector2.dot(Vector2) -> Scalar",
		"Vector2.length() -> Scalar",
		"Vector2.lengthSq() -> Scalar",
		"Vector2.manhattanLength() -> Scalar",
		"Vector2::angleBetween(Vector2, Vector2) -> Scalar",
		"Vector3.angleTo(Vector3) -> Scalar",
		"Vector3.distanceTo(Vector3) -> Scalar",
		"Vector3.distanceToSquared(Vector3) -> Scalar",
		"Vector3.dot(Vector3) -> Scalar",
		"Vector3.length() -> Scalar",
		"Vector3.lengthSq() -> Scalar",
		"Vector3.manhattanLength() -> Scalar",
		"Vector3::distance(Vector3, Vector3) -> Scalar",
		"Vector3::midpoint(Vector3, Vector3) -> Vector3",
		"Vector4.dot(Vector4) -> Scalar",
		"Vector4.length() -> Scalar",
		"Vector4.lengthSq() -> Scalar",
		"Vector4.manhattanLength() -> Scalar",
		"Quaternion.angleTo(Quaternion) -> Scalar",
		"Quaternion.dot(Quaternion) -> Scalar",
		"Quaternion.length() -> Scalar",
		"Quaternion.lengthSq() -> Scalar",
		"Quaternion::slerp(Quaternion, Quaternion, Scalar) -> Quaternion",
		"Matrix3.determinant() -> Scalar",
		"Matrix4.determinant() -> Scalar",
		"Matrix4.getMaxScaleOnAxis() -> Scalar",
		"Matrix4::product(Matrix4, Matrix4) -> Matrix4",
	}
	assert.Equal(t, want, signatureStrings(db))

	assert.Equal(t, ir.DatabaseVersion, db.Version)
	assert.Equal(t, ir.DefaultSource, db.Source)
	assert.Equal(t, testutil.Epoch, db.GeneratedAt)

	assert.Equal(t, "run-test", summary.RunID)
	assert.Equal(t, 7, summary.Owners)
	assert.Equal(t, 83, summary.Operations)
	assert.Equal(t, len(want), summary.Accepted)

	rejected := 0
	for _, n := range summary.Rejected {
		rejected += n
	}
	assert.Equal(t, summary.Attempts, summary.Accepted+rejected)
	assert.Positive(t, summary.Rejected[string(validate.ReasonFluent)])
	assert.Positive(t, summary.Rejected[string(validate.ReasonFault)])
	assert.Zero(t, summary.Rejected[string(validate.ReasonNotInvocable)])
}

func TestRun_Deterministic(t *testing.T) {
	profile := ir.DefaultProfile()
	profile.MaxArity = 2

	db1, s1 := newTestEngine(t, profile).Run()
	db2, s2 := newTestEngine(t, profile).Run()

	h1, err := ir.DatabaseHash(db1)
	require.NoError(t, err)
	h2, err := ir.DatabaseHash(db2)
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
	assert.Equal(t, db1, db2)
	assert.Equal(t, s1, s2)
}

func TestRun_ClockCountsAttempts(t *testing.T) {
	profile := ir.DefaultProfile()
	profile.Owners = []catalog.Type{catalog.Matrix3}
	profile.MaxArity = 1

	clock := NewClockAt(1000)
	_, summary := newTestEngine(t, profile, WithClock(clock)).Run()

	assert.Equal(t, int64(1000+summary.Attempts), clock.Current())
}

func TestRun_ArityPruning(t *testing.T) {
	var maxArgs int
	s := &surface.Surface{
		Owner: catalog.Vector3,
		Methods: map[string]surface.Method{
			"length": func(self any, args ...any) (any, error) {
				maxArgs = max(maxArgs, len(args))
				return 3.0, nil
			},
		},
	}
	r := surface.NewRegistry()
	r.MustRegister(s)

	e, err := New(r, ir.DefaultProfile(), WithRunIDGenerator(NewFixedGenerator("r")))
	require.NoError(t, err)
	db, summary := e.Run()

	require.Len(t, db.Signatures, 1)
	assert.Equal(t, "Vector3.length() -> Scalar", db.Signatures[0].String())
	assert.Equal(t, 1, summary.Attempts, "arity 0 succeeded, no larger arity is tried")
	assert.Zero(t, maxArgs)
}

func TestRun_MultipleTuplesAtMinimalArity(t *testing.T) {
	// lenient accepts any single argument whose first component changes
	// between variants, so every numeric type at arity 1 is accepted and
	// arity 2 is never tried.
	s := &surface.Surface{
		Owner: catalog.Scalar,
		Methods: map[string]surface.Method{
			"lenient": func(self any, args ...any) (any, error) {
				switch a := args[0].(type) {
				case float64:
					return a * 2, nil
				case bool:
					if a {
						return 1.0, nil
					}
					return 0.0, nil
				}
				return nil, errUnsupported
			},
		},
	}
	r := surface.NewRegistry()
	r.MustRegister(s)

	profile := ir.DefaultProfile()
	profile.MaxArity = 2
	e, err := New(r, profile, WithRunIDGenerator(NewFixedGenerator("r")))
	require.NoError(t, err)
	db, summary := e.Run()

	assert.Equal(t, []string{
		"Scalar.lenient(Scalar) -> Scalar",
		"Scalar.lenient(Boolean) -> Scalar",
	}, signatureStrings(db))
	assert.Equal(t, 10, summary.Attempts, "arity 0 once, then nine arity 1 tuples")
}

func TestRun_StaticOnlyOwnerFirst(t *testing.T) {
	var seen [][]catalog.Type
	s := &surface.Surface{
		Owner:   catalog.Vector3,
		Methods: map[string]surface.Method{},
		Statics: map[string]surface.Static{
			"probe": func(args ...any) (any, error) {
				tuple := make([]catalog.Type, len(args))
				for i, a := range args {
					tuple[i], _ = probe.Classify(a)
				}
				seen = append(seen, tuple)
				return nil, errUnsupported
			},
		},
	}
	r := surface.NewRegistry()
	r.MustRegister(s)

	profile := ir.DefaultProfile()
	profile.MaxArity = 2
	e, err := New(r, profile, WithRunIDGenerator(NewFixedGenerator("r")))
	require.NoError(t, err)
	_, summary := e.Run()

	// arity 1: (Vector3); arity 2: (Vector3, T) for all nine T.
	assert.Equal(t, 10, summary.Attempts)
	for _, tuple := range seen {
		require.NotEmpty(t, tuple)
		assert.Equal(t, catalog.Vector3, tuple[0])
	}
}

func TestRun_OwnerFilterKeepsCatalogOrder(t *testing.T) {
	profile := ir.DefaultProfile()
	profile.MaxArity = 1
	profile.Owners = []catalog.Type{catalog.Matrix4, catalog.Vector4}

	e := newTestEngine(t, profile)
	assert.Equal(t, []catalog.Type{catalog.Vector4, catalog.Matrix4}, e.Owners())

	db, summary := e.Run()
	assert.Equal(t, 2, summary.Owners)
	assert.Equal(t, []string{
		"Vector4.dot(Vector4) -> Scalar",
		"Vector4.length() -> Scalar",
		"Vector4.lengthSq() -> Scalar",
		"Vector4.manhattanLength() -> Scalar",
		"Matrix4.determinant() -> Scalar",
		"Matrix4.getMaxScaleOnAxis() -> Scalar",
	}, signatureStrings(db))
}

func TestRun_OwnerWithNoSignatures(t *testing.T) {
	profile := ir.DefaultProfile()
	profile.Owners = []catalog.Type{catalog.Euler}

	db, summary := newTestEngine(t, profile).Run()
	require.NotNil(t, db.Signatures)
	assert.Empty(t, db.Signatures)
	assert.Positive(t, summary.Attempts)
	assert.Zero(t, summary.Accepted)
}

func TestRun_Deny(t *testing.T) {
	profile := ir.DefaultProfile()
	profile.MaxArity = 1
	profile.Owners = []catalog.Type{catalog.Vector4}
	profile.Deny = []string{"dot", "manhattanLength"}

	e := newTestEngine(t, profile)
	methods, statics := e.Operations(catalog.Vector4)
	assert.NotContains(t, methods, "dot")
	assert.Empty(t, statics)

	db, _ := e.Run()
	assert.Equal(t, []string{
		"Vector4.length() -> Scalar",
		"Vector4.lengthSq() -> Scalar",
	}, signatureStrings(db))
}

func TestOperations(t *testing.T) {
	e := newTestEngine(t, ir.DefaultProfile())

	methods, statics := e.Operations(catalog.Vector3)
	assert.Contains(t, methods, "dot")
	assert.NotContains(t, methods, "clone")
	assert.NotContains(t, methods, "toString", "inherited structural names are denied too")
	assert.Equal(t, []string{"distance", "midpoint"}, statics)

	methods, statics = e.Operations(catalog.Scalar)
	assert.Empty(t, methods)
	assert.Empty(t, statics)
}

func TestNew_ConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ir.Profile)
		code   ConfigErrorCode
	}{
		{"negative arity", func(p *ir.Profile) { p.MaxArity = -1 }, ErrCodeInvalidArity},
		{"arity above limit", func(p *ir.Profile) { p.MaxArity = ir.MaxArityLimit + 1 }, ErrCodeInvalidArity},
		{"zero tolerance", func(p *ir.Profile) { p.Tolerance = 0 }, ErrCodeInvalidTolerance},
		{"unknown owner", func(p *ir.Profile) { p.Owners = []catalog.Type{catalog.Scalar} }, ErrCodeUnknownOwner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := ir.DefaultProfile()
			tt.mutate(&profile)

			e, err := New(bindings.Default(), profile)
			require.Error(t, err)
			assert.Nil(t, e)
			assert.True(t, IsConfigError(err))

			var ce *ConfigError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.code, ce.Code)
		})
	}
}

func TestIsUnknownOwner(t *testing.T) {
	profile := ir.DefaultProfile()
	profile.Owners = []catalog.Type{catalog.Boolean}

	_, err := New(bindings.Default(), profile)
	assert.True(t, IsUnknownOwner(err))
	assert.Contains(t, err.Error(), "Boolean")
	assert.False(t, IsUnknownOwner(nil))
}

func TestWithLogger_ProgressEvents(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	profile := ir.DefaultProfile()
	profile.Owners = []catalog.Type{catalog.Matrix3}
	profile.MaxArity = 1
	newTestEngine(t, profile, WithLogger(logger)).Run()

	out := buf.String()
	assert.Contains(t, out, `msg="discovery starting"`)
	assert.Contains(t, out, `msg="owner done" owner=Matrix3`)
	assert.Contains(t, out, `msg="signature accepted"`)
	assert.Contains(t, out, `signature="Matrix3.determinant() -> Scalar"`)
	assert.Contains(t, out, `msg="discovery complete"`)
	assert.NotContains(t, out, "candidate rejected", "rejections log at debug")
}
