// Package probe builds the deterministic test instances consumed by the
// signature validator and compares the values operations return.
//
// Every catalog type has two hard-coded baselines, A and B. Their components
// are non-zero, distinct per axis and deliberately not round, so that an
// accidental symmetry cannot make two different computations agree.
package probe

import (
	"github.com/roach88/sigprobe/internal/catalog"
	"github.com/roach88/sigprobe/internal/linalg"
)

// Variant selects one of the two baselines of a type.
type Variant uint8

const (
	VariantA Variant = iota
	VariantB
)

func (v Variant) String() string {
	if v == VariantB {
		return "B"
	}
	return "A"
}

// DefaultSharedPrefix returns the shared prefix used when the caller does not
// choose one. Quaternion and Vector4 share x, y and z between variants so only
// w differs: an operation that secretly reads a Vector3 then produces the same
// output for both variants.
func DefaultSharedPrefix(t catalog.Type) int {
	switch t {
	case catalog.Quaternion, catalog.Vector4:
		return 3
	default:
		return 0
	}
}

// baseline holds the per-type component tables. A variant's stride is added
// once per slot so that the receiver (slot 0) and each parameter position
// get distinct values within the same variant. The two strides have
// different norms: with a shared stride, distanceTo(receiver, argument)
// would equal the stride length in both variants and look insensitive.
type baseline struct {
	a, b   []float64
	sa, sb []float64
}

var baselines = map[catalog.Type]baseline{
	catalog.Scalar: {
		a:  []float64{0.75},
		b:  []float64{1.35},
		sa: []float64{0.5},
		sb: []float64{0.8},
	},
	catalog.Boolean: {
		a:  []float64{1},
		b:  []float64{0},
		sa: []float64{0},
		sb: []float64{0},
	},
	catalog.Vector2: {
		a:  []float64{1.3, 2.9},
		b:  []float64{3.7, 0.8},
		sa: []float64{1.1, 1.7},
		sb: []float64{0.6, 2.3},
	},
	catalog.Vector3: {
		a:  []float64{1.5, 2.7, 3.1},
		b:  []float64{2.3, 1.6, 4.4},
		sa: []float64{2.7, 3.1, 3.2},
		sb: []float64{1.7, 2.9, 0.9},
	},
	catalog.Vector4: {
		a:  []float64{1.15, 2.35, 3.55, 4.75},
		b:  []float64{2.45, 1.85, 4.05, 0.95},
		sa: []float64{0.9, 1.3, 0.7, 1.1},
		sb: []float64{1.2, 0.8, 1.6, 0.5},
	},
	// Quaternion components stay small so dot products between any two slots
	// remain inside (-1, 1) and angle computations do not saturate.
	catalog.Quaternion: {
		a:  []float64{0.11, 0.23, 0.31, 0.52},
		b:  []float64{0.19, 0.14, 0.27, 0.37},
		sa: []float64{0.05, 0.04, 0.03, 0.02},
		sb: []float64{0.03, 0.06, 0.02, 0.04},
	},
	catalog.Euler: {
		a:  []float64{0.35, 0.62, 0.81},
		b:  []float64{0.47, 0.29, 1.13},
		sa: []float64{0.13, 0.07, 0.11},
		sb: []float64{0.09, 0.15, 0.05},
	},
	// Matrices are diagonally dominant at every slot, hence invertible.
	catalog.Matrix3: {
		a:  []float64{7.3, 0.21, 0.34, 0.47, 8.1, 0.19, 0.28, 0.53, 9.4},
		b:  []float64{6.2, 0.37, 0.16, 0.29, 9.6, 0.41, 0.52, 0.24, 8.7},
		sa: []float64{1.7, 0.13, 0.11, 0.09, 1.7, 0.07, 0.05, 0.12, 1.7},
		sb: []float64{1.3, 0.08, 0.14, 0.11, 1.3, 0.05, 0.07, 0.09, 1.3},
	},
	catalog.Matrix4: {
		a: []float64{
			6.5, 0.23, 0.31, 0.17,
			0.42, 7.9, 0.26, 0.14,
			0.35, 0.48, 8.7, 0.22,
			0.57, 0.38, 0.44, 9.3,
		},
		b: []float64{
			5.8, 0.36, 0.19, 0.27,
			0.29, 8.4, 0.51, 0.12,
			0.46, 0.33, 9.1, 0.18,
			0.24, 0.59, 0.37, 7.6,
		},
		sa: []float64{
			1.9, 0.06, 0.08, 0.03,
			0.05, 1.9, 0.07, 0.04,
			0.09, 0.02, 1.9, 0.05,
			0.11, 0.07, 0.06, 1.9,
		},
		sb: []float64{
			1.6, 0.04, 0.09, 0.07,
			0.08, 1.6, 0.03, 0.06,
			0.05, 0.10, 1.6, 0.02,
			0.07, 0.04, 0.08, 1.6,
		},
	},
}

// Factory constructs test instances. The zero value is ready to use.
type Factory struct{}

// Create builds slot 0 of t with the default shared prefix for t.
func (Factory) Create(t catalog.Type, v Variant) any {
	return build(t, components(t, v, 0, DefaultSharedPrefix(t)))
}

// CreateShared builds slot 0 of t; the first k components come from the A
// baseline whatever the variant.
func (Factory) CreateShared(t catalog.Type, v Variant, k int) any {
	return build(t, components(t, v, 0, k))
}

// CreateAt builds the instance for a given slot (0 is the receiver, i+1 is
// parameter position i).
func (Factory) CreateAt(t catalog.Type, v Variant, slot, k int) any {
	return build(t, components(t, v, slot, k))
}

func components(t catalog.Type, v Variant, slot, k int) []float64 {
	base, ok := baselines[t]
	if !ok {
		panic("probe: no baseline for " + t.String())
	}

	out := make([]float64, len(base.a))
	for i := range out {
		src, stride := base.a, base.sa
		if v == VariantB && i >= k {
			src, stride = base.b, base.sb
		}
		out[i] = src[i] + float64(slot)*stride[i]
	}
	return out
}

func build(t catalog.Type, c []float64) any {
	switch t {
	case catalog.Scalar:
		return c[0]
	case catalog.Boolean:
		return c[0] != 0
	case catalog.Vector2:
		return linalg.NewVector2(c[0], c[1])
	case catalog.Vector3:
		return linalg.NewVector3(c[0], c[1], c[2])
	case catalog.Vector4:
		return linalg.NewVector4(c[0], c[1], c[2], c[3])
	case catalog.Quaternion:
		return linalg.NewQuaternion(c[0], c[1], c[2], c[3])
	case catalog.Euler:
		return linalg.NewEuler(c[0], c[1], c[2], linalg.OrderXYZ)
	case catalog.Matrix3:
		m := new(linalg.Matrix3)
		copy(m.Elements[:], c)
		return m
	case catalog.Matrix4:
		m := new(linalg.Matrix4)
		copy(m.Elements[:], c)
		return m
	default:
		panic("probe: cannot build " + t.String())
	}
}
