package linalg

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const eps = 1e-9

func TestVector3_Queries(t *testing.T) {
	v := NewVector3(1.5, 2.7, 3.1)
	w := NewVector3(4.2, 5.8, 6.3)

	assert.InDelta(t, 1.5*4.2+2.7*5.8+3.1*6.3, v.Dot(w), eps)
	assert.InDelta(t, math.Sqrt(1.5*1.5+2.7*2.7+3.1*3.1), v.Length(), eps)
	assert.InDelta(t, 7.3, v.ManhattanLength(), eps)
	assert.InDelta(t, math.Sqrt(2.7*2.7+3.1*3.1+3.2*3.2), v.DistanceTo(w), eps)
	assert.InDelta(t, 0, v.AngleTo(v.Clone()), 1e-6)
}

func TestVector3_FluentReturnsReceiver(t *testing.T) {
	v := NewVector3(1, 2, 3)
	assert.Same(t, v, v.Add(NewVector3(1, 1, 1)))
	assert.Same(t, v, v.Normalize())
	assert.InDelta(t, 1, v.Length(), eps)
}

func TestVector3_Cross(t *testing.T) {
	v := NewVector3(1, 0, 0).Cross(NewVector3(0, 1, 0))
	assert.Equal(t, Vector3{X: 0, Y: 0, Z: 1}, *v)
}

func TestVector3_ApplyQuaternion(t *testing.T) {
	q := new(Quaternion).SetFromAxisAngle(NewVector3(0, 0, 1), math.Pi/2)
	v := NewVector3(1, 0, 0).ApplyQuaternion(q)
	assert.InDelta(t, 0, v.X, eps)
	assert.InDelta(t, 1, v.Y, eps)
	assert.InDelta(t, 0, v.Z, eps)
}

func TestVector3_ApplyMatrix4Identity(t *testing.T) {
	v := NewVector3(1.5, 2.7, 3.1).ApplyMatrix4(NewMatrix4())
	assert.Equal(t, Vector3{X: 1.5, Y: 2.7, Z: 3.1}, *v)
}

func TestVector2_Queries(t *testing.T) {
	v := NewVector2(3, 4)
	assert.InDelta(t, 5, v.Length(), eps)
	assert.InDelta(t, -4, v.Cross(NewVector2(0, 0).Add(NewVector2(1, 0))), eps)
	assert.InDelta(t, math.Pi/2, Vector2AngleBetween(NewVector2(1, 0), NewVector2(0, 2)), eps)
}

func TestQuaternion_MultiplyIdentity(t *testing.T) {
	q := NewQuaternion(0.11, 0.23, 0.31, 0.52)
	got := q.Clone().Multiply(NewQuaternion(0, 0, 0, 1))
	assert.InDelta(t, q.X, got.X, eps)
	assert.InDelta(t, q.W, got.W, eps)
}

func TestQuaternion_EulerRoundTrip(t *testing.T) {
	e := NewEuler(0.35, 0.62, 0.81, "")
	q := new(Quaternion).SetFromEuler(e)
	back := new(Euler).SetFromQuaternion(q)
	assert.InDelta(t, e.X, back.X, 1e-9)
	assert.InDelta(t, e.Y, back.Y, 1e-9)
	assert.InDelta(t, e.Z, back.Z, 1e-9)
}

func TestQuaternion_Slerp(t *testing.T) {
	a := NewQuaternion(0, 0, 0, 1)
	b := new(Quaternion).SetFromAxisAngle(NewVector3(0, 1, 0), math.Pi/2)
	mid := QuaternionSlerp(a, b, 0.5)
	assert.InDelta(t, math.Pi/4, a.AngleTo(mid), 1e-9)
	assert.Equal(t, Quaternion{W: 1}, *a, "inputs must not change")
}

func TestMatrix_DeterminantAndInverse(t *testing.T) {
	m := &Matrix3{Elements: [9]float64{2, 0, 0, 0, 3, 0, 0, 0, 4}}
	assert.InDelta(t, 24, m.Determinant(), eps)

	inv := m.Clone().Invert()
	prod := m.Clone().Multiply(inv)
	for i, want := range NewMatrix3().Elements {
		assert.InDelta(t, want, prod.Elements[i], eps)
	}

	singular := &Matrix4{}
	assert.Equal(t, 0.0, singular.Determinant())
	assert.Equal(t, [16]float64{}, singular.Invert().Elements)
}

func TestMatrix4_InverseGeneral(t *testing.T) {
	m := &Matrix4{Elements: [16]float64{
		6.5, 0.23, 0.31, 0.17,
		0.42, 7.9, 0.26, 0.14,
		0.35, 0.48, 8.7, 0.22,
		0.57, 0.38, 0.44, 9.3,
	}}
	prod := Matrix4Product(m, m.Clone().Invert())
	for i, want := range NewMatrix4().Elements {
		assert.InDelta(t, want, prod.Elements[i], 1e-9)
	}
	assert.InDelta(t, m.Determinant(), m.Clone().Transpose().Determinant(), 1e-9)
}

func TestMatrix3_SetFromMatrix4(t *testing.T) {
	m := new(Matrix3).SetFromMatrix4(NewMatrix4())
	assert.Equal(t, NewMatrix3().Elements, m.Elements)
}

func TestMatrix4_Compose(t *testing.T) {
	m := new(Matrix4).Compose(NewVector3(1, 2, 3), NewQuaternion(0, 0, 0, 1), NewVector3(2, 2, 2))
	assert.InDelta(t, 2, m.GetMaxScaleOnAxis(), eps)
	assert.Equal(t, 1.0, m.Elements[12])
	assert.Equal(t, 3.0, m.Elements[14])
}
