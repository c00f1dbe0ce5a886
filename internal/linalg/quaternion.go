package linalg

import "math"

// Quaternion represents a rotation as (x, y, z, w).
type Quaternion struct {
	X, Y, Z, W float64
}

// NewQuaternion returns a new quaternion. The identity is (0, 0, 0, 1).
func NewQuaternion(x, y, z, w float64) *Quaternion {
	return &Quaternion{X: x, Y: y, Z: z, W: w}
}

func (q *Quaternion) Clone() *Quaternion {
	c := *q
	return &c
}

func (q *Quaternion) Copy(r *Quaternion) *Quaternion {
	*q = *r
	return q
}

func (q *Quaternion) Equals(r *Quaternion) bool {
	return *q == *r
}

func (q *Quaternion) ToArray() []float64 {
	return []float64{q.X, q.Y, q.Z, q.W}
}

func (q *Quaternion) Length() float64 {
	return math.Sqrt(q.LengthSq())
}

func (q *Quaternion) LengthSq() float64 {
	return q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W
}

func (q *Quaternion) Dot(r *Quaternion) float64 {
	return q.X*r.X + q.Y*r.Y + q.Z*r.Z + q.W*r.W
}

// AngleTo returns the rotation angle between q and r.
func (q *Quaternion) AngleTo(r *Quaternion) float64 {
	return 2 * math.Acos(math.Abs(clamp(q.Dot(r), -1, 1)))
}

func (q *Quaternion) Normalize() *Quaternion {
	l := q.Length()
	if l == 0 {
		q.X, q.Y, q.Z, q.W = 0, 0, 0, 1
		return q
	}
	l = 1 / l
	q.X *= l
	q.Y *= l
	q.Z *= l
	q.W *= l
	return q
}

func (q *Quaternion) Conjugate() *Quaternion {
	q.X, q.Y, q.Z = -q.X, -q.Y, -q.Z
	return q
}

// Invert assumes q is a unit quaternion, like three.js.
func (q *Quaternion) Invert() *Quaternion {
	return q.Conjugate()
}

// Multiply sets q to q × r.
func (q *Quaternion) Multiply(r *Quaternion) *Quaternion {
	return q.multiplyQuaternions(q.Clone(), r)
}

// Premultiply sets q to r × q.
func (q *Quaternion) Premultiply(r *Quaternion) *Quaternion {
	return q.multiplyQuaternions(r, q.Clone())
}

func (q *Quaternion) multiplyQuaternions(a, b *Quaternion) *Quaternion {
	ax, ay, az, aw := a.X, a.Y, a.Z, a.W
	bx, by, bz, bw := b.X, b.Y, b.Z, b.W
	q.X = ax*bw + aw*bx + ay*bz - az*by
	q.Y = ay*bw + aw*by + az*bx - ax*bz
	q.Z = az*bw + aw*bz + ax*by - ay*bx
	q.W = aw*bw - ax*bx - ay*by - az*bz
	return q
}

// Slerp interpolates q towards r by t along the shortest arc.
func (q *Quaternion) Slerp(r *Quaternion, t float64) *Quaternion {
	if t == 0 {
		return q
	}
	if t == 1 {
		return q.Copy(r)
	}

	x, y, z, w := q.X, q.Y, q.Z, q.W
	cosHalf := w*r.W + x*r.X + y*r.Y + z*r.Z
	if cosHalf < 0 {
		q.X, q.Y, q.Z, q.W = -r.X, -r.Y, -r.Z, -r.W
		cosHalf = -cosHalf
	} else {
		q.Copy(r)
	}

	if cosHalf >= 1 {
		q.X, q.Y, q.Z, q.W = x, y, z, w
		return q
	}

	sqrSin := 1 - cosHalf*cosHalf
	if sqrSin <= 1e-12 {
		s := 1 - t
		q.X = s*x + t*q.X
		q.Y = s*y + t*q.Y
		q.Z = s*z + t*q.Z
		q.W = s*w + t*q.W
		return q.Normalize()
	}

	sinHalf := math.Sqrt(sqrSin)
	halfTheta := math.Atan2(sinHalf, cosHalf)
	ratioA := math.Sin((1-t)*halfTheta) / sinHalf
	ratioB := math.Sin(t*halfTheta) / sinHalf

	q.X = x*ratioA + q.X*ratioB
	q.Y = y*ratioA + q.Y*ratioB
	q.Z = z*ratioA + q.Z*ratioB
	q.W = w*ratioA + q.W*ratioB
	return q
}

// SetFromAxisAngle assumes axis is normalized.
func (q *Quaternion) SetFromAxisAngle(axis *Vector3, angle float64) *Quaternion {
	s := math.Sin(angle / 2)
	q.X, q.Y, q.Z, q.W = axis.X*s, axis.Y*s, axis.Z*s, math.Cos(angle/2)
	return q
}

// SetFromEuler honours the rotation order of e.
func (q *Quaternion) SetFromEuler(e *Euler) *Quaternion {
	c1, c2, c3 := math.Cos(e.X/2), math.Cos(e.Y/2), math.Cos(e.Z/2)
	s1, s2, s3 := math.Sin(e.X/2), math.Sin(e.Y/2), math.Sin(e.Z/2)

	switch e.Order {
	case OrderYXZ:
		q.X = s1*c2*c3 + c1*s2*s3
		q.Y = c1*s2*c3 - s1*c2*s3
		q.Z = c1*c2*s3 - s1*s2*c3
		q.W = c1*c2*c3 + s1*s2*s3
	case OrderZXY:
		q.X = s1*c2*c3 - c1*s2*s3
		q.Y = c1*s2*c3 + s1*c2*s3
		q.Z = c1*c2*s3 + s1*s2*c3
		q.W = c1*c2*c3 - s1*s2*s3
	case OrderZYX:
		q.X = s1*c2*c3 - c1*s2*s3
		q.Y = c1*s2*c3 + s1*c2*s3
		q.Z = c1*c2*s3 - s1*s2*c3
		q.W = c1*c2*c3 + s1*s2*s3
	case OrderYZX:
		q.X = s1*c2*c3 + c1*s2*s3
		q.Y = c1*s2*c3 + s1*c2*s3
		q.Z = c1*c2*s3 - s1*s2*c3
		q.W = c1*c2*c3 - s1*s2*s3
	case OrderXZY:
		q.X = s1*c2*c3 - c1*s2*s3
		q.Y = c1*s2*c3 - s1*c2*s3
		q.Z = c1*c2*s3 + s1*s2*c3
		q.W = c1*c2*c3 + s1*s2*s3
	default: // XYZ
		q.X = s1*c2*c3 + c1*s2*s3
		q.Y = c1*s2*c3 - s1*c2*s3
		q.Z = c1*c2*s3 + s1*s2*c3
		q.W = c1*c2*c3 - s1*s2*s3
	}
	return q
}

// SetFromRotationMatrix reads the upper 3×3 of m, which must be a pure
// rotation.
func (q *Quaternion) SetFromRotationMatrix(m *Matrix4) *Quaternion {
	te := m.Elements
	m11, m12, m13 := te[0], te[4], te[8]
	m21, m22, m23 := te[1], te[5], te[9]
	m31, m32, m33 := te[2], te[6], te[10]
	trace := m11 + m22 + m33

	switch {
	case trace > 0:
		s := 0.5 / math.Sqrt(trace+1)
		q.W = 0.25 / s
		q.X = (m32 - m23) * s
		q.Y = (m13 - m31) * s
		q.Z = (m21 - m12) * s
	case m11 > m22 && m11 > m33:
		s := 2 * math.Sqrt(1+m11-m22-m33)
		q.W = (m32 - m23) / s
		q.X = 0.25 * s
		q.Y = (m12 + m21) / s
		q.Z = (m13 + m31) / s
	case m22 > m33:
		s := 2 * math.Sqrt(1+m22-m11-m33)
		q.W = (m13 - m31) / s
		q.X = (m12 + m21) / s
		q.Y = 0.25 * s
		q.Z = (m23 + m32) / s
	default:
		s := 2 * math.Sqrt(1+m33-m11-m22)
		q.W = (m21 - m12) / s
		q.X = (m13 + m31) / s
		q.Y = (m23 + m32) / s
		q.Z = 0.25 * s
	}
	return q
}

// QuaternionSlerp returns a new quaternion between a and b without touching
// either input.
func QuaternionSlerp(a, b *Quaternion, t float64) *Quaternion {
	return a.Clone().Slerp(b, t)
}
