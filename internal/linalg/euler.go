package linalg

import "math"

// Rotation orders understood by Euler.
const (
	OrderXYZ = "XYZ"
	OrderYXZ = "YXZ"
	OrderZXY = "ZXY"
	OrderZYX = "ZYX"
	OrderYZX = "YZX"
	OrderXZY = "XZY"
)

// Euler is a rotation expressed as three angles (radians) applied in Order.
type Euler struct {
	X, Y, Z float64
	Order   string
}

// NewEuler returns an Euler triple. An empty order means XYZ.
func NewEuler(x, y, z float64, order string) *Euler {
	if order == "" {
		order = OrderXYZ
	}
	return &Euler{X: x, Y: y, Z: z, Order: order}
}

func (e *Euler) Clone() *Euler {
	c := *e
	return &c
}

func (e *Euler) Copy(f *Euler) *Euler {
	*e = *f
	return e
}

func (e *Euler) Equals(f *Euler) bool {
	return *e == *f
}

// SetFromRotationMatrix decomposes the upper 3×3 of m in XYZ order.
func (e *Euler) SetFromRotationMatrix(m *Matrix4) *Euler {
	te := m.Elements
	m11, m12, m13 := te[0], te[4], te[8]
	m22, m23 := te[5], te[9]
	m32, m33 := te[6], te[10]

	e.Y = math.Asin(clamp(m13, -1, 1))
	if math.Abs(m13) < 0.9999999 {
		e.X = math.Atan2(-m23, m33)
		e.Z = math.Atan2(-m12, m11)
	} else {
		e.X = math.Atan2(m32, m22)
		e.Z = 0
	}
	e.Order = OrderXYZ
	return e
}

func (e *Euler) SetFromQuaternion(q *Quaternion) *Euler {
	return e.SetFromRotationMatrix(new(Matrix4).MakeRotationFromQuaternion(q))
}
