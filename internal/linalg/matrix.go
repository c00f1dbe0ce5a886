package linalg

import "math"

// Matrix3 is a 3×3 matrix in column-major order.
type Matrix3 struct {
	Elements [9]float64
}

// Matrix4 is a 4×4 matrix in column-major order.
type Matrix4 struct {
	Elements [16]float64
}

// NewMatrix3 returns the identity.
func NewMatrix3() *Matrix3 {
	return new(Matrix3).Identity()
}

// NewMatrix4 returns the identity.
func NewMatrix4() *Matrix4 {
	return new(Matrix4).Identity()
}

func (m *Matrix3) Identity() *Matrix3 {
	m.Elements = [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}
	return m
}

func (m *Matrix3) Clone() *Matrix3 {
	c := *m
	return &c
}

func (m *Matrix3) Copy(n *Matrix3) *Matrix3 {
	*m = *n
	return m
}

func (m *Matrix3) Equals(n *Matrix3) bool {
	return m.Elements == n.Elements
}

func (m *Matrix3) ToArray() []float64 {
	return append([]float64(nil), m.Elements[:]...)
}

func (m *Matrix3) Determinant() float64 {
	return determinant(m.Elements[:], 3)
}

// Invert sets m to its inverse. A singular matrix becomes all zeros.
func (m *Matrix3) Invert() *Matrix3 {
	invert(m.Elements[:], 3)
	return m
}

func (m *Matrix3) Transpose() *Matrix3 {
	transpose(m.Elements[:], 3)
	return m
}

// Multiply sets m to m × n.
func (m *Matrix3) Multiply(n *Matrix3) *Matrix3 {
	multiply(m.Elements[:], m.Clone().Elements[:], n.Elements[:], 3)
	return m
}

// Premultiply sets m to n × m.
func (m *Matrix3) Premultiply(n *Matrix3) *Matrix3 {
	multiply(m.Elements[:], n.Elements[:], m.Clone().Elements[:], 3)
	return m
}

func (m *Matrix3) MultiplyScalar(s float64) *Matrix3 {
	for i := range m.Elements {
		m.Elements[i] *= s
	}
	return m
}

// SetFromMatrix4 copies the upper-left 3×3 block of n.
func (m *Matrix3) SetFromMatrix4(n *Matrix4) *Matrix3 {
	e := n.Elements
	m.Elements = [9]float64{
		e[0], e[1], e[2],
		e[4], e[5], e[6],
		e[8], e[9], e[10],
	}
	return m
}

func (m *Matrix4) Identity() *Matrix4 {
	m.Elements = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
	return m
}

func (m *Matrix4) Clone() *Matrix4 {
	c := *m
	return &c
}

func (m *Matrix4) Copy(n *Matrix4) *Matrix4 {
	*m = *n
	return m
}

func (m *Matrix4) Equals(n *Matrix4) bool {
	return m.Elements == n.Elements
}

func (m *Matrix4) ToArray() []float64 {
	return append([]float64(nil), m.Elements[:]...)
}

func (m *Matrix4) Determinant() float64 {
	return determinant(m.Elements[:], 4)
}

func (m *Matrix4) Invert() *Matrix4 {
	invert(m.Elements[:], 4)
	return m
}

func (m *Matrix4) Transpose() *Matrix4 {
	transpose(m.Elements[:], 4)
	return m
}

func (m *Matrix4) Multiply(n *Matrix4) *Matrix4 {
	multiply(m.Elements[:], m.Clone().Elements[:], n.Elements[:], 4)
	return m
}

func (m *Matrix4) Premultiply(n *Matrix4) *Matrix4 {
	multiply(m.Elements[:], n.Elements[:], m.Clone().Elements[:], 4)
	return m
}

func (m *Matrix4) MultiplyScalar(s float64) *Matrix4 {
	for i := range m.Elements {
		m.Elements[i] *= s
	}
	return m
}

// GetMaxScaleOnAxis returns the largest column length of the upper 3×3.
func (m *Matrix4) GetMaxScaleOnAxis() float64 {
	e := m.Elements
	sx := e[0]*e[0] + e[1]*e[1] + e[2]*e[2]
	sy := e[4]*e[4] + e[5]*e[5] + e[6]*e[6]
	sz := e[8]*e[8] + e[9]*e[9] + e[10]*e[10]
	return math.Sqrt(math.Max(sx, math.Max(sy, sz)))
}

// Compose sets m to the transform built from position, rotation and scale.
func (m *Matrix4) Compose(position *Vector3, q *Quaternion, scale *Vector3) *Matrix4 {
	x, y, z, w := q.X, q.Y, q.Z, q.W
	x2, y2, z2 := x+x, y+y, z+z
	xx, xy, xz := x*x2, x*y2, x*z2
	yy, yz, zz := y*y2, y*z2, z*z2
	wx, wy, wz := w*x2, w*y2, w*z2
	sx, sy, sz := scale.X, scale.Y, scale.Z

	m.Elements = [16]float64{
		(1 - (yy + zz)) * sx, (xy + wz) * sx, (xz - wy) * sx, 0,
		(xy - wz) * sy, (1 - (xx + zz)) * sy, (yz + wx) * sy, 0,
		(xz + wy) * sz, (yz - wx) * sz, (1 - (xx + yy)) * sz, 0,
		position.X, position.Y, position.Z, 1,
	}
	return m
}

func (m *Matrix4) MakeRotationFromQuaternion(q *Quaternion) *Matrix4 {
	return m.Compose(&Vector3{}, q, &Vector3{X: 1, Y: 1, Z: 1})
}

func (m *Matrix4) MakeRotationFromEuler(e *Euler) *Matrix4 {
	return m.MakeRotationFromQuaternion(new(Quaternion).SetFromEuler(e))
}

// Matrix4Product returns a new matrix a × b.
func Matrix4Product(a, b *Matrix4) *Matrix4 {
	return a.Clone().Multiply(b)
}

// at and set address element (row, col) of a column-major n×n slice.
func at(e []float64, n, row, col int) float64 {
	return e[col*n+row]
}

func set(e []float64, n, row, col int, v float64) {
	e[col*n+row] = v
}

func multiply(dst, a, b []float64, n int) {
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			var sum float64
			for k := 0; k < n; k++ {
				sum += at(a, n, r, k) * at(b, n, k, c)
			}
			set(dst, n, r, c, sum)
		}
	}
}

func transpose(e []float64, n int) {
	for r := 0; r < n; r++ {
		for c := r + 1; c < n; c++ {
			i, j := c*n+r, r*n+c
			e[i], e[j] = e[j], e[i]
		}
	}
}

// determinant uses Gaussian elimination with partial pivoting on a copy.
func determinant(e []float64, n int) float64 {
	a := append([]float64(nil), e...)
	det := 1.0
	for col := 0; col < n; col++ {
		pivot := col
		for r := col + 1; r < n; r++ {
			if math.Abs(at(a, n, r, col)) > math.Abs(at(a, n, pivot, col)) {
				pivot = r
			}
		}
		p := at(a, n, pivot, col)
		if p == 0 {
			return 0
		}
		if pivot != col {
			swapRows(a, n, pivot, col)
			det = -det
		}
		det *= p
		for r := col + 1; r < n; r++ {
			f := at(a, n, r, col) / p
			for c := col; c < n; c++ {
				set(a, n, r, c, at(a, n, r, c)-f*at(a, n, col, c))
			}
		}
	}
	return det
}

// invert replaces e with its inverse using Gauss-Jordan elimination.
// Singular input is zeroed, matching three.js.
func invert(e []float64, n int) {
	a := append([]float64(nil), e...)
	inv := make([]float64, n*n)
	for i := 0; i < n; i++ {
		set(inv, n, i, i, 1)
	}

	for col := 0; col < n; col++ {
		pivot := col
		for r := col + 1; r < n; r++ {
			if math.Abs(at(a, n, r, col)) > math.Abs(at(a, n, pivot, col)) {
				pivot = r
			}
		}
		p := at(a, n, pivot, col)
		if p == 0 {
			for i := range e {
				e[i] = 0
			}
			return
		}
		swapRows(a, n, pivot, col)
		swapRows(inv, n, pivot, col)

		for c := 0; c < n; c++ {
			set(a, n, col, c, at(a, n, col, c)/p)
			set(inv, n, col, c, at(inv, n, col, c)/p)
		}
		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			f := at(a, n, r, col)
			for c := 0; c < n; c++ {
				set(a, n, r, c, at(a, n, r, c)-f*at(a, n, col, c))
				set(inv, n, r, c, at(inv, n, r, c)-f*at(inv, n, col, c))
			}
		}
	}
	copy(e, inv)
}

func swapRows(e []float64, n, r1, r2 int) {
	if r1 == r2 {
		return
	}
	for c := 0; c < n; c++ {
		i, j := c*n+r1, c*n+r2
		e[i], e[j] = e[j], e[i]
	}
}
