package linalg

import "math"

// Vector4 is a 4D (homogeneous) vector.
type Vector4 struct {
	X, Y, Z, W float64
}

// NewVector4 returns a new vector.
func NewVector4(x, y, z, w float64) *Vector4 {
	return &Vector4{X: x, Y: y, Z: z, W: w}
}

func (v *Vector4) Clone() *Vector4 {
	c := *v
	return &c
}

func (v *Vector4) Copy(w *Vector4) *Vector4 {
	*v = *w
	return v
}

func (v *Vector4) Equals(w *Vector4) bool {
	return *v == *w
}

func (v *Vector4) ToArray() []float64 {
	return []float64{v.X, v.Y, v.Z, v.W}
}

func (v *Vector4) Length() float64 {
	return math.Sqrt(v.LengthSq())
}

func (v *Vector4) LengthSq() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z + v.W*v.W
}

func (v *Vector4) ManhattanLength() float64 {
	return math.Abs(v.X) + math.Abs(v.Y) + math.Abs(v.Z) + math.Abs(v.W)
}

func (v *Vector4) Dot(w *Vector4) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z + v.W*w.W
}

func (v *Vector4) Add(w *Vector4) *Vector4 {
	v.X += w.X
	v.Y += w.Y
	v.Z += w.Z
	v.W += w.W
	return v
}

func (v *Vector4) Sub(w *Vector4) *Vector4 {
	v.X -= w.X
	v.Y -= w.Y
	v.Z -= w.Z
	v.W -= w.W
	return v
}

func (v *Vector4) MultiplyScalar(s float64) *Vector4 {
	v.X *= s
	v.Y *= s
	v.Z *= s
	v.W *= s
	return v
}

func (v *Vector4) Normalize() *Vector4 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.MultiplyScalar(1 / l)
}

func (v *Vector4) ApplyMatrix4(m *Matrix4) *Vector4 {
	e := m.Elements
	x, y, z, w := v.X, v.Y, v.Z, v.W
	v.X = e[0]*x + e[4]*y + e[8]*z + e[12]*w
	v.Y = e[1]*x + e[5]*y + e[9]*z + e[13]*w
	v.Z = e[2]*x + e[6]*y + e[10]*z + e[14]*w
	v.W = e[3]*x + e[7]*y + e[11]*z + e[15]*w
	return v
}
