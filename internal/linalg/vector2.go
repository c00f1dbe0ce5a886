package linalg

import "math"

// Vector2 is a 2D vector.
type Vector2 struct {
	X, Y float64
}

// NewVector2 returns a new vector.
func NewVector2(x, y float64) *Vector2 {
	return &Vector2{X: x, Y: y}
}

// Set assigns both components.
func (v *Vector2) Set(x, y float64) *Vector2 {
	v.X, v.Y = x, y
	return v
}

// Clone returns a copy of v.
func (v *Vector2) Clone() *Vector2 {
	return &Vector2{X: v.X, Y: v.Y}
}

// Copy copies w into v.
func (v *Vector2) Copy(w *Vector2) *Vector2 {
	v.X, v.Y = w.X, w.Y
	return v
}

// Equals reports exact component equality.
func (v *Vector2) Equals(w *Vector2) bool {
	return v.X == w.X && v.Y == w.Y
}

// ToArray returns the components as a slice.
func (v *Vector2) ToArray() []float64 {
	return []float64{v.X, v.Y}
}

func (v *Vector2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

func (v *Vector2) LengthSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

func (v *Vector2) ManhattanLength() float64 {
	return math.Abs(v.X) + math.Abs(v.Y)
}

// Angle returns the angle of v against the positive x axis in [0, 2π).
func (v *Vector2) Angle() float64 {
	return math.Atan2(-v.Y, -v.X) + math.Pi
}

func (v *Vector2) Dot(w *Vector2) float64 {
	return v.X*w.X + v.Y*w.Y
}

// Cross returns the z component of the 3D cross product.
func (v *Vector2) Cross(w *Vector2) float64 {
	return v.X*w.Y - v.Y*w.X
}

func (v *Vector2) DistanceTo(w *Vector2) float64 {
	return math.Sqrt(v.DistanceToSquared(w))
}

func (v *Vector2) DistanceToSquared(w *Vector2) float64 {
	dx, dy := v.X-w.X, v.Y-w.Y
	return dx*dx + dy*dy
}

func (v *Vector2) Add(w *Vector2) *Vector2 {
	v.X += w.X
	v.Y += w.Y
	return v
}

func (v *Vector2) Sub(w *Vector2) *Vector2 {
	v.X -= w.X
	v.Y -= w.Y
	return v
}

func (v *Vector2) MultiplyScalar(s float64) *Vector2 {
	v.X *= s
	v.Y *= s
	return v
}

func (v *Vector2) Negate() *Vector2 {
	v.X, v.Y = -v.X, -v.Y
	return v
}

// Normalize scales v to unit length. A zero vector stays zero.
func (v *Vector2) Normalize() *Vector2 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.MultiplyScalar(1 / l)
}

func (v *Vector2) Lerp(w *Vector2, alpha float64) *Vector2 {
	v.X += (w.X - v.X) * alpha
	v.Y += (w.Y - v.Y) * alpha
	return v
}

// ApplyMatrix3 treats v as a homogeneous point (x, y, 1).
func (v *Vector2) ApplyMatrix3(m *Matrix3) *Vector2 {
	e := m.Elements
	x, y := v.X, v.Y
	v.X = e[0]*x + e[3]*y + e[6]
	v.Y = e[1]*x + e[4]*y + e[7]
	return v
}

// Vector2AngleBetween returns the unsigned angle between a and b.
func Vector2AngleBetween(a, b *Vector2) float64 {
	denom := math.Sqrt(a.LengthSq() * b.LengthSq())
	if denom == 0 {
		return math.Pi / 2
	}
	return math.Acos(clamp(a.Dot(b)/denom, -1, 1))
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
