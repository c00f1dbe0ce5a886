package linalg

import "math"

// Vector3 is a 3D vector.
type Vector3 struct {
	X, Y, Z float64
}

// NewVector3 returns a new vector.
func NewVector3(x, y, z float64) *Vector3 {
	return &Vector3{X: x, Y: y, Z: z}
}

func (v *Vector3) Set(x, y, z float64) *Vector3 {
	v.X, v.Y, v.Z = x, y, z
	return v
}

func (v *Vector3) Clone() *Vector3 {
	return &Vector3{X: v.X, Y: v.Y, Z: v.Z}
}

func (v *Vector3) Copy(w *Vector3) *Vector3 {
	v.X, v.Y, v.Z = w.X, w.Y, w.Z
	return v
}

func (v *Vector3) Equals(w *Vector3) bool {
	return v.X == w.X && v.Y == w.Y && v.Z == w.Z
}

func (v *Vector3) ToArray() []float64 {
	return []float64{v.X, v.Y, v.Z}
}

func (v *Vector3) Length() float64 {
	return math.Sqrt(v.LengthSq())
}

func (v *Vector3) LengthSq() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func (v *Vector3) ManhattanLength() float64 {
	return math.Abs(v.X) + math.Abs(v.Y) + math.Abs(v.Z)
}

func (v *Vector3) Dot(w *Vector3) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

func (v *Vector3) DistanceTo(w *Vector3) float64 {
	return math.Sqrt(v.DistanceToSquared(w))
}

func (v *Vector3) DistanceToSquared(w *Vector3) float64 {
	dx, dy, dz := v.X-w.X, v.Y-w.Y, v.Z-w.Z
	return dx*dx + dy*dy + dz*dz
}

// AngleTo returns the unsigned angle between v and w in radians.
func (v *Vector3) AngleTo(w *Vector3) float64 {
	denom := math.Sqrt(v.LengthSq() * w.LengthSq())
	if denom == 0 {
		return math.Pi / 2
	}
	return math.Acos(clamp(v.Dot(w)/denom, -1, 1))
}

func (v *Vector3) Add(w *Vector3) *Vector3 {
	v.X += w.X
	v.Y += w.Y
	v.Z += w.Z
	return v
}

func (v *Vector3) Sub(w *Vector3) *Vector3 {
	v.X -= w.X
	v.Y -= w.Y
	v.Z -= w.Z
	return v
}

func (v *Vector3) MultiplyScalar(s float64) *Vector3 {
	v.X *= s
	v.Y *= s
	v.Z *= s
	return v
}

func (v *Vector3) Negate() *Vector3 {
	v.X, v.Y, v.Z = -v.X, -v.Y, -v.Z
	return v
}

func (v *Vector3) Normalize() *Vector3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.MultiplyScalar(1 / l)
}

// Cross sets v to v × w.
func (v *Vector3) Cross(w *Vector3) *Vector3 {
	return v.CrossVectors(v.Clone(), w)
}

// CrossVectors sets v to a × b.
func (v *Vector3) CrossVectors(a, b *Vector3) *Vector3 {
	ax, ay, az := a.X, a.Y, a.Z
	bx, by, bz := b.X, b.Y, b.Z
	v.X = ay*bz - az*by
	v.Y = az*bx - ax*bz
	v.Z = ax*by - ay*bx
	return v
}

func (v *Vector3) Lerp(w *Vector3, alpha float64) *Vector3 {
	v.X += (w.X - v.X) * alpha
	v.Y += (w.Y - v.Y) * alpha
	v.Z += (w.Z - v.Z) * alpha
	return v
}

// ProjectOnVector projects v onto w. Projecting onto a zero vector yields zero.
func (v *Vector3) ProjectOnVector(w *Vector3) *Vector3 {
	denom := w.LengthSq()
	if denom == 0 {
		return v.Set(0, 0, 0)
	}
	s := w.Dot(v) / denom
	return v.Copy(w).MultiplyScalar(s)
}

func (v *Vector3) ApplyMatrix3(m *Matrix3) *Vector3 {
	e := m.Elements
	x, y, z := v.X, v.Y, v.Z
	v.X = e[0]*x + e[3]*y + e[6]*z
	v.Y = e[1]*x + e[4]*y + e[7]*z
	v.Z = e[2]*x + e[5]*y + e[8]*z
	return v
}

// ApplyMatrix4 treats v as a point and applies the perspective divide.
func (v *Vector3) ApplyMatrix4(m *Matrix4) *Vector3 {
	e := m.Elements
	x, y, z := v.X, v.Y, v.Z
	w := 1 / (e[3]*x + e[7]*y + e[11]*z + e[15])
	v.X = (e[0]*x + e[4]*y + e[8]*z + e[12]) * w
	v.Y = (e[1]*x + e[5]*y + e[9]*z + e[13]) * w
	v.Z = (e[2]*x + e[6]*y + e[10]*z + e[14]) * w
	return v
}

// ApplyQuaternion rotates v by q.
func (v *Vector3) ApplyQuaternion(q *Quaternion) *Vector3 {
	vx, vy, vz := v.X, v.Y, v.Z
	qx, qy, qz, qw := q.X, q.Y, q.Z, q.W

	tx := 2 * (qy*vz - qz*vy)
	ty := 2 * (qz*vx - qx*vz)
	tz := 2 * (qx*vy - qy*vx)

	v.X = vx + qw*tx + qy*tz - qz*ty
	v.Y = vy + qw*ty + qz*tx - qx*tz
	v.Z = vz + qw*tz + qx*ty - qy*tx
	return v
}

func (v *Vector3) ApplyEuler(e *Euler) *Vector3 {
	return v.ApplyQuaternion(new(Quaternion).SetFromEuler(e))
}

// Vector3Midpoint returns a new vector halfway between a and b.
func Vector3Midpoint(a, b *Vector3) *Vector3 {
	return a.Clone().Lerp(b, 0.5)
}

// Vector3Distance is the owner-level form of DistanceTo.
func Vector3Distance(a, b *Vector3) float64 {
	return a.DistanceTo(b)
}
