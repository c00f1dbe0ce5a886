package probe

import (
	"math"

	"github.com/roach88/sigprobe/internal/catalog"
	"github.com/roach88/sigprobe/internal/linalg"
)

// DefaultTolerance is the absolute tolerance used by Equal.
const DefaultTolerance = 1e-4

// Classify maps a returned value onto the catalog by structural matching.
// Absent values (nil) and foreign types report ok=false.
func Classify(v any) (catalog.Type, bool) {
	switch x := v.(type) {
	case float64:
		return catalog.Scalar, true
	case bool:
		return catalog.Boolean, true
	case *linalg.Vector2:
		return catalog.Vector2, x != nil
	case *linalg.Vector3:
		return catalog.Vector3, x != nil
	case *linalg.Vector4:
		return catalog.Vector4, x != nil
	case *linalg.Quaternion:
		return catalog.Quaternion, x != nil
	case *linalg.Euler:
		return catalog.Euler, x != nil
	case *linalg.Matrix3:
		return catalog.Matrix3, x != nil
	case *linalg.Matrix4:
		return catalog.Matrix4, x != nil
	default:
		return catalog.None, false
	}
}

// Components returns the flat component view of a catalog value, or nil if
// v is not one. Booleans map to 1 and 0.
func Components(v any) []float64 {
	switch x := v.(type) {
	case float64:
		return []float64{x}
	case bool:
		if x {
			return []float64{1}
		}
		return []float64{0}
	case *linalg.Vector2:
		return []float64{x.X, x.Y}
	case *linalg.Vector3:
		return []float64{x.X, x.Y, x.Z}
	case *linalg.Vector4:
		return []float64{x.X, x.Y, x.Z, x.W}
	case *linalg.Quaternion:
		return []float64{x.X, x.Y, x.Z, x.W}
	case *linalg.Euler:
		return []float64{x.X, x.Y, x.Z}
	case *linalg.Matrix3:
		return append([]float64(nil), x.Elements[:]...)
	case *linalg.Matrix4:
		return append([]float64(nil), x.Elements[:]...)
	default:
		return nil
	}
}

// Equal compares two values of catalog type t with an absolute tolerance.
// Vectors, quaternions and Euler triples compare component-wise (an Euler's
// rotation order must match too), matrices element-wise. Two NaNs at the
// same index compare equal, a NaN against a number does not. Values whose
// type does not match t are unequal.
func Equal(t catalog.Type, a, b any, tol float64) bool {
	ta, okA := Classify(a)
	tb, okB := Classify(b)
	if !okA || !okB || ta != t || tb != t {
		return false
	}

	if t == catalog.Boolean {
		return a.(bool) == b.(bool)
	}
	if t == catalog.Euler && a.(*linalg.Euler).Order != b.(*linalg.Euler).Order {
		return false
	}

	ca, cb := Components(a), Components(b)
	if len(ca) != len(cb) {
		return false
	}
	for i := range ca {
		if math.IsNaN(ca[i]) && math.IsNaN(cb[i]) {
			continue
		}
		if !(math.Abs(ca[i]-cb[i]) <= tol) {
			return false
		}
	}
	return true
}
