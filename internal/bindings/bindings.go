// Package bindings exposes the linalg library as operation surfaces.
//
// Each owner type gets a capability table mapping the three.js-style
// operation name (camelCase) to an adapter around the Go method. The tables
// list every public method, including the structural ones (clone, copy,
// equals, set, toArray): filtering those is the enumerator's job, not the
// binding's.
package bindings

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/sigprobe/internal/catalog"
	"github.com/roach88/sigprobe/internal/linalg"
	"github.com/roach88/sigprobe/internal/surface"
)

// object returns the shared parent surface every linalg owner inherits from.
func object(owner catalog.Type) *surface.Surface {
	return &surface.Surface{
		Owner: owner,
		Methods: map[string]surface.Method{
			"toString": func(self any, _ ...any) (any, error) {
				return fmt.Sprintf("%v", self), nil
			},
			"toJSON": func(self any, _ ...any) (any, error) {
				b, err := json.Marshal(self)
				if err != nil {
					return nil, err
				}
				return string(b), nil
			},
		},
	}
}

// Default returns a registry with a surface for every linalg owner type.
func Default() *surface.Registry {
	r := surface.NewRegistry()
	r.MustRegister(Vector2())
	r.MustRegister(Vector3())
	r.MustRegister(Vector4())
	r.MustRegister(Quaternion())
	r.MustRegister(Euler())
	r.MustRegister(Matrix3())
	r.MustRegister(Matrix4())
	return r
}

// Vector2 describes *linalg.Vector2.
func Vector2() *surface.Surface {
	type V = *linalg.Vector2
	return &surface.Surface{
		Owner:  catalog.Vector2,
		Parent: object(catalog.Vector2),
		Methods: map[string]surface.Method{
			"set":               method2(V.Set),
			"clone":             method0(V.Clone),
			"copy":              method1(V.Copy),
			"equals":            method1(V.Equals),
			"toArray":           method0(V.ToArray),
			"length":            method0(V.Length),
			"lengthSq":          method0(V.LengthSq),
			"manhattanLength":   method0(V.ManhattanLength),
			"angle":             method0(V.Angle),
			"dot":               method1(V.Dot),
			"cross":             method1(V.Cross),
			"distanceTo":        method1(V.DistanceTo),
			"distanceToSquared": method1(V.DistanceToSquared),
			"add":               method1(V.Add),
			"sub":               method1(V.Sub),
			"multiplyScalar":    method1(V.MultiplyScalar),
			"negate":            method0(V.Negate),
			"normalize":         method0(V.Normalize),
			"lerp":              method2(V.Lerp),
			"applyMatrix3":      method1(V.ApplyMatrix3),
		},
		Statics: map[string]surface.Static{
			"angleBetween": static2(linalg.Vector2AngleBetween),
		},
	}
}

// Vector3 describes *linalg.Vector3.
func Vector3() *surface.Surface {
	type V = *linalg.Vector3
	return &surface.Surface{
		Owner:  catalog.Vector3,
		Parent: object(catalog.Vector3),
		Methods: map[string]surface.Method{
			"set":               method3(V.Set),
			"clone":             method0(V.Clone),
			"copy":              method1(V.Copy),
			"equals":            method1(V.Equals),
			"toArray":           method0(V.ToArray),
			"length":            method0(V.Length),
			"lengthSq":          method0(V.LengthSq),
			"manhattanLength":   method0(V.ManhattanLength),
			"dot":               method1(V.Dot),
			"distanceTo":        method1(V.DistanceTo),
			"distanceToSquared": method1(V.DistanceToSquared),
			"angleTo":           method1(V.AngleTo),
			"add":               method1(V.Add),
			"sub":               method1(V.Sub),
			"multiplyScalar":    method1(V.MultiplyScalar),
			"negate":            method0(V.Negate),
			"normalize":         method0(V.Normalize),
			"cross":             method1(V.Cross),
			"crossVectors":      method2(V.CrossVectors),
			"lerp":              method2(V.Lerp),
			"projectOnVector":   method1(V.ProjectOnVector),
			"applyMatrix3":      method1(V.ApplyMatrix3),
			"applyMatrix4":      method1(V.ApplyMatrix4),
			"applyQuaternion":   method1(V.ApplyQuaternion),
			"applyEuler":        method1(V.ApplyEuler),
		},
		Statics: map[string]surface.Static{
			"midpoint": static2(linalg.Vector3Midpoint),
			"distance": static2(linalg.Vector3Distance),
		},
	}
}

// Vector4 describes *linalg.Vector4.
func Vector4() *surface.Surface {
	type V = *linalg.Vector4
	return &surface.Surface{
		Owner:  catalog.Vector4,
		Parent: object(catalog.Vector4),
		Methods: map[string]surface.Method{
			"clone":           method0(V.Clone),
			"copy":            method1(V.Copy),
			"equals":          method1(V.Equals),
			"toArray":         method0(V.ToArray),
			"length":          method0(V.Length),
			"lengthSq":        method0(V.LengthSq),
			"manhattanLength": method0(V.ManhattanLength),
			"dot":             method1(V.Dot),
			"add":             method1(V.Add),
			"sub":             method1(V.Sub),
			"multiplyScalar":  method1(V.MultiplyScalar),
			"normalize":       method0(V.Normalize),
			"applyMatrix4":    method1(V.ApplyMatrix4),
		},
	}
}

// Quaternion describes *linalg.Quaternion.
func Quaternion() *surface.Surface {
	type Q = *linalg.Quaternion
	return &surface.Surface{
		Owner:  catalog.Quaternion,
		Parent: object(catalog.Quaternion),
		Methods: map[string]surface.Method{
			"clone":                 method0(Q.Clone),
			"copy":                  method1(Q.Copy),
			"equals":                method1(Q.Equals),
			"toArray":               method0(Q.ToArray),
			"length":                method0(Q.Length),
			"lengthSq":              method0(Q.LengthSq),
			"dot":                   method1(Q.Dot),
			"angleTo":               method1(Q.AngleTo),
			"normalize":             method0(Q.Normalize),
			"conjugate":             method0(Q.Conjugate),
			"invert":                method0(Q.Invert),
			"multiply":              method1(Q.Multiply),
			"premultiply":           method1(Q.Premultiply),
			"slerp":                 method2(Q.Slerp),
			"setFromAxisAngle":      method2(Q.SetFromAxisAngle),
			"setFromEuler":          method1(Q.SetFromEuler),
			"setFromRotationMatrix": method1(Q.SetFromRotationMatrix),
		},
		Statics: map[string]surface.Static{
			"slerp": static3(linalg.QuaternionSlerp),
		},
	}
}

// Euler describes *linalg.Euler.
func Euler() *surface.Surface {
	type E = *linalg.Euler
	return &surface.Surface{
		Owner:  catalog.Euler,
		Parent: object(catalog.Euler),
		Methods: map[string]surface.Method{
			"clone":                 method0(E.Clone),
			"copy":                  method1(E.Copy),
			"equals":                method1(E.Equals),
			"setFromRotationMatrix": method1(E.SetFromRotationMatrix),
			"setFromQuaternion":     method1(E.SetFromQuaternion),
		},
	}
}

// Matrix3 describes *linalg.Matrix3.
func Matrix3() *surface.Surface {
	type M = *linalg.Matrix3
	return &surface.Surface{
		Owner:  catalog.Matrix3,
		Parent: object(catalog.Matrix3),
		Methods: map[string]surface.Method{
			"clone":          method0(M.Clone),
			"copy":           method1(M.Copy),
			"equals":         method1(M.Equals),
			"toArray":        method0(M.ToArray),
			"identity":       method0(M.Identity),
			"determinant":    method0(M.Determinant),
			"invert":         method0(M.Invert),
			"transpose":      method0(M.Transpose),
			"multiply":       method1(M.Multiply),
			"premultiply":    method1(M.Premultiply),
			"multiplyScalar": method1(M.MultiplyScalar),
			"setFromMatrix4": method1(M.SetFromMatrix4),
		},
	}
}

// Matrix4 describes *linalg.Matrix4.
func Matrix4() *surface.Surface {
	type M = *linalg.Matrix4
	return &surface.Surface{
		Owner:  catalog.Matrix4,
		Parent: object(catalog.Matrix4),
		Methods: map[string]surface.Method{
			"clone":                      method0(M.Clone),
			"copy":                       method1(M.Copy),
			"equals":                     method1(M.Equals),
			"toArray":                    method0(M.ToArray),
			"identity":                   method0(M.Identity),
			"determinant":                method0(M.Determinant),
			"invert":                     method0(M.Invert),
			"transpose":                  method0(M.Transpose),
			"multiply":                   method1(M.Multiply),
			"premultiply":                method1(M.Premultiply),
			"multiplyScalar":             method1(M.MultiplyScalar),
			"getMaxScaleOnAxis":          method0(M.GetMaxScaleOnAxis),
			"compose":                    method3(M.Compose),
			"makeRotationFromQuaternion": method1(M.MakeRotationFromQuaternion),
			"makeRotationFromEuler":      method1(M.MakeRotationFromEuler),
		},
		Statics: map[string]surface.Static{
			"product": static2(linalg.Matrix4Product),
		},
	}
}
