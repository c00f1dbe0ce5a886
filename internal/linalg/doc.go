// Package linalg is a small 3D math library in the style of three.js:
// vectors, quaternions, Euler triples and 3×3/4×4 matrices.
//
// Values are mutable and passed by pointer. Mutating methods return their
// receiver so calls can be chained:
//
//	v := linalg.NewVector3(1, 2, 3)
//	v.Add(w).MultiplyScalar(2).Normalize()
//
// Query methods (Length, Dot, Determinant, ...) return plain values and never
// modify the receiver. Matrices store elements in column-major order, like
// three.js and OpenGL.
//
// The package is the default discovery target of sigprobe: its operation
// surface is described in internal/bindings and probed without any declared
// type information.
package linalg
