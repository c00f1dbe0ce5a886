// Package catalog defines the closed set of algebraic value types that the
// discovery engine understands.
//
// Every property of a type (name, component count, smaller type) lives in a
// single table keyed by Type. Adding a type means adding one row here and one
// baseline row in the probe package; nothing else branches on type names.
package catalog

import (
	"fmt"
	"strings"
)

// Type tags a catalog value type.
type Type uint8

const (
	Scalar Type = iota
	Boolean
	Vector2
	Vector3
	Vector4
	Quaternion
	Euler
	Matrix3
	Matrix4

	numTypes
)

// None marks the absence of a smaller type.
const None Type = 0xFF

type entry struct {
	name       string
	components int
	smaller    Type
}

// table is indexed by Type. Order matters: it is the catalog order used by
// All and therefore by parameter combination generation.
var table = [numTypes]entry{
	Scalar:     {name: "Scalar", components: 1, smaller: None},
	Boolean:    {name: "Boolean", components: 1, smaller: None},
	Vector2:    {name: "Vector2", components: 2, smaller: None},
	Vector3:    {name: "Vector3", components: 3, smaller: Vector2},
	Vector4:    {name: "Vector4", components: 4, smaller: Vector3},
	Quaternion: {name: "Quaternion", components: 4, smaller: Vector3},
	Euler:      {name: "Euler", components: 3, smaller: Vector2},
	Matrix3:    {name: "Matrix3", components: 9, smaller: None},
	Matrix4:    {name: "Matrix4", components: 16, smaller: Matrix3},
}

// All returns every catalog type in catalog order. The slice is fresh.
func All() []Type {
	types := make([]Type, numTypes)
	for i := range types {
		types[i] = Type(i)
	}
	return types
}

// Valid reports whether t is a catalog type.
func (t Type) Valid() bool {
	return t < numTypes
}

// String returns the catalog name, e.g. "Vector3".
func (t Type) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
	return table[t].name
}

// Components returns the component count of t (0 for invalid types).
func (t Type) Components() int {
	if !t.Valid() {
		return 0
	}
	return table[t].components
}

// Smaller returns the next smaller type used to probe under-specification.
// ok is false when t has no smaller type.
func (t Type) Smaller() (Type, bool) {
	if !t.Valid() || table[t].smaller == None {
		return None, false
	}
	return table[t].smaller, true
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("catalog: invalid type %d", uint8(t))
	}
	return []byte(table[t].name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Parse resolves a catalog name. Matching is case-insensitive so profile and
// scenario files may write "vector3".
func Parse(name string) (Type, error) {
	for i, e := range table {
		if strings.EqualFold(e.name, name) {
			return Type(i), nil
		}
	}
	return None, fmt.Errorf("catalog: unknown type %q", name)
}

// ParseList resolves a list of catalog names in order.
func ParseList(names []string) ([]Type, error) {
	types := make([]Type, 0, len(names))
	for _, n := range names {
		t, err := Parse(n)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}

// Names returns the catalog names of types, in order.
func Names(types []Type) []string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return names
}
