package surface

import (
	"slices"
	"strings"
)

// PrivatePrefix marks operations that are not part of the public surface.
const PrivatePrefix = "_"

// DefaultDenylist names structural and lifecycle operations that never count
// as mathematical operations: construction, equality, serialization,
// copy/clone and array import/export.
var DefaultDenylist = []string{
	"constructor",
	"equals",
	"clone",
	"copy",
	"set",
	"toArray",
	"fromArray",
	"toJSON",
	"fromJSON",
	"toString",
}

// Enumerator lists the candidate operation names of a surface.
type Enumerator struct {
	deny map[string]bool
}

// NewEnumerator returns an enumerator that excludes DefaultDenylist plus
// any extra names.
func NewEnumerator(extra ...string) *Enumerator {
	deny := make(map[string]bool, len(DefaultDenylist)+len(extra))
	for _, n := range DefaultDenylist {
		deny[n] = true
	}
	for _, n := range extra {
		deny[n] = true
	}
	return &Enumerator{deny: deny}
}

// Methods returns the qualifying instance operations of s and its parents,
// each exactly once, sorted.
func (e *Enumerator) Methods(s *Surface) []string {
	seen := make(map[string]bool)
	for cur := s; cur != nil; cur = cur.Parent {
		for name, m := range cur.Methods {
			if m != nil {
				seen[name] = true
			}
		}
	}
	return e.filter(seen)
}

// Statics returns the qualifying owner-level operations of s and its
// parents, each exactly once, sorted.
func (e *Enumerator) Statics(s *Surface) []string {
	seen := make(map[string]bool)
	for cur := s; cur != nil; cur = cur.Parent {
		for name, f := range cur.Statics {
			if f != nil {
				seen[name] = true
			}
		}
	}
	return e.filter(seen)
}

// Allowed reports whether name survives the denylist and privacy filter.
func (e *Enumerator) Allowed(name string) bool {
	return name != "" && !e.deny[name] && !strings.HasPrefix(name, PrivatePrefix)
}

func (e *Enumerator) filter(names map[string]bool) []string {
	out := make([]string, 0, len(names))
	for name := range names {
		if e.Allowed(name) {
			out = append(out, name)
		}
	}
	slices.Sort(out)
	return out
}

// Enumerate lists the instance operations of s with the default denylist.
func Enumerate(s *Surface) []string {
	return NewEnumerator().Methods(s)
}

// EnumerateStatic lists the owner-level operations of s with the default
// denylist.
func EnumerateStatic(s *Surface) []string {
	return NewEnumerator().Statics(s)
}
