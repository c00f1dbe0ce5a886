// Package surface describes the operation surface of an owner type as an
// explicit capability table and provides the generic invoker the validator
// calls through.
//
// Go has no runtime prototype chain to walk, so each owner type registers a
// Surface listing its instance methods and owner-level static methods by
// name. A Surface may inherit from a Parent; its own entries shadow inherited
// ones.
//
// Invocation never panics. Invoke and InvokeStatic return (value, error)
// where the error is a *Fault: missing operations, panics inside the
// operation (wrong argument type, missing argument) and returned errors all
// become faults that the caller inspects instead of unwinding.
package surface

import (
	"fmt"

	"github.com/roach88/sigprobe/internal/catalog"
)

// Method is an instance operation. self is the receiver; args are the
// positional arguments exactly as the caller supplied them.
type Method func(self any, args ...any) (any, error)

// Static is an owner-level operation with no receiver.
type Static func(args ...any) (any, error)

// Surface is the capability table of one owner type.
type Surface struct {
	Owner   catalog.Type
	Parent  *Surface
	Methods map[string]Method
	Statics map[string]Static
}

// Method resolves an instance operation, walking the parent chain.
func (s *Surface) Method(name string) (Method, bool) {
	for cur := s; cur != nil; cur = cur.Parent {
		if m, ok := cur.Methods[name]; ok && m != nil {
			return m, true
		}
	}
	return nil, false
}

// Static resolves an owner-level operation, walking the parent chain.
func (s *Surface) Static(name string) (Static, bool) {
	for cur := s; cur != nil; cur = cur.Parent {
		if f, ok := cur.Statics[name]; ok && f != nil {
			return f, true
		}
	}
	return nil, false
}

// Invoke calls the instance operation name on self.
func (s *Surface) Invoke(self any, name string, args ...any) (any, error) {
	m, ok := s.Method(name)
	if !ok {
		return nil, &Fault{Code: FaultNotFound, Owner: s.Owner.String(), Operation: name}
	}
	return s.call(name, false, func() (any, error) { return m(self, args...) })
}

// InvokeStatic calls the owner-level operation name.
func (s *Surface) InvokeStatic(name string, args ...any) (any, error) {
	f, ok := s.Static(name)
	if !ok {
		return nil, &Fault{Code: FaultNotFound, Owner: s.Owner.String(), Operation: name, Static: true}
	}
	return s.call(name, true, func() (any, error) { return f(args...) })
}

func (s *Surface) call(name string, static bool, fn func() (any, error)) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = &Fault{Code: FaultPanic, Owner: s.Owner.String(), Operation: name, Static: static, Cause: r}
		}
	}()

	result, err = fn()
	if err != nil {
		return nil, &Fault{Code: FaultError, Owner: s.Owner.String(), Operation: name, Static: static, Cause: err}
	}
	return result, nil
}

// Registry holds one surface per owner type.
type Registry struct {
	surfaces map[catalog.Type]*Surface
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{surfaces: make(map[catalog.Type]*Surface)}
}

// Register adds a surface. Registering an owner twice is an error.
func (r *Registry) Register(s *Surface) error {
	if s == nil {
		return fmt.Errorf("register: nil surface")
	}
	if !s.Owner.Valid() {
		return fmt.Errorf("register: invalid owner type %d", uint8(s.Owner))
	}
	if _, exists := r.surfaces[s.Owner]; exists {
		return fmt.Errorf("register: owner %s already registered", s.Owner)
	}
	r.surfaces[s.Owner] = s
	return nil
}

// MustRegister is like Register but panics on error.
// Use only for static registration tables.
func (r *Registry) MustRegister(s *Surface) {
	if err := r.Register(s); err != nil {
		panic(err)
	}
}

// Lookup returns the surface for an owner type.
func (r *Registry) Lookup(t catalog.Type) (*Surface, bool) {
	s, ok := r.surfaces[t]
	return s, ok
}

// Owners returns the registered owner types in catalog order.
func (r *Registry) Owners() []catalog.Type {
	var owners []catalog.Type
	for _, t := range catalog.All() {
		if _, ok := r.surfaces[t]; ok {
			owners = append(owners, t)
		}
	}
	return owners
}

// Surfaces returns the registered surfaces in catalog order.
func (r *Registry) Surfaces() []*Surface {
	owners := r.Owners()
	out := make([]*Surface, len(owners))
	for i, t := range owners {
		out[i] = r.surfaces[t]
	}
	return out
}
