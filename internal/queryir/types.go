package queryir

import (
	"github.com/roach88/sigprobe/internal/catalog"
	"github.com/roach88/sigprobe/internal/ir"
)

// Query is a sealed interface for query nodes.
type Query interface {
	queryNode()
}

// Predicate is a sealed interface for filter nodes.
type Predicate interface {
	predicateNode()
}

// Field names a filterable signature column.
type Field string

const (
	FieldOwner     Field = "owner"
	FieldOperation Field = "operation"
	FieldReturns   Field = "returns"
	FieldStatic    Field = "static"
	FieldArity     Field = "arity"
)

// Fields returns every filterable field in a fixed order.
func Fields() []Field {
	return []Field{FieldOwner, FieldOperation, FieldReturns, FieldStatic, FieldArity}
}

// Select reads signatures of one snapshot.
type Select struct {
	Filter Predicate // nil = every signature
	Limit  int       // 0 = no limit
}

func (Select) queryNode() {}

// Equals matches signatures whose Field equals Value.
type Equals struct {
	Field Field
	Value ir.Value
}

func (Equals) predicateNode() {}

// HasParam matches signatures with a parameter of Type. Position is the
// zero-based parameter index, or AnyPosition.
type HasParam struct {
	Type     catalog.Type
	Position int
}

// AnyPosition makes HasParam match a parameter anywhere in the tuple.
const AnyPosition = -1

func (HasParam) predicateNode() {}

// And matches signatures satisfying all Predicates.
type And struct {
	Predicates []Predicate
}

func (And) predicateNode() {}

// Conjoin builds the predicate for a list of conditions: nil for none, the
// single predicate for one, an And otherwise.
func Conjoin(preds ...Predicate) Predicate {
	switch len(preds) {
	case 0:
		return nil
	case 1:
		return preds[0]
	default:
		return And{Predicates: preds}
	}
}
