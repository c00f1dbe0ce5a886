// Package queryir defines the query intermediate representation used to
// read stored signatures back out of a snapshot.
//
// Queries are backend-agnostic: internal/querysql compiles them to SQLite
// SQL, and nothing in this package knows about tables or placeholders.
//
// A query is a Select with an optional Predicate tree. Predicates are
// sealed to this package:
//
//   - Equals compares one signature field to a literal value
//   - HasParam matches signatures taking a given type, optionally at a
//     given position
//   - And is a conjunction; an empty And is always true
//
// Field names are the stored signature columns (see the Field constants).
// Values are ir.Value literals, so a query is itself serializable and
// hashable like every other IR node.
//
// Example, every operation on Vector3 returning a Scalar:
//
//	q := queryir.Select{
//	    Filter: queryir.And{Predicates: []queryir.Predicate{
//	        queryir.Equals{Field: queryir.FieldOwner, Value: ir.String("Vector3")},
//	        queryir.Equals{Field: queryir.FieldReturns, Value: ir.String("Scalar")},
//	    }},
//	}
package queryir
