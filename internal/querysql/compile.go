// Package querysql compiles queryir queries to parameterized SQLite SQL
// over the snapshot store's signatures table.
package querysql

import (
	"fmt"
	"strings"

	"github.com/roach88/sigprobe/internal/catalog"
	"github.com/roach88/sigprobe/internal/ir"
	"github.com/roach88/sigprobe/internal/queryir"
)

// Columns is the projection of every compiled query, in scan order.
var Columns = []string{"owner", "operation", "params", "returns", "static"}

// OrderBy is appended to every compiled query. seq is the discovery order
// of a signature within its run; id breaks ties with binary collation.
const OrderBy = "ORDER BY seq ASC, id ASC COLLATE BINARY"

// SQLCompiler compiles queries scoped to one stored run.
//
// Every query includes OrderBy and every value is bound through a
// placeholder, never interpolated.
type SQLCompiler struct {
	// RunID scopes the query to one snapshot.
	RunID string
}

// NewSQLCompiler creates a compiler for runID.
func NewSQLCompiler(runID string) *SQLCompiler {
	return &SQLCompiler{RunID: runID}
}

// Compile converts q to SQL and its parameters. Invalid queries (see
// queryir.Validate) are refused.
func (c *SQLCompiler) Compile(q queryir.Query) (string, []any, error) {
	if res := queryir.Validate(q); !res.Valid {
		return "", nil, fmt.Errorf("invalid query: %s", strings.Join(res.Problems, "; "))
	}

	switch query := q.(type) {
	case queryir.Select:
		return c.compileSelect(query)
	case *queryir.Select:
		return c.compileSelect(*query)
	default:
		return "", nil, fmt.Errorf("unsupported query type: %T", q)
	}
}

func (c *SQLCompiler) compileSelect(q queryir.Select) (string, []any, error) {
	where := "run_id = ?"
	params := []any{c.RunID}

	if q.Filter != nil {
		filterSQL, filterParams, err := c.compilePredicate(q.Filter)
		if err != nil {
			return "", nil, fmt.Errorf("compile filter: %w", err)
		}
		where += " AND (" + filterSQL + ")"
		params = append(params, filterParams...)
	}

	sql := fmt.Sprintf("SELECT %s FROM signatures WHERE %s %s",
		strings.Join(Columns, ", "), where, OrderBy)

	if q.Limit > 0 {
		sql += " LIMIT ?"
		params = append(params, q.Limit)
	}
	return sql, params, nil
}

func (c *SQLCompiler) compilePredicate(p queryir.Predicate) (string, []any, error) {
	switch pred := p.(type) {
	case queryir.Equals:
		return c.compileEquals(pred)
	case *queryir.Equals:
		return c.compileEquals(*pred)
	case queryir.HasParam:
		return c.compileHasParam(pred)
	case *queryir.HasParam:
		return c.compileHasParam(*pred)
	case queryir.And:
		return c.compileAnd(pred)
	case *queryir.And:
		return c.compileAnd(*pred)
	default:
		return "", nil, fmt.Errorf("unsupported predicate type: %T", p)
	}
}

// compileEquals compiles "field = ?". Type names are normalized to their
// catalog spelling, since the store keeps canonical names.
func (c *SQLCompiler) compileEquals(eq queryir.Equals) (string, []any, error) {
	param, err := valueToParam(eq.Value)
	if err != nil {
		return "", nil, fmt.Errorf("field %s: %w", eq.Field, err)
	}
	if eq.Field == queryir.FieldOwner || eq.Field == queryir.FieldReturns {
		t, err := catalog.Parse(param.(string))
		if err != nil {
			return "", nil, err
		}
		param = t.String()
	}
	return fmt.Sprintf("%s = ?", eq.Field), []any{param}, nil
}

// compileHasParam matches inside the stored params JSON array.
func (c *SQLCompiler) compileHasParam(hp queryir.HasParam) (string, []any, error) {
	if hp.Position == queryir.AnyPosition {
		return "EXISTS (SELECT 1 FROM json_each(signatures.params) AS p WHERE p.value = ?)",
			[]any{hp.Type.String()}, nil
	}
	return "EXISTS (SELECT 1 FROM json_each(signatures.params) AS p WHERE p.value = ? AND p.key = ?)",
		[]any{hp.Type.String(), hp.Position}, nil
}

func (c *SQLCompiler) compileAnd(and queryir.And) (string, []any, error) {
	if len(and.Predicates) == 0 {
		return "1 = 1", nil, nil
	}

	parts := make([]string, 0, len(and.Predicates))
	var params []any
	for _, pred := range and.Predicates {
		sql, ps, err := c.compilePredicate(pred)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, sql)
		params = append(params, ps...)
	}
	return strings.Join(parts, " AND "), params, nil
}

// valueToParam converts a scalar ir.Value to a driver parameter. Booleans
// are bound as 0/1 to match the static column.
func valueToParam(v ir.Value) (any, error) {
	switch val := v.(type) {
	case ir.String:
		return string(val), nil
	case ir.Int:
		return int64(val), nil
	case ir.Bool:
		if val {
			return 1, nil
		}
		return 0, nil
	case ir.Array:
		return nil, fmt.Errorf("array cannot be used as SQL parameter")
	case ir.Object:
		return nil, fmt.Errorf("object cannot be used as SQL parameter")
	default:
		return nil, fmt.Errorf("unsupported value type for SQL parameter: %T", v)
	}
}
