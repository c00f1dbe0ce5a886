package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/sigprobe/internal/catalog"
	"github.com/roach88/sigprobe/internal/ir"
	"github.com/roach88/sigprobe/internal/queryir"
)

// QueryOptions holds flags for the query command.
type QueryOptions struct {
	*RootOptions
	Database  string
	Run       string
	Owner     string
	Operation string
	Returns   string
	Static    bool
	Arity     int
	Params    []string
	Limit     int
}

// QueryResult is the payload of the query command.
type QueryResult struct {
	RunID      string                  `json:"run_id"`
	Signatures []ir.ValidatedSignature `json:"signatures"`
}

// Text renders one signature per line.
func (r QueryResult) Text() string {
	var b strings.Builder
	for _, s := range r.Signatures {
		fmt.Fprintln(&b, s.String())
	}
	fmt.Fprintf(&b, "%d match(es) in run %s\n", len(r.Signatures), r.RunID)
	return b.String()
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query the signatures of a stored run",
		Long: `Filter the signatures of a stored run. All given filters must match.

--param takes a type name, optionally followed by @N to pin the zero-based
parameter position.

Examples:
  sigprobe query --db ./sigprobe.db --owner Vector3 --returns Scalar
  sigprobe query --db ./sigprobe.db --param Quaternion@0 --static
  sigprobe query --db ./sigprobe.db --run <id> --operation dot --arity 1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().StringVar(&opts.Run, "run", "", "run id (default: latest run)")
	cmd.Flags().StringVar(&opts.Owner, "owner", "", "owner type")
	cmd.Flags().StringVar(&opts.Operation, "operation", "", "operation name")
	cmd.Flags().StringVar(&opts.Returns, "returns", "", "return type")
	cmd.Flags().BoolVar(&opts.Static, "static", false, "match static (true) or instance (false) forms")
	cmd.Flags().IntVar(&opts.Arity, "arity", 0, "parameter count")
	cmd.Flags().StringSliceVar(&opts.Params, "param", nil, "parameter type, Type or Type@N (repeatable)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum number of results (0 = all)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runQuery(opts *QueryOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	q, err := buildQuery(opts, cmd)
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeBadFlag, "invalid query", err)
	}

	st, err := openExistingStore(opts.Database)
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeStore, "failed to open database", err)
	}
	defer st.Close()

	rec, err := resolveRun(cmd, st, opts.Run)
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeNotFound, "run not found", err)
	}

	sigs, err := st.QuerySignatures(cmd.Context(), rec.ID, q)
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeStore, "query failed", err)
	}
	return formatter.Success(QueryResult{RunID: rec.ID, Signatures: sigs})
}

// buildQuery turns the set flags into a Select. Unset flags add no filter.
func buildQuery(opts *QueryOptions, cmd *cobra.Command) (queryir.Select, error) {
	flags := cmd.Flags()
	var preds []queryir.Predicate

	if flags.Changed("owner") {
		preds = append(preds, queryir.Equals{Field: queryir.FieldOwner, Value: ir.String(opts.Owner)})
	}
	if flags.Changed("operation") {
		preds = append(preds, queryir.Equals{Field: queryir.FieldOperation, Value: ir.String(opts.Operation)})
	}
	if flags.Changed("returns") {
		preds = append(preds, queryir.Equals{Field: queryir.FieldReturns, Value: ir.String(opts.Returns)})
	}
	if flags.Changed("static") {
		preds = append(preds, queryir.Equals{Field: queryir.FieldStatic, Value: ir.Bool(opts.Static)})
	}
	if flags.Changed("arity") {
		preds = append(preds, queryir.Equals{Field: queryir.FieldArity, Value: ir.Int(opts.Arity)})
	}
	for _, p := range opts.Params {
		hp, err := parseParamFilter(p)
		if err != nil {
			return queryir.Select{}, err
		}
		preds = append(preds, hp)
	}

	q := queryir.Select{Filter: queryir.Conjoin(preds...), Limit: opts.Limit}
	if res := queryir.Validate(q); !res.Valid {
		return queryir.Select{}, fmt.Errorf("%s", strings.Join(res.Problems, "; "))
	}
	return q, nil
}

// parseParamFilter parses "Type" or "Type@N".
func parseParamFilter(s string) (queryir.HasParam, error) {
	name, pos, hasPos := strings.Cut(s, "@")
	t, err := catalog.Parse(name)
	if err != nil {
		return queryir.HasParam{}, err
	}
	hp := queryir.HasParam{Type: t, Position: queryir.AnyPosition}
	if hasPos {
		n, err := strconv.Atoi(pos)
		if err != nil || n < 0 {
			return queryir.HasParam{}, fmt.Errorf("invalid parameter position %q", pos)
		}
		hp.Position = n
	}
	return hp, nil
}
