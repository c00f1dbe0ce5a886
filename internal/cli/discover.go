package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/sigprobe/internal/bindings"
	"github.com/roach88/sigprobe/internal/engine"
	"github.com/roach88/sigprobe/internal/ir"
	"github.com/roach88/sigprobe/internal/store"
)

// DiscoverOptions holds flags for the discover command.
type DiscoverOptions struct {
	*RootOptions
	Profile  ProfileFlags
	Output   string
	Database string

	// RunIDs and Clock override the run id generator and wall clock (for
	// testing). Nil means UUIDv7 ids and the system clock.
	RunIDs engine.RunIDGenerator
	Clock  engine.WallClock
}

// DiscoverResult is the payload of the discover command.
type DiscoverResult struct {
	Summary  ir.RunSummary        `json:"summary"`
	Database *ir.EquationDatabase `json:"database"`
	Output   string               `json:"output,omitempty"`
	Stored   *ir.RunRecord        `json:"stored,omitempty"`
}

// Text renders the signatures and a one-line summary.
func (r DiscoverResult) Text() string {
	var b strings.Builder
	for _, s := range r.Database.Signatures {
		fmt.Fprintln(&b, s.String())
	}
	fmt.Fprintf(&b, "\n%d signature(s) from %d owner(s), %d operation(s), %d attempt(s)\n",
		len(r.Database.Signatures), r.Summary.Owners, r.Summary.Operations, r.Summary.Attempts)

	reasons := make([]string, 0, len(r.Summary.Rejected))
	for reason := range r.Summary.Rejected {
		reasons = append(reasons, reason)
	}
	slices.Sort(reasons)
	for _, reason := range reasons {
		fmt.Fprintf(&b, "  rejected %s: %d\n", reason, r.Summary.Rejected[reason])
	}

	if r.Output != "" {
		fmt.Fprintf(&b, "Wrote %s\n", r.Output)
	}
	if r.Stored != nil {
		fmt.Fprintf(&b, "Stored run %s (seq %d, hash %s)\n", r.Stored.ID, r.Stored.Seq, r.Stored.Hash)
	}
	return b.String()
}

// NewDiscoverCommand creates the discover command.
func NewDiscoverCommand(rootOpts *RootOptions) *cobra.Command {
	return newDiscoverCommand(&DiscoverOptions{RootOptions: rootOpts})
}

func newDiscoverCommand(opts *DiscoverOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Discover operation signatures",
		Long: `Run signature discovery over the bundled linalg library.

Every enumerated operation of every owner is probed with parameter tuples
of increasing arity. Accepted signatures are printed, optionally written
as an EquationDatabase JSON file, and optionally stored as a snapshot.

Examples:
  sigprobe discover
  sigprobe discover --owner Vector3 --max-arity 2
  sigprobe discover --profile ./profile.cue -o signatures.json
  sigprobe discover --db ./sigprobe.db --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiscover(opts, cmd)
		},
	}

	opts.Profile.register(cmd)
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write the database JSON to this file")
	cmd.Flags().StringVar(&opts.Database, "db", "", "store the run in this SQLite database")

	return cmd
}

func runDiscover(opts *DiscoverOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	logger := newLogger(opts.RootOptions, cmd)

	profile, err := opts.Profile.resolve(cmd)
	if err != nil {
		return profileFailure(formatter, err)
	}

	engineOpts := []engine.Option{engine.WithLogger(logger)}
	if opts.RunIDs != nil {
		engineOpts = append(engineOpts, engine.WithRunIDGenerator(opts.RunIDs))
	}
	if opts.Clock != nil {
		engineOpts = append(engineOpts, engine.WithWallClock(opts.Clock))
	}

	eng, err := engine.New(bindings.Default(), profile, engineOpts...)
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeBadFlag, "invalid profile", err)
	}

	db, summary := eng.Run()
	result := DiscoverResult{Summary: summary, Database: db}

	if opts.Output != "" {
		if err := writeDatabaseFile(opts.Output, db); err != nil {
			return formatter.fail(ExitCommandError, ErrCodeWriteFailed, "failed to write database", err)
		}
		result.Output = opts.Output
		formatter.VerboseLog("wrote %s", opts.Output)
	}

	if opts.Database != "" {
		rec, err := storeRun(cmd, opts.Database, summary.RunID, db)
		if err != nil {
			return formatter.fail(ExitCommandError, ErrCodeStore, "failed to store run", err)
		}
		result.Stored = &rec
	}

	return formatter.Success(result)
}

func writeDatabaseFile(path string, db *ir.EquationDatabase) error {
	data, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

func storeRun(cmd *cobra.Command, path, runID string, db *ir.EquationDatabase) (ir.RunRecord, error) {
	st, err := store.Open(path)
	if err != nil {
		return ir.RunRecord{}, err
	}
	defer st.Close()
	return st.WriteDatabase(cmd.Context(), runID, db)
}
