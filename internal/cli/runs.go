package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/sigprobe/internal/ir"
	"github.com/roach88/sigprobe/internal/store"
)

// RunsResult lists stored runs oldest first.
type RunsResult struct {
	Runs []ir.RunRecord `json:"runs"`
}

// Text renders one line per run.
func (r RunsResult) Text() string {
	if len(r.Runs) == 0 {
		return "No runs stored.\n"
	}
	var b strings.Builder
	for _, run := range r.Runs {
		fmt.Fprintf(&b, "%d\t%s\t%s\t%d signature(s)\t%s\n",
			run.Seq, run.ID, run.Source, run.Signatures, run.GeneratedAt.Format(time.RFC3339))
	}
	return b.String()
}

// ShowResult is one stored run with its database.
type ShowResult struct {
	Run      ir.RunRecord         `json:"run"`
	Database *ir.EquationDatabase `json:"database"`
}

// Text renders a run header and its signatures.
func (r ShowResult) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Run %s (seq %d)\n", r.Run.ID, r.Run.Seq)
	fmt.Fprintf(&b, "  source:    %s\n", r.Run.Source)
	fmt.Fprintf(&b, "  generated: %s\n", r.Run.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "  hash:      %s\n", r.Run.Hash)
	fmt.Fprintln(&b)
	for _, s := range r.Database.Signatures {
		fmt.Fprintln(&b, s.String())
	}
	return b.String()
}

// NewRunsCommand creates the runs command.
func NewRunsCommand(rootOpts *RootOptions) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List stored discovery runs",
		Long: `List the discovery runs stored in a snapshot database, oldest first.

Example:
  sigprobe runs --db ./sigprobe.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)
			st, err := openExistingStore(dbPath)
			if err != nil {
				return formatter.fail(ExitCommandError, ErrCodeStore, "failed to open database", err)
			}
			defer st.Close()

			runs, err := st.ListRuns(cmd.Context())
			if err != nil {
				return formatter.fail(ExitCommandError, ErrCodeStore, "failed to list runs", err)
			}
			return formatter.Success(RunsResult{Runs: runs})
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "show [run-id]",
		Short: "Show the signatures of a stored run",
		Long: `Print a stored run's metadata and signatures. Without a run id the most
recent run is shown. The stored content hash is verified on read.

Example:
  sigprobe show --db ./sigprobe.db
  sigprobe show --db ./sigprobe.db 01912f4e-0000-7000-8000-000000000000`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)
			st, err := openExistingStore(dbPath)
			if err != nil {
				return formatter.fail(ExitCommandError, ErrCodeStore, "failed to open database", err)
			}
			defer st.Close()

			runID := ""
			if len(args) == 1 {
				runID = args[0]
			}
			rec, err := resolveRun(cmd, st, runID)
			if err != nil {
				return formatter.fail(ExitCommandError, ErrCodeNotFound, "run not found", err)
			}

			db, err := st.ReadDatabase(cmd.Context(), rec.ID)
			if err != nil {
				return formatter.fail(ExitCommandError, ErrCodeStore, "failed to read run", err)
			}
			return formatter.Success(ShowResult{Run: rec, Database: db})
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

// openExistingStore opens a snapshot database that must already exist.
// Reader commands never create one.
func openExistingStore(path string) (*store.Store, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("database not found: %s", path)
		}
		return nil, err
	}
	return store.Open(path)
}

// resolveRun returns the named run, or the latest one when runID is empty.
func resolveRun(cmd *cobra.Command, st *store.Store, runID string) (ir.RunRecord, error) {
	if runID == "" {
		return st.LatestRun(cmd.Context())
	}
	return st.GetRun(cmd.Context(), runID)
}
