package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/sigprobe/internal/bindings"
	"github.com/roach88/sigprobe/internal/engine"
	"github.com/roach88/sigprobe/internal/store"
	"github.com/roach88/sigprobe/internal/testutil"
)

// Harness executes scenarios against the built-in bindings.
type Harness struct {
	store  *store.Store
	logger *slog.Logger
}

// Run executes a scenario in an isolated in-memory store and evaluates its
// assertions. Assertion failures are reported in Result.Errors; the error
// return is reserved for setup and persistence failures.
func Run(scenario *Scenario) (*Result, error) {
	return RunWithLogger(scenario, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// RunWithLogger is Run with discovery logging sent to logger.
func RunWithLogger(scenario *Scenario, logger *slog.Logger) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	h := &Harness{store: st, logger: logger}
	return h.run(context.Background(), scenario)
}

func (h *Harness) run(ctx context.Context, scenario *Scenario) (*Result, error) {
	profile, err := scenario.Profile()
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	eng, err := engine.New(bindings.Default(), profile,
		engine.WithLogger(h.logger),
		engine.WithWallClock(testutil.NewFixedClock(testutil.Epoch)),
		engine.WithRunIDGenerator(testutil.NewFixedRunIDGenerator(scenario.runID())),
	)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	db, summary := eng.Run()

	rec, err := h.store.WriteDatabase(ctx, summary.RunID, db)
	if err != nil {
		return nil, fmt.Errorf("failed to persist run: %w", err)
	}

	// Assertions see exactly what a later reader of the store would.
	stored, err := h.store.ReadDatabase(ctx, rec.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to read back run: %w", err)
	}

	result := NewResult()
	result.Database = stored
	result.Summary = summary
	result.Run = rec

	for _, a := range scenario.Assertions {
		if err := evaluateAssertion(stored, a); err != nil {
			result.AddError(err.Error())
		}
	}

	return result, nil
}
