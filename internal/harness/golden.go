package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/sigprobe/internal/ir"
)

// Snapshot is the golden form of a scenario run: the scenario name and the
// rendered signatures in discovery order. Timestamps and run ids are left
// out so snapshots survive profile source changes.
type Snapshot struct {
	ScenarioName string
	Signatures   []string
}

// Canonical renders the snapshot as canonical JSON.
func (s Snapshot) Canonical() ([]byte, error) {
	return ir.MarshalCanonical(ir.Object{
		"scenario_name": ir.String(s.ScenarioName),
		"signatures":    ir.Strings(s.Signatures),
	})
}

// RunWithGolden executes a scenario and compares its snapshot with
// testdata/golden/<name>.golden. Assertion failures are reported through t.
//
// Run with -update to regenerate golden files.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	for _, e := range result.Errors {
		t.Error(e)
	}

	return AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares an existing result against a golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := Snapshot{
		ScenarioName: scenarioName,
		Signatures:   result.Signatures(),
	}.Canonical()
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)

	return nil
}
