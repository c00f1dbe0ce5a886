package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGolden_Scenarios(t *testing.T) {
	scenarios, err := LoadScenarios(filepath.Join("testdata", "scenarios"))
	require.NoError(t, err)
	require.Len(t, scenarios, 4)

	for _, s := range scenarios {
		t.Run(s.Name, func(t *testing.T) {
			require.NoError(t, RunWithGolden(t, s))
		})
	}
}

func TestAssertGolden_ReusesResult(t *testing.T) {
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", "deny.yaml"))
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)
	require.True(t, result.Pass)

	require.NoError(t, AssertGolden(t, "vector4_deny", result))
}

func TestSnapshot_Canonical(t *testing.T) {
	data, err := Snapshot{
		ScenarioName: "s",
		Signatures:   []string{"Vector3.length() -> Scalar"},
	}.Canonical()
	require.NoError(t, err)
	assert.Equal(t, `{"scenario_name":"s","signatures":["Vector3.length() -> Scalar"]}`, string(data))
}

func TestSnapshot_EmptySignatures(t *testing.T) {
	data, err := Snapshot{ScenarioName: "empty", Signatures: []string{}}.Canonical()
	require.NoError(t, err)
	assert.Equal(t, `{"scenario_name":"empty","signatures":[]}`, string(data))
}
