package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOps_JSON(t *testing.T) {
	out, _, err := execute(t, NewOpsCommand(&RootOptions{Format: "json"}), "vector3")
	require.NoError(t, err)

	var result OpsResult
	decodeData(t, out, &result)
	assert.Equal(t, "Vector3", result.Owner)
	assert.Contains(t, result.Methods, "dot")
	assert.Contains(t, result.Methods, "angleTo")
	assert.NotContains(t, result.Methods, "clone")
	assert.NotContains(t, result.Methods, "equals")
	assert.Equal(t, []string{"distance", "midpoint"}, result.Statics)
}

func TestOps_Deny(t *testing.T) {
	out, _, err := execute(t, NewOpsCommand(&RootOptions{Format: "json"}), "Vector3", "--deny", "dot,midpoint")
	require.NoError(t, err)

	var result OpsResult
	decodeData(t, out, &result)
	assert.NotContains(t, result.Methods, "dot")
	assert.Equal(t, []string{"distance"}, result.Statics)
}

func TestOps_Text(t *testing.T) {
	out, _, err := execute(t, NewOpsCommand(&RootOptions{Format: "text"}), "Vector3")
	require.NoError(t, err)
	assert.Contains(t, out, "Vector3\n")
	assert.Contains(t, out, "  statics (2): distance, midpoint\n")
}

func TestOps_Errors(t *testing.T) {
	tests := []struct {
		name  string
		owner string
		msg   string
	}{
		{"unknown type", "Tensor", "unknown owner"},
		{"no surface", "Boolean", "owner has no surface"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, NewOpsCommand(&RootOptions{Format: "text"}), tt.owner)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}
