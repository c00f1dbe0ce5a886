package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sigprobe/internal/testutil"
)

// execute runs cmd with args and returns what it wrote to stdout and stderr.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

// fixedDiscover builds a discover command with a fixed run id and clock.
func fixedDiscover(format, runID string) *cobra.Command {
	return newDiscoverCommand(&DiscoverOptions{
		RootOptions: &RootOptions{Format: format},
		RunIDs:      testutil.NewFixedRunIDGenerator(runID),
		Clock:       testutil.NewFixedClock(testutil.Epoch),
	})
}

// decodeData unmarshals the data field of a JSON CLIResponse into v.
func decodeData(t *testing.T, out string, v any) CLIResponse {
	t.Helper()
	var envelope struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
		Error  *CLIError       `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &envelope))
	if v != nil && len(envelope.Data) > 0 {
		require.NoError(t, json.Unmarshal(envelope.Data, v))
	}
	return CLIResponse{Status: envelope.Status, Error: envelope.Error}
}
