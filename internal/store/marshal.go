package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/roach88/sigprobe/internal/catalog"
	"github.com/roach88/sigprobe/internal/ir"
)

// marshalParams converts a parameter tuple to canonical JSON TEXT, a JSON
// array of catalog names. An empty tuple is "[]".
func marshalParams(params []catalog.Type) (string, error) {
	data, err := ir.MarshalCanonical(ir.Strings(catalog.Names(params)))
	if err != nil {
		return "", fmt.Errorf("marshal params: %w", err)
	}
	return string(data), nil
}

// unmarshalParams parses params TEXT back to a non-nil tuple.
func unmarshalParams(data string) ([]catalog.Type, error) {
	params := []catalog.Type{}
	if err := json.Unmarshal([]byte(data), &params); err != nil {
		return nil, fmt.Errorf("unmarshal params: %w", err)
	}
	return params, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// formatTime stores instants as UTC RFC 3339 with nanoseconds.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", s, err)
	}
	return t.UTC(), nil
}
