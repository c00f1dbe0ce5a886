package store

import "errors"

var (
	// ErrRunNotFound is returned when a run id has no snapshot.
	ErrRunNotFound = errors.New("run not found")

	// ErrRunConflict is returned when a run id is written again with
	// different content.
	ErrRunConflict = errors.New("run already stored with different content")

	// ErrHashMismatch is returned when a stored snapshot no longer matches
	// its recorded hash.
	ErrHashMismatch = errors.New("snapshot hash mismatch")
)
