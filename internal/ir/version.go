package ir

// Version constants for the database format and engine.
const (
	// DatabaseVersion is the EquationDatabase format version.
	DatabaseVersion = "1"

	// EngineVersion is the sigprobe engine version.
	EngineVersion = "0.1.0"
)
