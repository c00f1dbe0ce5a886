// Package store provides SQLite-backed snapshots of equation databases.
//
// Each discovery run that is persisted becomes one row in runs plus one row
// per accepted signature in signatures. Snapshots are written once, in a
// single transaction, and never updated.
//
// # Patterns
//
// Idempotent writes
//   - Writing the same run id twice with the same content is a no-op
//   - Writing a run id again with different content fails with ErrRunConflict
//
// Logical ordering
//   - runs.seq is assigned at write time; signatures.seq is the discovery
//     order inside a run. Timestamps never order anything
//   - All queries use ORDER BY seq ASC, id ASC COLLATE BINARY
//
// Content addressing
//   - signatures.id is ir.SignatureID and runs.hash is ir.DatabaseHash, both
//     RFC 8785 canonical JSON hashed with SHA-256 and a domain prefix
//   - ReadDatabase recomputes the hash and refuses tampered snapshots
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
