// Package ir provides the data model shared by every sigprobe package:
// candidate and validated signatures, the equation database, run
// summaries and profiles.
//
// ir imports nothing internal except the catalog. Key constraints:
//   - ValidatedSignature is an immutable value type
//   - All JSON tags use snake_case
//   - Identity is content-addressed: RFC 8785 canonical JSON hashed with
//     SHA-256 under a versioned domain prefix
//   - Canonical values carry no floats
package ir
