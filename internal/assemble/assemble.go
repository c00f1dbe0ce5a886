// Package assemble aggregates accepted signatures into an EquationDatabase.
package assemble

import (
	"time"

	"github.com/roach88/sigprobe/internal/ir"
)

// Assembler collects validated signatures in discovery order. It performs
// no deduplication: arity pruning in the engine already keeps one minimal
// arity per operation and calling mode, and the same operation name may
// legitimately appear under several owners or with several tuples.
type Assembler struct {
	sigs []ir.ValidatedSignature
}

// New creates an empty assembler.
func New() *Assembler {
	return &Assembler{sigs: []ir.ValidatedSignature{}}
}

// Add appends sig.
func (a *Assembler) Add(sig ir.ValidatedSignature) {
	a.sigs = append(a.sigs, sig)
}

// Len returns the number of collected signatures.
func (a *Assembler) Len() int {
	return len(a.sigs)
}

// Database builds the EquationDatabase. An empty assembler yields a valid
// database with an empty, non-nil signature list. The returned database
// owns a copy of the signatures.
func (a *Assembler) Database(source string, generatedAt time.Time) *ir.EquationDatabase {
	sigs := make([]ir.ValidatedSignature, len(a.sigs))
	copy(sigs, a.sigs)
	return &ir.EquationDatabase{
		Version:     ir.DatabaseVersion,
		GeneratedAt: generatedAt.UTC(),
		Source:      source,
		Signatures:  sigs,
	}
}

// Summarize computes per-owner and per-operation counts.
func Summarize(db *ir.EquationDatabase) ir.Stats {
	stats := ir.Stats{
		ByOwner:     make(map[string]int),
		ByOperation: make(map[string]int),
	}
	for _, s := range db.Signatures {
		stats.Total++
		if s.Static {
			stats.Static++
		}
		stats.ByOwner[s.Owner.String()]++
		stats.ByOperation[s.Operation]++
	}
	return stats
}
