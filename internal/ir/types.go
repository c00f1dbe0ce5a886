package ir

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/roach88/sigprobe/internal/catalog"
)

// CandidateSignature is a hypothesis about how an operation may be called.
// It is ephemeral: produced by the combination generator, consumed by the
// validator, never persisted unless validated.
type CandidateSignature struct {
	Owner     catalog.Type   `json:"owner"`
	Operation string         `json:"operation"`
	Params    []catalog.Type `json:"params"`
	Static    bool           `json:"static"`
}

// Arity is the number of declared parameters.
func (c CandidateSignature) Arity() int {
	return len(c.Params)
}

// Accept returns the validated form of c with the classified return type.
// The parameter slice is copied so the result never aliases the candidate.
func (c CandidateSignature) Accept(returns catalog.Type) ValidatedSignature {
	return ValidatedSignature{
		Owner:     c.Owner,
		Operation: c.Operation,
		Params:    slices.Clone(c.Params),
		Returns:   returns,
		Static:    c.Static,
	}
}

// String renders Owner.op(P1, P2) for instance forms and Owner::op(...) for
// static forms.
func (c CandidateSignature) String() string {
	sep := "."
	if c.Static {
		sep = "::"
	}
	names := make([]string, len(c.Params))
	for i, p := range c.Params {
		names[i] = p.String()
	}
	return fmt.Sprintf("%s%s%s(%s)", c.Owner, sep, c.Operation, strings.Join(names, ", "))
}

// ValidatedSignature is an accepted signature. Treat it as immutable once
// created; Params must not be modified after Accept.
type ValidatedSignature struct {
	Owner     catalog.Type   `json:"owner"`
	Operation string         `json:"operation"`
	Params    []catalog.Type `json:"params"`
	Returns   catalog.Type   `json:"returns"`
	Static    bool           `json:"static"`
}

// Candidate returns the candidate form of s.
func (s ValidatedSignature) Candidate() CandidateSignature {
	return CandidateSignature{
		Owner:     s.Owner,
		Operation: s.Operation,
		Params:    slices.Clone(s.Params),
		Static:    s.Static,
	}
}

func (s ValidatedSignature) String() string {
	return s.Candidate().String() + " -> " + s.Returns.String()
}

// EquationDatabase is the sole persisted artifact of a discovery run.
// It is created once per run and never incrementally updated.
type EquationDatabase struct {
	Version     string               `json:"version"`
	GeneratedAt time.Time            `json:"generated_at"`
	Source      string               `json:"source"`
	Signatures  []ValidatedSignature `json:"signatures"`
}

// Stats are plain aggregations over an EquationDatabase.
type Stats struct {
	Total       int            `json:"total"`
	Static      int            `json:"static"`
	ByOwner     map[string]int `json:"by_owner"`
	ByOperation map[string]int `json:"by_operation"`
}

// RunSummary holds the running counts a discovery run keeps besides the
// accepted signatures. Rejected is keyed by rejection reason.
type RunSummary struct {
	RunID      string         `json:"run_id"`
	Owners     int            `json:"owners"`
	Operations int            `json:"operations"`
	Attempts   int            `json:"attempts"`
	Accepted   int            `json:"accepted"`
	Rejected   map[string]int `json:"rejected"`
}

// Profile configures a discovery run.
type Profile struct {
	Source    string         `json:"source"`
	MaxArity  int            `json:"max_arity"`
	Tolerance float64        `json:"tolerance"`
	Owners    []catalog.Type `json:"owners"`
	Deny      []string       `json:"deny"`
}

// Profile defaults.
const (
	DefaultSource    = "sigprobe/linalg"
	DefaultMaxArity  = 3
	MaxArityLimit    = 4
	DefaultTolerance = 1e-4
)

// DefaultProfile returns the profile used when no profile file is given.
// Empty Owners means every registered owner.
func DefaultProfile() Profile {
	return Profile{
		Source:    DefaultSource,
		MaxArity:  DefaultMaxArity,
		Tolerance: DefaultTolerance,
		Owners:    []catalog.Type{},
		Deny:      []string{},
	}
}

// RunRecord is the stored metadata of one persisted database.
type RunRecord struct {
	ID            string    `json:"id"`
	Seq           int64     `json:"seq"`
	Version       string    `json:"version"`
	EngineVersion string    `json:"engine_version"`
	Source        string    `json:"source"`
	GeneratedAt   time.Time `json:"generated_at"`
	Hash          string    `json:"hash"`
	Signatures    int       `json:"signatures"`
}
