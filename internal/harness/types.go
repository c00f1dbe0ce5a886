package harness

import (
	"github.com/roach88/sigprobe/internal/ir"
)

// Result holds the outcome of a scenario execution.
type Result struct {
	// Pass is true when every assertion held.
	Pass bool

	// Errors lists one message per failed assertion.
	Errors []string

	// Database is the signature database as read back from the store.
	Database *ir.EquationDatabase

	// Summary carries the discovery counters of the run.
	Summary ir.RunSummary

	// Run is the stored run record.
	Run ir.RunRecord
}

// NewResult creates a passing Result with no errors.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError records a failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Signatures renders every database signature in discovery order.
func (r *Result) Signatures() []string {
	if r.Database == nil {
		return []string{}
	}
	out := make([]string, len(r.Database.Signatures))
	for i, s := range r.Database.Signatures {
		out[i] = s.String()
	}
	return out
}
