package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/sigprobe/internal/catalog"
	"github.com/roach88/sigprobe/internal/ir"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type       string   // Assertion type for categorization
	Expected   string   // Human-readable expected outcome
	Actual     string   // Human-readable actual outcome
	Signatures []string // Discovered signatures for context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nDiscovered signatures:\n")
	for i, s := range e.Signatures {
		fmt.Fprintf(&buf, "  [%d] %s\n", i+1, s)
	}

	return buf.String()
}

// evaluateAssertion dispatches a to its checker.
func evaluateAssertion(db *ir.EquationDatabase, a Assertion) error {
	switch a.Type {
	case AssertSignaturePresent:
		return assertSignaturePresent(db, a)
	case AssertSignatureAbsent:
		return assertSignatureAbsent(db, a)
	case AssertOperationCount:
		return assertOperationCount(db, a)
	case AssertOwnerCount:
		return assertOwnerCount(db, a)
	default:
		return fmt.Errorf("unknown assertion type: %s", a.Type)
	}
}

func assertSignaturePresent(db *ir.EquationDatabase, a Assertion) error {
	if containsSignature(db, a.Signature) {
		return nil
	}
	return &AssertionError{
		Type:       a.Type,
		Expected:   a.Signature,
		Actual:     "not found",
		Signatures: render(db),
	}
}

func assertSignatureAbsent(db *ir.EquationDatabase, a Assertion) error {
	if !containsSignature(db, a.Signature) {
		return nil
	}
	return &AssertionError{
		Type:       a.Type,
		Expected:   fmt.Sprintf("no %s", a.Signature),
		Actual:     "present",
		Signatures: render(db),
	}
}

func assertOperationCount(db *ir.EquationDatabase, a Assertion) error {
	var owner catalog.Type
	if a.Owner != "" {
		t, err := catalog.Parse(a.Owner)
		if err != nil {
			return err
		}
		owner = t
	}

	got := 0
	for _, s := range db.Signatures {
		if s.Operation != a.Operation {
			continue
		}
		if a.Owner != "" && s.Owner != owner {
			continue
		}
		got++
	}
	if got == *a.Count {
		return nil
	}

	subject := a.Operation
	if a.Owner != "" {
		subject = a.Owner + "." + a.Operation
	}
	return &AssertionError{
		Type:       a.Type,
		Expected:   fmt.Sprintf("%s to have %d signature(s)", subject, *a.Count),
		Actual:     fmt.Sprintf("%d", got),
		Signatures: render(db),
	}
}

func assertOwnerCount(db *ir.EquationDatabase, a Assertion) error {
	owner, err := catalog.Parse(a.Owner)
	if err != nil {
		return err
	}

	got := 0
	for _, s := range db.Signatures {
		if s.Owner == owner {
			got++
		}
	}
	if got == *a.Count {
		return nil
	}
	return &AssertionError{
		Type:       a.Type,
		Expected:   fmt.Sprintf("%s to have %d signature(s)", a.Owner, *a.Count),
		Actual:     fmt.Sprintf("%d", got),
		Signatures: render(db),
	}
}

func containsSignature(db *ir.EquationDatabase, want string) bool {
	for _, s := range db.Signatures {
		if s.String() == want {
			return true
		}
	}
	return false
}

func render(db *ir.EquationDatabase) []string {
	out := make([]string, len(db.Signatures))
	for i, s := range db.Signatures {
		out[i] = s.String()
	}
	return out
}
