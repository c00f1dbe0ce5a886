package harness

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/roach88/sigprobe/internal/catalog"
	"github.com/roach88/sigprobe/internal/ir"
)

// Assertion types.
const (
	AssertSignaturePresent = "signature_present"
	AssertSignatureAbsent  = "signature_absent"
	AssertOperationCount   = "operation_count"
	AssertOwnerCount       = "owner_count"
)

// Scenario is one conformance test case.
type Scenario struct {
	// Name identifies the scenario and names its golden file.
	Name string `yaml:"name"`

	// Description states what the scenario validates.
	Description string `yaml:"description"`

	// Owners restricts discovery. Empty means every registered owner.
	Owners []string `yaml:"owners,omitempty"`

	// MaxArity overrides the default arity bound when set.
	MaxArity *int `yaml:"max_arity,omitempty"`

	// Tolerance overrides the default differential tolerance when set.
	Tolerance *float64 `yaml:"tolerance,omitempty"`

	// Deny lists operation names never probed.
	Deny []string `yaml:"deny,omitempty"`

	// RunID fixes the run id. Defaults to "harness-<name>".
	RunID string `yaml:"run_id,omitempty"`

	// Assertions are checked against the stored database.
	Assertions []Assertion `yaml:"assertions"`
}

// Assertion is a single check over the discovered signatures.
type Assertion struct {
	Type string `yaml:"type"`

	// Signature is the rendered form, e.g. "Vector3.dot(Vector3) -> Scalar".
	// Used by signature_present and signature_absent.
	Signature string `yaml:"signature,omitempty"`

	// Owner is required by owner_count and optional for operation_count.
	Owner string `yaml:"owner,omitempty"`

	// Operation is required by operation_count.
	Operation string `yaml:"operation,omitempty"`

	// Count is the expected number of signatures for the count assertions.
	Count *int `yaml:"count,omitempty"`
}

// LoadScenario loads and validates a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Parse YAML with strict field validation (catches typos)
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// LoadScenarios loads every *.yaml file in dir, sorted by file name.
func LoadScenarios(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	slices.Sort(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		s, err := LoadScenario(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(p), err)
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// Profile converts the scenario's discovery settings into a profile.
// Owner names must already have been validated.
func (s *Scenario) Profile() (ir.Profile, error) {
	p := ir.DefaultProfile()
	p.Source = "harness/" + s.Name
	if s.MaxArity != nil {
		p.MaxArity = *s.MaxArity
	}
	if s.Tolerance != nil {
		p.Tolerance = *s.Tolerance
	}
	if len(s.Owners) > 0 {
		owners, err := catalog.ParseList(s.Owners)
		if err != nil {
			return ir.Profile{}, err
		}
		p.Owners = owners
	}
	if len(s.Deny) > 0 {
		p.Deny = slices.Clone(s.Deny)
	}
	return p, nil
}

func (s *Scenario) runID() string {
	if s.RunID != "" {
		return s.RunID
	}
	return "harness-" + s.Name
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, o := range s.Owners {
		if _, err := catalog.Parse(o); err != nil {
			return fmt.Errorf("owners[%d]: %w", i, err)
		}
	}

	if s.MaxArity != nil && (*s.MaxArity < 0 || *s.MaxArity > ir.MaxArityLimit) {
		return fmt.Errorf("max_arity must be in [0, %d], got %d", ir.MaxArityLimit, *s.MaxArity)
	}

	if s.Tolerance != nil {
		tol := *s.Tolerance
		if math.IsNaN(tol) || math.IsInf(tol, 0) || tol <= 0 {
			return fmt.Errorf("tolerance must be finite and positive")
		}
	}

	for i, name := range s.Deny {
		if name == "" {
			return fmt.Errorf("deny[%d]: operation name is empty", i)
		}
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(a); err != nil {
			return fmt.Errorf("assertions[%d]: %w", i, err)
		}
	}

	return nil
}

func validateAssertion(a Assertion) error {
	switch a.Type {
	case AssertSignaturePresent, AssertSignatureAbsent:
		if a.Signature == "" {
			return fmt.Errorf("%s requires signature", a.Type)
		}
	case AssertOperationCount:
		if a.Operation == "" {
			return fmt.Errorf("operation_count requires operation")
		}
		if a.Owner != "" {
			if _, err := catalog.Parse(a.Owner); err != nil {
				return err
			}
		}
		if err := validateCount(a); err != nil {
			return err
		}
	case AssertOwnerCount:
		if a.Owner == "" {
			return fmt.Errorf("owner_count requires owner")
		}
		if _, err := catalog.Parse(a.Owner); err != nil {
			return err
		}
		if err := validateCount(a); err != nil {
			return err
		}
	case "":
		return fmt.Errorf("type is required")
	default:
		return fmt.Errorf("unknown assertion type: %s", a.Type)
	}
	return nil
}

func validateCount(a Assertion) error {
	if a.Count == nil {
		return fmt.Errorf("%s requires count", a.Type)
	}
	if *a.Count < 0 {
		return fmt.Errorf("count must be non-negative, got %d", *a.Count)
	}
	return nil
}
