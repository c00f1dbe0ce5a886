package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/sigprobe/internal/catalog"
	"github.com/roach88/sigprobe/internal/compiler"
	"github.com/roach88/sigprobe/internal/ir"
)

// ValidationIssue is one problem found in a profile.
type ValidationIssue struct {
	Code    string `json:"code"`
	Field   string `json:"field"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid   bool              `json:"valid"`
	Profile *ir.Profile       `json:"profile,omitempty"`
	Errors  []ValidationIssue `json:"errors,omitempty"`
}

// Text renders the verdict and either the profile or the problems.
func (r ValidationResult) Text() string {
	var b strings.Builder
	if !r.Valid {
		fmt.Fprintf(&b, "Profile invalid: %d error(s)\n", len(r.Errors))
		for _, e := range r.Errors {
			if e.Line > 0 {
				fmt.Fprintf(&b, "  [%s] line %d: %s: %s\n", e.Code, e.Line, e.Field, e.Message)
			} else {
				fmt.Fprintf(&b, "  [%s] %s: %s\n", e.Code, e.Field, e.Message)
			}
		}
		return b.String()
	}

	p := r.Profile
	owners := "all"
	if len(p.Owners) > 0 {
		owners = strings.Join(catalog.Names(p.Owners), ", ")
	}
	fmt.Fprintln(&b, "Profile valid")
	fmt.Fprintf(&b, "  source:    %s\n", p.Source)
	fmt.Fprintf(&b, "  max_arity: %d\n", p.MaxArity)
	fmt.Fprintf(&b, "  tolerance: %g\n", p.Tolerance)
	fmt.Fprintf(&b, "  owners:    %s\n", owners)
	fmt.Fprintf(&b, "  deny:      %s\n", strings.Join(p.Deny, ", "))
	return b.String()
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <profile>",
		Short: "Validate a CUE run profile",
		Long: `Validate a CUE run profile file or directory without running discovery.

Performs syntax checking, schema validation against #Profile and
consistency checks (duplicate owners, blank deny entries).

Exit codes:
  0 - Profile is valid
  1 - Profile has errors
  2 - Command error (path not found, etc.)`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	formatter.VerboseLog("validating %s", path)

	p, err := LoadProfile(path)
	if err != nil {
		var loadErr *LoadError
		if !errors.As(err, &loadErr) {
			return formatter.fail(ExitCommandError, ErrCodeGeneric, "failed to load profile", err)
		}
		// Missing paths and empty directories are command errors, not
		// profile errors.
		switch loadErr.Code {
		case ErrCodeNotFound, ErrCodeNoFiles, ErrCodeScanError:
			return formatter.fail(ExitCommandError, loadErr.Code, loadErr.Message, nil)
		}
		return reportInvalid(formatter, []ValidationIssue{{
			Code:    loadErr.Code,
			Field:   "profile",
			Message: loadErr.Message,
			Line:    loadErr.Line(),
		}})
	}

	if errs := compiler.Validate(p); len(errs) > 0 {
		issues := make([]ValidationIssue, len(errs))
		for i, e := range errs {
			issues[i] = ValidationIssue{Code: e.Code, Field: e.Field, Message: e.Message}
		}
		return reportInvalid(formatter, issues)
	}

	return formatter.Success(ValidationResult{Valid: true, Profile: p})
}

func reportInvalid(f *OutputFormatter, issues []ValidationIssue) error {
	var err error
	if f.Format == "json" {
		err = f.Error(issues[0].Code, "profile invalid", issues)
	} else {
		err = f.Success(ValidationResult{Valid: false, Errors: issues})
	}
	if err != nil {
		return err
	}
	return NewExitError(ExitFailure, fmt.Sprintf("profile has %d error(s)", len(issues)))
}
