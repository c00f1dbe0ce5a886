package cli

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/sigprobe/internal/catalog"
	"github.com/roach88/sigprobe/internal/compiler"
	"github.com/roach88/sigprobe/internal/ir"
)

// ProfileFlags are the discovery settings shared by discover and ops.
// Flags override the fields of a --profile file.
type ProfileFlags struct {
	Path      string
	Source    string
	Owners    []string
	MaxArity  int
	Tolerance float64
	Deny      []string
}

func (f *ProfileFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Path, "profile", "p", "", "CUE profile file or directory")
	cmd.Flags().StringVar(&f.Source, "source", "", "source label recorded in the database")
	cmd.Flags().StringSliceVar(&f.Owners, "owner", nil, "restrict discovery to these owner types (repeatable)")
	cmd.Flags().IntVar(&f.MaxArity, "max-arity", ir.DefaultMaxArity, "largest parameter count tried")
	cmd.Flags().Float64Var(&f.Tolerance, "tolerance", ir.DefaultTolerance, "absolute tolerance for differential checks")
	cmd.Flags().StringSliceVar(&f.Deny, "deny", nil, "extra operation names never probed (repeatable)")
}

// resolve builds the effective profile: defaults, then the profile file,
// then any flag the user set explicitly. The result is validated.
func (f *ProfileFlags) resolve(cmd *cobra.Command) (ir.Profile, error) {
	p := ir.DefaultProfile()
	if f.Path != "" {
		loaded, err := LoadProfile(f.Path)
		if err != nil {
			return ir.Profile{}, err
		}
		p = *loaded
	}

	flags := cmd.Flags()
	if flags.Changed("source") {
		p.Source = f.Source
	}
	if flags.Changed("owner") {
		owners, err := catalog.ParseList(f.Owners)
		if err != nil {
			return ir.Profile{}, &LoadError{Code: compiler.ErrInvalidOwner, Message: err.Error()}
		}
		p.Owners = owners
	}
	if flags.Changed("max-arity") {
		p.MaxArity = f.MaxArity
	}
	if flags.Changed("tolerance") {
		p.Tolerance = f.Tolerance
	}
	if flags.Changed("deny") {
		p.Deny = append(slices.Clone(p.Deny), f.Deny...)
	}

	if errs := compiler.Validate(&p); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
		}
		return ir.Profile{}, &LoadError{Code: errs[0].Code, Message: strings.Join(msgs, "; ")}
	}
	return p, nil
}

// profileFailure reports a profile resolution error as a command error.
func profileFailure(f *OutputFormatter, err error) error {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return f.fail(ExitCommandError, loadErr.Code, "invalid profile", err)
	}
	return f.fail(ExitCommandError, ErrCodeGeneric, "invalid profile", err)
}
