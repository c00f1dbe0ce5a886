package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/sigprobe/internal/bindings"
	"github.com/roach88/sigprobe/internal/catalog"
	"github.com/roach88/sigprobe/internal/engine"
	"github.com/roach88/sigprobe/internal/ir"
)

// OpsResult lists the operations discovery would probe on one owner.
type OpsResult struct {
	Owner   string   `json:"owner"`
	Methods []string `json:"methods"`
	Statics []string `json:"statics"`
}

// Text renders one line per calling mode.
func (r OpsResult) Text() string {
	var b strings.Builder
	fmt.Fprintln(&b, r.Owner)
	fmt.Fprintf(&b, "  methods (%d): %s\n", len(r.Methods), strings.Join(r.Methods, ", "))
	fmt.Fprintf(&b, "  statics (%d): %s\n", len(r.Statics), strings.Join(r.Statics, ", "))
	return b.String()
}

// NewOpsCommand creates the ops command.
func NewOpsCommand(rootOpts *RootOptions) *cobra.Command {
	var deny []string

	cmd := &cobra.Command{
		Use:   "ops <owner>",
		Short: "List the operations discovery probes on an owner",
		Long: `List the enumerated instance and static operations of an owner type,
after the built-in denylist and any --deny entries are applied.

Example:
  sigprobe ops Vector3
  sigprobe ops quaternion --deny slerp`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOps(rootOpts, args[0], deny, cmd)
		},
	}

	cmd.Flags().StringSliceVar(&deny, "deny", nil, "extra operation names to exclude (repeatable)")

	return cmd
}

func runOps(opts *RootOptions, name string, deny []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	owner, err := catalog.Parse(name)
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeBadFlag, "unknown owner", err)
	}

	profile := ir.DefaultProfile()
	profile.Owners = []catalog.Type{owner}
	profile.Deny = deny

	eng, err := engine.New(bindings.Default(), profile)
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeBadFlag, "owner has no surface", err)
	}

	methods, statics := eng.Operations(owner)
	return formatter.Success(OpsResult{
		Owner:   owner.String(),
		Methods: methods,
		Statics: statics,
	})
}
