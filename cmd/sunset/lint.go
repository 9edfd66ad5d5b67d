package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bft-labs/sunset/internal/policyfile"
	"github.com/bft-labs/sunset/pkg/lifecycle"
	"github.com/bft-labs/sunset/pkg/policy"
	"github.com/bft-labs/sunset/pkg/registry"
	"github.com/bft-labs/sunset/pkg/release"
)

// newLintCmd creates the "lint" subcommand: policy validation for CI.
func newLintCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "lint",
		Short: "Validate the policy file and report removable code",
		Long: `Validate the policy file without evaluating anything. Every invalid or
duplicate entry is reported (exit 1). When a release is also resolvable from
--release or --at-version, entries whose refusal has already begun are
flagged: their implementation is dead code that can be deleted (exit 2 when
only such warnings are found). A gated dependency is only flagged once its
opt-in gate is itself refused, since until then the legacy path must stay in
the tree.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := policyfile.Parse(c.cfg.PolicyPath)
			if err != nil {
				return err
			}

			if problems := doc.Lint(); len(problems) > 0 {
				for _, p := range problems {
					fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", p)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %d problem(s)\n", c.cfg.PolicyPath, len(problems))
				c.exit = exitError
				return nil
			}

			reg, err := doc.Registry()
			if err != nil {
				return err
			}

			// The stub report needs a release to compare against; lint
			// stays useful without one, it just validates.
			if at, err := c.cfg.ResolveRelease(); err == nil {
				if n := reportRemovable(cmd, reg, at); n > 0 {
					c.exit = exitWarning
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: OK, %d entries\n", c.cfg.PolicyPath, reg.Len())
			return nil
		},
	}
}

// reportRemovable warns about entries whose code can be physically deleted
// at the given release and returns how many it found.
func reportRemovable(cmd *cobra.Command, reg *registry.Registry, at release.Number) int {
	removable := 0
	for _, id := range reg.Features() {
		e, _ := reg.Lookup(id)
		if lifecycle.Evaluate(id, e.Record, at).State != lifecycle.StateRefused {
			continue
		}

		if e.IsDependency() {
			// Refused but still reachable through the gate unless the
			// gate's own record is refused too.
			gate, ok := reg.Lookup(policy.FeatureID(e.Gate))
			if !ok || lifecycle.Evaluate(policy.FeatureID(e.Gate), gate.Record, at).State != lifecycle.StateRefused {
				continue
			}
			fmt.Fprintf(cmd.ErrOrStderr(),
				"Warning: %s and its %s opt-in are both refused at release %d; the legacy code path can be deleted\n",
				id, e.Gate, at)
			removable++
			continue
		}

		fmt.Fprintf(cmd.ErrOrStderr(),
			"Warning: %s was removed in release %d; its stub can be deleted\n",
			id, e.Record.EffectiveRemoval())
		removable++
	}
	return removable
}
