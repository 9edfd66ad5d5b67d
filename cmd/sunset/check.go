package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bft-labs/sunset/pkg/lifecycle"
	"github.com/bft-labs/sunset/pkg/policy"
)

// newCheckCmd creates the "check" subcommand: the invocation-time question
// a host CLI asks before running a feature.
func newCheckCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "check <feature-id>",
		Short: "Evaluate one feature at the resolved release",
		Long: `Evaluate one feature against the policy at the resolved release.

A fully supported feature prints nothing and exits 0. A deprecated feature
that still works prints "Warning: ..." on stderr and exits 0, since the host
would run it anyway. A removed feature prints "Error: ..." on stderr and
exits 1; the host must not run it. Dependency transitions whose gate is
listed in --enable take the legacy path and warn instead of failing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := c.cfg.ResolveRelease()
			if err != nil {
				return err
			}

			t, err := c.tracker(at)
			if err != nil {
				return err
			}

			out := t.Check(policy.FeatureID(args[0]), at)
			switch out.State {
			case lifecycle.StateWarnAndAllow:
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", out.Message)
			case lifecycle.StateRefused:
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", out.Message)
				c.exit = exitError
			}
			return nil
		},
	}
}
