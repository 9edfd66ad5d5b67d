package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bft-labs/sunset/pkg/tracker"
	"github.com/bft-labs/sunset/plugins/policywatcher"
)

// newWatchCmd creates the "watch" subcommand: keep the tracker running with
// the policy watcher plugin so edits to the policy file take effect live.
func newWatchCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the policy file and report registry swaps",
		Long: `Run the tracker with the policy watcher plugin until interrupted. Each time
the policy file changes on disk, the registry is rebuilt and swapped in; a
broken edit is logged and the previous policy keeps serving. Mostly useful
for exercising a policy interactively while editing it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := c.cfg.ResolveRelease()
			if err != nil {
				return err
			}

			t, err := c.tracker(at,
				policywatcher.WithDefaultPolicyWatcher(),
				tracker.WithSwapHandler(func(ev tracker.SwapEvent) {
					fmt.Fprintf(cmd.OutOrStdout(), "policy reloaded: %d entries (was %d)\n",
						ev.CurrentCount, ev.PreviousCount)
				}),
			)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			if err := t.Start(ctx); err != nil {
				return fmt.Errorf("start tracker: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "watching %s (%d entries, evaluating at release %d), Ctrl-C to stop\n",
				c.cfg.PolicyPath, t.Registry().Len(), at)

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigCh)

			select {
			case <-sigCh:
			case <-ctx.Done():
			}

			return t.Stop()
		},
	}
}
