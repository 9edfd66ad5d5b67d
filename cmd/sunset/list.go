package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bft-labs/sunset/pkg/lifecycle"
)

// listRow is one entry of the list output, shared by the table and JSON
// renderers.
type listRow struct {
	Feature      string `json:"feature"`
	Kind         string `json:"kind"`
	Tier         string `json:"tier"`
	DeprecatedAt int    `json:"deprecated_at"`
	RemovalAt    int    `json:"removal_at"`
	State        string `json:"state"`
	Gate         string `json:"gate,omitempty"`
	Replacement  string `json:"replacement,omitempty"`
}

// newListCmd creates the "list" subcommand: the whole policy at a glance,
// with each entry's state at the resolved release.
func newListCmd(c *cli) *cobra.Command {
	var stateFilter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every policy entry and its state at the resolved release",
		Long: `List every policy entry with its tier, schedule, and lifecycle state at the
resolved release. Entries are sorted by feature id, so the output is stable
across runs and suitable for diffing in CI. Gates from --enable are applied,
so a gated dependency shows the state the host would actually observe.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := c.cfg.ResolveRelease()
			if err != nil {
				return err
			}

			var filter *lifecycle.State
			if stateFilter != "" {
				s, err := lifecycle.ParseState(stateFilter)
				if err != nil {
					return err
				}
				filter = &s
			}

			t, err := c.tracker(at)
			if err != nil {
				return err
			}

			reg := t.Registry()
			rows := make([]listRow, 0, reg.Len())
			for _, id := range reg.Features() {
				e, _ := reg.Lookup(id)
				out := t.Check(id, at)
				if filter != nil && out.State != *filter {
					continue
				}

				kind := "feature"
				if e.IsDependency() {
					kind = "dependency"
				}
				rows = append(rows, listRow{
					Feature:      string(id),
					Kind:         kind,
					Tier:         e.Record.Tier.String(),
					DeprecatedAt: int(e.Record.DeprecatedAt),
					RemovalAt:    int(e.Record.EffectiveRemoval()),
					State:        out.State.String(),
					Gate:         string(e.Gate),
					Replacement:  string(e.Record.Replacement),
				})
			}

			if c.cfg.Output == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "FEATURE\tKIND\tTIER\tDEPRECATED\tREMOVAL\tSTATE\tREPLACEMENT")
			for _, r := range rows {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
					r.Feature, r.Kind, r.Tier, r.DeprecatedAt, r.RemovalAt, r.State, r.Replacement)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&stateFilter, "state", "", "only show entries in this state: active, warn, or refused")
	return cmd
}
