package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jar0582/schedsim/internal/policy"
)

func newPoliciesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "policies",
		Short: "List the available scheduling policies",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%-22s  %s\n", "NAME", "QUANTUM")
			for _, name := range newRegistry().Names() {
				q := "-"
				if policy.UsesQuantum(name) {
					q = "yes"
				}
				_, _ = fmt.Fprintf(out, "%-22s  %s\n", name, q)
			}
			return nil
		},
	}
}
