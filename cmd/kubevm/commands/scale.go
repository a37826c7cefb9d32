package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/imamik/kubevm/cmd/kubevm/handlers"
)

// Scale returns the scale command.
//
// Scale changes the worker count of a running cluster. The master is never
// scaled; the total node count stays within 2-4.
func Scale() *cobra.Command {
	var (
		configPath string
		ov         handlers.Overrides
	)

	cmd := &cobra.Command{
		Use:   "scale [nodes]",
		Short: "Scale the cluster to a total node count",
		Long: `Scale the cluster's worker set.

New workers join through a freshly created join token. When scaling down,
the highest-numbered workers are drained, removed from the cluster, and
destroyed first. Without an argument the configured node count is the
target.

Examples:
  # Grow to 4 nodes (1 master, 3 workers)
  kubevm scale 4

  # Shrink back to 2 nodes
  kubevm scale 2`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nodes := 0
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return err
				}
				nodes = n
			}
			return handlers.Scale(cmd.Context(), configPath, nodes, ov)
		},
	}

	bindCommonFlags(cmd, &configPath, &ov)

	return cmd
}
