package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/kubevm/cmd/kubevm/handlers"
)

// SSH returns the ssh command.
//
// It opens an interactive shell on one of the cluster's nodes.
func SSH() *cobra.Command {
	var (
		configPath string
		ov         handlers.Overrides
	)

	cmd := &cobra.Command{
		Use:   "ssh <node>",
		Short: "Open a shell on a node",
		Long: `Open an interactive shell on a node VM.

Nodes are addressed by their short name: master, worker1, worker2, worker3.

Example:
  kubevm ssh worker1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Shell(cmd.Context(), configPath, ov, args[0])
		},
	}

	bindCommonFlags(cmd, &configPath, &ov)

	return cmd
}
