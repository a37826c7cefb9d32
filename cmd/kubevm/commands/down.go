package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/kubevm/cmd/kubevm/handlers"
)

// Down returns the down command.
//
// Down destroys every node VM and the stored cluster state, workers first.
func Down() *cobra.Command {
	var (
		configPath string
		ov         handlers.Overrides
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "down",
		Short: "Destroy the cluster and all node VMs",
		Long: `Destroy the cluster.

All node VMs are deleted, workers first, then the master, and the stored
cluster state (keys, kubeconfig, join command) is removed.

Example:
  kubevm down --force

WARNING: This operation is irreversible. All cluster data will be lost.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Down(cmd.Context(), configPath, ov, force)
		},
	}

	bindCommonFlags(cmd, &configPath, &ov)
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip the confirmation prompt")

	return cmd
}
