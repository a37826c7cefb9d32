package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/kubevm/cmd/kubevm/handlers"
)

// Status returns the status command.
//
// Status reports which node VMs exist and, when the control plane is
// reachable, which nodes it has registered and whether they are Ready.
func Status() *cobra.Command {
	var (
		configPath string
		ov         handlers.Overrides
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show cluster and node state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Status(cmd.Context(), configPath, ov)
		},
	}

	bindCommonFlags(cmd, &configPath, &ov)

	return cmd
}
