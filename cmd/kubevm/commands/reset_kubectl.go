package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/kubevm/cmd/kubevm/handlers"
)

// ResetKubectl returns the reset-kubectl command.
//
// It restores the newest kubeconfig backup taken by setup-kubectl.
func ResetKubectl() *cobra.Command {
	var (
		configPath string
		ov         handlers.Overrides
	)

	cmd := &cobra.Command{
		Use:   "reset-kubectl",
		Short: "Restore the host's previous kubectl config",
		RunE: func(_ *cobra.Command, _ []string) error {
			return handlers.ResetKubectl(configPath, ov)
		},
	}

	bindCommonFlags(cmd, &configPath, &ov)

	return cmd
}
