package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/kubevm/cmd/kubevm/handlers"
)

// SetupKubectl returns the setup-kubectl command.
//
// It installs the cluster's admin kubeconfig into the host kubectl config
// under a context named after the cluster, backing up the previous config.
func SetupKubectl() *cobra.Command {
	var (
		configPath string
		ov         handlers.Overrides
	)

	cmd := &cobra.Command{
		Use:   "setup-kubectl",
		Short: "Point the host's kubectl at the cluster",
		Long: `Install the cluster's admin kubeconfig into ~/.kube/config.

The existing config is backed up first; 'kubevm reset-kubectl' restores it.
'kubevm up' runs this automatically unless --no-kubeconfig was given.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.SetupKubectl(cmd.Context(), configPath, ov)
		},
	}

	bindCommonFlags(cmd, &configPath, &ov)

	return cmd
}
