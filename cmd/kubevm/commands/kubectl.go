package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/kubevm/cmd/kubevm/handlers"
)

// Kubectl returns the kubectl command.
//
// Everything after the first non-flag argument is passed to kubectl on the
// master node unchanged, so no host-side kubectl is needed.
func Kubectl() *cobra.Command {
	var (
		configPath string
		ov         handlers.Overrides
	)

	cmd := &cobra.Command{
		Use:   "kubectl <args>...",
		Short: "Run kubectl on the master node",
		Long: `Run kubectl on the master node.

The arguments are executed as-is with the cluster admin credentials that
live on the master, so this works without 'kubevm setup-kubectl'.

Examples:
  kubevm kubectl get nodes
  kubevm kubectl get pods -A -o wide`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Kubectl(cmd.Context(), configPath, ov, args)
		},
	}

	// Stop flag parsing at the first positional so kubectl's own flags
	// (-o, -A, ...) pass through untouched.
	cmd.Flags().SetInterspersed(false)
	bindCommonFlags(cmd, &configPath, &ov)

	return cmd
}
