// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing, flag binding, and validation. Command execution is delegated to
// handler functions in the handlers package.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/kubevm/cmd/kubevm/handlers"
)

// Root returns the root command for the kubevm CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kubevm",
		Short: "Run a small kubeadm Kubernetes cluster on local VMs",
	}

	// Lifecycle commands
	cmd.AddCommand(Init())
	cmd.AddCommand(Up())
	cmd.AddCommand(Scale())
	cmd.AddCommand(Down())
	cmd.AddCommand(Status())

	// Node access commands
	cmd.AddCommand(SSH())
	cmd.AddCommand(Logs())
	cmd.AddCommand(Kubectl())

	// Host integration commands
	cmd.AddCommand(SetupKubectl())
	cmd.AddCommand(ResetKubectl())

	// Utility commands
	cmd.AddCommand(Doctor())
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}

// bindCommonFlags attaches the flags every cluster-facing command shares.
func bindCommonFlags(cmd *cobra.Command, configPath *string, ov *handlers.Overrides) {
	cmd.Flags().StringVarP(configPath, "config", "c", "", "Path to configuration file (default: kubevm.yaml)")
	cmd.Flags().StringVar(&ov.Cluster, "cluster", "", "Cluster name override")
}
