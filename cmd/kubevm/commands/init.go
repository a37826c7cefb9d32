package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/kubevm/cmd/kubevm/handlers"
)

// Init returns the command for creating a cluster configuration.
//
// By default an interactive wizard asks for the handful of settings that
// matter; --defaults writes the stock configuration without questions.
func Init() *cobra.Command {
	var (
		outputPath  string
		useDefaults bool
		force       bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a cluster configuration file",
		Long: `Create a cluster configuration file.

The wizard asks about the cluster name, node count, per-node resources and
the Kubernetes version. Everything else gets a sensible default that can be
edited in the generated YAML afterwards.

Examples:
  # Interactive wizard
  kubevm init

  # Write the defaults without asking
  kubevm init --defaults`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return handlers.Init(outputPath, useDefaults, force)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "kubevm.yaml", "Output file path")
	cmd.Flags().BoolVar(&useDefaults, "defaults", false, "Write the default configuration without prompting")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	return cmd
}
