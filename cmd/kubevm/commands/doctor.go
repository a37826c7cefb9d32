package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/kubevm/cmd/kubevm/handlers"
)

// Doctor returns the doctor command.
//
// It checks host prerequisites and prints the resolved configuration.
func Doctor() *cobra.Command {
	var (
		configPath string
		ov         handlers.Overrides
	)

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check host prerequisites and configuration",
		RunE: func(_ *cobra.Command, _ []string) error {
			return handlers.Doctor(configPath, ov)
		},
	}

	bindCommonFlags(cmd, &configPath, &ov)

	return cmd
}
