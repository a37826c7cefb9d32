package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/kubevm/cmd/kubevm/handlers"
)

// Logs returns the logs command.
//
// It prints the journal tail of a systemd unit on a node, kubelet by default.
func Logs() *cobra.Command {
	var (
		configPath string
		ov         handlers.Overrides
		unit       string
		lines      int
		follow     bool
	)

	cmd := &cobra.Command{
		Use:   "logs <node>",
		Short: "Show service logs from a node",
		Long: `Show the journal tail of a systemd unit on a node VM.

Examples:
  # Last 200 kubelet lines from the master
  kubevm logs master

  # containerd logs from a worker
  kubevm logs worker1 --unit containerd --lines 50

  # Follow the kubelet journal
  kubevm logs master -f`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Logs(cmd.Context(), configPath, ov, args[0], unit, lines, follow)
		},
	}

	bindCommonFlags(cmd, &configPath, &ov)
	cmd.Flags().StringVarP(&unit, "unit", "u", "kubelet", "Systemd unit to read")
	cmd.Flags().IntVar(&lines, "lines", 200, "Number of journal lines to show")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Stream the journal instead of printing a tail")

	return cmd
}
