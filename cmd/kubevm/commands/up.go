package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/imamik/kubevm/cmd/kubevm/handlers"
)

// Up returns the up command.
//
// Up converges the cluster to the desired node count: it launches missing
// VMs, initializes the control plane on the master, joins workers, and
// installs the admin kubeconfig on the host. Re-running it is safe; nodes
// that already exist are left alone.
func Up() *cobra.Command {
	var (
		configPath   string
		ov           handlers.Overrides
		nodes        int
		noKubeconfig bool
	)

	cmd := &cobra.Command{
		Use:   "up [nodes]",
		Short: "Create or update the cluster",
		Long: `Create or update your local Kubernetes cluster.

This command launches the master and worker VMs, initializes the control
plane with kubeadm, joins the workers, and configures kubectl on this host.

If no config file is specified, it looks for kubevm.yaml in the current
directory. Use 'kubevm init' to create a configuration file.

Examples:
  # Create a cluster with the configured node count
  kubevm up

  # Create a 4 node cluster (1 master, 3 workers)
  kubevm up 4

  # Re-run after a partial failure to finish convergence
  kubevm up`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 && nodes == 0 {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return err
				}
				nodes = n
			}
			return handlers.Up(cmd.Context(), configPath, nodes, ov, !noKubeconfig)
		},
	}

	bindCommonFlags(cmd, &configPath, &ov)
	cmd.Flags().IntVarP(&nodes, "nodes", "n", 0, "Total node count including the master (2-4)")
	cmd.Flags().StringVar(&ov.Memory, "memory", "", "Memory per node (e.g. 4G)")
	cmd.Flags().IntVar(&ov.CPUs, "cpus", 0, "CPUs per node")
	cmd.Flags().StringVar(&ov.Disk, "disk", "", "Disk per node (e.g. 20G)")
	cmd.Flags().StringVar(&ov.KubernetesVersion, "kubernetes-version", "", "Kubernetes minor version (e.g. 1.31)")
	cmd.Flags().BoolVar(&noKubeconfig, "no-kubeconfig", false, "Skip installing the kubeconfig on this host")

	return cmd
}
