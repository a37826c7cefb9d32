package handlers

import (
	"fmt"

	"github.com/imamik/kubevm/internal/util/prerequisites"
)

// Doctor handles the doctor command.
//
// It checks the host for the required client tools and prints the resolved
// configuration. Live cluster state is the status command's job.
func Doctor(configPath string, ov Overrides) error {
	results := checkTools()

	fmt.Println()
	fmt.Println("Host tools")
	fmt.Println("----------")
	for _, r := range results {
		indicator := "ok     "
		switch {
		case !r.Found && r.Tool.Required:
			indicator = "missing"
		case !r.Found:
			indicator = "absent "
		}
		detail := r.Path
		if !r.Found {
			detail = r.Tool.InstallURL
		}
		fmt.Printf("  %s  %-10s %s\n", indicator, r.Tool.Name, detail)
	}
	fmt.Println()

	cfg, err := resolveConfig(configPath, ov)
	if err != nil {
		return err
	}

	fmt.Println("Configuration")
	fmt.Println("-------------")
	fmt.Printf("  Cluster:    %s\n", cfg.ClusterName)
	fmt.Printf("  Nodes:      %d\n", cfg.Nodes)
	fmt.Printf("  Per node:   %s memory, %d CPU(s), %s disk\n", cfg.Memory, cfg.CPUs, cfg.Disk)
	fmt.Printf("  Kubernetes: %s\n", cfg.KubernetesVersion)
	fmt.Printf("  Network:    %s (%s)\n", cfg.Network, cfg.Subnet)
	fmt.Println()
	fmt.Println("Run 'kubevm status' for live cluster state.")
	fmt.Println()

	return prerequisites.Verify(results)
}
