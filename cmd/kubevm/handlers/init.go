package handlers

import (
	"fmt"
	"os"

	"github.com/imamik/kubevm/internal/config"
)

// Factory function variables for init - can be replaced in tests.
var (
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	runWizard = config.RunWizard

	writeConfig = config.Write
)

// Init handles the init command.
//
// It creates a configuration file, either from the defaults or through the
// interactive wizard. An existing file is only overwritten with force.
func Init(outputPath string, useDefaults, force bool) error {
	if fileExists(outputPath) && !force {
		return fmt.Errorf("%s already exists, use --force to overwrite", outputPath)
	}

	cfg := config.Default()
	if !useDefaults {
		if err := runWizard(cfg); err != nil {
			return fmt.Errorf("wizard canceled: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := writeConfig(cfg, outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Println()
	fmt.Println("Configuration saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()
	fmt.Println("Cluster Summary")
	fmt.Println("---------------")
	fmt.Printf("  Name:       %s\n", cfg.ClusterName)
	fmt.Printf("  Nodes:      %d (1 master, %d worker(s))\n", cfg.Nodes, cfg.Nodes-1)
	fmt.Printf("  Per node:   %s memory, %d CPU(s), %s disk\n", cfg.Memory, cfg.CPUs, cfg.Disk)
	fmt.Printf("  Kubernetes: %s\n", cfg.KubernetesVersion)
	fmt.Println()
	fmt.Println("Next Steps")
	fmt.Println("----------")
	fmt.Printf("  1. Review %s if needed\n", outputPath)
	fmt.Println("  2. Create your cluster:")
	fmt.Println("     kubevm up")
	fmt.Println()
	return nil
}
