package config

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
)

// RunWizard interactively fills cfg for `kubevm init`. Fields start from the
// current (default) values so accepting every prompt yields a working config.
func RunWizard(cfg *Config) error {
	cpus := strconv.Itoa(cfg.CPUs)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Cluster name").
				Description("Prefixes VM names and the state directory").
				Value(&cfg.ClusterName).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("cluster name is required")
					}
					return nil
				}),

			huh.NewSelect[int]().
				Title("Total nodes").
				Description("Master plus workers").
				Options(
					huh.NewOption("2 (master + 1 worker)", 2),
					huh.NewOption("3 (master + 2 workers)", 3),
					huh.NewOption("4 (master + 3 workers)", 4),
				).
				Value(&cfg.Nodes),

			huh.NewInput().
				Title("Memory per node").
				Value(&cfg.Memory),

			huh.NewInput().
				Title("CPUs per node").
				Value(&cpus).
				Validate(func(s string) error {
					if _, err := strconv.Atoi(s); err != nil {
						return fmt.Errorf("must be a number")
					}
					return nil
				}),

			huh.NewInput().
				Title("Disk per node").
				Value(&cfg.Disk),

			huh.NewInput().
				Title("Kubernetes version").
				Description("Minor version, e.g. 1.31").
				Value(&cfg.KubernetesVersion),
		),
	)

	if err := form.Run(); err != nil {
		return fmt.Errorf("wizard aborted: %w", err)
	}

	n, err := strconv.Atoi(cpus)
	if err != nil {
		return fmt.Errorf("invalid cpu count: %w", err)
	}
	cfg.CPUs = n
	return nil
}
