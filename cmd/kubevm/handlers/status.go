package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/kubevm/internal/ui"
)

// Status handles the status command.
//
// It probes the VMs and the control plane and prints the observed state.
// An unreachable control plane is reported inside the status rather than
// failing the command; only a provisioner probe failure is an error.
func Status(ctx context.Context, configPath string, ov Overrides) error {
	cfg, err := resolveConfig(configPath, ov)
	if err != nil {
		return err
	}

	rec, _, err := buildReconciler(cfg)
	if err != nil {
		return err
	}

	status, err := rec.Status(ctx)
	if err != nil {
		return fmt.Errorf("status probe failed: %w", err)
	}
	fmt.Print(ui.RenderStatus(status))
	return nil
}
