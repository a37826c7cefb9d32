package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/imamik/kubevm/internal/config"
	"github.com/imamik/kubevm/internal/ui"
)

// Scale handles the scale command.
//
// It converges the worker set to the desired total node count. Scaling up
// joins new workers through a freshly minted join command; scaling down
// drains and removes the highest-numbered workers first. A nodes value of
// zero means "use the configured count".
func Scale(ctx context.Context, configPath string, nodes int, ov Overrides) error {
	cfg, err := resolveConfig(configPath, ov)
	if err != nil {
		return err
	}
	if nodes == 0 {
		nodes = cfg.Nodes
	}
	if err := config.ValidateNodeCount(nodes); err != nil {
		return err
	}

	rec, _, err := buildReconciler(cfg)
	if err != nil {
		return err
	}

	log.Printf("Scaling cluster %s to %d node(s)", cfg.ClusterName, nodes)
	status, recErr := rec.Reconcile(ctx, nodes)
	if status != nil {
		fmt.Print(ui.RenderStatus(status))
	}
	if recErr != nil {
		return fmt.Errorf("scale failed: %w", recErr)
	}
	return nil
}
