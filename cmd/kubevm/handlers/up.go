package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/imamik/kubevm/internal/config"
	"github.com/imamik/kubevm/internal/ui"
	"github.com/imamik/kubevm/internal/util/prerequisites"
)

// checkTools looks up the client tools kubevm depends on.
var checkTools = func() []prerequisites.CheckResult {
	return prerequisites.Check(prerequisites.DefaultTools())
}

// Up handles the up command.
//
// It converges the cluster to the desired node count, creating the master
// and missing workers, and installs the admin kubeconfig on the host unless
// disabled. A nodes value of zero means "use the configured count".
func Up(ctx context.Context, configPath string, nodes int, ov Overrides, installKubeconfig bool) error {
	cfg, err := resolveConfig(configPath, ov)
	if err != nil {
		return err
	}
	if nodes != 0 {
		cfg.Nodes = nodes
	}
	if err := config.ValidateNodeCount(cfg.Nodes); err != nil {
		return err
	}

	if err := prerequisites.Verify(checkTools()); err != nil {
		return err
	}

	rec, state, err := buildReconciler(cfg)
	if err != nil {
		return err
	}

	log.Printf("Reconciling cluster %s to %d node(s)", cfg.ClusterName, cfg.Nodes)
	status, recErr := rec.Reconcile(ctx, cfg.Nodes)
	if status != nil {
		fmt.Print(ui.RenderStatus(status))
	}
	if recErr != nil {
		return fmt.Errorf("up failed: %w", recErr)
	}

	if installKubeconfig {
		if err := installHostKubeconfig(state, cfg.ClusterName); err != nil {
			log.Printf("Warning: kubeconfig install failed: %v", err)
			log.Printf("Run 'kubevm setup-kubectl' to retry, or 'kubevm kubectl' to go through the master")
			return nil
		}
		log.Printf("kubectl context %q configured on this host", cfg.ClusterName)
	}
	return nil
}
