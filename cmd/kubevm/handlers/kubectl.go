package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/imamik/kubevm/internal/node"
	"github.com/imamik/kubevm/internal/provision"
)

// Kubectl handles the kubectl command.
//
// It runs kubectl on the master node with the given arguments and prints
// the combined output. This works without any host-side kubectl setup.
func Kubectl(ctx context.Context, configPath string, ov Overrides, args []string) error {
	if len(args) == 0 {
		return errors.New("no kubectl arguments given")
	}

	cfg, err := resolveConfig(configPath, ov)
	if err != nil {
		return err
	}

	prov := newProvisioner(cfg)
	out, err := prov.Exec(ctx, node.Master(), append([]string{"kubectl"}, args...))
	if errors.Is(err, provision.ErrNotFound) {
		return fmt.Errorf("no cluster %s, run 'kubevm up' first", cfg.ClusterName)
	}
	if out != "" {
		fmt.Print(out)
	}
	if err != nil {
		return fmt.Errorf("kubectl failed: %w", err)
	}
	return nil
}
