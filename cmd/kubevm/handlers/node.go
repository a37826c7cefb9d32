package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/imamik/kubevm/internal/node"
	"github.com/imamik/kubevm/internal/provision"
)

// Shell handles the ssh command.
//
// It opens an interactive shell on the named node ("master", "worker1", ...).
func Shell(ctx context.Context, configPath string, ov Overrides, nodeName string) error {
	cfg, err := resolveConfig(configPath, ov)
	if err != nil {
		return err
	}
	n, err := node.Parse(nodeName)
	if err != nil {
		return err
	}

	prov := newProvisioner(cfg)
	present, err := prov.Present(ctx, n)
	if err != nil {
		return err
	}
	if !present {
		return fmt.Errorf("node %s is not provisioned, run 'kubevm up' first", n.Name())
	}
	return prov.Shell(ctx, n)
}

// Logs handles the logs command.
//
// It prints the tail of a systemd unit's journal on the named node, or
// streams it to the terminal when follow is set. The default unit is kubelet.
func Logs(ctx context.Context, configPath string, ov Overrides, nodeName, unit string, lines int, follow bool) error {
	cfg, err := resolveConfig(configPath, ov)
	if err != nil {
		return err
	}
	n, err := node.Parse(nodeName)
	if err != nil {
		return err
	}

	prov := newProvisioner(cfg)
	journalArgs := []string{"journalctl", "-u", unit, "--no-pager", "-n", strconv.Itoa(lines)}

	if follow {
		present, err := prov.Present(ctx, n)
		if err != nil {
			return err
		}
		if !present {
			return fmt.Errorf("node %s is not provisioned, run 'kubevm up' first", n.Name())
		}
		return prov.Attach(ctx, n, append(journalArgs, "-f"))
	}

	out, err := prov.Exec(ctx, n, journalArgs)
	if errors.Is(err, provision.ErrNotFound) {
		return fmt.Errorf("node %s is not provisioned, run 'kubevm up' first", n.Name())
	}
	if err != nil {
		if out != "" {
			fmt.Print(out)
		}
		return err
	}
	fmt.Print(out)
	return nil
}
