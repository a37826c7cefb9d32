package handlers

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/imamik/kubevm/internal/cluster"
	"github.com/imamik/kubevm/internal/kubeconfig"
)

// credentialMirror matches *kubeconfig.Mirror.
type credentialMirror interface {
	Install(sourcePath string) error
	Restore() error
}

// newMirror creates the host kubeconfig mirror. Replaced in tests.
var newMirror = func(clusterName string) (credentialMirror, error) {
	path, err := kubeconfig.DefaultHostPath()
	if err != nil {
		return nil, err
	}
	return kubeconfig.NewMirror(path, clusterName), nil
}

// installHostKubeconfig copies the stored admin kubeconfig into the host's
// kubectl config, backing up whatever was there.
func installHostKubeconfig(state cluster.StateDir, clusterName string) error {
	m, err := newMirror(clusterName)
	if err != nil {
		return err
	}
	return m.Install(state.KubeconfigPath())
}

// SetupKubectl handles the setup-kubectl command.
//
// It installs the cluster's admin kubeconfig into the host kubectl config.
// When the stored copy is missing it is fetched from the master first.
func SetupKubectl(ctx context.Context, configPath string, ov Overrides) error {
	cfg, err := resolveConfig(configPath, ov)
	if err != nil {
		return err
	}
	state, err := newStateDir(cfg.ClusterName)
	if err != nil {
		return err
	}

	source := state.KubeconfigPath()
	if _, statErr := os.Stat(source); os.IsNotExist(statErr) {
		ctrl, err := newControl(cfg, state)
		if err != nil {
			return err
		}
		data, err := ctrl.AdminKubeconfig(ctx)
		if err != nil {
			return fmt.Errorf("no stored kubeconfig and control plane unreachable: %w", err)
		}
		if err := state.Ensure(); err != nil {
			return err
		}
		if err := os.WriteFile(source, data, 0o600); err != nil {
			return fmt.Errorf("failed to store kubeconfig: %w", err)
		}
	}

	if err := installHostKubeconfig(state, cfg.ClusterName); err != nil {
		return err
	}
	log.Printf("kubectl context %q configured on this host", cfg.ClusterName)
	return nil
}

// ResetKubectl handles the reset-kubectl command.
//
// It restores the newest host kubeconfig backup taken by setup-kubectl.
func ResetKubectl(configPath string, ov Overrides) error {
	cfg, err := resolveConfig(configPath, ov)
	if err != nil {
		return err
	}
	m, err := newMirror(cfg.ClusterName)
	if err != nil {
		return err
	}
	if err := m.Restore(); err != nil {
		return err
	}
	log.Println("Host kubeconfig restored from backup")
	return nil
}
