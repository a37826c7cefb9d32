// Package handlers implements command execution for the kubevm CLI.
//
// Handlers wire the resolved configuration into the cluster reconciler and
// its collaborators. Construction goes through package-level factory
// variables so tests can substitute fakes.
package handlers

import (
	"context"

	"github.com/imamik/kubevm/internal/cluster"
	"github.com/imamik/kubevm/internal/config"
	"github.com/imamik/kubevm/internal/node"
	"github.com/imamik/kubevm/internal/platform/multipass"
	"github.com/imamik/kubevm/internal/provision"
	"github.com/imamik/kubevm/internal/ssh"
)

// Overrides carries flag values layered over the loaded configuration.
// Zero values mean "flag not set".
type Overrides struct {
	Cluster           string
	Memory            string
	CPUs              int
	Disk              string
	KubernetesVersion string
}

// Orchestrator is the reconciler surface handlers depend on. Matches
// *cluster.Reconciler.
type Orchestrator interface {
	Reconcile(ctx context.Context, desired int) (*cluster.Status, error)
	Down(ctx context.Context) error
	Status(ctx context.Context) (*cluster.Status, error)
}

// Factory function variables - can be replaced in tests.
var (
	// loadConfig resolves configuration from file, environment and defaults.
	loadConfig = config.Load

	// newStateDir resolves the per-cluster state directory.
	newStateDir = cluster.DefaultStateDir

	// newProvisioner creates the VM provisioner for the cluster.
	newProvisioner = func(cfg *config.Config) provision.NodeProvisioner {
		return multipass.NewClient(multipass.Options{
			Cluster:           cfg.ClusterName,
			Image:             cfg.Image,
			Network:           cfg.Network,
			KubernetesVersion: cfg.KubernetesVersion,
		})
	}

	// newControl creates the control-plane client, connected to the master
	// node's deterministic address.
	newControl = func(cfg *config.Config, state cluster.StateDir) (cluster.Control, error) {
		addr, err := node.Master().Address(cfg.Subnet)
		if err != nil {
			return nil, err
		}
		pair, err := state.EnsureKeyPair(cfg.ClusterName)
		if err != nil {
			return nil, err
		}
		return cluster.NewKubeadmControl(ssh.NewSSHCommunicator(addr, cfg.SSHUser, pair.PrivateKey)), nil
	}

	// newReconciler assembles the reconciler from the factories above.
	newReconciler = func(cfg *config.Config, state cluster.StateDir) (Orchestrator, error) {
		ctrl, err := newControl(cfg, state)
		if err != nil {
			return nil, err
		}
		return cluster.NewReconciler(cfg, newProvisioner(cfg), ctrl, state), nil
	}
)

// resolveConfig loads the configuration and layers flag overrides on top.
func resolveConfig(configPath string, ov Overrides) (*config.Config, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if ov.Cluster != "" {
		cfg.ClusterName = ov.Cluster
	}
	if ov.Memory != "" {
		cfg.Memory = ov.Memory
	}
	if ov.CPUs != 0 {
		cfg.CPUs = ov.CPUs
	}
	if ov.Disk != "" {
		cfg.Disk = ov.Disk
	}
	if ov.KubernetesVersion != "" {
		cfg.KubernetesVersion = ov.KubernetesVersion
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildReconciler resolves the state directory and wires the reconciler.
func buildReconciler(cfg *config.Config) (Orchestrator, cluster.StateDir, error) {
	state, err := newStateDir(cfg.ClusterName)
	if err != nil {
		return nil, "", err
	}
	rec, err := newReconciler(cfg, state)
	if err != nil {
		return nil, "", err
	}
	return rec, state, nil
}
