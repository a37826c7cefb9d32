package cluster

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/imamik/kubevm/internal/util/keygen"
)

// StateDir is the host-side directory holding a cluster's shared state: the
// SSH key pair, the join artifact, and the shared kubeconfig copy. It is the
// only cluster state persisted outside the VMs.
type StateDir string

// DefaultStateDir returns ~/.kubevm/<cluster>.
func DefaultStateDir(cluster string) (StateDir, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return StateDir(filepath.Join(home, ".kubevm", cluster)), nil
}

// Ensure creates the directory if needed.
func (s StateDir) Ensure() error {
	if err := os.MkdirAll(string(s), 0o700); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	return nil
}

// Remove deletes the directory and everything in it, discarding the join
// artifact and shared kubeconfig.
func (s StateDir) Remove() error {
	return os.RemoveAll(string(s))
}

// JoinArtifactPath is where the coordinator persists the join command.
func (s StateDir) JoinArtifactPath() string {
	return filepath.Join(string(s), "join-command")
}

// KubeconfigPath is the cluster-shared admin kubeconfig copy.
func (s StateDir) KubeconfigPath() string {
	return filepath.Join(string(s), "kubeconfig")
}

// PrivateKeyPath is the cluster SSH private key.
func (s StateDir) PrivateKeyPath() string {
	return filepath.Join(string(s), "id_ed25519")
}

// PublicKeyPath is the cluster SSH public key (authorized_keys format).
func (s StateDir) PublicKeyPath() string {
	return filepath.Join(string(s), "id_ed25519.pub")
}

// EnsureKeyPair loads the cluster key pair, generating and persisting one on
// first use.
func (s StateDir) EnsureKeyPair(cluster string) (*keygen.KeyPair, error) {
	priv, privErr := os.ReadFile(s.PrivateKeyPath())
	pub, pubErr := os.ReadFile(s.PublicKeyPath())
	if privErr == nil && pubErr == nil {
		return &keygen.KeyPair{PrivateKey: priv, PublicKey: pub}, nil
	}

	pair, err := keygen.GenerateED25519KeyPair("kubevm-" + cluster)
	if err != nil {
		return nil, err
	}
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	if err := os.WriteFile(s.PrivateKeyPath(), pair.PrivateKey, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write private key: %w", err)
	}
	if err := os.WriteFile(s.PublicKeyPath(), pair.PublicKey, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write public key: %w", err)
	}
	return pair, nil
}
