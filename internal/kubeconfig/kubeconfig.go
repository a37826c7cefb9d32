// Package kubeconfig mirrors cluster admin credentials between the cluster's
// shared state and the operator's workstation.
//
// The host file is never clobbered silently: Install always backs up an
// existing ~/.kube/config with a timestamp suffix first, and Restore brings
// back the most recent backup.
package kubeconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"k8s.io/client-go/tools/clientcmd"
)

// ErrSourceMissing indicates the shared kubeconfig copy does not exist yet.
var ErrSourceMissing = errors.New("kubeconfig source missing")

// ErrNoBackupFound indicates Restore found nothing to restore.
var ErrNoBackupFound = errors.New("no kubeconfig backup found")

// backupTimeFormat sorts lexicographically in chronological order.
const backupTimeFormat = "20060102-150405"

// nowFunc is swappable in tests.
var nowFunc = time.Now

// Mirror copies admin credentials to and from the host kubeconfig path.
type Mirror struct {
	hostPath    string
	clusterName string
}

// NewMirror creates a mirror over the given host kubeconfig path.
func NewMirror(hostPath, clusterName string) *Mirror {
	return &Mirror{hostPath: hostPath, clusterName: clusterName}
}

// DefaultHostPath returns ~/.kube/config.
func DefaultHostPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".kube", "config"), nil
}

// Install copies the cluster's shared kubeconfig to the host, backing up any
// existing host file first. The config is validated and its context renamed
// to the cluster name before writing.
func (m *Mirror) Install(sourcePath string) error {
	data, err := os.ReadFile(sourcePath) // #nosec G304
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrSourceMissing, sourcePath)
		}
		return fmt.Errorf("failed to read kubeconfig source: %w", err)
	}

	rewritten, err := m.rewrite(data)
	if err != nil {
		return err
	}

	if err := m.backup(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(m.hostPath), 0o755); err != nil {
		return fmt.Errorf("failed to create kubeconfig directory: %w", err)
	}
	if err := os.WriteFile(m.hostPath, rewritten, 0o600); err != nil {
		return fmt.Errorf("failed to write host kubeconfig: %w", err)
	}
	return nil
}

// rewrite validates the credential blob and renames its current context to
// the cluster name, so multiple local clusters stay distinguishable.
func (m *Mirror) rewrite(data []byte) ([]byte, error) {
	cfg, err := clientcmd.Load(data)
	if err != nil {
		return nil, fmt.Errorf("invalid kubeconfig: %w", err)
	}

	if cur := cfg.CurrentContext; cur != "" && cur != m.clusterName {
		if ctx, ok := cfg.Contexts[cur]; ok {
			cfg.Contexts[m.clusterName] = ctx
			delete(cfg.Contexts, cur)
			cfg.CurrentContext = m.clusterName
		}
	}

	out, err := clientcmd.Write(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize kubeconfig: %w", err)
	}
	return out, nil
}

// backup copies an existing host kubeconfig aside with a timestamp suffix.
// A missing host file needs no backup.
func (m *Mirror) backup() error {
	data, err := os.ReadFile(m.hostPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read existing kubeconfig: %w", err)
	}

	backupPath := fmt.Sprintf("%s.backup.%s", m.hostPath, nowFunc().Format(backupTimeFormat))
	if err := os.WriteFile(backupPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write kubeconfig backup: %w", err)
	}
	return nil
}

// Restore replaces the host kubeconfig with the most recent backup.
func (m *Mirror) Restore() error {
	backups, err := filepath.Glob(m.hostPath + ".backup.*")
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return ErrNoBackupFound
	}

	// Timestamp suffixes sort chronologically.
	sort.Strings(backups)
	newest := backups[len(backups)-1]

	data, err := os.ReadFile(newest) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to read backup %s: %w", newest, err)
	}
	if err := os.WriteFile(m.hostPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to restore kubeconfig: %w", err)
	}
	return nil
}
