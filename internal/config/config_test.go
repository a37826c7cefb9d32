package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	require.NoError(t, Default().Validate())
}

func TestValidateNodeCount(t *testing.T) {
	t.Parallel()

	assert.Error(t, ValidateNodeCount(1))
	assert.NoError(t, ValidateNodeCount(2))
	assert.NoError(t, ValidateNodeCount(4))
	assert.Error(t, ValidateNodeCount(5))
	assert.Error(t, ValidateNodeCount(0))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kubevm.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"cluster_name: lab\nnodes: 3\nmemory: 8G\nkubernetes_version: \"1.30\"\n",
	), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "lab", cfg.ClusterName)
	assert.Equal(t, 3, cfg.Nodes)
	assert.Equal(t, "8G", cfg.Memory)
	assert.Equal(t, "1.30", cfg.KubernetesVersion)
	// Unset fields keep their defaults.
	assert.Equal(t, 2, cfg.CPUs)
	assert.Equal(t, "10.76.20.0/24", cfg.Subnet)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadMissingDefaultFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kubevm.yaml")
	require.NoError(t, os.WriteFile(path, []byte("nodes: 3\nmemory: 8G\n"), 0o644))

	t.Setenv("KUBEVM_NODES", "4")
	t.Setenv("KUBEVM_MEMORY", "16G")
	t.Setenv("KUBEVM_CPUS", "4")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Nodes)
	assert.Equal(t, "16G", cfg.Memory)
	assert.Equal(t, 4, cfg.CPUs)
}

func TestLoadRejectsBadNodeCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kubevm.yaml")
	require.NoError(t, os.WriteFile(path, []byte("nodes: 7\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "node count must be between")
}

func TestWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kubevm.yaml")
	in := Default()
	in.ClusterName = "roundtrip"
	in.Nodes = 4

	require.NoError(t, Write(in, path))
	out, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
