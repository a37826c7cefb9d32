package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Load resolves the configuration: defaults, then the YAML file (when
// present), then KUBEVM_* environment variables. Flag overrides are applied
// by the caller afterwards, so flags keep the highest precedence.
//
// path may be empty, in which case kubevm.yaml in the working directory is
// used when it exists; a missing default file is not an error, a missing
// explicit path is.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFileName
	}

	data, err := os.ReadFile(path) // #nosec G304
	switch {
	case err == nil:
		var rawConfig map[string]interface{}
		if err := yaml.Unmarshal(data, &rawConfig); err != nil {
			return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
		}
		if err := mapstructure.Decode(rawConfig, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config: %w", err)
		}
	case os.IsNotExist(err) && !explicit:
		// No config file, defaults apply.
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// applyEnv overlays KUBEVM_* environment variables onto cfg.
func applyEnv(cfg *Config) {
	if v := os.Getenv("KUBEVM_CLUSTER"); v != "" {
		cfg.ClusterName = v
	}
	if v := os.Getenv("KUBEVM_NODES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Nodes = n
		}
	}
	if v := os.Getenv("KUBEVM_MEMORY"); v != "" {
		cfg.Memory = v
	}
	if v := os.Getenv("KUBEVM_CPUS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.CPUs = n
		}
	}
	if v := os.Getenv("KUBEVM_DISK"); v != "" {
		cfg.Disk = v
	}
	if v := os.Getenv("KUBEVM_K8S_VERSION"); v != "" {
		cfg.KubernetesVersion = v
	}
	if v := os.Getenv("KUBEVM_IMAGE"); v != "" {
		cfg.Image = v
	}
	if v := os.Getenv("KUBEVM_NETWORK"); v != "" {
		cfg.Network = v
	}
	if v := os.Getenv("KUBEVM_SUBNET"); v != "" {
		cfg.Subnet = v
	}
}

// Write persists cfg as YAML to path. Used by `kubevm init`.
func Write(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
