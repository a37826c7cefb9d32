// Package config holds the kubevm configuration value object.
//
// Configuration is resolved once per invocation and passed into the
// reconciler explicitly; nothing reads process-wide mutable state after
// loading. Precedence: flags > environment (KUBEVM_*) > kubevm.yaml >
// defaults.
package config

import "fmt"

// Node count bounds. The minimum includes the master, so a cluster is never
// smaller than master + one worker.
const (
	MinNodes = 2
	MaxNodes = 4
)

// DefaultFileName is the config file looked up in the working directory.
const DefaultFileName = "kubevm.yaml"

// Config holds the full kubevm configuration.
type Config struct {
	// ClusterName prefixes VM names and the state directory.
	ClusterName string `mapstructure:"cluster_name" yaml:"cluster_name"`

	// Nodes is the desired total node count (master included).
	Nodes int `mapstructure:"nodes" yaml:"nodes"`

	// Node resource profile. Passed through to the provisioner unvalidated.
	Memory string `mapstructure:"memory" yaml:"memory"`
	CPUs   int    `mapstructure:"cpus" yaml:"cpus"`
	Disk   string `mapstructure:"disk" yaml:"disk"`

	// KubernetesVersion is the minor version installed on nodes, e.g. "1.31".
	KubernetesVersion string `mapstructure:"kubernetes_version" yaml:"kubernetes_version"`

	// Image is the Ubuntu image alias VMs are launched from.
	Image string `mapstructure:"image" yaml:"image"`

	// Network is the host network carrying the deterministic node addresses.
	Network string `mapstructure:"network" yaml:"network"`

	// Subnet is the /24 the node addresses are derived from.
	Subnet string `mapstructure:"subnet" yaml:"subnet"`

	// PodCIDR is handed to kubeadm init.
	PodCIDR string `mapstructure:"pod_cidr" yaml:"pod_cidr"`

	// SSHUser is the account used for node command execution.
	SSHUser string `mapstructure:"ssh_user" yaml:"ssh_user"`
}

// Default returns the configuration defaults.
func Default() *Config {
	return &Config{
		ClusterName:       "kubevm",
		Nodes:             MinNodes,
		Memory:            "4G",
		CPUs:              2,
		Disk:              "20G",
		KubernetesVersion: "1.31",
		Image:             "24.04",
		Network:           "kubevm",
		Subnet:            "10.76.20.0/24",
		PodCIDR:           "10.244.0.0/16",
		SSHUser:           "ubuntu",
	}
}

// Validate checks the configuration. Only the node count is bounded; other
// values pass through to the provisioner and image initializer.
func (c *Config) Validate() error {
	if c.ClusterName == "" {
		return fmt.Errorf("cluster_name is required")
	}
	if err := ValidateNodeCount(c.Nodes); err != nil {
		return err
	}
	return nil
}

// ValidateNodeCount enforces the [MinNodes, MaxNodes] bound.
func ValidateNodeCount(n int) error {
	if n < MinNodes || n > MaxNodes {
		return fmt.Errorf("node count must be between %d and %d, got %d", MinNodes, MaxNodes, n)
	}
	return nil
}
