// Package multipass implements the node provisioner on top of the Multipass
// CLI.
//
// Multipass has no Go SDK, so every operation shells out to the multipass
// binary. The command runners are package variables so tests can intercept
// them.
package multipass

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/imamik/kubevm/internal/node"
	"github.com/imamik/kubevm/internal/provision"
)

// Options configures the Multipass client.
type Options struct {
	// Cluster prefixes every VM name.
	Cluster string
	// Image is the Ubuntu image alias to launch (e.g. "24.04").
	Image string
	// Network is the host network VMs get their deterministic address on.
	Network string
	// KubernetesVersion is installed by the image initializer, e.g. "1.31".
	KubernetesVersion string
}

// Client drives the multipass CLI. It implements provision.NodeProvisioner.
type Client struct {
	opts Options
}

// Command runners, swappable in tests.
var (
	// runCommand executes multipass with the given arguments, feeding it
	// stdin when non-nil, and returns combined output.
	runCommand = func(ctx context.Context, stdin []byte, args ...string) ([]byte, error) {
		cmd := exec.CommandContext(ctx, "multipass", args...)
		if stdin != nil {
			cmd.Stdin = strings.NewReader(string(stdin))
		}
		return cmd.CombinedOutput()
	}

	// runInteractive executes multipass attached to the calling terminal.
	runInteractive = func(ctx context.Context, args ...string) error {
		cmd := exec.CommandContext(ctx, "multipass", args...)
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		return cmd.Run()
	}
)

// NewClient creates a Multipass-backed node provisioner.
func NewClient(opts Options) *Client {
	return &Client{opts: opts}
}

// infoOutput is the subset of `multipass info --format json` we care about.
type infoOutput struct {
	Info map[string]struct {
		State string `json:"state"`
	} `json:"info"`
}

// Present reports whether the node has a backing VM, in any state.
func (c *Client) Present(ctx context.Context, n node.Node) (bool, error) {
	name := n.Hostname(c.opts.Cluster)
	out, err := runCommand(ctx, nil, "info", name, "--format", "json")
	if err != nil {
		if isNotFoundOutput(out) {
			return false, nil
		}
		return false, fmt.Errorf("failed to probe %s: %w, output: %s", name, err, out)
	}

	var info infoOutput
	if err := json.Unmarshal(out, &info); err != nil {
		return false, fmt.Errorf("failed to parse multipass info for %s: %w", name, err)
	}
	_, ok := info.Info[name]
	return ok, nil
}

// Create launches a VM for the node with its deterministic address and runs
// the node image initializer via cloud-init. Creating a node that already
// has a backing VM is a no-op.
func (c *Client) Create(ctx context.Context, n node.Node, opts provision.CreateOpts) error {
	present, err := c.Present(ctx, n)
	if err != nil {
		return err
	}
	if present {
		return nil
	}

	userData, err := renderUserData(cloudInitParams{
		Hostname:          opts.Hostname,
		Address:           opts.Address,
		MAC:               nodeMAC(n),
		AuthorizedKey:     opts.AuthorizedKey,
		KubernetesVersion: c.opts.KubernetesVersion,
	})
	if err != nil {
		return err
	}

	args := []string{
		"launch", c.opts.Image,
		"--name", opts.Hostname,
		"--memory", opts.Profile.Memory,
		"--cpus", strconv.Itoa(opts.Profile.CPUs),
		"--disk", opts.Profile.Disk,
		"--network", fmt.Sprintf("name=%s,mode=manual,mac=%s", c.opts.Network, nodeMAC(n)),
		"--cloud-init", "-",
	}
	if out, err := runCommand(ctx, userData, args...); err != nil {
		return fmt.Errorf("failed to launch %s: %w, output: %s", opts.Hostname, err, out)
	}
	return nil
}

// Destroy deletes and purges the node's backing VM. Destroying an absent
// node is a no-op.
func (c *Client) Destroy(ctx context.Context, n node.Node) error {
	name := n.Hostname(c.opts.Cluster)
	if out, err := runCommand(ctx, nil, "delete", "--purge", name); err != nil {
		if isNotFoundOutput(out) {
			return nil
		}
		return fmt.Errorf("failed to destroy %s: %w, output: %s", name, err, out)
	}
	return nil
}

// Exec runs a command inside the node's VM and returns its combined output.
func (c *Client) Exec(ctx context.Context, n node.Node, command []string) (string, error) {
	name := n.Hostname(c.opts.Cluster)
	args := append([]string{"exec", name, "--"}, command...)
	out, err := runCommand(ctx, nil, args...)
	if err != nil {
		if isNotFoundOutput(out) {
			return "", fmt.Errorf("exec on %s: %w", name, provision.ErrNotFound)
		}
		return string(out), fmt.Errorf("failed to exec on %s: %w, output: %s", name, err, out)
	}
	return string(out), nil
}

// Attach runs a command inside the node's VM wired to the calling process's
// terminal, for streaming output.
func (c *Client) Attach(ctx context.Context, n node.Node, command []string) error {
	args := append([]string{"exec", n.Hostname(c.opts.Cluster), "--"}, command...)
	return runInteractive(ctx, args...)
}

// Shell opens an interactive shell on the node.
func (c *Client) Shell(ctx context.Context, n node.Node) error {
	return runInteractive(ctx, "shell", n.Hostname(c.opts.Cluster))
}

// nodeMAC derives a stable MAC for the node's cluster interface. Cloud-init
// matches on it to pin the deterministic address.
func nodeMAC(n node.Node) string {
	return fmt.Sprintf("52:54:00:4b:56:%02x", 10+n.Ordinal)
}
