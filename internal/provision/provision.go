// Package provision defines the node provisioner capability consumed by the
// cluster reconciler.
//
// A provisioner owns the backing virtual machines for cluster nodes: it can
// report whether a node's VM exists, create one with a resource profile and a
// fixed network identity, destroy one, and run commands inside it. The
// reconciler never talks to a VM backend directly; it only sees this
// interface.
package provision

import (
	"context"
	"errors"

	"github.com/imamik/kubevm/internal/node"
)

// ErrNotFound indicates the node has no backing VM.
var ErrNotFound = errors.New("vm not found")

// Profile describes the resource shape of a node's VM. Values are passed
// through to the backend unvalidated.
type Profile struct {
	Memory string
	CPUs   int
	Disk   string
}

// CreateOpts holds all parameters for creating a node VM.
type CreateOpts struct {
	Hostname string
	Profile  Profile
	// Address is the deterministic private address the VM must come up with.
	Address string
	// AuthorizedKey is the cluster SSH public key installed for remote access.
	AuthorizedKey string
}

// NodeProvisioner provisions and destroys the VMs backing cluster nodes.
type NodeProvisioner interface {
	// Present reports whether the node has a backing VM.
	Present(ctx context.Context, n node.Node) (bool, error)

	// Create brings up a VM for the node and runs the node image
	// initializer. It is idempotent: creating a node that already has a
	// backing VM is a no-op.
	Create(ctx context.Context, n node.Node, opts CreateOpts) error

	// Destroy removes the node's backing VM. Destroying an absent node is
	// a no-op.
	Destroy(ctx context.Context, n node.Node) error

	// Exec runs a command inside the node's VM and returns its combined
	// output.
	Exec(ctx context.Context, n node.Node, command []string) (string, error)

	// Attach runs a command inside the node's VM wired to the calling
	// process's terminal, for streaming output.
	Attach(ctx context.Context, n node.Node, command []string) error

	// Shell opens an interactive shell on the node, wired to the calling
	// process's terminal.
	Shell(ctx context.Context, n node.Node) error
}
