// Package ssh executes commands on cluster nodes over SSH.
//
// Nodes are reached at their deterministic private addresses with the
// per-cluster key pair generated at create time.
package ssh

import (
	"context"
)

// Communicator defines the interface for executing commands on a node.
type Communicator interface {
	// Execute runs a command on the node and returns its combined output.
	// It handles connection establishment and transient dial failures.
	Execute(ctx context.Context, command string) (string, error)
}
