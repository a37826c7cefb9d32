package cluster

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/imamik/kubevm/internal/ssh"
	"github.com/imamik/kubevm/internal/util/retry"
)

// Join polling bounds. The artifact appears as soon as the master's control
// plane is up, so the budget only needs to cover control-plane startup; when
// it runs out the join fails explicitly instead of blocking forever.
const (
	fetchMaxAttempts  = 12
	fetchInitialDelay = 5 * time.Second
	fetchMaxDelay     = 30 * time.Second
)

// Coordinator manages the join artifact: the single kubeadm join command
// bundle produced by the master and consumed by every joining worker.
//
// The artifact is persisted in the cluster state directory, written only by
// the master's mint path and read-only to consumers. Regeneration
// unconditionally overwrites it; no expiry is tracked.
type Coordinator struct {
	state   StateDir
	control Control

	// Polling bounds, narrowed in tests.
	fetchAttempts int
	fetchDelay    time.Duration
}

// NewCoordinator creates a join coordinator over the given control client
// and state directory.
func NewCoordinator(state StateDir, control Control) *Coordinator {
	return &Coordinator{
		state:         state,
		control:       control,
		fetchAttempts: fetchMaxAttempts,
		fetchDelay:    fetchInitialDelay,
	}
}

// InitializeControlPlane initializes the master's control plane and then
// regenerates the join artifact. Idempotent: an already-initialized control
// plane skips init but still proceeds to artifact regeneration.
func (c *Coordinator) InitializeControlPlane(ctx context.Context, opts InitOptions) (alreadyInitialized bool, err error) {
	already, err := c.control.InitControlPlane(ctx, opts)
	if err != nil {
		return false, &ControlPlaneError{Node: "master", Op: "init", Err: err}
	}
	if _, err := c.MintJoinArtifact(ctx); err != nil {
		return already, err
	}
	return already, nil
}

// MintJoinArtifact produces a fresh join command and overwrites any prior
// artifact. Callable any number of times, including when no worker is
// waiting.
func (c *Coordinator) MintJoinArtifact(ctx context.Context) (string, error) {
	command, err := c.control.CreateJoinCommand(ctx)
	if err != nil {
		return "", &ControlPlaneError{Node: "master", Op: "mint join artifact", Err: err}
	}
	if err := c.state.Ensure(); err != nil {
		return "", err
	}
	if err := os.WriteFile(c.state.JoinArtifactPath(), []byte(command+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("failed to persist join artifact: %w", err)
	}
	return command, nil
}

// FetchJoinArtifact returns the current join artifact, polling with bounded
// backoff until it is available. Exhaustion surfaces ErrArtifactUnavailable.
func (c *Coordinator) FetchJoinArtifact(ctx context.Context) (string, error) {
	var artifact string
	err := retry.Do(ctx, func() error {
		data, err := os.ReadFile(c.state.JoinArtifactPath())
		if err != nil {
			return err
		}
		artifact = strings.TrimSpace(string(data))
		return nil
	},
		retry.WithMaxAttempts(c.fetchAttempts),
		retry.WithInitialDelay(c.fetchDelay),
		retry.WithMaxDelay(fetchMaxDelay),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrArtifactUnavailable, err)
	}
	return artifact, nil
}

// Join applies the artifact on a worker. Idempotent: a worker that already
// appears in the control plane's node registry is a no-op.
func (c *Coordinator) Join(ctx context.Context, workerHostname string, worker ssh.Communicator, artifact string) error {
	nodes, err := c.control.GetNodes(ctx)
	if err == nil && NodeRegistered(nodes, workerHostname) {
		log.Printf("Node %s already joined, skipping", workerHostname)
		return nil
	}

	if out, err := worker.Execute(ctx, "sudo "+artifact); err != nil {
		return &ControlPlaneError{Node: workerHostname, Op: "join", Err: fmt.Errorf("%w, output: %s", err, out)}
	}
	return nil
}

// Discard removes the persisted artifact, if any.
func (c *Coordinator) Discard() error {
	err := os.Remove(c.state.JoinArtifactPath())
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to discard join artifact: %w", err)
	}
	return nil
}
