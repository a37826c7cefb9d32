// Package netutil provides small network helpers for waiting on node
// services to come up.
package netutil

import (
	"context"
	"fmt"
	"net"
	"time"
)

const (
	// SSHWaitTimeout is the default timeout for waiting for a freshly
	// created VM to accept SSH connections.
	SSHWaitTimeout = 5 * time.Minute

	pollInterval = 5 * time.Second
	dialTimeout  = 2 * time.Second
)

// WaitForPort waits for a TCP port to be open.
func WaitForPort(ctx context.Context, ip string, port int, timeout time.Duration) error {
	address := net.JoinHostPort(ip, fmt.Sprintf("%d", port))
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	for {
		conn, err := net.DialTimeout("tcp", address, dialTimeout)
		if err == nil {
			_ = conn.Close()
			return nil
		}

		select {
		case <-ctx.Done():
			if ctx.Err() == context.DeadlineExceeded {
				return fmt.Errorf("timeout waiting for %s", address)
			}
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
