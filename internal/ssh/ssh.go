package ssh

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/ssh"

	"github.com/imamik/kubevm/internal/util/retry"
)

const (
	sshPort     = 22
	dialTimeout = 10 * time.Second
)

// SSHCommunicator implements Communicator using the SSH protocol.
type SSHCommunicator struct {
	host       string
	user       string
	privateKey []byte
}

// NewSSHCommunicator creates a new SSHCommunicator for the given host.
func NewSSHCommunicator(host, user string, privateKey []byte) *SSHCommunicator {
	return &SSHCommunicator{
		host:       host,
		user:       user,
		privateKey: privateKey,
	}
}

func (c *SSHCommunicator) dial(ctx context.Context) (*ssh.Client, error) {
	signer, err := ssh.ParsePrivateKey(c.privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	config := &ssh.ClientConfig{
		User: c.user,
		Auth: []ssh.AuthMethod{
			ssh.PublicKeys(signer),
		},
		// Node VMs are recreated freely; host keys churn with them.
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), // #nosec G106
		Timeout:         dialTimeout,
	}

	var client *ssh.Client
	err = retry.Do(ctx, func() error {
		var dialErr error
		client, dialErr = ssh.Dial("tcp", fmt.Sprintf("%s:%d", c.host, sshPort), config)
		return dialErr
	}, retry.WithMaxAttempts(6), retry.WithInitialDelay(2*time.Second))
	if err != nil {
		return nil, fmt.Errorf("failed to dial ssh to %s: %w", c.host, err)
	}
	return client, nil
}

// Execute runs a command on the node and returns its combined output.
func (c *SSHCommunicator) Execute(ctx context.Context, command string) (string, error) {
	client, err := c.dial(ctx)
	if err != nil {
		return "", err
	}
	defer client.Close()

	session, err := client.NewSession()
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	defer session.Close()

	output, err := session.CombinedOutput(command)
	if err != nil {
		return string(output), fmt.Errorf("failed to execute command: %w, output: %s", err, output)
	}
	return string(output), nil
}
