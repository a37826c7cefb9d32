package cluster

import (
	"context"
	"fmt"
	"sync"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/imamik/kubevm/internal/node"
	"github.com/imamik/kubevm/internal/provision"
)

// fakeProvisioner tracks VM presence in memory and records every operation
// in order.
type fakeProvisioner struct {
	mu      sync.Mutex
	present map[string]bool
	ops     []string

	createErr  map[string]error
	destroyErr map[string]error
}

func newFakeProvisioner(nodes ...node.Node) *fakeProvisioner {
	p := &fakeProvisioner{
		present:    map[string]bool{},
		createErr:  map[string]error{},
		destroyErr: map[string]error{},
	}
	for _, n := range nodes {
		p.present[n.Name()] = true
	}
	return p
}

func (p *fakeProvisioner) Present(_ context.Context, n node.Node) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.present[n.Name()], nil
}

func (p *fakeProvisioner) Create(_ context.Context, n node.Node, _ provision.CreateOpts) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.createErr[n.Name()]; err != nil {
		return err
	}
	p.ops = append(p.ops, "create "+n.Name())
	p.present[n.Name()] = true
	return nil
}

func (p *fakeProvisioner) Destroy(_ context.Context, n node.Node) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.destroyErr[n.Name()]; err != nil {
		return err
	}
	p.ops = append(p.ops, "destroy "+n.Name())
	delete(p.present, n.Name())
	return nil
}

func (p *fakeProvisioner) Exec(_ context.Context, n node.Node, _ []string) (string, error) {
	return "", nil
}

func (p *fakeProvisioner) Attach(_ context.Context, _ node.Node, _ []string) error {
	return nil
}

func (p *fakeProvisioner) Shell(_ context.Context, _ node.Node) error {
	return nil
}

// fakeControl is an in-memory control plane registry.
type fakeControl struct {
	mu          sync.Mutex
	initialized bool
	minted      int
	registry    []corev1.Node
	ops         []string

	drainErr  error
	deleteErr error
	nodesErr  error
}

func (c *fakeControl) InitControlPlane(_ context.Context, _ InitOptions) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.initialized {
		return true, nil
	}
	c.initialized = true
	c.ops = append(c.ops, "init")
	return false, nil
}

func (c *fakeControl) CreateJoinCommand(_ context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.initialized {
		return "", fmt.Errorf("control plane not initialized")
	}
	c.minted++
	c.ops = append(c.ops, "mint")
	return fmt.Sprintf("kubeadm join 10.76.20.10:6443 --token t%d.0123456789abcdef --discovery-token-unsafe-skip-ca-verification", c.minted), nil
}

func (c *fakeControl) GetNodes(_ context.Context) ([]corev1.Node, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.nodesErr != nil {
		return nil, c.nodesErr
	}
	return append([]corev1.Node(nil), c.registry...), nil
}

func (c *fakeControl) Drain(_ context.Context, nodeName string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ops = append(c.ops, "drain "+nodeName)
	return c.drainErr
}

func (c *fakeControl) DeleteNode(_ context.Context, nodeName string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ops = append(c.ops, "delete "+nodeName)
	if c.deleteErr != nil {
		return c.deleteErr
	}
	for i, n := range c.registry {
		if n.Name == nodeName {
			c.registry = append(c.registry[:i], c.registry[i+1:]...)
			break
		}
	}
	return nil
}

func (c *fakeControl) ClusterInfo(_ context.Context) (string, error) {
	return "Kubernetes control plane is running at https://10.76.20.10:6443\n", nil
}

func (c *fakeControl) AdminKubeconfig(_ context.Context) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.initialized {
		return nil, fmt.Errorf("control plane not initialized")
	}
	return []byte("apiVersion: v1\nkind: Config\n"), nil
}

func (c *fakeControl) register(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.registry = append(c.registry, corev1.Node{ObjectMeta: metav1.ObjectMeta{Name: name}})
}

// fakeCommunicator records executed commands.
type fakeCommunicator struct {
	mu       sync.Mutex
	commands []string
	execErr  error
}

func (f *fakeCommunicator) Execute(_ context.Context, command string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commands = append(f.commands, command)
	return "", f.execErr
}
