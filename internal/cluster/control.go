package cluster

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	corev1 "k8s.io/api/core/v1"

	"github.com/imamik/kubevm/internal/ssh"
)

// adminKubeconfig is the control-plane credential file on the master. Its
// existence doubles as the "control plane initialized" marker.
const adminKubeconfig = "/etc/kubernetes/admin.conf"

// cniManifestURL is the fixed CNI applied after control-plane init. Plugin
// selection is out of scope; the cluster just needs a working pod network.
const cniManifestURL = "https://github.com/flannel-io/flannel/releases/latest/download/kube-flannel.yml"

// InitOptions parameterize control-plane initialization.
type InitOptions struct {
	AdvertiseAddress  string
	PodCIDR           string
	KubernetesVersion string
}

// Control executes administrative operations against the cluster's control
// plane. All operations run remotely on the master node.
type Control interface {
	// InitControlPlane initializes the control plane. Idempotent: when the
	// marker shows an initialized control plane it reports
	// alreadyInitialized and does nothing else.
	InitControlPlane(ctx context.Context, opts InitOptions) (alreadyInitialized bool, err error)

	// CreateJoinCommand mints a fresh join command with an embedded token.
	CreateJoinCommand(ctx context.Context) (string, error)

	// GetNodes lists the control plane's registered nodes.
	GetNodes(ctx context.Context) ([]corev1.Node, error)

	// Drain marks a node unschedulable and evicts its workloads.
	Drain(ctx context.Context, nodeName string) error

	// DeleteNode removes a node from the control plane's registry.
	DeleteNode(ctx context.Context, nodeName string) error

	// ClusterInfo returns the control plane's cluster-info output.
	ClusterInfo(ctx context.Context) (string, error)

	// AdminKubeconfig reads the admin credential file from the master.
	AdminKubeconfig(ctx context.Context) ([]byte, error)
}

// KubeadmControl implements Control with kubeadm and kubectl invocations on
// the master, executed through a Communicator.
type KubeadmControl struct {
	master ssh.Communicator
}

// NewKubeadmControl creates a Control backed by the master's communicator.
func NewKubeadmControl(master ssh.Communicator) *KubeadmControl {
	return &KubeadmControl{master: master}
}

func (k *KubeadmControl) kubectl(args string) string {
	return fmt.Sprintf("sudo kubectl --kubeconfig %s %s", adminKubeconfig, args)
}

func (k *KubeadmControl) InitControlPlane(ctx context.Context, opts InitOptions) (bool, error) {
	// Marker probe: an initialized master already has admin.conf.
	if _, err := k.master.Execute(ctx, fmt.Sprintf("test -f %s", adminKubeconfig)); err == nil {
		return true, nil
	}

	init := fmt.Sprintf(
		"sudo kubeadm init --apiserver-advertise-address=%s --pod-network-cidr=%s --kubernetes-version=stable-%s",
		opts.AdvertiseAddress, opts.PodCIDR, opts.KubernetesVersion,
	)
	if out, err := k.master.Execute(ctx, init); err != nil {
		return false, fmt.Errorf("kubeadm init failed: %w, output: %s", err, out)
	}

	// Make kubectl usable for the default user on the master.
	userSetup := fmt.Sprintf(
		"mkdir -p $HOME/.kube && sudo cp %s $HOME/.kube/config && sudo chown $(id -u):$(id -g) $HOME/.kube/config",
		adminKubeconfig,
	)
	if out, err := k.master.Execute(ctx, userSetup); err != nil {
		return false, fmt.Errorf("kubeconfig setup on master failed: %w, output: %s", err, out)
	}

	if out, err := k.master.Execute(ctx, k.kubectl("apply -f "+cniManifestURL)); err != nil {
		return false, fmt.Errorf("cni apply failed: %w, output: %s", err, out)
	}
	return false, nil
}

func (k *KubeadmControl) CreateJoinCommand(ctx context.Context) (string, error) {
	out, err := k.master.Execute(ctx, "sudo kubeadm token create --print-join-command")
	if err != nil {
		return "", fmt.Errorf("token create failed: %w, output: %s", err, out)
	}
	command := strings.TrimSpace(out)
	if command == "" {
		return "", fmt.Errorf("token create returned empty join command")
	}
	return command, nil
}

func (k *KubeadmControl) GetNodes(ctx context.Context) ([]corev1.Node, error) {
	out, err := k.master.Execute(ctx, k.kubectl("get nodes -o json"))
	if err != nil {
		return nil, fmt.Errorf("get nodes failed: %w, output: %s", err, out)
	}
	var list corev1.NodeList
	if err := json.Unmarshal([]byte(out), &list); err != nil {
		return nil, fmt.Errorf("failed to decode node list: %w", err)
	}
	return list.Items, nil
}

func (k *KubeadmControl) Drain(ctx context.Context, nodeName string) error {
	cmd := k.kubectl(fmt.Sprintf(
		"drain %s --ignore-daemonsets --delete-emptydir-data --force --timeout=120s", nodeName,
	))
	if out, err := k.master.Execute(ctx, cmd); err != nil {
		return fmt.Errorf("drain %s failed: %w, output: %s", nodeName, err, out)
	}
	return nil
}

func (k *KubeadmControl) DeleteNode(ctx context.Context, nodeName string) error {
	if out, err := k.master.Execute(ctx, k.kubectl("delete node "+nodeName)); err != nil {
		return fmt.Errorf("delete node %s failed: %w, output: %s", nodeName, err, out)
	}
	return nil
}

func (k *KubeadmControl) ClusterInfo(ctx context.Context) (string, error) {
	out, err := k.master.Execute(ctx, k.kubectl("cluster-info"))
	if err != nil {
		return "", fmt.Errorf("cluster-info failed: %w, output: %s", err, out)
	}
	return out, nil
}

func (k *KubeadmControl) AdminKubeconfig(ctx context.Context) ([]byte, error) {
	out, err := k.master.Execute(ctx, "sudo cat "+adminKubeconfig)
	if err != nil {
		return nil, fmt.Errorf("failed to read admin kubeconfig: %w, output: %s", err, out)
	}
	return []byte(out), nil
}

// NodeRegistered reports whether a node name appears in the registry list.
func NodeRegistered(nodes []corev1.Node, name string) bool {
	for _, n := range nodes {
		if n.Name == name {
			return true
		}
	}
	return false
}
