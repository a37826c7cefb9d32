package cluster

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// scriptedComm answers Execute calls via a response function and records
// every command.
type scriptedComm struct {
	commands []string
	respond  func(cmd string) (string, error)
}

func (s *scriptedComm) Execute(_ context.Context, command string) (string, error) {
	s.commands = append(s.commands, command)
	if s.respond == nil {
		return "", nil
	}
	return s.respond(command)
}

func TestInitControlPlaneFresh(t *testing.T) {
	t.Parallel()

	comm := &scriptedComm{respond: func(cmd string) (string, error) {
		if strings.HasPrefix(cmd, "test -f") {
			return "", errors.New("exit status 1")
		}
		return "", nil
	}}
	k := NewKubeadmControl(comm)

	already, err := k.InitControlPlane(context.Background(), InitOptions{
		AdvertiseAddress:  "10.76.20.10",
		PodCIDR:           "10.244.0.0/16",
		KubernetesVersion: "1.31",
	})
	require.NoError(t, err)
	assert.False(t, already)

	require.Len(t, comm.commands, 4)
	assert.Contains(t, comm.commands[1], "kubeadm init")
	assert.Contains(t, comm.commands[1], "--apiserver-advertise-address=10.76.20.10")
	assert.Contains(t, comm.commands[1], "--pod-network-cidr=10.244.0.0/16")
	assert.Contains(t, comm.commands[1], "--kubernetes-version=stable-1.31")
	assert.Contains(t, comm.commands[3], "apply -f")
}

func TestInitControlPlaneAlreadyInitialized(t *testing.T) {
	t.Parallel()

	comm := &scriptedComm{}
	k := NewKubeadmControl(comm)

	already, err := k.InitControlPlane(context.Background(), InitOptions{})
	require.NoError(t, err)
	assert.True(t, already)
	// Only the marker probe ran.
	assert.Len(t, comm.commands, 1)
}

func TestCreateJoinCommandTrims(t *testing.T) {
	t.Parallel()

	comm := &scriptedComm{respond: func(_ string) (string, error) {
		return "kubeadm join 10.76.20.10:6443 --token abc \n", nil
	}}
	k := NewKubeadmControl(comm)

	cmd, err := k.CreateJoinCommand(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "kubeadm join 10.76.20.10:6443 --token abc", cmd)
}

func TestCreateJoinCommandRejectsEmptyOutput(t *testing.T) {
	t.Parallel()

	comm := &scriptedComm{respond: func(_ string) (string, error) { return "\n", nil }}
	k := NewKubeadmControl(comm)

	_, err := k.CreateJoinCommand(context.Background())
	require.Error(t, err)
}

func TestGetNodesDecodesRegistry(t *testing.T) {
	t.Parallel()

	comm := &scriptedComm{respond: func(cmd string) (string, error) {
		require.Contains(t, cmd, "get nodes -o json")
		return `{
			"apiVersion": "v1",
			"kind": "List",
			"items": [
				{
					"metadata": {"name": "lab-master"},
					"status": {"conditions": [{"type": "Ready", "status": "True"}]}
				},
				{
					"metadata": {"name": "lab-worker1"},
					"status": {"conditions": [{"type": "Ready", "status": "False"}]}
				}
			]
		}`, nil
	}}
	k := NewKubeadmControl(comm)

	nodes, err := k.GetNodes(context.Background())
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, "lab-master", nodes[0].Name)
	assert.True(t, NodeReady(nodes[0]))
	assert.False(t, NodeReady(nodes[1]))
	assert.True(t, NodeRegistered(nodes, "lab-worker1"))
	assert.False(t, NodeRegistered(nodes, "lab-worker2"))
}

func TestDrainAndDeleteCommands(t *testing.T) {
	t.Parallel()

	comm := &scriptedComm{}
	k := NewKubeadmControl(comm)

	require.NoError(t, k.Drain(context.Background(), "lab-worker2"))
	require.NoError(t, k.DeleteNode(context.Background(), "lab-worker2"))

	require.Len(t, comm.commands, 2)
	assert.Contains(t, comm.commands[0], "drain lab-worker2")
	assert.Contains(t, comm.commands[0], "--ignore-daemonsets")
	assert.Contains(t, comm.commands[1], "delete node lab-worker2")
}

func TestAdminKubeconfig(t *testing.T) {
	t.Parallel()

	comm := &scriptedComm{respond: func(cmd string) (string, error) {
		require.Equal(t, "sudo cat /etc/kubernetes/admin.conf", cmd)
		return "apiVersion: v1\nkind: Config\n", nil
	}}
	k := NewKubeadmControl(comm)

	data, err := k.AdminKubeconfig(context.Background())
	require.NoError(t, err)
	assert.Contains(t, string(data), "kind: Config")
}

func TestNodeReadyMissingCondition(t *testing.T) {
	t.Parallel()

	n := corev1.Node{ObjectMeta: metav1.ObjectMeta{Name: "x"}}
	assert.False(t, NodeReady(n))
}
