package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/imamik/kubevm/internal/cluster"
	"github.com/imamik/kubevm/internal/node"
)

func plainOutput(t *testing.T) {
	t.Helper()
	orig := isTerminal
	isTerminal = func() bool { return false }
	t.Cleanup(func() { isTerminal = orig })
}

func TestRenderStatusNoCluster(t *testing.T) {
	plainOutput(t)

	out := RenderStatus(&cluster.Status{Cluster: "lab"})
	assert.Contains(t, out, "Cluster lab")
	assert.Contains(t, out, "no cluster")
}

func TestRenderStatusNodesAndRegistry(t *testing.T) {
	plainOutput(t)

	ready := corev1.Node{ObjectMeta: metav1.ObjectMeta{Name: "lab-master"}}
	ready.Status.Conditions = []corev1.NodeCondition{{Type: corev1.NodeReady, Status: corev1.ConditionTrue}}

	out := RenderStatus(&cluster.Status{
		Cluster:       "lab",
		MasterPresent: true,
		WorkerCount:   1,
		Nodes: []cluster.NodeStatus{
			{Node: node.Master(), Address: "10.76.20.10", Present: true},
			{Node: node.Worker(1), Address: "10.76.20.11", Present: true},
			{Node: node.Worker(2), Address: "10.76.20.12", Present: false},
		},
		ControlPlaneNodes: []corev1.Node{ready},
		Warnings:          []string{"drain worker2: timed out"},
	})

	assert.Contains(t, out, "2 node(s)")
	assert.Contains(t, out, "master")
	assert.Contains(t, out, "10.76.20.11")
	assert.Contains(t, out, "lab-master")
	assert.Contains(t, out, "Ready")
	assert.Contains(t, out, "warning: drain worker2: timed out")
}

func TestRenderStatusControlPlaneUnreachable(t *testing.T) {
	plainOutput(t)

	out := RenderStatus(&cluster.Status{
		Cluster:           "lab",
		MasterPresent:     true,
		ControlPlaneError: "connection refused",
	})
	assert.Contains(t, out, "control plane unreachable")
}
