package cluster

import (
	"context"

	corev1 "k8s.io/api/core/v1"

	"github.com/imamik/kubevm/internal/node"
)

// NodeStatus is the observed state of one node identity.
type NodeStatus struct {
	Node    node.Node
	Address string
	Present bool
}

// Status is the re-probed ground truth of the cluster, never the intended
// plan.
type Status struct {
	Cluster       string
	MasterPresent bool
	WorkerCount   int
	Nodes         []NodeStatus

	// ControlPlaneNodes is the control plane's node registry, when
	// reachable. ControlPlaneError carries the probe failure otherwise;
	// it is a soft warning, not a command failure.
	ControlPlaneNodes []corev1.Node
	ControlPlaneError string

	// Warnings from best-effort steps of the invocation that produced
	// this status.
	Warnings []string
}

// Total is the observed node count: master (if present) plus the contiguous
// worker prefix.
func (s *Status) Total() int {
	if !s.MasterPresent {
		// Without a master the cluster does not exist.
		return 0
	}
	return 1 + s.WorkerCount
}

// Status probes actual state and, when a master exists, the control plane's
// node registry. Control-plane probe failures are reported in the status
// instead of failing the call.
func (r *Reconciler) Status(ctx context.Context) (*Status, error) {
	masterPresent, workers, err := r.probe(ctx)
	if err != nil {
		return nil, err
	}

	status := &Status{
		Cluster:       r.cfg.ClusterName,
		MasterPresent: masterPresent,
		WorkerCount:   workers,
	}

	for _, n := range node.All(node.MaxWorkers) {
		addr, err := n.Address(r.cfg.Subnet)
		if err != nil {
			return nil, err
		}
		present := false
		if n.IsMaster() {
			present = masterPresent
		} else {
			present = n.Ordinal <= workers
		}
		status.Nodes = append(status.Nodes, NodeStatus{Node: n, Address: addr, Present: present})
	}

	if masterPresent {
		nodes, err := r.control.GetNodes(ctx)
		if err != nil {
			status.ControlPlaneError = err.Error()
		} else {
			status.ControlPlaneNodes = nodes
		}
	}
	return status, nil
}

// NodeReady reports whether a registered node has a true Ready condition.
func NodeReady(n corev1.Node) bool {
	for _, cond := range n.Status.Conditions {
		if cond.Type == corev1.NodeReady {
			return cond.Status == corev1.ConditionTrue
		}
	}
	return false
}
