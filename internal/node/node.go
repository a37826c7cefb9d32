// Package node defines cluster node identities and their deterministic
// network addressing.
//
// A cluster has exactly one master and up to MaxWorkers workers. Workers are
// numbered contiguously starting at 1, and the live worker set is always a
// contiguous prefix {1..k}: scaling adds at the top and removes from the top,
// never leaving a gap.
package node

import (
	"fmt"
	"net/netip"
	"strconv"
	"strings"
)

// Role identifies what a node does in the cluster.
type Role string

const (
	// RoleMaster is the single node hosting the control plane.
	RoleMaster Role = "master"
	// RoleWorker is a node that joins the control plane to run workloads.
	RoleWorker Role = "worker"
)

// MaxWorkers is the highest worker ordinal supported by the address scheme.
const MaxWorkers = 3

// addressOffset is added to a node's ordinal to form the host part of its
// address. The master (ordinal 0) gets .10, worker1 gets .11, and so on.
const addressOffset = 10

// Node is a cluster node identity. The master has ordinal 0; workers have
// ordinals 1..MaxWorkers.
type Node struct {
	Role    Role
	Ordinal int
}

// Master returns the master node identity.
func Master() Node {
	return Node{Role: RoleMaster}
}

// Worker returns the worker node identity for the given ordinal (1-based).
func Worker(ordinal int) Node {
	return Node{Role: RoleWorker, Ordinal: ordinal}
}

// IsMaster reports whether n is the master.
func (n Node) IsMaster() bool {
	return n.Role == RoleMaster
}

// Name returns the node's short name: "master", "worker1", "worker2", ...
func (n Node) Name() string {
	if n.IsMaster() {
		return string(RoleMaster)
	}
	return fmt.Sprintf("%s%d", RoleWorker, n.Ordinal)
}

// Hostname returns the VM name for this node within a named cluster.
func (n Node) Hostname(cluster string) string {
	return fmt.Sprintf("%s-%s", cluster, n.Name())
}

// String implements fmt.Stringer.
func (n Node) String() string {
	return n.Name()
}

// Parse converts a user-supplied node name ("master", "worker1"...) into a
// Node. It rejects anything outside the supported identity set.
func Parse(name string) (Node, error) {
	if name == string(RoleMaster) {
		return Master(), nil
	}
	if rest, ok := strings.CutPrefix(name, string(RoleWorker)); ok {
		ordinal, err := strconv.Atoi(rest)
		if err == nil && ordinal >= 1 && ordinal <= MaxWorkers {
			return Worker(ordinal), nil
		}
	}
	return Node{}, fmt.Errorf("invalid node name %q (expected master or worker1..worker%d)", name, MaxWorkers)
}

// Address derives the node's private address from the cluster subnet.
// The host part is addressOffset + ordinal, so for subnet 10.76.20.0/24 the
// master is 10.76.20.10 and worker2 is 10.76.20.12.
func (n Node) Address(subnet string) (string, error) {
	prefix, err := netip.ParsePrefix(subnet)
	if err != nil {
		return "", fmt.Errorf("invalid subnet %q: %w", subnet, err)
	}
	if !prefix.Addr().Is4() {
		return "", fmt.Errorf("subnet %q is not IPv4", subnet)
	}
	octets := prefix.Masked().Addr().As4()
	octets[3] = byte(addressOffset + n.Ordinal)
	return netip.AddrFrom4(octets).String(), nil
}

// Workers returns the contiguous worker prefix {1..k} in ascending order.
func Workers(k int) []Node {
	nodes := make([]Node, 0, k)
	for i := 1; i <= k; i++ {
		nodes = append(nodes, Worker(i))
	}
	return nodes
}

// All returns the master followed by workers 1..k.
func All(k int) []Node {
	return append([]Node{Master()}, Workers(k)...)
}
