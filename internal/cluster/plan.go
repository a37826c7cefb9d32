package cluster

import "github.com/imamik/kubevm/internal/node"

// Plan is the set of node actions that converges actual state onto desired
// state. Creates are ordered ascending by ordinal and destroys descending,
// so the contiguous-prefix invariant over worker ordinals holds after every
// intermediate step.
type Plan struct {
	CreateMaster   bool
	CreateWorkers  []node.Node
	DestroyWorkers []node.Node
}

// IsNoop reports whether the plan performs no actions.
func (p Plan) IsNoop() bool {
	return !p.CreateMaster && len(p.CreateWorkers) == 0 && len(p.DestroyWorkers) == 0
}

// ComputePlan compares the desired total node count against observed state
// and returns the actions closing the gap.
//
// Absence of the master means the cluster does not exist, so the whole
// desired set is created from scratch. The master is never part of a
// destroy plan; only Down removes it.
func ComputePlan(masterPresent bool, actualWorkers, desiredTotal int) Plan {
	if !masterPresent {
		return Plan{
			CreateMaster:  true,
			CreateWorkers: node.Workers(desiredTotal - 1),
		}
	}

	desiredWorkers := desiredTotal - 1
	switch {
	case desiredWorkers > actualWorkers:
		var creates []node.Node
		for i := actualWorkers + 1; i <= desiredWorkers; i++ {
			creates = append(creates, node.Worker(i))
		}
		return Plan{CreateWorkers: creates}

	case desiredWorkers < actualWorkers:
		var destroys []node.Node
		for i := actualWorkers; i > desiredWorkers; i-- {
			destroys = append(destroys, node.Worker(i))
		}
		return Plan{DestroyWorkers: destroys}

	default:
		return Plan{}
	}
}
