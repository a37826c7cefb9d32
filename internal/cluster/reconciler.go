package cluster

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/imamik/kubevm/internal/config"
	"github.com/imamik/kubevm/internal/netutil"
	"github.com/imamik/kubevm/internal/node"
	"github.com/imamik/kubevm/internal/provision"
	"github.com/imamik/kubevm/internal/ssh"
)

// Reconciler converges the cluster's actual node set onto a desired node
// count. One invocation runs exactly once: probe, validate, plan, execute,
// report. No concurrent reconciliations are supported; the caller owns the
// cluster for the duration of a command.
type Reconciler struct {
	cfg         *config.Config
	provisioner provision.NodeProvisioner
	control     Control
	coordinator *Coordinator
	state       StateDir

	// Swappable in tests.
	newCommunicator func(host string) (ssh.Communicator, error)
	waitForNode     func(ctx context.Context, addr string) error
}

// NewReconciler creates a reconciler over the given provisioner and control
// client.
func NewReconciler(cfg *config.Config, provisioner provision.NodeProvisioner, control Control, state StateDir) *Reconciler {
	r := &Reconciler{
		cfg:         cfg,
		provisioner: provisioner,
		control:     control,
		coordinator: NewCoordinator(state, control),
		state:       state,
	}
	r.newCommunicator = func(host string) (ssh.Communicator, error) {
		pair, err := state.EnsureKeyPair(cfg.ClusterName)
		if err != nil {
			return nil, err
		}
		return ssh.NewSSHCommunicator(host, cfg.SSHUser, pair.PrivateKey), nil
	}
	r.waitForNode = func(ctx context.Context, addr string) error {
		return netutil.WaitForPort(ctx, addr, 22, netutil.SSHWaitTimeout)
	}
	return r
}

// Coordinator exposes the join coordinator, for callers that only need the
// artifact lifecycle.
func (r *Reconciler) Coordinator() *Coordinator {
	return r.coordinator
}

// Reconcile converges the cluster to the desired total node count and
// reports the re-probed ground truth. The returned status is valid even
// when reconciliation failed partway, so callers always see real state
// rather than the intended plan.
func (r *Reconciler) Reconcile(ctx context.Context, desired int) (*Status, error) {
	if err := config.ValidateNodeCount(desired); err != nil {
		return nil, validationf("%v", err)
	}

	masterPresent, workers, err := r.probe(ctx)
	if err != nil {
		return nil, err
	}

	plan := ComputePlan(masterPresent, workers, desired)
	if plan.IsNoop() {
		log.Printf("Cluster %s already has %d nodes, nothing to do", r.cfg.ClusterName, desired)
		return r.Status(ctx)
	}

	warnings, execErr := r.execute(ctx, plan)

	status, statusErr := r.Status(ctx)
	if status != nil {
		status.Warnings = warnings
	}
	if execErr != nil {
		return status, execErr
	}
	return status, statusErr
}

// execute applies the plan: creates strictly ascending, then destroys
// strictly descending. It returns the warnings accumulated from best-effort
// steps and the first fatal error.
func (r *Reconciler) execute(ctx context.Context, plan Plan) ([]string, error) {
	var warnings []string

	if plan.CreateMaster {
		if err := r.createMaster(ctx); err != nil {
			return warnings, err
		}
	} else if len(plan.CreateWorkers) > 0 {
		// Scale-up against a running master: regenerate the artifact so
		// joining workers never pick up an expired token.
		if _, err := r.coordinator.MintJoinArtifact(ctx); err != nil {
			return warnings, err
		}
	}
	for _, w := range plan.CreateWorkers {
		if err := r.createWorker(ctx, w); err != nil {
			// Halt the ascending create plan; lower ordinals already
			// created remain the new actual state.
			return warnings, err
		}
	}
	for _, w := range plan.DestroyWorkers {
		stepWarnings, err := r.destroyWorker(ctx, w)
		warnings = append(warnings, stepWarnings...)
		if err != nil {
			// VM destruction failure halts further descending steps to
			// avoid inconsistent teardown ordering.
			return warnings, err
		}
	}
	return warnings, nil
}

// createMaster provisions the master VM, initializes the control plane,
// regenerates the join artifact, and copies the admin kubeconfig into the
// cluster state directory.
func (r *Reconciler) createMaster(ctx context.Context) error {
	master := node.Master()
	addr, err := master.Address(r.cfg.Subnet)
	if err != nil {
		return err
	}

	log.Printf("Creating %s (%s)...", master.Hostname(r.cfg.ClusterName), addr)
	if err := r.createVM(ctx, master, addr); err != nil {
		return err
	}

	log.Printf("Initializing control plane on %s...", addr)
	already, err := r.coordinator.InitializeControlPlane(ctx, InitOptions{
		AdvertiseAddress:  addr,
		PodCIDR:           r.cfg.PodCIDR,
		KubernetesVersion: r.cfg.KubernetesVersion,
	})
	if err != nil {
		return err
	}
	if already {
		log.Printf("Control plane already initialized, regenerated join artifact")
	}

	kubeconfig, err := r.control.AdminKubeconfig(ctx)
	if err != nil {
		return &ControlPlaneError{Node: master.Name(), Op: "fetch kubeconfig", Err: err}
	}
	if err := r.state.Ensure(); err != nil {
		return err
	}
	if err := os.WriteFile(r.state.KubeconfigPath(), kubeconfig, 0o600); err != nil {
		return fmt.Errorf("failed to write shared kubeconfig: %w", err)
	}
	return nil
}

// createWorker provisions a worker VM and joins it to the control plane.
func (r *Reconciler) createWorker(ctx context.Context, w node.Node) error {
	addr, err := w.Address(r.cfg.Subnet)
	if err != nil {
		return err
	}

	log.Printf("Creating %s (%s)...", w.Hostname(r.cfg.ClusterName), addr)
	if err := r.createVM(ctx, w, addr); err != nil {
		return err
	}

	artifact, err := r.coordinator.FetchJoinArtifact(ctx)
	if err != nil {
		return err
	}

	comm, err := r.newCommunicator(addr)
	if err != nil {
		return err
	}

	log.Printf("Joining %s to the cluster...", w.Name())
	return r.coordinator.Join(ctx, w.Hostname(r.cfg.ClusterName), comm, artifact)
}

// createVM brings up the node's VM and waits for it to accept SSH. A VM
// that already exists is left alone.
func (r *Reconciler) createVM(ctx context.Context, n node.Node, addr string) error {
	pair, err := r.state.EnsureKeyPair(r.cfg.ClusterName)
	if err != nil {
		return err
	}

	err = r.provisioner.Create(ctx, n, provision.CreateOpts{
		Hostname: n.Hostname(r.cfg.ClusterName),
		Profile: provision.Profile{
			Memory: r.cfg.Memory,
			CPUs:   r.cfg.CPUs,
			Disk:   r.cfg.Disk,
		},
		Address:       addr,
		AuthorizedKey: string(pair.PublicKey),
	})
	if err != nil {
		return &ProvisionError{Node: n.Name(), Op: "create", Err: err}
	}

	if err := r.waitForNode(ctx, addr); err != nil {
		return &ProvisionError{Node: n.Name(), Op: "wait for ssh", Err: err}
	}
	return nil
}

// destroyWorker drains and deregisters the worker best-effort, then destroys
// its VM. Drain and delete failures become warnings; VM destruction failure
// is fatal.
func (r *Reconciler) destroyWorker(ctx context.Context, w node.Node) ([]string, error) {
	var warnings []string
	name := w.Hostname(r.cfg.ClusterName)

	log.Printf("Draining %s...", name)
	if err := r.control.Drain(ctx, name); err != nil {
		warnings = append(warnings, fmt.Sprintf("drain %s: %v", w.Name(), err))
	}
	if err := r.control.DeleteNode(ctx, name); err != nil {
		warnings = append(warnings, fmt.Sprintf("delete node %s: %v", w.Name(), err))
	}

	log.Printf("Destroying %s...", name)
	if err := r.provisioner.Destroy(ctx, w); err != nil {
		return warnings, &ProvisionError{Node: w.Name(), Op: "destroy", Err: err}
	}
	return warnings, nil
}

// Down destroys every node VM, workers first in descending order and the
// master last, then discards the cluster's shared state (join artifact and
// kubeconfig). Control-plane teardown is skipped: the VMs carry the whole
// cluster.
func (r *Reconciler) Down(ctx context.Context) error {
	for i := node.MaxWorkers; i >= 1; i-- {
		w := node.Worker(i)
		if err := r.provisioner.Destroy(ctx, w); err != nil {
			return &ProvisionError{Node: w.Name(), Op: "destroy", Err: err}
		}
	}
	master := node.Master()
	if err := r.provisioner.Destroy(ctx, master); err != nil {
		return &ProvisionError{Node: master.Name(), Op: "destroy", Err: err}
	}

	if err := r.state.Remove(); err != nil {
		return fmt.Errorf("failed to remove cluster state: %w", err)
	}
	log.Printf("Cluster %s destroyed", r.cfg.ClusterName)
	return nil
}

// probe computes actual state: master presence and the contiguous worker
// prefix length. Workers beyond a gap are ignored, which keeps the
// contiguous-prefix invariant checkable instead of inferred.
func (r *Reconciler) probe(ctx context.Context) (masterPresent bool, workers int, err error) {
	masterPresent, err = r.provisioner.Present(ctx, node.Master())
	if err != nil {
		return false, 0, &ProvisionError{Node: node.Master().Name(), Op: "probe", Err: err}
	}

	for i := 1; i <= node.MaxWorkers; i++ {
		present, err := r.provisioner.Present(ctx, node.Worker(i))
		if err != nil {
			return false, 0, &ProvisionError{Node: node.Worker(i).Name(), Op: "probe", Err: err}
		}
		if !present {
			break
		}
		workers = i
	}
	return masterPresent, workers, nil
}
