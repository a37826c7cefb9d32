package handlers

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/imamik/kubevm/internal/cluster"
	"github.com/imamik/kubevm/internal/config"
	"github.com/imamik/kubevm/internal/node"
	"github.com/imamik/kubevm/internal/provision"
	"github.com/imamik/kubevm/internal/util/prerequisites"
)

// fakeOrchestrator records reconciler calls.
type fakeOrchestrator struct {
	reconciled []int
	downCalled bool
	status     *cluster.Status
	err        error
}

func (f *fakeOrchestrator) Reconcile(_ context.Context, desired int) (*cluster.Status, error) {
	f.reconciled = append(f.reconciled, desired)
	return f.status, f.err
}

func (f *fakeOrchestrator) Down(_ context.Context) error {
	f.downCalled = true
	return f.err
}

func (f *fakeOrchestrator) Status(_ context.Context) (*cluster.Status, error) {
	return f.status, f.err
}

// fakeProv records provisioner calls.
type fakeProv struct {
	present  bool
	execed   [][]string
	execOut  string
	execErr  error
	attached [][]string
	shelled  []string
}

func (f *fakeProv) Present(_ context.Context, _ node.Node) (bool, error) { return f.present, nil }

func (f *fakeProv) Create(_ context.Context, _ node.Node, _ provision.CreateOpts) error { return nil }

func (f *fakeProv) Destroy(_ context.Context, _ node.Node) error { return nil }

func (f *fakeProv) Exec(_ context.Context, n node.Node, command []string) (string, error) {
	f.execed = append(f.execed, append([]string{n.Name()}, command...))
	return f.execOut, f.execErr
}

func (f *fakeProv) Attach(_ context.Context, n node.Node, command []string) error {
	f.attached = append(f.attached, append([]string{n.Name()}, command...))
	return nil
}

func (f *fakeProv) Shell(_ context.Context, n node.Node) error {
	f.shelled = append(f.shelled, n.Name())
	return nil
}

// fakeMirror records kubeconfig mirror calls.
type fakeMirror struct {
	installed []string
	restored  bool
	err       error
}

func (f *fakeMirror) Install(sourcePath string) error {
	f.installed = append(f.installed, sourcePath)
	return f.err
}

func (f *fakeMirror) Restore() error {
	f.restored = true
	return f.err
}

// testFixture bundles the fakes wired in by withFakes.
type testFixture struct {
	cfg    *config.Config
	rec    *fakeOrchestrator
	prov   *fakeProv
	mirror *fakeMirror
	state  cluster.StateDir
}

// withFakes swaps every factory variable for a fake and restores them on
// cleanup.
func withFakes(t *testing.T) *testFixture {
	t.Helper()

	f := &testFixture{
		cfg:    config.Default(),
		rec:    &fakeOrchestrator{status: &cluster.Status{Cluster: "kubevm"}},
		prov:   &fakeProv{present: true},
		mirror: &fakeMirror{},
		state:  cluster.StateDir(filepath.Join(t.TempDir(), "kubevm")),
	}

	origLoad := loadConfig
	origState := newStateDir
	origProv := newProvisioner
	origControl := newControl
	origRec := newReconciler
	origMirror := newMirror
	origTools := checkTools
	t.Cleanup(func() {
		loadConfig = origLoad
		newStateDir = origState
		newProvisioner = origProv
		newControl = origControl
		newReconciler = origRec
		newMirror = origMirror
		checkTools = origTools
	})

	loadConfig = func(_ string) (*config.Config, error) { return f.cfg, nil }
	newStateDir = func(_ string) (cluster.StateDir, error) { return f.state, nil }
	newProvisioner = func(_ *config.Config) provision.NodeProvisioner { return f.prov }
	newControl = func(_ *config.Config, _ cluster.StateDir) (cluster.Control, error) {
		t.Fatal("newControl should not be reached")
		return nil, nil
	}
	newReconciler = func(_ *config.Config, _ cluster.StateDir) (Orchestrator, error) { return f.rec, nil }
	newMirror = func(_ string) (credentialMirror, error) { return f.mirror, nil }
	checkTools = func() []prerequisites.CheckResult {
		return []prerequisites.CheckResult{
			{Tool: prerequisites.Tool{Name: "multipass", Required: true}, Found: true, Path: "/usr/bin/multipass"},
		}
	}

	return f
}
