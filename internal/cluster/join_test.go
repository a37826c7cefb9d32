package cluster

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCoordinator(t *testing.T, ctrl *fakeControl) *Coordinator {
	t.Helper()
	c := NewCoordinator(StateDir(t.TempDir()), ctrl)
	c.fetchAttempts = 3
	c.fetchDelay = time.Millisecond
	return c
}

func TestMintOverwritesPriorArtifact(t *testing.T) {
	t.Parallel()

	c := newTestCoordinator(t, &fakeControl{initialized: true})

	first, err := c.MintJoinArtifact(context.Background())
	require.NoError(t, err)
	second, err := c.MintJoinArtifact(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	fetched, err := c.FetchJoinArtifact(context.Background())
	require.NoError(t, err)
	assert.Equal(t, second, fetched)
}

func TestFetchExhaustionSurfacesArtifactUnavailable(t *testing.T) {
	t.Parallel()

	c := newTestCoordinator(t, &fakeControl{initialized: true})

	_, err := c.FetchJoinArtifact(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrArtifactUnavailable)
}

func TestMintRequiresInitializedControlPlane(t *testing.T) {
	t.Parallel()

	c := newTestCoordinator(t, &fakeControl{})

	_, err := c.MintJoinArtifact(context.Background())
	require.Error(t, err)

	var cperr *ControlPlaneError
	require.ErrorAs(t, err, &cperr)
	assert.Equal(t, "mint join artifact", cperr.Op)

	// No artifact exists, so no worker can join before init completed.
	_, err = c.FetchJoinArtifact(context.Background())
	assert.ErrorIs(t, err, ErrArtifactUnavailable)
}

func TestInitializeControlPlaneIdempotent(t *testing.T) {
	t.Parallel()

	ctrl := &fakeControl{initialized: true}
	c := newTestCoordinator(t, ctrl)

	already, err := c.InitializeControlPlane(context.Background(), InitOptions{})
	require.NoError(t, err)
	assert.True(t, already)

	// Init was skipped but the artifact was still regenerated.
	assert.NotContains(t, ctrl.ops, "init")
	assert.Contains(t, ctrl.ops, "mint")
}

func TestJoinExecutesArtifactOnWorker(t *testing.T) {
	t.Parallel()

	c := newTestCoordinator(t, &fakeControl{initialized: true})
	comm := &fakeCommunicator{}

	err := c.Join(context.Background(), "lab-worker1", comm, "kubeadm join 10.76.20.10:6443 --token abc")
	require.NoError(t, err)
	require.Len(t, comm.commands, 1)
	assert.Equal(t, "sudo kubeadm join 10.76.20.10:6443 --token abc", comm.commands[0])
}

func TestJoinAlreadyMemberIsNoop(t *testing.T) {
	t.Parallel()

	ctrl := &fakeControl{initialized: true}
	ctrl.register("lab-worker1")
	c := newTestCoordinator(t, ctrl)
	comm := &fakeCommunicator{}

	err := c.Join(context.Background(), "lab-worker1", comm, "kubeadm join ...")
	require.NoError(t, err)
	assert.Empty(t, comm.commands)
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	c := newTestCoordinator(t, &fakeControl{initialized: true})

	// Discarding a missing artifact is fine.
	require.NoError(t, c.Discard())

	_, err := c.MintJoinArtifact(context.Background())
	require.NoError(t, err)
	require.NoError(t, c.Discard())

	_, err = os.Stat(c.state.JoinArtifactPath())
	assert.True(t, os.IsNotExist(err))
}
