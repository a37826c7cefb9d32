package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/kubevm/internal/cluster"
)

func TestStatusProbesCluster(t *testing.T) {
	f := withFakes(t)
	f.rec.status = &cluster.Status{Cluster: "kubevm", MasterPresent: true, WorkerCount: 1}

	err := Status(context.Background(), "", Overrides{})
	require.NoError(t, err)
}

func TestStatusSurfacesProbeError(t *testing.T) {
	f := withFakes(t)
	f.rec.err = assert.AnError
	f.rec.status = nil

	err := Status(context.Background(), "", Overrides{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status probe failed")
}
