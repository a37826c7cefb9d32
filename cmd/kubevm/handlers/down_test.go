package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withConfirm(t *testing.T, answer bool) *int {
	t.Helper()
	orig := confirmDown
	t.Cleanup(func() { confirmDown = orig })

	calls := 0
	confirmDown = func(_ string) (bool, error) {
		calls++
		return answer, nil
	}
	return &calls
}

func TestDownAsksForConfirmation(t *testing.T) {
	f := withFakes(t)
	calls := withConfirm(t, true)

	err := Down(context.Background(), "", Overrides{}, false)
	require.NoError(t, err)
	assert.Equal(t, 1, *calls)
	assert.True(t, f.rec.downCalled)
}

func TestDownAbortsWhenDeclined(t *testing.T) {
	f := withFakes(t)
	withConfirm(t, false)

	err := Down(context.Background(), "", Overrides{}, false)
	require.NoError(t, err)
	assert.False(t, f.rec.downCalled)
}

func TestDownForceSkipsConfirmation(t *testing.T) {
	f := withFakes(t)
	calls := withConfirm(t, false)

	err := Down(context.Background(), "", Overrides{}, true)
	require.NoError(t, err)
	assert.Equal(t, 0, *calls)
	assert.True(t, f.rec.downCalled)
}

func TestDownSurfacesTeardownError(t *testing.T) {
	f := withFakes(t)
	f.rec.err = assert.AnError

	err := Down(context.Background(), "", Overrides{}, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "down failed")
}
