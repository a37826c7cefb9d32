package cluster

import (
	"errors"
	"fmt"
)

// ErrArtifactUnavailable is returned when a joining worker exhausts its
// polling budget without finding a join artifact.
var ErrArtifactUnavailable = errors.New("join artifact unavailable")

// ValidationError rejects a request before any side effect.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// validationf builds a ValidationError.
func validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// ProvisionError is a VM create/destroy failure. Always fatal for the
// affected step.
type ProvisionError struct {
	Node string
	Op   string
	Err  error
}

func (e *ProvisionError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Node, e.Err)
}

func (e *ProvisionError) Unwrap() error {
	return e.Err
}

// ControlPlaneError is an init/join/drain/delete failure against the control
// plane. Init and join are fatal; drain and delete are reported as warnings
// by the reconciler.
type ControlPlaneError struct {
	Node string
	Op   string
	Err  error
}

func (e *ControlPlaneError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Node, e.Err)
}

func (e *ControlPlaneError) Unwrap() error {
	return e.Err
}
