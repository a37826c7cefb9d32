// Package main is the entry point for the kubevm CLI.
//
// kubevm runs a small kubeadm-based Kubernetes cluster on local VMs for
// development and experimentation: one master and up to three workers,
// launched through Multipass with deterministic addresses, converged
// idempotently by a reconciler.
//
// Commands: init, up, scale, down, status, ssh, logs, kubectl,
// setup-kubectl, reset-kubectl, doctor.
//
// For detailed usage information, run:
//
//	kubevm --help
package main

import (
	"fmt"
	"os"

	"github.com/imamik/kubevm/cmd/kubevm/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
