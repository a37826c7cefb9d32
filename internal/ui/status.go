package ui

import (
	"fmt"
	"strings"

	"github.com/imamik/kubevm/internal/cluster"
)

// RenderStatus formats the cluster's observed state.
func RenderStatus(s *cluster.Status) string {
	var b strings.Builder

	b.WriteString(render(titleStyle, fmt.Sprintf("Cluster %s", s.Cluster)))
	if s.Total() == 0 {
		b.WriteString("\n" + render(dimStyle, "no cluster (master VM absent)") + "\n")
		return b.String()
	}
	b.WriteString(fmt.Sprintf(" — %d node(s)\n\n", s.Total()))

	for _, ns := range s.Nodes {
		marker := render(absentStyle, "absent ")
		if ns.Present {
			marker = render(presentStyle, "present")
		}
		b.WriteString(fmt.Sprintf("  %-9s %s  %s\n", ns.Node.Name(), marker, render(dimStyle, ns.Address)))
	}

	b.WriteString("\n")
	switch {
	case s.ControlPlaneError != "":
		b.WriteString(render(warningStyle, "warning: control plane unreachable: "+s.ControlPlaneError) + "\n")
	case len(s.ControlPlaneNodes) > 0:
		b.WriteString("Registered nodes:\n")
		for _, n := range s.ControlPlaneNodes {
			ready := render(notReadyStyle, "NotReady")
			if cluster.NodeReady(n) {
				ready = render(presentStyle, "Ready")
			}
			b.WriteString(fmt.Sprintf("  %-20s %s\n", n.Name, ready))
		}
	}

	for _, w := range s.Warnings {
		b.WriteString(render(warningStyle, "warning: "+w) + "\n")
	}
	return b.String()
}
