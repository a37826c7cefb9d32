// Package prerequisites checks for the client tools kubevm depends on.
package prerequisites

import (
	"fmt"
	"os/exec"
	"strings"
)

// Tool represents a client tool that may be required.
type Tool struct {
	// Name is the binary name to look for in PATH.
	Name string

	// Required indicates if this tool is mandatory.
	Required bool

	// Description explains what the tool is used for.
	Description string

	// InstallURL provides a URL for installation instructions.
	InstallURL string
}

// DefaultTools returns the tools kubevm needs on the host.
func DefaultTools() []Tool {
	return []Tool{
		{
			Name:        "multipass",
			Required:    true,
			Description: "Required for creating and managing node VMs",
			InstallURL:  "https://canonical.com/multipass/install",
		},
		{
			Name:        "kubectl",
			Required:    false,
			Description: "Useful for talking to the cluster from the host after setup-kubectl",
			InstallURL:  "https://kubernetes.io/docs/tasks/tools/",
		},
	}
}

// CheckResult contains the result of checking a single tool.
type CheckResult struct {
	Tool  Tool
	Found bool
	Path  string
}

// Check looks up each tool in PATH.
func Check(tools []Tool) []CheckResult {
	results := make([]CheckResult, 0, len(tools))
	for _, tool := range tools {
		path, err := exec.LookPath(tool.Name)
		results = append(results, CheckResult{
			Tool:  tool,
			Found: err == nil,
			Path:  path,
		})
	}
	return results
}

// Verify returns an error listing any missing required tools.
func Verify(results []CheckResult) error {
	var missing []string
	for _, r := range results {
		if r.Tool.Required && !r.Found {
			missing = append(missing, fmt.Sprintf("%s (%s)", r.Tool.Name, r.Tool.InstallURL))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
	}
	return nil
}
