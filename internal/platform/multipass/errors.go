package multipass

import "strings"

// isNotFoundOutput checks whether a multipass CLI failure means the instance
// does not exist. The CLI has no structured errors, so this matches the
// message it prints for missing instances.
func isNotFoundOutput(out []byte) bool {
	s := strings.ToLower(string(out))
	return strings.Contains(s, "does not exist") || strings.Contains(s, "instance not found")
}
