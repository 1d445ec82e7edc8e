// Package shared provides small helpers used by more than one layer of
// uyuni-actions.
package shared

import (
	"fmt"
	"strings"
)

// CommandError wraps a command execution error with its trimmed output
// for cleaner error messages.
func CommandError(output []byte, err error) error {
	return fmt.Errorf("%s: %w", strings.TrimSpace(string(output)), err)
}

// ParseOwner splits "user:group" and rejects anything else.
func ParseOwner(owner string) (string, string, error) {
	user, group, ok := strings.Cut(strings.TrimSpace(owner), ":")
	if !ok || user == "" || group == "" {
		return "", "", fmt.Errorf("owner %q is not user:group", owner)
	}
	return user, group, nil
}
