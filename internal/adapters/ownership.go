package adapters

import (
	"context"
	"os/exec"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"uyuni-actions/internal/ports"
	"uyuni-actions/internal/shared"
)

// ChownAdapter hands a directory tree to a user:group with chown -R.
type ChownAdapter struct {
	Binary string
}

func NewChownAdapter() ChownAdapter {
	return ChownAdapter{Binary: "chown"}
}

func (a ChownAdapter) ChownRecursive(ctx context.Context, owner string, path string) error {
	if strings.TrimSpace(owner) == "" || strings.TrimSpace(path) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("owner and path are required for chown")
	}
	binary := a.Binary
	if binary == "" {
		binary = "chown"
	}
	output, err := exec.CommandContext(ctx, binary, "-R", owner, path).CombinedOutput()
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to change ownership of " + path).
			WithCause(shared.CommandError(output, err))
	}
	return nil
}

var _ ports.OwnershipPort = ChownAdapter{}
