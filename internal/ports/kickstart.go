package ports

import (
	"context"

	"uyuni-actions/internal/types"
)

type KickstartSessionStore interface {
	// SessionID returns the kickstart session tied to the server and action,
	// or false when the action is not part of a kickstart.
	SessionID(ctx context.Context, serverID int64, actionID int64) (int64, bool, error)

	// NextActionID returns the action of the given type that has actionID
	// as prerequisite, or false when there is none.
	NextActionID(ctx context.Context, actionID int64, actionType string) (int64, bool, error)

	UpdateSession(ctx context.Context, update types.KickstartUpdate) error
}
