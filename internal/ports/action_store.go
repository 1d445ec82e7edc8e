package ports

import (
	"context"

	"uyuni-actions/internal/types"
)

// ActionPackageStore reads the package rows attached to scheduled actions.
// Implementations are bound to one database handle for the duration of a
// call and never cache results.
type ActionPackageStore interface {
	// VerifyPackages returns every package row of the action.
	VerifyPackages(ctx context.Context, actionID int64) ([]types.ActionPackageRow, error)

	// UpdatePackages returns the action packages available in the
	// server's subscribed channels, with their retracted flag.
	UpdatePackages(ctx context.Context, serverID int64, actionID int64) ([]types.ActionPackageRow, error)

	// RemovePackages returns the action packages installed on the server.
	RemovePackages(ctx context.Context, serverID int64, actionID int64) ([]types.ActionPackageRow, error)

	// LockedPackages returns the action packages locked (or pending lock)
	// on the server.
	LockedPackages(ctx context.Context, serverID int64, actionID int64) ([]types.ActionPackageRow, error)

	// PackageDeltaID returns (id, true, nil) when the action has a package
	// delta and (0, false, nil) when it has none.
	PackageDeltaID(ctx context.Context, actionID int64) (int64, bool, error)

	// DeltaElements returns the delta rows ordered by operation label and
	// package name.
	DeltaElements(ctx context.Context, deltaID int64) ([]types.TransactionRow, error)
}
