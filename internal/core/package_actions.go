package core

import (
	"context"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"uyuni-actions/internal/ports"
	"uyuni-actions/internal/types"
)

// PackageActions builds the client payloads of the packages.* actions.
type PackageActions struct {
	Store ports.ActionPackageStore
}

func NewPackageActions(store ports.ActionPackageStore) PackageActions {
	return PackageActions{Store: store}
}

func (p PackageActions) Verify(ctx context.Context, serverID int64, actionID int64, dryRun bool) (types.PackageList, error) {
	log.Debug().Bool("dry_run", dryRun).Int64("action_id", actionID).Msg("packages.verify")
	if err := p.requireStore(); err != nil {
		return nil, err
	}
	rows, err := p.Store.VerifyPackages(ctx, actionID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, invalidAction(types.FailureNoPackages, serverID, actionID,
			"invalid action %d for server %d", actionID, serverID)
	}
	packages := make(types.PackageList, 0, len(rows))
	for _, row := range rows {
		packages = append(packages, tupleWithArch(row))
	}
	log.Debug().Int("packages", len(packages)).Msg("packages.verify payload")
	return packages, nil
}

func (p PackageActions) Update(ctx context.Context, caps types.Capabilities, serverID int64, actionID int64, dryRun bool) (types.PackageList, error) {
	if err := p.requireStore(); err != nil {
		return nil, err
	}
	rows, err := p.Store.UpdatePackages(ctx, serverID, actionID)
	if err != nil {
		return nil, err
	}
	return HandleAction(caps, serverID, actionID, rows, dryRun)
}

func (p PackageActions) Remove(ctx context.Context, caps types.Capabilities, serverID int64, actionID int64, dryRun bool) (types.PackageList, error) {
	if err := p.requireStore(); err != nil {
		return nil, err
	}
	rows, err := p.Store.RemovePackages(ctx, serverID, actionID)
	if err != nil {
		return nil, err
	}
	return HandleAction(caps, serverID, actionID, rows, dryRun)
}

// HandleAction turns desired-state rows into package tuples. The action is
// rejected when rows is empty or names a retracted package. The arch field
// is only filled for clients that negotiated multiarch support.
func HandleAction(caps types.Capabilities, serverID int64, actionID int64, rows []types.ActionPackageRow, dryRun bool) (types.PackageList, error) {
	log.Debug().
		Int64("server_id", serverID).
		Int64("action_id", actionID).
		Bool("dry_run", dryRun).
		Interface("capabilities", caps).
		Msg("handling package action")

	multiarch := SupportsMultiarch(caps)
	if len(rows) == 0 {
		return nil, invalidAction(types.FailureNoPackages, serverID, actionID,
			"Packages scheduled in action %d for server %d could not be found.", actionID, serverID)
	}

	if retracted := retractedNames(rows); len(retracted) > 0 {
		return nil, invalidAction(types.FailureRetractedPackages, serverID, actionID,
			"packages.update: Action contains retracted packages %s", strings.Join(retracted, ", "))
	}

	packages := make(types.PackageList, 0, len(rows))
	for _, row := range rows {
		arch := ""
		if multiarch {
			arch = orEmpty(row.Arch)
		}
		packages = append(packages, types.NewPackageTuple(
			row.Name,
			orEmpty(row.Version),
			orEmpty(row.Release),
			orEmpty(row.Epoch),
			arch,
		))
	}
	log.Debug().Int("packages", len(packages)).Bool("multiarch", multiarch).Msg("package action payload")
	return packages, nil
}

func (p PackageActions) SetLocks(ctx context.Context, caps types.Capabilities, serverID int64, actionID int64, dryRun bool) (types.PackageList, error) {
	log.Debug().
		Int64("server_id", serverID).
		Int64("action_id", actionID).
		Bool("dry_run", dryRun).
		Msg("packages.setLocks")
	if !caps.Has(types.CapabilityPackagesSetLocks) {
		return nil, invalidAction(types.FailureNotCapable, serverID, actionID,
			"Client is not capable of locking packages.")
	}
	if err := p.requireStore(); err != nil {
		return nil, err
	}
	rows, err := p.Store.LockedPackages(ctx, serverID, actionID)
	if err != nil {
		return nil, err
	}
	packages := make(types.PackageList, 0, len(rows))
	for _, row := range rows {
		packages = append(packages, tupleWithArch(row))
	}
	return packages, nil
}

// RefreshList asks the client to report its installed packages; the
// server side has nothing to prepare.
func (p PackageActions) RefreshList(_ context.Context, serverID int64, actionID int64, _ bool) error {
	log.Debug().Int64("server_id", serverID).Int64("action_id", actionID).Msg("packages.refresh_list")
	return nil
}

func (p PackageActions) RunTransaction(ctx context.Context, serverID int64, actionID int64, dryRun bool) (types.TransactionResult, error) {
	log.Debug().
		Int64("server_id", serverID).
		Int64("action_id", actionID).
		Bool("dry_run", dryRun).
		Msg("packages.runTransaction")
	if err := p.requireStore(); err != nil {
		return types.TransactionResult{}, err
	}
	deltaID, ok, err := p.Store.PackageDeltaID(ctx, actionID)
	if err != nil {
		return types.TransactionResult{}, err
	}
	if !ok {
		return types.TransactionResult{}, invalidAction(types.FailureMissingDelta, serverID, actionID,
			"invalid packages.runTransaction action %d for server %d", actionID, serverID)
	}
	rows, err := p.Store.DeltaElements(ctx, deltaID)
	if err != nil {
		return types.TransactionResult{}, err
	}
	return BuildTransaction(rows), nil
}

// BuildTransaction maps delta rows to [tuple, code] pairs, keeping row
// order. Rows with an operation the client cannot execute are dropped.
func BuildTransaction(rows []types.TransactionRow) types.TransactionResult {
	result := types.TransactionResult{Packages: []types.TransactionElement{}}
	for _, row := range rows {
		code, ok := TransactionCode(row.Operation)
		if !ok {
			log.Debug().Str("operation", row.Operation).Str("package", row.Name).Msg("skipping unsupported transaction operation")
			continue
		}
		result.Packages = append(result.Packages, types.TransactionElement{
			Package: types.NewPackageTuple(row.Name, row.Version, row.Release, orEmpty(row.Epoch), orEmpty(row.Arch)),
			Code:    code,
		})
	}
	return result
}

// TransactionCode maps an operation label to the rpm transaction code.
func TransactionCode(operation string) (string, bool) {
	switch types.TransactionOp(operation) {
	case types.TransactionOpInsert:
		return "i", true
	case types.TransactionOpDelete:
		return "e", true
	case types.TransactionOpUpgrade:
		return "u", true
	default:
		return "", false
	}
}

func (p PackageActions) requireStore() error {
	if p.Store == nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package actions require an action package store")
	}
	return nil
}

func tupleWithArch(row types.ActionPackageRow) types.PackageTuple {
	return types.NewPackageTuple(
		row.Name,
		orEmpty(row.Version),
		orEmpty(row.Release),
		orEmpty(row.Epoch),
		orEmpty(row.Arch),
	)
}

func retractedNames(rows []types.ActionPackageRow) []string {
	seen := map[string]struct{}{}
	var names []string
	for _, row := range rows {
		if !row.Retracted {
			continue
		}
		if _, ok := seen[row.Name]; ok {
			continue
		}
		seen[row.Name] = struct{}{}
		names = append(names, row.Name)
	}
	sort.Strings(names)
	return names
}

func orEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
