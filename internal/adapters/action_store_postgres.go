package adapters

import (
	"context"
	"errors"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"uyuni-actions/internal/ports"
	"uyuni-actions/internal/types"
)

const queryVerifyPackages = `
  select distinct
           pn.name as name,
           pe.version as version,
           pe.release as release,
           pe.epoch as epoch,
           pa.label as arch
      from rhnActionPackage ap
 left join rhnPackageArch pa
        on ap.package_arch_id = pa.id,
           rhnPackageName pn,
           rhnPackageEVR pe
     where ap.action_id = $1
       and ap.evr_id = pe.id
       and ap.name_id = pn.id`

// queryUpdatePackages selects the action packages available from the
// server's channels. Rows without an EVR resolve to any version of the name.
const queryUpdatePackages = `
    select distinct
        pn.name as name,
        pe.version as version,
        pe.release as release,
        pe.epoch as epoch,
        pa.label as arch,
        cp.is_retracted as retracted
    from rhnActionPackage ap
left join rhnPackageArch pa
     on ap.package_arch_id = pa.id,
        rhnPackage p,
        rhnPackageName pn,
        rhnPackageEVR pe,
        rhnServerChannel sc,
        suseChannelPackageRetractedStatusView cp
    where ap.action_id = $1
        and ap.evr_id is not null
        and ap.evr_id = p.evr_id
        and ap.evr_id = pe.id
        and ap.name_id = p.name_id
        and (ap.package_arch_id = p.package_arch_id or ap.package_arch_id is null)
        and ap.name_id = pn.id
        and p.id = cp.package_id
        and cp.channel_id = sc.channel_id
        and sc.server_id = $2
    union
    select distinct
        pn.name as name,
        null as version,
        null as release,
        null as epoch,
        pa.label as arch,
        false as retracted
   from rhnActionPackage ap
left join rhnPackageArch pa
     on ap.package_arch_id = pa.id,
        rhnPackage p,
        rhnPackageName pn,
        rhnServerChannel sc,
        rhnChannelPackage cp
    where ap.action_id = $1
        and ap.evr_id is null
        and ap.name_id = p.name_id
        and p.name_id = pn.id
        and (ap.package_arch_id = p.package_arch_id or ap.package_arch_id is null)
        and p.id = cp.package_id
        and cp.channel_id = sc.channel_id
        and sc.server_id = $2`

// queryRemovePackages selects the action packages installed on the server.
const queryRemovePackages = `
    select distinct
        pn.name as name,
        pe.version as version,
        pe.release as release,
        pe.epoch as epoch,
        pa.label as arch
    from rhnActionPackage ap
left join rhnPackageArch pa
     on ap.package_arch_id = pa.id,
        rhnPackageName pn,
        rhnPackageEVR pe,
        rhnServerPackage sp
    where ap.action_id = $1
        and ap.evr_id is not null
        and ap.evr_id = pe.id
        and ap.name_id = pn.id
        and sp.server_id = $2
        and sp.name_id = ap.name_id
        and sp.evr_id = ap.evr_id
        and (sp.package_arch_id = ap.package_arch_id or sp.package_arch_id is null)
    union
    select distinct
        pn.name as name,
        null as version,
        null as release,
        null as epoch,
        pa.label as arch
    from rhnActionPackage ap
left join rhnPackageArch pa
     on ap.package_arch_id = pa.id,
        rhnPackageName pn,
        rhnServerPackage sp
    where ap.action_id = $1
        and ap.evr_id is null
        and ap.name_id = pn.id
        and sp.server_id = $2
        and sp.name_id = ap.name_id
        and (sp.package_arch_id = ap.package_arch_id or sp.package_arch_id is null)`

const queryLockedPackages = `
  select distinct
    pn.name as name,
    pe.version as version,
    pe.release as release,
    pe.epoch as epoch,
    pa.label as arch
  from rhnActionPackage ap
    join rhnLockedPackages lp
      on ap.name_id = lp.name_id and
         ap.evr_id  = lp.evr_id and
         ap.package_arch_id = lp.arch_id
    left join rhnPackageArch pa
      on ap.package_arch_id = pa.id,
         rhnPackageName pn,
         rhnPackageEVR pe
    where
      ap.action_id = $1 and
      ap.evr_id    = pe.id and
      ap.name_id   = pn.id and
      lp.server_id = $2 and
      (lp.pending is null or lp.pending = 'L')`

const queryPackageDeltaID = `
    select package_delta_id
      from rhnActionPackageDelta
     where action_id = $1`

const queryDeltaElements = `
    select tro.label as operation, pn.name, pe.version, pe.release, pe.epoch,
           pa.label as package_arch
      from rhnPackageDeltaElement pde,
           rhnTransactionPackage rp
 left join rhnPackageArch pa
        on rp.package_arch_id = pa.id,
           rhnTransactionOperation tro, rhnPackageName pn, rhnPackageEVR pe
     where pde.package_delta_id = $1
       and pde.transaction_package_id = rp.id
       and rp.operation = tro.id
       and rp.name_id = pn.id
       and rp.evr_id = pe.id
  order by tro.label, pn.name`

// PostgresActionStore runs the action package queries on the handle it was
// built with.
type PostgresActionStore struct {
	DB Querier
}

func NewPostgresActionStore(db Querier) PostgresActionStore {
	return PostgresActionStore{DB: db}
}

func (s PostgresActionStore) VerifyPackages(ctx context.Context, actionID int64) ([]types.ActionPackageRow, error) {
	return s.packageRows(ctx, "verify packages", queryVerifyPackages, false, actionID)
}

func (s PostgresActionStore) UpdatePackages(ctx context.Context, serverID int64, actionID int64) ([]types.ActionPackageRow, error) {
	return s.packageRows(ctx, "update packages", queryUpdatePackages, true, actionID, serverID)
}

func (s PostgresActionStore) RemovePackages(ctx context.Context, serverID int64, actionID int64) ([]types.ActionPackageRow, error) {
	return s.packageRows(ctx, "remove packages", queryRemovePackages, false, actionID, serverID)
}

func (s PostgresActionStore) LockedPackages(ctx context.Context, serverID int64, actionID int64) ([]types.ActionPackageRow, error) {
	return s.packageRows(ctx, "locked packages", queryLockedPackages, false, actionID, serverID)
}

func (s PostgresActionStore) PackageDeltaID(ctx context.Context, actionID int64) (int64, bool, error) {
	if err := s.requireDB(); err != nil {
		return 0, false, err
	}
	var deltaID int64
	err := s.DB.QueryRow(ctx, queryPackageDeltaID, actionID).Scan(&deltaID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, queryError("package delta id", err)
	}
	return deltaID, true, nil
}

func (s PostgresActionStore) DeltaElements(ctx context.Context, deltaID int64) ([]types.TransactionRow, error) {
	if err := s.requireDB(); err != nil {
		return nil, err
	}
	rows, err := s.DB.Query(ctx, queryDeltaElements, deltaID)
	if err != nil {
		return nil, queryError("delta elements", err)
	}
	elements, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (types.TransactionRow, error) {
		var (
			element     types.TransactionRow
			epoch, arch pgtype.Text
		)
		if err := row.Scan(&element.Operation, &element.Name, &element.Version, &element.Release, &epoch, &arch); err != nil {
			return types.TransactionRow{}, err
		}
		element.Epoch = textPtr(epoch)
		element.Arch = textPtr(arch)
		return element, nil
	})
	if err != nil {
		return nil, queryError("delta elements", err)
	}
	return elements, nil
}

// packageRows scans name, version, release, epoch, arch and, when
// withRetracted is set, a trailing retracted flag.
func (s PostgresActionStore) packageRows(ctx context.Context, name string, query string, withRetracted bool, args ...any) ([]types.ActionPackageRow, error) {
	if err := s.requireDB(); err != nil {
		return nil, err
	}
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, queryError(name, err)
	}
	result, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (types.ActionPackageRow, error) {
		var (
			pkg                           types.ActionPackageRow
			version, release, epoch, arch pgtype.Text
			retracted                     pgtype.Bool
		)
		dest := []any{&pkg.Name, &version, &release, &epoch, &arch}
		if withRetracted {
			dest = append(dest, &retracted)
		}
		if err := row.Scan(dest...); err != nil {
			return types.ActionPackageRow{}, err
		}
		pkg.Version = textPtr(version)
		pkg.Release = textPtr(release)
		pkg.Epoch = textPtr(epoch)
		pkg.Arch = textPtr(arch)
		pkg.Retracted = retracted.Valid && retracted.Bool
		return pkg, nil
	})
	if err != nil {
		return nil, queryError(name, err)
	}
	return result, nil
}

func (s PostgresActionStore) requireDB() error {
	if s.DB == nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("action store has no database handle")
	}
	return nil
}

var _ ports.ActionPackageStore = PostgresActionStore{}
