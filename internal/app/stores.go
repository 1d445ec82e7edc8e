package app

import (
	"context"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"uyuni-actions/internal/adapters"
	"uyuni-actions/internal/ports"
)

type ActionStores struct {
	Packages  ports.ActionPackageStore
	Kickstart ports.KickstartSessionStore
}

// FinishFunc ends the unit of work the stores were opened on: it commits
// when commit is true and rolls back otherwise.
type FinishFunc func(ctx context.Context, commit bool) error

type StoreOpener func(ctx context.Context, databaseURL string) (ActionStores, FinishFunc, error)

// OpenPostgresStores binds both stores to one transaction on a fresh pool.
func OpenPostgresStores(ctx context.Context, databaseURL string) (ActionStores, FinishFunc, error) {
	pool, err := adapters.OpenPostgres(ctx, databaseURL)
	if err != nil {
		return ActionStores{}, nil, err
	}
	tx, err := pool.Begin(ctx)
	if err != nil {
		pool.Close()
		return ActionStores{}, nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to begin transaction").
			WithCause(err)
	}
	stores := ActionStores{
		Packages:  adapters.NewPostgresActionStore(tx),
		Kickstart: adapters.NewPostgresKickstartStore(tx),
	}
	finish := func(ctx context.Context, commit bool) error {
		defer pool.Close()
		if !commit {
			if err := tx.Rollback(ctx); err != nil {
				log.Warn().Err(err).Msg("rollback failed")
			}
			return nil
		}
		if err := tx.Commit(ctx); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to commit transaction").
				WithCause(err)
		}
		return nil
	}
	return stores, finish, nil
}
