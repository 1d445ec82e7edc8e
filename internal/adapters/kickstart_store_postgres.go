package adapters

import (
	"context"
	"errors"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/jackc/pgx/v5"

	"uyuni-actions/internal/ports"
	"uyuni-actions/internal/types"
)

const queryKickstartSessionID = `
    select ks.id
      from rhnKickstartSession ks
     where (ks.old_server_id = $1 or ks.new_server_id = $1)
       and ks.action_id = $2
  order by ks.id desc
     limit 1`

const queryNextActionID = `
    select a.id
      from rhnAction a, rhnActionType at
     where a.prerequisite = $1
       and a.action_type = at.id
       and at.label = $2`

const updateKickstartSession = `
    update rhnKickstartSession
       set action_id = $2,
           state_id = (select id from rhnKickstartSessionState where label = $3),
           new_server_id = $4
     where id = $1`

type PostgresKickstartStore struct {
	DB Querier
}

func NewPostgresKickstartStore(db Querier) PostgresKickstartStore {
	return PostgresKickstartStore{DB: db}
}

func (s PostgresKickstartStore) SessionID(ctx context.Context, serverID int64, actionID int64) (int64, bool, error) {
	return s.singleID(ctx, "kickstart session", queryKickstartSessionID, serverID, actionID)
}

func (s PostgresKickstartStore) NextActionID(ctx context.Context, actionID int64, actionType string) (int64, bool, error) {
	return s.singleID(ctx, "next action", queryNextActionID, actionID, actionType)
}

func (s PostgresKickstartStore) UpdateSession(ctx context.Context, update types.KickstartUpdate) error {
	if err := s.requireDB(); err != nil {
		return err
	}
	tag, err := s.DB.Exec(ctx, updateKickstartSession, update.SessionID, update.NextActionID, update.State, update.ServerID)
	if err != nil {
		return queryError("update kickstart session", err)
	}
	if tag.RowsAffected() == 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("kickstart session not found")
	}
	return nil
}

func (s PostgresKickstartStore) singleID(ctx context.Context, name string, query string, args ...any) (int64, bool, error) {
	if err := s.requireDB(); err != nil {
		return 0, false, err
	}
	var id int64
	err := s.DB.QueryRow(ctx, query, args...).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, queryError(name, err)
	}
	return id, true, nil
}

func (s PostgresKickstartStore) requireDB() error {
	if s.DB == nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("kickstart store has no database handle")
	}
	return nil
}

var _ ports.KickstartSessionStore = PostgresKickstartStore{}
