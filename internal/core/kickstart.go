package core

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"uyuni-actions/internal/ports"
	"uyuni-actions/internal/types"
)

type KickstartActions struct {
	Store ports.KickstartSessionStore
}

func NewKickstartActions(store ports.KickstartSessionStore) KickstartActions {
	return KickstartActions{Store: store}
}

// KickstartTransitionFor decides the session state after the kickstart
// initiate action reported status.
func KickstartTransitionFor(status types.ActionStatus, state string, nextActionType string) (types.KickstartTransition, error) {
	switch status {
	case types.ActionStatusCompleted:
		return types.KickstartTransition{State: state, NextActionType: nextActionType}, nil
	case types.ActionStatusFailed:
		return types.KickstartTransition{State: types.KickstartStateFailed}, nil
	default:
		return types.KickstartTransition{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("invalid action status %d", status))
	}
}

// Initiate records the outcome of a kickstart.initiate action on the
// kickstart session. Actions that are not part of a session are ignored.
// data carries the client's extra payload and is not retained.
func (k KickstartActions) Initiate(ctx context.Context, serverID int64, actionID int64, status types.ActionStatus, data map[string]any) error {
	log.Debug().Int64("action_id", actionID).Int("extra_keys", len(data)).Msg("kickstart.initiate")
	if k.Store == nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("kickstart actions require a session store")
	}
	sessionID, ok, err := k.Store.SessionID(ctx, serverID, actionID)
	if err != nil {
		return err
	}
	if !ok {
		log.Debug().Int64("server_id", serverID).Int64("action_id", actionID).Msg("action is not part of a kickstart session")
		return nil
	}
	transition, err := KickstartTransitionFor(status, types.KickstartStateInjected, types.ActionTypeReboot)
	if err != nil {
		return err
	}

	update := types.KickstartUpdate{
		SessionID: sessionID,
		ServerID:  serverID,
		State:     transition.State,
	}
	if transition.NextActionType != "" {
		nextID, found, err := k.Store.NextActionID(ctx, actionID, transition.NextActionType)
		if err != nil {
			return err
		}
		if found {
			update.NextActionID = &nextID
		}
	}
	log.Debug().
		Int64("session_id", sessionID).
		Str("state", update.State).
		Msg("updating kickstart session")
	return k.Store.UpdateSession(ctx, update)
}

// ScheduleSync is exported for the dispatcher but is never sent a result.
func (k KickstartActions) ScheduleSync(_ context.Context, _ int64, actionID int64, _ map[string]any) error {
	log.Debug().Int64("action_id", actionID).Msg("kickstart.schedule_sync")
	return nil
}
