package app

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"uyuni-actions/internal/core"
	"uyuni-actions/internal/metrics"
	"uyuni-actions/internal/types"
)

// ListActions returns every exported module.method name.
func (s Service) ListActions() []string {
	return core.NewActionRegistry(core.PackageActions{}, core.KickstartActions{}).Names()
}

func (s Service) RunAction(ctx context.Context, req ActionRunRequest) (ActionRunResult, error) {
	method := strings.TrimSpace(req.Method)
	if method == "" {
		return ActionRunResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("action method is required")
	}
	if !slices.Contains(s.ListActions(), method) {
		return ActionRunResult{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("action " + method + " is not exported")
	}
	caps, err := core.ParseCapabilities(req.Capabilities)
	if err != nil {
		return ActionRunResult{}, err
	}
	if s.OpenStores == nil {
		return ActionRunResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("service has no store opener")
	}

	stores, finish, err := s.OpenStores(ctx, req.DatabaseURL)
	if err != nil {
		metrics.ObserveAction(method, metrics.OutcomeError, 0)
		return ActionRunResult{}, err
	}
	registry := core.NewActionRegistry(
		core.NewPackageActions(stores.Packages),
		core.NewKickstartActions(stores.Kickstart),
	)

	started := s.now()
	payload, err := registry.Dispatch(ctx, method, core.ActionRequest{
		ServerID:     req.ServerID,
		ActionID:     req.ActionID,
		DryRun:       req.DryRun,
		Capabilities: caps,
		ActionStatus: types.ActionStatus(req.ActionStatus),
		Data:         req.Data,
	})
	elapsed := s.now().Sub(started).Seconds()

	if err != nil {
		if finishErr := finish(ctx, false); finishErr != nil {
			log.Warn().Err(finishErr).Msg("failed to release action stores")
		}
		outcome := metrics.OutcomeError
		var rejected *core.ActionError
		if errors.As(err, &rejected) {
			outcome = metrics.OutcomeRejected
			log.Debug().
				Str("method", method).
				Str("kind", string(rejected.Kind)).
				Int64("server_id", rejected.ServerID).
				Int64("action_id", rejected.ActionID).
				Msg("action rejected")
		}
		metrics.ObserveAction(method, outcome, elapsed)
		return ActionRunResult{}, err
	}
	if err := finish(ctx, true); err != nil {
		metrics.ObserveAction(method, metrics.OutcomeError, elapsed)
		return ActionRunResult{}, err
	}
	metrics.ObserveAction(method, metrics.OutcomeSuccess, elapsed)
	return ActionRunResult{Method: method, Payload: payload}, nil
}
