package core

import (
	"context"
	"fmt"
	"sort"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"uyuni-actions/internal/types"
)

// ActionRequest carries what the dispatcher knows about one action call.
// ServerID, ActionID and DryRun mirror the handler argument order expected
// by the action dispatcher.
type ActionRequest struct {
	ServerID     int64
	ActionID     int64
	DryRun       bool
	Capabilities types.Capabilities
	ActionStatus types.ActionStatus
	Data         map[string]any
}

// ActionHandler returns the payload for the client, or nil for handlers that
// produce none.
type ActionHandler func(ctx context.Context, req ActionRequest) (any, error)

// Registry maps exported "module.method" names to their handlers.
type Registry struct {
	handlers map[string]ActionHandler
}

func NewRegistry() *Registry {
	return &Registry{handlers: map[string]ActionHandler{}}
}

// NewActionRegistry exports the packages and kickstart handlers.
func NewActionRegistry(packages PackageActions, kickstart KickstartActions) *Registry {
	r := NewRegistry()
	r.Register("packages", "update", func(ctx context.Context, req ActionRequest) (any, error) {
		return packages.Update(ctx, req.Capabilities, req.ServerID, req.ActionID, req.DryRun)
	})
	r.Register("packages", "remove", func(ctx context.Context, req ActionRequest) (any, error) {
		return packages.Remove(ctx, req.Capabilities, req.ServerID, req.ActionID, req.DryRun)
	})
	r.Register("packages", "refresh_list", func(ctx context.Context, req ActionRequest) (any, error) {
		return nil, packages.RefreshList(ctx, req.ServerID, req.ActionID, req.DryRun)
	})
	r.Register("packages", "runTransaction", func(ctx context.Context, req ActionRequest) (any, error) {
		return packages.RunTransaction(ctx, req.ServerID, req.ActionID, req.DryRun)
	})
	r.Register("packages", "verify", func(ctx context.Context, req ActionRequest) (any, error) {
		return packages.Verify(ctx, req.ServerID, req.ActionID, req.DryRun)
	})
	r.Register("packages", "setLocks", func(ctx context.Context, req ActionRequest) (any, error) {
		return packages.SetLocks(ctx, req.Capabilities, req.ServerID, req.ActionID, req.DryRun)
	})
	r.Register("kickstart", "initiate", func(ctx context.Context, req ActionRequest) (any, error) {
		return nil, kickstart.Initiate(ctx, req.ServerID, req.ActionID, req.ActionStatus, req.Data)
	})
	r.Register("kickstart", "schedule_sync", func(ctx context.Context, req ActionRequest) (any, error) {
		return nil, kickstart.ScheduleSync(ctx, req.ServerID, req.ActionID, req.Data)
	})
	return r
}

func (r *Registry) Register(module string, method string, handler ActionHandler) {
	r.handlers[module+"."+method] = handler
}

// Names returns the exported names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) Dispatch(ctx context.Context, name string, req ActionRequest) (any, error) {
	handler, ok := r.handlers[name]
	if !ok {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("action %s is not exported", name))
	}
	return handler(ctx, req)
}
