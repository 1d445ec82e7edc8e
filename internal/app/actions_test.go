package app

import (
	"context"
	"testing"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uyuni-actions/internal/core"
	"uyuni-actions/internal/metrics"
	"uyuni-actions/internal/types"
)

type stubPackageStore struct {
	rows []types.ActionPackageRow
}

func (s stubPackageStore) VerifyPackages(context.Context, int64) ([]types.ActionPackageRow, error) {
	return s.rows, nil
}

func (s stubPackageStore) UpdatePackages(context.Context, int64, int64) ([]types.ActionPackageRow, error) {
	return s.rows, nil
}

func (s stubPackageStore) RemovePackages(context.Context, int64, int64) ([]types.ActionPackageRow, error) {
	return s.rows, nil
}

func (s stubPackageStore) LockedPackages(context.Context, int64, int64) ([]types.ActionPackageRow, error) {
	return s.rows, nil
}

func (s stubPackageStore) PackageDeltaID(context.Context, int64) (int64, bool, error) {
	return 0, false, nil
}

func (s stubPackageStore) DeltaElements(context.Context, int64) ([]types.TransactionRow, error) {
	return nil, nil
}

type recordingOpener struct {
	stores  ActionStores
	url     string
	opened  int
	commits []bool
}

func (r *recordingOpener) open(_ context.Context, databaseURL string) (ActionStores, FinishFunc, error) {
	r.url = databaseURL
	r.opened++
	return r.stores, func(_ context.Context, commit bool) error {
		r.commits = append(r.commits, commit)
		return nil
	}, nil
}

func newActionService(opener *recordingOpener) Service {
	return Service{
		OpenStores: opener.open,
		Clock:      func() time.Time { return time.Unix(0, 0) },
	}
}

func dispatched(method string, outcome string) float64 {
	return testutil.ToFloat64(metrics.ActionsDispatched.WithLabelValues(method, outcome))
}

func TestRunActionCommitsOnSuccess(t *testing.T) {
	arch := "x86_64"
	opener := &recordingOpener{stores: ActionStores{
		Packages: stubPackageStore{rows: []types.ActionPackageRow{{Name: "vim", Arch: &arch}}},
	}}
	before := dispatched("packages.update", metrics.OutcomeSuccess)
	result, err := newActionService(opener).RunAction(t.Context(), ActionRunRequest{
		DatabaseURL:  "postgres://example",
		Method:       "packages.update",
		ServerID:     1,
		ActionID:     2,
		Capabilities: []string{"packages.update(2)=1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "postgres://example", opener.url)
	assert.Equal(t, []bool{true}, opener.commits)
	assert.Equal(t, types.PackageList{{"vim", "", "", "", "x86_64"}}, result.Payload)
	assert.Equal(t, before+1, dispatched("packages.update", metrics.OutcomeSuccess))
}

func TestRunActionRollsBackOnRejection(t *testing.T) {
	opener := &recordingOpener{stores: ActionStores{Packages: stubPackageStore{}}}
	before := dispatched("packages.verify", metrics.OutcomeRejected)
	_, err := newActionService(opener).RunAction(t.Context(), ActionRunRequest{
		Method: "packages.verify",
	})
	require.Error(t, err)
	kind, ok := core.FailureKindOf(err)
	require.True(t, ok)
	assert.Equal(t, types.FailureNoPackages, kind)
	assert.Equal(t, []bool{false}, opener.commits)
	assert.Equal(t, before+1, dispatched("packages.verify", metrics.OutcomeRejected))
}

func TestRunActionCountsStoreOpenFailure(t *testing.T) {
	before := dispatched("packages.remove", metrics.OutcomeError)
	service := Service{
		OpenStores: func(context.Context, string) (ActionStores, FinishFunc, error) {
			return ActionStores{}, nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("database url is required")
		},
	}
	_, err := service.RunAction(t.Context(), ActionRunRequest{Method: "packages.remove"})
	require.Error(t, err)
	assert.Equal(t, before+1, dispatched("packages.remove", metrics.OutcomeError))
}

func TestRunActionUnknownMethodDoesNotOpenStores(t *testing.T) {
	opener := &recordingOpener{}
	_, err := newActionService(opener).RunAction(t.Context(), ActionRunRequest{Method: "packages.install"})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
	assert.Equal(t, 0, opener.opened)
}

func TestRunActionRejectsMalformedCapabilities(t *testing.T) {
	opener := &recordingOpener{}
	_, err := newActionService(opener).RunAction(t.Context(), ActionRunRequest{
		Method:       "packages.update",
		Capabilities: []string{"packages.update"},
	})
	require.Error(t, err)
	assert.Equal(t, 0, opener.opened)
}

func TestListActions(t *testing.T) {
	names := NewService().ListActions()
	assert.Contains(t, names, "packages.runTransaction")
	assert.Contains(t, names, "kickstart.initiate")
	assert.Len(t, names, 8)
}
