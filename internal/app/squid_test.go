package app

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uyuni-actions/internal/core"
	"uyuni-actions/internal/metrics"
	"uyuni-actions/internal/types"
)

type fakeProxyConfig struct {
	cfg  types.ProxyConfig
	path string
}

func (f *fakeProxyConfig) LoadProxyConfig(path string) (types.ProxyConfig, error) {
	f.path = path
	return f.cfg, nil
}

type fakeSquidConf struct {
	content string
	writes  int
}

func (f *fakeSquidConf) ReadSquidConf(_ string) (string, error) {
	return f.content, nil
}

func (f *fakeSquidConf) WriteSquidConf(_ string, content string) error {
	f.content = content
	f.writes++
	return nil
}

type fakeOwnership struct {
	owner string
	path  string
	calls int
}

func (f *fakeOwnership) ChownRecursive(_ context.Context, owner string, path string) error {
	f.owner = owner
	f.path = path
	f.calls++
	return nil
}

func newSquidService(cfg types.ProxyConfig, content string) (Service, *fakeProxyConfig, *fakeSquidConf, *fakeOwnership) {
	proxy := &fakeProxyConfig{cfg: cfg}
	conf := &fakeSquidConf{content: content}
	owner := &fakeOwnership{}
	return Service{
		ProxyConfig: proxy,
		SquidConf:   conf,
		Ownership:   owner,
		Patcher:     core.NewSquidPatcher(),
	}, proxy, conf, owner
}

func TestConfigureSquidAppliesAndChowns(t *testing.T) {
	size := 500
	service, proxy, conf, owner := newSquidService(
		types.ProxyConfig{MaxCacheSizeMB: &size, SquidHost: "proxy"},
		"acl all src all\nhttp_access allow localhost\ncache_dir aufs /x 1 16 256\n",
	)

	result, err := service.ConfigureSquid(t.Context(), SquidConfigureRequest{})
	require.NoError(t, err)
	assert.Equal(t, types.PatchOutcomeApplied, result.Outcome)
	assert.True(t, result.DockerACLs)
	assert.Equal(t, "/etc/uyuni/config.yaml", proxy.path)
	assert.Equal(t, 1, conf.writes)
	assert.Contains(t, conf.content, "cache_dir aufs /var/cache/squid 500 16 256")
	assert.Contains(t, conf.content, "http_access allow docker\nhttp_access allow localhost")
	assert.Equal(t, "squid:squid", owner.owner)
	assert.Equal(t, "/var/cache/squid", owner.path)
}

func TestConfigureSquidSecondRunIsUnchanged(t *testing.T) {
	size := 500
	service, _, conf, _ := newSquidService(
		types.ProxyConfig{MaxCacheSizeMB: &size, SquidHost: true},
		"acl all src all\nhttp_access allow localhost\n",
	)
	_, err := service.ConfigureSquid(t.Context(), SquidConfigureRequest{SkipChown: true})
	require.NoError(t, err)

	result, err := service.ConfigureSquid(t.Context(), SquidConfigureRequest{SkipChown: true})
	require.NoError(t, err)
	assert.Equal(t, types.PatchOutcomeUnchanged, result.Outcome)
	assert.Equal(t, 1, conf.writes)
}

func TestConfigureSquidEmptyEnvDisablesDockerACLs(t *testing.T) {
	size := 100
	service, _, conf, owner := newSquidService(
		types.ProxyConfig{MaxCacheSizeMB: &size, SquidHost: "proxy"},
		"acl all src all\nhttp_access allow localhost\n",
	)
	result, err := service.ConfigureSquid(t.Context(), SquidConfigureRequest{
		SkipChown:       true,
		SquidHostEnv:    "",
		SquidHostEnvSet: true,
	})
	require.NoError(t, err)
	assert.False(t, result.DockerACLs)
	assert.NotContains(t, conf.content, "acl docker")
	assert.Equal(t, 0, owner.calls)
}

func TestConfigureSquidRejectsBadOwner(t *testing.T) {
	size := 100
	service, _, conf, _ := newSquidService(types.ProxyConfig{MaxCacheSizeMB: &size}, "")
	_, err := service.ConfigureSquid(t.Context(), SquidConfigureRequest{Owner: "squid"})
	require.Error(t, err)
	assert.Equal(t, 0, conf.writes)
}

func TestConfigureSquidMissingCacheSize(t *testing.T) {
	failed := metrics.SquidPatches.WithLabelValues(string(types.PatchOutcomeFailed))
	before := testutil.ToFloat64(failed)
	service, _, conf, owner := newSquidService(types.ProxyConfig{}, "cache_dir aufs /x 1 16 256\n")
	_, err := service.ConfigureSquid(t.Context(), SquidConfigureRequest{})
	require.Error(t, err)
	assert.Equal(t, 0, conf.writes)
	assert.Equal(t, 0, owner.calls)
	assert.Equal(t, before+1, testutil.ToFloat64(failed))
}
