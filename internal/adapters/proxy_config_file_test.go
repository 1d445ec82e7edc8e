package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProxyConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_cache_size_mb: 500\nsquid_host: proxy.example.com\nserver: uyuni.example.com\n"), 0644))

	cfg, err := NewProxyConfigFileAdapter().LoadProxyConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.MaxCacheSizeMB)
	assert.Equal(t, 500, *cfg.MaxCacheSizeMB)
	assert.Equal(t, "proxy.example.com", cfg.SquidHost)
}

func TestLoadProxyConfigWithoutSquidHost(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_cache_size_mb: 100\n"), 0644))

	cfg, err := NewProxyConfigFileAdapter().LoadProxyConfig(path)
	require.NoError(t, err)
	assert.Nil(t, cfg.SquidHost)
}

func TestLoadProxyConfigErrors(t *testing.T) {
	adapter := NewProxyConfigFileAdapter()

	_, err := adapter.LoadProxyConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_cache_size_mb: [\n"), 0644))
	_, err = adapter.LoadProxyConfig(path)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}
