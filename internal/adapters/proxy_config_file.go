package adapters

import (
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"uyuni-actions/internal/ports"
	"uyuni-actions/internal/types"
)

const DefaultProxyConfigPath = "/etc/uyuni/config.yaml"

type ProxyConfigFileAdapter struct{}

func NewProxyConfigFileAdapter() ProxyConfigFileAdapter {
	return ProxyConfigFileAdapter{}
}

func (a ProxyConfigFileAdapter) LoadProxyConfig(path string) (types.ProxyConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.ProxyConfig{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("proxy config file not found").
			WithCause(err)
	}
	var cfg types.ProxyConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return types.ProxyConfig{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse proxy config yaml").
			WithCause(err)
	}
	return cfg, nil
}

var _ ports.ProxyConfigPort = ProxyConfigFileAdapter{}
