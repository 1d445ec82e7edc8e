package app

import (
	"time"

	"uyuni-actions/internal/adapters"
	"uyuni-actions/internal/core"
	"uyuni-actions/internal/ports"
)

type Service struct {
	ProxyConfig ports.ProxyConfigPort
	SquidConf   ports.SquidConfPort
	Ownership   ports.OwnershipPort
	Patcher     core.SquidPatcher
	OpenStores  StoreOpener
	Clock       func() time.Time
}

func NewService() Service {
	return Service{
		ProxyConfig: adapters.NewProxyConfigFileAdapter(),
		SquidConf:   adapters.NewSquidConfFileAdapter(),
		Ownership:   adapters.NewChownAdapter(),
		Patcher:     core.NewSquidPatcher(),
		OpenStores:  OpenPostgresStores,
		Clock:       time.Now,
	}
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock()
}
