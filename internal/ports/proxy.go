package ports

import (
	"context"

	"uyuni-actions/internal/types"
)

type ProxyConfigPort interface {
	LoadProxyConfig(path string) (types.ProxyConfig, error)
}

// SquidConfPort reads and rewrites squid.conf in place.
type SquidConfPort interface {
	ReadSquidConf(path string) (string, error)
	WriteSquidConf(path string, content string) error
}

type OwnershipPort interface {
	ChownRecursive(ctx context.Context, owner string, path string) error
}
