package core

import (
	"context"
	"fmt"
	"reflect"
	"regexp"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"

	"uyuni-actions/internal/types"
)

const (
	DefaultSquidCacheDir = "/var/cache/squid"
	squidAccessLog       = "access_log stdio:/proc/self/fd/1 squid"
	httpAccessDocker     = "http_access allow docker"
)

var (
	cacheDirPattern       = regexp.MustCompile(`cache_dir aufs .*`)
	accessLogPattern      = regexp.MustCompile(`access_log .*`)
	aclAllPattern         = regexp.MustCompile(`acl all src all`)
	httpLocalhostPattern  = regexp.MustCompile(`http_access allow localhost`)
	dockerACLPattern      = regexp.MustCompile(`(?m)^acl docker src 172\.16\.0\.0/12\b`)
	httpAccessDockerMatch = regexp.MustCompile(`(?m)^http_access allow docker$`)
)

// dockerSubnets replaces "acl all src all" when squid serves containers on
// private networks.
const dockerSubnets = `
acl all src all
acl docker src 172.16.0.0/12  # RFC1918 possible internal network
acl docker src 192.168.0.0/16 # RFC1918 possible internal network
acl docker src fc00::/7       # RFC 4193 local private network range
acl docker src fe80::/10
`

type SquidPatchOptions struct {
	CacheDir string
	// SquidHost enables the docker ACL block when truthy.
	SquidHost any
}

type SquidPatcher struct{}

func NewSquidPatcher() SquidPatcher {
	return SquidPatcher{}
}

// Patch applies the container rewrites to a squid.conf body. Running it on
// its own output returns the output unchanged.
func (SquidPatcher) Patch(ctx context.Context, content string, cfg types.ProxyConfig, opts SquidPatchOptions) (string, error) {
	assert.NotEmpty(ctx, opts.CacheDir, "cache directory must be set")
	if cfg.MaxCacheSizeMB == nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("max_cache_size_mb is missing from proxy config")
	}

	cacheDir := fmt.Sprintf("cache_dir aufs %s %d 16 256", opts.CacheDir, *cfg.MaxCacheSizeMB)
	content = cacheDirPattern.ReplaceAllLiteralString(content, cacheDir)
	content = accessLogPattern.ReplaceAllLiteralString(content, squidAccessLog)

	if IsTruthy(opts.SquidHost) {
		if !dockerACLPattern.MatchString(content) {
			content = aclAllPattern.ReplaceAllLiteralString(content, dockerSubnets)
		}
		if !httpAccessDockerMatch.MatchString(content) {
			content = httpLocalhostPattern.ReplaceAllLiteralString(content, httpAccessDocker+"\nhttp_access allow localhost")
		}
	}
	return content, nil
}

// IsTruthy reports whether a YAML or environment value enables a feature:
// nil, false, zero numbers, empty strings and empty collections do not.
func IsTruthy(value any) bool {
	if value == nil {
		return false
	}
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return v != ""
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.Map, reflect.Slice, reflect.Array:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return false
		}
		return IsTruthy(rv.Elem().Interface())
	}
	return true
}

// SquidHostSetting resolves the squid host switch: the environment value
// wins whenever the variable is set, even to an empty string.
func SquidHostSetting(envValue string, envSet bool, configValue any) any {
	if envSet {
		return envValue
	}
	return configValue
}
