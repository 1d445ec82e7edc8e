package types

// ProxyConfig is the subset of the proxy container config.yaml the squid
// patcher reads.
type ProxyConfig struct {
	MaxCacheSizeMB *int `yaml:"max_cache_size_mb"`
	SquidHost      any  `yaml:"squid_host"`
}
