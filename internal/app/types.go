package app

import "uyuni-actions/internal/types"

type SquidConfigureRequest struct {
	ConfigPath    string
	SquidConfPath string
	CacheDir      string
	Owner         string
	SkipChown     bool
	// SquidHostEnv overrides squid_host from the config when SquidHostEnvSet.
	SquidHostEnv    string
	SquidHostEnvSet bool
}

type SquidConfigureResult struct {
	Outcome    types.PatchOutcome
	DockerACLs bool
}

type ActionRunRequest struct {
	DatabaseURL  string
	Method       string
	ServerID     int64
	ActionID     int64
	DryRun       bool
	Capabilities []string
	ActionStatus int
	Data         map[string]any
}

type ActionRunResult struct {
	Method  string
	Payload any
}
