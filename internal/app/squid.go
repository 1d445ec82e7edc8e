package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"uyuni-actions/internal/adapters"
	"uyuni-actions/internal/core"
	"uyuni-actions/internal/metrics"
	"uyuni-actions/internal/shared"
	"uyuni-actions/internal/types"
)

func (s Service) ConfigureSquid(ctx context.Context, req SquidConfigureRequest) (SquidConfigureResult, error) {
	result, err := s.configureSquid(ctx, req)
	if err != nil {
		metrics.ObservePatch(types.PatchOutcomeFailed)
		return SquidConfigureResult{}, err
	}
	metrics.ObservePatch(result.Outcome)
	return result, nil
}

func (s Service) configureSquid(ctx context.Context, req SquidConfigureRequest) (SquidConfigureResult, error) {
	configPath := defaultString(req.ConfigPath, adapters.DefaultProxyConfigPath)
	squidConfPath := defaultString(req.SquidConfPath, adapters.DefaultSquidConfPath)
	cacheDir := defaultString(req.CacheDir, core.DefaultSquidCacheDir)
	owner := defaultString(req.Owner, "squid:squid")
	if !req.SkipChown {
		if _, _, err := shared.ParseOwner(owner); err != nil {
			return SquidConfigureResult{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("invalid cache directory owner").
				WithCause(err)
		}
	}

	cfg, err := s.ProxyConfig.LoadProxyConfig(configPath)
	if err != nil {
		return SquidConfigureResult{}, err
	}
	original, err := s.SquidConf.ReadSquidConf(squidConfPath)
	if err != nil {
		return SquidConfigureResult{}, err
	}

	squidHost := core.SquidHostSetting(req.SquidHostEnv, req.SquidHostEnvSet, cfg.SquidHost)
	patched, err := s.Patcher.Patch(ctx, original, cfg, core.SquidPatchOptions{
		CacheDir:  cacheDir,
		SquidHost: squidHost,
	})
	if err != nil {
		return SquidConfigureResult{}, err
	}

	result := SquidConfigureResult{
		Outcome:    types.PatchOutcomeUnchanged,
		DockerACLs: core.IsTruthy(squidHost),
	}
	if patched != original {
		if err := s.SquidConf.WriteSquidConf(squidConfPath, patched); err != nil {
			return SquidConfigureResult{}, err
		}
		result.Outcome = types.PatchOutcomeApplied
	}
	log.Info().
		Str("path", squidConfPath).
		Str("outcome", string(result.Outcome)).
		Bool("docker_acls", result.DockerACLs).
		Msg("squid config patched")

	if req.SkipChown {
		return result, nil
	}
	if err := s.Ownership.ChownRecursive(ctx, owner, cacheDir); err != nil {
		return SquidConfigureResult{}, err
	}
	log.Debug().Str("owner", owner).Str("path", cacheDir).Msg("cache directory ownership updated")
	return result, nil
}

func defaultString(value string, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
