package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"uyuni-actions/internal/adapters"
	"uyuni-actions/internal/app"
	"uyuni-actions/internal/core"
)

const squidHostEnv = "SQUID_HOST"

type squidConfigureOptions struct {
	ProxyConfig string
	SquidConf   string
	CacheDir    string
	Owner       string
	SkipChown   bool
}

func newSquidCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "squid",
		Short: "Proxy squid container helpers",
	}
	cmd.AddCommand(newSquidConfigureCommand())
	return cmd
}

func newSquidConfigureCommand() *cobra.Command {
	opts := squidConfigureOptions{}
	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Patch squid.conf from the proxy config.yaml",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSquidConfigure(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.ProxyConfig, "proxy-config", adapters.DefaultProxyConfigPath, "Proxy config.yaml path")
	cmd.Flags().StringVar(&opts.SquidConf, "squid-conf", adapters.DefaultSquidConfPath, "squid.conf path")
	cmd.Flags().StringVar(&opts.CacheDir, "cache-dir", core.DefaultSquidCacheDir, "Squid cache directory")
	cmd.Flags().StringVar(&opts.Owner, "owner", "squid:squid", "Owner of the cache directory")
	cmd.Flags().BoolVar(&opts.SkipChown, "skip-chown", false, "Do not change cache directory ownership")
	_ = viper.BindPFlag("squid.proxy_config", cmd.Flags().Lookup("proxy-config"))
	_ = viper.BindPFlag("squid.conf", cmd.Flags().Lookup("squid-conf"))
	_ = viper.BindPFlag("squid.cache_dir", cmd.Flags().Lookup("cache-dir"))
	_ = viper.BindPFlag("squid.owner", cmd.Flags().Lookup("owner"))
	_ = viper.BindPFlag("squid.skip_chown", cmd.Flags().Lookup("skip-chown"))
	return cmd
}

func runSquidConfigure(ctx context.Context, cmd *cobra.Command, opts squidConfigureOptions) error {
	service := newAppService()
	squidHost, squidHostSet := os.LookupEnv(squidHostEnv)
	result, err := service.ConfigureSquid(ctx, app.SquidConfigureRequest{
		ConfigPath:      resolveString(cmd, opts.ProxyConfig, "squid.proxy_config", "proxy-config"),
		SquidConfPath:   resolveString(cmd, opts.SquidConf, "squid.conf", "squid-conf"),
		CacheDir:        resolveString(cmd, opts.CacheDir, "squid.cache_dir", "cache-dir"),
		Owner:           resolveString(cmd, opts.Owner, "squid.owner", "owner"),
		SkipChown:       resolveBool(cmd, opts.SkipChown, "squid.skip_chown", "skip-chown"),
		SquidHostEnv:    squidHost,
		SquidHostEnvSet: squidHostSet,
	})
	if err != nil {
		return err
	}
	fmt.Printf("squid.conf %s (docker acls: %t)\n", result.Outcome, result.DockerACLs)
	return nil
}
