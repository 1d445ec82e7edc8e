package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"uyuni-actions/internal/app"
)

type actionRunOptions struct {
	DatabaseURL  string
	Method       string
	ServerID     int64
	ActionID     int64
	DryRun       bool
	Capabilities []string
	ActionStatus int
	Data         string
}

func newActionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "action",
		Short: "Run exported server action handlers",
	}
	cmd.AddCommand(newActionRunCommand())
	cmd.AddCommand(newActionListCommand())
	return cmd
}

func newActionListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List exported action handlers",
		RunE: func(_ *cobra.Command, _ []string) error {
			for _, name := range newAppService().ListActions() {
				fmt.Println(name)
			}
			return nil
		},
	}
}

func newActionRunCommand() *cobra.Command {
	opts := actionRunOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Build the client payload of a scheduled action",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAction(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.DatabaseURL, "database-url", "", "PostgreSQL connection URL")
	cmd.Flags().StringVar(&opts.Method, "method", "", "Exported handler, e.g. packages.update")
	cmd.Flags().Int64Var(&opts.ServerID, "server-id", 0, "Managed system id")
	cmd.Flags().Int64Var(&opts.ActionID, "action-id", 0, "Scheduled action id")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Pass dry_run to the handler")
	cmd.Flags().StringSliceVar(&opts.Capabilities, "capability", nil, "Client capability, name(version)=value")
	cmd.Flags().IntVar(&opts.ActionStatus, "action-status", 2, "Reported action status for kickstart handlers")
	cmd.Flags().StringVar(&opts.Data, "data", "", "Extra handler data as a JSON object")
	_ = viper.BindPFlag("database_url", cmd.Flags().Lookup("database-url"))
	_ = viper.BindPFlag("capabilities", cmd.Flags().Lookup("capability"))
	return cmd
}

func runAction(ctx context.Context, cmd *cobra.Command, opts actionRunOptions) error {
	data, err := parseActionData(opts.Data)
	if err != nil {
		return err
	}
	service := newAppService()
	result, err := service.RunAction(ctx, app.ActionRunRequest{
		DatabaseURL:  resolveString(cmd, opts.DatabaseURL, "database_url", "database-url"),
		Method:       opts.Method,
		ServerID:     opts.ServerID,
		ActionID:     opts.ActionID,
		DryRun:       opts.DryRun,
		Capabilities: resolveStrings(cmd, opts.Capabilities, "capabilities", "capability"),
		ActionStatus: resolveInt(cmd, opts.ActionStatus, "action_status", "action-status"),
		Data:         data,
	})
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result.Payload)
}
