// Package cmd provides the root command and CLI setup for targetpath.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mouse-blink/targetpath/internal/adapter"
	"github.com/mouse-blink/targetpath/internal/config"
	"github.com/mouse-blink/targetpath/internal/controller"
	"github.com/mouse-blink/targetpath/internal/domain"
	"github.com/mouse-blink/targetpath/internal/logging"
	m "github.com/mouse-blink/targetpath/internal/model"
)

// workflow is built from the loaded config before a subcommand runs, unless
// one is already set.
var workflow domain.Workflow
var cfg = config.DefaultConfig()
var newWorkflow = buildWorkflow

var configFlag string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "targetpath",
		Short: "Select targets in analyzed algorithm code",
		Long: `targetpath drills into the code-structure tree produced by the code analyzer
and records which runtime value a generated question should probe: a function's
arguments or return value, a loop's iteration count, a branch outcome, or a set
of variables, together with the chain of scopes that leads to it.

Configuration is read from --config, or .targetpath.{yaml,json,toml} in the
working directory, and TARGETPATH_* environment variables.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load(configFlag, cmd.Flags())
			if err != nil {
				return err
			}

			cfg = loaded

			if workflow != nil {
				return nil
			}

			workflow, err = newWorkflow(cmd, cfg)

			return err
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&configFlag, "config", "", "config file (default .targetpath.{yaml,json,toml} in the working directory)")
	flags.String("log-level", "", "log level: debug, info, warn or error (default from config: warn)")
	flags.String("log-format", "", "log format: text or json (default from config: text)")
	flags.String("ui", "", "front end: auto, tty or plain (default from config: auto)")

	return cmd
}

func buildWorkflow(cmd *cobra.Command, cfg *config.Config) (domain.Workflow, error) {
	logger, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Format, cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	format, err := adapter.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, fmt.Errorf("output.format: %w", err)
	}

	ui := controller.NewUI(cmd, cfg.UseTTY(controller.IsTTY(cmd.OutOrStdout())))

	return domain.NewWorkflow(
		adapter.NewLocalCodeInfoSource(),
		adapter.NewLocalTargetStore(format),
		ui,
		logger,
	), nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
