package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/telnet-chat/internal/app"
	"github.com/vovakirdan/telnet-chat/internal/config"
	"github.com/vovakirdan/telnet-chat/internal/log"
)

// version is set at build time.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		overrides  config.Config
	)

	cmd := &cobra.Command{
		Use:          "telnet-chat",
		Short:        "Multi-user chat server for telnet clients",
		Version:      version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, configPath, overrides)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "", "path to config.yaml (created with defaults when missing)")
	flags.StringVar(&overrides.Addr, "addr", "", "telnet listen address")
	flags.StringVar(&overrides.OpsAddr, "ops-addr", "", "ops HTTP listen address")
	flags.StringVar(&overrides.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&overrides.LogFile, "log-file", "", "also append JSON logs to this file")
	return cmd
}

func run(ctx context.Context, configPath string, overrides config.Config) error {
	bootLogger := log.New(overrides.LogLevel)

	cfg, resolvedPath, err := config.Load(bootLogger, configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg.UpdateFrom(overrides)

	logger, closer, err := log.NewWithFile(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	defer closer.Close()

	application, err := app.New(&cfg, logger)
	if err != nil {
		return err
	}

	logger.Info().
		Str("config", resolvedPath).
		Str("addr", cfg.Addr).
		Str("ops_addr", cfg.OpsAddr).
		Str("version", version).
		Msg("starting telnet chat server")
	if err := application.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("server exited with error")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}
