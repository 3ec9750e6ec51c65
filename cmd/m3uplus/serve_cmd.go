// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ManuGH/m3uplus/internal/api"
	"github.com/ManuGH/m3uplus/internal/config"
	"github.com/ManuGH/m3uplus/internal/daemon"
	xglog "github.com/ManuGH/m3uplus/internal/log"
	"github.com/ManuGH/m3uplus/internal/telemetry"
	"github.com/ManuGH/m3uplus/internal/version"
)

func newServeCmd(a *app) *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP conversion service",
		Long: "Serve parse, export, normalize and best-source conversions over HTTP until SIGINT or SIGTERM.\n" +
			"Changes to the configuration file are picked up without a restart, except for the listen address.",
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd, listen)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default from config)")
	return cmd
}

func (a *app) serve(cmd *cobra.Command, listen string) error {
	ctx := cmd.Context()
	logger := xglog.WithComponent("serve")

	tp, err := telemetry.NewProvider(ctx, telemetry.Config{
		Enabled:        a.cfg.Telemetry.Enabled,
		ServiceName:    telemetry.ServiceName,
		ServiceVersion: version.Version,
		Environment:    a.cfg.Telemetry.Environment,
		ExporterType:   a.cfg.Telemetry.Exporter,
		Endpoint:       a.cfg.Telemetry.Endpoint,
		SamplingRate:   a.cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}

	holder := config.NewHolder(a.cfg, a.loader)
	if err := holder.StartWatcher(ctx); err != nil {
		_ = tp.Shutdown(context.WithoutCancel(ctx))
		return err
	}

	// follow log level changes of reloaded configurations
	reloads := make(chan config.Config, 1)
	holder.RegisterListener(reloads)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case cfg := <-reloads:
				a.configureLogging(cmd.ErrOrStderr(), cfg.LogLevel)
			}
		}
	}()

	serverCfg := a.cfg.Server
	if listen != "" {
		serverCfg.ListenAddr = listen
	}
	mgr, err := daemon.NewManager(serverCfg, api.New(holder).Handler())
	if err != nil {
		holder.Stop()
		_ = tp.Shutdown(context.WithoutCancel(ctx))
		return err
	}
	mgr.RegisterShutdownHook("telemetry", tp.Shutdown)
	mgr.RegisterShutdownHook("config-watcher", func(context.Context) error {
		holder.Stop()
		return nil
	})

	logger.Info().Str("version", version.Version).Str("config", a.loader.Path()).Msg("starting m3uplus service")
	return mgr.Start(ctx)
}
