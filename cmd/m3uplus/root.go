// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ManuGH/m3uplus/internal/config"
	xglog "github.com/ManuGH/m3uplus/internal/log"
	"github.com/ManuGH/m3uplus/internal/version"
)

// app is the state shared by all commands.
type app struct {
	configPath string
	logLevel   string

	loader *config.Loader
	cfg    config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "m3uplus",
		Short:         "Parse, export and normalize M3U Plus playlists",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", os.Getenv(config.EnvConfigPath), "path to YAML configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (trace, debug, info, warn, error); overrides the configuration")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	root.AddCommand(
		newParseCmd(a),
		newExportCmd(a),
		newNormalizeCmd(a),
		newRunCmd(a),
		newServeCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return root
}

// load configures logging and reads the configuration. Logs go to stderr
// so that stdout carries only command output.
func (a *app) load(cmd *cobra.Command) error {
	a.configureLogging(cmd.ErrOrStderr(), "")

	a.loader = config.NewLoader(a.configPath)
	cfg, err := a.loader.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.configureLogging(cmd.ErrOrStderr(), cfg.LogLevel)
	return nil
}

// configureLogging applies the --log-level flag, falling back to level.
func (a *app) configureLogging(w io.Writer, level string) {
	if a.logLevel != "" {
		level = a.logLevel
	}
	xglog.Configure(xglog.Config{Level: level, Output: w, Version: version.Version})
}

// exactArgs is cobra.ExactArgs reporting a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}

func minimumArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.MinimumNArgs(n)(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  exactArgs(0),
		// no configuration needed
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "m3uplus %s\n", version.String())
			return err
		},
	}
}
