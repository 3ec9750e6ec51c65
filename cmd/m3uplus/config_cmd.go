// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ManuGH/m3uplus/internal/config"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Validate or print the configuration",
		// subcommands load the configuration themselves
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a.configureLogging(cmd.ErrOrStderr(), "")
			return nil
		},
	}
	cmd.AddCommand(newConfigValidateCmd(a), newConfigDumpCmd(a))
	return cmd
}

// configFile returns -f, falling back to --config.
func (a *app) configFile(file string) string {
	if p := strings.TrimSpace(file); p != "" {
		return p
	}
	return strings.TrimSpace(a.configPath)
}

func newConfigValidateCmd(a *app) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a configuration file strictly",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := a.configFile(file)
			if path == "" {
				return usageError(errors.New("--file is required (or --config)"))
			}
			if _, err := config.NewLoader(path).Load(); err != nil {
				return fmt.Errorf("configuration error in %s:\n  %w", path, err)
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is valid\n", path)
			return err
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "path to YAML configuration file")
	return cmd
}

func newConfigDumpCmd(a *app) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the effective configuration (defaults + file + environment)",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := a.configFile(file)
			cfg, err := config.NewLoader(path).Load()
			if err != nil {
				return fmt.Errorf("configuration error in %s:\n  %w", path, err)
			}
			out, err := config.Dump(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "path to YAML configuration file")
	return cmd
}
