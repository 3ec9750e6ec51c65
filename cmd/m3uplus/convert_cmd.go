// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ManuGH/m3uplus/internal/channels"
	"github.com/ManuGH/m3uplus/internal/m3u"
	"github.com/ManuGH/m3uplus/internal/pipeline"
)

// stdinName reads the playlist from standard input.
const stdinName = "-"

// parseFlags are shared by the single-file commands.
type parseFlags struct {
	strict bool
}

func (f *parseFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.strict, "strict", false, "reject URL lines without a preceding #EXTINF (default from config)")
}

func (f *parseFlags) options(cmd *cobra.Command, a *app) m3u.ParseOptions {
	opts := a.cfg.Parse.ParseOptions()
	if cmd.Flags().Changed("strict") {
		opts.Strict = f.strict
	}
	return opts
}

// readPlaylist reads and parses path, or standard input for "-".
func readPlaylist(ctx context.Context, cmd *cobra.Command, path string, opts m3u.ParseOptions) (*m3u.Playlist, error) {
	var (
		data []byte
		err  error
	)
	if path == stdinName {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path) // #nosec G304 -- path is chosen by the operator
	}
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	p, err := pipeline.Parse(ctx, path, data, opts)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return p, nil
}

// writeJSONOutput writes v to out atomically, or to stdout when out is empty.
func writeJSONOutput(ctx context.Context, cmd *cobra.Command, out string, v any) error {
	if out == "" {
		return pipeline.EncodeJSON(cmd.OutOrStdout(), v)
	}
	return pipeline.WriteJSONFile(ctx, out, v)
}

func newParseCmd(a *app) *cobra.Command {
	var pf parseFlags
	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Parse a playlist and print it as JSON",
		Long:  "Parse a playlist and print the structured model as JSON. FILE may be - for standard input.",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := readPlaylist(cmd.Context(), cmd, args[0], pf.options(cmd, a))
			if err != nil {
				return err
			}
			return pipeline.EncodeJSON(cmd.OutOrStdout(), p)
		},
	}
	pf.register(cmd)
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var (
		pf  parseFlags
		out string
	)
	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Rewrite a playlist in canonical form",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := readPlaylist(ctx, cmd, args[0], pf.options(cmd, a))
			if err != nil {
				return err
			}
			opts := a.cfg.Export.ExportOptions()
			if out == "" {
				return m3u.Write(cmd.OutOrStdout(), p, opts)
			}
			return pipeline.WriteExport(ctx, out, p, opts)
		},
	}
	pf.register(cmd)
	cmd.Flags().StringVarP(&out, "output", "o", "", "write to this file (atomically) instead of stdout")
	return cmd
}

// normalizeFlags overlay the configured normalize options.
type normalizeFlags struct {
	preferCatchup bool
	preferLogo    bool
	preferGroup   string
}

func (f *normalizeFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.preferCatchup, "prefer-catchup", false, "record a catchup preference (default from config)")
	cmd.Flags().BoolVar(&f.preferLogo, "prefer-logo", false, "rank sources with a tvg-logo higher (default from config)")
	cmd.Flags().StringVar(&f.preferGroup, "prefer-group", "", "rank sources of this group-title higher (default from config)")
}

func (f *normalizeFlags) options(cmd *cobra.Command, a *app) channels.Options {
	opts := a.cfg.Normalize
	if cmd.Flags().Changed("prefer-catchup") {
		opts.PreferCatchup = f.preferCatchup
	}
	if cmd.Flags().Changed("prefer-logo") {
		opts.PreferLogo = f.preferLogo
	}
	if cmd.Flags().Changed("prefer-group") {
		opts.PreferGroup = f.preferGroup
	}
	return opts
}

func newNormalizeCmd(a *app) *cobra.Command {
	var (
		pf   parseFlags
		nf   normalizeFlags
		best bool
		out  string
	)
	cmd := &cobra.Command{
		Use:   "normalize FILE",
		Short: "Group duplicate channels and rank their sources",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := readPlaylist(ctx, cmd, args[0], pf.options(cmd, a))
			if err != nil {
				return err
			}
			np := pipeline.Normalize(ctx, p, nf.options(cmd, a))
			if best {
				return writeJSONOutput(ctx, cmd, out, channels.SelectBestSources(np))
			}
			return writeJSONOutput(ctx, cmd, out, np)
		},
	}
	pf.register(cmd)
	nf.register(cmd)
	cmd.Flags().BoolVar(&best, "best", false, "print only the best source of every channel")
	cmd.Flags().StringVarP(&out, "output", "o", "", "write to this file (atomically) instead of stdout")
	return cmd
}
