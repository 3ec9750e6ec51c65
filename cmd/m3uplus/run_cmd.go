// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/ManuGH/m3uplus/internal/pipeline"
)

func newRunCmd(a *app) *cobra.Command {
	var (
		pf      parseFlags
		nf      normalizeFlags
		job     pipeline.Job
		watch   bool
		workers int
	)
	cmd := &cobra.Command{
		Use:   "run INPUT...",
		Short: "Merge playlists and write export, normalized and best-source outputs",
		Long: "Parse the inputs concurrently, merge them in the given order and write the configured outputs atomically.\n" +
			"With --watch the run repeats whenever an input changes, until interrupted.",
		Args: minimumArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			job.Inputs = args
			job.Parse = pf.options(cmd, a)
			job.Normalize = nf.options(cmd, a)
			job.Export = a.cfg.Export.ExportOptions()
			if !cmd.Flags().Changed("workers") {
				workers = a.cfg.Pipeline.Workers
			}
			runner := pipeline.NewRunner(workers)
			out := cmd.OutOrStdout()

			if watch {
				return runner.Watch(cmd.Context(), job, a.cfg.Pipeline.Debounce, func(res *pipeline.Result, err error) {
					if err != nil {
						fmt.Fprintf(cmd.ErrOrStderr(), "run failed: %v\n", err)
						return
					}
					printSummary(out, res)
				})
			}

			res, err := runner.Run(cmd.Context(), job)
			if err != nil {
				return err
			}
			printSummary(out, res)
			return nil
		},
	}
	pf.register(cmd)
	nf.register(cmd)
	cmd.Flags().StringVar(&job.ExportPath, "export", "", "write the merged canonical playlist here")
	cmd.Flags().StringVar(&job.NormalizedPath, "normalized", "", "write the normalized channel groups (JSON) here")
	cmd.Flags().StringVar(&job.BestPath, "best", "", "write the best source per channel (JSON) here")
	cmd.Flags().StringVar(&job.MetricsTextfile, "metrics-textfile", "", "write Prometheus metrics here after every run")
	cmd.Flags().BoolVar(&watch, "watch", false, "re-run whenever an input changes")
	cmd.Flags().IntVar(&workers, "workers", 0, "inputs parsed concurrently (default from config)")
	return cmd
}

func printSummary(w io.Writer, res *pipeline.Result) {
	fmt.Fprintf(w, "run %s: %d tracks, %d channels, %d duplicates removed, %d dropped entries (%s)\n",
		res.RunID,
		res.Playlist.Len(),
		res.Normalized.Len(),
		res.Normalized.DuplicatesRemoved,
		res.Playlist.Dropped,
		res.Duration.Round(time.Millisecond),
	)
}
