// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package pipeline runs the batch conversion of local playlist files: it
// parses the inputs concurrently, merges them in input order, and writes the
// canonical export, the normalized channel groups and the best sources.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/ManuGH/m3uplus/internal/channels"
	xglog "github.com/ManuGH/m3uplus/internal/log"
	"github.com/ManuGH/m3uplus/internal/m3u"
	"github.com/ManuGH/m3uplus/internal/metrics"
	"github.com/ManuGH/m3uplus/internal/telemetry"
)

// ErrNoInputs is returned by Run for a job without input files.
var ErrNoInputs = errors.New("pipeline: no inputs")

// Job describes one pipeline run. Empty output paths are skipped.
type Job struct {
	Inputs []string

	ExportPath     string
	NormalizedPath string
	BestPath       string
	// MetricsTextfile receives the Prometheus metrics after every run.
	MetricsTextfile string

	Parse     m3u.ParseOptions
	Export    m3u.ExportOptions
	Normalize channels.Options
}

// Result is the outcome of a successful run.
type Result struct {
	RunID      string
	Playlist   *m3u.Playlist
	Normalized *channels.NormalizedPlaylist
	Best       *channels.BestSources
	Duration   time.Duration
}

// Runner executes jobs. It is safe for concurrent use.
type Runner struct {
	workers int
	tracer  trace.Tracer
}

// NewRunner returns a Runner that parses at most workers inputs at once.
func NewRunner(workers int) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{
		workers: workers,
		tracer:  telemetry.Tracer("m3uplus/pipeline"),
	}
}

// Run executes job once. Either all configured outputs are replaced or, on
// error, the ones not yet written keep their previous content.
func (r *Runner) Run(ctx context.Context, job Job) (res *Result, err error) {
	if len(job.Inputs) == 0 {
		return nil, ErrNoInputs
	}

	runID := uuid.NewString()
	ctx = xglog.ContextWithJobID(ctx, runID)
	ctx, span := r.tracer.Start(ctx, "pipeline.run", trace.WithAttributes(
		attribute.String(telemetry.PipelineRunIDKey, runID),
		attribute.Int(telemetry.PipelineInputsKey, len(job.Inputs)),
	))
	defer span.End()
	logger := xglog.AddTrace(ctx, xglog.WithComponentFromContext(ctx, "pipeline"))

	start := time.Now()
	logger.Info().Str(xglog.FieldEvent, "pipeline.start").Strs("inputs", job.Inputs).Msg("starting pipeline run")
	defer func() {
		d := time.Since(start)
		metrics.RecordPipelineRun(err, d)
		telemetry.RecordError(span, err, "pipeline")
		if job.MetricsTextfile != "" {
			if werr := metrics.WriteTextfile(job.MetricsTextfile); werr != nil {
				logger.Warn().Err(werr).Str(xglog.FieldPath, job.MetricsTextfile).Msg("metrics textfile not written")
			}
		}
		if err != nil {
			logger.Error().Err(err).Str(xglog.FieldEvent, "pipeline.failed").Int64(xglog.FieldDuration, d.Milliseconds()).Msg("pipeline run failed")
			return
		}
		res.Duration = d
		logger.Info().
			Str(xglog.FieldEvent, "pipeline.run").
			Int(xglog.FieldTracks, res.Playlist.Len()).
			Int(xglog.FieldDropped, res.Playlist.Dropped).
			Int(xglog.FieldChannels, res.Normalized.Len()).
			Int(xglog.FieldDupes, res.Normalized.DuplicatesRemoved).
			Int64(xglog.FieldDuration, d.Milliseconds()).
			Msg("pipeline run completed")
	}()

	playlists, err := r.parseInputs(ctx, job)
	if err != nil {
		return nil, err
	}
	merged := Merge(playlists...)

	res = &Result{RunID: runID, Playlist: merged}
	if job.ExportPath != "" {
		if err := WriteExport(ctx, job.ExportPath, merged, job.Export); err != nil {
			return nil, err
		}
	}

	res.Normalized = Normalize(ctx, merged, job.Normalize)
	if job.NormalizedPath != "" {
		if err := WriteJSONFile(ctx, job.NormalizedPath, res.Normalized); err != nil {
			return nil, err
		}
	}

	res.Best = channels.SelectBestSources(res.Normalized)
	if job.BestPath != "" {
		if err := WriteJSONFile(ctx, job.BestPath, res.Best); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// parseInputs reads and parses the inputs concurrently. The result keeps
// the order of job.Inputs.
func (r *Runner) parseInputs(ctx context.Context, job Job) ([]*m3u.Playlist, error) {
	out := make([]*m3u.Playlist, len(job.Inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, path := range job.Inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path) // #nosec G304 -- inputs are chosen by the operator
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			p, err := Parse(gctx, path, data, job.Parse)
			if err != nil {
				return fmt.Errorf("parse %s: %w", path, err)
			}
			out[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Merge concatenates the tracks of playlists in order. The header starts as
// a copy of the first playlist's header; later headers only add keys that
// are not set yet. Dropped counts are summed. Nil playlists are skipped.
func Merge(playlists ...*m3u.Playlist) *m3u.Playlist {
	total := 0
	for _, p := range playlists {
		total += p.Len()
	}
	merged := &m3u.Playlist{Tracks: make([]m3u.Track, 0, total)}
	for _, p := range playlists {
		if p == nil {
			continue
		}
		for k, v := range p.Header.All() {
			if !merged.Header.Has(k) {
				merged.Header.Set(k, v)
			}
		}
		for i := range p.Tracks {
			merged.Tracks = append(merged.Tracks, p.Tracks[i].Clone())
		}
		merged.Dropped += p.Dropped
	}
	return merged
}
