// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package pipeline

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/ManuGH/m3uplus/internal/channels"
	xglog "github.com/ManuGH/m3uplus/internal/log"
	"github.com/ManuGH/m3uplus/internal/m3u"
	"github.com/ManuGH/m3uplus/internal/metrics"
	"github.com/ManuGH/m3uplus/internal/telemetry"
)

var stageTracer = telemetry.Tracer("m3uplus/stages")

// Parse wraps m3u.Parse with a span, metrics and a warning for dropped
// entries. name identifies the input in logs and may be empty.
func Parse(ctx context.Context, name string, data []byte, opts m3u.ParseOptions) (*m3u.Playlist, error) {
	ctx, span := stageTracer.Start(ctx, "playlist.parse",
		trace.WithAttributes(telemetry.ParseAttributes(name, len(data), opts.Strict)...))
	defer span.End()

	mode := metrics.Mode(opts.Strict)
	start := time.Now()
	p, err := m3u.Parse(string(data), opts)
	d := time.Since(start)
	if err != nil {
		outcome := metrics.OutcomeError
		if errors.Is(err, m3u.ErrMalformedPlaylist) {
			outcome = metrics.OutcomeMalformed
		}
		metrics.RecordParse(mode, outcome, d, 0, 0)
		telemetry.RecordError(span, err, outcome)
		return nil, err
	}
	metrics.RecordParse(mode, metrics.OutcomeOK, d, p.Len(), p.Dropped)
	span.SetAttributes(telemetry.PlaylistAttributes(p)...)

	logger := xglog.WithComponentFromContext(ctx, "parse")
	if p.Dropped > 0 {
		ev := logger.Warn().Str(xglog.FieldEvent, "parse.dropped_entries").Int(xglog.FieldDropped, p.Dropped)
		if name != "" {
			ev = ev.Str(xglog.FieldPlaylistPath, name)
		}
		ev.Msg("EXTINF directives without URL were discarded")
	}
	logger.Debug().
		Str(xglog.FieldMode, mode).
		Int(xglog.FieldTracks, p.Len()).
		Int64(xglog.FieldDuration, d.Milliseconds()).
		Msg("playlist parsed")
	return p, nil
}

// Normalize wraps channels.Normalize with a span and metrics.
func Normalize(ctx context.Context, p *m3u.Playlist, opts channels.Options) *channels.NormalizedPlaylist {
	_, span := stageTracer.Start(ctx, "playlist.normalize")
	defer span.End()

	np := channels.Normalize(p, opts)
	metrics.RecordNormalize(np.Len(), np.DuplicatesRemoved)
	span.SetAttributes(telemetry.NormalizeAttributes(np, opts)...)
	return np
}
