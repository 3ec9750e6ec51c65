// SPDX-License-Identifier: MIT

package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ManuGH/m3uplus/internal/channels"
	"github.com/ManuGH/m3uplus/internal/m3u"
)

// Common attribute keys for consistent tracing across the application.
const (
	// Playlist attributes
	PlaylistInputKey   = "playlist.input"
	PlaylistBytesKey   = "playlist.bytes"
	PlaylistStrictKey  = "playlist.strict"
	PlaylistTracksKey  = "playlist.tracks"
	PlaylistDroppedKey = "playlist.dropped"

	// Normalize attributes
	NormalizeChannelsKey   = "normalize.channels"
	NormalizeDuplicatesKey = "normalize.duplicates_removed"
	NormalizeLogoKey       = "normalize.prefer_logo"
	NormalizeGroupKey      = "normalize.prefer_group"

	// Pipeline attributes
	PipelineRunIDKey  = "pipeline.run_id"
	PipelineInputsKey = "pipeline.inputs"

	// Error attributes
	ErrorTypeKey = "error.type"
)

// ParseAttributes describes one parse call before it runs.
func ParseAttributes(input string, size int, strict bool) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, 3)
	if input != "" {
		attrs = append(attrs, attribute.String(PlaylistInputKey, input))
	}
	return append(attrs,
		attribute.Int(PlaylistBytesKey, size),
		attribute.Bool(PlaylistStrictKey, strict),
	)
}

// PlaylistAttributes describes a parsed playlist.
func PlaylistAttributes(p *m3u.Playlist) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int(PlaylistTracksKey, p.Len()),
		attribute.Int(PlaylistDroppedKey, p.Dropped),
	}
}

// NormalizeAttributes describes a normalization and its options.
func NormalizeAttributes(np *channels.NormalizedPlaylist, opts channels.Options) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int(NormalizeChannelsKey, np.Len()),
		attribute.Int(NormalizeDuplicatesKey, np.DuplicatesRemoved),
		attribute.Bool(NormalizeLogoKey, opts.PreferLogo),
		attribute.String(NormalizeGroupKey, opts.PreferGroup),
	}
}

// RecordError marks span as failed with err. A nil err is a no-op.
func RecordError(span trace.Span, err error, errType string) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if errType != "" {
		span.SetAttributes(attribute.String(ErrorTypeKey, errType))
	}
}
