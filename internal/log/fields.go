// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldRequestID = "request_id"
	FieldJobID     = "job_id"
	FieldTraceID   = "trace_id"
	FieldSpanID    = "span_id"

	// Process / pipeline fields
	FieldEvent     = "event"
	FieldComponent = "component"
	FieldMode      = "mode"
	FieldDuration  = "duration_ms"

	// Playlist fields
	FieldTracks   = "tracks"
	FieldDropped  = "dropped"
	FieldChannels = "channels"
	FieldDupes    = "duplicates_removed"
	FieldLine     = "line"

	// Path / URL fields
	FieldPath         = "path"
	FieldPlaylistPath = "playlist_path"
	FieldOutputPath   = "output_path"

	// HTTP fields
	FieldMethod     = "method"
	FieldRoute      = "route"
	FieldStatus     = "status"
	FieldRemoteAddr = "remote_addr"
)
