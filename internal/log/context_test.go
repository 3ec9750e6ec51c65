// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package log

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), buf.String())
	return entry
}

func TestContextIDs(t *testing.T) {
	tests := []struct {
		name string
		ctx  context.Context
		id   string
	}{
		{name: "nil context", ctx: nil, id: "id-123"},
		{name: "background context", ctx: context.Background(), id: "id-456"},
		{name: "empty id", ctx: context.Background(), id: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.id, RequestIDFromContext(ContextWithRequestID(tt.ctx, tt.id)))
			assert.Equal(t, tt.id, JobIDFromContext(ContextWithJobID(tt.ctx, tt.id)))
		})
	}
}

func TestContextIDsMissing(t *testing.T) {
	assert.Empty(t, RequestIDFromContext(nil)) //nolint:staticcheck // nil context on purpose
	assert.Empty(t, JobIDFromContext(context.Background()))
	assert.Empty(t, RequestIDFromContext(context.WithValue(context.Background(), requestIDKey, 123)))
}

func TestWithContext(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf)

	ctx := ContextWithJobID(ContextWithRequestID(context.Background(), "req-1"), "run-9")
	withIDs := WithContext(ctx, l)
	withIDs.Info().Msg("x")

	entry := decodeLine(t, &buf)
	assert.Equal(t, "req-1", entry[FieldRequestID])
	assert.Equal(t, "run-9", entry[FieldJobID])

	buf.Reset()
	plain := WithContext(context.Background(), l)
	plain.Info().Msg("y")
	entry = decodeLine(t, &buf)
	assert.NotContains(t, entry, FieldRequestID)
}

func TestAddTrace(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf)

	t.Run("noop span adds nothing", func(t *testing.T) {
		buf.Reset()
		ctx, span := noop.NewTracerProvider().Tracer("test").Start(context.Background(), "s")
		defer span.End()
		traced := AddTrace(ctx, l)
		traced.Info().Msg("x")
		assert.NotContains(t, decodeLine(t, &buf), FieldTraceID)
	})

	t.Run("valid span", func(t *testing.T) {
		buf.Reset()
		traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
		spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
		ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
			TraceID:    traceID,
			SpanID:     spanID,
			TraceFlags: trace.FlagsSampled,
		}))
		traced := AddTrace(ctx, l)
		traced.Info().Msg("x")
		entry := decodeLine(t, &buf)
		assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", entry[FieldTraceID])
		assert.Equal(t, "00f067aa0ba902b7", entry[FieldSpanID])
	})
}
