// SPDX-License-Identifier: MIT
package validate

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_Accumulates(t *testing.T) {
	v := New()
	v.Range("pipeline.workers", 0, 1, 64)
	v.RangeFloat("telemetry.samplingRate", 1.5, 0, 1)
	v.Positive("server.maxBodyBytes", 0)
	v.PositiveDuration("server.readTimeout", -time.Second)
	v.NotEmpty("name", "  ")
	v.OneOf("telemetry.exporter", "zipkin", []string{"grpc", "http"})
	v.LogLevel("logLevel", "loud")

	assert.False(t, v.IsValid())
	require.Len(t, v.Errors(), 7)

	err := v.Err()
	var verr ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Errors(), 7)
	assert.Contains(t, err.Error(), "pipeline.workers: must be in [1, 64], got 0")
	assert.Contains(t, err.Error(), "; ")
}

func TestValidator_Valid(t *testing.T) {
	v := New()
	v.Range("workers", 4, 1, 64)
	v.RangeFloat("rate", 1, 0, 1)
	v.Positive("bytes", 1)
	v.PositiveDuration("timeout", time.Second)
	v.OneOf("exporter", "grpc", []string{"grpc", "http"})
	v.LogLevel("logLevel", "debug")
	v.ListenAddr("listen", ":8080")
	v.ListenAddr("listen", "127.0.0.1:9000")
	v.Endpoint("endpoint", "localhost:4317")
	v.Endpoint("endpoint", "https://collector.example:4318")

	assert.True(t, v.IsValid())
	assert.NoError(t, v.Err())
}

func TestValidator_SingleErrorMessage(t *testing.T) {
	v := New()
	v.ListenAddr("server.listenAddr", "8080")
	require.Error(t, v.Err())
	assert.Equal(t, v.Errors()[0].Error(), v.Err().Error())
}

func TestValidator_Endpoint(t *testing.T) {
	for _, bad := range []string{"", "collector", "ftp://x:1", "http://"} {
		v := New()
		v.Endpoint("endpoint", bad)
		assert.False(t, v.IsValid(), bad)
	}
}

func TestValidator_ErrIsSnapshot(t *testing.T) {
	v := New()
	v.NotEmpty("a", "")
	err := v.Err()
	v.NotEmpty("b", "")
	var verr ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Errors(), 1)
}

func TestValidator_ZeroValue(t *testing.T) {
	var v Validator
	v.OneOf("telemetry.exporter", "zipkin", []string{"grpc", "http"})
	require.Len(t, v.Errors(), 1)
	assert.Equal(t, `telemetry.exporter: must be one of grpc, http, got "zipkin"`, v.Err().Error())
}
