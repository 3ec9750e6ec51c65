// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"fmt"

	"github.com/ManuGH/m3uplus/internal/validate"
)

// MaxWorkers caps pipeline.workers.
const MaxWorkers = 64

// Validate checks cfg and reports every problem at once. The returned error
// matches ErrInvalidConfig and wraps a validate.ValidationError.
func Validate(cfg Config) error {
	v := validate.New()

	v.LogLevel("logLevel", cfg.LogLevel)

	v.Range("pipeline.workers", cfg.Pipeline.Workers, 1, MaxWorkers)
	v.PositiveDuration("pipeline.debounce", cfg.Pipeline.Debounce)

	v.ListenAddr("server.listenAddr", cfg.Server.ListenAddr)
	v.Positive("server.maxBodyBytes", cfg.Server.MaxBodyBytes)
	v.Positive("server.rateLimit", int64(cfg.Server.RateLimit))
	v.PositiveDuration("server.rateWindow", cfg.Server.RateWindow)
	v.PositiveDuration("server.readTimeout", cfg.Server.ReadTimeout)
	v.PositiveDuration("server.writeTimeout", cfg.Server.WriteTimeout)
	v.PositiveDuration("server.shutdownTimeout", cfg.Server.ShutdownTimeout)

	if cfg.Export.HeaderAttributes != nil {
		for k := range cfg.Export.HeaderAttributes.All() {
			v.NotEmpty("export.headerAttributes", k)
		}
	}

	if cfg.Telemetry.Enabled {
		v.OneOf("telemetry.exporter", cfg.Telemetry.Exporter, []string{"grpc", "http"})
		v.Endpoint("telemetry.endpoint", cfg.Telemetry.Endpoint)
		v.RangeFloat("telemetry.samplingRate", cfg.Telemetry.SamplingRate, 0, 1)
	}

	if err := v.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
