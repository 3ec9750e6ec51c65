// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"time"

	"github.com/ManuGH/m3uplus/internal/channels"
	"github.com/ManuGH/m3uplus/internal/m3u"
)

// Config is the complete runtime configuration.
type Config struct {
	LogLevel  string           `yaml:"logLevel"`
	Parse     ParseConfig      `yaml:"parse"`
	Normalize channels.Options `yaml:"normalize"`
	Export    ExportConfig     `yaml:"export"`
	Pipeline  PipelineConfig   `yaml:"pipeline"`
	Server    ServerConfig     `yaml:"server"`
	Telemetry TelemetryConfig  `yaml:"telemetry"`
}

// ParseConfig selects the parser policy.
type ParseConfig struct {
	Strict bool `yaml:"strict"`
}

// ParseOptions converts the section into parser options.
func (c ParseConfig) ParseOptions() m3u.ParseOptions {
	return m3u.ParseOptions{Strict: c.Strict}
}

// ExportConfig tunes playlist export.
type ExportConfig struct {
	// HeaderAttributes replaces the #EXTM3U attributes of exported playlists,
	// in the order written. Unset keeps each playlist's own header.
	HeaderAttributes *m3u.Attributes `yaml:"headerAttributes,omitempty"`
}

// ExportOptions converts the section into exporter options.
func (c ExportConfig) ExportOptions() m3u.ExportOptions {
	return m3u.ExportOptions{HeaderAttributes: c.HeaderAttributes}
}

// PipelineConfig tunes batch runs.
type PipelineConfig struct {
	// Workers bounds how many input files are read and parsed at once.
	Workers int `yaml:"workers"`
	// Debounce is the quiet period after a file change before watch mode
	// re-runs the pipeline.
	Debounce time.Duration `yaml:"debounce"`
}

// ServerConfig configures the HTTP conversion service.
type ServerConfig struct {
	ListenAddr      string        `yaml:"listenAddr"`
	MaxBodyBytes    int64         `yaml:"maxBodyBytes"`
	RateLimit       int           `yaml:"rateLimit"`  // requests per RateWindow and client IP
	RateWindow      time.Duration `yaml:"rateWindow"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

// TelemetryConfig configures OpenTelemetry tracing.
type TelemetryConfig struct {
	Enabled      bool    `yaml:"enabled"`
	Exporter     string  `yaml:"exporter"` // "grpc" or "http"
	Endpoint     string  `yaml:"endpoint"`
	SamplingRate float64 `yaml:"samplingRate"`
	Environment  string  `yaml:"environment"`
}

// Default values.
const (
	DefaultLogLevel        = "info"
	DefaultWorkers         = 4
	DefaultDebounce        = 500 * time.Millisecond
	DefaultListenAddr      = ":8080"
	DefaultMaxBodyBytes    = 32 << 20
	DefaultRateLimit       = 120
	DefaultRateWindow      = time.Minute
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 60 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultExporter        = "grpc"
	DefaultEndpoint        = "localhost:4317"
	DefaultEnvironment     = "development"
)

// Default returns the configuration used when nothing else is set.
func Default() Config {
	return Config{
		LogLevel: DefaultLogLevel,
		Pipeline: PipelineConfig{
			Workers:  DefaultWorkers,
			Debounce: DefaultDebounce,
		},
		Server: ServerConfig{
			ListenAddr:      DefaultListenAddr,
			MaxBodyBytes:    DefaultMaxBodyBytes,
			RateLimit:       DefaultRateLimit,
			RateWindow:      DefaultRateWindow,
			ReadTimeout:     DefaultReadTimeout,
			WriteTimeout:    DefaultWriteTimeout,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Telemetry: TelemetryConfig{
			Exporter:     DefaultExporter,
			Endpoint:     DefaultEndpoint,
			SamplingRate: 1.0,
			Environment:  DefaultEnvironment,
		},
	}
}
