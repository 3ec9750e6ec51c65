// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ManuGH/m3uplus/internal/log"
)

// Loader builds a Config from defaults, an optional YAML file and
// M3UPLUS_* environment variables, in that order of precedence.
type Loader struct {
	configPath string
	// ConsumedEnvKeys holds every variable the loader read. Other
	// M3UPLUS_* variables are reported as unknown.
	ConsumedEnvKeys map[string]struct{}
}

// NewLoader creates a new configuration loader. An empty configPath skips
// the file stage.
func NewLoader(configPath string) *Loader {
	return &Loader{
		configPath:      configPath,
		ConsumedEnvKeys: map[string]struct{}{EnvConfigPath: {}},
	}
}

// Path returns the configuration file path, possibly empty.
func (l *Loader) Path() string {
	return l.configPath
}

func (l *Loader) envString(key, defaultVal string) string {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseString(key, defaultVal)
}

func (l *Loader) envBool(key string, defaultVal bool) bool {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseBool(key, defaultVal)
}

func (l *Loader) envInt(key string, defaultVal int) int {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseInt(key, defaultVal)
}

func (l *Loader) envInt64(key string, defaultVal int64) int64 {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseInt64(key, defaultVal)
}

func (l *Loader) envDuration(key string, defaultVal time.Duration) time.Duration {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseDuration(key, defaultVal)
}

func (l *Loader) envFloat(key string, defaultVal float64) float64 {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseFloat(key, defaultVal)
}

// Load decodes the file strictly, applies the environment and validates the
// result. On error the partially built Config is returned as well.
func (l *Loader) Load() (Config, error) {
	cfg := Default()

	if l.configPath != "" {
		if err := l.loadFile(l.configPath, &cfg); err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
	}

	l.mergeEnv(&cfg)
	l.warnUnknownEnv()

	if err := Validate(cfg); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// loadFile decodes path onto cfg, so keys absent from the file keep the
// values already in cfg.
func (l *Loader) loadFile(path string, cfg *Config) error {
	path = filepath.Clean(path)

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("unsupported config format: %s (only YAML supported)", ext)
	}

	// #nosec G304 -- configuration file paths are provided by the operator via CLI/ENV
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}
	return decodeStrict(data, cfg)
}

// decodeStrict rejects unknown fields and anything after the first document.
func decodeStrict(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) && slices.ContainsFunc(typeErr.Errors, isUnknownField) {
			return fmt.Errorf("strict config parse error: %w: %w", ErrUnknownConfigField, err)
		}
		return fmt.Errorf("strict config parse error: %w", err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("config file contains multiple documents or trailing content")
	}
	return nil
}

func isUnknownField(msg string) bool {
	return strings.Contains(msg, "field") && strings.Contains(msg, "not found")
}

func (l *Loader) mergeEnv(cfg *Config) {
	cfg.LogLevel = l.envString(EnvPrefix+"LOG_LEVEL", cfg.LogLevel)

	cfg.Parse.Strict = l.envBool(EnvPrefix+"PARSE_STRICT", cfg.Parse.Strict)

	cfg.Normalize.PreferCatchup = l.envBool(EnvPrefix+"NORMALIZE_PREFER_CATCHUP", cfg.Normalize.PreferCatchup)
	cfg.Normalize.PreferLogo = l.envBool(EnvPrefix+"NORMALIZE_PREFER_LOGO", cfg.Normalize.PreferLogo)
	cfg.Normalize.PreferGroup = l.envString(EnvPrefix+"NORMALIZE_PREFER_GROUP", cfg.Normalize.PreferGroup)

	cfg.Pipeline.Workers = l.envInt(EnvPrefix+"PIPELINE_WORKERS", cfg.Pipeline.Workers)
	cfg.Pipeline.Debounce = l.envDuration(EnvPrefix+"PIPELINE_DEBOUNCE", cfg.Pipeline.Debounce)

	cfg.Server.ListenAddr = l.envString(EnvPrefix+"LISTEN_ADDR", cfg.Server.ListenAddr)
	cfg.Server.MaxBodyBytes = l.envInt64(EnvPrefix+"MAX_BODY_BYTES", cfg.Server.MaxBodyBytes)
	cfg.Server.RateLimit = l.envInt(EnvPrefix+"RATE_LIMIT", cfg.Server.RateLimit)
	cfg.Server.RateWindow = l.envDuration(EnvPrefix+"RATE_WINDOW", cfg.Server.RateWindow)
	cfg.Server.ReadTimeout = l.envDuration(EnvPrefix+"READ_TIMEOUT", cfg.Server.ReadTimeout)
	cfg.Server.WriteTimeout = l.envDuration(EnvPrefix+"WRITE_TIMEOUT", cfg.Server.WriteTimeout)
	cfg.Server.ShutdownTimeout = l.envDuration(EnvPrefix+"SHUTDOWN_TIMEOUT", cfg.Server.ShutdownTimeout)

	cfg.Telemetry.Enabled = l.envBool(EnvPrefix+"TELEMETRY_ENABLED", cfg.Telemetry.Enabled)
	cfg.Telemetry.Exporter = l.envString(EnvPrefix+"TELEMETRY_EXPORTER", cfg.Telemetry.Exporter)
	cfg.Telemetry.Endpoint = l.envString(EnvPrefix+"TELEMETRY_ENDPOINT", cfg.Telemetry.Endpoint)
	cfg.Telemetry.SamplingRate = l.envFloat(EnvPrefix+"TELEMETRY_SAMPLING_RATE", cfg.Telemetry.SamplingRate)
	cfg.Telemetry.Environment = l.envString(EnvPrefix+"TELEMETRY_ENVIRONMENT", cfg.Telemetry.Environment)
}

// UnknownEnvKeys lists M3UPLUS_* variables in the environment that Load
// does not read, sorted. Call it after Load.
func (l *Loader) UnknownEnvKeys() []string {
	var unknown []string
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if !strings.HasPrefix(key, EnvPrefix) {
			continue
		}
		if _, ok := l.ConsumedEnvKeys[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	slices.Sort(unknown)
	return unknown
}

func (l *Loader) warnUnknownEnv() {
	logger := log.WithComponent("config")
	for _, key := range l.UnknownEnvKeys() {
		logger.Warn().
			Str(log.FieldEvent, "config.unknown_env").
			Str("key", key).
			Msg("ignoring unknown environment variable")
	}
}

// Dump renders cfg as YAML in the file format Load accepts.
func Dump(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}
