// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package config provides configuration management for m3uplus.
//
// Precedence is defaults < YAML file < M3UPLUS_* environment variables.
// The file is decoded strictly: unknown keys and multiple documents are
// rejected. The merged result is validated before it is returned.
package config
