// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for quinn.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - BackendConfig: Where the rulebook Q&A backend lives
//   - RulebookConfig: Default-selection preference
//   - UIConfig: Terminal presentation settings
//   - LoggingConfig: Log level and rotated log file
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (QUINN_*)
//   - ~/.quinn/config.toml
//   - ~/.quinn/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	client := gateway.NewClient(cfg.Backend.URL)
//
// Dot-notation access is used by the "config get/set" commands:
//
//	_ = cfg.Set("backend.url", "http://10.0.0.5:8000")
//	v, _ := cfg.Get("rulebooks.preferred")
package config
