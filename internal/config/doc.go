// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for tensaku.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: main configuration structure
//   - APIConfig: correction service URL, timeout, rate limit
//   - UserConfig: user id, default model, correction style
//   - ValidationError, ValidateErrors: collected validation failures
//   - Watcher: reloads a config file when it changes on disk
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Command-line flags (applied by the cli package)
//   - Environment variables (TENSAKU_*)
//   - ~/.tensaku/config.toml
//   - ~/.tensaku/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil && cfg == nil {
//	    log.Fatal(err)
//	}
//
//	client := api.NewClientWithConfig(&api.ClientConfig{
//	    BaseURL: cfg.API.BaseURL,
//	    Timeout: cfg.Timeout(),
//	})
package config
