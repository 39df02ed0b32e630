// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for tensaku.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.tensaku/config.toml
//   - ~/.tensaku/config.json
//   - Built-in defaults
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/tensaku-tui/internal/model"
	"github.com/jeranaias/tensaku-tui/internal/util"
)

// CurrentVersion is written into new config files.
const CurrentVersion = "1"

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete tensaku configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	// Correction service connection
	API APIConfig `toml:"api" json:"api"`

	// Identity and correction defaults
	User UserConfig `toml:"user" json:"user"`

	// History browsing
	History HistoryConfig `toml:"history" json:"history"`

	// Undo snapshots
	Undo UndoConfig `toml:"undo" json:"undo"`

	// Diagnostic logging
	Log LogConfig `toml:"log" json:"log"`

	// Terminal UI
	UI UIConfig `toml:"ui" json:"ui"`
}

// APIConfig contains correction service settings.
type APIConfig struct {
	// BaseURL is the API root, including the /api prefix
	BaseURL string `toml:"base_url" json:"base_url"`

	// TimeoutSecs is the fixed ceiling applied to every request
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`

	// RateLimit caps requests per second (0 = unlimited)
	RateLimit float64 `toml:"rate_limit" json:"rate_limit"`

	// RateBurst is the limiter burst size
	RateBurst int `toml:"rate_burst" json:"rate_burst"`
}

// UserConfig identifies the user and their correction defaults.
type UserConfig struct {
	ID string `toml:"id" json:"id"`

	// DefaultModel is used until the server-side preference has loaded
	DefaultModel string `toml:"default_model" json:"default_model"`

	// CorrectionStyle is one of default, formal, casual, business, error_focus, concise
	CorrectionStyle string `toml:"correction_style" json:"correction_style"`
}

// HistoryConfig contains history pagination settings.
type HistoryConfig struct {
	PageSize int `toml:"page_size" json:"page_size"`
}

// UndoConfig contains undo stack settings.
type UndoConfig struct {
	// MaxDepth caps the number of snapshots (0 = unbounded)
	MaxDepth int `toml:"max_depth" json:"max_depth"`
}

// LogConfig contains diagnostic log settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `toml:"level" json:"level"`

	// File receives JSON logs while the TUI owns the terminal
	File string `toml:"file" json:"file"`
}

// UIConfig contains terminal UI settings.
type UIConfig struct {
	// Locale selects message language: ja or en
	Locale string `toml:"locale" json:"locale"`

	// Color enables styled output when the terminal supports it
	Color bool `toml:"color" json:"color"`

	// ShowReasons shows each variant's rationale in the correction dialog
	ShowReasons bool `toml:"show_reasons" json:"show_reasons"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		API: APIConfig{
			BaseURL:     "http://127.0.0.1:8000/api",
			TimeoutSecs: 10,
			RateLimit:   0,
			RateBurst:   1,
		},
		User: UserConfig{
			ID:              "",
			DefaultModel:    "openai-gpt4o",
			CorrectionStyle: "default",
		},
		History: HistoryConfig{
			PageSize: 20,
		},
		Undo: UndoConfig{
			MaxDepth: 0,
		},
		Log: LogConfig{
			Level: "info",
			File:  "",
		},
		UI: UIConfig{
			Locale:      "ja",
			Color:       true,
			ShowReasons: true,
		},
	}
}

// Timeout returns the API timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSecs) * time.Second
}

// Style returns the configured correction style.
func (c *Config) Style() model.CorrectionStyle {
	style, _ := model.ParseCorrectionStyle(c.User.CorrectionStyle)
	return style
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the tensaku configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".tensaku"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// DefaultLogPath returns where the TUI writes its log when none is configured.
func DefaultLogPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "tensaku.log"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
//
// When a file exists but cannot be parsed, Load returns validated defaults
// together with the parse error so the caller can warn and carry on.
func Load() (*Config, error) {
	var loadErr error

	if tomlPath, err := ConfigPathTOML(); err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			cfg := Default()
			if err := LoadTOML(cfg, tomlPath); err != nil {
				loadErr = fmt.Errorf("failed to load TOML config: %w", err)
			} else {
				return finish(cfg)
			}
		}
	}

	if jsonPath, err := ConfigPathJSON(); err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			cfg := Default()
			if err := LoadJSON(cfg, jsonPath); err != nil {
				loadErr = errors.Join(loadErr, fmt.Errorf("failed to load JSON config: %w", err))
			} else {
				return finish(cfg)
			}
		}
	}

	cfg, err := finish(Default())
	if err != nil {
		return nil, err
	}
	return cfg, loadErr
}

// LoadFromPath loads configuration from a specific file path with full validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(strings.ToLower(path), ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	return finish(cfg)
}

// finish applies env overrides and defaults, then validates.
func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg. Keys absent from the file keep
// their current values.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON decodes a JSON file over cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes the configuration to a TOML file atomically with 0600
// permissions, since the file names the user.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# tensaku configuration file\n")
	buf.WriteString("# Generated by tensaku - edit with care\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON writes the configuration to a JSON file atomically.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	// API
	if u, err := url.Parse(c.API.BaseURL); err != nil {
		errs = append(errs, ValidationError{
			Field:   "api.base_url",
			Message: fmt.Sprintf("invalid URL: %v", err),
		})
	} else if u.Scheme != "http" && u.Scheme != "https" {
		errs = append(errs, ValidationError{
			Field:   "api.base_url",
			Message: fmt.Sprintf("scheme must be http or https, got '%s'", u.Scheme),
		})
	} else if u.Host == "" {
		errs = append(errs, ValidationError{
			Field:   "api.base_url",
			Message: "missing host",
		})
	}

	if c.API.TimeoutSecs < 1 || c.API.TimeoutSecs > 300 {
		errs = append(errs, ValidationError{
			Field:   "api.timeout_secs",
			Message: fmt.Sprintf("must be 1-300, got %d", c.API.TimeoutSecs),
		})
	}
	if c.API.RateLimit < 0 {
		errs = append(errs, ValidationError{
			Field:   "api.rate_limit",
			Message: "cannot be negative",
		})
	}
	if c.API.RateBurst < 0 {
		errs = append(errs, ValidationError{
			Field:   "api.rate_burst",
			Message: "cannot be negative",
		})
	}

	// User
	if _, ok := model.ParseCorrectionStyle(c.User.CorrectionStyle); !ok {
		errs = append(errs, ValidationError{
			Field:   "user.correction_style",
			Message: fmt.Sprintf("invalid style '%s', must be one of: %s", c.User.CorrectionStyle, styleList()),
		})
	}

	// History
	if c.History.PageSize < 1 || c.History.PageSize > 100 {
		errs = append(errs, ValidationError{
			Field:   "history.page_size",
			Message: fmt.Sprintf("must be 1-100, got %d", c.History.PageSize),
		})
	}

	// Undo
	if c.Undo.MaxDepth < 0 {
		errs = append(errs, ValidationError{
			Field:   "undo.max_depth",
			Message: "cannot be negative (0 means unbounded)",
		})
	}

	// Log
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Log.Level),
		})
	}

	// UI
	if c.UI.Locale != "ja" && c.UI.Locale != "en" {
		errs = append(errs, ValidationError{
			Field:   "ui.locale",
			Message: fmt.Sprintf("invalid locale '%s', must be ja or en", c.UI.Locale),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func styleList() string {
	names := make([]string, 0, len(model.AllStyles()))
	for _, s := range model.AllStyles() {
		names = append(names, s.String())
	}
	return strings.Join(names, ", ")
}

// SetDefaults fills zero values that have no meaningful zero.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}
	if c.API.BaseURL == "" {
		c.API.BaseURL = defaults.API.BaseURL
	}
	c.API.BaseURL = strings.TrimRight(c.API.BaseURL, "/")
	if c.API.TimeoutSecs == 0 {
		c.API.TimeoutSecs = defaults.API.TimeoutSecs
	}
	if c.API.RateLimit > 0 && c.API.RateBurst == 0 {
		c.API.RateBurst = defaults.API.RateBurst
	}
	if c.User.DefaultModel == "" {
		c.User.DefaultModel = defaults.User.DefaultModel
	}
	if c.User.CorrectionStyle == "" {
		c.User.CorrectionStyle = defaults.User.CorrectionStyle
	}
	if c.History.PageSize == 0 {
		c.History.PageSize = defaults.History.PageSize
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.UI.Locale == "" {
		c.UI.Locale = defaults.UI.Locale
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - TENSAKU_BASE_URL: overrides api.base_url
//   - TENSAKU_TIMEOUT: overrides api.timeout_secs (integer seconds)
//   - TENSAKU_USER: overrides user.id
//   - TENSAKU_MODEL: overrides user.default_model
//   - TENSAKU_STYLE: overrides user.correction_style
//   - TENSAKU_LOCALE: overrides ui.locale
//   - TENSAKU_LOG_LEVEL: overrides log.level
//   - NO_COLOR: disables ui.color
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("TENSAKU_BASE_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("TENSAKU_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			c.API.TimeoutSecs = secs
		}
	}
	if v := os.Getenv("TENSAKU_USER"); v != "" {
		c.User.ID = v
	}
	if v := os.Getenv("TENSAKU_MODEL"); v != "" {
		c.User.DefaultModel = v
	}
	if v := os.Getenv("TENSAKU_STYLE"); v != "" {
		c.User.CorrectionStyle = v
	}
	if v := os.Getenv("TENSAKU_LOCALE"); v != "" {
		c.UI.Locale = v
	}
	if v := os.Getenv("TENSAKU_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		c.UI.Color = false
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "api.base_url").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation (e.g., "history.page_size").
// String values are converted to the field's type.
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

// lookup resolves a dot-notation key against the toml tags.
func (c *Config) lookup(key string) (reflect.Value, error) {
	if strings.TrimSpace(key) == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		field, ok := fieldByTag(v, part)
		if !ok {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			if field.Kind() == reflect.Struct {
				return reflect.Value{}, fmt.Errorf("'%s' is a section, not a value", key)
			}
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a section", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

func fieldByTag(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		tag := strings.Split(t.Field(i).Tag.Get("toml"), ",")[0]
		if strings.EqualFold(tag, name) {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %w", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Float64:
			floatVal, err := strconv.ParseFloat(strVal, 64)
			if err != nil {
				return fmt.Errorf("invalid float value: %w", err)
			}
			field.SetFloat(floatVal)
			return nil
		case reflect.Bool:
			lower := strings.ToLower(strVal)
			field.SetBool(lower == "1" || lower == "true" || lower == "yes")
			return nil
		}
	}

	val := reflect.ValueOf(value)
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) {
		field.Set(val.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// GetAllKeys returns all configuration keys in dot notation.
func GetAllKeys() []string {
	return []string{
		"version",
		"api.base_url",
		"api.timeout_secs",
		"api.rate_limit",
		"api.rate_burst",
		"user.id",
		"user.default_model",
		"user.correction_style",
		"history.page_size",
		"undo.max_depth",
		"log.level",
		"log.file",
		"ui.locale",
		"ui.color",
		"ui.show_reasons",
	}
}

// Clone returns a copy of the config. Config holds only values, so a shallow
// copy is deep.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String returns the config as indented JSON for debugging.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}
