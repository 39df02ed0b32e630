// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - Config command implementation for tensaku.
//
// Command: config [subcommand]
//
// Subcommands:
//   show (default)      Display the effective configuration
//   path                Show the configuration file path
//   init                Write a default config file
//   get <key>           Print one value (dot notation)
//   set <key> <value>   Change one value in the config file
//
// Examples:
//   tensaku config set user.id u1
//   tensaku config set ui.locale en
//   tensaku config get api.base_url

package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/tensaku-tui/internal/config"
)

// HandleConfig runs a config subcommand.
func HandleConfig(env *Env, args Args) error {
	switch args.Subcommand {
	case "", "show":
		return configShow(env, args)
	case "path":
		return configPath(env, args)
	case "init":
		return configInit(env, args)
	case "get":
		return configGet(env, args)
	case "set":
		return configSet(env, args)
	default:
		return NewUsageError(fmt.Sprintf("unknown config subcommand %q", args.Subcommand))
	}
}

func configShow(env *Env, args Args) error {
	if args.JSON {
		return NewJSONResponse("config show", env.Config).Write(env.out())
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(env.Config); err != nil {
		return NewCommandError("config", "show", "failed to encode config", err)
	}
	_, err := env.out().Write(buf.Bytes())
	return err
}

func configPath(env *Env, args Args) error {
	_, statErr := os.Stat(env.ConfigPath)
	exists := statErr == nil
	if args.JSON {
		return NewJSONResponse("config path", map[string]interface{}{
			"path":   env.ConfigPath,
			"exists": exists,
		}).Write(env.out())
	}
	fmt.Fprintln(env.out(), env.ConfigPath)
	if !exists && !args.Quiet {
		fmt.Fprintln(env.errw(), DimStyle.Render("(not created yet; run 'tensaku config init')"))
	}
	return nil
}

func configInit(env *Env, args Args) error {
	if _, err := os.Stat(env.ConfigPath); err == nil {
		return NewCommandError("config", "init", "config file already exists: "+env.ConfigPath, nil)
	}

	cfg := config.Default()
	if env.Session.Valid() {
		cfg.User.ID = env.Session.UserID
	}
	if err := save(cfg, env.ConfigPath); err != nil {
		return NewCommandError("config", "init", "failed to write config", err)
	}

	if args.JSON {
		return NewJSONResponse("config init", map[string]string{"path": env.ConfigPath}).Write(env.out())
	}
	fmt.Fprintf(env.out(), "%s wrote %s\n", SuccessStyle.Render("[OK]"), env.ConfigPath)
	return nil
}

func configGet(env *Env, args Args) error {
	key := args.Rest[0]
	val, err := env.Config.Get(key)
	if err != nil {
		return NewUsageError(fmt.Sprintf("%v (keys: %s)", err, strings.Join(config.GetAllKeys(), ", ")))
	}
	if args.JSON {
		return NewJSONResponse("config get", map[string]interface{}{"key": key, "value": val}).Write(env.out())
	}
	fmt.Fprintln(env.out(), val)
	return nil
}

// configSet edits the file as written, not the effective config, so
// environment overrides never leak into the saved file.
func configSet(env *Env, args Args) error {
	key, value := args.Rest[0], args.Rest[1]

	cfg := config.Default()
	if err := load(cfg, env.ConfigPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return NewCommandError("config", "set", "failed to read "+env.ConfigPath, err)
	}

	if err := cfg.Set(key, value); err != nil {
		return NewUsageError(err.Error())
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if err := save(cfg, env.ConfigPath); err != nil {
		return NewCommandError("config", "set", "failed to write config", err)
	}

	if args.JSON {
		stored, _ := cfg.Get(key)
		return NewJSONResponse("config set", map[string]interface{}{"key": key, "value": stored}).Write(env.out())
	}
	if !args.Quiet {
		fmt.Fprintf(env.out(), "%s %s = %s\n", SuccessStyle.Render("[OK]"), key, value)
	}
	return nil
}

func isJSONPath(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".json")
}

func load(cfg *config.Config, path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	if isJSONPath(path) {
		return config.LoadJSON(cfg, path)
	}
	return config.LoadTOML(cfg, path)
}

func save(cfg *config.Config, path string) error {
	if isJSONPath(path) {
		return config.SaveJSON(cfg, path)
	}
	return config.SaveTOML(cfg, path)
}
