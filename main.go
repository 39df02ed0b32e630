// tensaku - a terminal composer with AI-assisted Japanese text correction.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/tensaku-tui/internal/api"
	"github.com/jeranaias/tensaku-tui/internal/cli"
	"github.com/jeranaias/tensaku-tui/internal/config"
	"github.com/jeranaias/tensaku-tui/internal/logging"
	"github.com/jeranaias/tensaku-tui/internal/session"
	"github.com/jeranaias/tensaku-tui/internal/ui/app"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	os.Exit(run(os.Args[1:]))
}

// run dispatches one invocation and returns its exit code.
func run(raw []string) int {
	cmd, args, err := cli.ParseArgs(raw)
	if err != nil {
		cli.DisplayError(os.Stderr, err, args.JSON, cmd.String())
		return cli.ExitCode(err)
	}

	switch cmd {
	case cli.CmdHelp:
		cli.HandleHelp(os.Stdout)
		return cli.ExitSuccess
	case cli.CmdVersion:
		return finish(cli.HandleVersion(os.Stdout, args), args, cmd)
	}

	cfg, err := loadConfig(args)
	if err != nil {
		if cmd != cli.CmdConfig {
			cli.DisplayError(os.Stderr, err, args.JSON, cmd.String())
			return cli.ExitCode(err)
		}
		// config subcommands must still work against a broken file
		fmt.Fprintf(os.Stderr, "[WARN] %v (using defaults)\n", err)
		cfg = config.Default()
	}
	cli.ConfigureColors(cfg.UI.Color)

	logger, cleanup, err := newLogger(cfg, args, cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[WARN] logging disabled: %v\n", err)
		logger, cleanup = zap.NewNop(), func() {}
	}
	defer cleanup()

	client := api.NewClientWithConfig(&api.ClientConfig{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.Timeout(),
		RateLimit: cfg.API.RateLimit,
		RateBurst: cfg.API.RateBurst,
		UserAgent: "tensaku/" + Version,
		Logger:    logger,
	})

	// An empty user id leaves the session invalid; commands that need one
	// report it themselves.
	sess, _ := session.New(cfg.User.ID)
	if sess.Valid() {
		logger.Debug("session started",
			zap.String("user_id", sess.UserID),
			zap.String("session_id", sess.SessionID))
	}

	configPath := args.ConfigPath
	if configPath == "" {
		configPath, _ = config.ConfigPathTOML()
	}

	env := &cli.Env{
		Config:     cfg,
		ConfigPath: configPath,
		Gateway:    client,
		Session:    sess,
		Logger:     logger,
		Out:        os.Stdout,
		Err:        os.Stderr,
	}

	switch cmd {
	case cli.CmdCorrect:
		err = cli.HandleCorrect(env, args)
	case cli.CmdModels:
		err = cli.HandleModels(env, args)
	case cli.CmdModelSet:
		err = cli.HandleModelSet(env, args)
	case cli.CmdHistory:
		err = cli.HandleHistory(env, args)
	case cli.CmdConfig:
		err = cli.HandleConfig(env, args)
	default:
		err = runTUI(cfg, configPath, sess, client, logger)
	}
	return finish(err, args, cmd)
}

func finish(err error, args cli.Args, cmd cli.Command) int {
	if err != nil {
		cli.DisplayError(os.Stderr, err, args.JSON, cmd.String())
	}
	return cli.ExitCode(err)
}

// loadConfig reads the configuration and applies command-line overrides.
// A default-location file that fails to parse is reported and skipped; an
// explicit --config file must load.
func loadConfig(args cli.Args) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if args.ConfigPath != "" {
		cfg, err = config.LoadFromPath(args.ConfigPath)
		if err != nil {
			return nil, err
		}
	} else {
		cfg, err = config.Load()
		if cfg == nil {
			return nil, err
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "[WARN] %v (using defaults)\n", err)
		}
	}

	if args.UserID != "" {
		cfg.User.ID = strings.TrimSpace(args.UserID)
	}
	if args.BaseURL != "" {
		cfg.API.BaseURL = args.BaseURL
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid --base-url: %w", err)
		}
	}
	return cfg, nil
}

// newLogger picks the log sink for the command. The TUI owns the terminal,
// so it always logs to a file; one-shot commands log to stderr only with -v.
func newLogger(cfg *config.Config, args cli.Args, cmd cli.Command) (*zap.Logger, func(), error) {
	opts := logging.Options{Level: cfg.Log.Level}
	switch {
	case cmd == cli.CmdTUI:
		opts.File = cfg.Log.File
		if opts.File == "" {
			path, err := config.DefaultLogPath()
			if err != nil {
				return nil, nil, err
			}
			opts.File = path
		}
	case args.Verbose:
		opts.Console = true
		opts.Level = "debug"
	}
	return logging.New(opts)
}

// runTUI starts the interactive composer.
func runTUI(cfg *config.Config, configPath string, sess session.Context, client *api.Client, logger *zap.Logger) error {
	if !cli.IsTTY() {
		return cli.NewUsageError("the interactive composer needs a terminal; use 'tensaku correct <text>' instead")
	}

	opts := app.Options{
		Config:  cfg,
		Session: sess,
		Gateway: client,
		Logger:  logger,
	}
	if w := watchConfig(configPath, logger); w != nil {
		defer w.Close()
		opts.Reloads = w.Updates()
	}
	m := app.New(opts)

	logger.Info("tui started", zap.String("base_url", cfg.API.BaseURL))
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	logger.Info("tui exited")
	return nil
}

// watchConfig starts a reload watcher when the config file exists. Failure
// only costs live reload, so it is logged and the TUI starts without it.
func watchConfig(path string, logger *zap.Logger) *config.Watcher {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	w, err := config.NewWatcher(path, config.DefaultWatchDebounce, logger)
	if err != nil {
		logger.Warn("config watch unavailable", zap.Error(err))
		return nil
	}
	if err := w.Start(); err != nil {
		logger.Warn("config watch unavailable", zap.Error(err))
		_ = w.Close()
		return nil
	}
	return w
}
