// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the one-shot commands of
// tensaku.
//
// The commands drive the same components as the terminal UI. Each intent
// returns a tea.Cmd which is run synchronously with util.Feed and applied
// through the component's Update, so a correction requested from the shell
// takes exactly the code path of one requested from the UI.
//
// # Key Types
//
//   - Command: enumeration of the available commands
//   - Args: parsed global and command flags
//   - ArgParser: flag/positional splitter for command arguments
//   - Env: the configured gateway, session, logger and output streams
//   - JSONResponse: the {success, data, error, timestamp, command} envelope
//
// # Usage
//
//	cmd, args, err := cli.ParseArgs(os.Args[1:])
//	if err != nil {
//	    os.Exit(cli.ExitCode(err))
//	}
//	switch cmd {
//	case cli.CmdCorrect:
//	    err = cli.HandleCorrect(env, args)
//	}
//
// # Commands
//
//   - tui (default): interactive composition view
//   - correct <text>: request correction variants and print them
//   - models: list the model catalog and the preferred model
//   - model set <name>: change the preferred model
//   - history: list past corrections page by page
//   - config show|path|init|get|set: inspect or edit the config file
//   - version, help
package cli
