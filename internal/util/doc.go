// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across the tensaku client.
//
// # Key Functions
//
// String Utilities:
//   - TruncateRunes, TruncateWidth: safe truncation for Japanese text
//   - StringWidth, PadRight: terminal cell arithmetic via go-runewidth
//   - SingleLine: collapse whitespace for one-row previews
//
// Commands:
//   - RunCmd, Feed: run a tea.Cmd synchronously outside the TUI runtime
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
//
// # Usage
//
//	// Drive a component from the CLI without a Bubble Tea program
//	util.Feed(paginator.Open(sess), func(m tea.Msg) { paginator.Update(m) })
//
//	// Write config atomically
//	err := util.AtomicWriteFile(path, data, 0600)
package util
